package model

import (
	"fmt"
	"sort"
	"strings"

	pkgopenapi "github.com/goliatone/go-workerform/pkg/openapi"
)

var allowedExtensionKeys = map[string]struct{}{
	"label":       {},
	"placeholder": {},
}

// Violation describes an unsupported x-workerform extension.
type Violation struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

func (v Violation) String() string {
	return v.Location + " -> " + v.Message
}

// AllowedExtensionKeys lists the keys the builder understands, sorted.
func AllowedExtensionKeys() []string {
	keys := make([]string, 0, len(allowedExtensionKeys))
	for key := range allowedExtensionKeys {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Lint walks a component schema and reports x-workerform extensions the
// builder would ignore. Violations are ordered by location.
func Lint(component string, schema pkgopenapi.Schema) []Violation {
	out := lintSchema([]string{component}, schema)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Location == out[j].Location {
			return out[i].Message < out[j].Message
		}
		return out[i].Location < out[j].Location
	})
	return out
}

func lintSchema(path []string, schema pkgopenapi.Schema) []Violation {
	result := lintExtensions(path, schema.Extensions)

	keys := make([]string, 0, len(schema.Properties))
	for key := range schema.Properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		result = append(result, lintSchema(appendPath(path, key), schema.Properties[key])...)
	}
	if schema.Items != nil {
		result = append(result, lintSchema(appendPath(path, "items"), *schema.Items)...)
	}
	return result
}

func lintExtensions(path []string, extensions map[string]any) []Violation {
	var result []Violation
	for key, value := range extensions {
		switch {
		case key == extensionNamespace:
			nested, ok := value.(map[string]any)
			if !ok {
				result = append(result, Violation{
					Location: formatLocation(path),
					Message:  fmt.Sprintf("%s must be an object, found %T", extensionNamespace, value),
				})
				continue
			}
			for nestedKey, nestedValue := range nested {
				result = append(result, validateHint(path, nestedKey, nestedValue)...)
			}
		case strings.HasPrefix(key, extensionNamespace+"-"):
			result = append(result, validateHint(path, strings.TrimPrefix(key, extensionNamespace+"-"), value)...)
		}
	}
	return result
}

func validateHint(path []string, key string, value any) []Violation {
	location := formatLocation(appendPath(path, key))
	if key == "" {
		return []Violation{{Location: formatLocation(path), Message: "extension key is empty"}}
	}
	if _, ok := allowedExtensionKeys[key]; !ok {
		return []Violation{{
			Location: location,
			Message:  fmt.Sprintf("unsupported extension key %q (supported: %s)", key, strings.Join(AllowedExtensionKeys(), ", ")),
		}}
	}
	if _, ok := value.(string); !ok {
		return []Violation{{
			Location: location,
			Message:  fmt.Sprintf("value for %q must be a string (got %T)", key, value),
		}}
	}
	return nil
}

func appendPath(path []string, segment string) []string {
	next := append([]string(nil), path...)
	return append(next, segment)
}

func formatLocation(path []string) string {
	return strings.Join(path, " > ")
}
