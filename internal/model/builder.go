package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	pkgopenapi "github.com/goliatone/go-workerform/pkg/openapi"
)

const extensionNamespace = "x-workerform"

// Builder converts an OpenAPI component schema into a FormModel.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	if len(options.Order) > 0 {
		opts.Order = append([]string(nil), options.Order...)
	}
	return &Builder{opts: opts}
}

// Build transforms the component schema into a FormModel. Each top-level
// property becomes a field; required properties gain a required rule unless
// they are read-only.
func (b *Builder) Build(component string, schema pkgopenapi.Schema) (FormModel, error) {
	if err := validateComponent(component, schema); err != nil {
		return FormModel{}, err
	}

	form := FormModel{
		Component:   component,
		Title:       schema.Title,
		Description: schema.Description,
		Metadata:    metadataFromExtensions(schema.Extensions),
	}
	if form.Title == "" {
		form.Title = b.opts.Labeler(component)
	}

	for _, name := range b.propertyOrder(schema.Properties) {
		field, err := b.fieldFromSchema(name, schema.Properties[name], schema.IsRequired(name))
		if err != nil {
			return FormModel{}, fmt.Errorf("model builder: field %q: %w", name, err)
		}
		form.Fields = append(form.Fields, field)
	}

	return form, nil
}

func (b *Builder) propertyOrder(properties map[string]pkgopenapi.Schema) []string {
	seen := make(map[string]struct{}, len(properties))
	ordered := make([]string, 0, len(properties))
	for _, name := range b.opts.Order {
		if _, ok := properties[name]; !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		ordered = append(ordered, name)
	}

	var rest []string
	for name := range properties {
		if _, ok := seen[name]; ok {
			continue
		}
		rest = append(rest, name)
	}
	sort.Strings(rest)
	return append(ordered, rest...)
}

func (b *Builder) fieldFromSchema(name string, schema pkgopenapi.Schema, required bool) (Field, error) {
	if err := schema.Validate(); err != nil {
		return Field{}, err
	}

	field := Field{
		Name:        name,
		Type:        mapType(schema.Type),
		Format:      schema.Format,
		Required:    required && !schema.ReadOnly,
		ReadOnly:    schema.ReadOnly,
		Nullable:    schema.Nullable,
		Label:       b.opts.Labeler(name),
		Description: schema.Description,
		Default:     schema.Default,
	}
	if len(schema.Enum) > 0 {
		field.Enum = append([]any(nil), schema.Enum...)
	}
	if schema.Items != nil {
		items, err := b.fieldFromSchema("", *schema.Items, false)
		if err != nil {
			return Field{}, fmt.Errorf("items: %w", err)
		}
		items.Label = ""
		field.Items = &items
	}

	if field.Required {
		field.Validations = append(field.Validations, ValidationRule{Kind: ValidationRuleRequired})
	}
	applyValidations(&field, schema)

	field.Metadata = metadataFromExtensions(schema.Extensions)
	if label := field.Metadata["label"]; label != "" {
		field.Label = label
	}
	if placeholder := field.Metadata["placeholder"]; placeholder != "" {
		field.Placeholder = placeholder
	}
	if field.ReadOnly {
		if field.Metadata == nil {
			field.Metadata = make(map[string]string, 1)
		}
		field.Metadata["readonly"] = "true"
	}
	return field, nil
}

func mapType(schemaType string) FieldType {
	switch schemaType {
	case "integer":
		return FieldTypeInteger
	case "number":
		return FieldTypeNumber
	case "boolean":
		return FieldTypeBoolean
	case "array":
		return FieldTypeArray
	case "object":
		return FieldTypeObject
	default:
		return FieldTypeString
	}
}

func applyValidations(field *Field, schema pkgopenapi.Schema) {
	if field == nil {
		return
	}

	if schema.Minimum != nil {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleMin,
			Params: map[string]string{"value": formatFloat(*schema.Minimum)},
		})
	}
	if schema.Maximum != nil {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleMax,
			Params: map[string]string{"value": formatFloat(*schema.Maximum)},
		})
	}
	if schema.MinLength != nil {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleMinLength,
			Params: map[string]string{"value": strconv.Itoa(*schema.MinLength)},
		})
	}
	if schema.MaxLength != nil {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleMaxLength,
			Params: map[string]string{"value": strconv.Itoa(*schema.MaxLength)},
		})
	}
	if schema.Pattern != "" {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRulePattern,
			Params: map[string]string{"pattern": schema.Pattern},
		})
	}

	if len(field.Validations) == 0 {
		field.Validations = nil
	}
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// metadataFromExtensions flattens the x-workerform extension (both the nested
// object form and x-workerform-<key> entries) into string metadata.
func metadataFromExtensions(ext map[string]any) map[string]string {
	if len(ext) == 0 {
		return nil
	}

	result := make(map[string]string)
	for key, value := range ext {
		if key == extensionNamespace {
			nested, ok := value.(map[string]any)
			if !ok {
				continue
			}
			for nestedKey, nestedValue := range nested {
				if str, ok := toStringValue(nestedValue); ok {
					result[nestedKey] = str
				}
			}
			continue
		}
		if strings.HasPrefix(key, extensionNamespace+"-") {
			if str, ok := toStringValue(value); ok {
				result[strings.TrimPrefix(key, extensionNamespace+"-")] = str
			}
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}

func toStringValue(value any) (string, bool) {
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed), true
	case bool:
		return strconv.FormatBool(typed), true
	case float64:
		return formatFloat(typed), true
	case int:
		return strconv.Itoa(typed), true
	case []any:
		parts := make([]string, 0, len(typed))
		for _, item := range typed {
			if str, ok := toStringValue(item); ok && str != "" {
				parts = append(parts, str)
			}
		}
		return strings.Join(parts, ","), true
	default:
		return "", false
	}
}
