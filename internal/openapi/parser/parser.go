package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-workerform/pkg/openapi"
)

const extensionNamespace = "x-workerform"

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

// Ensure the implementation satisfies the public interface.
var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) pkgopenapi.Parser {
	return &Parser{options: options}
}

// Component loads the document and converts the named component schema.
func (p *Parser) Component(ctx context.Context, doc pkgopenapi.Document, name string) (pkgopenapi.Schema, error) {
	if err := ctx.Err(); err != nil {
		return pkgopenapi.Schema{}, err
	}
	if strings.TrimSpace(name) == "" {
		return pkgopenapi.Schema{}, errors.New("openapi parser: component name is required")
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return pkgopenapi.Schema{}, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return pkgopenapi.Schema{}, fmt.Errorf("openapi parser: load document: %w", err)
	}

	if p.options.ValidateDocument {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return pkgopenapi.Schema{}, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}

	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return pkgopenapi.Schema{}, errors.New("openapi parser: document does not declare component schemas")
	}
	ref, ok := spec.Components.Schemas[name]
	if !ok || ref == nil {
		return pkgopenapi.Schema{}, fmt.Errorf("openapi parser: component %q not found", name)
	}

	return convertSchema(ref), nil
}

func convertSchema(ref *openapi3.SchemaRef) pkgopenapi.Schema {
	return convertSchemaVisited(ref, make(map[*openapi3.Schema]struct{}))
}

func convertSchemaVisited(ref *openapi3.SchemaRef, visiting map[*openapi3.Schema]struct{}) pkgopenapi.Schema {
	if ref == nil {
		return pkgopenapi.Schema{}
	}
	if ref.Value == nil {
		return pkgopenapi.Schema{Ref: ref.Ref}
	}
	src := ref.Value
	if _, seen := visiting[src]; seen {
		// Cycle: keep the reference and stop descending.
		return pkgopenapi.Schema{Ref: ref.Ref, Type: firstSchemaType(src.Type)}
	}
	visiting[src] = struct{}{}
	defer delete(visiting, src)

	schema := pkgopenapi.Schema{
		Ref:         ref.Ref,
		Type:        firstSchemaType(src.Type),
		Format:      src.Format,
		Title:       src.Title,
		Description: src.Description,
		Default:     src.Default,
		ReadOnly:    src.ReadOnly,
		Nullable:    src.Nullable,
		Pattern:     src.Pattern,
		Extensions:  extractExtensions(src.Extensions),
	}

	if len(src.Required) > 0 {
		schema.Required = append([]string(nil), src.Required...)
	}
	if len(src.Enum) > 0 {
		schema.Enum = append([]any(nil), src.Enum...)
	}
	if len(src.Properties) > 0 {
		schema.Properties = make(map[string]pkgopenapi.Schema, len(src.Properties))
		for name, property := range src.Properties {
			schema.Properties[name] = convertSchemaVisited(property, visiting)
		}
	}
	if src.Items != nil {
		items := convertSchemaVisited(src.Items, visiting)
		schema.Items = &items
	}
	if src.Min != nil {
		value := *src.Min
		schema.Minimum = &value
	}
	if src.Max != nil {
		value := *src.Max
		schema.Maximum = &value
	}
	if src.MinLength != 0 {
		value := int(src.MinLength)
		schema.MinLength = &value
	}
	if src.MaxLength != nil {
		value := int(*src.MaxLength)
		schema.MaxLength = &value
	}
	return schema
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	default:
		return strings.Join(values, ",")
	}
}

func extractExtensions(raw map[string]any) map[string]any {
	if len(raw) == 0 {
		return nil
	}

	result := make(map[string]any)
	for key, value := range raw {
		switch {
		case key == extensionNamespace:
			if mapped, ok := value.(map[string]any); ok && len(mapped) > 0 {
				cloned := make(map[string]any, len(mapped))
				for k, v := range mapped {
					cloned[k] = v
				}
				result[key] = cloned
			}
		case strings.HasPrefix(key, extensionNamespace+"-"):
			result[key] = value
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
