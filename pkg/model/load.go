package model

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	internalmodel "github.com/goliatone/go-workerform/internal/model"
	internalLoader "github.com/goliatone/go-workerform/internal/openapi/loader"
	internalParser "github.com/goliatone/go-workerform/internal/openapi/parser"
	pkgopenapi "github.com/goliatone/go-workerform/pkg/openapi"
	"github.com/goliatone/go-workerform/schemas"
)

// DefaultFieldOrder is the order fields appear in the worker form.
var DefaultFieldOrder = []string{"id", "name", "role", "active"}

// LoadOptions selects the OpenAPI document and component a form model is
// built from. The zero value loads the embedded Worker schema.
type LoadOptions struct {
	Source     pkgopenapi.Source
	FileSystem fs.FS
	Component  string
	Loader     pkgopenapi.Loader
	Parser     pkgopenapi.Parser
	Builder    Builder
	Decorators []Decorator
}

// Load runs the loader, parser, and builder stages and applies decorators.
func Load(ctx context.Context, opts LoadOptions) (FormModel, error) {
	component, schema, err := loadComponent(ctx, opts)
	if err != nil {
		return FormModel{}, err
	}

	builder := opts.Builder
	if builder == nil {
		builder = NewBuilder(WithFieldOrder(DefaultFieldOrder...))
	}
	form, err := builder.Build(component, schema)
	if err != nil {
		return FormModel{}, err
	}
	if err := Decorate(&form, opts.Decorators...); err != nil {
		return FormModel{}, err
	}
	return form, nil
}

// Lint loads the component schema selected by opts and reports x-workerform
// extensions the builder does not understand.
func Lint(ctx context.Context, opts LoadOptions) ([]Violation, error) {
	component, schema, err := loadComponent(ctx, opts)
	if err != nil {
		return nil, err
	}
	return internalmodel.Lint(component, schema), nil
}

func loadComponent(ctx context.Context, opts LoadOptions) (string, pkgopenapi.Schema, error) {
	if ctx == nil {
		return "", pkgopenapi.Schema{}, errors.New("model: context is required")
	}

	src := opts.Source
	files := opts.FileSystem
	if src == nil {
		src = pkgopenapi.SourceFromFS(schemas.WorkerDocument)
		if files == nil {
			files = schemas.FS
		}
	}
	component := opts.Component
	if component == "" {
		component = schemas.WorkerComponent
	}

	loader := opts.Loader
	if loader == nil {
		loader = internalLoader.New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithFileSystem(files)))
	}
	parser := opts.Parser
	if parser == nil {
		parser = internalParser.New(pkgopenapi.NewParserOptions())
	}

	doc, err := loader.Load(ctx, src)
	if err != nil {
		return "", pkgopenapi.Schema{}, fmt.Errorf("model: load %s: %w", src.Location(), err)
	}
	schema, err := parser.Component(ctx, doc, component)
	if err != nil {
		return "", pkgopenapi.Schema{}, fmt.Errorf("model: parse %s: %w", doc.Location(), err)
	}
	// Parsers may hand out cached trees and builders may edit theirs.
	return component, schema.Clone(), nil
}

var (
	defaultOnce  sync.Once
	defaultModel FormModel
	defaultErr   error
)

// Default returns the form model built from the embedded Worker schema. The
// model is built once; callers receive their own copy of the field slice.
func Default() FormModel {
	defaultOnce.Do(func() {
		defaultModel, defaultErr = Load(context.Background(), LoadOptions{})
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("model: embedded worker schema: %v", defaultErr))
	}
	return Clone(defaultModel)
}

// Clone returns a deep copy of form so callers can decorate it safely.
func Clone(form FormModel) FormModel {
	out := form
	out.Metadata = cloneStrings(form.Metadata)
	if form.Fields != nil {
		out.Fields = make([]Field, len(form.Fields))
		for idx, field := range form.Fields {
			out.Fields[idx] = cloneField(field)
		}
	}
	return out
}

func cloneField(field Field) Field {
	out := field
	out.Metadata = cloneStrings(field.Metadata)
	if field.Enum != nil {
		out.Enum = append([]any(nil), field.Enum...)
	}
	if field.Validations != nil {
		out.Validations = make([]ValidationRule, len(field.Validations))
		for idx, rule := range field.Validations {
			out.Validations[idx] = ValidationRule{Kind: rule.Kind, Params: cloneStrings(rule.Params)}
		}
	}
	if field.Items != nil {
		items := cloneField(*field.Items)
		out.Items = &items
	}
	return out
}

func cloneStrings(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
