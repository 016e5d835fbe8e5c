package model

import (
	"github.com/goliatone/go-workerform/internal/model"
	pkgopenapi "github.com/goliatone/go-workerform/pkg/openapi"
)

// Builder converts an OpenAPI component schema into a form model.
type Builder interface {
	Build(component string, schema pkgopenapi.Schema) (FormModel, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	labeler func(string) string
	order   []string
}

// WithLabeler overrides the default label generation function.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.labeler = labeler
	}
}

// WithFieldOrder lists the properties that should lead the form, in order.
func WithFieldOrder(names ...string) BuilderOption {
	return func(opts *builderOptions) {
		opts.order = append(opts.order, names...)
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	return model.New(model.Options{
		Labeler: cfg.labeler,
		Order:   cfg.order,
	})
}
