package openapi

import "context"

// Parser extracts named component schemas from a Document.
type Parser interface {
	Component(ctx context.Context, doc Document, name string) (Schema, error)
}

// ParserOptions toggles parser behaviour.
type ParserOptions struct {
	// ValidateDocument runs the full OpenAPI validation before extracting
	// components. Defaults to true.
	ValidateDocument bool
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithDocumentValidation toggles document validation.
func WithDocumentValidation(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.ValidateDocument = enabled
	}
}

// NewParserOptions applies ParserOption functions and returns the resulting
// configuration.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{
		ValidateDocument: true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}
