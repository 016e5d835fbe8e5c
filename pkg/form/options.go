package form

import (
	"github.com/goliatone/go-workerform/pkg/model"
	"github.com/goliatone/go-workerform/pkg/worker"
)

// Option configures Generate.
type Option func(*options)

type options struct {
	ids       worker.IDGenerator
	model     *model.FormModel
	sanitizer Sanitizer
}

// WithIDGenerator overrides the generator used for records without an id.
func WithIDGenerator(gen worker.IDGenerator) Option {
	return func(o *options) {
		if gen != nil {
			o.ids = gen
		}
	}
}

// WithModel validates the state against form instead of the default model
// built from the embedded Worker schema. The name field stays required.
func WithModel(form model.FormModel) Option {
	return func(o *options) {
		clone := model.Clone(form)
		o.model = &clone
	}
}

// WithSanitizer overrides the sanitizer applied to free-text edits. Pass
// NopSanitizer to keep edits verbatim.
func WithSanitizer(s Sanitizer) Option {
	return func(o *options) {
		if s != nil {
			o.sanitizer = s
		}
	}
}

func resolveOptions(opts []Option) options {
	cfg := options{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.ids == nil {
		cfg.ids = worker.DefaultIDGenerator
	}
	if cfg.model == nil {
		def := model.Default()
		cfg.model = &def
	}
	if cfg.sanitizer == nil {
		cfg.sanitizer = StrictSanitizer()
	}
	return cfg
}
