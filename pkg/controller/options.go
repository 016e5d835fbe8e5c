package controller

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-workerform/pkg/form"
	"github.com/goliatone/go-workerform/pkg/model"
	"github.com/goliatone/go-workerform/pkg/worker"
)

// Generator builds the form state for an optional existing record.
type Generator func(existing *worker.Record) *form.State

// Option customises the controller configuration.
type Option func(*Controller)

// WithWorker sets the record Init seeds the form from.
func WithWorker(record *worker.Record) Option {
	return func(c *Controller) {
		c.worker = record
	}
}

// WithIDGenerator overrides the identifier generator used for new records.
func WithIDGenerator(gen worker.IDGenerator) Option {
	return func(c *Controller) {
		c.formOptions = append(c.formOptions, form.WithIDGenerator(gen))
	}
}

// WithModel validates forms against a custom form model.
func WithModel(m model.FormModel) Option {
	return func(c *Controller) {
		c.formOptions = append(c.formOptions, form.WithModel(m))
	}
}

// WithSanitizer overrides the sanitizer applied to form edits.
func WithSanitizer(s form.Sanitizer) Option {
	return func(c *Controller) {
		c.formOptions = append(c.formOptions, form.WithSanitizer(s))
	}
}

// WithFormGenerator replaces the form generation step entirely.
func WithFormGenerator(gen Generator) Option {
	return func(c *Controller) {
		c.generate = gen
	}
}

// WithLogger injects a structured logger. Defaults to a no-op logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSubmitGuard rejects a submit while another one is still in flight.
func WithSubmitGuard() Option {
	return func(c *Controller) {
		c.guard = true
	}
}
