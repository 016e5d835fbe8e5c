package controller

import (
	"context"

	"github.com/goliatone/go-workerform/pkg/worker"
)

// SaveService persists a worker. A false result without an error means the
// service declined the record.
type SaveService interface {
	SubmitWorker(ctx context.Context, values worker.Record) (bool, error)
}

// LoaderService signals busy state to the presentation layer.
type LoaderService interface {
	SetLoaderState(loading bool)
}

// DialogService presents messages to the user. The controller keeps a handle
// for its host but never calls it itself.
type DialogService interface {
	Notify(ctx context.Context, message string) error
}

// FieldErrorsProvider is implemented by save errors that carry per-field
// validation feedback, e.g. a 422 response from the worker API.
type FieldErrorsProvider interface {
	FieldErrors() map[string][]string
}

// LoaderFunc adapts a function into a LoaderService.
type LoaderFunc func(loading bool)

// SetLoaderState calls the underlying function.
func (fn LoaderFunc) SetLoaderState(loading bool) {
	fn(loading)
}

type nopLoader struct{}

func (nopLoader) SetLoaderState(bool) {}
