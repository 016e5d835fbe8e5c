package controller_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/goliatone/go-workerform/pkg/worker"
)

type saveServiceMock struct {
	mock.Mock
}

func (m *saveServiceMock) SubmitWorker(ctx context.Context, values worker.Record) (bool, error) {
	args := m.Called(ctx, values)
	return args.Bool(0), args.Error(1)
}

type loaderServiceMock struct {
	mock.Mock
}

func (m *loaderServiceMock) SetLoaderState(loading bool) {
	m.Called(loading)
}

type dialogServiceMock struct {
	mock.Mock
}

func (m *dialogServiceMock) Notify(ctx context.Context, message string) error {
	return m.Called(ctx, message).Error(0)
}

// eventLog records collaborator calls in order.
type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (l *eventLog) add(event string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
}

func (l *eventLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.events...)
}

type fieldErrors map[string][]string

func (f fieldErrors) Error() string                    { return "validation failed" }
func (f fieldErrors) FieldErrors() map[string][]string { return f }
