package service

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

// LogLoader is a LoaderService that records the busy flag and logs each
// transition.
type LogLoader struct {
	logger *zap.SugaredLogger

	mu          sync.Mutex
	loading     bool
	transitions []bool
}

// NewLogLoader constructs a LogLoader.
func NewLogLoader(logger *zap.SugaredLogger) *LogLoader {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &LogLoader{logger: logger}
}

// SetLoaderState records the flag.
func (l *LogLoader) SetLoaderState(loading bool) {
	l.mu.Lock()
	l.loading = loading
	l.transitions = append(l.transitions, loading)
	l.mu.Unlock()

	if loading {
		l.logger.Info("saving worker...")
		return
	}
	l.logger.Debug("loader cleared")
}

// Loading reports the last flag value.
func (l *LogLoader) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// Transitions returns every flag value received, in order.
func (l *LogLoader) Transitions() []bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]bool(nil), l.transitions...)
}

// WriterDialogs is a DialogService that prints messages to a writer.
type WriterDialogs struct {
	mu  sync.Mutex
	out io.Writer
}

// NewWriterDialogs constructs a WriterDialogs. A nil writer discards output.
func NewWriterDialogs(out io.Writer) *WriterDialogs {
	if out == nil {
		out = io.Discard
	}
	return &WriterDialogs{out: out}
}

// Notify writes message followed by a newline.
func (d *WriterDialogs) Notify(ctx context.Context, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	_, err := fmt.Fprintln(d.out, message)
	return err
}
