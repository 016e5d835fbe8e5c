package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-workerform/pkg/form"
	"github.com/goliatone/go-workerform/pkg/worker"
)

var (
	// ErrSaveRejected is returned when the save service reports failure
	// without an error of its own.
	ErrSaveRejected = errors.New("controller: save service rejected worker")
	// ErrSubmitInFlight is returned by guarded controllers while a previous
	// submission has not completed.
	ErrSubmitInFlight = errors.New("controller: submission already in flight")
	// ErrSaveServiceMissing is returned when no save service was configured.
	ErrSaveServiceMissing = errors.New("controller: save service is required")
)

// Status is the submission state.
type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSubmitting:
		return "submitting"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Controller owns a single worker form for its lifetime.
type Controller struct {
	save    SaveService
	dialogs DialogService
	loader  LoaderService
	logger  *zap.SugaredLogger

	generate    Generator
	formOptions []form.Option
	guard       bool

	initOnce sync.Once

	mu     sync.Mutex
	worker *worker.Record
	form   *form.State
	status Status
}

// New constructs a Controller. A nil loader is replaced with a no-op; a nil
// save service makes Submit fail with ErrSaveServiceMissing.
func New(save SaveService, dialogs DialogService, loader LoaderService, options ...Option) *Controller {
	c := &Controller{
		save:    save,
		dialogs: dialogs,
		loader:  loader,
		logger:  zap.NewNop().Sugar(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.loader == nil {
		c.loader = nopLoader{}
	}
	if c.generate == nil {
		opts := append([]form.Option(nil), c.formOptions...)
		c.generate = func(existing *worker.Record) *form.State {
			return form.Generate(existing, opts...)
		}
	}
	return c
}

// SetWorker replaces the record Init seeds the form from. It has no effect
// once Init has run.
func (c *Controller) SetWorker(record *worker.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.worker = record
}

// Init generates the form from the configured worker. Only the first call
// does any work.
func (c *Controller) Init() {
	c.initOnce.Do(func() {
		c.mu.Lock()
		record := c.worker
		c.mu.Unlock()

		c.GenerateForm(record)
	})
}

// GenerateForm builds a new form for existing (nil for a new worker) and
// makes it the controller's current form.
func (c *Controller) GenerateForm(existing *worker.Record) *form.State {
	state := c.generate(existing)

	c.mu.Lock()
	c.form = state
	c.mu.Unlock()

	if state != nil {
		c.logger.Debugw("worker form generated", "worker_id", state.Values().ID, "existing", existing != nil)
	}
	return state
}

// Form returns the current form, or nil before Init/GenerateForm and after
// Close.
func (c *Controller) Form() *form.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// Dialogs returns the dialog service handed to New.
func (c *Controller) Dialogs() DialogService {
	return c.dialogs
}

// Status reports whether a submission is in flight.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Close discards the form.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = nil
}

// Submit saves the current form values. An invalid (or missing) form is a
// no-op: nothing is saved, the loader is untouched, and nil is returned. For
// a valid form the loader is raised, the save service is called once with the
// form values, and the loader is lowered again once the call returns. Save
// errors are returned to the caller, and field errors they carry are applied
// to the form.
func (c *Controller) Submit(ctx context.Context) error {
	values, proceed, err := c.begin()
	if err != nil || !proceed {
		return err
	}
	err = c.dispatch(ctx, values)
	if fields := fieldErrorsOf(err); fields != nil {
		c.mu.Lock()
		if c.form != nil {
			c.form.ApplyServerErrors(fields)
		}
		c.mu.Unlock()
	}
	return err
}

// SubmitAsync is Submit with the save call running on its own goroutine. The
// loader is raised before SubmitAsync returns. The form is never touched from
// that goroutine: field errors from the save service are kept on the Pending
// for the form's owner to apply once it is done.
func (c *Controller) SubmitAsync(ctx context.Context) *Pending {
	p := &Pending{done: make(chan struct{})}

	values, proceed, err := c.begin()
	if err != nil || !proceed {
		p.err = err
		close(p.done)
		return p
	}

	p.submitted = true
	go func() {
		defer close(p.done)
		p.err = c.dispatch(ctx, values)
		p.fieldErrors = fieldErrorsOf(p.err)
	}()
	return p
}

func (c *Controller) begin() (worker.Record, bool, error) {
	c.mu.Lock()
	state := c.form
	if state == nil || !state.Valid() {
		c.mu.Unlock()
		if state == nil {
			c.logger.Debugw("submit ignored: no form")
		} else {
			c.logger.Debugw("submit blocked: form invalid", "fields", state.Invalid())
		}
		return worker.Record{}, false, nil
	}
	if c.save == nil {
		c.mu.Unlock()
		return worker.Record{}, false, ErrSaveServiceMissing
	}
	if c.guard && c.status == StatusSubmitting {
		c.mu.Unlock()
		return worker.Record{}, false, ErrSubmitInFlight
	}
	c.status = StatusSubmitting
	values := state.Values()
	c.mu.Unlock()

	c.loader.SetLoaderState(true)
	return values, true, nil
}

func (c *Controller) dispatch(ctx context.Context, values worker.Record) error {
	defer func() {
		c.loader.SetLoaderState(false)
		c.mu.Lock()
		c.status = StatusIdle
		c.mu.Unlock()
	}()

	c.logger.Debugw("submitting worker", "worker_id", values.ID)
	ok, err := c.save.SubmitWorker(ctx, values)
	if err != nil {
		c.logger.Warnw("worker save failed", "worker_id", values.ID, "error", err)
		return fmt.Errorf("controller: submit worker %s: %w", values.ID, err)
	}
	if !ok {
		c.logger.Warnw("worker save rejected", "worker_id", values.ID)
		return fmt.Errorf("%w: %s", ErrSaveRejected, values.ID)
	}
	c.logger.Infow("worker saved", "worker_id", values.ID)
	return nil
}

func fieldErrorsOf(err error) map[string][]string {
	var provider FieldErrorsProvider
	if err == nil || !errors.As(err, &provider) {
		return nil
	}
	return provider.FieldErrors()
}

// Pending tracks a submission started by SubmitAsync.
type Pending struct {
	done        chan struct{}
	err         error
	fieldErrors map[string][]string
	submitted   bool
}

// Done is closed once the submission has completed.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the submission completes and returns its error.
func (p *Pending) Wait() error {
	<-p.done
	return p.err
}

// Submitted reports whether the save service was dispatched. It is false when
// the form was invalid.
func (p *Pending) Submitted() bool {
	return p.submitted
}

// FieldErrors returns the per-field errors the save service reported, or nil.
// It blocks until the submission completes. Apply them with
// form.State.ApplyServerErrors on the goroutine that owns the form.
func (p *Pending) FieldErrors() map[string][]string {
	<-p.done
	return p.fieldErrors
}
