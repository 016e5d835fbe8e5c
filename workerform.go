// Package workerform assembles the worker form stack from configuration: the
// form model built from the Worker OpenAPI schema, a save service, and the
// submission controller that ties them together.
package workerform

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	internalLoader "github.com/goliatone/go-workerform/internal/openapi/loader"
	internalParser "github.com/goliatone/go-workerform/internal/openapi/parser"
	"github.com/goliatone/go-workerform/pkg/config"
	"github.com/goliatone/go-workerform/pkg/controller"
	"github.com/goliatone/go-workerform/pkg/form"
	"github.com/goliatone/go-workerform/pkg/model"
	pkgopenapi "github.com/goliatone/go-workerform/pkg/openapi"
	"github.com/goliatone/go-workerform/pkg/service"
	"github.com/goliatone/go-workerform/pkg/worker"
)

// Record aliases worker.Record for callers that only import the root package.
type Record = worker.Record

// Controller aliases controller.Controller.
type Controller = controller.Controller

// FormState aliases form.State.
type FormState = form.State

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	cfg := pkgopenapi.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewParser constructs a parser backed by the internal implementation.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	cfg := pkgopenapi.NewParserOptions(options...)
	return internalParser.New(cfg)
}

// Option customises NewController.
type Option func(*assembly)

type assembly struct {
	logger     *zap.SugaredLogger
	dialogs    controller.DialogService
	loader     controller.LoaderService
	save       controller.SaveService
	httpClient *http.Client
	worker     *worker.Record
	ids        worker.IDGenerator
}

// WithLogger injects the logger shared by the controller and save service.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(a *assembly) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithDialogs sets the dialog service handed to the controller.
func WithDialogs(dialogs controller.DialogService) Option {
	return func(a *assembly) {
		a.dialogs = dialogs
	}
}

// WithLoader overrides the loader service. Defaults to a service.LogLoader.
func WithLoader(loader controller.LoaderService) Option {
	return func(a *assembly) {
		a.loader = loader
	}
}

// WithSaveService bypasses the configured save mode.
func WithSaveService(save controller.SaveService) Option {
	return func(a *assembly) {
		a.save = save
	}
}

// WithHTTPClient sets the client used in http save mode.
func WithHTTPClient(client *http.Client) Option {
	return func(a *assembly) {
		a.httpClient = client
	}
}

// WithWorker seeds the form with an existing record. In http save mode the
// record is updated rather than created.
func WithWorker(record *worker.Record) Option {
	return func(a *assembly) {
		a.worker = record
	}
}

// WithIDGenerator overrides the generator for new worker ids.
func WithIDGenerator(gen worker.IDGenerator) Option {
	return func(a *assembly) {
		a.ids = gen
	}
}

// LoadModel builds the form model described by cfg: the configured schema
// file (or the embedded Worker schema) decorated with the role catalogue.
func LoadModel(ctx context.Context, cfg config.FormConfig) (model.FormModel, error) {
	opts := model.LoadOptions{
		Component:  cfg.Component,
		Decorators: []model.Decorator{model.ItemOptions(worker.FieldRole, cfg.Roles)},
	}
	if cfg.Schema != "" {
		opts.Source = pkgopenapi.SourceFromFile(cfg.Schema)
		opts.Loader = NewLoader()
	}
	return model.Load(ctx, opts)
}

// NewSaveService builds the save service selected by cfg.Mode. existing
// reports whether the worker being edited is already persisted.
func NewSaveService(cfg config.SaveConfig, existing bool, client *http.Client, logger *zap.SugaredLogger) (controller.SaveService, error) {
	switch cfg.Mode {
	case config.SaveModeFile:
		svc, err := service.NewFileSaveService(cfg.Directory, logger)
		if err != nil {
			return nil, err
		}
		return svc, nil
	case config.SaveModeHTTP:
		svc, err := service.NewHTTPSaveService(cfg.Endpoint,
			service.WithHTTPClient(client),
			service.WithTimeout(cfg.Timeout),
			service.WithHTTPLogger(logger),
			service.WithExisting(existing),
		)
		if err != nil {
			return nil, err
		}
		return svc, nil
	default:
		return nil, fmt.Errorf("workerform: unknown save mode %q", cfg.Mode)
	}
}

// NewController wires a controller from configuration and runs Init, so the
// returned controller already holds a form.
func NewController(ctx context.Context, cfg *config.Config, options ...Option) (*controller.Controller, error) {
	if cfg == nil {
		return nil, errors.New("workerform: config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &assembly{logger: zap.NewNop().Sugar()}
	for _, opt := range options {
		if opt != nil {
			opt(a)
		}
	}

	formModel, err := LoadModel(ctx, cfg.Form)
	if err != nil {
		return nil, err
	}

	save := a.save
	if save == nil {
		save, err = NewSaveService(cfg.Save, a.worker != nil, a.httpClient, a.logger)
		if err != nil {
			return nil, err
		}
	}
	loader := a.loader
	if loader == nil {
		loader = service.NewLogLoader(a.logger)
	}

	ctrlOptions := []controller.Option{
		controller.WithModel(formModel),
		controller.WithLogger(a.logger),
		controller.WithWorker(a.worker),
	}
	if a.ids != nil {
		ctrlOptions = append(ctrlOptions, controller.WithIDGenerator(a.ids))
	}
	if cfg.Form.SubmitGuard {
		ctrlOptions = append(ctrlOptions, controller.WithSubmitGuard())
	}

	c := controller.New(save, a.dialogs, loader, ctrlOptions...)
	c.Init()
	return c, nil
}
