package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-workerform/pkg/config"
	"github.com/goliatone/go-workerform/pkg/prompt"
)

// Option customises the command tree, mainly for tests.
type Option func(*app)

// WithPromptDriver replaces the survey driver used in interactive mode.
func WithPromptDriver(driver prompt.Driver) Option {
	return func(a *app) {
		a.driver = driver
	}
}

// WithLogger bypasses the logger built from configuration.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(a *app) {
		a.logger = logger
	}
}

type app struct {
	configPath     string
	nonInteractive bool

	cfg    *config.Config
	logger *zap.SugaredLogger
	driver prompt.Driver
}

// NewRootCmd builds the workerform command tree.
func NewRootCmd(options ...Option) *cobra.Command {
	a := &app{}
	for _, opt := range options {
		if opt != nil {
			opt(a)
		}
	}

	root := &cobra.Command{
		Use:           "workerform",
		Short:         "Create and edit worker records",
		Long:          "Fill in the worker form from flags or interactive prompts and save it through the configured save service.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to a workerform YAML config file")
	root.PersistentFlags().BoolVar(&a.nonInteractive, "non-interactive", false, "Do not prompt; use flags and existing values only")

	root.AddCommand(newNewCmd(a))
	root.AddCommand(newEditCmd(a))
	root.AddCommand(newSchemaCmd(a))
	root.AddCommand(newLintCmd(a))
	return root
}

// Execute runs the command tree with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.logger == nil {
		logger, err := cfg.Logging.NewLogger()
		if err != nil {
			return fmt.Errorf("cli: %w", err)
		}
		a.logger = logger
	}
	a.logger.Debugw("configuration loaded", "path", a.configPath, "save_mode", cfg.Save.Mode)
	return nil
}
