package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	workerform "github.com/goliatone/go-workerform"
	"github.com/goliatone/go-workerform/pkg/prompt"
	"github.com/goliatone/go-workerform/pkg/service"
	"github.com/goliatone/go-workerform/pkg/worker"
)

// ErrFormInvalid is returned when the form cannot be submitted.
var ErrFormInvalid = errors.New("cli: worker form is invalid")

type fieldFlags struct {
	name     string
	roles    []string
	inactive bool
}

func (f *fieldFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Worker name")
	cmd.Flags().StringSliceVar(&f.roles, "role", nil, "Worker role (repeatable or comma separated)")
	cmd.Flags().BoolVar(&f.inactive, "inactive", false, "Mark the worker as inactive")
}

func newNewCmd(a *app) *cobra.Command {
	flags := &fieldFlags{}
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new worker",
		Long: `Create a new worker. New workers start active with no roles.

Examples:
  workerform new
  workerform new --non-interactive --name "Laura Zitelli" --role "Frontend Trainee"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runForm(cmd, nil, flags)
		},
	}
	flags.register(cmd)
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	flags := &fieldFlags{}
	cmd := &cobra.Command{
		Use:   "edit <file.yaml>",
		Short: "Edit an existing worker",
		Long: `Edit a worker stored as YAML. Every field is seeded from the file.

Examples:
  workerform edit workers/1.yaml
  workerform edit workers/1.yaml --non-interactive --inactive`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := service.ReadRecord(args[0])
			if err != nil {
				return err
			}
			return a.runForm(cmd, &record, flags)
		},
	}
	flags.register(cmd)
	return cmd
}

func (a *app) runForm(cmd *cobra.Command, existing *worker.Record, flags *fieldFlags) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	c, err := workerform.NewController(ctx, a.cfg,
		workerform.WithLogger(a.logger),
		workerform.WithWorker(existing),
		workerform.WithDialogs(service.NewWriterDialogs(out)),
	)
	if err != nil {
		return err
	}
	defer c.Close()

	state := c.Form()
	if err := applyFlags(cmd, state, flags); err != nil {
		return err
	}

	if !a.nonInteractive {
		driver := a.driver
		if driver == nil {
			driver = prompt.NewSurveyDriver(out)
		}
		if err := prompt.Fill(ctx, driver, state, prompt.Options{}); err != nil {
			return err
		}
	}

	if !state.Valid() {
		return fmt.Errorf("%w: %s", ErrFormInvalid, describeErrors(state.Errors()))
	}

	if err := c.Submit(ctx); err != nil {
		if serverErrors := state.ServerErrors(); len(serverErrors) > 0 {
			_ = c.Dialogs().Notify(ctx, "Save rejected: "+describeErrors(serverErrors))
		}
		return err
	}

	values := state.Values()
	return c.Dialogs().Notify(ctx, fmt.Sprintf("Worker %s saved (%s)", values.ID, values.DisplayName()))
}

func applyFlags(cmd *cobra.Command, state *workerform.FormState, flags *fieldFlags) error {
	if cmd.Flags().Changed("name") {
		if err := state.Set(worker.FieldName, flags.name); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("role") {
		if err := state.Set(worker.FieldRole, flags.roles); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("inactive") {
		state.SetActive(!flags.inactive)
	}
	return nil
}

func describeErrors(errs map[string][]string) string {
	names := make([]string, 0, len(errs))
	for name := range errs {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(errs[name], ", ")))
	}
	return strings.Join(parts, "; ")
}
