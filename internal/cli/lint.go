package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-workerform/pkg/model"
	pkgopenapi "github.com/goliatone/go-workerform/pkg/openapi"
)

// ErrLintViolations is returned when lint finds unsupported extensions.
var ErrLintViolations = errors.New("cli: schema has unsupported extensions")

func newLintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lint [schema.yaml...]",
		Short: "Report unsupported x-workerform extensions",
		Long: `Lint OpenAPI documents for x-workerform extensions the form builder ignores.
Without arguments the configured schema (or the embedded Worker schema) is checked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 {
				paths = []string{a.cfg.Form.Schema}
			}

			found := 0
			for _, path := range paths {
				opts := model.LoadOptions{Component: a.cfg.Form.Component}
				label := "embedded worker schema"
				if path != "" {
					opts.Source = pkgopenapi.SourceFromFile(path)
					label = path
				}
				violations, err := model.Lint(cmd.Context(), opts)
				if err != nil {
					return fmt.Errorf("lint %s: %w", label, err)
				}
				for _, v := range violations {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", label, v)
				}
				found += len(violations)
			}
			if found > 0 {
				return fmt.Errorf("%w: %d found", ErrLintViolations, found)
			}
			return nil
		},
	}
}
