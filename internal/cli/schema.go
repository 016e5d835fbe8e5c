package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	workerform "github.com/goliatone/go-workerform"
)

func newSchemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the worker form model as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := workerform.LoadModel(cmd.Context(), a.cfg.Form)
			if err != nil {
				return err
			}
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(form)
		},
	}
}
