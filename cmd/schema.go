package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/domain"
	"github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/domain/schemas"
)

// schemaCmd represents the schema command.
var schemaCmd = newSchemaCmd()

func newSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "schema <name>",
		Short:     "Print a built-in option tree",
		Long:      "Print a built-in option tree. Known schemas: " + strings.Join(schemas.Names(), ", ") + ".",
		Args:      cobra.ExactArgs(1),
		ValidArgs: schemas.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Schema(cmd.Context(), domain.SchemaArgs{Name: args[0]})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
