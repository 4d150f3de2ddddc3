package cmd

import (
	"github.com/spf13/cobra"

	"github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/domain"
)

// showCmd represents the show command.
var showCmd = newShowCmd()

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <corpus> <sign>",
		Short: "Print a sign and its modules",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Show(cmd.Context(), domain.ShowArgs{Corpus: args[0], Sign: args[1]})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(showCmd)
}
