package cmd

import (
	"github.com/spf13/cobra"

	"github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/domain"
)

// compareCmd represents the compare command.
var compareCmd = newCompareCmd()
var compareOtherFlag string

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <corpus> <sign1> <sign2>",
		Short: "Show the structural differences between two signs",
		Long: `Compare two signs module by module. Signs are named by entry id or by
gloss; a gloss must name exactly one sign. With --with, sign2 is looked up
in a second corpus file.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Compare(cmd.Context(), domain.CompareArgs{
				Corpus:      args[0],
				OtherCorpus: compareOtherFlag,
				Sign1:       args[1],
				Sign2:       args[2],
			})
		},
	}
	cmd.Flags().StringVarP(&compareOtherFlag, "with", "w", "", "corpus file holding sign2")

	return cmd
}

func init() {
	rootCmd.AddCommand(compareCmd)
}
