package cmd

import (
	"github.com/spf13/cobra"

	"github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/domain"
)

// mergeCmd represents the merge command.
var mergeCmd = newMergeCmd()
var mergeReassignFlag bool
var mergeOutputFlag string

func newMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge <target> <source>",
		Short: "Merge the signs of one corpus file into another",
		Long: `Append copies of the source corpus's signs to the target corpus. Entry id
ranges must not overlap unless --reassign gives the copies fresh ids. The
target file is rewritten unless --into names another file.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Merge(cmd.Context(), domain.MergeArgs{
				Target:   args[0],
				Source:   args[1],
				Output:   mergeOutputFlag,
				Reassign: mergeReassignFlag,
			})
		},
	}
	cmd.Flags().BoolVarP(&mergeReassignFlag, "reassign", "r", false, "give merged signs new entry ids")
	cmd.Flags().StringVarP(&mergeOutputFlag, "into", "o", "", "write the merged corpus to this file")

	return cmd
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}
