package cmd

import (
	"github.com/spf13/cobra"

	"github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/domain"
	m "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/model"
)

// searchCmd represents the search command.
var searchCmd = newSearchCmd()
var searchMatchFlag matchDegreeValue
var searchExportYAMLFlag string
var searchExportDBFlag string

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <model> [corpora...]",
		Short: "Run a search model against corpus files",
		Long: `Run the targets of a search model file against each corpus. Without
corpus arguments the corpora listed in the configuration are searched.
A corpus argument may be a file, a directory or a "dir/..." pattern naming
every corpus file below dir.

Under --match all, included rows of the same type are combined into one
result; under --match any every included row is reported on its own.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			corpora := args[1:]
			if len(corpora) == 0 {
				corpora = config.Corpora
			}

			degree := m.MatchDegree(searchMatchFlag)
			if degree == "" {
				degree = config.MatchDegree
			}

			return workflow.Search(cmd.Context(), domain.SearchArgs{
				Corpora:     corpora,
				Model:       args[0],
				MatchDegree: degree,
				ExportYAML:  searchExportYAMLFlag,
				ExportDB:    searchExportDBFlag,
			})
		},
	}
	searchMatchFlag = ""
	cmd.Flags().VarP(&searchMatchFlag, "match", "m", "match degree: all or any (default: the model's)")
	cmd.Flags().StringVar(&searchExportYAMLFlag, "export-yaml", "", "write the results to a YAML file")
	cmd.Flags().StringVar(&searchExportDBFlag, "export-db", "", "append the results to a SQLite database")

	return cmd
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
