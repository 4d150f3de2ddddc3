package cmd

import (
	"github.com/spf13/cobra"

	"github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/adapter"
)

// configCmd represents the config command.
var configCmd = newConfigCmd()

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := adapter.FormatConfig(config)
			if err != nil {
				return err
			}

			if configSources.Global != "" {
				cmd.Println("# global: " + configSources.Global)
			}

			if configSources.Project != "" {
				cmd.Println("# project: " + configSources.Project)
			}

			cmd.Println(out)

			return nil
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(configCmd)
}
