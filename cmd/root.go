// Package cmd provides the root command and CLI setup for slpaa.
package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/adapter"
	"github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/controller"
	"github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/domain"
)

var corpusFS adapter.CorpusFSAdapter
var corpusStore adapter.CorpusStore
var searchStore adapter.SearchStore
var resultStore adapter.ResultStore
var comparer domain.Comparer
var workflow domain.Workflow
var ui controller.UI

// config is the effective configuration once PersistentPreRunE has run.
var config = adapter.DefaultConfig()
var configSources adapter.ConfigSources

func init() {
	corpusFS = adapter.NewLocalCorpusFSAdapter()
	corpusStore = adapter.NewLocalCorpusStore()
	searchStore = adapter.NewLocalSearchStore()
	resultStore = adapter.NewLocalResultStore()
	comparer = domain.NewComparer()
}

var configFlag string
var verboseFlag bool
var outputFlag outputValue

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slpaa",
		Short: "Compare and search SLPAA sign corpora",
		Long: `slpaa works with corpora of signs coded in the Sign Language Phonetic
Annotator and Analyzer structure: modules of movement, location, relation,
orientation and hand configuration, each timed against the sign's x-slots.

Commands:
  - compare   structural diff of two signs
  - search    run a search model against one or more corpora
  - schema    print a built-in option tree
  - show      print one sign and its modules
  - merge     merge two corpus files`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setup(cmd)
		},
	}
	cmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "config file to use instead of "+adapter.ConfigFileName)
	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "log diagnostics to stderr")
	outputFlag = ""
	cmd.PersistentFlags().Var(&outputFlag, "output", "output mode: auto, simple or tui")

	return cmd
}

// setup loads the configuration and, unless a workflow is already
// installed, builds the UI and workflow from it.
func setup(cmd *cobra.Command) error {
	workDir, err := os.Getwd()
	if err != nil {
		return err
	}

	cfg, sources, err := adapter.LoadConfig(adapter.LoadConfigInput{WorkDir: workDir, ConfigPath: configFlag})
	if err != nil {
		return err
	}

	if outputFlag != "" {
		cfg.Output = string(outputFlag)
	}

	config, configSources = cfg, sources

	logger := newLogger(cmd.ErrOrStderr(), verboseFlag)
	logger.Debug("config loaded",
		slog.String("global", sources.Global),
		slog.String("project", sources.Project),
		slog.String("output", cfg.Output))

	if workflow != nil {
		return nil
	}

	ui = controller.NewUI(cmd, useTTY(cfg.Output, cmd.OutOrStdout()))
	matcher := domain.NewMatcher(
		domain.WithEntryIDDigits(cfg.EntryIDDigits),
		domain.WithMatcherLogger(logger),
	)
	workflow = domain.NewWorkflow(
		corpusFS,
		corpusStore,
		searchStore,
		resultStore,
		ui,
		comparer,
		matcher,
		domain.WithLogger(logger),
		domain.WithSignEntryIDDigits(cfg.EntryIDDigits),
	)

	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func useTTY(output string, w io.Writer) bool {
	switch output {
	case adapter.OutputTUI:
		return true
	case adapter.OutputSimple:
		return false
	default:
		return controller.IsTTY(w)
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
