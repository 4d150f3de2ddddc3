package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/domain"
	domainmocks "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/domain/mocks"
	m "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/model"
)

// newTestRoot builds a root command with sub attached and the global
// workflow replaced by a mock. The global config directory is isolated.
func newTestRoot(t *testing.T, sub *cobra.Command) (*cobra.Command, *domainmocks.MockWorkflow, *bytes.Buffer) {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	originalWorkflow := workflow
	workflow = mockWorkflow
	t.Cleanup(func() { workflow = originalWorkflow })

	var out bytes.Buffer

	cmd := newRootCmd()
	cmd.AddCommand(sub)
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})

	return cmd, mockWorkflow, &out
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestCompareCmd(t *testing.T) {
	t.Run("same corpus", func(t *testing.T) {
		cmd, mockWorkflow, _ := newTestRoot(t, newCompareCmd())

		mockWorkflow.On("Compare", mock.Anything, domain.CompareArgs{
			Corpus: "asl.yaml", Sign1: "HELLO", Sign2: "12",
		}).Return(nil)

		cmd.SetArgs([]string{"compare", "asl.yaml", "HELLO", "12"})
		require.NoError(t, cmd.Execute())
	})

	t.Run("second corpus", func(t *testing.T) {
		cmd, mockWorkflow, _ := newTestRoot(t, newCompareCmd())

		mockWorkflow.On("Compare", mock.Anything, mock.MatchedBy(func(args domain.CompareArgs) bool {
			return args.OtherCorpus == "lsq.yaml" && args.Sign2 == "BONJOUR"
		})).Return(nil)

		cmd.SetArgs([]string{"compare", "asl.yaml", "HELLO", "BONJOUR", "--with", "lsq.yaml"})
		require.NoError(t, cmd.Execute())
	})

	t.Run("propagates workflow errors", func(t *testing.T) {
		cmd, mockWorkflow, _ := newTestRoot(t, newCompareCmd())

		mockWorkflow.On("Compare", mock.Anything, mock.Anything).Return(domain.ErrAmbiguousSign)

		cmd.SetArgs([]string{"compare", "asl.yaml", "HELLO", "BYE"})
		require.ErrorIs(t, cmd.Execute(), domain.ErrAmbiguousSign)
	})

	t.Run("requires three arguments", func(t *testing.T) {
		cmd, _, _ := newTestRoot(t, newCompareCmd())

		cmd.SetArgs([]string{"compare", "asl.yaml", "HELLO"})
		require.Error(t, cmd.Execute())
	})
}

func TestSearchCmd(t *testing.T) {
	t.Run("flags", func(t *testing.T) {
		cmd, mockWorkflow, _ := newTestRoot(t, newSearchCmd())

		mockWorkflow.On("Search", mock.Anything, domain.SearchArgs{
			Corpora:     []string{"asl.yaml", "lsq.yaml"},
			Model:       "model.yaml",
			MatchDegree: m.MatchAny,
			ExportYAML:  "out.yaml",
			ExportDB:    "out.db",
		}).Return(nil)

		cmd.SetArgs([]string{
			"search", "model.yaml", "asl.yaml", "lsq.yaml",
			"--match", "any", "--export-yaml", "out.yaml", "--export-db", "out.db",
		})
		require.NoError(t, cmd.Execute())
	})

	t.Run("corpora and match degree from config", func(t *testing.T) {
		cfg := writeConfig(t, `{
			// searched when no corpus is given
			"corpora": ["asl.yaml"],
			"match_degree": "any",
		}`)
		cmd, mockWorkflow, _ := newTestRoot(t, newSearchCmd())

		mockWorkflow.On("Search", mock.Anything, mock.MatchedBy(func(args domain.SearchArgs) bool {
			return len(args.Corpora) == 1 &&
				args.Corpora[0] == filepath.Join(filepath.Dir(cfg), "asl.yaml") &&
				args.MatchDegree == m.MatchAny
		})).Return(nil)

		cmd.SetArgs([]string{"search", "model.yaml", "--config", cfg})
		require.NoError(t, cmd.Execute())
	})

	t.Run("flag beats config", func(t *testing.T) {
		cfg := writeConfig(t, `{"match_degree": "any"}`)
		cmd, mockWorkflow, _ := newTestRoot(t, newSearchCmd())

		mockWorkflow.On("Search", mock.Anything, mock.MatchedBy(func(args domain.SearchArgs) bool {
			return args.MatchDegree == m.MatchAll
		})).Return(nil)

		cmd.SetArgs([]string{"search", "model.yaml", "a.yaml", "--config", cfg, "--match", "all"})
		require.NoError(t, cmd.Execute())
	})

	t.Run("model degree kept by default", func(t *testing.T) {
		cmd, mockWorkflow, _ := newTestRoot(t, newSearchCmd())

		mockWorkflow.On("Search", mock.Anything, mock.MatchedBy(func(args domain.SearchArgs) bool {
			return args.MatchDegree == ""
		})).Return(nil)

		cmd.SetArgs([]string{"search", "model.yaml", "a.yaml"})
		require.NoError(t, cmd.Execute())
	})

	t.Run("rejects unknown match degree", func(t *testing.T) {
		cmd, _, _ := newTestRoot(t, newSearchCmd())

		cmd.SetArgs([]string{"search", "model.yaml", "a.yaml", "--match", "most"})
		require.Error(t, cmd.Execute())
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := writeConfig(t, `{"output": "fancy"}`)
		cmd, _, _ := newTestRoot(t, newSearchCmd())

		cmd.SetArgs([]string{"search", "model.yaml", "a.yaml", "--config", cfg})
		require.Error(t, cmd.Execute())
	})
}

func TestSchemaCmd(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRoot(t, newSchemaCmd())

	mockWorkflow.On("Schema", mock.Anything, domain.SchemaArgs{Name: "location"}).Return(nil)

	cmd.SetArgs([]string{"schema", "location"})
	require.NoError(t, cmd.Execute())
}

func TestShowCmd(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRoot(t, newShowCmd())

	mockWorkflow.On("Show", mock.Anything, domain.ShowArgs{Corpus: "asl.yaml", Sign: "HELLO"}).Return(nil)

	cmd.SetArgs([]string{"show", "asl.yaml", "HELLO"})
	require.NoError(t, cmd.Execute())
}

func TestMergeCmd(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cmd, mockWorkflow, _ := newTestRoot(t, newMergeCmd())

		mockWorkflow.On("Merge", mock.Anything, domain.MergeArgs{Target: "a.yaml", Source: "b.yaml"}).Return(nil)

		cmd.SetArgs([]string{"merge", "a.yaml", "b.yaml"})
		require.NoError(t, cmd.Execute())
	})

	t.Run("reassign into new file", func(t *testing.T) {
		cmd, mockWorkflow, _ := newTestRoot(t, newMergeCmd())

		mockWorkflow.On("Merge", mock.Anything, domain.MergeArgs{
			Target: "a.yaml", Source: "b.yaml", Output: "c.yaml", Reassign: true,
		}).Return(nil)

		cmd.SetArgs([]string{"merge", "a.yaml", "b.yaml", "--reassign", "--into", "c.yaml"})
		require.NoError(t, cmd.Execute())
	})

	t.Run("error", func(t *testing.T) {
		cmd, mockWorkflow, _ := newTestRoot(t, newMergeCmd())

		mockWorkflow.On("Merge", mock.Anything, mock.Anything).Return(errors.New("overlap"))

		cmd.SetArgs([]string{"merge", "a.yaml", "b.yaml"})
		require.EqualError(t, cmd.Execute(), "overlap")
	})
}

func TestConfigCmd(t *testing.T) {
	cfg := writeConfig(t, `{"entry_id_digits": 6, "output": "simple"}`)
	cmd, _, out := newTestRoot(t, newConfigCmd())

	cmd.SetArgs([]string{"config", "--config", cfg, "--output", "tui"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), `"entry_id_digits": 6`)
	assert.Contains(t, out.String(), `"output": "tui"`)
	assert.Contains(t, out.String(), "# project: "+cfg)
}

func TestOutputFlagRejectsUnknownMode(t *testing.T) {
	cmd, _, _ := newTestRoot(t, newConfigCmd())

	cmd.SetArgs([]string{"config", "--output", "fancy"})
	require.Error(t, cmd.Execute())
}

func TestUseTTY(t *testing.T) {
	var buf bytes.Buffer

	assert.True(t, useTTY("tui", &buf))
	assert.False(t, useTTY("simple", &buf))
	assert.False(t, useTTY("auto", &buf), "buffers are never terminals")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	newLogger(&buf, false).Debug("hidden")
	assert.Empty(t, buf.String())

	newLogger(&buf, true).Debug("shown")
	assert.Contains(t, buf.String(), "msg=shown")
}
