package adapter

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	m "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/model"
)

func sampleResults() m.ResultSet {
	return m.ResultSet{Entries: []m.ResultEntry{
		{
			Name:     "straight",
			Corpus:   "sample",
			Display:  []string{"Shape>Straight"},
			Negative: []string{"Positive"},
			Signs: []m.SignRef{
				{EntryID: "0001", Gloss: "HELLO", Lemma: "hello"},
				{EntryID: "0003", Gloss: "TREE"},
			},
		},
		{Name: "empty", Corpus: "sample", Negative: []string{"Negative"}},
	}}
}

func TestLocalResultStore_ExportYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.yaml")

	require.NoError(t, NewLocalResultStore().ExportYAML(path, sampleResults()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		Results []resultEntryRecord `yaml:"results"`
	}
	require.NoError(t, yaml.Unmarshal(data, &doc))

	require.Len(t, doc.Results, 2)
	assert.Equal(t, "straight", doc.Results[0].Name)
	assert.Equal(t, []string{"Positive"}, doc.Results[0].Negative)
	require.Len(t, doc.Results[0].Signs, 2)
	assert.Equal(t, "0003", doc.Results[0].Signs[1].EntryID)
	assert.Empty(t, doc.Results[1].Signs)
}

func TestLocalResultStore_ExportSQLite(t *testing.T) {
	store := NewLocalResultStore()
	path := filepath.Join(t.TempDir(), "results.db")
	ctx := context.Background()

	first, err := store.ExportSQLite(ctx, path, sampleResults())
	require.NoError(t, err)

	second, err := store.ExportSQLite(ctx, path, sampleResults())
	require.NoError(t, err)
	assert.NotEqual(t, first, second, "each export is a new run")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var runs int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM search_runs").Scan(&runs))
	assert.Equal(t, 2, runs)

	rows, err := db.Query(
		"SELECT entry_id, gloss, result_type FROM search_results WHERE run_id = ? ORDER BY position", first)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rows.Close() })

	var got [][3]string

	for rows.Next() {
		var r [3]string
		require.NoError(t, rows.Scan(&r[0], &r[1], &r[2]))
		got = append(got, r)
	}

	require.NoError(t, rows.Err())
	assert.Equal(t, [][3]string{
		{"0001", "HELLO", "Positive"},
		{"0003", "TREE", "Positive"},
	}, got)
}
