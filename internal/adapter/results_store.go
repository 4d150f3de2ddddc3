package adapter

import (
	"bytes"
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"

	m "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/model"
)

//go:embed schema.sql
var resultsSchema string

// ResultStore exports search results.
type ResultStore interface {
	ExportYAML(path string, rs m.ResultSet) error
	// ExportSQLite appends rs as a new run to the database at path and
	// returns the run id.
	ExportSQLite(ctx context.Context, path string, rs m.ResultSet) (string, error)
}

// LocalResultStore writes result files on the local disk.
type LocalResultStore struct {
	now func() time.Time
}

// NewLocalResultStore constructs a ResultStore backed by the filesystem.
func NewLocalResultStore() ResultStore {
	return &LocalResultStore{now: time.Now}
}

type resultEntryRecord struct {
	Name     string          `yaml:"name"`
	Corpus   string          `yaml:"corpus"`
	Display  []string        `yaml:"display,omitempty"`
	Negative []string        `yaml:"result_type,omitempty"`
	Signs    []signRefRecord `yaml:"signs"`
}

type signRefRecord struct {
	EntryID string `yaml:"entryid"`
	Gloss   string `yaml:"gloss"`
	Lemma   string `yaml:"lemma,omitempty"`
	IDGloss string `yaml:"idgloss,omitempty"`
}

// ExportYAML writes one document listing every entry and its signs.
func (s *LocalResultStore) ExportYAML(path string, rs m.ResultSet) error {
	records := make([]resultEntryRecord, 0, len(rs.Entries))

	for _, e := range rs.Entries {
		rec := resultEntryRecord{
			Name:     e.Name,
			Corpus:   e.Corpus,
			Display:  e.Display,
			Negative: e.Negative,
			Signs:    make([]signRefRecord, 0, len(e.Signs)),
		}

		for _, ref := range e.Signs {
			rec.Signs = append(rec.Signs, signRefRecord{
				EntryID: ref.EntryID,
				Gloss:   ref.Gloss,
				Lemma:   ref.Lemma,
				IDGloss: ref.IDGloss,
			})
		}

		records = append(records, rec)
	}

	data, err := yaml.Marshal(map[string]any{"results": records})
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write results %s: %w", path, err)
	}

	return nil
}

// ExportSQLite stores the flattened result table in a single transaction.
func (s *LocalResultStore) ExportSQLite(ctx context.Context, path string, rs m.ResultSet) (string, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return "", fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, resultsSchema); err != nil {
		return "", fmt.Errorf("init schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	runID := uuid.New().String()
	rows := rs.Table()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO search_runs (id, created_at, entry_count) VALUES (?, ?, ?)",
		runID, s.now(), len(rs.Entries),
	); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO search_results
		(run_id, position, corpus, target_name, target_value, result_type, entry_id, gloss, lemma, id_gloss)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range rows {
		if _, err := stmt.ExecContext(ctx, runID, i,
			row.Corpus, row.TargetName, row.TargetValue, row.ResultType,
			row.EntryID, row.Gloss, row.Lemma, row.IDGloss,
		); err != nil {
			return "", fmt.Errorf("insert result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit results: %w", err)
	}

	return runID, nil
}
