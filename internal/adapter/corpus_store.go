// Package adapter contains the file, database and configuration adapters.
package adapter

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/domain/corpus"
)

// CorpusStore persists and retrieves corpora.
type CorpusStore interface {
	Load(ctx context.Context, path string) (*corpus.Corpus, error)
	LoadAll(ctx context.Context, paths ...string) ([]*corpus.Corpus, error)
	Save(path string, c *corpus.Corpus) error
}

// LocalCorpusStore reads and writes YAML corpus files on the local disk.
type LocalCorpusStore struct{}

// NewLocalCorpusStore constructs a CorpusStore backed by the filesystem.
func NewLocalCorpusStore() CorpusStore {
	return &LocalCorpusStore{}
}

// Load reads a single corpus file.
func (s *LocalCorpusStore) Load(ctx context.Context, path string) (*corpus.Corpus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus %s: %w", path, err)
	}

	var rec corpusRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse corpus %s: %w: %w", path, ErrInvalidRecord, err)
	}

	c, err := fromCorpusRecord(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus %s: %w", path, err)
	}

	return c, nil
}

// LoadAll reads every path concurrently and returns the corpora in argument
// order. The first failure cancels the remaining reads.
func (s *LocalCorpusStore) LoadAll(ctx context.Context, paths ...string) ([]*corpus.Corpus, error) {
	corpora := make([]*corpus.Corpus, len(paths))
	g, gctx := errgroup.WithContext(ctx)

	for i, path := range paths {
		g.Go(func() error {
			c, err := s.Load(gctx, path)
			if err != nil {
				return err
			}

			corpora[i] = c

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return corpora, nil
}

// Save writes c to path atomically.
func (s *LocalCorpusStore) Save(path string, c *corpus.Corpus) error {
	data, err := yaml.Marshal(toCorpusRecord(c))
	if err != nil {
		return fmt.Errorf("failed to encode corpus %s: %w", c.Name, err)
	}

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write corpus %s: %w", path, err)
	}

	return nil
}
