package adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/domain/corpus"
	m "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/model"
)

const (
	pathStraight    = "Movement type>Perceptual shape>Shape>Straight"
	pathRepetitions = "Movement characteristics>Repetition>Repeated>Number of repetitions"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func sampleCorpus(t *testing.T) *corpus.Corpus {
	t.Helper()

	c := corpus.New("sample", 1)

	sign := corpus.NewSign(m.SignLevelInfo{Gloss: "HELLO", Lemma: "hello", Frequency: 2.5, Fingerspelled: true})
	sign.SignType = []string{"One hand"}
	sign.Xslots = m.XslotStructure{Number: 2, Additional: m.NewFraction(1, 2)}

	mov, err := corpus.NewModule(m.ModuleMovement, m.NewArticulators(m.Hand, 1, 2),
		m.XslotInterval(1),
		m.MustTimingInterval(m.NewTimingPoint(2, 1, 3), m.NewTimingPoint(2, 2, 3)),
	)
	require.NoError(t, err)
	require.NoError(t, mov.Tree.CheckPath(pathStraight))
	require.NoError(t, mov.Tree.SetValue(mov.Tree.Node(pathRepetitions), "3"))
	require.NoError(t, mov.Tree.SetAddedInfo(mov.Tree.Node(pathStraight),
		m.AddedInfo{}.WithFlag(m.InfoFlags()[0], true).WithNote(m.InfoFlags()[0], "approximate")))
	mov.InPhase = m.PhaseOut
	mov.AddedInfo = m.AddedInfo{}.WithIconic(true)
	require.NoError(t, sign.AddModule(mov))

	rel, err := corpus.NewModule(m.ModuleRelation, m.NewArticulators(m.Hand, 1), m.WholeSignInterval())
	require.NoError(t, err)
	rel.Relation.X = "Hand 1"
	rel.Relation.Contact = true
	require.NoError(t, sign.AddModule(rel))

	require.NoError(t, c.AddSign(sign))
	require.NoError(t, c.AddSign(corpus.NewSign(m.SignLevelInfo{Gloss: "BYE"})))

	return c
}

func TestLocalCorpusStore_SaveLoad(t *testing.T) {
	store := NewLocalCorpusStore()
	path := filepath.Join(t.TempDir(), "sample.yaml")
	original := sampleCorpus(t)

	require.NoError(t, store.Save(path, original))

	loaded, err := store.Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, original.Name, loaded.Name)
	assert.Equal(t, original.HighestID, loaded.HighestID)
	require.Len(t, loaded.Signs, 2)

	got, want := loaded.Signs[0], original.Signs[0]
	assert.Equal(t, want.Info, got.Info)
	assert.Equal(t, want.SignType, got.SignType)
	assert.True(t, want.Xslots.Additional.Equal(got.Xslots.Additional))

	wantMov, gotMov := want.Modules(m.ModuleMovement)[0], got.Modules(m.ModuleMovement)[0]
	assert.Equal(t, wantMov.UniqueID, gotMov.UniqueID)
	assert.True(t, wantMov.Articulators.Equal(gotMov.Articulators))
	assert.Equal(t, m.PhaseOut, gotMov.InPhase)
	assert.True(t, gotMov.AddedInfo.Iconic())
	assert.True(t, wantMov.Tree.Equal(gotMov.Tree))
	assert.Equal(t, "3", gotMov.Values()[pathRepetitions])
	require.Len(t, gotMov.TimingIntervals, 2)
	assert.True(t, gotMov.TimingIntervals[1].Start.Equal(m.NewTimingPoint(2, 1, 3)))

	gotRel := got.Modules(m.ModuleRelation)[0]
	assert.Equal(t, m.RelationSpec{X: "Hand 1", Contact: true}, *gotRel.Relation)
}

func TestLocalCorpusStore_LoadHandWritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.yaml")
	writeTestFile(t, path, `
name: handwritten
minimum_id: 10
highest_id: 20
signs:
  - info: {gloss: TREE}
    xslots: {number: 1}
    modules:
      - type: movement
        articulators: {kind: Hand, indices: [1]}
        timingintervals:
          - ["0", "0", "0", "1"]
        tree:
          checkstates:
            "Movement type>Perceptual shape>Shape>Arc": checked
`)

	c, err := NewLocalCorpusStore().Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 10, c.MinimumID)
	assert.Equal(t, 20, c.HighestID, "declared highest id is kept")
	require.Len(t, c.Signs, 1)
	assert.Equal(t, 10, c.Signs[0].Info.EntryID, "signs without an id get the next one")

	mod := c.Signs[0].Modules(m.ModuleMovement)[0]
	assert.NotEmpty(t, mod.UniqueID, "missing unique ids are generated")
	assert.True(t, mod.HasWholeSignTiming())
	assert.Equal(t, []string{"Movement type>Perceptual shape>Shape>Arc"}, mod.CheckedPaths())
}

func TestLocalCorpusStore_LoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not yaml", "signs: [unterminated"},
		{"reversed interval", `
signs:
  - info: {gloss: A}
    modules:
      - type: movement
        timingintervals: [["2", "0", "1", "0"]]
`},
		{"fraction past the x-slot", `
signs:
  - info: {gloss: A}
    modules:
      - type: movement
        timingintervals: [["1", "0", "1", "5/2"]]
`},
		{"short interval", `
signs:
  - info: {gloss: A}
    modules:
      - type: movement
        timingintervals: [["1", "0"]]
`},
		{"unknown path", `
signs:
  - info: {gloss: A}
    modules:
      - type: movement
        tree:
          checkstates: {"No such>Path": checked}
`},
		{"exclusive options both checked", `
signs:
  - info: {gloss: A}
    modules:
      - type: movement
        tree:
          checkstates:
            "Movement type>Perceptual shape>Shape>Straight": checked
            "Movement type>Perceptual shape>Shape>Arc": checked
`},
		{"bad check state", `
signs:
  - info: {gloss: A}
    modules:
      - type: location
        tree:
          checkstates: {"Head": maybe}
`},
		{"bad inphase", `
signs:
  - info: {gloss: A}
    modules:
      - type: movement
        inphase: 42
`},
		{"unknown annotation", `
signs:
  - info: {gloss: A}
    modules:
      - type: movement
        addedinfo:
          flags: {nonsense: {flag: true}}
`},
		{"duplicate entry id", `
signs:
  - info: {entryid: 3, gloss: A}
  - info: {entryid: 3, gloss: B}
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			writeTestFile(t, path, tt.content)

			_, err := NewLocalCorpusStore().Load(context.Background(), path)
			require.ErrorIs(t, err, ErrInvalidRecord)
		})
	}
}

func TestLocalCorpusStore_LoadAll(t *testing.T) {
	store := NewLocalCorpusStore()
	dir := t.TempDir()

	var paths []string

	for _, name := range []string{"a", "b", "c"} {
		path := filepath.Join(dir, name+".yaml")
		require.NoError(t, store.Save(path, corpus.New(name, 1)))
		paths = append(paths, path)
	}

	t.Run("keeps argument order", func(t *testing.T) {
		corpora, err := store.LoadAll(context.Background(), paths...)
		require.NoError(t, err)
		require.Len(t, corpora, 3)

		for i, name := range []string{"a", "b", "c"} {
			assert.Equal(t, name, corpora[i].Name)
		}
	})

	t.Run("fails on a missing file", func(t *testing.T) {
		_, err := store.LoadAll(context.Background(), append(paths, filepath.Join(dir, "missing.yaml"))...)
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("honours cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := store.LoadAll(ctx, paths...)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestLocalCorpusStore_LoadExample(t *testing.T) {
	c, err := NewLocalCorpusStore().Load(context.Background(), "../../examples/corpora/asl.yaml")
	require.NoError(t, err)

	assert.Equal(t, "asl", c.Name)
	require.Len(t, c.Signs, 3)

	again, ok := c.FindByEntryID(2)
	require.True(t, ok)
	assert.Equal(t, "2", again.Modules(m.ModuleMovement)[0].Values()[pathRepetitions])
	require.Len(t, again.Modules(m.ModuleRelation), 1)
	assert.True(t, again.Modules(m.ModuleRelation)[0].Relation.Contact)
}
