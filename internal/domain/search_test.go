package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/domain/corpus"
	ot "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/domain/optiontree"
	m "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/model"
)

func straightForwardSchema() ot.Schema {
	return ot.Schema{
		Name: "movement",
		Roots: []ot.SchemaNode{
			ot.Opt("Shape",
				ot.Radio("shape", "Straight", ot.Opt("Forward"), ot.Opt("Back")),
				ot.Radio("shape", "Arc"),
			),
		},
	}
}

func forwardMovement(t *testing.T, intervals ...m.TimingInterval) *corpus.Module {
	t.Helper()

	mod, err := corpus.NewModule(m.ModuleMovement, m.NewArticulators(m.Hand, 1), intervals...)
	require.NoError(t, err)

	mod.Tree = ot.MustNew(straightForwardSchema())
	require.NoError(t, mod.Tree.CheckPath("Shape>Straight>Forward"))

	return mod
}

func testCorpus(t *testing.T, signs ...*corpus.Sign) *corpus.Corpus {
	t.Helper()

	c := corpus.New("test", 1)
	for _, s := range signs {
		require.NoError(t, c.AddSign(s))
	}

	return c
}

func glosses(entry m.ResultEntry) []string {
	out := make([]string, 0, len(entry.Signs))
	for _, s := range entry.Signs {
		out = append(out, s.Gloss)
	}

	return out
}

// entriesByName indexes the entries of a single-corpus search by name.
func entriesByName(t *testing.T, rs m.ResultSet) map[string]m.ResultEntry {
	t.Helper()

	out := make(map[string]m.ResultEntry, len(rs.Entries))
	for _, e := range rs.Entries {
		_, dup := out[e.Name]
		require.False(t, dup, "duplicate entry %q", e.Name)
		out[e.Name] = e
	}

	return out
}

func glossTarget(name, gloss string) m.SearchTarget {
	return m.SearchTarget{
		Name:     name,
		Type:     m.TargetSignLevel,
		Template: m.Template{Text: map[m.SignLevelField]string{m.FieldGloss: gloss}},
		Include:  true,
	}
}

func pathTarget(name string, x m.XslotType, paths ...string) m.SearchTarget {
	return m.SearchTarget{
		Name:     name,
		Type:     m.TargetMovement,
		Xslot:    x,
		Template: m.Template{Paths: paths},
		Include:  true,
	}
}

func TestSearch_GlossAndMovementPath(t *testing.T) {
	c := testCorpus(t,
		signWith(t, m.SignLevelInfo{Gloss: "CAT"}, forwardMovement(t, m.WholeSignInterval())),
		signWith(t, m.SignLevelInfo{Gloss: "CAT"}),
		signWith(t, m.SignLevelInfo{Gloss: "DOG"}, forwardMovement(t, m.WholeSignInterval())),
		signWith(t, m.SignLevelInfo{Gloss: "cat"}, forwardMovement(t, m.WholeSignInterval())),
		signWith(t, m.SignLevelInfo{Gloss: "CAT", Lemma: "x-slot"}, forwardMovement(t, m.XslotInterval(1))),
	)

	model := m.SearchModel{
		MatchDegree: m.MatchAll,
		Targets: []m.SearchTarget{
			glossTarget("gloss", "CAT"),
			pathTarget("straight", m.XslotType{Kind: m.XslotAbstractWholeSign}, "Straight>Forward"),
		},
	}

	got, err := NewMatcher().Search(model, c)
	require.NoError(t, err)
	require.Len(t, got.Entries, 1)

	entry := got.Entries[0]
	assert.Equal(t, "gloss, straight", entry.Name)
	assert.Equal(t, "test", entry.Corpus)
	assert.Equal(t, []string{"Positive", "Positive"}, entry.Negative)
	require.Len(t, entry.Signs, 1)
	assert.Equal(t, m.SignRef{Gloss: "CAT", EntryID: "1"}, entry.Signs[0])
}

func TestSearch_MatchAnyGivesOneEntryPerRow(t *testing.T) {
	c := testCorpus(t,
		signWith(t, m.SignLevelInfo{Gloss: "CAT"}),
		signWith(t, m.SignLevelInfo{Gloss: "DOG"}, forwardMovement(t, m.WholeSignInterval())),
	)

	model := m.SearchModel{
		MatchDegree: m.MatchAny,
		Targets: []m.SearchTarget{
			glossTarget("gloss", "CAT"),
			pathTarget("straight", m.XslotType{}, "Straight>Forward"),
		},
	}

	got, err := NewMatcher().Search(model, c)
	require.NoError(t, err)
	require.Len(t, got.Entries, 2)

	byName := entriesByName(t, got)
	assert.Equal(t, []string{"CAT"}, glosses(byName["gloss"]))
	assert.Equal(t, []string{"DOG"}, glosses(byName["straight"]))
	assert.Equal(t, []string{"gloss: CAT"}, byName["gloss"].Display)
}

func TestSearch_NegativeRowsInvert(t *testing.T) {
	c := testCorpus(t,
		signWith(t, m.SignLevelInfo{Gloss: "CAT"}, forwardMovement(t, m.WholeSignInterval())),
		signWith(t, m.SignLevelInfo{Gloss: "CAT", Lemma: "still"}),
		signWith(t, m.SignLevelInfo{Gloss: "DOG"}),
	)

	negative := pathTarget("no straight", m.XslotType{}, "Straight>Forward")
	negative.Negative = true

	t.Run("all", func(t *testing.T) {
		got, err := NewMatcher().Search(m.SearchModel{
			MatchDegree: m.MatchAll,
			Targets:     []m.SearchTarget{glossTarget("gloss", "CAT"), negative},
		}, c)
		require.NoError(t, err)
		require.Len(t, got.Entries, 1)
		require.Len(t, got.Entries[0].Signs, 1)
		assert.Equal(t, "2", got.Entries[0].Signs[0].EntryID)
		assert.Equal(t, []string{"Positive", "Negative"}, got.Entries[0].Negative)
	})

	t.Run("any", func(t *testing.T) {
		got, err := NewMatcher().Search(m.SearchModel{
			MatchDegree: m.MatchAny,
			Targets:     []m.SearchTarget{negative},
		}, c)
		require.NoError(t, err)
		assert.Equal(t, []string{"CAT", "DOG"}, glosses(got.Entries[0]))
	})

	t.Run("negative rows are not merged with positive ones", func(t *testing.T) {
		positive := pathTarget("straight", m.XslotType{}, "Straight>Forward")
		negArc := pathTarget("no arc", m.XslotType{}, "Shape>Arc")
		negArc.Negative = true

		got, err := NewMatcher().Search(m.SearchModel{
			MatchDegree: m.MatchAll,
			Targets:     []m.SearchTarget{positive, negArc},
		}, c)
		require.NoError(t, err)
		assert.Equal(t, []string{"CAT"}, glosses(got.Entries[0]))
	})
}

func TestSearch_ConflictingTargets(t *testing.T) {
	c := testCorpus(t, signWith(t, m.SignLevelInfo{Gloss: "CAT"}))

	t.Run("text", func(t *testing.T) {
		_, err := NewMatcher().Search(m.SearchModel{
			MatchDegree: m.MatchAll,
			Targets:     []m.SearchTarget{glossTarget("a", "CAT"), glossTarget("b", "DOG")},
		}, c)

		var conflict *m.ConflictingTargetError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "gloss", conflict.Field)
		assert.ElementsMatch(t, []string{"CAT", "DOG"}, conflict.Values)
	})

	t.Run("same value twice is fine", func(t *testing.T) {
		got, err := NewMatcher().Search(m.SearchModel{
			MatchDegree: m.MatchAll,
			Targets:     []m.SearchTarget{glossTarget("a", "CAT"), glossTarget("b", "CAT")},
		}, c)
		require.NoError(t, err)
		assert.Len(t, got.Entries[0].Signs, 1)
	})

	t.Run("binary", func(t *testing.T) {
		row := func(name string, v bool) m.SearchTarget {
			return m.SearchTarget{
				Name:     name,
				Type:     m.TargetSignLevel,
				Template: m.Template{Binary: map[m.SignLevelField]bool{m.FieldFingerspelled: v}},
				Include:  true,
			}
		}

		_, err := NewMatcher().Search(m.SearchModel{
			MatchDegree: m.MatchAll,
			Targets:     []m.SearchTarget{row("a", true), row("b", false)},
		}, c)
		require.True(t, errors.Is(err, m.ErrConflictingTarget))
	})

	t.Run("any evaluates rows separately", func(t *testing.T) {
		got, err := NewMatcher().Search(m.SearchModel{
			MatchDegree: m.MatchAny,
			Targets:     []m.SearchTarget{glossTarget("a", "CAT"), glossTarget("b", "DOG")},
		}, c)
		require.NoError(t, err)
		assert.Len(t, got.Entries, 2)
	})
}

func TestSearch_TemplateValues(t *testing.T) {
	mod, err := corpus.NewModule(m.ModuleMovement, m.NewArticulators(m.Hand, 1), m.WholeSignInterval())
	require.NoError(t, err)

	reps := mod.Tree.FindItemsByPath("Number of repetitions")
	require.Len(t, reps, 1)
	require.NoError(t, mod.Tree.SetValue(reps[0], "3"))

	c := testCorpus(t, signWith(t, m.SignLevelInfo{Gloss: "AGAIN"}, mod))

	row := func(path, value string) m.SearchTarget {
		return m.SearchTarget{
			Name:     "reps",
			Type:     m.TargetMovement,
			Template: m.Template{Paths: []string{path}, Values: map[string]string{path: value}},
			Include:  true,
		}
	}

	got, err := NewMatcher().Search(m.SearchModel{MatchDegree: m.MatchAll, Targets: []m.SearchTarget{row("Repeated>Number of repetitions", "3")}}, c)
	require.NoError(t, err)
	assert.Equal(t, []string{"AGAIN"}, glosses(got.Entries[0]))

	got, err = NewMatcher().Search(m.SearchModel{MatchDegree: m.MatchAll, Targets: []m.SearchTarget{row("Repeated>Number of repetitions", "4")}}, c)
	require.NoError(t, err)
	assert.Empty(t, got.Entries[0].Signs)

	_, err = NewMatcher().Search(m.SearchModel{MatchDegree: m.MatchAll, Targets: []m.SearchTarget{row("Shape>Arc", "3")}}, c)

	var invalid *m.InvalidTargetError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "reps", invalid.Target)
}

func TestSearch_UnknownPathsMatchNothing(t *testing.T) {
	c := testCorpus(t, signWith(t, m.SignLevelInfo{Gloss: "CAT"}, forwardMovement(t, m.WholeSignInterval())))

	got, err := NewMatcher().Search(m.SearchModel{
		MatchDegree: m.MatchAll,
		Targets:     []m.SearchTarget{pathTarget("nope", m.XslotType{}, "No>Such>Option")},
	}, c)
	require.NoError(t, err)
	assert.Empty(t, got.Entries[0].Signs)
}

func TestSearch_XslotsSignTypeAndNumericFields(t *testing.T) {
	two := m.XslotStructure{Number: 2}
	half := m.XslotStructure{Number: 2, Additional: m.NewFraction(1, 2)}

	a := signWith(t, m.SignLevelInfo{Gloss: "A"})
	a.Xslots = two
	a.SignType = []string{"One hand>Moves"}

	b := signWith(t, m.SignLevelInfo{Gloss: "B"})
	b.Xslots = half

	c := testCorpus(t, a, b)

	got, err := NewMatcher().Search(m.SearchModel{
		MatchDegree: m.MatchAny,
		Targets: []m.SearchTarget{
			{Name: "xslots", Type: m.TargetXslot, Template: m.Template{Xslots: &half}, Include: true},
			{Name: "type", Type: m.TargetSignType, Template: m.Template{SignTypePaths: []string{"One hand>Moves"}}, Include: true},
			{Name: "id", Type: m.TargetSignLevel, Template: m.Template{Text: map[m.SignLevelField]string{m.FieldEntryID: "0002"}}, Include: true},
			{Name: "excluded", Type: m.TargetSignLevel, Template: m.Template{Text: map[m.SignLevelField]string{m.FieldGloss: "A"}}},
		},
	}, c)
	require.NoError(t, err)
	require.Len(t, got.Entries, 3)

	byName := entriesByName(t, got)
	assert.Equal(t, []string{"B"}, glosses(byName["xslots"]))
	assert.Equal(t, []string{"A"}, glosses(byName["type"]))
	assert.Equal(t, []string{"B"}, glosses(byName["id"]))
}

func TestSearch_LocationAndRelation(t *testing.T) {
	loc, err := corpus.NewModule(m.ModuleLocation, m.NewArticulators(m.Hand, 1), m.XslotInterval(1))
	require.NoError(t, err)
	require.NoError(t, loc.Tree.CheckPath("Head>Face>Chin"))
	loc.PhonLocs = m.PhonLocs{Major: true}
	loc.LocType = m.LocSigningSpaceAnchor

	rel, err := corpus.NewModule(m.ModuleRelation, m.NewArticulators(m.Hand, 1, 2), m.WholeSignInterval())
	require.NoError(t, err)
	rel.Relation.Contact = true

	c := testCorpus(t,
		signWith(t, m.SignLevelInfo{Gloss: "CHIN"}, loc, rel),
		signWith(t, m.SignLevelInfo{Gloss: "NONE"}),
	)

	yes := true
	hand1 := m.NewArticulators(m.Hand, 1)
	both := m.NewArticulators(m.Hand, 1, 2)

	tests := []struct {
		name   string
		target m.SearchTarget
		want   []string
	}{
		{"path in x-slot 1", m.SearchTarget{Type: m.TargetLocation, Xslot: m.XslotType{Kind: m.XslotConcrete, N: 1}, Template: m.Template{Paths: []string{"Chin"}}}, []string{"CHIN"}},
		{"path in x-slot 2", m.SearchTarget{Type: m.TargetLocation, Xslot: m.XslotType{Kind: m.XslotConcrete, N: 2}, Template: m.Template{Paths: []string{"Chin"}}}, []string{}},
		{"articulators", m.SearchTarget{Type: m.TargetLocation, Template: m.Template{Articulators: &hand1}}, []string{"CHIN"}},
		{"wrong articulators", m.SearchTarget{Type: m.TargetLocation, Template: m.Template{Articulators: &both}}, []string{}},
		{"phonlocs subset", m.SearchTarget{Type: m.TargetLocation, Template: m.Template{PhonLocs: &m.PhonLocs{Major: true}}}, []string{"CHIN"}},
		{"phonlocs missing", m.SearchTarget{Type: m.TargetLocation, Template: m.Template{PhonLocs: &m.PhonLocs{Minor: true}}}, []string{}},
		{"loc type parent", m.SearchTarget{Type: m.TargetLocation, Template: m.Template{LocType: m.LocSigningSpace}}, []string{"CHIN"}},
		{"loc type other", m.SearchTarget{Type: m.TargetLocation, Template: m.Template{LocType: m.LocBody}}, []string{}},
		{"relation contact", m.SearchTarget{Type: m.TargetRelation, Template: m.Template{Contact: &yes, Articulators: &both}}, []string{"CHIN"}},
		{"relation articulators", m.SearchTarget{Type: m.TargetRelation, Template: m.Template{Articulators: &hand1}}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.target.Name = tt.name
			tt.target.Include = true

			got, err := NewMatcher().Search(m.SearchModel{MatchDegree: m.MatchAll, Targets: []m.SearchTarget{tt.target}}, c)
			require.NoError(t, err)
			assert.Equal(t, tt.want, glosses(got.Entries[0]))
		})
	}
}

func TestSearch_InvalidRows(t *testing.T) {
	c := testCorpus(t)

	tests := []struct {
		name   string
		target m.SearchTarget
	}{
		{"unknown type", m.SearchTarget{Type: "handshape"}},
		{"bad x-slot", m.SearchTarget{Type: m.TargetMovement, Xslot: m.XslotType{Kind: m.XslotConcrete}}},
		{"loc type on movement", m.SearchTarget{Type: m.TargetMovement, Template: m.Template{LocType: m.LocBody}}},
		{"binary field as text", m.SearchTarget{Type: m.TargetSignLevel, Template: m.Template{Text: map[m.SignLevelField]string{m.FieldFingerspelled: "yes"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.target.Name = tt.name
			tt.target.Include = true

			_, err := NewMatcher().Search(m.SearchModel{MatchDegree: m.MatchAll, Targets: []m.SearchTarget{tt.target}}, c)
			require.ErrorIs(t, err, m.ErrInvalidTarget)
		})
	}
}

func TestSearch_EmptyModel(t *testing.T) {
	got, err := NewMatcher().Search(m.SearchModel{}, testCorpus(t))
	require.NoError(t, err)
	assert.Empty(t, got.Entries)
}

func TestSearch_ResultTable(t *testing.T) {
	c := testCorpus(t,
		signWith(t, m.SignLevelInfo{Gloss: "CAT", Lemma: "cat", IDGloss: "CAT1"}),
	)

	got, err := NewMatcher(WithEntryIDDigits(3)).Search(m.SearchModel{
		MatchDegree: m.MatchAll,
		Targets:     []m.SearchTarget{glossTarget("gloss", "CAT")},
	}, c)
	require.NoError(t, err)

	rows := got.Table()
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"test", "gloss", "gloss: CAT", "Positive", "001", "CAT", "cat", "CAT1"}, rows[0].Cells())
}
