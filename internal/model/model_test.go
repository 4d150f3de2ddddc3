package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFraction_ReducesAndCompares(t *testing.T) {
	assert.Equal(t, NewFraction(1, 2), NewFraction(2, 4))
	assert.Equal(t, NewFraction(0, 1), Fraction{}, "zero value is 0/1")
	assert.Equal(t, NewFraction(-1, 2), NewFraction(1, -2))
	assert.Equal(t, -1, NewFraction(1, 3).Cmp(NewFraction(1, 2)))
	assert.True(t, NewFraction(3, 3).IsOne())
	assert.True(t, NewFraction(0, 5).IsZero())
	assert.Equal(t, "3/4", NewFraction(6, 8).String())
	assert.Equal(t, "1", NewFraction(4, 4).String())
}

func TestParseFraction(t *testing.T) {
	tests := []struct {
		in      string
		want    Fraction
		wantErr bool
	}{
		{in: "1/4", want: NewFraction(1, 4)},
		{in: " 2 / 4 ", want: NewFraction(1, 2)},
		{in: "1", want: NewFraction(1, 1)},
		{in: "1/0", wantErr: true},
		{in: "x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFraction(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddedInfo_IsImmutableValue(t *testing.T) {
	base := AddedInfo{}
	flagged := base.WithFlag(InfoUncertain, true).WithNote(InfoUncertain, "coder unsure")

	assert.True(t, base.IsEmpty())
	assert.False(t, flagged.IsEmpty())
	assert.Equal(t, Annotation{Flag: true, Note: "coder unsure"}, flagged.Get(InfoUncertain))
	assert.Equal(t, []InfoFlag{InfoUncertain}, flagged.Flagged())

	iconic := flagged.WithIconic(true)
	assert.False(t, flagged.Iconic())
	assert.True(t, iconic.Iconic())
	assert.False(t, iconic.Equal(flagged))

	flag, ok := ParseInfoFlag("notspecified")
	require.True(t, ok)
	assert.Equal(t, InfoNotSpecified, flag)
}

func TestArticulators_DisplayAndAbbreviation(t *testing.T) {
	h1 := NewArticulators(Hand, 1)
	both := NewArticulators(Hand, 2, 1)

	assert.Equal(t, "Hand 1", h1.Display())
	assert.Equal(t, "H1", h1.Abbreviation())
	assert.Equal(t, "Both hands", both.Display())
	assert.Equal(t, "H1H2", both.Abbreviation())
	assert.Equal(t, "A2", NewArticulators(Arm, 2).Abbreviation())
	assert.True(t, both.Equal(NewArticulators(Hand, 1, 2)))
	assert.True(t, Articulators{}.IsEmpty())
}

func TestSearchTarget_DisplayAndPolarity(t *testing.T) {
	target := SearchTarget{
		Name: "cat",
		Type: TargetSignLevel,
		Template: Template{
			Text:   map[SignLevelField]string{FieldGloss: "CAT", FieldLemma: ""},
			Binary: map[SignLevelField]bool{FieldFingerspelled: false},
		},
		Negative: true,
	}

	assert.Equal(t, []string{"gloss: CAT", "fingerspelled: false"}, target.Display())
	assert.Equal(t, "Negative", target.Polarity())
}

func TestParseMatchDegree(t *testing.T) {
	got, err := ParseMatchDegree("ANY")
	require.NoError(t, err)
	assert.Equal(t, MatchAny, got)

	_, err = ParseMatchDegree("some")
	require.Error(t, err)
}

func TestResultSet_Table(t *testing.T) {
	rs := ResultSet{Entries: []ResultEntry{{
		Name:     "row1",
		Corpus:   "asl",
		Display:  []string{"gloss: CAT", "Hand 1"},
		Negative: []string{"Positive"},
		Signs: []SignRef{
			{Gloss: "CAT", EntryID: "0001", Lemma: "cat", IDGloss: "CAT_1"},
			{Gloss: "CAT", EntryID: "0007"},
		},
	}}}

	rows := rs.Table()
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"asl", "row1", "gloss: CAT; Hand 1", "Positive", "0001", "CAT", "cat", "CAT_1"}, rows[0].Cells())
	assert.Len(t, ResultColumns(), len(rows[0].Cells()))
}

func TestComparisonTree_AllMatch(t *testing.T) {
	tree := ComparisonTree{
		"A": Branch(ComparisonTree{"B": Leaf(true)}),
	}
	assert.True(t, tree.AllMatch())

	tree["A"].Children["C"] = Leaf(false)
	assert.False(t, tree.AllMatch())
	assert.Equal(t, []string{"A"}, tree.Keys())

	clone := tree.Clone()
	clone["A"].Children["C"].Match = true
	assert.False(t, tree["A"].Children["C"].Match)
}

func TestFormatEntryID(t *testing.T) {
	assert.Equal(t, "7", FormatEntryID(7, 0))
	assert.Equal(t, "0007", FormatEntryID(7, 4))
}

func TestParseXslotType(t *testing.T) {
	for _, x := range []XslotType{
		{Kind: XslotIgnore},
		{Kind: XslotAbstract},
		{Kind: XslotAbstractWholeSign},
		{Kind: XslotConcrete, N: 3},
	} {
		got, err := ParseXslotType(x.String())
		require.NoError(t, err)
		assert.Equal(t, x, got)
	}

	got, err := ParseXslotType("")
	require.NoError(t, err)
	assert.Equal(t, XslotIgnore, got.Kind)

	_, err = ParseXslotType("concrete(0)")
	require.Error(t, err)

	_, err = ParseXslotType("sometimes")
	require.Error(t, err)
}
