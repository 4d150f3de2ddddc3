package controller

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/model"
)

func newTestSimpleUI() (*SimpleUI, *bytes.Buffer) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	return NewSimpleUI(cmd), &buf
}

func sampleComparison() m.SignComparison {
	return m.SignComparison{
		Sign1: map[string]m.ComparisonTree{
			"H1.Mov1": {"Shape": m.Branch(m.ComparisonTree{"Straight": m.Leaf(false)})},
			"H1.Mov2": {"Joint activity": m.Branch(m.ComparisonTree{"Wrist": m.Leaf(true)})},
		},
		Sign2: map[string]m.ComparisonTree{
			"H1.Mov1": {"Shape": m.Branch(m.ComparisonTree{"Arc": m.Leaf(false)})},
		},
		Pending: []m.ModuleType{m.ModuleRelation},
	}
}

func sampleResultSet() m.ResultSet {
	return m.ResultSet{Entries: []m.ResultEntry{
		{
			Name:     "straight",
			Corpus:   "asl",
			Display:  []string{"Shape>Straight"},
			Negative: []string{"Positive"},
			Signs:    []m.SignRef{{EntryID: "0001", Gloss: "HELLO", Lemma: "hello"}},
		},
		{Name: "chin", Corpus: "asl", Negative: []string{"Negative"}},
	}}
}

func TestSimpleUI_DisplayComparison(t *testing.T) {
	ui, buf := newTestSimpleUI()

	err := ui.DisplayComparison(m.SignRef{Gloss: "ONE", EntryID: "0001"}, m.SignRef{Gloss: "TWO", EntryID: "0002"}, sampleComparison())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Comparing ONE (0001) with TWO (0002)")
	assert.Contains(t, out, "Shape > Straight")
	assert.Contains(t, out, "Shape > Arc")
	assert.Contains(t, out, "Joint activity > Wrist")
	assert.Contains(t, out, "(module missing)")
	assert.Contains(t, out, "Not compared yet: relation")

	lines := strings.Split(out, "\n")
	var footer string

	for _, l := range lines {
		if strings.Contains(strings.ToUpper(l), "DIFFERENCES") {
			footer = l
		}
	}

	assert.Contains(t, footer, "3", "two differing leaves plus one missing module")
}

func TestSimpleUI_DisplayResults(t *testing.T) {
	ui, buf := newTestSimpleUI()

	require.NoError(t, ui.DisplayResults(sampleResultSet()))

	out := buf.String()
	assert.Contains(t, out, "HELLO")
	assert.Contains(t, out, "0001")
	assert.Contains(t, out, "Shape>Straight")
	assert.Contains(t, out, "chin [asl]: no matching signs")
	assert.Contains(t, out, "2 target(s), 1 matching row(s)")
}

func TestSimpleUI_DisplayResultsEmpty(t *testing.T) {
	ui, buf := newTestSimpleUI()

	require.NoError(t, ui.DisplayResults(m.ResultSet{}))
	assert.Equal(t, "0 target(s), 0 matching row(s)\n", buf.String())
}

func TestSimpleUI_DisplaySchema(t *testing.T) {
	ui, buf := newTestSimpleUI()

	require.NoError(t, ui.DisplaySchema("movement", []m.OutlineLine{
		{Depth: 0, Label: "Movement type", State: "partial", Kind: "heading"},
		{Depth: 1, Label: "Handshape change", State: "checked", Kind: "radio"},
		{Depth: 1, Label: "Number of cycles", State: "checked", Kind: "number", Value: "2"},
	}))

	assert.Equal(t, "movement\n"+
		"[~] Movement type (heading)\n"+
		"  [x] Handshape change (radio)\n"+
		"  [x] Number of cycles (number) = 2\n", buf.String())
}

func TestSimpleUI_DisplaySign(t *testing.T) {
	ui, buf := newTestSimpleUI()

	require.NoError(t, ui.DisplaySign(m.SignSummary{
		Corpus:   "asl",
		Ref:      m.SignRef{Gloss: "HELLO", EntryID: "0001"},
		Xslots:   "2",
		SignType: []string{"One hand"},
		Modules: []m.ModuleSummary{{
			ID:           "H1.Mov1",
			Articulators: "Hand 1",
			Timing:       []string{"1-1"},
			Paths:        []string{"Shape>Straight", "Number of cycles"},
			Values:       map[string]string{"Number of cycles": "2"},
		}},
	}))

	out := buf.String()
	assert.Contains(t, out, "HELLO (0001) in asl")
	assert.Contains(t, out, "sign type: One hand")
	assert.Contains(t, out, "H1.Mov1")
	assert.Contains(t, out, "Number of cycles = 2")
}

func TestSimpleUI_DisplaySignWithoutModules(t *testing.T) {
	ui, buf := newTestSimpleUI()

	require.NoError(t, ui.DisplaySign(m.SignSummary{Corpus: "asl", Ref: m.SignRef{Gloss: "BYE"}, Xslots: "1"}))
	assert.Equal(t, "BYE in asl\nx-slots: 1\nno modules\n", buf.String())
}

func TestSimpleUI_DisplayMessage(t *testing.T) {
	ui, buf := newTestSimpleUI()

	ui.DisplayMessage("merged %d sign(s) into %s", 3, "asl")
	assert.Equal(t, "merged 3 sign(s) into asl\n", buf.String())
}
