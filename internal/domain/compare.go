package domain

import (
	"slices"

	"github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/domain/corpus"
	ot "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/domain/optiontree"
	m "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/model"
)

// Comparer produces the structural diff of two signs.
type Comparer interface {
	Compare(sign1, sign2 *corpus.Sign) m.SignComparison
}

// moduleHandler compares the labelled modules of one type and writes one
// summarized tree per module id into out1 and out2. It reports false when
// the module type cannot be compared yet.
type moduleHandler func(mods1, mods2 []corpus.LabelledModule, out1, out2 map[string]m.ComparisonTree) bool

type comparer struct {
	handlers map[m.ModuleType]moduleHandler
}

// NewComparer creates a Comparer for movement and location modules. Other
// module types are reported as pending.
func NewComparer() Comparer {
	return &comparer{
		handlers: map[m.ModuleType]moduleHandler{
			m.ModuleMovement:    compareTreeModules,
			m.ModuleLocation:    compareTreeModules,
			m.ModuleRelation:    pendingModules,
			m.ModuleOrientation: pendingModules,
			m.ModuleHandConfig:  pendingModules,
		},
	}
}

// Compare diffs every module type with a registered handler.
func (c *comparer) Compare(sign1, sign2 *corpus.Sign) m.SignComparison {
	result := m.SignComparison{
		Sign1: make(map[string]m.ComparisonTree),
		Sign2: make(map[string]m.ComparisonTree),
	}

	for _, typ := range m.ModuleTypes() {
		handle, ok := c.handlers[typ]
		if !ok {
			continue
		}

		mods1, mods2 := sign1.ModuleIDs(typ), sign2.ModuleIDs(typ)
		if len(mods1) == 0 && len(mods2) == 0 {
			continue
		}

		if !handle(mods1, mods2, result.Sign1, result.Sign2) {
			result.Pending = append(result.Pending, typ)
		}
	}

	return result
}

func pendingModules(_, _ []corpus.LabelledModule, _, _ map[string]m.ComparisonTree) bool {
	return false
}

func compareTreeModules(mods1, mods2 []corpus.LabelledModule, out1, out2 map[string]m.ComparisonTree) bool {
	byID2 := make(map[string]*corpus.Module, len(mods2))
	for _, lm := range mods2 {
		byID2[lm.ID] = lm.Module
	}

	byID1 := make(map[string]bool, len(mods1))

	for _, lm := range mods1 {
		byID1[lm.ID] = true

		other, shared := byID2[lm.ID]
		if !shared {
			out1[lm.ID] = unmatchedSummary(lm.Module.CheckedPaths())
			continue
		}

		out1[lm.ID], out2[lm.ID] = compareModules(lm.Module, other)
	}

	for _, lm := range mods2 {
		if !byID1[lm.ID] {
			out2[lm.ID] = unmatchedSummary(lm.Module.CheckedPaths())
		}
	}

	return true
}

// compareModules compares the informative paths of two modules sharing an
// id. Paths are only compared with paths under the same top-level option.
func compareModules(mod1, mod2 *corpus.Module) (m.ComparisonTree, m.ComparisonTree) {
	elems1 := InformativeElements(mod1.CheckedPaths())
	elems2 := InformativeElements(mod2.CheckedPaths())

	var results1, results2 []m.ComparisonTree

	matched2 := make([]bool, len(elems2))

	for _, e1 := range elems1 {
		root := ot.PathRoot(e1)
		found := false

		for j, e2 := range elems2 {
			if ot.PathRoot(e2) != root {
				continue
			}

			found = true
			matched2[j] = true
			t1, t2 := CompareElements(e1, e2, true)
			results1 = append(results1, t1)
			results2 = append(results2, t2)
		}

		if !found {
			t1, _ := CompareElements(e1, "", false)
			results1 = append(results1, t1)
		}
	}

	for j, e2 := range elems2 {
		if matched2[j] {
			continue
		}

		t2, _ := CompareElements(e2, "", false)
		results2 = append(results2, t2)
	}

	return SummarizePathComparison(results1...), SummarizePathComparison(results2...)
}

// unmatchedSummary renders the selections of a module that has no
// counterpart in the other sign.
func unmatchedSummary(paths []string) m.ComparisonTree {
	elems := InformativeElements(paths)
	results := make([]m.ComparisonTree, 0, len(elems))

	for _, e := range elems {
		t, _ := CompareElements(e, e, false)
		results = append(results, t)
	}

	return SummarizePathComparison(results...)
}

// SortedModuleIDs returns the module ids of a comparison side in order.
func SortedModuleIDs(side map[string]m.ComparisonTree) []string {
	ids := make([]string, 0, len(side))
	for id := range side {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	return ids
}
