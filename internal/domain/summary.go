package domain

import (
	"github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/domain/corpus"
	ot "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/domain/optiontree"
	m "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/model"
)

// Outline flattens tree into display lines in preorder.
func Outline(tree *ot.Tree) []m.OutlineLine {
	var lines []m.OutlineLine

	var visit func(n *ot.Node)
	visit = func(n *ot.Node) {
		line := m.OutlineLine{
			Depth: n.Depth() - 1,
			Label: n.Label(),
			State: n.State().String(),
			Value: n.Value(),
		}

		switch {
		case n.NoControl():
			line.Kind = "heading"
		case n.UserSpecifiable():
			line.Kind = string(n.Editable())
		case n.Group() != "":
			line.Kind = "radio"
		}

		lines = append(lines, line)

		for _, c := range n.Children() {
			visit(c)
		}
	}

	for _, root := range tree.Roots() {
		visit(root)
	}

	return lines
}

// SummarizeSign lists the sign's modules in module type order.
func SummarizeSign(corpusName string, s *corpus.Sign, entryIDDigits int) m.SignSummary {
	sum := m.SignSummary{
		Corpus:   corpusName,
		Ref:      s.Ref(entryIDDigits),
		Xslots:   s.Xslots.String(),
		SignType: s.SignType,
	}

	for _, typ := range m.ModuleTypes() {
		for _, lm := range s.ModuleIDs(typ) {
			mod := lm.Module
			ms := m.ModuleSummary{
				ID:           lm.ID,
				Type:         mod.Type,
				Articulators: mod.Articulators.Display(),
				InPhase:      mod.InPhase.String(),
				Paths:        InformativeElements(mod.CheckedPaths()),
				Values:       mod.Values(),
				Relation:     mod.Relation,
			}

			for _, iv := range mod.TimingIntervals {
				ms.Timing = append(ms.Timing, iv.String())
			}

			sum.Modules = append(sum.Modules, ms)
		}
	}

	return sum
}
