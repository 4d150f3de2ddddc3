package domain

import (
	"github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/domain/corpus"
	m "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/model"
)

// ModuleMatchesXslotType reports whether the module's timing is compatible
// with an x-slot constraint. Whole-sign timing covers every concrete x-slot.
func ModuleMatchesXslotType(mod *corpus.Module, x m.XslotType) bool {
	switch x.Kind {
	case "", m.XslotIgnore:
		return true
	case m.XslotAbstractWholeSign:
		return mod.HasWholeSignTiming()
	case m.XslotAbstract:
		for _, iv := range mod.TimingIntervals {
			if !iv.IsWholeSign() {
				return true
			}
		}

		return false
	case m.XslotConcrete:
		slot := m.XslotInterval(x.N)

		for _, iv := range mod.TimingIntervals {
			if iv.IsWholeSign() || iv.OverlapsInterval(slot) || slot.ContainsInterval(iv) {
				return true
			}
		}

		return false
	default:
		return false
	}
}

// compatibleModules filters mods down to those matching x.
func compatibleModules(mods []*corpus.Module, x m.XslotType) []*corpus.Module {
	var out []*corpus.Module

	for _, mod := range mods {
		if ModuleMatchesXslotType(mod, x) {
			out = append(out, mod)
		}
	}

	return out
}
