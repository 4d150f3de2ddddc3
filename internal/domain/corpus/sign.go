package corpus

import (
	"fmt"
	"strconv"

	m "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/model"
)

// Sign is a coded sign: descriptive info, sign type, x-slot structure and
// its modules, kept in insertion order per module type.
type Sign struct {
	Info     m.SignLevelInfo
	SignType []string
	Xslots   m.XslotStructure

	modules map[m.ModuleType][]*Module
}

// NewSign creates a sign without modules.
func NewSign(info m.SignLevelInfo) *Sign {
	return &Sign{Info: info, modules: make(map[m.ModuleType][]*Module)}
}

// AddModule attaches mod after the existing modules of its type.
func (s *Sign) AddModule(mod *Module) error {
	if !knownType(mod.Type) {
		return fmt.Errorf("%w: %q", ErrUnknownModuleType, mod.Type)
	}

	if _, ok := s.Module(mod.UniqueID); ok {
		return fmt.Errorf("%w: %s", ErrDuplicateModule, mod.UniqueID)
	}

	if s.modules == nil {
		s.modules = make(map[m.ModuleType][]*Module)
	}

	s.modules[mod.Type] = append(s.modules[mod.Type], mod)

	return nil
}

// SaveModule replaces the module with the same unique id in place, or adds
// it when the sign does not have it yet.
func (s *Sign) SaveModule(mod *Module) error {
	list := s.modules[mod.Type]
	for i, existing := range list {
		if existing.UniqueID == mod.UniqueID {
			list[i] = mod
			return nil
		}
	}

	return s.AddModule(mod)
}

// RemoveModule detaches the module with the given unique id.
func (s *Sign) RemoveModule(uniqueID string) error {
	for typ, list := range s.modules {
		for i, mod := range list {
			if mod.UniqueID != uniqueID {
				continue
			}

			s.modules[typ] = append(list[:i:i], list[i+1:]...)

			return nil
		}
	}

	return fmt.Errorf("%w: %s", ErrModuleNotFound, uniqueID)
}

// Module looks a module up by unique id.
func (s *Sign) Module(uniqueID string) (*Module, bool) {
	for _, list := range s.modules {
		for _, mod := range list {
			if mod.UniqueID == uniqueID {
				return mod, true
			}
		}
	}

	return nil, false
}

// Modules returns the modules of one type in insertion order.
func (s *Sign) Modules(typ m.ModuleType) []*Module {
	return append([]*Module(nil), s.modules[typ]...)
}

// AllModules returns every module, grouped by type in m.ModuleTypes order.
func (s *Sign) AllModules() []*Module {
	var all []*Module
	for _, typ := range m.ModuleTypes() {
		all = append(all, s.modules[typ]...)
	}

	return all
}

// LabelledModule pairs a module with its human-readable id.
type LabelledModule struct {
	ID     string
	Module *Module
}

// ModuleIDs labels the modules of one type as "<articulators>.<type><n>",
// e.g. "H1.Mov1" or "H1H2.Loc2", numbering them in insertion order.
func (s *Sign) ModuleIDs(typ m.ModuleType) []LabelledModule {
	list := s.modules[typ]
	out := make([]LabelledModule, 0, len(list))

	for i, mod := range list {
		id := typ.Abbreviation() + strconv.Itoa(i+1)
		if abbr := mod.Articulators.Abbreviation(); abbr != "" {
			id = abbr + "." + id
		}

		out = append(out, LabelledModule{ID: id, Module: mod})
	}

	return out
}

// Ref identifies the sign in search results.
func (s *Sign) Ref(entryIDDigits int) m.SignRef {
	return m.SignRef{
		Gloss:   s.Info.Gloss,
		EntryID: m.FormatEntryID(s.Info.EntryID, entryIDDigits),
		Lemma:   s.Info.Lemma,
		IDGloss: s.Info.IDGloss,
	}
}

// Clone returns a deep copy of the sign and its modules.
func (s *Sign) Clone() *Sign {
	c := NewSign(s.Info)
	c.SignType = append([]string(nil), s.SignType...)
	c.Xslots = s.Xslots

	for typ, list := range s.modules {
		for _, mod := range list {
			c.modules[typ] = append(c.modules[typ], mod.Clone())
		}
	}

	return c
}
