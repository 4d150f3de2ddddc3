// Package corpus holds the sign and corpus entities that comparison and
// search operate on.
package corpus

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	ot "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/domain/optiontree"
	"github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/domain/schemas"
	m "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/model"
)

var (
	// ErrModuleNotFound is returned when a module id is not attached to a sign.
	ErrModuleNotFound = errors.New("module not found")
	// ErrDuplicateModule is returned when adding a module whose id is taken.
	ErrDuplicateModule = errors.New("module already attached")
	// ErrUnknownModuleType is returned for module types outside m.ModuleTypes.
	ErrUnknownModuleType = errors.New("unknown module type")
)

// Module is one parameter specification attached to a sign.
type Module struct {
	UniqueID string
	Type     m.ModuleType
	// Tree is set for module types coded in a built-in schema.
	Tree            *ot.Tree
	Articulators    m.Articulators
	InPhase         m.InPhase
	TimingIntervals []m.TimingInterval
	PhonLocs        m.PhonLocs
	LocType         m.LocType
	Relation        *m.RelationSpec
	AddedInfo       m.AddedInfo
}

// NewModule creates a module with a fresh unique id and, for tree-coded
// types, an empty option tree.
func NewModule(typ m.ModuleType, articulators m.Articulators, intervals ...m.TimingInterval) (*Module, error) {
	if !knownType(typ) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModuleType, typ)
	}

	for _, iv := range intervals {
		if err := iv.Validate(); err != nil {
			return nil, fmt.Errorf("failed to create %s module: %w", typ, err)
		}
	}

	mod := &Module{
		UniqueID:        uuid.NewString(),
		Type:            typ,
		Articulators:    articulators,
		TimingIntervals: append([]m.TimingInterval(nil), intervals...),
	}

	if schema, ok := schemas.ForModuleType(typ); ok {
		mod.Tree = ot.MustNew(schema)
	}

	if typ == m.ModuleRelation {
		mod.Relation = &m.RelationSpec{}
	}

	return mod, nil
}

func knownType(typ m.ModuleType) bool {
	for _, t := range m.ModuleTypes() {
		if t == typ {
			return true
		}
	}

	return false
}

// CheckedPaths returns the checked paths of the module's tree, or nil for
// modules without one.
func (mod *Module) CheckedPaths() []string {
	if mod.Tree == nil {
		return nil
	}

	return mod.Tree.CheckedPaths()
}

// Values returns the user-specified values of the module's tree by path.
func (mod *Module) Values() map[string]string {
	if mod.Tree == nil {
		return nil
	}

	return mod.Tree.Serialize().Values
}

// HasWholeSignTiming reports whether any interval spans the whole sign.
func (mod *Module) HasWholeSignTiming() bool {
	for _, iv := range mod.TimingIntervals {
		if iv.IsWholeSign() {
			return true
		}
	}

	return false
}

// Clone returns a deep copy keeping the unique id.
func (mod *Module) Clone() *Module {
	c := *mod
	c.TimingIntervals = append([]m.TimingInterval(nil), mod.TimingIntervals...)
	c.Articulators = m.NewArticulators(mod.Articulators.Kind, mod.Articulators.Selected()...)

	if mod.Tree != nil {
		c.Tree = mod.Tree.Clone()
	}

	if mod.Relation != nil {
		rel := *mod.Relation
		c.Relation = &rel
	}

	return &c
}
