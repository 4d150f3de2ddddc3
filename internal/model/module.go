package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ModuleType names a kind of parameter module attached to a sign.
type ModuleType string

const (
	// ModuleMovement is specified through the movement option tree.
	ModuleMovement ModuleType = "movement"
	// ModuleLocation is specified through the location option tree.
	ModuleLocation ModuleType = "location"
	// ModuleRelation relates two articulators or an articulator and a location.
	ModuleRelation ModuleType = "relation"
	// ModuleOrientation records palm and finger-root orientation.
	ModuleOrientation ModuleType = "orientation"
	// ModuleHandConfig records a hand configuration.
	ModuleHandConfig ModuleType = "handconfig"
)

// ModuleTypes lists the module types in canonical order.
func ModuleTypes() []ModuleType {
	return []ModuleType{ModuleMovement, ModuleLocation, ModuleRelation, ModuleOrientation, ModuleHandConfig}
}

// Abbreviation is used when composing human-readable module ids.
func (t ModuleType) Abbreviation() string {
	switch t {
	case ModuleMovement:
		return "Mov"
	case ModuleLocation:
		return "Loc"
	case ModuleRelation:
		return "Rel"
	case ModuleOrientation:
		return "Ori"
	case ModuleHandConfig:
		return "Config"
	default:
		return string(t)
	}
}

// ArticulatorKind is the body part a module applies to.
type ArticulatorKind string

// Articulator kinds.
const (
	Hand ArticulatorKind = "Hand"
	Arm  ArticulatorKind = "Arm"
	Leg  ArticulatorKind = "Leg"
)

// Abbreviation returns the single-letter articulator code.
func (k ArticulatorKind) Abbreviation() string {
	if k == "" {
		return ""
	}

	return string(k)[:1]
}

// Articulators identifies which of a pair of articulators a module covers.
type Articulators struct {
	Kind    ArticulatorKind
	Indices map[int]bool
}

// NewArticulators selects the given 1-based indices of kind.
func NewArticulators(kind ArticulatorKind, indices ...int) Articulators {
	a := Articulators{Kind: kind, Indices: make(map[int]bool, len(indices))}
	for _, i := range indices {
		a.Indices[i] = true
	}

	return a
}

// Selected returns the selected indices in ascending order.
func (a Articulators) Selected() []int {
	selected := make([]int, 0, len(a.Indices))

	for i, on := range a.Indices {
		if on {
			selected = append(selected, i)
		}
	}

	sort.Ints(selected)

	return selected
}

// IsEmpty reports whether no articulator is selected.
func (a Articulators) IsEmpty() bool {
	return a.Kind == "" || len(a.Selected()) == 0
}

// Abbreviation composes codes such as "H1" or "H1H2".
func (a Articulators) Abbreviation() string {
	var sb strings.Builder

	for _, i := range a.Selected() {
		sb.WriteString(a.Kind.Abbreviation())
		sb.WriteString(strconv.Itoa(i))
	}

	return sb.String()
}

// Display is the description shown to coders and matched by searches,
// e.g. "Hand 1" or "Both hands".
func (a Articulators) Display() string {
	selected := a.Selected()

	switch {
	case a.Kind == "" || len(selected) == 0:
		return ""
	case len(selected) == 1:
		return fmt.Sprintf("%s %d", a.Kind, selected[0])
	default:
		return "Both " + strings.ToLower(string(a.Kind)) + "s"
	}
}

// Equal compares kinds and selected indices.
func (a Articulators) Equal(b Articulators) bool {
	if a.Kind != b.Kind {
		return false
	}

	as, bs := a.Selected(), b.Selected()
	if len(as) != len(bs) {
		return false
	}

	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}

	return true
}

// InPhase describes how the two articulators of a bilateral module move.
type InPhase int

// InPhase values as stored in corpus files.
const (
	PhaseIndependent InPhase = iota
	PhaseIn
	PhaseOut
	PhaseConnected
	PhaseConnectedIn
	PhaseConnectedOut
)

func (p InPhase) String() string {
	switch p {
	case PhaseIndependent:
		return "independent"
	case PhaseIn:
		return "in phase"
	case PhaseOut:
		return "out of phase"
	case PhaseConnected:
		return "connected"
	case PhaseConnectedIn:
		return "connected, in phase"
	case PhaseConnectedOut:
		return "connected, out of phase"
	default:
		return "unknown"
	}
}

// Valid reports whether p is one of the defined values.
func (p InPhase) Valid() bool { return p >= PhaseIndependent && p <= PhaseConnectedOut }

// PhonLocs marks the phonological / phonetic status of a specification.
// Location modules only use Major and Minor.
type PhonLocs struct {
	Phonological bool
	Major        bool
	Minor        bool
	Phonetic     bool
}

// Display lists the set flags by name.
func (p PhonLocs) Display() []string {
	var names []string

	if p.Phonological {
		names = append(names, "Phonological")
	}

	if p.Major {
		names = append(names, "Major")
	}

	if p.Minor {
		names = append(names, "Minor")
	}

	if p.Phonetic {
		names = append(names, "Phonetic")
	}

	return names
}

// LocType classifies a location module.
type LocType string

// Location types.
const (
	LocBody               LocType = "body"
	LocSigningSpace       LocType = "signingspace"
	LocSigningSpaceSpace  LocType = "signingspace_spatial"
	LocSigningSpaceAnchor LocType = "signingspace_body"
)

// Display returns the names under which the location type is shown; a
// signing space subtype also displays as signing space.
func (t LocType) Display() []string {
	switch t {
	case LocBody:
		return []string{"Body"}
	case LocSigningSpace:
		return []string{"Signing space"}
	case LocSigningSpaceSpace:
		return []string{"Signing space", "Purely spatial"}
	case LocSigningSpaceAnchor:
		return []string{"Signing space", "Body-anchored"}
	default:
		return nil
	}
}

// RelationSpec is the subset of a relation module that searches inspect.
type RelationSpec struct {
	X       string
	Y       string
	Contact bool
}
