package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// TargetType is the kind of constraint a search row expresses.
type TargetType string

// Target types, listed in dispatch order.
const (
	TargetXslot     TargetType = "xslot"
	TargetSignLevel TargetType = "signlevel"
	TargetSignType  TargetType = "signtype"
	TargetMovement  TargetType = "movement"
	TargetLocation  TargetType = "location"
	TargetRelation  TargetType = "relation"
)

// TargetTypeOrder is the fixed order in which target groups are evaluated.
func TargetTypeOrder() []TargetType {
	return []TargetType{TargetXslot, TargetSignLevel, TargetSignType, TargetMovement, TargetLocation, TargetRelation}
}

// ModuleType maps module-backed target types to the module type they search.
func (t TargetType) ModuleType() (ModuleType, bool) {
	switch t {
	case TargetMovement:
		return ModuleMovement, true
	case TargetLocation:
		return ModuleLocation, true
	case TargetRelation:
		return ModuleRelation, true
	default:
		return "", false
	}
}

// XslotKind says how a target relates to the sign's x-slot timeline.
type XslotKind string

// X-slot kinds.
const (
	XslotIgnore            XslotKind = "ignore"
	XslotAbstract          XslotKind = "abstract_xslot"
	XslotAbstractWholeSign XslotKind = "abstract_whole_sign"
	XslotConcrete          XslotKind = "concrete"
)

// XslotType is a target's x-slot constraint; N is the 1-based x-slot for
// XslotConcrete.
type XslotType struct {
	Kind XslotKind
	N    int
}

func (x XslotType) String() string {
	if x.Kind == XslotConcrete {
		return fmt.Sprintf("%s(%d)", x.Kind, x.N)
	}

	if x.Kind == "" {
		return string(XslotIgnore)
	}

	return string(x.Kind)
}

// ParseXslotType reads the String form of an x-slot constraint, e.g.
// "abstract_whole_sign" or "concrete(2)". The empty string means ignore.
func ParseXslotType(s string) (XslotType, error) {
	s = strings.TrimSpace(s)

	switch XslotKind(s) {
	case "", XslotIgnore:
		return XslotType{Kind: XslotIgnore}, nil
	case XslotAbstract, XslotAbstractWholeSign:
		return XslotType{Kind: XslotKind(s)}, nil
	}

	var n int
	if _, err := fmt.Sscanf(s, string(XslotConcrete)+"(%d)", &n); err != nil || n < 1 {
		return XslotType{}, fmt.Errorf("invalid x-slot type %q", s)
	}

	return XslotType{Kind: XslotConcrete, N: n}, nil
}

// Template is the partially populated, module-shaped value a target matches
// against. Zero-valued fields do not constrain the match.
type Template struct {
	Xslots *XslotStructure

	Text   map[SignLevelField]string
	Binary map[SignLevelField]bool

	SignTypePaths []string

	Articulators *Articulators
	Paths        []string
	Values       map[string]string
	PhonLocs     *PhonLocs
	LocType      LocType

	Contact *bool
}

// SearchTarget is one row of a search model.
type SearchTarget struct {
	Name     string
	Type     TargetType
	Xslot    XslotType
	Template Template
	Include  bool
	Negative bool
}

// Polarity is the "Positive"/"Negative" tag shown for a row.
func (t SearchTarget) Polarity() string {
	if t.Negative {
		return "Negative"
	}

	return "Positive"
}

// Display renders the constraints of the row as human-readable strings.
func (t SearchTarget) Display() []string {
	tpl := t.Template

	var out []string

	if tpl.Xslots != nil {
		out = append(out, "x-slots: "+tpl.Xslots.String())
	}

	for _, field := range sortedFields(tpl.Text) {
		if v := tpl.Text[field]; v != "" {
			out = append(out, fmt.Sprintf("%s: %s", field, v))
		}
	}

	for _, field := range sortedFields(tpl.Binary) {
		out = append(out, fmt.Sprintf("%s: %t", field, tpl.Binary[field]))
	}

	out = append(out, tpl.SignTypePaths...)

	if tpl.Articulators != nil && !tpl.Articulators.IsEmpty() {
		out = append(out, tpl.Articulators.Display())
	}

	for _, p := range tpl.Paths {
		if v, ok := tpl.Values[p]; ok {
			out = append(out, fmt.Sprintf("%s = %s", p, v))
			continue
		}

		out = append(out, p)
	}

	if tpl.PhonLocs != nil {
		out = append(out, tpl.PhonLocs.Display()...)
	}

	out = append(out, tpl.LocType.Display()...)

	if tpl.Contact != nil {
		out = append(out, fmt.Sprintf("contact: %t", *tpl.Contact))
	}

	if t.Xslot.Kind != "" && t.Xslot.Kind != XslotIgnore {
		out = append(out, "timing: "+t.Xslot.String())
	}

	return out
}

func sortedFields[V any](m map[SignLevelField]V) []SignLevelField {
	fields := make([]SignLevelField, 0, len(m))
	for f := range m {
		fields = append(fields, f)
	}

	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })

	return fields
}

// MatchDegree says how the included rows of a model combine.
type MatchDegree string

// Match degrees.
const (
	MatchAll MatchDegree = "all"
	MatchAny MatchDegree = "any"
)

// ParseMatchDegree validates a match degree name.
func ParseMatchDegree(s string) (MatchDegree, error) {
	switch MatchDegree(strings.ToLower(s)) {
	case MatchAll:
		return MatchAll, nil
	case MatchAny:
		return MatchAny, nil
	default:
		return "", fmt.Errorf("invalid match degree %q (want %q or %q)", s, MatchAll, MatchAny)
	}
}

// SearchModel is an ordered list of search rows plus how they combine.
type SearchModel struct {
	Targets     []SearchTarget
	MatchDegree MatchDegree
}

// Included returns the rows flagged for inclusion, in order.
func (m SearchModel) Included() []SearchTarget {
	var rows []SearchTarget

	for _, t := range m.Targets {
		if t.Include {
			rows = append(rows, t)
		}
	}

	return rows
}

var (
	// ErrConflictingTarget is wrapped by ConflictingTargetError.
	ErrConflictingTarget = errors.New("conflicting search target")
	// ErrInvalidTarget is wrapped by InvalidTargetError.
	ErrInvalidTarget = errors.New("invalid search target")
)

// ConflictingTargetError reports rows of one group that constrain the same
// field to different values, which no sign can satisfy.
type ConflictingTargetError struct {
	Field  string
	Values []string
}

func (e *ConflictingTargetError) Error() string {
	return fmt.Sprintf("%v: field %s has values %s", ErrConflictingTarget, e.Field, strings.Join(e.Values, ", "))
}

func (e *ConflictingTargetError) Unwrap() error { return ErrConflictingTarget }

// InvalidTargetError reports a row that does not fit its schema.
type InvalidTargetError struct {
	Target string
	Reason string
}

func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("%v %q: %s", ErrInvalidTarget, e.Target, e.Reason)
}

func (e *InvalidTargetError) Unwrap() error { return ErrInvalidTarget }
