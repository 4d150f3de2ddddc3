package model

// InfoFlag identifies one of the annotation categories a coder can attach to
// a selection or a module.
type InfoFlag int

// Annotation categories.
const (
	InfoUncertain InfoFlag = iota
	InfoEstimated
	InfoNotSpecified
	InfoVariable
	InfoExceptional
	InfoOther
	infoFlagCount
)

var infoFlagNames = [...]string{
	InfoUncertain:    "uncertain",
	InfoEstimated:    "estimated",
	InfoNotSpecified: "notspecified",
	InfoVariable:     "variable",
	InfoExceptional:  "exceptional",
	InfoOther:        "other",
}

func (f InfoFlag) String() string {
	if f < 0 || f >= infoFlagCount {
		return "unknown"
	}

	return infoFlagNames[f]
}

// InfoFlags lists every annotation category in display order.
func InfoFlags() []InfoFlag {
	flags := make([]InfoFlag, 0, infoFlagCount)
	for f := InfoUncertain; f < infoFlagCount; f++ {
		flags = append(flags, f)
	}

	return flags
}

// ParseInfoFlag maps a category name back to its flag.
func ParseInfoFlag(name string) (InfoFlag, bool) {
	for f, n := range infoFlagNames {
		if n == name {
			return InfoFlag(f), true
		}
	}

	return 0, false
}

// Annotation is the flag and free-text note for a single category.
type Annotation struct {
	Flag bool
	Note string
}

// AddedInfo is an immutable set of annotations. Mutators return a new value,
// so an AddedInfo can be shared between trees and modules without copying.
type AddedInfo struct {
	entries [infoFlagCount]Annotation
	iconic  bool
}

// Get returns the annotation for a category.
func (a AddedInfo) Get(flag InfoFlag) Annotation {
	if flag < 0 || flag >= infoFlagCount {
		return Annotation{}
	}

	return a.entries[flag]
}

// With returns a copy of a with the given category replaced.
func (a AddedInfo) With(flag InfoFlag, ann Annotation) AddedInfo {
	if flag < 0 || flag >= infoFlagCount {
		return a
	}

	a.entries[flag] = ann

	return a
}

// WithFlag sets only the flag of a category, keeping its note.
func (a AddedInfo) WithFlag(flag InfoFlag, on bool) AddedInfo {
	ann := a.Get(flag)
	ann.Flag = on

	return a.With(flag, ann)
}

// WithNote sets only the note of a category, keeping its flag.
func (a AddedInfo) WithNote(flag InfoFlag, note string) AddedInfo {
	ann := a.Get(flag)
	ann.Note = note

	return a.With(flag, ann)
}

// Iconic reports the iconicity flag.
func (a AddedInfo) Iconic() bool { return a.iconic }

// WithIconic returns a copy with the iconicity flag set.
func (a AddedInfo) WithIconic(on bool) AddedInfo {
	a.iconic = on

	return a
}

// IsEmpty reports whether no flag or note is set.
func (a AddedInfo) IsEmpty() bool {
	return a == AddedInfo{}
}

// Equal reports whether a and b carry the same annotations.
func (a AddedInfo) Equal(b AddedInfo) bool { return a == b }

// Flagged lists the categories whose flag is set.
func (a AddedInfo) Flagged() []InfoFlag {
	var flags []InfoFlag

	for _, f := range InfoFlags() {
		if a.entries[f].Flag {
			flags = append(flags, f)
		}
	}

	return flags
}
