package model

import (
	"fmt"
	"strconv"
	"time"
)

// SignLevelInfo holds the descriptive fields of a sign.
type SignLevelInfo struct {
	EntryID       int
	Gloss         string
	IDGloss       string
	Lemma         string
	Source        string
	Signer        string
	Frequency     float64
	Coder         string
	Created       time.Time
	Modified      time.Time
	Note          string
	Fingerspelled bool
	CompoundSign  bool
	HandDominance string
}

// FormatEntryID renders an entry id zero-padded to digits (0 disables padding).
func FormatEntryID(id, digits int) string {
	if digits <= 0 {
		return strconv.Itoa(id)
	}

	return fmt.Sprintf("%0*d", digits, id)
}

// XslotStructure is the number of x-slots a sign is coded over: Number whole
// x-slots plus an Additional fractional x-slot.
type XslotStructure struct {
	Number     int
	Additional Fraction
}

func (x XslotStructure) String() string {
	if x.Additional.IsZero() {
		return strconv.Itoa(x.Number)
	}

	return fmt.Sprintf("%d + %s", x.Number, x.Additional)
}

// FieldKind tells how a sign-level field is matched.
type FieldKind int

// Field kinds.
const (
	FieldText FieldKind = iota
	FieldNumeric
	FieldBinary
)

// SignLevelField names a searchable sign-level field.
type SignLevelField string

// Searchable sign-level fields.
const (
	FieldEntryID       SignLevelField = "entryid"
	FieldGloss         SignLevelField = "gloss"
	FieldIDGloss       SignLevelField = "idgloss"
	FieldLemma         SignLevelField = "lemma"
	FieldSource        SignLevelField = "source"
	FieldSigner        SignLevelField = "signer"
	FieldFrequency     SignLevelField = "frequency"
	FieldCoder         SignLevelField = "coder"
	FieldNote          SignLevelField = "note"
	FieldHandDominance SignLevelField = "handdominance"
	FieldFingerspelled SignLevelField = "fingerspelled"
	FieldCompoundSign  SignLevelField = "compoundsign"
)

type fieldSpec struct {
	kind   FieldKind
	text   func(SignLevelInfo) string
	binary func(SignLevelInfo) bool
}

var signLevelFields = map[SignLevelField]fieldSpec{
	FieldEntryID:       {kind: FieldNumeric, text: func(i SignLevelInfo) string { return strconv.Itoa(i.EntryID) }},
	FieldGloss:         {kind: FieldText, text: func(i SignLevelInfo) string { return i.Gloss }},
	FieldIDGloss:       {kind: FieldText, text: func(i SignLevelInfo) string { return i.IDGloss }},
	FieldLemma:         {kind: FieldText, text: func(i SignLevelInfo) string { return i.Lemma }},
	FieldSource:        {kind: FieldText, text: func(i SignLevelInfo) string { return i.Source }},
	FieldSigner:        {kind: FieldText, text: func(i SignLevelInfo) string { return i.Signer }},
	FieldFrequency:     {kind: FieldNumeric, text: func(i SignLevelInfo) string { return strconv.FormatFloat(i.Frequency, 'g', -1, 64) }},
	FieldCoder:         {kind: FieldText, text: func(i SignLevelInfo) string { return i.Coder }},
	FieldNote:          {kind: FieldText, text: func(i SignLevelInfo) string { return i.Note }},
	FieldHandDominance: {kind: FieldText, text: func(i SignLevelInfo) string { return i.HandDominance }},
	FieldFingerspelled: {kind: FieldBinary, binary: func(i SignLevelInfo) bool { return i.Fingerspelled }},
	FieldCompoundSign:  {kind: FieldBinary, binary: func(i SignLevelInfo) bool { return i.CompoundSign }},
}

// Kind returns the matching kind of the field and whether the field exists.
func (f SignLevelField) Kind() (FieldKind, bool) {
	spec, ok := signLevelFields[f]

	return spec.kind, ok
}

// TextValue returns the field's text form for text and numeric fields.
func (f SignLevelField) TextValue(info SignLevelInfo) string {
	spec, ok := signLevelFields[f]
	if !ok || spec.text == nil {
		return ""
	}

	return spec.text(info)
}

// BinaryValue returns a binary field's value.
func (f SignLevelField) BinaryValue(info SignLevelInfo) bool {
	spec, ok := signLevelFields[f]
	if !ok || spec.binary == nil {
		return false
	}

	return spec.binary(info)
}
