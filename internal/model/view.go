package model

// OutlineLine is one indented line of a rendered option tree.
type OutlineLine struct {
	Depth int
	Label string
	// State is "checked", "partial" or "unchecked".
	State string
	// Kind marks exclusive options ("radio"), editable leaves ("number",
	// "text") and uncheckable headings ("heading"); empty otherwise.
	Kind  string
	Value string
}

// ModuleSummary describes one coded module of a sign.
type ModuleSummary struct {
	ID           string
	Type         ModuleType
	Articulators string
	Timing       []string
	InPhase      string
	Paths        []string
	Values       map[string]string
	Relation     *RelationSpec
}

// SignSummary describes a sign and its modules.
type SignSummary struct {
	Corpus   string
	Ref      SignRef
	Xslots   string
	SignType []string
	Modules  []ModuleSummary
}
