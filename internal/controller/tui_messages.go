package controller

// Message types.
type resultsMsg struct {
	rows    []resultItem
	targets int
	empty   []string
}

// List item types.
type resultItem struct {
	corpus  string
	target  string
	entryID string
	gloss   string
	kind    string
}

func (r resultItem) FilterValue() string {
	return r.target + " " + r.gloss + " " + r.entryID + " " + r.corpus
}
