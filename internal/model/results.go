package model

import "strings"

// SignRef identifies a matching sign in a result entry.
type SignRef struct {
	Gloss   string
	EntryID string
	Lemma   string
	IDGloss string
}

// ResultEntry is the outcome of one target group against one corpus.
type ResultEntry struct {
	Name     string
	Corpus   string
	Display  []string
	Signs    []SignRef
	Negative []string
}

// ResultSet is the ordered outcome of a search.
type ResultSet struct {
	Entries []ResultEntry
}

// Merge appends the entries of other.
func (r ResultSet) Merge(other ResultSet) ResultSet {
	r.Entries = append(append([]ResultEntry(nil), r.Entries...), other.Entries...)

	return r
}

// ResultRow is one line of the flattened result table.
type ResultRow struct {
	Corpus      string
	TargetName  string
	TargetValue string
	ResultType  string
	EntryID     string
	Gloss       string
	Lemma       string
	IDGloss     string
}

// ResultColumns are the headers of the flattened table.
func ResultColumns() []string {
	return []string{"Corpus", "Target name", "Target value", "Result type", "Entry ID", "Gloss", "Lemma", "ID-gloss"}
}

// Cells returns the row in ResultColumns order.
func (r ResultRow) Cells() []string {
	return []string{r.Corpus, r.TargetName, r.TargetValue, r.ResultType, r.EntryID, r.Gloss, r.Lemma, r.IDGloss}
}

// Table flattens the result set to one row per matching sign.
func (r ResultSet) Table() []ResultRow {
	var rows []ResultRow

	for _, e := range r.Entries {
		value := strings.Join(e.Display, "; ")
		kind := strings.Join(e.Negative, "; ")

		for _, s := range e.Signs {
			rows = append(rows, ResultRow{
				Corpus:      e.Corpus,
				TargetName:  e.Name,
				TargetValue: value,
				ResultType:  kind,
				EntryID:     s.EntryID,
				Gloss:       s.Gloss,
				Lemma:       s.Lemma,
				IDGloss:     s.IDGloss,
			})
		}
	}

	return rows
}
