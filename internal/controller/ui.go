// Package controller renders comparisons, search results and schemas.
package controller

import (
	m "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/model"
)

// UI defines the interface for displaying command output.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	DisplayComparison(sign1, sign2 m.SignRef, comparison m.SignComparison) error
	DisplayResults(rs m.ResultSet) error
	DisplaySchema(name string, lines []m.OutlineLine) error
	DisplaySign(sign m.SignSummary) error
	DisplayMessage(format string, args ...any)
}
