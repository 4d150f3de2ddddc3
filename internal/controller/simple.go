package controller

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/model"
)

// SimpleUI implements UI using plain tables on the command's output.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayComparison prints one row per compared element of either sign.
func (s *SimpleUI) DisplayComparison(sign1, sign2 m.SignRef, comparison m.SignComparison) error {
	s.printf("Comparing %s with %s\n", signTitle(sign1), signTitle(sign2))

	var tableBuffer bytes.Buffer

	table := newTable(&tableBuffer, []string{"Module", "Sign", "Element", "Result"})
	differences := 0

	for _, id := range moduleIDs(comparison.Sign1, comparison.Sign2) {
		for i, side := range []map[string]m.ComparisonTree{comparison.Sign1, comparison.Sign2} {
			tree, ok := side[id]
			if !ok {
				table.Append([]string{id, sideName(i, sign1, sign2), "(module missing)", matchWord(false)})
				differences++

				continue
			}

			for _, leaf := range comparisonLeaves(tree) {
				table.Append([]string{id, sideName(i, sign1, sign2), strings.Join(leaf.path, " > "), matchWord(leaf.match)})

				if !leaf.match {
					differences++
				}
			}
		}
	}

	table.SetFooter([]string{"", "", "Differences", fmt.Sprintf("%d", differences)})
	table.Render()
	s.printf("\n%s", tableBuffer.String())

	if note := pendingNote(comparison.Pending); note != "" {
		s.printf("%s\n", note)
	}

	return nil
}

// DisplayResults prints the flattened result table followed by the targets
// that matched nothing.
func (s *SimpleUI) DisplayResults(rs m.ResultSet) error {
	rows := rs.Table()

	if len(rows) > 0 {
		var tableBuffer bytes.Buffer

		table := newTable(&tableBuffer, m.ResultColumns())
		for _, row := range rows {
			table.Append(row.Cells())
		}

		table.Render()
		s.printf("\n%s", tableBuffer.String())
	}

	for _, e := range rs.Entries {
		if len(e.Signs) == 0 {
			s.printf("%s [%s]: no matching signs\n", e.Name, e.Corpus)
		}
	}

	s.printf("%d target(s), %d matching row(s)\n", len(rs.Entries), len(rows))

	return nil
}

// DisplaySchema prints the tree as an indented outline.
func (s *SimpleUI) DisplaySchema(name string, lines []m.OutlineLine) error {
	s.printf("%s\n", name)

	for _, line := range lines {
		s.printf("%s\n", outlineText(line))
	}

	return nil
}

// DisplaySign prints the sign header and a table of its modules.
func (s *SimpleUI) DisplaySign(sign m.SignSummary) error {
	s.printf("%s in %s\n", signTitle(sign.Ref), sign.Corpus)
	s.printf("x-slots: %s\n", sign.Xslots)

	if len(sign.SignType) > 0 {
		s.printf("sign type: %s\n", strings.Join(sign.SignType, "; "))
	}

	if len(sign.Modules) == 0 {
		s.printf("no modules\n")
		return nil
	}

	var tableBuffer bytes.Buffer

	table := newTable(&tableBuffer, []string{"Module", "Articulators", "Timing", "Elements"})
	for _, mod := range sign.Modules {
		table.Append([]string{
			mod.ID,
			mod.Articulators,
			strings.Join(mod.Timing, ", "),
			strings.Join(moduleElements(mod), "\n"),
		})
	}

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayMessage prints a single line.
func (s *SimpleUI) DisplayMessage(format string, args ...any) {
	s.printf(format+"\n", args...)
}

func (s *SimpleUI) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func newTable(buf *bytes.Buffer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(buf)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	return table
}

func sideName(i int, sign1, sign2 m.SignRef) string {
	if i == 0 {
		return sign1.Gloss
	}

	return sign2.Gloss
}
