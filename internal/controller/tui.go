package controller

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/PhonologicalCorpusTools/SLPAA-sub002/internal/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Padding(1, 0, 0, 2)
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Padding(0, 0, 1, 2)
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	moduleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	matchStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	differStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	columnStyle  = lipgloss.NewStyle().Width(48).PaddingRight(2)
	sectionStyle = lipgloss.NewStyle().Padding(0, 0, 1, 2)
)

// TUI implements UI with lipgloss styling. Output taller than the terminal
// opens an interactive Bubble Tea program instead of being printed.
type TUI struct {
	output io.Writer
	height int
	run    func(tea.Model) error
}

// NewTUI creates a TUI writing to output. height is the terminal height in
// lines; 0 never paginates.
func NewTUI(output io.Writer, height int) *TUI {
	t := &TUI{output: output, height: height}
	t.run = func(model tea.Model) error {
		program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
		_, err := program.Run()

		return err
	}

	return t
}

// DisplayComparison renders the two signs' trees side by side per module.
func (t *TUI) DisplayComparison(sign1, sign2 m.SignRef, comparison m.SignComparison) error {
	title := fmt.Sprintf("%s ↔ %s", signTitle(sign1), signTitle(sign2))

	var sections []string

	for _, id := range moduleIDs(comparison.Sign1, comparison.Sign2) {
		left := renderComparisonColumn(sign1.Gloss, comparison.Sign1, id)
		right := renderComparisonColumn(sign2.Gloss, comparison.Sign2, id)

		sections = append(sections, sectionStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			moduleStyle.Render(id),
			lipgloss.JoinHorizontal(lipgloss.Top, columnStyle.Render(left), columnStyle.Render(right)),
		)))
	}

	if note := pendingNote(comparison.Pending); note != "" {
		sections = append(sections, sectionStyle.Render(mutedStyle.Render(note)))
	}

	if len(sections) == 0 {
		sections = append(sections, sectionStyle.Render(mutedStyle.Render("No modules to compare")))
	}

	return t.show(title, strings.Join(sections, "\n"))
}

func renderComparisonColumn(gloss string, side map[string]m.ComparisonTree, id string) string {
	lines := []string{accentStyle.Render(gloss)}

	tree, ok := side[id]
	if !ok {
		return strings.Join(append(lines, differStyle.Render("✗ (module missing)")), "\n")
	}

	for _, l := range flattenComparison(tree) {
		mark, style := "✓", matchStyle
		if !l.match {
			mark, style = "✗", differStyle
		}

		lines = append(lines, strings.Repeat("  ", l.depth)+style.Render(mark+" "+l.label))
	}

	return strings.Join(lines, "\n")
}

// DisplayResults prints short result sets and opens a filterable list for
// long ones.
func (t *TUI) DisplayResults(rs m.ResultSet) error {
	msg := resultsMsg{targets: len(rs.Entries)}

	for _, row := range rs.Table() {
		msg.rows = append(msg.rows, resultItem{
			corpus:  row.Corpus,
			target:  row.TargetName,
			entryID: row.EntryID,
			gloss:   row.Gloss,
			kind:    row.ResultType,
		})
	}

	for _, e := range rs.Entries {
		if len(e.Signs) == 0 {
			msg.empty = append(msg.empty, e.Name)
		}
	}

	if t.needsPagination(len(msg.rows) + len(msg.empty) + 4) {
		return t.run(newResultsModel().handleResultsMsg(msg))
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("SLPAA search results"))
	b.WriteString("\n")
	b.WriteString(summaryStyle.Render(fmt.Sprintf("%s matching row(s) across %s target(s)",
		accentStyle.Render(fmt.Sprintf("%d", len(msg.rows))),
		accentStyle.Render(fmt.Sprintf("%d", msg.targets)),
	)))
	b.WriteString("\n")

	for _, row := range msg.rows {
		fmt.Fprintf(&b, "  %s  %s  %s  %s\n",
			lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Width(entryIDWidth).Align(lipgloss.Right).Render(row.entryID),
			lipgloss.NewStyle().Foreground(kindColor(row.kind)).Render(row.target),
			lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Render(row.gloss),
			mutedStyle.Render(row.corpus),
		)
	}

	for _, name := range msg.empty {
		fmt.Fprintf(&b, "  %s\n", mutedStyle.Render(name+": no matching signs"))
	}

	_, err := fmt.Fprint(t.output, b.String())

	return err
}

// DisplaySchema renders the outline with checked options highlighted.
func (t *TUI) DisplaySchema(name string, lines []m.OutlineLine) error {
	rendered := make([]string, 0, len(lines))

	for _, line := range lines {
		text := outlineText(line)

		switch {
		case line.State == "checked":
			text = matchStyle.Render(text)
		case line.Kind == "heading":
			text = moduleStyle.Render(text)
		case line.State == "unchecked":
			text = mutedStyle.Render(text)
		}

		rendered = append(rendered, text)
	}

	return t.show(name, sectionStyle.Render(strings.Join(rendered, "\n")))
}

// DisplaySign renders the sign header and one block per module.
func (t *TUI) DisplaySign(sign m.SignSummary) error {
	header := []string{
		"corpus: " + accentStyle.Render(sign.Corpus),
		"x-slots: " + accentStyle.Render(sign.Xslots),
	}

	if len(sign.SignType) > 0 {
		header = append(header, "sign type: "+accentStyle.Render(strings.Join(sign.SignType, "; ")))
	}

	sections := []string{summaryStyle.Render(strings.Join(header, "\n"))}

	for _, mod := range sign.Modules {
		lines := []string{
			moduleStyle.Render(mod.ID) + "  " + mutedStyle.Render(mod.Articulators+" • "+strings.Join(mod.Timing, ", ")),
		}

		for _, el := range moduleElements(mod) {
			lines = append(lines, "  "+el)
		}

		sections = append(sections, sectionStyle.Render(strings.Join(lines, "\n")))
	}

	return t.show(signTitle(sign.Ref), strings.Join(sections, "\n"))
}

// DisplayMessage prints a single line.
func (t *TUI) DisplayMessage(format string, args ...any) {
	_, _ = fmt.Fprintf(t.output, "  "+format+"\n", args...)
}

func (t *TUI) show(title, content string) error {
	if t.needsPagination(lipgloss.Height(content) + 2) {
		return t.run(newPagerModel(title, content))
	}

	_, err := fmt.Fprintf(t.output, "%s\n%s\n", titleStyle.Render(title), content)

	return err
}

// needsPagination returns true if lines do not fit on screen.
func (t *TUI) needsPagination(lines int) bool {
	return t.height > 0 && lines > t.height
}
