package controller

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type tickMsg time.Time

const (
	entryIDWidth = 8
	targetWidth  = 24

	scrollGap   = "   "
	scrollDelay = 5
)

// resultDelegate renders one matching sign per line.
type resultDelegate struct {
	offset int
}

func (d resultDelegate) Height() int  { return 1 }
func (d resultDelegate) Spacing() int { return 0 }
func (d resultDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d resultDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	row, ok := item.(resultItem)
	if !ok {
		return
	}

	isSelected := index == m.Index()

	var glossStyle, idStyle, targetStyle lipgloss.Style

	var displayGloss string

	width := m.Width() - entryIDWidth - targetWidth - 4

	if isSelected {
		base := lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true)
		glossStyle = base
		idStyle = base.Width(entryIDWidth).Align(lipgloss.Right)
		targetStyle = base.Width(targetWidth)

		displayGloss = marquee(row.gloss, width, d.offset)
	} else {
		glossStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
		idStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true).
			Width(entryIDWidth).
			Align(lipgloss.Right)
		targetStyle = lipgloss.NewStyle().Foreground(kindColor(row.kind)).Width(targetWidth)

		displayGloss = clip(row.gloss, width)
	}

	line := fmt.Sprintf("%s  %s  %s",
		idStyle.Render(row.entryID),
		targetStyle.Render(clip(row.target, targetWidth)),
		glossStyle.Render(displayGloss),
	)
	_, _ = fmt.Fprint(w, line)
}

func kindColor(kind string) lipgloss.Color {
	if kind == "Negative" {
		return lipgloss.Color("9")
	}

	return lipgloss.Color("10")
}

// marquee shows a width-wide window of text. Text that does not fit is
// clipped for the first scrollDelay ticks, then scrolls one rune per tick.
func marquee(text string, width, tick int) string {
	if width <= 0 {
		return ""
	}

	if runewidth.StringWidth(text) <= width || tick < scrollDelay {
		return clip(text, width)
	}

	loop := []rune(text + scrollGap)
	start := (tick - scrollDelay) % len(loop)

	window := make([]rune, 0, width)
	for i := range width {
		window = append(window, loop[(start+i)%len(loop)])
	}

	return string(window)
}

// clip cuts text to width cells, marking the cut with an ellipsis.
func clip(text string, width int) string {
	if width <= 0 {
		return ""
	}

	return runewidth.Truncate(text, width, "…")
}

// resultsModel is a filterable list of matching signs.
type resultsModel struct {
	width        int
	height       int
	rowList      list.Model
	delegate     resultDelegate
	total        int
	targets      int
	empty        []string
	rendered     bool
	animOffset   int
	lastSelected int
}

func newResultsModel() resultsModel {
	delegate := resultDelegate{}
	rowList := list.New([]list.Item{}, delegate, 80, 20)
	rowList.SetShowPagination(false)
	rowList.SetShowFilter(true)
	rowList.SetShowHelp(false)
	rowList.SetShowTitle(false)
	rowList.SetShowStatusBar(false)
	rowList.FilterInput.Placeholder = "Filter by target, gloss or id…"

	return resultsModel{
		rowList:      rowList,
		delegate:     delegate,
		lastSelected: -1,
	}
}

func (m resultsModel) Init() tea.Cmd {
	return tea.Tick(time.Second/2, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m resultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rowList.SetWidth(m.width)

	case tickMsg:
		if m.rowList.FilterState() != list.Filtering && m.rendered {
			m.animOffset++
			m.delegate.offset = m.animOffset
			m.rowList.SetDelegate(m.delegate)

			return m, tea.Tick(time.Millisecond*150, func(t time.Time) tea.Msg {
				return tickMsg(t)
			})
		}

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		default:
			var newList list.Model

			newList, cmd = m.rowList.Update(msg)
			m.rowList = newList

			if m.rowList.Index() != m.lastSelected {
				m.lastSelected = m.rowList.Index()
				m.animOffset = 0
				m.delegate.offset = 0
				m.rowList.SetDelegate(m.delegate)
			}

			return m, cmd
		}

	case resultsMsg:
		m = m.handleResultsMsg(msg)
	}

	return m, cmd
}

func (m resultsModel) handleResultsMsg(msg resultsMsg) resultsModel {
	m.total = len(msg.rows)
	m.targets = msg.targets
	m.empty = msg.empty

	items := make([]list.Item, 0, len(msg.rows))
	for _, row := range msg.rows {
		items = append(items, row)
	}

	m.rowList.SetItems(items)
	m.rendered = true

	if len(items) > 0 && m.lastSelected == -1 {
		m.lastSelected = 0
	}

	return m
}

func (m resultsModel) View() string {
	if !m.rendered {
		return "Loading search results…\n"
	}

	title := titleStyle.Render("SLPAA search results")

	summary := summaryStyle.Render(fmt.Sprintf(
		"Matching rows: %s   Targets: %s   Without matches: %s",
		accentStyle.Render(fmt.Sprintf("%d", m.total)),
		accentStyle.Render(fmt.Sprintf("%d", m.targets)),
		accentStyle.Render(fmt.Sprintf("%d", len(m.empty))),
	))

	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Align(lipgloss.Center).
		Width(m.width).
		Render("↑/k up • ↓/j down • g/G top/bottom • / filter • q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		summary,
		m.renderTable(),
		footer,
	)
}

func (m resultsModel) renderTable() string {
	// title, summary, footer, border and header take 9 lines
	listHeight := max(m.height-9, 5)
	listWidth := m.width - 6

	m.rowList.SetHeight(listHeight)
	m.rowList.SetWidth(listWidth)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("8")).
		Width(listWidth)

	headers := headerStyle.Render(fmt.Sprintf("%*s  %-*s  %s", entryIDWidth, "Entry ID", targetWidth, "Target", "Gloss"))

	tableContainer := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Margin(0, 1).
		Padding(0, 1)

	return tableContainer.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			headers,
			m.rowList.View(),
		),
	)
}
