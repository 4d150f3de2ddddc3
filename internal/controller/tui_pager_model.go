package controller

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// pagerModel scrolls pre-rendered content that does not fit the terminal.
type pagerModel struct {
	title    string
	content  string
	viewport viewport.Model
	ready    bool
}

func newPagerModel(title, content string) pagerModel {
	return pagerModel{title: title, content: content}
}

func (p pagerModel) Init() tea.Cmd {
	return nil
}

func (p pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// title and footer take 4 lines
		height := max(msg.Height-4, 1)

		if !p.ready {
			p.viewport = viewport.New(msg.Width, height)
			p.viewport.SetContent(p.content)
			p.ready = true
		} else {
			p.viewport.Width = msg.Width
			p.viewport.Height = height
		}

		return p, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return p, tea.Quit
		}
	}

	var cmd tea.Cmd

	p.viewport, cmd = p.viewport.Update(msg)

	return p, cmd
}

func (p pagerModel) View() string {
	if !p.ready {
		return "Loading…\n"
	}

	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Render(fmt.Sprintf("%3.f%% • ↑/↓ scroll • pgup/pgdn page • q quit", p.viewport.ScrollPercent()*100))

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(p.title),
		p.viewport.View(),
		footer,
	)
}
