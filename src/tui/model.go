// Package tui provides a terminal viewer for a build session's diagnostics.
// It is an operator convenience on top of the same filtering and ordering
// the MCP server uses.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dunemcp/src/provider"
	"dunemcp/src/ranking"
)

// Model is the bubbletea model for the diagnostics viewer.
type Model struct {
	list     list.Model
	report   *provider.BuildReport
	styles   *StyleConfig
	errors   int
	warnings int
	width    int
	height   int
}

// NewModel builds the viewer over a build report. Diagnostics are shown
// error-first in the same order the MCP server would emit them.
func NewModel(report *provider.BuildReport) Model {
	styles := DefaultStyles()

	ordered := ranking.Prioritize(report.Diagnostics)
	errors, warnings := ranking.Counts(report.Diagnostics)

	items := make([]list.Item, len(ordered))
	for i, d := range ordered {
		items[i] = Item{Diagnostic: d, styles: styles}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(styles.HeaderColor).
		BorderLeftForeground(styles.HeaderColor)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(styles.TextSecondary).
		BorderLeftForeground(styles.HeaderColor)

	l := list.New(items, delegate, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)

	return Model{
		list:     l,
		report:   report,
		styles:   styles,
		errors:   errors,
		warnings: warnings,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Header and help line take three rows.
		m.list.SetSize(msg.Width, msg.Height-3)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	header := m.headerView()
	help := m.styles.HelpStyle().Render("↑/↓ navigate · / filter · q quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, m.list.View(), help)
}

// headerView renders the status badge and severity counts.
func (m Model) headerView() string {
	status := m.styles.StatusStyle(string(m.report.Status)).Render(string(m.report.Status))
	counts := fmt.Sprintf("%d errors · %d warnings", m.errors, m.warnings)
	return m.styles.HeaderStyle().Render("dune build ") + status + "  " + counts
}

// Run displays the viewer and blocks until the user quits.
func Run(report *provider.BuildReport) error {
	p := tea.NewProgram(NewModel(report), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("viewer failed: %w", err)
	}
	return nil
}
