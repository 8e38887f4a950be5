package history

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daytrack/internal/constants"
	"github.com/julianstephens/daytrack/internal/models"
)

var (
	dayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(10)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

// Model shows completions grouped by day in a scrollable viewport.
type Model struct {
	viewport viewport.Model
	groups   []models.HistoryGroup
}

func New(width, height int) Model {
	m := Model{viewport: viewport.New(width, height)}
	m.render()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.render()
}

// SetGroups replaces the rendered history. Groups are expected newest first.
func (m *Model) SetGroups(groups []models.HistoryGroup) {
	m.groups = groups
	m.render()
}

// Content returns the rendered text, including lines scrolled out of view.
func (m Model) Content() string {
	return Render(m.groups)
}

func (m *Model) render() {
	m.viewport.SetContent(Render(m.groups))
}

// Render formats history groups as plain styled text.
func Render(groups []models.HistoryGroup) string {
	if len(groups) == 0 {
		return "No completed tasks yet."
	}

	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(dayStyle.Render(g.Date.Format(constants.DisplayDateFormat)))
		b.WriteString("\n")
		for _, rec := range g.Records {
			fmt.Fprintf(&b, "  %s %s\n",
				timeStyle.Render(rec.CompletedAt.Format(constants.ClockFormat)),
				titleStyle.Render(rec.Title))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
