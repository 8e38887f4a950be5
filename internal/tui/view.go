package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daytrack/internal/constants"
	"github.com/julianstephens/daytrack/internal/models"
	"github.com/julianstephens/daytrack/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateDaily:
		content = m.viewTaskTab(m.viewDailyHeader(), m.daily.View(), m.daily.Selected)
	case constants.StateSpecificDay:
		content = m.viewTaskTab(m.viewDayHeader(), m.day.View(), m.day.Selected)
	case constants.StateHistory:
		content = lipgloss.JoinVertical(lipgloss.Left,
			headerStyle.Render("Completion history"),
			docStyle.Render(m.history.View()),
		)
	case constants.StateAddTask, constants.StatePickDate:
		content = docStyle.Render(m.form.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

var tabTitles = [constants.TabCount]string{"Daily", "Specific Day", "History"}

func (m Model) viewTabs() string {
	active := m.state
	if m.state == constants.StateAddTask || m.state == constants.StatePickDate {
		active = m.previousState
	}

	var tabs []string
	for i, title := range tabTitles {
		if active == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewDailyHeader() string {
	today := m.tracker.Today()
	stats := m.tracker.Stats(today)
	return headerStyle.Render(fmt.Sprintf("Today, %s (%d/%d done)",
		today.Format(constants.DisplayDateFormat), stats.Completed, stats.Total))
}

func (m Model) viewDayHeader() string {
	tasks := m.tracker.TasksForDay(m.selectedDay)
	done := 0
	for _, t := range tasks {
		if t.IsCompleted {
			done++
		}
	}
	label := m.selectedDay.Format("Monday, " + constants.DisplayDateFormat)
	if m.selectedDay.Equal(m.tracker.Today()) {
		label += " (today)"
	}
	return headerStyle.Render(fmt.Sprintf("%s  %d/%d done", label, done, len(tasks)))
}

func (m Model) viewTaskTab(header, list string, selected func() (models.Task, bool)) string {
	parts := []string{header, docStyle.Render(list)}
	if task, ok := selected(); ok && task.Description != "" {
		width := m.width - detailStyle.GetHorizontalFrameSize()
		parts = append(parts, detailStyle.Render(utils.RenderMarkdown(task.Description, width)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewStatus() string {
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	return ""
}
