package tui

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daytrack/internal/cli"
	"github.com/julianstephens/daytrack/internal/constants"
	"github.com/julianstephens/daytrack/internal/tracker"
	"github.com/julianstephens/daytrack/internal/tui/components/tasklist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case rolloverTickMsg:
		m.rollover()
		m.refresh()
		return m, scheduleRollover()
	}

	if m.state == constants.StateAddTask || m.state == constants.StatePickDate {
		cmd := m.updateForm(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tasklist.ToggleTaskMsg:
		m.toggle(msg.ID)
		return m, nil

	case tasklist.AddTaskMsg:
		return m, m.openAddForm()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.Right):
			m.switchTab(1)
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab), key.Matches(msg, m.keys.Left):
			m.switchTab(-1)
			return m, nil
		}

		if m.state == constants.StateSpecificDay {
			switch {
			case key.Matches(msg, m.keys.PrevDay):
				m.setDay(m.selectedDay.AddDate(0, 0, -1))
				return m, nil
			case key.Matches(msg, m.keys.NextDay):
				m.setDay(m.selectedDay.AddDate(0, 0, 1))
				return m, nil
			case key.Matches(msg, m.keys.Today):
				m.rollover()
				m.setDay(m.tracker.Today())
				return m, nil
			case key.Matches(msg, m.keys.GoTo):
				return m, m.openDateForm()
			}
		}
	}

	var cmd tea.Cmd
	if l := m.activeList(); l != nil {
		*l, cmd = l.Update(msg)
	} else if m.state == constants.StateHistory {
		m.history, cmd = m.history.Update(msg)
	}
	return m, cmd
}

func (m *Model) switchTab(delta int) {
	next := (int(m.state) + delta + constants.TabCount) % constants.TabCount
	m.state = constants.SessionState(next)
	m.rollover()
	m.refresh()
}

func (m *Model) setDay(day time.Time) {
	m.selectedDay = day
	m.day.SetTasks(m.tracker.TasksForDay(day))
}

// toggle flips a task and persists both tasks and history.
func (m *Model) toggle(id string) {
	m.rollover()
	task, ok := m.tracker.ToggleCompletion(id)
	if !ok {
		m.setError(tracker.ErrTaskNotFound)
		m.refresh()
		return
	}
	if err := m.tracker.Save(); err != nil {
		m.setError(err)
	} else if task.IsCompleted {
		m.setStatus("Completed %q at %s", task.Title, task.CompletedAt.Format(constants.ClockFormat))
	} else {
		m.setStatus("Marked %q as not done", task.Title)
	}
	m.refresh()
}

func (m *Model) openAddForm() tea.Cmd {
	m.addForm = &AddFormModel{Recurring: m.state == constants.StateDaily}
	m.previousState = m.state
	m.form = NewAddForm(m.addForm, m.state == constants.StateDaily)
	m.state = constants.StateAddTask
	return m.form.Init()
}

func (m *Model) openDateForm() tea.Cmd {
	m.dateForm = &DateFormModel{Date: m.selectedDay.Format(constants.DateFormat)}
	m.previousState = m.state
	m.form = NewDateForm(m.dateForm, m.tracker)
	m.state = constants.StatePickDate
	return m.form.Init()
}

func (m *Model) closeForm() {
	m.state = m.previousState
	m.form = nil
	m.addForm = nil
	m.dateForm = nil
}

func (m *Model) updateForm(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Cancel) {
		m.closeForm()
		return nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if m.state == constants.StateAddTask {
			m.submitAdd()
		} else {
			m.submitDate()
		}
		return nil
	case huh.StateAborted:
		m.closeForm()
		return nil
	}
	return cmd
}

// submitAdd creates the task described by the add form. Tasks added from the
// Specific Day tab are one-time tasks for the selected day.
func (m *Model) submitAdd() {
	in := *m.addForm
	previous := m.previousState
	m.closeForm()

	m.rollover()
	nt := tracker.NewTask{
		Title:       in.Title,
		Description: in.Description,
		IsRecurring: in.Recurring && previous == constants.StateDaily,
	}
	if previous == constants.StateSpecificDay {
		day := m.selectedDay
		nt.Date = &day
	}

	task, ok := m.tracker.AddTask(nt)
	if !ok {
		m.setError(errors.New("task title cannot be empty"))
		return
	}
	if err := m.tracker.SaveTasks(); err != nil {
		m.setError(err)
	} else {
		m.setStatus("Added %q", task.Title)
	}
	m.refresh()
}

func (m *Model) submitDate() {
	raw := strings.TrimSpace(m.dateForm.Date)
	m.closeForm()

	day, err := cli.ParseDay(raw, m.tracker.Today(), m.tracker.Location())
	if err != nil {
		m.setError(err)
		return
	}
	m.err = nil
	m.setDay(day)
}
