package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daytrack/internal/constants"
	"github.com/julianstephens/daytrack/internal/logger"
	"github.com/julianstephens/daytrack/internal/tracker"
	"github.com/julianstephens/daytrack/internal/tui/components/history"
	"github.com/julianstephens/daytrack/internal/tui/components/tasklist"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// rows taken by tabs, header, detail, status and help
	chromeHeight = 10

	rolloverInterval = time.Minute
)

type AddFormModel struct {
	Title       string
	Description string
	Recurring   bool
}

type DateFormModel struct {
	Date string
}

type rolloverTickMsg time.Time

type Model struct {
	tracker       *tracker.Tracker
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	daily         tasklist.Model
	day           tasklist.Model
	history       history.Model
	selectedDay   time.Time
	form          *huh.Form
	addForm       *AddFormModel
	dateForm      *DateFormModel
	status        string
	err           error
	quitting      bool
	width         int
	height        int
}

// NewModel builds the TUI over a tracker that has already been loaded.
func NewModel(tr *tracker.Tracker) Model {
	listHeight := defaultHeight - chromeHeight
	m := Model{
		tracker:     tr,
		state:       constants.StateDaily,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		daily:       tasklist.New(nil, "No tasks for today.", defaultWidth, listHeight),
		day:         tasklist.New(nil, "No tasks scheduled for this day.", defaultWidth, listHeight),
		history:     history.New(defaultWidth, listHeight),
		selectedDay: tr.Today(),
		width:       defaultWidth,
		height:      defaultHeight,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return scheduleRollover()
}

func scheduleRollover() tea.Cmd {
	return tea.Tick(rolloverInterval, func(t time.Time) tea.Msg {
		return rolloverTickMsg(t)
	})
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateDaily:
		keys = append(keys, m.keys.Toggle, m.keys.Add)
	case constants.StateSpecificDay:
		keys = append(keys, m.keys.Toggle, m.keys.Add, m.keys.PrevDay, m.keys.NextDay)
	case constants.StateAddTask, constants.StatePickDate:
		keys = []key.Binding{m.keys.Cancel}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Left, m.keys.Right, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	switch m.state {
	case constants.StateDaily:
		actions = []key.Binding{m.keys.Toggle, m.keys.Add}
	case constants.StateSpecificDay:
		actions = []key.Binding{m.keys.Toggle, m.keys.Add, m.keys.PrevDay, m.keys.NextDay, m.keys.Today, m.keys.GoTo}
	case constants.StateAddTask, constants.StatePickDate:
		return [][]key.Binding{{m.keys.Cancel}}
	}

	return [][]key.Binding{global, navigation, actions}
}

// refresh reloads every view from the tracker.
func (m *Model) refresh() {
	m.daily.SetTasks(m.tracker.DailyTasks())
	m.day.SetTasks(m.tracker.TasksForDay(m.selectedDay))
	m.history.SetGroups(m.tracker.GroupedHistory())
}

// rollover resets recurring tasks if the day changed while the TUI was open.
func (m *Model) rollover() {
	reset, err := m.tracker.Rollover()
	if err != nil {
		m.setError(fmt.Errorf("rollover failed: %w", err))
		return
	}
	if reset > 0 {
		m.status = fmt.Sprintf("New day: reset %d recurring task(s)", reset)
	}
}

func (m *Model) setError(err error) {
	logger.Error("TUI action failed", "error", err)
	m.err = err
	m.status = ""
}

func (m *Model) setStatus(format string, args ...interface{}) {
	m.err = nil
	m.status = fmt.Sprintf(format, args...)
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	listWidth := width - docStyle.GetHorizontalFrameSize()
	listHeight := height - chromeHeight
	if listHeight < 3 {
		listHeight = 3
	}
	m.daily.SetSize(listWidth, listHeight)
	m.day.SetSize(listWidth, listHeight)
	m.history.SetSize(listWidth, listHeight)
}

// activeList returns the task list of the current tab, if it has one.
func (m *Model) activeList() *tasklist.Model {
	switch m.state {
	case constants.StateDaily:
		return &m.daily
	case constants.StateSpecificDay:
		return &m.day
	}
	return nil
}
