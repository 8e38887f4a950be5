package tracker

import (
	"sort"
	"time"

	"github.com/julianstephens/daytrack/internal/models"
	"github.com/julianstephens/daytrack/internal/utils"
)

// Tasks returns a copy of every task in insertion order.
func (t *Tracker) Tasks() []models.Task {
	out := make([]models.Task, len(t.tasks))
	copy(out, t.tasks)
	return out
}

// History returns a copy of every history record in insertion order.
func (t *Tracker) History() []models.HistoryRecord {
	out := make([]models.HistoryRecord, len(t.history))
	copy(out, t.history)
	return out
}

func (t *Tracker) Task(id string) (models.Task, bool) {
	idx := t.indexOf(id)
	if idx < 0 {
		return models.Task{}, false
	}
	return t.tasks[idx], true
}

// DailyTasks returns the recurring tasks plus the one-time tasks anchored
// to today.
func (t *Tracker) DailyTasks() []models.Task {
	return t.dailyFor(t.Today())
}

func (t *Tracker) dailyFor(day time.Time) []models.Task {
	out := []models.Task{}
	for _, task := range t.tasks {
		if task.IsRecurring || utils.OnDay(task.Date, day, t.loc) {
			out = append(out, task)
		}
	}
	return out
}

// TasksForDay returns the one-time tasks anchored to day. Recurring tasks
// only ever show in the daily view.
func (t *Tracker) TasksForDay(day time.Time) []models.Task {
	out := []models.Task{}
	for _, task := range t.tasks {
		if !task.IsRecurring && utils.OnDay(task.Date, day, t.loc) {
			out = append(out, task)
		}
	}
	return out
}

// GroupedHistory groups history records by calendar day, newest day first.
// Records keep their insertion order within a day.
func (t *Tracker) GroupedHistory() []models.HistoryGroup {
	index := make(map[string]int)
	groups := []models.HistoryGroup{}
	for _, rec := range t.history {
		key := utils.AnchorKey(rec.Date)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, models.HistoryGroup{
				Day:  key,
				Date: utils.CalendarDay(rec.Date, t.loc),
			})
		}
		groups[i].Records = append(groups[i].Records, rec)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Day > groups[j].Day
	})
	return groups
}

// DayStats summarises one calendar day.
type DayStats struct {
	Day          string `json:"day"`
	Completed    int    `json:"completed"`
	Total        int    `json:"total"`
	HistoryCount int    `json:"historyCount"`
}

// Stats counts the daily view for day and the completions logged on it.
func (t *Tracker) Stats(day time.Time) DayStats {
	day = utils.StartOfDay(day, t.loc)
	stats := DayStats{Day: utils.DayKey(day, t.loc)}
	for _, task := range t.dailyFor(day) {
		stats.Total++
		if task.IsCompleted {
			stats.Completed++
		}
	}
	for _, rec := range t.history {
		if utils.OnDay(rec.Date, day, t.loc) {
			stats.HistoryCount++
		}
	}
	return stats
}
