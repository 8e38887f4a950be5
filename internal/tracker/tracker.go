package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/daytrack/internal/constants"
	"github.com/julianstephens/daytrack/internal/logger"
	"github.com/julianstephens/daytrack/internal/models"
	"github.com/julianstephens/daytrack/internal/storage"
	"github.com/julianstephens/daytrack/internal/utils"
)

// ErrTaskNotFound is returned by front ends when an id does not match any
// task. The tracker itself treats unknown ids as a no-op.
var ErrTaskNotFound = errors.New("task not found")

// Tracker owns the task list, the completion history and the last-access
// marker. It is not safe for concurrent use.
type Tracker struct {
	kv    storage.KV
	now   func() time.Time
	loc   *time.Location
	newID func() string

	tasks      []models.Task
	history    []models.HistoryRecord
	lastAccess *time.Time
}

type Option func(*Tracker)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLocation sets the timezone calendar days are computed in.
func WithLocation(loc *time.Location) Option {
	return func(t *Tracker) {
		if loc != nil {
			t.loc = loc
		}
	}
}

func WithIDGenerator(gen func() string) Option {
	return func(t *Tracker) { t.newID = gen }
}

func New(kv storage.KV, opts ...Option) *Tracker {
	t := &Tracker{
		kv:    kv,
		now:   time.Now,
		loc:   time.Local,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewTask is the input to AddTask. A nil Date means today.
type NewTask struct {
	Title       string
	Description string
	IsRecurring bool
	Date        *time.Time
}

// LoadResult describes what Load found and changed.
type LoadResult struct {
	RolledOver     bool
	ResetCount     int
	PreviousAccess *time.Time
}

// Location returns the timezone calendar days are computed in.
func (t *Tracker) Location() *time.Location {
	return t.loc
}

// Now returns the current time in the tracker's location.
func (t *Tracker) Now() time.Time {
	return t.now().In(t.loc)
}

// Today returns the start of the current calendar day.
func (t *Tracker) Today() time.Time {
	return utils.StartOfDay(t.now(), t.loc)
}

// Load reads the persisted state and performs the daily rollover. Missing or
// malformed entries load as empty; only storage failures are returned.
func (t *Tracker) Load() (LoadResult, error) {
	t.tasks = nil
	t.history = nil
	t.lastAccess = nil

	var tasks []models.Task
	if ok, err := t.read(constants.KeyTasks, &tasks); err != nil {
		return LoadResult{}, err
	} else if ok {
		t.tasks = validTasks(tasks)
	}

	var history []models.HistoryRecord
	if ok, err := t.read(constants.KeyHistory, &history); err != nil {
		return LoadResult{}, err
	} else if ok {
		t.history = history
	}

	var marker time.Time
	if ok, err := t.read(constants.KeyLastAccessDate, &marker); err != nil {
		return LoadResult{}, err
	} else if ok && !marker.IsZero() {
		t.lastAccess = &marker
	}

	res := LoadResult{PreviousAccess: t.lastAccess}
	reset, rolled, err := t.rollover(true)
	if err != nil {
		return res, err
	}
	res.RolledOver = rolled
	res.ResetCount = reset

	logger.Debug("Loaded tracker state",
		"tasks", len(t.tasks), "history", len(t.history), "rolledOver", rolled, "reset", reset)
	return res, nil
}

// Rollover resets recurring tasks if the calendar day changed since the last
// access and returns how many tasks were reset. Long-running front ends call
// it before each action.
func (t *Tracker) Rollover() (int, error) {
	reset, _, err := t.rollover(false)
	return reset, err
}

func (t *Tracker) rollover(writeMarker bool) (int, bool, error) {
	today := t.Today()

	rolled := t.lastAccess != nil && !utils.OnDay(*t.lastAccess, today, t.loc)
	reset := 0
	if rolled {
		for i := range t.tasks {
			task := &t.tasks[i]
			if !task.IsRecurring {
				continue
			}
			if task.IsCompleted || task.CompletedAt != nil {
				reset++
			}
			task.IsCompleted = false
			task.CompletedAt = nil
		}
		logger.Info("Day changed, reset recurring tasks",
			"previous", utils.AnchorKey(*t.lastAccess), "today", utils.DayKey(today, t.loc), "reset", reset)
		if reset > 0 {
			if err := t.SaveTasks(); err != nil {
				return reset, rolled, err
			}
		}
	}

	if writeMarker || rolled || t.lastAccess == nil {
		if err := t.write(constants.KeyLastAccessDate, today); err != nil {
			return reset, rolled, err
		}
		t.lastAccess = &today
	}
	return reset, rolled, nil
}

// AddTask appends a new task and reports whether one was created. Blank
// titles are ignored. The caller persists with SaveTasks.
func (t *Tracker) AddTask(in NewTask) (models.Task, bool) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Task{}, false
	}

	date := t.Today()
	if in.Date != nil {
		date = utils.CalendarDay(*in.Date, t.loc)
	}

	task := models.Task{
		ID:          t.newID(),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		IsRecurring: in.IsRecurring,
		Date:        date,
	}
	t.tasks = append(t.tasks, task)
	return task, true
}

// ToggleCompletion flips the completion flag of the task with the given id.
// Completing a task appends a history record; un-completing leaves history
// alone. Unknown ids are a no-op. The caller persists with Save.
func (t *Tracker) ToggleCompletion(id string) (models.Task, bool) {
	idx := t.indexOf(id)
	if idx < 0 {
		return models.Task{}, false
	}

	task := &t.tasks[idx]
	if task.IsCompleted {
		task.IsCompleted = false
		task.CompletedAt = nil
		return *task, true
	}

	now := t.Now()
	task.IsCompleted = true
	task.CompletedAt = &now
	t.history = append(t.history, models.HistoryRecord{
		ID:          t.newID(),
		TaskID:      task.ID,
		Title:       task.Title,
		Date:        utils.StartOfDay(now, t.loc),
		CompletedAt: now,
	})
	return *task, true
}

func (t *Tracker) indexOf(id string) int {
	for i := range t.tasks {
		if t.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// SaveTasks overwrites the persisted task list.
func (t *Tracker) SaveTasks() error {
	return t.write(constants.KeyTasks, nonNil(t.tasks))
}

// SaveHistory overwrites the persisted history.
func (t *Tracker) SaveHistory() error {
	return t.write(constants.KeyHistory, nonNil(t.history))
}

// Save persists both collections.
func (t *Tracker) Save() error {
	if err := t.SaveTasks(); err != nil {
		return err
	}
	return t.SaveHistory()
}

func (t *Tracker) read(key string, dst any) (bool, error) {
	raw, ok, err := t.kv.Get(key)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		logger.Warn("Ignoring malformed stored entry", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

func (t *Tracker) write(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", key, err)
	}
	if err := t.kv.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func validTasks(tasks []models.Task) []models.Task {
	valid := tasks[:0]
	for _, task := range tasks {
		if err := task.Validate(); err != nil {
			logger.Warn("Skipping invalid stored task", "error", err)
			continue
		}
		valid = append(valid, task)
	}
	return valid
}

// nonNil keeps empty collections encoded as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
