package tracker

import (
	"fmt"
	"time"

	"github.com/julianstephens/daytrack/internal/logger"
	"github.com/julianstephens/daytrack/internal/models"
	"github.com/julianstephens/daytrack/internal/utils"
)

// Snapshot is the complete persisted state, used by export and import.
type Snapshot struct {
	Version        int                    `json:"version" yaml:"version"`
	ExportedAt     time.Time              `json:"exportedAt" yaml:"exportedAt"`
	Tasks          []models.Task          `json:"tasks" yaml:"tasks"`
	History        []models.HistoryRecord `json:"taskHistory" yaml:"taskHistory"`
	LastAccessDate *time.Time             `json:"lastAccessDate,omitempty" yaml:"lastAccessDate,omitempty"`
}

const snapshotVersion = 1

func (t *Tracker) Export() Snapshot {
	return Snapshot{
		Version:        snapshotVersion,
		ExportedAt:     t.Now(),
		Tasks:          nonNil(t.Tasks()),
		History:        nonNil(t.History()),
		LastAccessDate: t.lastAccess,
	}
}

// Import replaces the in-memory state with snap and persists it. The
// snapshot is rejected as a whole if any task is invalid or ids collide.
func (t *Tracker) Import(snap Snapshot) error {
	if snap.Version > snapshotVersion {
		return fmt.Errorf("snapshot version %d is newer than supported version %d", snap.Version, snapshotVersion)
	}

	seen := make(map[string]bool, len(snap.Tasks))
	for _, task := range snap.Tasks {
		if err := task.Validate(); err != nil {
			return fmt.Errorf("invalid task in snapshot: %w", err)
		}
		if seen[task.ID] {
			return fmt.Errorf("duplicate task id %s in snapshot", task.ID)
		}
		seen[task.ID] = true
	}

	t.tasks = append([]models.Task(nil), snap.Tasks...)
	t.history = append([]models.HistoryRecord(nil), snap.History...)
	if snap.LastAccessDate == nil {
		if reset := t.resetStaleCompletions(); reset > 0 {
			logger.Info("Reset recurring tasks completed before today", "reset", reset)
		}
	}
	if err := t.Save(); err != nil {
		return err
	}

	// Imported completions may belong to an earlier day
	if snap.LastAccessDate != nil {
		marker := *snap.LastAccessDate
		t.lastAccess = &marker
	}
	_, err := t.Rollover()
	return err
}

// resetStaleCompletions clears recurring tasks whose completion is not dated
// today. Used when a snapshot carries no access marker to compare against.
func (t *Tracker) resetStaleCompletions() int {
	today := t.Today()
	reset := 0
	for i := range t.tasks {
		task := &t.tasks[i]
		if !task.IsRecurring || (!task.IsCompleted && task.CompletedAt == nil) {
			continue
		}
		if task.CompletedAt != nil && utils.SameDay(*task.CompletedAt, today, t.loc) {
			continue
		}
		task.IsCompleted = false
		task.CompletedAt = nil
		reset++
	}
	return reset
}
