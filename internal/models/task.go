package models

import (
	"fmt"
	"strings"
	"time"
)

type TaskKind string

const (
	TaskKindDaily   TaskKind = "daily"
	TaskKindOneTime TaskKind = "one-time"
)

// Task is a recurring ("daily") or date-specific to-do item.
type Task struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description,omitempty"`
	IsRecurring bool       `json:"isRecurring" yaml:"isRecurring"`
	Date        time.Time  `json:"date" yaml:"date"` // anchor day, start of day
	IsCompleted bool       `json:"isCompleted" yaml:"isCompleted"`
	CompletedAt *time.Time `json:"completedAt" yaml:"completedAt,omitempty"`
}

// Kind reports whether the task is a daily or a one-time task.
func (t Task) Kind() TaskKind {
	if t.IsRecurring {
		return TaskKindDaily
	}
	return TaskKindOneTime
}

// Validate checks the fields every stored task must satisfy.
func (t Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("task title is required")
	}
	if t.IsCompleted && t.CompletedAt == nil {
		return fmt.Errorf("task %s is completed but has no completion time", t.ID)
	}
	if !t.IsCompleted && t.CompletedAt != nil {
		return fmt.Errorf("task %s is not completed but has a completion time", t.ID)
	}
	return nil
}
