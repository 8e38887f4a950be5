package models

import "time"

// HistoryRecord is the immutable log entry written once per completion.
type HistoryRecord struct {
	ID          string    `json:"id" yaml:"id"`
	TaskID      string    `json:"taskId" yaml:"taskId"`
	Title       string    `json:"title" yaml:"title"` // title at completion time
	Date        time.Time `json:"date" yaml:"date"`   // day of completion, start of day
	CompletedAt time.Time `json:"completedAt" yaml:"completedAt"`
}

// HistoryGroup holds the records completed on a single calendar day.
type HistoryGroup struct {
	Day     string          `json:"day"` // YYYY-MM-DD format
	Date    time.Time       `json:"date"`
	Records []HistoryRecord `json:"records"`
}
