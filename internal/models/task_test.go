package models

import (
	"testing"
	"time"
)

func TestTaskValidate(t *testing.T) {
	now := time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		task    Task
		wantErr bool
	}{
		{
			name:    "valid incomplete task",
			task:    Task{ID: "1", Title: "Read"},
			wantErr: false,
		},
		{
			name:    "valid completed task",
			task:    Task{ID: "1", Title: "Read", IsCompleted: true, CompletedAt: &now},
			wantErr: false,
		},
		{
			name:    "missing id",
			task:    Task{Title: "Read"},
			wantErr: true,
		},
		{
			name:    "blank title",
			task:    Task{ID: "1", Title: "   "},
			wantErr: true,
		},
		{
			name:    "completed without timestamp",
			task:    Task{ID: "1", Title: "Read", IsCompleted: true},
			wantErr: true,
		},
		{
			name:    "timestamp without completion",
			task:    Task{ID: "1", Title: "Read", CompletedAt: &now},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.task.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTaskKind(t *testing.T) {
	if got := (Task{IsRecurring: true}).Kind(); got != TaskKindDaily {
		t.Errorf("Kind() = %q, want %q", got, TaskKindDaily)
	}
	if got := (Task{}).Kind(); got != TaskKindOneTime {
		t.Errorf("Kind() = %q, want %q", got, TaskKindOneTime)
	}
}
