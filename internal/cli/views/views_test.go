package views

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/daytrack/internal/cli"
	"github.com/julianstephens/daytrack/internal/models"
	"github.com/julianstephens/daytrack/internal/storage"
	"github.com/julianstephens/daytrack/internal/tracker"
)

func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	now := time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC)
	store := storage.NewMemoryStore()
	tr := tracker.New(store, tracker.WithClock(func() time.Time { return now }), tracker.WithLocation(time.UTC))
	if _, err := tr.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	day := func(d int) *time.Time {
		v := time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
		return &v
	}
	walk, _ := tr.AddTask(tracker.NewTask{Title: "Walk", IsRecurring: true})
	tr.AddTask(tracker.NewTask{Title: "Laundry"})
	tr.AddTask(tracker.NewTask{Title: "Dentist", Date: day(9)})
	tr.ToggleCompletion(walk.ID)
	if err := tr.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	out := &bytes.Buffer{}
	return &cli.Context{Store: store, Tracker: tr, Location: time.UTC, Out: out}, out
}

func TestTodayCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	if err := (&TodayCmd{}).Run(ctx); err != nil {
		t.Fatalf("TodayCmd failed: %v", err)
	}
	s := out.String()
	for _, want := range []string{"March 5, 2024", "1/2 done", "Walk", "Laundry"} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q:\n%s", want, s)
		}
	}
	if strings.Contains(s, "Dentist") {
		t.Errorf("daily view must not include other days' one-time tasks:\n%s", s)
	}
}

func TestTodayCmdJSON(t *testing.T) {
	ctx, out := setupTestContext(t)
	if err := (&TodayCmd{JSON: true}).Run(ctx); err != nil {
		t.Fatalf("TodayCmd failed: %v", err)
	}
	var tasks []models.Task
	if err := json.Unmarshal(out.Bytes(), &tasks); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("expected 2 tasks, got %d", len(tasks))
	}
}

func TestDayCmd(t *testing.T) {
	tests := []struct {
		date    string
		want    string
		notWant string
	}{
		{date: "2024-03-09", want: "Dentist", notWant: "Walk"},
		{date: "today", want: "Laundry", notWant: "Walk"},
		{date: "2024-03-10", want: "No one-time tasks", notWant: "Dentist"},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			ctx, out := setupTestContext(t)
			if err := (&DayCmd{Date: tt.date}).Run(ctx); err != nil {
				t.Fatalf("DayCmd failed: %v", err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out.String())
			}
			if strings.Contains(out.String(), tt.notWant) {
				t.Errorf("output should not contain %q:\n%s", tt.notWant, out.String())
			}
		})
	}

	ctx, _ := setupTestContext(t)
	if err := (&DayCmd{Date: "03/09"}).Run(ctx); err == nil {
		t.Error("expected error for invalid date")
	}
}

func TestHistoryCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	if err := (&HistoryCmd{}).Run(ctx); err != nil {
		t.Fatalf("HistoryCmd failed: %v", err)
	}
	if !strings.Contains(out.String(), "9:30 AM") || !strings.Contains(out.String(), "Walk") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	out.Reset()
	if err := (&HistoryCmd{JSON: true}).Run(ctx); err != nil {
		t.Fatalf("HistoryCmd --json failed: %v", err)
	}
	var groups []models.HistoryGroup
	if err := json.Unmarshal(out.Bytes(), &groups); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(groups) != 1 || groups[0].Day != "2024-03-05" {
		t.Errorf("unexpected groups: %+v", groups)
	}
}
