package tasks

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/daytrack/internal/cli"
	"github.com/julianstephens/daytrack/internal/storage"
	"github.com/julianstephens/daytrack/internal/tracker"
)

func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	now := time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC)
	store := storage.NewMemoryStore()
	out := &bytes.Buffer{}
	ctx := &cli.Context{
		Store:    store,
		Tracker:  tracker.New(store, tracker.WithClock(func() time.Time { return now }), tracker.WithLocation(time.UTC)),
		Location: time.UTC,
		Out:      out,
	}
	return ctx, out
}

// reload reads the persisted state back through a fresh tracker.
func reload(t *testing.T, ctx *cli.Context) *tracker.Tracker {
	t.Helper()
	tr := tracker.New(ctx.Store, tracker.WithLocation(time.UTC),
		tracker.WithClock(func() time.Time { return time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC) }))
	if _, err := tr.Load(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	return tr
}

func TestTaskAddCmd(t *testing.T) {
	tests := []struct {
		name      string
		cmd       TaskAddCmd
		recurring bool
		day       string
	}{
		{name: "daily", cmd: TaskAddCmd{Title: "Stretch", Daily: true}, recurring: true, day: "2024-03-05"},
		{name: "one-time default today", cmd: TaskAddCmd{Title: "Laundry"}, day: "2024-03-05"},
		{name: "one-time with date", cmd: TaskAddCmd{Title: "Dentist", Date: "2024-03-09"}, day: "2024-03-09"},
		{name: "one-time tomorrow", cmd: TaskAddCmd{Title: "Call mom", Date: "tomorrow"}, day: "2024-03-06"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := setupTestContext(t)
			if err := tt.cmd.Run(ctx); err != nil {
				t.Fatalf("TaskAddCmd failed: %v", err)
			}
			if !strings.Contains(out.String(), "Added task") {
				t.Errorf("unexpected output: %q", out.String())
			}

			saved := reload(t, ctx).Tasks()
			if len(saved) != 1 {
				t.Fatalf("expected 1 persisted task, got %d", len(saved))
			}
			if saved[0].IsRecurring != tt.recurring {
				t.Errorf("IsRecurring = %v, want %v", saved[0].IsRecurring, tt.recurring)
			}
			if got := saved[0].Date.Format("2006-01-02"); got != tt.day {
				t.Errorf("date = %s, want %s", got, tt.day)
			}
		})
	}
}

func TestTaskAddCmdValidation(t *testing.T) {
	if err := (&TaskAddCmd{Title: "   "}).Validate(); err == nil {
		t.Error("expected validation error for blank title")
	}

	ctx, _ := setupTestContext(t)
	if err := (&TaskAddCmd{Title: "x", Date: "someday"}).Run(ctx); err == nil {
		t.Error("expected error for an invalid date")
	}
}

func TestTaskToggleCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	if err := (&TaskAddCmd{Title: "Walk", Daily: true}).Run(ctx); err != nil {
		t.Fatalf("TaskAddCmd failed: %v", err)
	}
	id := ctx.Tracker.Tasks()[0].ID

	if err := (&TaskToggleCmd{ID: id}).Run(ctx); err != nil {
		t.Fatalf("TaskToggleCmd failed: %v", err)
	}
	if !strings.Contains(out.String(), "Completed \"Walk\" at 9:30 AM") {
		t.Errorf("unexpected output: %q", out.String())
	}

	saved := reload(t, ctx)
	if task, _ := saved.Task(id); !task.IsCompleted {
		t.Error("completion was not persisted")
	}
	if len(saved.History()) != 1 {
		t.Errorf("expected 1 history record, got %d", len(saved.History()))
	}

	if err := (&TaskToggleCmd{ID: id}).Run(ctx); err != nil {
		t.Fatalf("second TaskToggleCmd failed: %v", err)
	}
	saved = reload(t, ctx)
	if task, _ := saved.Task(id); task.IsCompleted {
		t.Error("un-completion was not persisted")
	}
	if len(saved.History()) != 1 {
		t.Errorf("history must not shrink, got %d", len(saved.History()))
	}
}

func TestTaskToggleCmdUnknownID(t *testing.T) {
	ctx, _ := setupTestContext(t)
	err := (&TaskToggleCmd{ID: "nope"}).Run(ctx)
	if !errors.Is(err, tracker.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskShowCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	if err := (&TaskAddCmd{Title: "Read", Description: "Chapter *three*"}).Run(ctx); err != nil {
		t.Fatalf("TaskAddCmd failed: %v", err)
	}
	id := ctx.Tracker.Tasks()[0].ID
	out.Reset()

	if err := (&TaskShowCmd{ID: id}).Run(ctx); err != nil {
		t.Fatalf("TaskShowCmd failed: %v", err)
	}
	if !strings.Contains(out.String(), "Read") || !strings.Contains(out.String(), "three") {
		t.Errorf("unexpected output: %q", out.String())
	}

	out.Reset()
	if err := (&TaskShowCmd{ID: id, JSON: true}).Run(ctx); err != nil {
		t.Fatalf("TaskShowCmd --json failed: %v", err)
	}
	if !strings.Contains(out.String(), `"isRecurring": false`) {
		t.Errorf("unexpected JSON: %q", out.String())
	}

	if err := (&TaskShowCmd{ID: "missing"}).Run(ctx); !errors.Is(err, tracker.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}
