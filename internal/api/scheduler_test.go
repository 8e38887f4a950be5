package api

import (
	"testing"
	"time"

	"github.com/julianstephens/daytrack/internal/storage"
	"github.com/julianstephens/daytrack/internal/tracker"
)

func TestSchedulerFiresAtMidnight(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	tr := tracker.New(storage.NewMemoryStore(), tracker.WithLocation(loc))
	sched, err := NewScheduler(NewHandler(tr))
	if err != nil {
		t.Fatalf("NewScheduler failed: %v", err)
	}

	from := time.Date(2024, 3, 5, 15, 30, 0, 0, loc)
	want := time.Date(2024, 3, 6, 0, 0, 0, 0, loc)
	if got := sched.Next(from); !got.Equal(want) {
		t.Errorf("Next(%v) = %v, want %v", from, got, want)
	}

	sched.Start()
	sched.Stop()
}

func TestRolloverNow(t *testing.T) {
	_, tr, clock := setupTestServer(t)
	h := NewHandler(tr)

	task, _ := tr.AddTask(tracker.NewTask{Title: "Stretch", IsRecurring: true})
	tr.ToggleCompletion(task.ID)
	if err := tr.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if got := h.RolloverNow(); got != 0 {
		t.Errorf("same-day RolloverNow() = %d, want 0", got)
	}

	clock.Set(clock.Now().Add(24 * time.Hour))
	if got := h.RolloverNow(); got != 1 {
		t.Errorf("next-day RolloverNow() = %d, want 1", got)
	}
	if got, _ := tr.Task(task.ID); got.IsCompleted {
		t.Error("recurring task should be reset")
	}
}
