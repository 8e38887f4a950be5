package system

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/daytrack/internal/storage"
	"github.com/julianstephens/daytrack/internal/tracker"
)

func TestExportImportRoundTrip(t *testing.T) {
	src, _ := newContext(storage.NewMemoryStore())
	if _, err := src.LoadTracker(); err != nil {
		t.Fatalf("LoadTracker failed: %v", err)
	}
	daily, _ := src.Tracker.AddTask(tracker.NewTask{Title: "Stretch", IsRecurring: true})
	dentist := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	src.Tracker.AddTask(tracker.NewTask{Title: "Dentist", Date: &dentist})
	if _, ok := src.Tracker.ToggleCompletion(daily.ID); !ok {
		t.Fatal("ToggleCompletion did not find the task")
	}
	if err := src.Tracker.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	exportPath := filepath.Join(t.TempDir(), "export.json")
	if err := (&ExportCmd{Out: exportPath}).Run(src); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	var snap tracker.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(snap.Tasks) != 2 || len(snap.History) != 1 {
		t.Fatalf("export has %d tasks and %d history records, want 2 and 1", len(snap.Tasks), len(snap.History))
	}

	dst, _ := newContext(storage.NewMemoryStore())
	if err := (&ImportCmd{File: exportPath}).Run(dst); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if got := len(dst.Tracker.Tasks()); got != 2 {
		t.Errorf("imported %d tasks, want 2", got)
	}
	if got := len(dst.Tracker.History()); got != 1 {
		t.Errorf("imported %d history records, want 1", got)
	}
	task, ok := dst.Tracker.Task(daily.ID)
	if !ok || !task.IsCompleted {
		t.Error("completion state should survive a same-day import")
	}
}

func TestImportRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("not json"), 0600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	ctx, _ := newContext(storage.NewMemoryStore())
	if err := (&ImportCmd{File: path}).Run(ctx); err == nil {
		t.Error("expected error importing a non-export file")
	}
}

func TestExportImportYAML(t *testing.T) {
	src, _ := newContext(storage.NewMemoryStore())
	if _, err := src.LoadTracker(); err != nil {
		t.Fatalf("LoadTracker failed: %v", err)
	}
	task, _ := src.Tracker.AddTask(tracker.NewTask{Title: "Journal", Description: "- one line", IsRecurring: true})
	src.Tracker.ToggleCompletion(task.ID)
	if err := src.Tracker.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "export.yml")
	if err := (&ExportCmd{Out: path}).Run(src); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	if !strings.Contains(string(data), "taskHistory:") || strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		t.Fatalf("expected YAML output, got:\n%s", data)
	}

	dst, _ := newContext(storage.NewMemoryStore())
	if err := (&ImportCmd{File: path}).Run(dst); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	got, ok := dst.Tracker.Task(task.ID)
	if !ok {
		t.Fatal("imported task missing")
	}
	if got.Title != "Journal" || got.Description != "- one line" || !got.IsRecurring || !got.IsCompleted {
		t.Errorf("imported task = %+v", got)
	}
	if len(dst.Tracker.History()) != 1 {
		t.Errorf("imported %d history records, want 1", len(dst.Tracker.History()))
	}
}

func TestExportFormatValidation(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"", false},
		{"json", false},
		{"yaml", false},
		{"xml", true},
	}
	for _, tt := range tests {
		err := (&ExportCmd{Format: tt.format}).Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestExportToStdoutUsesFormat(t *testing.T) {
	ctx, out := newContext(storage.NewMemoryStore())
	if err := (&ExportCmd{Format: "yaml"}).Run(ctx); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(out.String(), "version: 1") {
		t.Errorf("expected YAML on stdout, got:\n%s", out.String())
	}
}
