package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func setupTestJSONStore(t *testing.T) *JSONStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "daytrack.json")

	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	return store
}

func TestJSONStoreSetGet(t *testing.T) {
	store := setupTestJSONStore(t)

	if _, ok, err := store.Get("tasks"); err != nil || ok {
		t.Fatalf("Get on empty store = (ok=%v, err=%v), want (false, nil)", ok, err)
	}

	if err := store.Set("tasks", `[{"id":"1"}]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// A fresh store over the same file sees the write.
	reopened := NewJSONStore(store.GetConfigPath())
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	v, ok, err := reopened.Get("tasks")
	if err != nil || !ok {
		t.Fatalf("Get after reload = (ok=%v, err=%v)", ok, err)
	}
	if v != `[{"id":"1"}]` {
		t.Errorf("Get = %q, want %q", v, `[{"id":"1"}]`)
	}
}

func TestJSONStoreOverwrite(t *testing.T) {
	store := setupTestJSONStore(t)

	if err := store.Set("lastAccessDate", `"2024-01-01T00:00:00Z"`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Set("lastAccessDate", `"2024-01-02T00:00:00Z"`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	v, _, _ := store.Get("lastAccessDate")
	if v != `"2024-01-02T00:00:00Z"` {
		t.Errorf("last writer should win, got %q", v)
	}
}

func TestJSONStoreReplacesFileOnSave(t *testing.T) {
	store := setupTestJSONStore(t)
	if err := store.Set("tasks", `[]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	old, err := os.Open(store.GetConfigPath())
	if err != nil {
		t.Fatalf("failed to open store file: %v", err)
	}
	defer old.Close()
	before, err := io.ReadAll(old)
	if err != nil {
		t.Fatalf("failed to read store file: %v", err)
	}

	if err := store.Set("tasks", `[{"id":"1"}]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// The previous document is never rewritten in place.
	if _, err := old.Seek(0, io.SeekStart); err != nil {
		t.Fatalf("Seek failed: %v", err)
	}
	still, err := io.ReadAll(old)
	if err != nil {
		t.Fatalf("failed to reread store file: %v", err)
	}
	if string(still) != string(before) {
		t.Errorf("old file contents changed to %q", still)
	}

	entries, err := os.ReadDir(filepath.Dir(store.GetConfigPath()))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "daytrack.json" {
		names := []string{}
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory holds %v, want only daytrack.json", names)
	}
	info, err := os.Stat(store.GetConfigPath())
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("store file mode = %o, want 600", perm)
	}
}

func TestJSONStoreDeleteAndKeys(t *testing.T) {
	store := setupTestJSONStore(t)

	for _, k := range []string{"tasks", "taskHistory", "lastAccessDate"} {
		if err := store.Set(k, "[]"); err != nil {
			t.Fatalf("Set(%s) failed: %v", k, err)
		}
	}
	if err := store.Delete("tasks"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete("missing"); err != nil {
		t.Fatalf("Delete of a missing key should be a no-op, got %v", err)
	}

	keys, err := store.Keys()
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	want := []string{"lastAccessDate", "taskHistory"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("Keys() = %v, want %v", keys, want)
	}
}

func TestJSONStoreInitTwice(t *testing.T) {
	store := setupTestJSONStore(t)
	if err := store.Init(); err == nil {
		t.Error("expected error when initializing an existing store")
	}
}

func TestJSONStoreLoadMissing(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "absent.json"))
	if err := store.Load(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Load() error = %v, want ErrNotInitialized", err)
	}
}

func TestJSONStoreLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}
	store := NewJSONStore(path)
	if err := store.Load(); err == nil {
		t.Error("expected parse error for corrupt storage file")
	}
}

func TestJSONStoreNotLoaded(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "x.json"))
	if _, _, err := store.Get("tasks"); err == nil {
		t.Error("expected error from Get before Load")
	}
	if err := store.Set("tasks", "[]"); err == nil {
		t.Error("expected error from Set before Load")
	}
}

func TestMemoryStore(t *testing.T) {
	var p Provider = NewMemoryStore()

	if _, ok, _ := p.Get("tasks"); ok {
		t.Fatal("new memory store should be empty")
	}
	if err := p.Set("tasks", "[]"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if v, ok, _ := p.Get("tasks"); !ok || v != "[]" {
		t.Errorf("Get = (%q, %v), want (\"[]\", true)", v, ok)
	}
	if err := p.Delete("tasks"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	keys, _ := p.Keys()
	if len(keys) != 0 {
		t.Errorf("Keys() = %v, want empty", keys)
	}
}
