package history

import (
	"path/filepath"
	"testing"

	"github.com/studiowebux/postboard/internal/types"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(filepath.Join(t.TempDir(), "nested", "history.db"))
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestManager_SaveAndLoad(t *testing.T) {
	m := newTestManager(t)

	req := &types.FetchRequest{Name: "list", Method: "GET", URL: "http://x/posts"}
	if err := m.Save(req, &types.FetchResult{Status: 200, Duration: 12, ResponseSize: 300}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	req2 := &types.FetchRequest{Name: "detail", Method: "GET", URL: "http://x/posts/7"}
	if err := m.Save(req2, &types.FetchResult{Error: "connection refused", Duration: 3}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	entries, err := m.Load(0)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	// Newest first (same second, so id breaks the tie)
	if entries[0].URL != "http://x/posts/7" {
		t.Errorf("entries[0].URL = %q", entries[0].URL)
	}
	if entries[0].Error != "connection refused" {
		t.Errorf("entries[0].Error = %q", entries[0].Error)
	}
	if entries[1].ResponseStatus != 200 || entries[1].ResponseSize != 300 {
		t.Errorf("entries[1] = %+v", entries[1])
	}
	if entries[1].Name != "list" {
		t.Errorf("entries[1].Name = %q", entries[1].Name)
	}
}

func TestManager_LoadLimit(t *testing.T) {
	m := newTestManager(t)
	req := &types.FetchRequest{Method: "GET", URL: "http://x/posts"}
	for i := 0; i < 5; i++ {
		if err := m.Save(req, &types.FetchResult{Status: 200}); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := m.Load(3)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("got %d entries, want 3", len(entries))
	}
}

func TestManager_DeleteAndClear(t *testing.T) {
	m := newTestManager(t)
	req := &types.FetchRequest{Method: "GET", URL: "http://x/posts"}
	for i := 0; i < 3; i++ {
		if err := m.Save(req, &types.FetchResult{Status: 200}); err != nil {
			t.Fatal(err)
		}
	}

	entries, _ := m.Load(0)
	if err := m.Delete(entries[0].ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if count, _ := m.GetCount(); count != 2 {
		t.Errorf("count after delete = %d, want 2", count)
	}

	if err := m.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if count, _ := m.GetCount(); count != 0 {
		t.Errorf("count after clear = %d, want 0", count)
	}
}
