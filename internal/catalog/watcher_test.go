package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stocks.csv")

	w, err := NewWatcher(path, nil)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes := w.Watch(ctx)

	// Unrelated files in the same directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.csv"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("symbol\nNABIL\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case c, ok := <-changes:
		if !ok {
			t.Fatal("channel closed before change")
		}
		if c.Path != w.Path() || c.Removed {
			t.Errorf("change = %+v", c)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change")
	}

	cancel()
	select {
	case _, ok := <-changes:
		if ok {
			// A late change may still be delivered; the next read must close.
			if _, ok := <-changes; ok {
				t.Error("channel not closed after cancel")
			}
		}
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestNewWatcherMissingDir(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "absent", "stocks.csv"), nil); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
