package tui

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatchDebouncesStoreWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tracklit.json")
	if err := os.WriteFile(path, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}

	var calls atomic.Int32
	stop, err := watch(path, 50*time.Millisecond, func() { calls.Add(1) })
	if err != nil {
		t.Fatalf("watch() error = %v", err)
	}
	defer stop()

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte(`{"version":1}`), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	deadline := time.Now().Add(2 * time.Second)
	for calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(150 * time.Millisecond)

	if got := calls.Load(); got != 1 {
		t.Errorf("onChange called %d times, want 1", got)
	}
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tracklit.json")

	var calls atomic.Int32
	stop, err := watch(path, 20*time.Millisecond, func() { calls.Add(1) })
	if err != nil {
		t.Fatalf("watch() error = %v", err)
	}
	defer stop()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)

	if got := calls.Load(); got != 0 {
		t.Errorf("onChange called %d times, want 0", got)
	}
}
