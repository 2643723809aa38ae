package sqlite

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/tracklit/internal/storage"
	"github.com/julianstephens/tracklit/internal/storage/storagetest"
)

func TestProvider(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Provider {
		return NewStore(filepath.Join(t.TempDir(), "tracklit.db"))
	})
}

func TestLoadBeforeInit(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := s.Load(); !errors.Is(err, storage.ErrNotInitialized) {
		t.Errorf("Load() error = %v, want ErrNotInitialized", err)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "tracklit.db"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer s.Close()

	n, err := s.Migrate()
	if err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if n != 0 {
		t.Errorf("Migrate() after Init applied %d migrations, want 0", n)
	}
}

func TestUncheckedDaysAreNotStored(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "tracklit.db"))
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	activities, _ := storagetest.Fixture()
	walk := activities["a-walk"]
	walk.Checks["2026-03-12"] = false
	if err := s.AddActivity(walk); err != nil {
		t.Fatal(err)
	}

	var n int
	if err := s.GetDB().QueryRow("SELECT COUNT(*) FROM checks WHERE activity_id = ?", walk.ID).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("stored %d check rows, want 2", n)
	}
}

func TestDeleteActivityRemovesChildren(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "tracklit.db"))
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	activities, _ := storagetest.Fixture()
	if err := s.AddActivity(activities["a-read"]); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteActivity("a-read"); err != nil {
		t.Fatal(err)
	}

	var n int
	if err := s.GetDB().QueryRow("SELECT COUNT(*) FROM time_entries").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("%d orphaned time entries remain", n)
	}
}
