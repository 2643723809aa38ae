package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/tracklit/internal/constants"
)

func setupSQLite(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "tracklit.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE activities (id TEXT PRIMARY KEY, name TEXT)`); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO activities VALUES ('a1', 'Reading'), ('a2', 'Walk')`); err != nil {
		t.Fatalf("failed to insert rows: %v", err)
	}
	return dbPath
}

func setupJSON(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tracklit.json")
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

// fixedClock makes every backup land in the same second
func fixedClock(m *Manager) {
	at := time.Date(2026, 3, 11, 9, 30, 0, 0, time.Local)
	m.now = func() time.Time { return at }
}

func countRows(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM activities").Scan(&n); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	return n
}

func TestFormatOf(t *testing.T) {
	tests := map[string]Format{
		"/x/tracklit.db":   FormatSQLite,
		"/x/tracklit.json": FormatJSON,
		"/x/TRACKLIT.JSON": FormatJSON,
		"/x/tracklit":      FormatSQLite,
	}
	for path, want := range tests {
		if got := FormatOf(path); got != want {
			t.Errorf("FormatOf(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestCreateSQLiteBackup(t *testing.T) {
	mgr := NewManager(setupSQLite(t))

	path, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), constants.BackupFilePrefix) || filepath.Ext(path) != ".db" {
		t.Errorf("backup name = %s", filepath.Base(path))
	}
	if n := countRows(t, path); n != 2 {
		t.Errorf("backup has %d rows, want 2", n)
	}
}

func TestCreateJSONBackup(t *testing.T) {
	mgr := NewManager(setupJSON(t, `{"version":1,"activities":{},"goals":{}}`))

	path, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}
	if filepath.Ext(path) != ".json" {
		t.Errorf("backup extension = %s, want .json", filepath.Ext(path))
	}

	bad := NewManager(setupJSON(t, `{"version":`))
	if _, err := bad.CreateBackup(); err == nil {
		t.Error("CreateBackup() should refuse to copy invalid JSON")
	}
}

func TestBackupWithNoStore(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("CreateBackup() should fail when the store does not exist")
	}
	backups, err := mgr.ListBackups()
	if err != nil || len(backups) != 0 {
		t.Errorf("ListBackups() = %v, %v; want empty", backups, err)
	}
}

func TestUniqueNamesAndRotation(t *testing.T) {
	mgr := NewManager(setupSQLite(t))
	fixedClock(mgr)

	seen := map[string]bool{}
	for i := 0; i < constants.MaxBackups+3; i++ {
		path, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup #%d error = %v", i, err)
		}
		if seen[path] {
			t.Fatalf("duplicate backup path %s", path)
		}
		seen[path] = true
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups() error = %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Fatalf("kept %d backups, want %d", len(backups), constants.MaxBackups)
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups not sorted newest first at %d", i)
		}
	}
	// the counter-less first backup is the oldest and must have been pruned
	if _, err := os.Stat(filepath.Join(mgr.GetBackupDir(), "tracklit-20260311-093000.db")); !os.IsNotExist(err) {
		t.Error("oldest backup survived rotation")
	}
}

func TestListBackupsIgnoresForeignFiles(t *testing.T) {
	mgr := NewManager(setupSQLite(t))
	if _, err := mgr.CreateBackup(); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"notes.txt", "tracklit-garbage.db", "tracklit-20260101-120000.json"} {
		if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Errorf("ListBackups() returned %d entries, want 1", len(backups))
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupSQLite(t)
	mgr := NewManager(dbPath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("DELETE FROM activities"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	safety, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		t.Fatalf("RestoreBackup() error = %v", err)
	}
	if n := countRows(t, dbPath); n != 2 {
		t.Errorf("restored store has %d rows, want 2", n)
	}
	if safety == "" {
		t.Fatal("RestoreBackup() did not report a safety backup")
	}
	if n := countRows(t, safety); n != 0 {
		t.Errorf("safety backup has %d rows, want the emptied state", n)
	}
}

func TestRestoreRejectsBadBackups(t *testing.T) {
	mgr := NewManager(setupSQLite(t))

	if _, err := mgr.RestoreBackup(filepath.Join(t.TempDir(), "nope.db")); err == nil {
		t.Error("RestoreBackup() accepted a missing file")
	}

	corrupt := filepath.Join(t.TempDir(), "tracklit-20260101-000000.db")
	if err := os.WriteFile(corrupt, []byte("not a database"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.RestoreBackup(corrupt); err == nil {
		t.Error("RestoreBackup() accepted a corrupted database")
	}

	jsonBackup := filepath.Join(t.TempDir(), "tracklit-20260101-000000.json")
	if err := os.WriteFile(jsonBackup, []byte(`{}`), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.RestoreBackup(jsonBackup); err == nil || !strings.Contains(err.Error(), "format") {
		t.Errorf("RestoreBackup() error = %v, want a format mismatch", err)
	}
}

func TestParseName(t *testing.T) {
	tests := []struct {
		name    string
		wantOK  bool
		wantSeq int
	}{
		{name: "tracklit-20260311-093000.db", wantOK: true},
		{name: "tracklit-20260311-093000-7.db", wantOK: true, wantSeq: 7},
		{name: "tracklit-20260311.db"},
		{name: "tracklit-20260311-093000-x.db"},
		{name: "other-20260311-093000.db"},
	}
	for _, tt := range tests {
		_, seq, ok := parseName(tt.name, ".db")
		if ok != tt.wantOK || seq != tt.wantSeq {
			t.Errorf("parseName(%q) = %d, %v; want %d, %v", tt.name, seq, ok, tt.wantSeq, tt.wantOK)
		}
	}
}
