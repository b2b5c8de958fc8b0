package store

import (
	"os"
	"path/filepath"
	"testing"
)

// setupTestXDG sets XDG env vars to a temp directory for isolated testing.
func setupTestXDG(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	t.Setenv("HABIT_DB", "")
	return tmpDir
}

func TestOpenAndClose(t *testing.T) {
	tmpDir := setupTestXDG(t)

	db, err := Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	if db.Conn() == nil {
		t.Fatal("Conn() returned nil")
	}

	dbPath := filepath.Join(tmpDir, "habit", "habit.db")
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("Database file not created at %s: %v", dbPath, err)
	}
}

func TestMigrationsCreateTables(t *testing.T) {
	db, err := OpenPath(":memory:")
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	defer db.Close()

	for _, table := range []string{"migrations", "habits", "completions", "kv"} {
		var name string
		err := db.Conn().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("Table %q not found: %v", table, err)
		}
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	setupTestXDG(t)

	for i := 0; i < 2; i++ {
		db, err := Open()
		if err != nil {
			t.Fatalf("Open #%d failed: %v", i+1, err)
		}
		db.Close()
	}
}

func TestWALMode(t *testing.T) {
	setupTestXDG(t)

	db, err := Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	var journalMode string
	if err := db.Conn().QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		t.Fatalf("Querying journal_mode failed: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("Expected WAL mode, got %q", journalMode)
	}
}

func TestFrequencyCheckConstraint(t *testing.T) {
	db, err := OpenPath(":memory:")
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	defer db.Close()

	_, err = db.Conn().Exec(`INSERT INTO habits (id, title, frequency, start_date) VALUES ('a', 'Read', 0, '2024-01-01')`)
	if err == nil {
		t.Fatal("expected CHECK constraint to reject frequency 0")
	}
}

func TestKV(t *testing.T) {
	db, err := OpenPath(":memory:")
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	defer db.Close()

	if _, ok, err := db.GetKV("missing"); err != nil || ok {
		t.Fatalf("GetKV(missing) = ok=%v err=%v, want false,nil", ok, err)
	}
	if err := db.SetKV("last_reminder", "2024-01-01"); err != nil {
		t.Fatalf("SetKV: %v", err)
	}
	if err := db.SetKV("last_reminder", "2024-01-02"); err != nil {
		t.Fatalf("SetKV overwrite: %v", err)
	}
	v, ok, err := db.GetKV("last_reminder")
	if err != nil || !ok || v != "2024-01-02" {
		t.Fatalf("GetKV = %q,%v,%v, want 2024-01-02,true,nil", v, ok, err)
	}
}
