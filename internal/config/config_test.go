package config

import (
	"os"
	"path/filepath"
	"testing"
)

func setupTestXDG(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmpDir, "data"))
	t.Setenv("HABIT_DB", "")
	return tmpDir
}

func TestGetPathsRespectsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/testxdg/config")
	t.Setenv("XDG_DATA_HOME", "/tmp/testxdg/data")
	t.Setenv("HABIT_DB", "")

	paths := GetPaths()

	if paths.ConfigDir != "/tmp/testxdg/config/habit" {
		t.Fatalf("expected /tmp/testxdg/config/habit, got %s", paths.ConfigDir)
	}
	if paths.DBFile != "/tmp/testxdg/data/habit/habit.db" {
		t.Fatalf("expected /tmp/testxdg/data/habit/habit.db, got %s", paths.DBFile)
	}
}

func TestGetPathsDBOverride(t *testing.T) {
	t.Setenv("HABIT_DB", "/tmp/elsewhere/h.db")
	if got := GetPaths().DBFile; got != "/tmp/elsewhere/h.db" {
		t.Fatalf("DBFile = %s, want override", got)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	if cfg.Habits.DefaultFrequency != "daily" {
		t.Fatalf("default frequency = %q, want daily", cfg.Habits.DefaultFrequency)
	}
	if !cfg.Reminders.IsEnabled() {
		t.Fatal("reminders should default to enabled")
	}
	if err := ValidateCron(cfg.Reminders.Schedule); err != nil {
		t.Fatalf("default schedule invalid: %v", err)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	setupTestXDG(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Export.DefaultFormat != DefaultExportFormat {
		t.Fatalf("DefaultFormat = %q, want %q", cfg.Export.DefaultFormat, DefaultExportFormat)
	}
	if Initialized() {
		t.Fatal("Initialized should be false before Save")
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	setupTestXDG(t)
	paths := GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(paths.ConfigFile, []byte("[user]\nname = \"Sam\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.User.Name != "Sam" {
		t.Fatalf("name = %q, want Sam", cfg.User.Name)
	}
	if cfg.Reminders.Schedule != DefaultReminderCron {
		t.Fatalf("schedule = %q, want default", cfg.Reminders.Schedule)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	setupTestXDG(t)

	cfg := defaultConfig()
	cfg.User.Name = "Alex"
	cfg.Reminders.Enabled = BoolPtr(false)
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Initialized() {
		t.Fatal("Initialized should be true after Save")
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.User.Name != "Alex" {
		t.Fatalf("name = %q, want Alex", loaded.User.Name)
	}
	if loaded.Reminders.IsEnabled() {
		t.Fatal("reminders should stay disabled after round trip")
	}
}

func TestEnsureDirs(t *testing.T) {
	setupTestXDG(t)

	paths := GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs failed: %v", err)
	}
	for _, dir := range []string{paths.ConfigDir, paths.DataDir, filepath.Dir(paths.DBFile)} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("dir %s not created: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("%s is not a directory", dir)
		}
	}
}
