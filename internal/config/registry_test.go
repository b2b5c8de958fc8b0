package config

import (
	"sort"
	"testing"
)

func TestValidKeyNames_Sorted(t *testing.T) {
	names := ValidKeyNames()
	if len(names) == 0 {
		t.Fatal("expected non-empty key list")
	}
	if !sort.StringsAreSorted(names) {
		t.Fatalf("expected sorted key names, got %v", names)
	}
}

func TestValidKeyNames_ContainsKnownKeys(t *testing.T) {
	expected := []string{"user.name", "habits.default_frequency", "reminders.enabled", "reminders.schedule", "export.default_format"}
	nameSet := make(map[string]bool)
	for _, n := range ValidKeyNames() {
		nameSet[n] = true
	}
	for _, want := range expected {
		if !nameSet[want] {
			t.Errorf("ValidKeyNames missing expected key %q", want)
		}
	}
}

func TestLookupKey_Unknown(t *testing.T) {
	if _, ok := LookupKey("not.a.real.key"); ok {
		t.Fatal("expected unknown key to return false")
	}
}

func TestParseBoolValue(t *testing.T) {
	for _, v := range []string{"true", "1", "yes", "on", "TRUE", "On"} {
		if b, err := ParseBoolValue(v); err != nil || !b {
			t.Errorf("ParseBoolValue(%q) = %v, %v; want true", v, b, err)
		}
	}
	for _, v := range []string{"false", "0", "no", "off", "OFF"} {
		if b, err := ParseBoolValue(v); err != nil || b {
			t.Errorf("ParseBoolValue(%q) = %v, %v; want false", v, b, err)
		}
	}
	if _, err := ParseBoolValue("maybe"); err == nil {
		t.Error("ParseBoolValue(maybe) should fail")
	}
}

func TestSet_DefaultFrequency(t *testing.T) {
	cfg := defaultConfig()
	entry, _ := LookupKey("habits.default_frequency")

	if err := entry.Set(cfg, "mon,wed,fri"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if cfg.Habits.DefaultFrequency != "mon,wed,fri" {
		t.Fatalf("DefaultFrequency = %q", cfg.Habits.DefaultFrequency)
	}
	if err := entry.Set(cfg, "someday"); err == nil {
		t.Fatal("expected error for unknown day")
	}
	entry.Unset(cfg)
	if cfg.Habits.DefaultFrequency != DefaultFrequency {
		t.Fatalf("after Unset = %q, want %q", cfg.Habits.DefaultFrequency, DefaultFrequency)
	}
}

func TestSet_ReminderSchedule(t *testing.T) {
	cfg := defaultConfig()
	entry, _ := LookupKey("reminders.schedule")

	if err := entry.Set(cfg, "0 30 20 * * *"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := entry.Set(cfg, "@daily"); err != nil {
		t.Fatalf("Set descriptor: %v", err)
	}
	if err := entry.Set(cfg, "every morning"); err == nil {
		t.Fatal("expected error for bad cron spec")
	}
	if cfg.Reminders.Schedule != "@daily" {
		t.Fatalf("Schedule = %q, want @daily", cfg.Reminders.Schedule)
	}
}

func TestSet_RemindersEnabled(t *testing.T) {
	cfg := defaultConfig()
	entry, _ := LookupKey("reminders.enabled")

	if err := entry.Set(cfg, "off"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if cfg.Reminders.IsEnabled() {
		t.Fatal("expected reminders disabled")
	}
	if err := entry.Set(cfg, "sometimes"); err == nil {
		t.Fatal("expected error for non-bool")
	}
	entry.Unset(cfg)
	if entry.Get(cfg) != "true" {
		t.Fatalf("Get after Unset = %q, want true", entry.Get(cfg))
	}
}

func TestSet_ExportFormat(t *testing.T) {
	cfg := defaultConfig()
	entry, _ := LookupKey("export.default_format")
	if err := entry.Set(cfg, "YAML"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if cfg.Export.DefaultFormat != "yaml" {
		t.Fatalf("DefaultFormat = %q, want yaml", cfg.Export.DefaultFormat)
	}
	if err := entry.Set(cfg, "xml"); err == nil {
		t.Fatal("expected error for xml")
	}
}

func TestAllSchemaKeys_DefaultsRoundTrip(t *testing.T) {
	cfg := defaultConfig()
	for key, entry := range SchemaKeys {
		if entry.Desc == "" {
			t.Errorf("key %q has empty Desc", key)
		}
		entry.Unset(cfg)
		if got := entry.Get(cfg); got != entry.DefaultStr {
			t.Errorf("key %q: Get after Unset = %q, want %q", key, got, entry.DefaultStr)
		}
		if entry.Type == KeyTypeString {
			if err := entry.Set(cfg, entry.DefaultStr); err != nil {
				t.Errorf("key %q: Set with default value %q failed: %v", key, entry.DefaultStr, err)
			}
		}
	}
}
