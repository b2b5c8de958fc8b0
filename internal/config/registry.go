package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rnwolfe/habit/internal/frequency"
	"github.com/robfig/cron/v3"
)

// KeyType represents the data type of a config key.
type KeyType string

const (
	KeyTypeString KeyType = "string"
	KeyTypeBool   KeyType = "bool"
)

// ExportFormats lists the accepted values for export.default_format.
var ExportFormats = []string{"csv", "json", "yaml"}

// KeyEntry describes a known, settable config key.
type KeyEntry struct {
	// Type is the value's data type.
	Type KeyType
	// Desc is shown in `habit config list`.
	Desc string
	// DefaultStr is the string representation of the default value.
	DefaultStr string

	get   func(*Config) string
	set   func(cfg *Config, value string) error
	unset func(cfg *Config)
}

// Get returns the current value of the key as a string.
func (e *KeyEntry) Get(cfg *Config) string { return e.get(cfg) }

// Set validates and sets the value.
func (e *KeyEntry) Set(cfg *Config, value string) error { return e.set(cfg, value) }

// Unset resets the key to its default.
func (e *KeyEntry) Unset(cfg *Config) { e.unset(cfg) }

// SchemaKeys is the registry of all settable config keys, in TOML dot-notation.
var SchemaKeys = map[string]*KeyEntry{
	"user.name": {
		Type:       KeyTypeString,
		Desc:       "Display name used in the dashboard greeting",
		DefaultStr: "",
		get:        func(cfg *Config) string { return cfg.User.Name },
		set:        func(cfg *Config, v string) error { cfg.User.Name = v; return nil },
		unset:      func(cfg *Config) { cfg.User.Name = "" },
	},
	"habits.default_frequency": {
		Type:       KeyTypeString,
		Desc:       "Frequency for new habits (daily, weekdays, weekends, or mon,wed,fri)",
		DefaultStr: DefaultFrequency,
		get:        func(cfg *Config) string { return cfg.Habits.DefaultFrequency },
		set: func(cfg *Config, v string) error {
			if _, err := frequency.ParseMask(v); err != nil {
				return fmt.Errorf("invalid value %q for habits.default_frequency: %w", v, err)
			}
			cfg.Habits.DefaultFrequency = v
			return nil
		},
		unset: func(cfg *Config) { cfg.Habits.DefaultFrequency = DefaultFrequency },
	},
	"reminders.enabled": {
		Type:       KeyTypeBool,
		Desc:       "Run reminder checks in `habit remind --watch`",
		DefaultStr: "true",
		get:        func(cfg *Config) string { return fmt.Sprintf("%t", cfg.Reminders.IsEnabled()) },
		set: func(cfg *Config, v string) error {
			b, err := ParseBoolValue(v)
			if err != nil {
				return fmt.Errorf("invalid value %q for reminders.enabled: %w", v, err)
			}
			cfg.Reminders.Enabled = BoolPtr(b)
			return nil
		},
		unset: func(cfg *Config) { cfg.Reminders.Enabled = BoolPtr(true) },
	},
	"reminders.schedule": {
		Type:       KeyTypeString,
		Desc:       "Cron spec with seconds for reminder checks (e.g. \"0 0 9 * * *\")",
		DefaultStr: DefaultReminderCron,
		get:        func(cfg *Config) string { return cfg.Reminders.Schedule },
		set: func(cfg *Config, v string) error {
			if err := ValidateCron(v); err != nil {
				return fmt.Errorf("invalid value %q for reminders.schedule: %w", v, err)
			}
			cfg.Reminders.Schedule = v
			return nil
		},
		unset: func(cfg *Config) { cfg.Reminders.Schedule = DefaultReminderCron },
	},
	"export.default_format": {
		Type:       KeyTypeString,
		Desc:       "Default format for `habit export` (csv, json, yaml)",
		DefaultStr: DefaultExportFormat,
		get:        func(cfg *Config) string { return cfg.Export.DefaultFormat },
		set: func(cfg *Config, v string) error {
			v = strings.ToLower(strings.TrimSpace(v))
			for _, f := range ExportFormats {
				if v == f {
					cfg.Export.DefaultFormat = v
					return nil
				}
			}
			return fmt.Errorf("invalid value %q for export.default_format (use one of: %s)", v, strings.Join(ExportFormats, ", "))
		},
		unset: func(cfg *Config) { cfg.Export.DefaultFormat = DefaultExportFormat },
	},
}

// CronParser parses the six-field specs used for reminders.
var CronParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ValidateCron checks that spec parses as a reminder schedule.
func ValidateCron(spec string) error {
	_, err := CronParser.Parse(spec)
	return err
}

// ValidKeyNames returns the sorted list of all known config key names.
func ValidKeyNames() []string {
	names := make([]string, 0, len(SchemaKeys))
	for k := range SchemaKeys {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// LookupKey returns the KeyEntry for a known config key.
func LookupKey(key string) (*KeyEntry, bool) {
	entry, ok := SchemaKeys[key]
	return entry, ok
}

// ParseBoolValue accepts common boolean string representations.
// Valid truthy values: true, 1, yes, on.
// Valid falsy values: false, 0, no, off.
func ParseBoolValue(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("not a boolean: %q (use one of: true/false, 1/0, yes/no, on/off)", s)
	}
}
