package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Defaults shared by the config file and the key registry.
const (
	DefaultFrequency    = "daily"
	DefaultReminderCron = "0 0 9 * * *"
	DefaultExportFormat = "csv"
	appDirName          = "habit"
	dbEnvVar            = "HABIT_DB"
)

// Config holds the top-level habit configuration.
type Config struct {
	User      UserConfig     `toml:"user"`
	Habits    HabitsConfig   `toml:"habits"`
	Reminders ReminderConfig `toml:"reminders"`
	Export    ExportConfig   `toml:"export"`
}

type UserConfig struct {
	Name string `toml:"name"`
}

// HabitsConfig holds defaults applied to new habits.
type HabitsConfig struct {
	// DefaultFrequency is a preset name or day list, e.g. "weekdays" or "mon,wed,fri".
	DefaultFrequency string `toml:"default_frequency"`
}

// ReminderConfig controls `habit remind --watch`.
type ReminderConfig struct {
	// Enabled defaults to true when not set in config.
	Enabled *bool `toml:"enabled,omitempty"`
	// Schedule is a six-field cron spec (with seconds).
	Schedule string `toml:"schedule"`
}

// IsEnabled treats nil (missing from config) as true.
func (r ReminderConfig) IsEnabled() bool {
	if r.Enabled == nil {
		return true
	}
	return *r.Enabled
}

type ExportConfig struct {
	DefaultFormat string `toml:"default_format"` // csv, json, yaml
}

// Paths returns standard XDG-compliant paths.
type Paths struct {
	ConfigDir  string
	DataDir    string
	ConfigFile string
	DBFile     string
}

// GetPaths returns the resolved paths, respecting XDG env vars.
// HABIT_DB overrides the database location.
func GetPaths() Paths {
	home, _ := os.UserHomeDir()

	configDir := envOr("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	dataDir := envOr("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))

	appConfig := filepath.Join(configDir, appDirName)
	appData := filepath.Join(dataDir, appDirName)

	return Paths{
		ConfigDir:  appConfig,
		DataDir:    appData,
		ConfigFile: filepath.Join(appConfig, "config.toml"),
		DBFile:     envOr(dbEnvVar, filepath.Join(appData, "habit.db")),
	}
}

// EnsureDirs creates all required directories.
func (p Paths) EnsureDirs() error {
	dirs := []string{p.ConfigDir, p.DataDir, filepath.Dir(p.DBFile)}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// Load reads config from disk, returning defaults if not found.
// Keys missing from the file keep their default values.
func Load() (*Config, error) {
	paths := GetPaths()
	cfg := defaultConfig()

	data, err := os.ReadFile(paths.ConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes config to disk.
func Save(cfg *Config) error {
	paths := GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		return err
	}

	f, err := os.Create(paths.ConfigFile)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Initialized returns true if habit has been set up.
func Initialized() bool {
	paths := GetPaths()
	_, err := os.Stat(paths.ConfigFile)
	return err == nil
}

// BoolPtr returns a pointer to a bool value.
func BoolPtr(v bool) *bool {
	return &v
}

// Default returns a fresh default configuration.
func Default() *Config {
	return defaultConfig()
}

func defaultConfig() *Config {
	return &Config{
		Habits: HabitsConfig{
			DefaultFrequency: DefaultFrequency,
		},
		Reminders: ReminderConfig{
			Enabled:  BoolPtr(true),
			Schedule: DefaultReminderCron,
		},
		Export: ExportConfig{
			DefaultFormat: DefaultExportFormat,
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
