package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func resetVars(t *testing.T) {
	t.Helper()
	v, c, d := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = v, c, d })
	Version, Commit, Date = "dev", "none", "unknown"
}

func TestGetAndString(t *testing.T) {
	info := Get()
	if info.Version != Version || info.GoVersion == "" || !strings.Contains(info.Platform, "/") {
		t.Fatalf("Get() = %+v", info)
	}
	if !strings.Contains(info.String(), Version) {
		t.Errorf("String() %q does not contain version %q", info.String(), Version)
	}
	if Short() != Version {
		t.Errorf("Short() = %q, want %q", Short(), Version)
	}
}

func TestBackfill_TaggedBuild(t *testing.T) {
	resetVars(t)
	backfill(&debug.BuildInfo{
		Main: debug.Module{Version: "v1.2.3"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abcdef1234567890"},
			{Key: "vcs.time", Value: "2024-01-05T10:00:00Z"},
		},
	})
	if Version != "v1.2.3" || Commit != "abcdef1" || Date != "2024-01-05T10:00:00Z" {
		t.Fatalf("got %s %s %s", Version, Commit, Date)
	}
}

func TestBackfill_DevelKeepsDefault(t *testing.T) {
	resetVars(t)
	backfill(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	if Version != "dev" {
		t.Fatalf("Version = %q, want dev", Version)
	}
}

func TestBackfill_LdflagsWin(t *testing.T) {
	resetVars(t)
	Version, Commit = "v9.9.9", "1234567"
	backfill(&debug.BuildInfo{
		Main:     debug.Module{Version: "v1.0.0"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "ffffffffff"}},
	})
	if Version != "v9.9.9" || Commit != "1234567" {
		t.Fatalf("ldflags overwritten: %s %s", Version, Commit)
	}
}

func TestBackfill_Nil(t *testing.T) {
	resetVars(t)
	backfill(nil)
	if Version != "dev" {
		t.Fatalf("Version = %q", Version)
	}
}
