package cmd

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rnwolfe/habit/internal/calendar"
	"github.com/rnwolfe/habit/internal/config"
	"github.com/rnwolfe/habit/internal/frequency"
)

func TestReferenceTime(t *testing.T) {
	configTestEnv(t)

	todayFlag = "2024-03-15"
	got, err := referenceTime()
	if err != nil {
		t.Fatalf("referenceTime: %v", err)
	}
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("referenceTime() = %v, want %v", got, want)
	}

	todayFlag = "15/03/2024"
	if _, err := referenceTime(); err == nil {
		t.Error("expected error for malformed --today")
	}

	todayFlag = ""
	got, err = referenceTime()
	if err != nil {
		t.Fatalf("referenceTime: %v", err)
	}
	if got.Location() != time.UTC || got.Hour() != 0 {
		t.Errorf("referenceTime() = %v, want midnight UTC", got)
	}
}

func TestResolveDate_InvalidWrapsSentinel(t *testing.T) {
	_, err := resolveDate("2024-02-30", calendar.MustParse("2024-03-01"))
	if !errors.Is(err, calendar.ErrInvalidDate) {
		t.Errorf("err = %v, want ErrInvalidDate", err)
	}
}

func TestResolveDate(t *testing.T) {
	now := calendar.MustParse("2024-03-01")
	tests := []struct {
		in, want string
		wantErr  bool
	}{
		{"", "2024-03-01", false},
		{"today", "2024-03-01", false},
		{"Yesterday", "2024-02-29", false},
		{"2023-12-31", "2023-12-31", false},
		{"2023-13-01", "", true},
		{"tomorrow", "", true},
	}
	for _, tt := range tests {
		got, err := resolveDate(tt.in, now)
		if tt.wantErr {
			if err == nil {
				t.Errorf("resolveDate(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("resolveDate(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("resolveDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMaskValue(t *testing.T) {
	var m maskValue
	if m.String() != "" {
		t.Errorf("unset String() = %q, want empty", m.String())
	}
	if err := m.Set("mon,wed,fri"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !m.set || m.mask != frequency.Monday|frequency.Wednesday|frequency.Friday {
		t.Errorf("mask = %d set=%v, want 21 set=true", m.mask, m.set)
	}
	if err := m.Set("someday"); err == nil {
		t.Error("expected error for unknown day")
	}
	if m.Type() != "days" {
		t.Errorf("Type() = %q, want days", m.Type())
	}
	m.reset()
	if m.set {
		t.Error("reset did not clear set")
	}
}

func TestRunDashboard_FirstRun(t *testing.T) {
	configTestEnv(t)

	out := captureStdout(t, func() {
		if err := runDashboard(nil, nil); err != nil {
			t.Errorf("runDashboard: %v", err)
		}
	})
	if !strings.Contains(out, "habit init") {
		t.Errorf("expected init hint, got:\n%s", out)
	}
}

func TestRunDashboard_ShowsToday(t *testing.T) {
	configTestEnv(t)
	cfg := config.Default()
	cfg.User.Name = "Sam"
	if err := config.Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// 2024-01-06 is a Saturday.
	todayFlag = "2024-01-06"
	seedHabit(t, "Read", frequency.Daily, "2024-01-01", "2024-01-05", "2024-01-06")
	seedHabit(t, "Stretch", frequency.Daily, "2024-01-01")
	seedHabit(t, "Standup", frequency.Weekdays, "2024-01-01")

	out := captureStdout(t, func() {
		if err := runDashboard(nil, nil); err != nil {
			t.Errorf("runDashboard: %v", err)
		}
	})
	for _, want := range []string{"Hey Sam!", "Read", "Stretch", "1/2 done", "3 active"} {
		if !strings.Contains(out, want) {
			t.Errorf("dashboard missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Standup") {
		t.Errorf("weekday habit listed on a Saturday:\n%s", out)
	}
}
