package cmd

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rnwolfe/habit/internal/calendar"
	"github.com/rnwolfe/habit/internal/frequency"
	"github.com/rnwolfe/habit/internal/habit"
	"github.com/rnwolfe/habit/internal/ui"
)

// configTestEnv points config and the database at a temp dir and resets
// every command flag.
func configTestEnv(t *testing.T) {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir+"/config")
	t.Setenv("XDG_DATA_HOME", tmpDir+"/data")
	t.Setenv("HABIT_DB", filepath.Join(tmpDir, "data", "test.db"))
	t.Setenv(passphraseEnvVar, "")
	ui.DisableColor()

	resetFlags()
	t.Cleanup(resetFlags)
}

func resetFlags() {
	todayFlag = ""
	addDays.reset()
	addStart, addDesc = "", ""
	listAll = false
	editTitle = ""
	editDays.reset()
	rmYes = false
	doneDate, doneNote, undoDate = "", "", ""
	showWeeks = 0
	exportFormat, exportOutput = "", ""
	exportEncrypt, exportAll = false, true
	remindWatch, remindSchedule = false, ""
	initForce = false
	versionShort, versionJSON = false, false
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stdout = w
	defer func() {
		os.Stdout = old
		r.Close()
	}()

	done := make(chan []byte)
	go func() {
		b, _ := io.ReadAll(r)
		done <- b
	}()

	fn()

	w.Close()
	return string(<-done)
}

// seedHabit adds a habit and completes it on dates, using todayFlag as now.
func seedHabit(t *testing.T, title string, mask frequency.Mask, start string, dates ...string) *habit.Habit {
	t.Helper()
	now, err := referenceTime()
	if err != nil {
		t.Fatalf("referenceTime: %v", err)
	}
	db, hs, err := openHabits()
	if err != nil {
		t.Fatalf("openHabits: %v", err)
	}
	defer db.Close()

	h, err := hs.Add(title, "", mask, start)
	if err != nil {
		t.Fatalf("Add(%q): %v", title, err)
	}
	for _, d := range dates {
		if _, err := hs.Complete(h.ID, d, "", now); err != nil {
			t.Fatalf("Complete(%s): %v", d, err)
		}
	}
	return h
}

// loadEntry enriches a habit by title as of todayFlag.
func loadEntry(t *testing.T, title string) habit.Entry {
	t.Helper()
	now, err := referenceTime()
	if err != nil {
		t.Fatalf("referenceTime: %v", err)
	}
	db, hs, err := openHabits()
	if err != nil {
		t.Fatalf("openHabits: %v", err)
	}
	defer db.Close()

	h, err := hs.Resolve(title)
	if err != nil {
		t.Fatalf("Resolve(%q): %v", title, err)
	}
	e, err := hs.Enrich(*h, now)
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	return e
}

func dates(from string, n int) []string {
	start := calendar.MustParse(from)
	out := make([]string, n)
	for i := range out {
		out[i] = calendar.Format(calendar.AddDays(start, i))
	}
	return out
}
