// Package streak computes streaks, completion rate and today's status for a
// habit from its schedule and completion history.
//
// The calculator is pure: it never reads the clock, never mutates its inputs
// and keeps no state between calls. "now" is always passed in.
package streak

import (
	"math"
	"sort"
	"time"

	"github.com/rnwolfe/habit/internal/calendar"
	"github.com/rnwolfe/habit/internal/frequency"
)

// Schedule is the immutable configuration of a habit.
type Schedule struct {
	StartDate     string // YYYY-MM-DD
	FrequencyMask frequency.Mask
}

// IsDueOn reports whether the habit is due on date.
func (s Schedule) IsDueOn(date string) bool {
	return frequency.IsDueOn(s.StartDate, s.FrequencyMask, date)
}

// Completion records that a habit was done on a date.
type Completion struct {
	HabitID     string
	CompletedOn string // YYYY-MM-DD
	// Note is free text attached at check-in. The calculator ignores it.
	Note string
}

// Result holds current and longest streak values.
type Result struct {
	Current int
	Longest int
}

// Enriched combines a schedule, its completions and everything computed
// from them.
type Enriched struct {
	Schedule
	Completions      []Completion
	CurrentStreak    int
	LongestStreak    int
	CompletionRate   int // percent, 0-100
	LastCompletedOn  *string
	IsDueToday       bool
	IsCompletedToday bool
}

// Enrich computes the full view of a habit as of now.
func Enrich(s Schedule, completions []Completion, now time.Time) Enriched {
	today := calendar.Today(now)
	e := Enriched{
		Schedule:    s,
		Completions: completions,
		IsDueToday:  s.IsDueOn(today),
	}
	if len(completions) == 0 {
		return e
	}

	sorted := sortedDesc(completions)
	r := calculateSorted(s, sorted, now)
	e.CurrentStreak = r.Current
	e.LongestStreak = r.Longest
	e.CompletionRate = CompletionRate(s, completions, now)

	last := sorted[0].CompletedOn
	e.LastCompletedOn = &last
	for _, c := range completions {
		if c.CompletedOn == today {
			e.IsCompletedToday = true
			break
		}
	}
	return e
}

// Calculate returns the current and longest streak.
//
// The current streak counts consecutive satisfied due dates walking back from
// today (or yesterday when today is not yet done), so a weekday habit keeps
// its streak across an idle weekend.
//
// The longest streak is a plain run of completions no more than one calendar
// day apart and ignores the schedule. It can therefore be smaller than the
// current streak for non-daily habits. Callers rely on this, so keep the two
// rules distinct.
func Calculate(s Schedule, completions []Completion, now time.Time) Result {
	if len(completions) == 0 {
		return Result{}
	}
	return calculateSorted(s, sortedDesc(completions), now)
}

func calculateSorted(s Schedule, sorted []Completion, now time.Time) Result {
	return Result{
		Current: currentStreak(s, sorted, now),
		Longest: longestStreak(sorted),
	}
}

func currentStreak(s Schedule, sorted []Completion, now time.Time) int {
	start := calendar.MustParse(s.StartDate)

	check := calendar.MustParse(calendar.Today(now))
	if sorted[0].CompletedOn != calendar.Format(check) {
		check = calendar.AddDays(check, -1)
	}

	streak := 0
	for _, c := range sorted {
		if c.CompletedOn != calendar.Format(check) || !frequency.IsDueOnDate(start, s.FrequencyMask, check) {
			break
		}
		streak++
		check = previousDue(start, s.FrequencyMask, check)
	}
	return streak
}

// previousDue steps back from d to the nearest earlier due date, or to the
// first date before start if there is none.
func previousDue(start time.Time, mask frequency.Mask, d time.Time) time.Time {
	d = calendar.AddDays(d, -1)
	for !d.Before(start) && !frequency.IsDueOnDate(start, mask, d) {
		d = calendar.AddDays(d, -1)
	}
	return d
}

func longestStreak(sorted []Completion) int {
	longest := 1
	run := 1
	for i := 1; i < len(sorted); i++ {
		if calendar.DaysDifference(sorted[i-1].CompletedOn, sorted[i].CompletedOn) <= 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// CompletionRate returns the percentage of due days from the start date
// through today that have a completion. Completions outside that window are
// ignored. Returns 0 when no day has been due yet.
func CompletionRate(s Schedule, completions []Completion, now time.Time) int {
	start := calendar.MustParse(s.StartDate)
	today := calendar.MustParse(calendar.Today(now))

	due := 0
	for d := start; !d.After(today); d = calendar.AddDays(d, 1) {
		if frequency.IsDueOnDate(start, s.FrequencyMask, d) {
			due++
		}
	}
	if due == 0 {
		return 0
	}

	done := 0
	for _, c := range completions {
		d := calendar.MustParse(c.CompletedOn)
		if !d.Before(start) && !d.After(today) {
			done++
		}
	}

	rate := int(math.Floor(100*float64(done)/float64(due) + 0.5))
	// Completions on non-due days can push done past due; the rate is a
	// percentage and stays capped at 100 on purpose.
	if rate > 100 {
		rate = 100
	}
	return rate
}

// sortedDesc returns a copy of completions ordered most recent first.
func sortedDesc(completions []Completion) []Completion {
	out := make([]Completion, len(completions))
	copy(out, completions)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CompletedOn > out[j].CompletedOn
	})
	return out
}
