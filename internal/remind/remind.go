// Package remind finds habits that still need doing today and runs that
// check on a cron schedule.
package remind

import (
	"fmt"
	"sort"

	"github.com/rnwolfe/habit/internal/habit"
	"github.com/rnwolfe/habit/internal/streak"
)

// Reminder is a habit due today that has not been completed yet.
type Reminder struct {
	HabitID string
	Title   string
	// AtRisk is the streak that will reset if today is missed.
	AtRisk int
	// Next is the milestone the streak is heading for, 0 if none is left.
	Next int
}

// Message renders a one-line nudge.
func (r Reminder) Message() string {
	switch {
	case r.AtRisk == 0:
		return fmt.Sprintf("%s is due today", r.Title)
	case r.Next > 0 && r.Next == r.AtRisk+1:
		return fmt.Sprintf("%s is due today: one more for a %d-day milestone", r.Title, r.Next)
	default:
		return fmt.Sprintf("%s is due today: don't break your %d-day streak", r.Title, r.AtRisk)
	}
}

// Due returns reminders for entries due and not completed today, longest
// streak at risk first, then by title.
func Due(entries []habit.Entry) []Reminder {
	var out []Reminder
	for _, e := range entries {
		if e.Habit.Archived || !e.Stats.IsDueToday || e.Stats.IsCompletedToday {
			continue
		}
		r := Reminder{HabitID: e.Habit.ID, Title: e.Habit.Title, AtRisk: e.Stats.CurrentStreak}
		if m, ok := streak.NextMilestone(r.AtRisk); ok {
			r.Next = m
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AtRisk != out[j].AtRisk {
			return out[i].AtRisk > out[j].AtRisk
		}
		return out[i].Title < out[j].Title
	})
	return out
}
