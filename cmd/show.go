package cmd

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rnwolfe/habit/internal/calendar"
	"github.com/rnwolfe/habit/internal/frequency"
	"github.com/rnwolfe/habit/internal/habit"
	"github.com/rnwolfe/habit/internal/streak"
	"github.com/rnwolfe/habit/internal/ui"
	"github.com/spf13/cobra"
)

const (
	heatDone   = "■"
	heatMissed = "□"
	heatRest   = "·"
	maxWeeks   = 26
	maxNotes   = 5
)

var showWeeks int

var showCmd = &cobra.Command{
	Use:   "show [habit]",
	Short: "Show one habit's stats and recent history",
	RunE:  runShow,
}

func init() {
	showCmd.Flags().IntVarP(&showWeeks, "weeks", "w", 0, "Weeks of history to draw (default fits the terminal)")
}

func runShow(_ *cobra.Command, args []string) error {
	now, err := referenceTime()
	if err != nil {
		return err
	}

	db, hs, err := openHabits()
	if err != nil {
		return err
	}
	defer db.Close()

	h, err := resolveOrPick(hs, args, "Show", now)
	if err != nil {
		return err
	}
	e, err := hs.Enrich(*h, now)
	if err != nil {
		return err
	}

	ui.Header(h.Title)
	if h.Description != "" {
		fmt.Println(ui.Muted.Render("  " + h.Description))
	}
	fmt.Println()
	ui.Kv("Days", fmt.Sprintf("%s (%d/week)", h.Frequency, h.Frequency.DaysPerWeek()))
	ui.Kv("Started", h.StartDate)
	ui.Kv("Streak", ui.Flame(e.Stats.CurrentStreak))
	ui.Kv("Best", fmt.Sprintf("%d days", e.Stats.LongestStreak))
	ui.Kv("Rate", fmt.Sprintf("%s %d%%", ui.Bar(e.Stats.CompletionRate, 20), e.Stats.CompletionRate))
	last := "never"
	if e.Stats.LastCompletedOn != nil {
		last = *e.Stats.LastCompletedOn
	}
	ui.Kv("Last done", last)
	if next, ok := streak.NextMilestone(e.Stats.CurrentStreak); ok {
		ui.Kv("Next milestone", fmt.Sprintf("%d days (%d to go)", next, next-e.Stats.CurrentStreak))
	}
	if h.Archived {
		ui.Kv("Status", "archived")
	}

	if notes := recentNotes(e.Stats.Completions, maxNotes); len(notes) > 0 {
		fmt.Println()
		fmt.Println(ui.Muted.Render("  Notes"))
		for _, c := range notes {
			fmt.Printf("  %s  %s\n", ui.Muted.Render(c.CompletedOn), c.Note)
		}
	}

	weeks := showWeeks
	if weeks <= 0 {
		weeks = weeksForWidth(ui.TermWidth(80))
	}
	fmt.Println()
	fmt.Print(heatmap(*h, e.Stats.Completions, now, weeks))
	fmt.Println()
	fmt.Println(ui.Muted.Render(fmt.Sprintf("  %s done  %s missed  %s not due", heatDone, heatMissed, heatRest)))
	fmt.Println()
	return nil
}

// recentNotes returns up to n completions carrying a note, most recent first.
func recentNotes(completions []streak.Completion, n int) []streak.Completion {
	var out []streak.Completion
	for _, c := range completions {
		if c.Note != "" {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CompletedOn > out[j].CompletedOn })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// weeksForWidth fits two columns per week after the day labels.
func weeksForWidth(width int) int {
	w := (width - 8) / 2
	if w < 4 {
		return 4
	}
	if w > maxWeeks {
		return maxWeeks
	}
	return w
}

// heatmap draws a weekday-by-week grid ending with the current week. Days
// after now and before the habit started are left blank.
func heatmap(h habit.Habit, completions []streak.Completion, now time.Time, weeks int) string {
	done := make(map[string]bool, len(completions))
	for _, c := range completions {
		done[c.CompletedOn] = true
	}

	today := calendar.Today(now)
	start := calendar.MustParse(h.StartDate)
	sunday := calendar.AddDays(now, 7-frequency.DayOfWeekIndex(now))
	first := calendar.AddDays(sunday, -7*weeks+1)

	labels := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	var b strings.Builder
	for row := 0; row < 7; row++ {
		b.WriteString("  ")
		b.WriteString(ui.Muted.Render(labels[row]))
		b.WriteString(" ")
		for w := 0; w < weeks; w++ {
			d := calendar.AddDays(first, w*7+row)
			ds := calendar.Format(d)
			b.WriteString(" ")
			switch {
			case ds > today || d.Before(start):
				b.WriteString(" ")
			case done[ds]:
				b.WriteString(ui.Success.Render(heatDone))
			case h.Schedule().IsDueOn(ds):
				b.WriteString(ui.Error.Render(heatMissed))
			default:
				b.WriteString(ui.Muted.Render(heatRest))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
