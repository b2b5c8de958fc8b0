package cmd

import (
	"fmt"

	"github.com/rnwolfe/habit/internal/habit"
	"github.com/rnwolfe/habit/internal/ui"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summary across all active habits",
	RunE:  runStats,
}

// summary aggregates enriched habits.
type summary struct {
	Habits      int
	DueToday    int
	DoneToday   int
	AverageRate int
	BestCurrent *habit.Entry
	BestLongest *habit.Entry
}

func summarize(entries []habit.Entry) summary {
	s := summary{Habits: len(entries)}
	total := 0
	for i := range entries {
		e := &entries[i]
		if e.Stats.IsDueToday {
			s.DueToday++
			if e.Stats.IsCompletedToday {
				s.DoneToday++
			}
		}
		total += e.Stats.CompletionRate
		if s.BestCurrent == nil || e.Stats.CurrentStreak > s.BestCurrent.Stats.CurrentStreak {
			s.BestCurrent = e
		}
		if s.BestLongest == nil || e.Stats.LongestStreak > s.BestLongest.Stats.LongestStreak {
			s.BestLongest = e
		}
	}
	if s.Habits > 0 {
		s.AverageRate = (total + s.Habits/2) / s.Habits
	}
	return s
}

func runStats(_ *cobra.Command, _ []string) error {
	now, err := referenceTime()
	if err != nil {
		return err
	}

	db, hs, err := openHabits()
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := hs.EnrichAll(false, now)
	if err != nil {
		return fmt.Errorf("loading habits: %w", err)
	}
	if len(entries) == 0 {
		ui.Inf("No habits to summarize yet.")
		return nil
	}

	s := summarize(entries)

	ui.Header("Stats")
	fmt.Println()
	ui.Kv("Habits", fmt.Sprintf("%d active", s.Habits))
	ui.Kv("Today", fmt.Sprintf("%d/%d done", s.DoneToday, s.DueToday))
	ui.Kv("Average rate", fmt.Sprintf("%s %d%%", ui.Bar(s.AverageRate, 20), s.AverageRate))
	if s.BestCurrent.Stats.CurrentStreak > 0 {
		ui.Kv("Hottest", fmt.Sprintf("%s %s", s.BestCurrent.Habit.Title, ui.Flame(s.BestCurrent.Stats.CurrentStreak)))
	}
	if s.BestLongest.Stats.LongestStreak > 0 {
		ui.Kv("Record", fmt.Sprintf("%s %s %d days", s.BestLongest.Habit.Title, ui.IconStar, s.BestLongest.Stats.LongestStreak))
	}

	fmt.Println()
	for _, e := range entries {
		fmt.Printf("  %-28s %s %3d%%\n", e.Habit.Title, ui.Bar(e.Stats.CompletionRate, 20), e.Stats.CompletionRate)
	}
	fmt.Println()
	return nil
}
