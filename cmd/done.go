package cmd

import (
	"fmt"
	"time"

	"github.com/rnwolfe/habit/internal/calendar"
	"github.com/rnwolfe/habit/internal/habit"
	"github.com/rnwolfe/habit/internal/streak"
	"github.com/rnwolfe/habit/internal/ui"
	"github.com/spf13/cobra"
)

var (
	doneDate string
	doneNote string
	undoDate string
)

var doneCmd = &cobra.Command{
	Use:     "done [habit]",
	Aliases: []string{"do", "check"},
	Short:   "Mark a habit done for today (or --date)",
	Long: `Mark a habit done. With no argument on a terminal, pick one from a list
of today's habits. Marking the same day twice is a no-op.`,
	Example: `  habit done Gym
  habit done "Read 10 pages" --date yesterday
  habit done`,
	RunE: runDone,
}

var undoCmd = &cobra.Command{
	Use:   "undo [habit]",
	Short: "Remove a completion for today (or --date)",
	RunE:  runUndo,
}

func init() {
	doneCmd.Flags().StringVar(&doneDate, "date", "", "Date to mark (YYYY-MM-DD, today, yesterday)")
	doneCmd.Flags().StringVarP(&doneNote, "note", "n", "", "Attach a note to the completion")
	undoCmd.Flags().StringVar(&undoDate, "date", "", "Date to clear (YYYY-MM-DD, today, yesterday)")
}

func runDone(_ *cobra.Command, args []string) error {
	now, err := referenceTime()
	if err != nil {
		return err
	}
	date, err := resolveDate(doneDate, now)
	if err != nil {
		return fmt.Errorf("--date: %w", err)
	}

	db, hs, err := openHabits()
	if err != nil {
		return err
	}
	defer db.Close()

	h, err := resolveOrPick(hs, args, "Mark done", now)
	if err != nil {
		return err
	}

	before, err := hs.Enrich(*h, now)
	if err != nil {
		return err
	}

	inserted, err := hs.Complete(h.ID, date, doneNote, now)
	if err != nil {
		return err
	}
	if !inserted {
		ui.Inf(fmt.Sprintf("%s was already done on %s.", h.Title, date))
		return nil
	}

	after, err := hs.Enrich(*h, now)
	if err != nil {
		return err
	}

	ui.Ok(fmt.Sprintf("%s %s", h.Title, doneSuffix(date, now)))
	ui.Kv("Streak", ui.Flame(after.Stats.CurrentStreak))
	ui.Kv("Best", fmt.Sprintf("%d days", after.Stats.LongestStreak))
	ui.Kv("Rate", fmt.Sprintf("%d%%", after.Stats.CompletionRate))

	if msg := milestoneMessage(before, after); msg != "" {
		fmt.Println()
		fmt.Println("  " + ui.Streak.Render(msg))
	}
	fmt.Println()
	return nil
}

func doneSuffix(date string, now time.Time) string {
	if calendar.IsToday(date, now) {
		return "done today"
	}
	return "done on " + date
}

// milestoneMessage celebrates the largest milestone the current streak just
// crossed, or returns "".
func milestoneMessage(before, after habit.Entry) string {
	m, ok := streak.CrossedMilestone(before.Stats.CurrentStreak, after.Stats.CurrentStreak)
	if !ok {
		return ""
	}
	if m >= 365 {
		return fmt.Sprintf("%s%d-day streak. A whole year!", ui.IconParty, m)
	}
	return fmt.Sprintf("%s%d-day streak! Keep it going.", ui.IconParty, m)
}

func runUndo(_ *cobra.Command, args []string) error {
	now, err := referenceTime()
	if err != nil {
		return err
	}
	date, err := resolveDate(undoDate, now)
	if err != nil {
		return fmt.Errorf("--date: %w", err)
	}

	db, hs, err := openHabits()
	if err != nil {
		return err
	}
	defer db.Close()

	h, err := resolveOrPick(hs, args, "Undo", now)
	if err != nil {
		return err
	}

	removed, err := hs.Uncomplete(h.ID, date)
	if err != nil {
		return err
	}
	if !removed {
		ui.Inf(fmt.Sprintf("%s has no completion on %s.", h.Title, date))
		return nil
	}

	after, err := hs.Enrich(*h, now)
	if err != nil {
		return err
	}
	ui.Ok(fmt.Sprintf("Cleared %s on %s", h.Title, date))
	ui.Kv("Streak", ui.Flame(after.Stats.CurrentStreak))
	return nil
}
