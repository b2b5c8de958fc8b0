package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rnwolfe/habit/internal/calendar"
	"github.com/rnwolfe/habit/internal/config"
	"github.com/rnwolfe/habit/internal/habit"
	"github.com/rnwolfe/habit/internal/store"
	"github.com/rnwolfe/habit/internal/tips"
	"github.com/rnwolfe/habit/internal/tui"
	"github.com/rnwolfe/habit/internal/ui"
	"github.com/spf13/cobra"
)

// todayFlag pins the reference date; empty means the local calendar date.
var todayFlag string

var rootCmd = &cobra.Command{
	Use:   "habit",
	Short: "Build habits, keep streaks",
	Long: `habit is a local-first habit tracker.

Schedule habits on any mix of weekdays, check them off, and watch the
streaks grow. Everything lives in a SQLite file on your machine.`,
	RunE: runDashboard,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.Err(err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&todayFlag, "today", "", "Treat this date (YYYY-MM-DD) as today")
	_ = rootCmd.PersistentFlags().MarkHidden("today")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(unarchiveCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(remindCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// referenceTime is the single place the CLI reads the wall clock. The
// result is midnight UTC of the user's local date so the engine's UTC date
// arithmetic lines up with the calendar the user sees.
func referenceTime() (time.Time, error) {
	if todayFlag != "" {
		t, err := calendar.Parse(todayFlag)
		if err != nil {
			return time.Time{}, fmt.Errorf("--today: %w", err)
		}
		return t, nil
	}
	return calendar.LocalDay(time.Now()), nil
}

// resolveDate accepts YYYY-MM-DD, "today" or "yesterday".
func resolveDate(s string, now time.Time) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return calendar.Today(now), nil
	case "yesterday":
		return calendar.ShiftDate(calendar.Today(now), -1), nil
	}
	if !calendar.Valid(s) {
		return "", fmt.Errorf("%w: %q", calendar.ErrInvalidDate, s)
	}
	return s, nil
}

// openHabits opens the database and wraps it in a habit store.
func openHabits() (*store.DB, *habit.Store, error) {
	db, err := store.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}
	return db, habit.NewStore(db.Conn()), nil
}

// resolveOrPick resolves args as a habit reference. With no args on a
// terminal it falls back to the interactive picker.
func resolveOrPick(hs *habit.Store, args []string, title string, now time.Time) (*habit.Habit, error) {
	if len(args) > 0 {
		return hs.Resolve(strings.Join(args, " "))
	}
	if !tui.IsTTY() {
		return nil, fmt.Errorf("which habit? pass a title or id")
	}
	entries, err := hs.EnrichAll(false, now)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no habits yet, add one with %s", ui.Accent.Render(`habit add "Read 10 pages"`))
	}
	picked, err := tui.Pick(entries, tui.WithTitle(title), tui.DueFirst())
	if err != nil {
		return nil, err
	}
	if picked == nil {
		return nil, fmt.Errorf("cancelled")
	}
	return &picked.Habit, nil
}

// runDashboard shows today's habits when you just type `habit`.
func runDashboard(_ *cobra.Command, _ []string) error {
	if !config.Initialized() {
		fmt.Println(ui.Greet(""))
		fmt.Println()
		fmt.Println("  Looks like this is your first time. Let's set things up!")
		fmt.Println()
		fmt.Printf("  Run %s to get started.\n", ui.Accent.Render("habit init"))
		fmt.Println()
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
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

	fmt.Println(ui.Greet(cfg.User.Name))
	fmt.Println(ui.Muted.Render("  " + now.Format("Monday, January 2")))
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println(ui.Muted.Render("  No habits yet."))
		ui.Tip("`habit add \"Drink water\"` to start your first streak.")
		fmt.Println()
		return nil
	}

	due, done := 0, 0
	for _, e := range entries {
		if !e.Stats.IsDueToday {
			continue
		}
		due++
		if e.Stats.IsCompletedToday {
			done++
		}
		fmt.Println(todayLine(e))
	}
	if due == 0 {
		fmt.Println(ui.Muted.Render("  Nothing due today. Rest day!"))
	}

	fmt.Println()
	ui.Kv("Today", fmt.Sprintf("%d/%d done", done, due))
	ui.Kv("Habits", fmt.Sprintf("%d active", len(entries)))

	switch {
	case due > done:
		ui.Tip("`habit done` to check one off.")
	case due > 0:
		fmt.Println()
		fmt.Println("  " + ui.Success.Render("All done for today. Nice work."))
		ui.Tip(tips.Daily(now))
	default:
		ui.Tip(tips.Daily(now))
	}
	fmt.Println()
	return nil
}

func todayLine(e habit.Entry) string {
	mark := ui.Warning.Render(ui.IconTodo)
	if e.Stats.IsCompletedToday {
		mark = ui.Success.Render(ui.IconDone)
	}
	return fmt.Sprintf("  %s %-28s %s", mark, e.Habit.Title, ui.Flame(e.Stats.CurrentStreak))
}
