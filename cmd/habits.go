package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rnwolfe/habit/internal/calendar"
	"github.com/rnwolfe/habit/internal/config"
	"github.com/rnwolfe/habit/internal/frequency"
	"github.com/rnwolfe/habit/internal/habit"
	"github.com/rnwolfe/habit/internal/ui"
	"github.com/spf13/cobra"
)

var (
	addDays   maskValue
	addStart  string
	addDesc   string
	listAll   bool
	editTitle string
	editDays  maskValue
	rmYes     bool
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a habit",
	Long: `Add a habit to track.

--days takes a preset (daily, weekdays, weekends) or a comma list of days
(mon,wed,fri). Without it the configured habits.default_frequency is used.`,
	Example: `  habit add "Read 10 pages"
  habit add Gym --days mon,wed,fri
  habit add "Long run" --days sat --start 2024-03-02`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List habits with their streaks",
	RunE:    runList,
}

var editCmd = &cobra.Command{
	Use:   "edit <habit>",
	Short: "Rename a habit or change its days",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runEdit,
}

var archiveCmd = &cobra.Command{
	Use:   "archive <habit>",
	Short: "Archive a habit, keeping its history",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runArchive,
}

var unarchiveCmd = &cobra.Command{
	Use:   "unarchive <habit>",
	Short: "Bring an archived habit back",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runUnarchive,
}

var rmCmd = &cobra.Command{
	Use:     "rm <habit>",
	Aliases: []string{"delete"},
	Short:   "Delete a habit and all of its completions",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runRm,
}

func init() {
	addCmd.Flags().Var(&addDays, "days", "Days the habit is due (daily, weekdays, weekends, mon,wed,...)")
	addCmd.Flags().StringVar(&addStart, "start", "", "Start date (YYYY-MM-DD, default today)")
	addCmd.Flags().StringVarP(&addDesc, "desc", "d", "", "Optional description")

	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "Include archived habits")

	editCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	editCmd.Flags().Var(&editDays, "days", "New schedule (daily, weekdays, weekends, mon,wed,...)")

	rmCmd.Flags().BoolVarP(&rmYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runAdd(_ *cobra.Command, args []string) error {
	now, err := referenceTime()
	if err != nil {
		return err
	}

	mask := addDays.mask
	if !addDays.set {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		mask, err = frequency.ParseMask(cfg.Habits.DefaultFrequency)
		if err != nil {
			return fmt.Errorf("habits.default_frequency: %w", err)
		}
	}

	start := calendar.Today(now)
	if addStart != "" {
		start, err = resolveDate(addStart, now)
		if err != nil {
			return fmt.Errorf("--start: %w", err)
		}
	}

	db, hs, err := openHabits()
	if err != nil {
		return err
	}
	defer db.Close()

	h, err := hs.Add(strings.Join(args, " "), addDesc, mask, start)
	if err != nil {
		return err
	}

	ui.Ok(fmt.Sprintf("Added %s", ui.Accent.Render(h.Title)))
	ui.Kv("Days", h.Frequency.String())
	ui.Kv("Starts", h.StartDate)
	ui.Kv("ID", h.ShortID())
	if frequency.IsDueOn(h.StartDate, h.Frequency, calendar.Today(now)) {
		ui.Tip(fmt.Sprintf("`habit done %q` when you've done it today.", h.Title))
	}
	return nil
}

func runList(_ *cobra.Command, _ []string) error {
	now, err := referenceTime()
	if err != nil {
		return err
	}

	db, hs, err := openHabits()
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := hs.EnrichAll(listAll, now)
	if err != nil {
		return fmt.Errorf("loading habits: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println()
		fmt.Println(ui.Muted.Render("  No habits yet."))
		ui.Tip("`habit add \"Meditate\" --days daily` to start one.")
		fmt.Println()
		return nil
	}

	fmt.Println()
	fmt.Println(ui.Muted.Render(fmt.Sprintf("    %-28s %-16s %7s %7s %5s", "HABIT", "DAYS", "STREAK", "BEST", "RATE")))
	for _, e := range entries {
		fmt.Println(listLine(e))
	}
	fmt.Println()
	fmt.Println(ui.Muted.Render(fmt.Sprintf("  %d habit(s)", len(entries))))
	fmt.Println()
	return nil
}

func listLine(e habit.Entry) string {
	mark := " "
	switch {
	case e.Stats.IsCompletedToday:
		mark = ui.Success.Render(ui.IconDone)
	case e.Stats.IsDueToday:
		mark = ui.Warning.Render(ui.IconTodo)
	}

	title := fmt.Sprintf("%-28s", e.Habit.Title)
	if e.Habit.Archived {
		title = ui.Muted.Render(fmt.Sprintf("%-28s", e.Habit.Title+" (archived)"))
	}

	return fmt.Sprintf("  %s %s %-16s %7d %7d %4d%%",
		mark, title, e.Habit.Frequency.String(),
		e.Stats.CurrentStreak, e.Stats.LongestStreak, e.Stats.CompletionRate)
}

func runEdit(_ *cobra.Command, args []string) error {
	var title *string
	var mask *frequency.Mask
	if editTitle != "" {
		title = &editTitle
	}
	if editDays.set {
		m := editDays.mask
		mask = &m
	}
	if title == nil && mask == nil {
		return fmt.Errorf("nothing to change (use --title or --days)")
	}

	db, hs, err := openHabits()
	if err != nil {
		return err
	}
	defer db.Close()

	h, err := hs.Resolve(strings.Join(args, " "))
	if err != nil {
		return err
	}
	updated, err := hs.Update(h.ID, title, mask)
	if err != nil {
		return err
	}

	ui.Ok(fmt.Sprintf("Updated %s", ui.Accent.Render(updated.Title)))
	ui.Kv("Days", updated.Frequency.String())
	return nil
}

func runArchive(_ *cobra.Command, args []string) error {
	return setArchived(args, true)
}

func runUnarchive(_ *cobra.Command, args []string) error {
	return setArchived(args, false)
}

func setArchived(args []string, archived bool) error {
	db, hs, err := openHabits()
	if err != nil {
		return err
	}
	defer db.Close()

	h, err := hs.Resolve(strings.Join(args, " "))
	if err != nil {
		return err
	}

	if archived {
		if err := hs.Archive(h.ID); err != nil {
			return err
		}
		ui.Ok(fmt.Sprintf("Archived %s", ui.Accent.Render(h.Title)))
		return nil
	}
	if err := hs.Unarchive(h.ID); err != nil {
		return err
	}
	ui.Ok(fmt.Sprintf("Restored %s", ui.Accent.Render(h.Title)))
	return nil
}

func runRm(_ *cobra.Command, args []string) error {
	db, hs, err := openHabits()
	if err != nil {
		return err
	}
	defer db.Close()

	h, err := hs.Resolve(strings.Join(args, " "))
	if err != nil {
		return err
	}

	if !rmYes {
		fmt.Printf("  Delete %s and all of its history? [y/N] ", ui.Accent.Render(h.Title))
		if !confirm(os.Stdin) {
			ui.Inf("Kept it.")
			return nil
		}
	}

	if err := hs.Delete(h.ID); err != nil {
		return err
	}
	ui.Ok(fmt.Sprintf("Deleted %s", h.Title))
	return nil
}

func confirm(r io.Reader) bool {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
