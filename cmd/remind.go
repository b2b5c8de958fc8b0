package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rnwolfe/habit/internal/calendar"
	"github.com/rnwolfe/habit/internal/config"
	"github.com/rnwolfe/habit/internal/remind"
	"github.com/rnwolfe/habit/internal/ui"
	"github.com/spf13/cobra"
)

var (
	remindWatch    bool
	remindSchedule string
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "List habits still due today",
	Long: `List habits that are due today and not done yet, longest streak at risk
first.

With --watch, stay running and repeat the check on the reminders.schedule
cron spec (six fields, with seconds) until interrupted.`,
	RunE: runRemind,
}

func init() {
	remindCmd.Flags().BoolVarP(&remindWatch, "watch", "w", false, "Keep running and check on a schedule")
	remindCmd.Flags().StringVar(&remindSchedule, "schedule", "", "Cron spec overriding reminders.schedule")
}

func runRemind(_ *cobra.Command, _ []string) error {
	db, _, err := openHabits()
	if err != nil {
		return err
	}
	defer db.Close()

	src := remind.StoreSource{DB: db}

	if !remindWatch {
		now, err := referenceTime()
		if err != nil {
			return err
		}
		reminders, err := src.Reminders(now)
		if err != nil {
			return err
		}
		last, seen, err := db.GetKV(remind.LastRunKey)
		if err != nil {
			return err
		}
		printReminders(now, reminders)
		if seen {
			ui.Kv("Last check", last)
		}
		return src.SetKV(remind.LastRunKey, calendar.Format(now))
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if !cfg.Reminders.IsEnabled() {
		return fmt.Errorf("reminders are disabled (habit config set reminders.enabled true)")
	}
	spec := cfg.Reminders.Schedule
	if remindSchedule != "" {
		spec = remindSchedule
	}

	sched := remind.NewScheduler(src, printReminders)
	if todayFlag != "" {
		pinned, err := referenceTime()
		if err != nil {
			return err
		}
		sched.Now = func() time.Time { return pinned }
	}
	if err := sched.Register(spec); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ui.Inf(fmt.Sprintf("Watching on %q. Ctrl-C to stop.", spec))
	sched.RunOnce()
	sched.Run(ctx)
	return nil
}

// printReminders is the terminal Notifier.
func printReminders(now time.Time, reminders []remind.Reminder) {
	if len(reminders) == 0 {
		ui.Ok("Nothing left for today.")
		return
	}
	fmt.Println()
	fmt.Println(ui.Title.Render(fmt.Sprintf("%s%d habit(s) left for %s", ui.IconBell, len(reminders), now.Format("Mon Jan 2"))))
	for _, r := range reminders {
		fmt.Printf("  %s %s\n", ui.Warning.Render(ui.IconTodo), r.Message())
	}
	fmt.Println()
}
