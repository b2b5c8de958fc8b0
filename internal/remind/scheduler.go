package remind

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/rnwolfe/habit/internal/calendar"
	"github.com/rnwolfe/habit/internal/config"
	"github.com/rnwolfe/habit/internal/habit"
	"github.com/rnwolfe/habit/internal/store"
	"github.com/robfig/cron/v3"
)

// LastRunKey is the kv key holding the date of the last reminder check.
const LastRunKey = "remind.last_run"

// Source loads the state a reminder check needs.
type Source interface {
	Reminders(now time.Time) ([]Reminder, error)
	SetKV(key, value string) error
}

// Notifier delivers reminders.
type Notifier func(now time.Time, reminders []Reminder)

// Scheduler runs reminder checks on a cron schedule.
type Scheduler struct {
	Cron   *cron.Cron
	Source Source
	Notify Notifier
	// Now is the clock; tests replace it.
	Now func() time.Time
}

// NewScheduler creates a Scheduler using six-field (seconds) cron specs.
func NewScheduler(src Source, notify Notifier) *Scheduler {
	return &Scheduler{
		Cron:   cron.New(cron.WithParser(config.CronParser)),
		Source: src,
		Notify: notify,
		Now:    time.Now,
	}
}

// Register adds the reminder check at spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, func() { s.RunOnce() }); err != nil {
		return fmt.Errorf("register reminder check %q: %w", spec, err)
	}
	return nil
}

// RunOnce performs a single check immediately.
func (s *Scheduler) RunOnce() {
	now := calendar.LocalDay(s.Now())
	reminders, err := s.Source.Reminders(now)
	if err != nil {
		log.Printf("[ERROR] reminder check: %v", err)
		return
	}
	log.Printf("[INFO] reminder check: %d habit(s) pending", len(reminders))
	if len(reminders) > 0 && s.Notify != nil {
		s.Notify(now, reminders)
	}
	if err := s.Source.SetKV(LastRunKey, calendar.Format(now)); err != nil {
		log.Printf("[ERROR] recording reminder run: %v", err)
	}
}

// Run starts the scheduler and blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	s.Cron.Start()
	log.Println("[INFO] reminder scheduler started")
	<-ctx.Done()
	stopped := s.Cron.Stop()
	<-stopped.Done()
	log.Println("[INFO] reminder scheduler stopped")
}

// StoreSource reads reminders from the habit database.
type StoreSource struct {
	DB *store.DB
}

// Reminders enriches every active habit as of now and keeps the pending ones.
func (s StoreSource) Reminders(now time.Time) ([]Reminder, error) {
	entries, err := habit.NewStore(s.DB.Conn()).EnrichAll(false, now)
	if err != nil {
		return nil, err
	}
	return Due(entries), nil
}

// SetKV records state in the database's kv table.
func (s StoreSource) SetKV(key, value string) error {
	return s.DB.SetKV(key, value)
}
