package habit

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rnwolfe/habit/internal/calendar"
	"github.com/rnwolfe/habit/internal/streak"
)

// Complete marks habitID done on date. It returns false when the habit was
// already marked done that day. Dates before the habit's start or after
// today (relative to now) are rejected.
func (s *Store) Complete(habitID, date, note string, now time.Time) (bool, error) {
	h, err := s.Get(habitID)
	if err != nil {
		return false, err
	}
	if err := checkCompletionDate(h, date, now); err != nil {
		return false, err
	}

	res, err := s.db.Exec(
		`INSERT INTO completions (id, habit_id, completed_on, note) VALUES (?, ?, ?, ?)
		 ON CONFLICT(habit_id, completed_on) DO NOTHING`,
		uuid.NewString(), h.ID, date, note,
	)
	if err != nil {
		return false, fmt.Errorf("completing habit: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func checkCompletionDate(h *Habit, date string, now time.Time) error {
	d, err := calendar.Parse(date)
	if err != nil {
		return err
	}
	if d.Before(calendar.MustParse(h.StartDate)) {
		return fmt.Errorf("%w: %s is before %s", ErrBeforeStart, date, h.StartDate)
	}
	if d.After(calendar.MustParse(calendar.Today(now))) {
		return fmt.Errorf("%w: %s", ErrFutureDate, date)
	}
	return nil
}

// Uncomplete removes the completion for date. It returns false when there
// was nothing to remove.
func (s *Store) Uncomplete(habitID, date string) (bool, error) {
	if _, err := calendar.Parse(date); err != nil {
		return false, err
	}
	res, err := s.db.Exec(
		`DELETE FROM completions WHERE habit_id = ? AND completed_on = ?`, habitID, date,
	)
	if err != nil {
		return false, fmt.Errorf("removing completion: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Completions returns a habit's completions, most recent first.
func (s *Store) Completions(habitID string) ([]streak.Completion, error) {
	rows, err := s.db.Query(
		`SELECT habit_id, completed_on, COALESCE(note, '') FROM completions WHERE habit_id = ? ORDER BY completed_on DESC`,
		habitID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing completions: %w", err)
	}
	defer rows.Close()

	var out []streak.Completion
	for rows.Next() {
		var c streak.Completion
		if err := rows.Scan(&c.HabitID, &c.CompletedOn, &c.Note); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// AllCompletions returns every completion grouped by habit ID.
func (s *Store) AllCompletions() (map[string][]streak.Completion, error) {
	rows, err := s.db.Query(
		`SELECT habit_id, completed_on, COALESCE(note, '') FROM completions ORDER BY habit_id, completed_on DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing completions: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]streak.Completion)
	for rows.Next() {
		var c streak.Completion
		if err := rows.Scan(&c.HabitID, &c.CompletedOn, &c.Note); err != nil {
			return nil, err
		}
		out[c.HabitID] = append(out[c.HabitID], c)
	}
	return out, rows.Err()
}

// Entry is a habit together with its computed view.
type Entry struct {
	Habit Habit
	Stats streak.Enriched
}

// Enrich loads h's completions and runs the streak engine as of now.
func (s *Store) Enrich(h Habit, now time.Time) (Entry, error) {
	cs, err := s.Completions(h.ID)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Habit: h, Stats: streak.Enrich(h.Schedule(), cs, now)}, nil
}

// EnrichAll lists habits and enriches each one with a single completions query.
func (s *Store) EnrichAll(includeArchived bool, now time.Time) ([]Entry, error) {
	habits, err := s.List(includeArchived)
	if err != nil {
		return nil, err
	}
	all, err := s.AllCompletions()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(habits))
	for _, h := range habits {
		entries = append(entries, Entry{Habit: h, Stats: streak.Enrich(h.Schedule(), all[h.ID], now)})
	}
	return entries, nil
}
