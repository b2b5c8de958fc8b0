// Package habit persists habits and their completions in SQLite and hands
// them to the streak engine.
package habit

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rnwolfe/habit/internal/calendar"
	"github.com/rnwolfe/habit/internal/frequency"
	"github.com/rnwolfe/habit/internal/streak"
)

var (
	ErrNotFound         = errors.New("habit not found")
	ErrAmbiguous        = errors.New("habit reference is ambiguous")
	ErrInvalidTitle     = errors.New("invalid habit title")
	ErrInvalidFrequency = errors.New("invalid frequency")
	ErrDuplicateTitle   = errors.New("a habit with that title already exists")
	ErrBeforeStart      = errors.New("date is before the habit's start date")
	ErrFutureDate       = errors.New("date is in the future")
)

// Title length bounds, counted in runes after trimming.
const (
	MinTitleLen = 2
	MaxTitleLen = 100
)

// MinIDPrefix is the shortest ID prefix Resolve will match.
const MinIDPrefix = 4

// Habit is a stored habit.
type Habit struct {
	ID          string
	Title       string
	Description string
	Frequency   frequency.Mask
	StartDate   string // YYYY-MM-DD
	Archived    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Schedule returns the engine's view of h.
func (h Habit) Schedule() streak.Schedule {
	return streak.Schedule{StartDate: h.StartDate, FrequencyMask: h.Frequency}
}

// ShortID is the first eight characters of the ID, enough to reference a
// habit on the command line.
func (h Habit) ShortID() string {
	if len(h.ID) > 8 {
		return h.ID[:8]
	}
	return h.ID
}

// ValidateTitle checks that a trimmed title is 2-100 characters.
func ValidateTitle(title string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(title))
	if n < MinTitleLen || n > MaxTitleLen {
		return fmt.Errorf("%w: must be %d-%d characters, got %d", ErrInvalidTitle, MinTitleLen, MaxTitleLen, n)
	}
	return nil
}

// ValidateFrequency checks that mask selects at least one weekday and
// nothing beyond Sunday.
func ValidateFrequency(mask int) error {
	if mask < 0 || mask > int(frequency.MaxMask) || !frequency.Mask(mask).Valid() {
		return fmt.Errorf("%w: mask %d must be in 1-%d", ErrInvalidFrequency, mask, frequency.MaxMask)
	}
	return nil
}

// Store handles habit persistence.
type Store struct {
	db *sql.DB
}

// NewStore creates a new habit store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Add validates and inserts a new habit.
func (s *Store) Add(title, description string, mask frequency.Mask, startDate string) (*Habit, error) {
	title = strings.TrimSpace(title)
	if err := ValidateTitle(title); err != nil {
		return nil, err
	}
	if err := ValidateFrequency(int(mask)); err != nil {
		return nil, err
	}
	if _, err := calendar.Parse(startDate); err != nil {
		return nil, fmt.Errorf("start date: %w", err)
	}

	h := &Habit{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(description),
		Frequency:   mask,
		StartDate:   startDate,
	}
	_, err := s.db.Exec(
		`INSERT INTO habits (id, title, description, frequency, start_date) VALUES (?, ?, ?, ?, ?)`,
		h.ID, h.Title, h.Description, int(h.Frequency), h.StartDate,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTitle, title)
		}
		return nil, fmt.Errorf("adding habit: %w", err)
	}
	return s.Get(h.ID)
}

const habitColumns = `id, title, description, frequency, start_date, archived, created_at, updated_at`

// Get returns a habit by exact ID.
func (s *Store) Get(id string) (*Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE id = ?`, id)
	h, err := scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting habit %s: %w", id, err)
	}
	return h, nil
}

// Resolve finds a habit by ID, unique ID prefix, or case-insensitive title.
func (s *Store) Resolve(ref string) (*Habit, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%w: empty reference", ErrNotFound)
	}

	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE title = ? COLLATE NOCASE`, ref)
	if h, err := scanHabit(row); err == nil {
		return h, nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("resolving %q: %w", ref, err)
	}

	prefix := stripLikeWildcards(ref)
	if len(prefix) < MinIDPrefix {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, ref)
	}
	rows, err := s.db.Query(`SELECT `+habitColumns+` FROM habits WHERE id LIKE ? ORDER BY id LIMIT 2`, prefix+"%")
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", ref, err)
	}
	defer rows.Close()
	habits, err := scanHabits(rows)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", ref, err)
	}
	switch len(habits) {
	case 0:
		return nil, fmt.Errorf("%w: %q", ErrNotFound, ref)
	case 1:
		return &habits[0], nil
	default:
		return nil, fmt.Errorf("%w: %q matches more than one habit id", ErrAmbiguous, ref)
	}
}

// List returns habits ordered by title. Archived habits are included only
// when includeArchived is set.
func (s *Store) List(includeArchived bool) ([]Habit, error) {
	q := `SELECT ` + habitColumns + ` FROM habits`
	if !includeArchived {
		q += ` WHERE archived = 0`
	}
	q += ` ORDER BY title COLLATE NOCASE ASC`

	rows, err := s.db.Query(q)
	if err != nil {
		return nil, fmt.Errorf("listing habits: %w", err)
	}
	defer rows.Close()
	return scanHabits(rows)
}

// Update changes a habit's title and/or frequency. Nil fields are left alone.
func (s *Store) Update(id string, title *string, mask *frequency.Mask) (*Habit, error) {
	h, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if title != nil {
		t := strings.TrimSpace(*title)
		if err := ValidateTitle(t); err != nil {
			return nil, err
		}
		h.Title = t
	}
	if mask != nil {
		if err := ValidateFrequency(int(*mask)); err != nil {
			return nil, err
		}
		h.Frequency = *mask
	}

	_, err = s.db.Exec(
		`UPDATE habits SET title = ?, frequency = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		h.Title, int(h.Frequency), h.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTitle, h.Title)
		}
		return nil, fmt.Errorf("updating habit: %w", err)
	}
	return s.Get(id)
}

// Archive hides a habit from List without deleting its history.
func (s *Store) Archive(id string) error {
	return s.setArchived(id, true)
}

// Unarchive restores an archived habit.
func (s *Store) Unarchive(id string) error {
	return s.setArchived(id, false)
}

func (s *Store) setArchived(id string, archived bool) error {
	v := 0
	if archived {
		v = 1
	}
	res, err := s.db.Exec(
		`UPDATE habits SET archived = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, v, id,
	)
	if err != nil {
		return fmt.Errorf("archiving habit: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Delete removes a habit and, via cascade, its completions.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting habit: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func scanHabit(row *sql.Row) (*Habit, error) {
	var h Habit
	var freq, archived int
	var desc sql.NullString
	var createdStr, updatedStr string
	if err := row.Scan(&h.ID, &h.Title, &desc, &freq, &h.StartDate, &archived, &createdStr, &updatedStr); err != nil {
		return nil, err
	}
	fillHabit(&h, freq, archived, desc, createdStr, updatedStr)
	return &h, nil
}

func scanHabits(rows *sql.Rows) ([]Habit, error) {
	var habits []Habit
	for rows.Next() {
		var h Habit
		var freq, archived int
		var desc sql.NullString
		var createdStr, updatedStr string
		if err := rows.Scan(&h.ID, &h.Title, &desc, &freq, &h.StartDate, &archived, &createdStr, &updatedStr); err != nil {
			return nil, err
		}
		fillHabit(&h, freq, archived, desc, createdStr, updatedStr)
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func fillHabit(h *Habit, freq, archived int, desc sql.NullString, createdStr, updatedStr string) {
	h.Frequency = frequency.Mask(freq)
	h.Archived = archived == 1
	h.Description = desc.String
	h.CreatedAt = parseTimestamp(createdStr)
	h.UpdatedAt = parseTimestamp(updatedStr)
}

// parseTimestamp accepts both SQLite's CURRENT_TIMESTAMP text and the RFC 3339
// form the modernc driver returns for DATETIME columns.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func stripLikeWildcards(s string) string {
	r := strings.NewReplacer(`%`, ``, `_`, ``)
	return r.Replace(s)
}
