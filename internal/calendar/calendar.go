// Package calendar holds the date-only arithmetic used by the streak engine.
//
// Every date is a "YYYY-MM-DD" string anchored to midnight UTC, so comparisons
// never depend on the caller's local timezone.
package calendar

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Layout is the canonical date format.
const Layout = "2006-01-02"

// ErrInvalidDate is returned when a string is not a YYYY-MM-DD date.
var ErrInvalidDate = errors.New("invalid date")

// Format returns the YYYY-MM-DD form of t's UTC date.
func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Parse parses a YYYY-MM-DD string into midnight UTC.
func Parse(s string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: expected YYYY-MM-DD", ErrInvalidDate, s)
	}
	return t, nil
}

// MustParse is like Parse but panics on malformed input. The engine uses it
// because dates reach it only after the store has validated them.
func MustParse(s string) time.Time {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Valid reports whether s is a well-formed date.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Today returns now's date string.
func Today(now time.Time) string {
	return Format(now)
}

// IsToday reports whether s is the same date as now.
func IsToday(s string, now time.Time) bool {
	return s == Format(now)
}

// IsYesterday reports whether s is the day before now.
func IsYesterday(s string, now time.Time) bool {
	return s == Format(AddDays(now, -1))
}

// AddDays shifts t by n calendar days. n may be negative.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// ShiftDate is AddDays on date strings.
func ShiftDate(s string, n int) string {
	return Format(AddDays(MustParse(s), n))
}

// DaysDifference returns the absolute number of days between a and b,
// rounded up so that a partial day counts as a whole one. Existing streak
// results depend on the ceiling.
func DaysDifference(a, b string) int {
	d := MustParse(a).Sub(MustParse(b))
	if d < 0 {
		d = -d
	}
	return int(math.Ceil(d.Hours() / 24))
}

// LocalDay converts a wall-clock instant into midnight UTC of the same
// calendar day in t's own location. Callers use it at the edge so that "today"
// means the user's local date rather than the UTC date.
func LocalDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
