// Package frequency encodes which weekdays a habit is due as a 7-bit mask.
//
// Two day-of-week conventions live side by side and must not be mixed up:
//
//	weekday    bit  mask value  DayOfWeekIndex
//	Monday      0        1            1
//	Tuesday     1        2            2
//	Wednesday   2        4            3
//	Thursday    3        8            4
//	Friday      4       16            5
//	Saturday    5       32            6
//	Sunday      6       64            7
//
// Mask values (powers of two) are what presets, validation and storage use.
// DayOfWeekIndex is a 1-based ordinal used only to select a bit via
// 1 << (index-1). Note that time.Weekday is Sunday=0 and matches neither.
package frequency

import (
	"fmt"
	"strings"
	"time"

	"github.com/rnwolfe/habit/internal/calendar"
)

// Mask is a set of weekdays, one bit per day starting at Monday.
type Mask uint8

const (
	Monday    Mask = 1
	Tuesday   Mask = 2
	Wednesday Mask = 4
	Thursday  Mask = 8
	Friday    Mask = 16
	Saturday  Mask = 32
	Sunday    Mask = 64
)

// Presets.
const (
	Daily    Mask = 127
	Weekdays Mask = Monday | Tuesday | Wednesday | Thursday | Friday
	Weekends Mask = Saturday | Sunday
)

// MaxMask is the largest valid mask.
const MaxMask = Daily

// dayNames is ordered by DayOfWeekIndex-1.
var dayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// DayOfWeekIndex returns Monday=1 … Sunday=7 for t's UTC weekday.
func DayOfWeekIndex(t time.Time) int {
	wd := int(t.UTC().Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// IsDayIncluded reports whether the weekday with the given DayOfWeekIndex is
// set in mask.
func IsDayIncluded(mask Mask, dayIndex int) bool {
	if dayIndex < 1 || dayIndex > 7 {
		return false
	}
	return mask&(1<<(dayIndex-1)) != 0
}

// IsDueOnDate reports whether a habit starting on start with the given mask is
// due on date. Dates before start are never due.
func IsDueOnDate(start time.Time, mask Mask, date time.Time) bool {
	if date.Before(start) {
		return false
	}
	return IsDayIncluded(mask, DayOfWeekIndex(date))
}

// IsDueOn is IsDueOnDate on YYYY-MM-DD strings.
func IsDueOn(startDate string, mask Mask, date string) bool {
	return IsDueOnDate(calendar.MustParse(startDate), mask, calendar.MustParse(date))
}

// Has reports whether the weekday wd is set.
func (m Mask) Has(wd time.Weekday) bool {
	idx := int(wd)
	if idx == 0 {
		idx = 7
	}
	return IsDayIncluded(m, idx)
}

// Days returns the weekdays set in m, Monday first.
func (m Mask) Days() []time.Weekday {
	var days []time.Weekday
	for i := 1; i <= 7; i++ {
		if IsDayIncluded(m, i) {
			days = append(days, time.Weekday(i%7))
		}
	}
	return days
}

// DaysPerWeek returns how many weekdays are set.
func (m Mask) DaysPerWeek() int {
	return len(m.Days())
}

// Valid reports whether m selects at least one day and no bits beyond Sunday.
func (m Mask) Valid() bool {
	return m > 0 && m <= MaxMask
}

// String renders presets by name and other masks as "Mon,Wed,Fri".
func (m Mask) String() string {
	switch m {
	case Daily:
		return "daily"
	case Weekdays:
		return "weekdays"
	case Weekends:
		return "weekends"
	case 0:
		return "never"
	}
	var parts []string
	for i := 1; i <= 7; i++ {
		if IsDayIncluded(m, i) {
			parts = append(parts, dayNames[i-1])
		}
	}
	return strings.Join(parts, ",")
}

// ParseMask accepts a preset name (daily, weekdays, weekends) or a comma
// separated list of day names such as "mon,wed,fri". Full names are accepted.
func ParseMask(s string) (Mask, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "daily", "everyday", "every day":
		return Daily, nil
	case "weekdays":
		return Weekdays, nil
	case "weekends":
		return Weekends, nil
	case "":
		return 0, fmt.Errorf("empty frequency")
	}

	var m Mask
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		bit, ok := lookupDay(part)
		if !ok {
			return 0, fmt.Errorf("unknown day %q (use mon,tue,wed,thu,fri,sat,sun or daily/weekdays/weekends)", part)
		}
		m |= bit
	}
	if m == 0 {
		return 0, fmt.Errorf("frequency %q selects no days", s)
	}
	return m, nil
}

func lookupDay(s string) (Mask, bool) {
	if len(s) < 2 {
		return 0, false
	}
	for i, name := range dayNames {
		short := strings.ToLower(name)
		full := strings.ToLower(time.Weekday((i + 1) % 7).String())
		if s == short || strings.HasPrefix(full, s) {
			return 1 << i, true
		}
	}
	return 0, false
}
