package utils

import (
	"strings"
	"time"
)

// DateLayout is the backend's appt_date format once the time part is dropped.
const DateLayout = "2006-01-02"

// NormalizeDate drops any time component from a backend date, so
// "2024-05-01T00:00:00.000Z" and "2024-05-01" compare equal.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "T "); i >= 0 {
		return s[:i]
	}
	return s
}

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// ParseDate parses a normalized date in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, NormalizeDate(s), loc)
}

// IsPastDate reports whether date falls before the day containing now.
// Unparseable dates count as past.
func IsPastDate(date string, now time.Time) bool {
	d, err := ParseDate(date, now.Location())
	if err != nil {
		return true
	}
	return d.Before(BeginningOfDay(now))
}

// FormatDate renders a backend date for tables, falling back to the raw value.
func FormatDate(s string) string {
	d, err := time.Parse(DateLayout, NormalizeDate(s))
	if err != nil {
		return s
	}
	return d.Format("Jan 2, 2006")
}
