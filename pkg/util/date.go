package util

import (
	"time"
)

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// CivilDate truncates t to its calendar date in t's location.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole calendar days from 'from' to 'to',
// comparing dates only. Negative when 'to' is before 'from'.
func DaysBetween(from, to time.Time) int {
	a := CivilDate(from)
	b := CivilDate(to)
	return int(b.Sub(a) / (24 * time.Hour))
}
