package entities

import (
	"fmt"
	"time"
)

// Wall-clock helpers. Every timestamp in the scheduling core is a local
// wall-clock value: composed from an explicit (date, hour, minute) rather
// than format strings, and never shifted through UTC.

const (
	localDateLayout     = "2006-01-02"
	localDateTimeLayout = "2006-01-02T15:04:05"
)

// Clock is a time of day without a date.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses an "HH:MM" string.
func ParseClock(s string) (Clock, error) {
	var c Clock
	if _, err := fmt.Sscanf(s, "%d:%d", &c.Hour, &c.Minute); err != nil {
		return Clock{}, fmt.Errorf("parse clock %q: %w", s, err)
	}
	if c.Hour < 0 || c.Hour > 23 || c.Minute < 0 || c.Minute > 59 {
		return Clock{}, fmt.Errorf("parse clock %q: out of range", s)
	}
	return c, nil
}

// Combine anchors a clock time to the calendar day of date.
func Combine(date time.Time, c Clock) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, c.Hour, c.Minute, 0, 0, date.Location())
}

// StartOfDay returns midnight on t's calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable millisecond of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Millisecond)
}

// ParseLocalDate parses a "YYYY-MM-DD" string as local midnight.
func ParseLocalDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(localDateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// ParseLocalDateTime parses a "YYYY-MM-DDTHH:MM:SS" string in local time.
// A bare date is accepted and resolves to local midnight.
func ParseLocalDateTime(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(localDateTimeLayout, s, time.Local); err == nil {
		return t, nil
	}
	return ParseLocalDate(s)
}

// FormatLocalDateTime renders t for the backend wire format, without a
// timezone designator.
func FormatLocalDateTime(t time.Time) string {
	return t.Format(localDateTimeLayout)
}
