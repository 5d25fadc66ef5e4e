package entities

import "time"

// ViewKind identifies the active calendar view.
type ViewKind string

const (
	ViewDay   ViewKind = "day"
	ViewWeek  ViewKind = "week"
	ViewMonth ViewKind = "month"
	ViewYear  ViewKind = "year"
)

func (v ViewKind) IsValid() bool {
	switch v {
	case ViewDay, ViewWeek, ViewMonth, ViewYear:
		return true
	default:
		return false
	}
}

// ParseViewKind maps a request parameter to a ViewKind.
func ParseViewKind(s string) (ViewKind, error) {
	v := ViewKind(s)
	if !v.IsValid() {
		return "", ErrInvalidViewKind
	}
	return v, nil
}

// TimeWindow is the concrete interval implied by a view and an anchor
// date. Both bounds are inclusive: End is the last millisecond of the
// window's final day.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// WindowFor computes the window for a view anchored at the given date.
// Weeks start on Monday; a Sunday anchor belongs to the week that began
// the preceding Monday.
func WindowFor(view ViewKind, anchor time.Time) TimeWindow {
	switch view {
	case ViewWeek:
		offset := (int(anchor.Weekday()) + 6) % 7
		start := StartOfDay(anchor).AddDate(0, 0, -offset)
		return TimeWindow{Start: start, End: EndOfDay(start.AddDate(0, 0, 6))}
	case ViewMonth:
		y, m, _ := anchor.Date()
		first := time.Date(y, m, 1, 0, 0, 0, 0, anchor.Location())
		last := first.AddDate(0, 1, -1)
		return TimeWindow{Start: first, End: EndOfDay(last)}
	case ViewYear:
		y := anchor.Year()
		first := time.Date(y, time.January, 1, 0, 0, 0, 0, anchor.Location())
		last := time.Date(y, time.December, 31, 0, 0, 0, 0, anchor.Location())
		return TimeWindow{Start: first, End: EndOfDay(last)}
	default: // ViewDay
		return TimeWindow{Start: StartOfDay(anchor), End: EndOfDay(anchor)}
	}
}

// Contains reports whether an event is visible in the window. Inclusion
// is overlap, not containment: an event is shown as long as any part of
// it touches the window.
func (w TimeWindow) Contains(e *Event) bool {
	return !e.End.Before(w.Start) && !e.Start.After(w.End)
}
