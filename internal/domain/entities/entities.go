package entities

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Common errors
var (
	ErrEventNotFound      = errors.New("event not found")
	ErrMissingDates       = errors.New("event start and end are required")
	ErrEmptyTitle         = errors.New("event title is required")
	ErrDuplicateEvent     = errors.New("an identical event already exists")
	ErrNoDraft            = errors.New("no draft event in progress")
	ErrTempEventImmutable = errors.New("draft events cannot be moved or resized")
	ErrMultiDaySelection  = errors.New("quick-create selections cannot span multiple days")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrItineraryNotFound  = errors.New("itinerary not found")
	ErrInvalidViewKind    = errors.New("invalid calendar view")
	ErrChildEventReadOnly = errors.New("child events are read-only")
)

// RepeatPolicy captures the user's selected recurrence as metadata.
// Occurrences are intentionally never materialized from it.
type RepeatPolicy string

const (
	RepeatNone    RepeatPolicy = "none"
	RepeatDaily   RepeatPolicy = "daily"
	RepeatWeekly  RepeatPolicy = "weekly"
	RepeatMonthly RepeatPolicy = "monthly"
	RepeatYearly  RepeatPolicy = "yearly"
)

func (r RepeatPolicy) IsValid() bool {
	switch r {
	case RepeatNone, RepeatDaily, RepeatWeekly, RepeatMonthly, RepeatYearly, "":
		return true
	default:
		return false
	}
}

// PlaceholderTitle is shown while a quick-create draft is still being composed.
const PlaceholderTitle = "Untitled"

// aiDescriptionMarker is the legacy signal that an event was produced by the
// AI itinerary generator. New records carry the explicit AIOriginated flag;
// the substring check remains only for records that predate it.
const aiDescriptionMarker = "AI"

// Event represents a user-owned calendar activity with a time range.
// Start and End carry local wall-clock semantics and are never converted
// to UTC: a time the user typed renders back unchanged.
type Event struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Start        time.Time    `json:"start"`
	End          time.Time    `json:"end"`
	AllDay       bool         `json:"allDay"`
	Location     string       `json:"location,omitempty"`
	Description  string       `json:"description,omitempty"`
	Cost         string       `json:"cost,omitempty"`
	Weather      string       `json:"weather,omitempty"`
	Repeat       RepeatPolicy `json:"repeat,omitempty"`
	IsTemp       bool         `json:"isTempEvent"`
	AIOriginated bool         `json:"isAIOriginated"`
	User         string       `json:"user,omitempty"`
}

// ChildEvent is a read-only sub-activity generated from an AI itinerary,
// nested under a parent Event. Children are never dragged, resized or
// conflict-checked.
type ChildEvent struct {
	Event
	ParentScheduleID string `json:"parentScheduleId"`
	Type             string `json:"type,omitempty"`
	Icon             string `json:"icon,omitempty"`
	TimeDisplay      string `json:"time_display,omitempty"`
	CostDisplay      string `json:"cost_display,omitempty"`
	Color            string `json:"color,omitempty"`
}

// NewTempID returns the id assigned to an uncommitted quick-create draft.
func NewTempID(now time.Time) string {
	return fmt.Sprintf("temp-%d", now.UnixMilli())
}

// NewOfflineID returns the locally generated id assigned when the backend
// rejects a create but the user's work must be kept.
func NewOfflineID(now time.Time) string {
	return fmt.Sprintf("event-%d", now.UnixMilli())
}

// ChildID derives a child event id from the source activity id.
func ChildID(activityID string) string {
	return "child-" + activityID
}

// IsAIParent reports whether this event owns an AI-generated itinerary.
// The description marker is a compatibility fallback for legacy records.
func (e *Event) IsAIParent() bool {
	if e.AIOriginated {
		return true
	}
	return strings.Contains(e.Description, aiDescriptionMarker)
}

// HasResolvedTimes reports whether both endpoints are set.
func (e *Event) HasResolvedTimes() bool {
	return !e.Start.IsZero() && !e.End.IsZero()
}

// RepairRange enforces the end-after-start invariant: a caller-supplied
// end at or before start is replaced by start + 1 hour.
func (e *Event) RepairRange() {
	if !e.End.After(e.Start) {
		e.End = e.Start.Add(time.Hour)
	}
}

// EnsureMinDuration stretches a sub-hour range to exactly one hour. Used
// by quick-create, where hand-drawn selections have a one hour floor.
func (e *Event) EnsureMinDuration() {
	if e.End.Before(e.Start.Add(time.Hour)) {
		e.End = e.Start.Add(time.Hour)
	}
}

// SpansMultipleDays reports whether start and end fall on different
// calendar days.
func (e *Event) SpansMultipleDays() bool {
	ys, ms, ds := e.Start.Date()
	ye, me, de := e.End.Date()
	return ys != ye || ms != me || ds != de
}

// NormalizeAllDay retags a midnight-to-midnight or multi-day event as
// all-day. Idempotent; applied when an event is first evaluated against a
// view window.
func (e *Event) NormalizeAllDay() {
	if e.AllDay {
		return
	}
	if e.SpansMultipleDays() || (isMidnight(e.Start) && isMidnight(e.End)) {
		e.AllDay = true
	}
}

func isMidnight(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0
}

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// intersect: max(s1,s2) < min(e1,e2).
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}
