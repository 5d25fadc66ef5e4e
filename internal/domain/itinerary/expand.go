// Package itinerary converts AI itinerary payloads, grouped by calendar
// date, into normalized dated child events.
package itinerary

import (
	"sort"
	"strings"
	"time"

	"github.com/tripcal/core/internal/domain/entities"
)

// ChildEventColor is the single display color shared by every child
// event; children are rendered identically regardless of content.
const ChildEventColor = "#5c6bc0"

// timeRangeSeparator splits a "HH:MM - HH:MM" display string.
const timeRangeSeparator = " - "

// Activity is one raw sub-activity from the itinerary generator.
type Activity struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Icon        string `json:"icon,omitempty"`
	TimeDisplay string `json:"time_display,omitempty"`
	StartTime   string `json:"start_time,omitempty"`
	EndTime     string `json:"end_time,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	CostDisplay string `json:"cost_display,omitempty"`
	Weather     string `json:"weather,omitempty"`
}

// Detail is the itinerary generator's response for one parent schedule:
// ISO date string -> activities on that day.
type Detail struct {
	EventsByDate map[string][]Activity `json:"events_by_date"`
}

// Expand produces one child event per activity, anchored to the
// activity's own calendar date rather than to the current day. Days are
// emitted in date order; activities keep their input order within a day.
// Activities whose date cannot be parsed are skipped.
func Expand(scheduleID string, detail *Detail) []entities.ChildEvent {
	if detail == nil || len(detail.EventsByDate) == 0 {
		return nil
	}

	dates := make([]string, 0, len(detail.EventsByDate))
	for d := range detail.EventsByDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	var children []entities.ChildEvent
	for _, dateStr := range dates {
		day, err := entities.ParseLocalDate(dateStr)
		if err != nil {
			continue
		}
		for _, act := range detail.EventsByDate[dateStr] {
			start, end := resolveTimes(day, act)
			children = append(children, entities.ChildEvent{
				Event: entities.Event{
					ID:          entities.ChildID(act.ID),
					Title:       act.Name,
					Start:       start,
					End:         end,
					AllDay:      false,
					Location:    act.Location,
					Description: act.Description,
					Weather:     act.Weather,
				},
				ParentScheduleID: scheduleID,
				Type:             act.Type,
				Icon:             act.Icon,
				TimeDisplay:      act.TimeDisplay,
				CostDisplay:      act.CostDisplay,
				Color:            ChildEventColor,
			})
		}
	}
	return children
}

// resolveTimes picks the activity's time range in order of preference:
// the human time_display string, then explicit start_time/end_time
// fields, then the bare date.
func resolveTimes(day time.Time, act Activity) (time.Time, time.Time) {
	if act.TimeDisplay != "" {
		if start, end, ok := parseTimeDisplay(day, act.TimeDisplay); ok {
			return start, end
		}
	}
	if act.StartTime != "" {
		if start, err := entities.ParseLocalDateTime(act.StartTime); err == nil {
			end := start.Add(time.Hour)
			if act.EndTime != "" {
				if e, err := entities.ParseLocalDateTime(act.EndTime); err == nil {
					end = e
				}
			}
			return start, end
		}
	}
	return day, entities.EndOfDay(day)
}

// parseTimeDisplay handles both "HH:MM" and "HH:MM - HH:MM" forms. A
// single time is treated as the start with a one hour duration.
func parseTimeDisplay(day time.Time, display string) (time.Time, time.Time, bool) {
	if before, after, found := strings.Cut(display, timeRangeSeparator); found {
		startClock, err1 := entities.ParseClock(strings.TrimSpace(before))
		endClock, err2 := entities.ParseClock(strings.TrimSpace(after))
		if err1 != nil || err2 != nil {
			return time.Time{}, time.Time{}, false
		}
		return entities.Combine(day, startClock), entities.Combine(day, endClock), true
	}

	clock, err := entities.ParseClock(strings.TrimSpace(display))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	start := entities.Combine(day, clock)
	return start, start.Add(time.Hour), true
}
