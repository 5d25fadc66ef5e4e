package itinerary_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripcal/core/internal/domain/entities"
	"github.com/tripcal/core/internal/domain/itinerary"
)

func localDate(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.Local)
}

func TestExpand_TimeRangeDisplay(t *testing.T) {
	detail := &itinerary.Detail{EventsByDate: map[string][]itinerary.Activity{
		"2025-06-01": {
			{ID: "7", Name: "Louvre", TimeDisplay: "08:00 - 16:00"},
		},
	}}

	children := itinerary.Expand("42", detail)
	require.Len(t, children, 1)

	c := children[0]
	assert.Equal(t, "child-7", c.ID)
	assert.Equal(t, "42", c.ParentScheduleID)
	assert.Equal(t, localDate(2025, time.June, 1, 8, 0), c.Start)
	assert.Equal(t, localDate(2025, time.June, 1, 16, 0), c.End)
	assert.False(t, c.AllDay)
	assert.Equal(t, itinerary.ChildEventColor, c.Color)
	assert.Equal(t, "08:00 - 16:00", c.TimeDisplay)
}

func TestExpand_SingleTimeGetsOneHour(t *testing.T) {
	detail := &itinerary.Detail{EventsByDate: map[string][]itinerary.Activity{
		"2025-06-02": {
			{ID: "8", Name: "Lunch", TimeDisplay: "12:30"},
		},
	}}

	children := itinerary.Expand("42", detail)
	require.Len(t, children, 1)
	assert.Equal(t, localDate(2025, time.June, 2, 12, 30), children[0].Start)
	assert.Equal(t, localDate(2025, time.June, 2, 13, 30), children[0].End)
}

func TestExpand_FallsBackToStartEndFields(t *testing.T) {
	detail := &itinerary.Detail{EventsByDate: map[string][]itinerary.Activity{
		"2025-06-03": {
			{ID: "9", Name: "Museum", StartTime: "2025-06-03T10:00:00", EndTime: "2025-06-03T11:30:00"},
		},
	}}

	children := itinerary.Expand("42", detail)
	require.Len(t, children, 1)
	assert.Equal(t, localDate(2025, time.June, 3, 10, 0), children[0].Start)
	assert.Equal(t, localDate(2025, time.June, 3, 11, 30), children[0].End)
}

func TestExpand_FallsBackToBareDate(t *testing.T) {
	detail := &itinerary.Detail{EventsByDate: map[string][]itinerary.Activity{
		"2025-06-04": {
			{ID: "10", Name: "Free day"},
		},
	}}

	children := itinerary.Expand("42", detail)
	require.Len(t, children, 1)
	assert.Equal(t, localDate(2025, time.June, 4, 0, 0), children[0].Start)
	assert.Equal(t, entities.EndOfDay(localDate(2025, time.June, 4, 0, 0)), children[0].End)
	assert.False(t, children[0].AllDay)
}

func TestExpand_DaysEmittedInDateOrder(t *testing.T) {
	detail := &itinerary.Detail{EventsByDate: map[string][]itinerary.Activity{
		"2025-06-05": {{ID: "b", Name: "Later", TimeDisplay: "09:00"}},
		"2025-06-01": {{ID: "a", Name: "Earlier", TimeDisplay: "09:00"}},
	}}

	children := itinerary.Expand("42", detail)
	require.Len(t, children, 2)
	assert.Equal(t, "child-a", children[0].ID)
	assert.Equal(t, "child-b", children[1].ID)
}

func TestExpand_SkipsUnparseableDates(t *testing.T) {
	detail := &itinerary.Detail{EventsByDate: map[string][]itinerary.Activity{
		"not-a-date": {{ID: "x", Name: "Ghost"}},
		"2025-06-01": {{ID: "y", Name: "Real", TimeDisplay: "10:00"}},
	}}

	children := itinerary.Expand("42", detail)
	require.Len(t, children, 1)
	assert.Equal(t, "child-y", children[0].ID)
}

func TestExpand_EmptyDetail(t *testing.T) {
	assert.Nil(t, itinerary.Expand("42", nil))
	assert.Nil(t, itinerary.Expand("42", &itinerary.Detail{}))
}
