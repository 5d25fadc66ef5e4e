package entities_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripcal/core/internal/domain/entities"
)

func localDate(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.Local)
}

func TestWindowFor_Day(t *testing.T) {
	anchor := localDate(2025, time.June, 1, 14, 30)
	w := entities.WindowFor(entities.ViewDay, anchor)

	assert.Equal(t, localDate(2025, time.June, 1, 0, 0), w.Start)
	assert.Equal(t, localDate(2025, time.June, 2, 0, 0).Add(-time.Millisecond), w.End)
}

func TestWindowFor_WeekStartsMonday(t *testing.T) {
	// 2025-06-04 is a Wednesday; its week runs Mon 06-02 .. Sun 06-08.
	anchor := localDate(2025, time.June, 4, 9, 0)
	w := entities.WindowFor(entities.ViewWeek, anchor)

	assert.Equal(t, localDate(2025, time.June, 2, 0, 0), w.Start)
	assert.Equal(t, localDate(2025, time.June, 9, 0, 0).Add(-time.Millisecond), w.End)
}

func TestWindowFor_SundayBelongsToPrecedingMonday(t *testing.T) {
	// 2025-06-08 is a Sunday; 2025-06-02 is the Monday six days earlier.
	sunday := localDate(2025, time.June, 8, 0, 0)
	monday := localDate(2025, time.June, 2, 0, 0)

	wSunday := entities.WindowFor(entities.ViewWeek, sunday)
	wMonday := entities.WindowFor(entities.ViewWeek, monday)

	assert.Equal(t, wMonday.Start, wSunday.Start)
	assert.Equal(t, wMonday.End, wSunday.End)
}

func TestWindowFor_Month(t *testing.T) {
	anchor := localDate(2025, time.February, 14, 12, 0)
	w := entities.WindowFor(entities.ViewMonth, anchor)

	assert.Equal(t, localDate(2025, time.February, 1, 0, 0), w.Start)
	assert.Equal(t, localDate(2025, time.March, 1, 0, 0).Add(-time.Millisecond), w.End)
}

func TestWindowFor_Year(t *testing.T) {
	anchor := localDate(2025, time.August, 31, 23, 0)
	w := entities.WindowFor(entities.ViewYear, anchor)

	assert.Equal(t, localDate(2025, time.January, 1, 0, 0), w.Start)
	assert.Equal(t, localDate(2026, time.January, 1, 0, 0).Add(-time.Millisecond), w.End)
}

func TestTimeWindow_ContainsIsOverlapNotContainment(t *testing.T) {
	w := entities.WindowFor(entities.ViewDay, localDate(2025, time.June, 1, 0, 0))

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		included bool
	}{
		{"fully inside", localDate(2025, time.June, 1, 9, 0), localDate(2025, time.June, 1, 10, 0), true},
		{"spills over the end", localDate(2025, time.June, 1, 23, 0), localDate(2025, time.June, 2, 1, 0), true},
		{"started before the window", localDate(2025, time.May, 31, 22, 0), localDate(2025, time.June, 1, 2, 0), true},
		{"straddles the whole window", localDate(2025, time.May, 30, 0, 0), localDate(2025, time.June, 3, 0, 0), true},
		{"ends exactly at window start", localDate(2025, time.May, 31, 20, 0), w.Start, true},
		{"entirely before", localDate(2025, time.May, 30, 9, 0), localDate(2025, time.May, 30, 10, 0), false},
		{"entirely after", localDate(2025, time.June, 2, 9, 0), localDate(2025, time.June, 2, 10, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := entities.Event{ID: "e1", Start: tt.start, End: tt.end}
			assert.Equal(t, tt.included, w.Contains(&e))
		})
	}
}

func TestParseViewKind(t *testing.T) {
	v, err := entities.ParseViewKind("week")
	require.NoError(t, err)
	assert.Equal(t, entities.ViewWeek, v)

	_, err = entities.ParseViewKind("fortnight")
	assert.ErrorIs(t, err, entities.ErrInvalidViewKind)
}
