package store_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripcal/core/internal/application/store"
	"github.com/tripcal/core/internal/domain/entities"
)

func at(hh, mm int) time.Time {
	return time.Date(2025, time.June, 1, hh, mm, 0, 0, time.Local)
}

func timed(id string, startHH, endHH int) entities.Event {
	return entities.Event{ID: id, Title: id, Start: at(startHH, 0), End: at(endHH, 0)}
}

func TestStore_UpsertGetRemove(t *testing.T) {
	s := store.New()
	s.Upsert(timed("e1", 9, 10))

	got, ok := s.Get("e1")
	require.True(t, ok)
	assert.Equal(t, "e1", got.ID)

	assert.True(t, s.Remove("e1"))
	assert.False(t, s.Remove("e1"))
	_, ok = s.Get("e1")
	assert.False(t, ok)
}

func TestStore_AtMostOneDraft(t *testing.T) {
	s := store.New()

	first := timed("temp-1", 9, 10)
	first.IsTemp = true
	s.PurgeTemp()
	s.Upsert(first)

	second := timed("temp-2", 11, 12)
	second.IsTemp = true
	s.PurgeTemp()
	s.Upsert(second)

	draft, ok := s.Temp()
	require.True(t, ok)
	assert.Equal(t, "temp-2", draft.ID)

	_, gone := s.Get("temp-1")
	assert.False(t, gone)
}

func TestStore_ReplaceAllKeepsChildCache(t *testing.T) {
	s := store.New()
	s.Upsert(timed("stale", 9, 10))
	s.PutChildren("42", []entities.ChildEvent{{Event: entities.Event{ID: "child-7"}}})

	s.ReplaceAll([]entities.Event{timed("fresh", 11, 12)})

	_, ok := s.Get("stale")
	assert.False(t, ok)
	_, ok = s.Get("fresh")
	assert.True(t, ok)

	children, ok := s.Children("42")
	require.True(t, ok)
	assert.Len(t, children, 1)
}

func TestStore_SetTimesIsIdempotent(t *testing.T) {
	s := store.New()
	s.Upsert(timed("e1", 9, 10))

	require.True(t, s.SetTimes("e1", at(14, 0), at(15, 0)))
	require.True(t, s.SetTimes("e1", at(14, 0), at(15, 0)))

	got, _ := s.Get("e1")
	assert.Equal(t, at(14, 0), got.Start)
	assert.Equal(t, at(15, 0), got.End)

	assert.False(t, s.SetTimes("missing", at(14, 0), at(15, 0)))
}

func TestStore_EventsSortedByStartThenID(t *testing.T) {
	s := store.New()
	s.Upsert(timed("b", 9, 10))
	s.Upsert(timed("a", 9, 10))
	s.Upsert(timed("c", 8, 9))

	events := s.Events()
	require.Len(t, events, 3)
	assert.Equal(t, "c", events[0].ID)
	assert.Equal(t, "a", events[1].ID)
	assert.Equal(t, "b", events[2].ID)
}

func TestStore_InWindowRetagsMidnightSpans(t *testing.T) {
	s := store.New()
	fullDay := entities.Event{
		ID:    "e1",
		Start: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.Local),
		End:   time.Date(2025, time.June, 2, 0, 0, 0, 0, time.Local),
	}
	s.Upsert(fullDay)

	w := entities.WindowFor(entities.ViewDay, at(12, 0))
	visible := s.InWindow(w)
	require.Len(t, visible, 1)
	assert.True(t, visible[0].AllDay)

	// The retag sticks and never duplicates the event.
	visible = s.InWindow(w)
	require.Len(t, visible, 1)
	assert.True(t, visible[0].AllDay)
}

func TestStore_HasConflict(t *testing.T) {
	s := store.New()
	s.Upsert(timed("e1", 9, 11))

	assert.True(t, s.HasConflict(at(10, 0), at(12, 0), ""))

	// Touching ranges do not conflict.
	assert.False(t, s.HasConflict(at(11, 0), at(12, 0), ""))

	// The event being moved never conflicts with itself.
	assert.False(t, s.HasConflict(at(10, 0), at(12, 0), "e1"))

	draft := timed("temp-1", 9, 11)
	draft.IsTemp = true
	s.Upsert(draft)
	assert.False(t, s.HasConflict(at(9, 30), at(10, 30), "e1"))

	unresolved := entities.Event{ID: "e2", Title: "no times yet"}
	s.Upsert(unresolved)
	assert.False(t, s.HasConflict(at(0, 0), at(23, 0), "e1"))
}

func TestStore_FindDuplicate(t *testing.T) {
	s := store.New()
	s.Upsert(timed("e1", 9, 10))

	dup, ok := s.FindDuplicate("e1", at(9, 0), at(10, 0))
	require.True(t, ok)
	assert.Equal(t, "e1", dup.ID)

	_, ok = s.FindDuplicate("e1", at(9, 0), at(11, 0))
	assert.False(t, ok)

	draft := timed("temp-1", 9, 10)
	draft.IsTemp = true
	draft.Title = "e1"
	s.Upsert(draft)
	_, ok = s.FindDuplicate("e1", at(9, 0), at(11, 0))
	assert.False(t, ok)
}

func TestStore_ChildFetchDedup(t *testing.T) {
	s := store.New()

	require.True(t, s.BeginChildFetch("42"))
	assert.True(t, s.IsLoading("42"))

	// A second trigger while the fetch is in flight is collapsed.
	assert.False(t, s.BeginChildFetch("42"))

	s.PutChildren("42", []entities.ChildEvent{{Event: entities.Event{ID: "child-7"}}})
	assert.False(t, s.IsLoading("42"))
	assert.True(t, s.HasChildren("42"))

	// Cached schedules are never refetched.
	assert.False(t, s.BeginChildFetch("42"))
}

func TestStore_AbortChildFetchAllowsRetry(t *testing.T) {
	s := store.New()

	require.True(t, s.BeginChildFetch("42"))
	s.AbortChildFetch("42")

	assert.False(t, s.IsLoading("42"))
	assert.False(t, s.HasChildren("42"))
	assert.True(t, s.BeginChildFetch("42"))
}

func TestStore_AllChildrenSortedAcrossSchedules(t *testing.T) {
	s := store.New()
	s.PutChildren("a", []entities.ChildEvent{
		{Event: entities.Event{ID: "child-2", Start: at(14, 0)}},
	})
	s.PutChildren("b", []entities.ChildEvent{
		{Event: entities.Event{ID: "child-1", Start: at(9, 0)}},
	})

	all := s.AllChildren()
	require.Len(t, all, 2)
	assert.Equal(t, "child-1", all[0].ID)
	assert.Equal(t, "child-2", all[1].ID)
}
