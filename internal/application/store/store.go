// Package store holds the canonical in-memory event set: the
// deduplicated collection of owned events plus the cache of AI child
// events keyed by parent schedule id. Every view reads a freshly
// filtered projection; no other component keeps its own copy.
package store

import (
	"sort"
	"sync"
	"time"

	"github.com/tripcal/core/internal/domain/entities"
)

// Store is safe for concurrent use. Mutation entry points take the lock
// for their synchronous portion only; backend round trips happen outside
// it, so overlapping completions land as idempotent absolute writes.
type Store struct {
	mu       sync.Mutex
	events   map[string]entities.Event
	children map[string][]entities.ChildEvent
	loading  map[string]bool
}

func New() *Store {
	return &Store{
		events:   make(map[string]entities.Event),
		children: make(map[string][]entities.ChildEvent),
		loading:  make(map[string]bool),
	}
}

// Upsert inserts an event, replacing any existing event with the same id.
func (s *Store) Upsert(e entities.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[e.ID] = e
}

// Get returns the event with the given id.
func (s *Store) Get(id string) (entities.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	return e, ok
}

// Remove deletes the event with the given id, reporting whether it was
// present.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return false
	}
	delete(s.events, id)
	return true
}

// ReplaceAll swaps the entire owned event set for the authoritative list
// fetched from the backend. The child cache is untouched.
func (s *Store) ReplaceAll(events []entities.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = make(map[string]entities.Event, len(events))
	for _, e := range events {
		s.events[e.ID] = e
	}
}

// SetTimes updates an event's time range in place. Applying the same
// range twice is harmless, which is what makes stale update responses
// safe to let through.
func (s *Store) SetTimes(id string, start, end time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return false
	}
	e.Start = start
	e.End = end
	s.events[id] = e
	return true
}

// Temp returns the current draft event, if any.
func (s *Store) Temp() (entities.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.events {
		if e.IsTemp {
			return e, true
		}
	}
	return entities.Event{}, false
}

// PurgeTemp removes every draft event. Called before a new draft is
// inserted so at most one draft ever exists.
func (s *Store) PurgeTemp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.events {
		if e.IsTemp {
			delete(s.events, id)
		}
	}
}

// Events returns all owned events ordered by start time, then id.
func (s *Store) Events() []entities.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedLocked()
}

// InWindow returns the events visible in the window. As a normalization
// side effect, midnight-to-midnight events encountered here are retagged
// all-day; the retag is idempotent and never duplicates the event.
func (s *Store) InWindow(w entities.TimeWindow) []entities.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, e := range s.events {
		e.NormalizeAllDay()
		s.events[id] = e
	}

	var visible []entities.Event
	for _, e := range s.sortedLocked() {
		e := e
		if w.Contains(&e) {
			visible = append(visible, e)
		}
	}
	return visible
}

// HasConflict reports whether [start,end) strictly overlaps any stored
// event other than excludeID. Draft events, events without resolved
// times, and child events are never counted. Advisory only: callers may
// warn and still commit.
func (s *Store) HasConflict(start, end time.Time, excludeID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.events {
		if id == excludeID || e.IsTemp || !e.HasResolvedTimes() {
			continue
		}
		if entities.Overlaps(start, end, e.Start, e.End) {
			return true
		}
	}
	return false
}

// FindDuplicate looks for a committed event with identical title, start
// and end. Used as the guard against double quick-creates.
func (s *Store) FindDuplicate(title string, start, end time.Time) (entities.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.events {
		if e.IsTemp {
			continue
		}
		if e.Title == title && e.Start.Equal(start) && e.End.Equal(end) {
			return e, true
		}
	}
	return entities.Event{}, false
}

// PutChildren caches the expanded child events for a schedule and clears
// its loading flag.
func (s *Store) PutChildren(scheduleID string, children []entities.ChildEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.children[scheduleID] = children
	delete(s.loading, scheduleID)
}

// Children returns the cached child events for a schedule.
func (s *Store) Children(scheduleID string) ([]entities.ChildEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.children[scheduleID]
	return c, ok
}

// AllChildren returns the union of every loaded child group, ordered by
// start time.
func (s *Store) AllChildren() []entities.ChildEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []entities.ChildEvent
	for _, group := range s.children {
		all = append(all, group...)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].Start.Equal(all[j].Start) {
			return all[i].Start.Before(all[j].Start)
		}
		return all[i].ID < all[j].ID
	})
	return all
}

// HasChildren reports whether a schedule's children are already cached.
func (s *Store) HasChildren(scheduleID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.children[scheduleID]
	return ok
}

// IsLoading reports whether a child fetch is in flight for the schedule.
func (s *Store) IsLoading(scheduleID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading[scheduleID]
}

// BeginChildFetch marks a schedule's fetch as in flight. It returns
// false when the schedule is already cached or already being fetched, so
// concurrent triggers collapse into one request.
func (s *Store) BeginChildFetch(scheduleID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, cached := s.children[scheduleID]; cached {
		return false
	}
	if s.loading[scheduleID] {
		return false
	}
	s.loading[scheduleID] = true
	return true
}

// AbortChildFetch clears the loading flag without caching anything, so a
// later trigger can retry after a failed fetch.
func (s *Store) AbortChildFetch(scheduleID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.loading, scheduleID)
}

func (s *Store) sortedLocked() []entities.Event {
	events := make([]entities.Event, 0, len(s.events))
	for _, e := range s.events {
		events = append(events, e)
	}
	sort.Slice(events, func(i, j int) bool {
		if !events[i].Start.Equal(events[j].Start) {
			return events[i].Start.Before(events[j].Start)
		}
		return events[i].ID < events[j].ID
	})
	return events
}
