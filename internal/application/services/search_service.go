package services

import (
	"strings"
	"sync"

	"github.com/tripcal/core/internal/application/store"
	"github.com/tripcal/core/internal/ports"
)

// SearchService filters the event set by title substring and walks the
// matches cyclically. Matches keep the store's start-time ordering.
type SearchService struct {
	mu      sync.Mutex
	store   *store.Store
	query   string
	matches []string
	cursor  int
}

// NewSearchService creates a new search service.
func NewSearchService(st *store.Store) *SearchService {
	return &SearchService{store: st}
}

// Search recomputes the match set for a query. Matching is
// case-insensitive substring against titles only; an empty query clears
// the matches and resets the cursor without error.
func (s *SearchService) Search(query string) *ports.SearchResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.query = query
	s.matches = nil
	s.cursor = 0

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return &ports.SearchResult{Query: query, MatchIDs: []string{}, Cursor: 0}
	}

	for _, e := range s.store.Events() {
		if strings.Contains(strings.ToLower(e.Title), q) {
			s.matches = append(s.matches, e.ID)
		}
	}

	ids := make([]string, len(s.matches))
	copy(ids, s.matches)
	return &ports.SearchResult{Query: query, MatchIDs: ids, Cursor: s.cursor}
}

// Next returns the match under the cursor and advances it, wrapping at
// the end of the match set.
func (s *SearchService) Next() (*ports.SearchHit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.matches) == 0 {
		return nil, false
	}
	hit, ok := s.hitAt(s.cursor)
	s.cursor = (s.cursor + 1) % len(s.matches)
	return hit, ok
}

// Prev steps the cursor back, wrapping at the start, and returns the
// match it lands on.
func (s *SearchService) Prev() (*ports.SearchHit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.matches) == 0 {
		return nil, false
	}
	s.cursor = (s.cursor - 1 + len(s.matches)) % len(s.matches)
	return s.hitAt(s.cursor)
}

// hitAt resolves a match to a navigable hit. A match whose event has
// vanished or has no resolved start makes the navigation a no-op.
func (s *SearchService) hitAt(i int) (*ports.SearchHit, bool) {
	e, ok := s.store.Get(s.matches[i])
	if !ok || e.Start.IsZero() {
		return nil, false
	}
	return &ports.SearchHit{EventID: e.ID, Start: e.Start}, true
}
