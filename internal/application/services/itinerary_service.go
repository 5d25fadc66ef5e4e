package services

import (
	"context"
	"fmt"

	"github.com/tripcal/core/internal/application/store"
	"github.com/tripcal/core/internal/domain/entities"
	"github.com/tripcal/core/internal/domain/itinerary"
	"github.com/tripcal/core/internal/infrastructure/logger"
	"github.com/tripcal/core/internal/ports"
)

// ItineraryService lazily loads AI-generated child events, once per
// parent schedule. Concurrent triggers for the same schedule collapse
// into a single fetch via the store's in-flight flag.
type ItineraryService struct {
	store   *store.Store
	backend ports.EventBackend
	logger  *logger.Logger
}

// NewItineraryService creates a new itinerary service.
func NewItineraryService(st *store.Store, backend ports.EventBackend, logger *logger.Logger) *ItineraryService {
	return &ItineraryService{
		store:   st,
		backend: backend,
		logger:  logger,
	}
}

// EnsureChildEvents returns the child events for a schedule, fetching
// and expanding them on first use. A failed fetch leaves the cache entry
// absent so a later trigger retries; the store is never corrupted by a
// failure.
func (s *ItineraryService) EnsureChildEvents(ctx context.Context, scheduleID string) ([]entities.ChildEvent, error) {
	if children, ok := s.store.Children(scheduleID); ok {
		return children, nil
	}

	if !s.store.BeginChildFetch(scheduleID) {
		// Another trigger is already fetching; report whatever has
		// landed so far rather than issuing a duplicate request.
		children, _ := s.store.Children(scheduleID)
		return children, nil
	}

	detail, err := s.backend.GetItineraryDetail(ctx, scheduleID)
	if err != nil {
		s.store.AbortChildFetch(scheduleID)
		s.logger.Warn("Itinerary fetch failed", "schedule_id", scheduleID, "error", err)
		return nil, fmt.Errorf("fetch itinerary %s: %w", scheduleID, err)
	}

	children := itinerary.Expand(scheduleID, detail)
	s.store.PutChildren(scheduleID, children)

	s.logger.Info("Child events loaded", "schedule_id", scheduleID, "count", len(children))
	return children, nil
}

// ChildEvents returns the cached child events for a schedule without
// triggering a fetch.
func (s *ItineraryService) ChildEvents(scheduleID string) ([]entities.ChildEvent, bool) {
	return s.store.Children(scheduleID)
}
