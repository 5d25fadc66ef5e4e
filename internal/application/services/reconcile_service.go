package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/tripcal/core/internal/application/store"
	"github.com/tripcal/core/internal/domain/entities"
	"github.com/tripcal/core/internal/infrastructure/logger"
	"github.com/tripcal/core/internal/ports"
)

// ReconcileService applies drag, resize, edit and delete gestures to
// persisted events.
//
// Unlike create, these updates are pessimistic: the backend is called
// first and the local store only changes after a confirmed response, so
// a failed update never leaves the store diverged from the server. The
// caller is expected to revert the gesture visually on error.
type ReconcileService struct {
	store   *store.Store
	backend ports.EventBackend
	logger  *logger.Logger
}

// NewReconcileService creates a new reconcile service.
func NewReconcileService(st *store.Store, backend ports.EventBackend, logger *logger.Logger) *ReconcileService {
	return &ReconcileService{
		store:   st,
		backend: backend,
		logger:  logger,
	}
}

// isChildID reports whether an id belongs to an AI-generated child
// event. Children live only in the child cache and are read-only.
func isChildID(id string) bool {
	return strings.HasPrefix(id, "child-")
}

// MoveEvent commits a completed drag gesture.
func (s *ReconcileService) MoveEvent(ctx context.Context, req ports.GestureRequest) error {
	return s.applyGesture(ctx, req, "drag")
}

// ResizeEvent commits a completed resize gesture. A zero End on the
// inbound gesture means the end did not change and the stored value is
// kept.
func (s *ReconcileService) ResizeEvent(ctx context.Context, req ports.GestureRequest) error {
	return s.applyGesture(ctx, req, "resize")
}

func (s *ReconcileService) applyGesture(ctx context.Context, req ports.GestureRequest, kind string) error {
	if isChildID(req.EventID) {
		return entities.ErrChildEventReadOnly
	}
	e, ok := s.store.Get(req.EventID)
	if !ok {
		return entities.ErrEventNotFound
	}
	if e.IsTemp {
		// Drafts are not draggable; the grid reverts the gesture.
		return entities.ErrTempEventImmutable
	}

	moved := e
	moved.Start = req.Start
	if !req.End.IsZero() {
		moved.End = req.End
	}
	moved.RepairRange()

	// The previous all-day flag rides along unchanged: this is a
	// time-only update.
	if err := s.backend.UpdateEvent(ctx, e.ID, ports.TimeUpdate{Start: moved.Start, End: moved.End}); err != nil {
		s.logger.Error("Event update failed", "event_id", e.ID, "kind", kind, "error", err)
		return fmt.Errorf("%s event %s: %w", kind, e.ID, err)
	}

	s.store.SetTimes(e.ID, moved.Start, moved.End)
	s.logger.Info("Event rescheduled", "event_id", e.ID, "kind", kind, "start", moved.Start, "end", moved.End)
	return nil
}

// DeleteEvent removes an event. A draft is removed locally without a
// backend call; anything persisted is deleted on the backend first and
// stays in the store if that fails.
func (s *ReconcileService) DeleteEvent(ctx context.Context, id string) error {
	if isChildID(id) {
		return entities.ErrChildEventReadOnly
	}
	e, ok := s.store.Get(id)
	if !ok {
		return entities.ErrEventNotFound
	}
	if e.IsTemp {
		s.store.Remove(id)
		return nil
	}

	if err := s.backend.DeleteEvent(ctx, id); err != nil {
		s.logger.Error("Event delete failed", "event_id", id, "error", err)
		return fmt.Errorf("delete event %s: %w", id, err)
	}

	s.store.Remove(id)
	s.logger.Info("Event deleted", "event_id", id)
	return nil
}

// UpdateEventInfo applies the edit form's full-field update. Like the
// gesture path it is backend-first; the store entry changes only after a
// confirmed response.
func (s *ReconcileService) UpdateEventInfo(ctx context.Context, id string, req ports.UpdateEventInfoRequest) (*entities.Event, error) {
	e, ok := s.store.Get(id)
	if !ok {
		return nil, entities.ErrEventNotFound
	}

	title := req.Title
	if title == "" {
		return nil, entities.ErrEmptyTitle
	}
	if req.Start.IsZero() || req.End.IsZero() {
		return nil, entities.ErrMissingDates
	}

	updated := e
	updated.Title = title
	updated.Start = req.Start
	updated.End = req.End
	updated.Description = req.Description
	updated.Location = req.Location
	updated.RepairRange()

	err := s.backend.UpdateEventInfo(ctx, id, ports.EventInfoUpdate{
		Title:       updated.Title,
		StartDate:   updated.Start,
		EndDate:     updated.End,
		Description: updated.Description,
		Location:    updated.Location,
	})
	if err != nil {
		s.logger.Error("Event info update failed", "event_id", id, "error", err)
		return nil, fmt.Errorf("update event %s: %w", id, err)
	}

	s.store.Upsert(updated)
	s.logger.Info("Event updated", "event_id", id, "title", updated.Title)
	return &updated, nil
}

// Refresh replaces the local event set with the backend's authoritative
// list. A fetch failure keeps the previous state visible. An in-progress
// draft survives the swap.
func (s *ReconcileService) Refresh(ctx context.Context) error {
	events, err := s.backend.GetUserEvents(ctx)
	if err != nil {
		s.logger.Warn("Event refresh failed, keeping previous state", "error", err)
		return fmt.Errorf("refresh events: %w", err)
	}

	draft, hasDraft := s.store.Temp()
	s.store.ReplaceAll(events)
	if hasDraft {
		s.store.Upsert(draft)
	}

	s.logger.Info("Event set refreshed", "count", len(events))
	return nil
}
