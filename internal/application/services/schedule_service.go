package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/tripcal/core/internal/application/store"
	"github.com/tripcal/core/internal/domain/entities"
	"github.com/tripcal/core/internal/infrastructure/logger"
	"github.com/tripcal/core/internal/ports"
)

// ScheduleService orchestrates the quick-create draft lifecycle and the
// windowed read projections.
//
// Create is optimistic: the draft is inserted into the store before the
// backend confirms, and a successful create is followed by a full
// authoritative refetch rather than a local patch. A failed create keeps
// the user's work as a locally-identified event instead of dropping it.
type ScheduleService struct {
	store   *store.Store
	backend ports.EventBackend
	logger  *logger.Logger
	now     func() time.Time
}

// NewScheduleService creates a new schedule service.
func NewScheduleService(st *store.Store, backend ports.EventBackend, logger *logger.Logger) *ScheduleService {
	return &ScheduleService{
		store:   st,
		backend: backend,
		logger:  logger,
		now:     time.Now,
	}
}

// BeginDraft starts a quick-create from a grid range selection. Any
// previous draft is purged first, so the store never holds more than one.
// Multi-day selections are clamped to a single hour and reported via
// Clamped; sub-hour selections are stretched to the one hour minimum.
func (s *ScheduleService) BeginDraft(ctx context.Context, sel ports.RangeSelection) (*ports.DraftResult, error) {
	if sel.Start.IsZero() || sel.End.IsZero() {
		return nil, entities.ErrMissingDates
	}

	draft := entities.Event{
		ID:     entities.NewTempID(s.now()),
		Title:  entities.PlaceholderTitle,
		Start:  sel.Start,
		End:    sel.End,
		IsTemp: true,
	}

	clamped := false
	if draft.SpansMultipleDays() {
		draft.End = draft.Start.Add(time.Hour)
		clamped = true
	}
	draft.EnsureMinDuration()

	s.store.PurgeTemp()
	s.store.Upsert(draft)

	s.logger.Info("Draft event started", "event_id", draft.ID, "start", draft.Start, "clamped", clamped)

	return &ports.DraftResult{Event: draft, Clamped: clamped}, nil
}

// DiscardDraft removes the current draft without any backend call.
func (s *ScheduleService) DiscardDraft() error {
	draft, ok := s.store.Temp()
	if !ok {
		return entities.ErrNoDraft
	}
	s.store.Remove(draft.ID)
	s.logger.Info("Draft event discarded", "event_id", draft.ID)
	return nil
}

// CommitDraft persists the current draft. An empty title rejects the
// commit before any backend call; an identical committed event discards
// the draft and reports a duplicate. On backend success the whole local
// set is replaced by an authoritative refetch. On backend failure the
// draft survives as an offline event with a locally generated id and the
// result reports degraded success, never an error.
func (s *ScheduleService) CommitDraft(ctx context.Context, req ports.CommitDraftRequest) (*ports.CommitResult, error) {
	draft, ok := s.store.Temp()
	if !ok {
		return nil, entities.ErrNoDraft
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, entities.ErrEmptyTitle
	}

	if _, found := s.store.FindDuplicate(title, draft.Start, draft.End); found {
		s.store.Remove(draft.ID)
		s.logger.Warn("Duplicate event commit aborted", "title", title, "start", draft.Start)
		return nil, entities.ErrDuplicateEvent
	}

	// Advisory only; a conflicting save is still allowed.
	conflict := s.store.HasConflict(draft.Start, draft.End, draft.ID)

	committed := draft
	committed.Title = title
	committed.Location = req.Location
	committed.Description = req.Description
	committed.Repeat = req.Repeat
	committed.IsTemp = false

	created, err := s.backend.CreateEvent(ctx, ports.CreateEventPayload{
		Title:          title,
		Start:          draft.Start,
		End:            draft.End,
		AllDay:         draft.AllDay,
		Location:       req.Location,
		Description:    req.Description,
		Repeat:         req.Repeat,
		HotelID:        req.HotelID,
		RestaurantID:   req.RestaurantID,
		CheckinPlaceID: req.CheckinPlaceID,
	})
	if err != nil || created == nil || created.ID == "" {
		// The user's input must not be lost: keep it locally under a
		// generated id and report degraded success.
		committed.ID = entities.NewOfflineID(s.now())
		s.store.Remove(draft.ID)
		s.store.Upsert(committed)
		s.logger.Warn("Create failed, keeping event locally", "event_id", committed.ID, "error", err)
		return &ports.CommitResult{Event: committed, Status: ports.CommitSavedLocally, Conflict: conflict}, nil
	}

	committed.ID = created.ID

	events, err := s.backend.GetUserEvents(ctx)
	if err != nil {
		// Refetch failed after a confirmed create: fall back to patching
		// in the persisted event so the previous state stays visible.
		s.store.Remove(draft.ID)
		s.store.Upsert(committed)
		s.logger.Warn("Authoritative refetch failed after create", "event_id", committed.ID, "error", err)
		return &ports.CommitResult{Event: committed, Status: ports.CommitCreated, Conflict: conflict}, nil
	}

	s.store.ReplaceAll(events)
	if stored, ok := s.store.Get(committed.ID); ok {
		committed = stored
	}

	s.logger.Info("Event created", "event_id", committed.ID, "title", committed.Title, "conflict", conflict)

	return &ports.CommitResult{Event: committed, Status: ports.CommitCreated, Conflict: conflict}, nil
}

// EventsInWindow computes the window for a view and anchor and returns
// the visible events.
func (s *ScheduleService) EventsInWindow(view entities.ViewKind, anchor time.Time) (entities.TimeWindow, []entities.Event) {
	w := entities.WindowFor(view, anchor)
	return w, s.store.InWindow(w)
}

// GetEvent looks up a single event.
func (s *ScheduleService) GetEvent(id string) (*entities.Event, error) {
	e, ok := s.store.Get(id)
	if !ok {
		return nil, entities.ErrEventNotFound
	}
	return &e, nil
}

// ShareEvent shares an event with another user by email. The address is
// validated before any backend call.
func (s *ScheduleService) ShareEvent(ctx context.Context, req ports.ShareRequest) error {
	if _, ok := s.store.Get(req.EventID); !ok {
		return entities.ErrEventNotFound
	}
	if err := ValidateShareEmail(req.Email); err != nil {
		return err
	}
	if err := s.backend.ShareEvent(ctx, req.EventID, req.Email, req.Message); err != nil {
		return fmt.Errorf("share event: %w", err)
	}
	s.logger.Info("Event shared", "event_id", req.EventID, "email", req.Email)
	return nil
}

// shareEmailPattern is the RFC-like local@domain.tld shape the share
// endpoint accepts.
var shareEmailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// ValidateShareEmail checks the share recipient address: local@domain.tld,
// at most 254 characters, with no ".." or "--" runs.
func ValidateShareEmail(email string) error {
	if len(email) == 0 || len(email) > 254 {
		return entities.ErrInvalidEmail
	}
	if strings.Contains(email, "..") || strings.Contains(email, "--") {
		return entities.ErrInvalidEmail
	}
	if !shareEmailPattern.MatchString(email) {
		return entities.ErrInvalidEmail
	}
	return nil
}
