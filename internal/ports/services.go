package ports

import (
	"context"
	"time"

	"github.com/tripcal/core/internal/domain/entities"
)

// ScheduleService owns the quick-create draft lifecycle and the read
// projections the grid renders from.
type ScheduleService interface {
	BeginDraft(ctx context.Context, sel RangeSelection) (*DraftResult, error)
	DiscardDraft() error
	CommitDraft(ctx context.Context, req CommitDraftRequest) (*CommitResult, error)
	EventsInWindow(view entities.ViewKind, anchor time.Time) (entities.TimeWindow, []entities.Event)
	GetEvent(id string) (*entities.Event, error)
	ShareEvent(ctx context.Context, req ShareRequest) error
}

// ReconcileService applies gesture-driven mutations to persisted events.
type ReconcileService interface {
	MoveEvent(ctx context.Context, req GestureRequest) error
	ResizeEvent(ctx context.Context, req GestureRequest) error
	DeleteEvent(ctx context.Context, id string) error
	UpdateEventInfo(ctx context.Context, id string, req UpdateEventInfoRequest) (*entities.Event, error)
	Refresh(ctx context.Context) error
}

// ItineraryService loads and caches AI-generated child events.
type ItineraryService interface {
	EnsureChildEvents(ctx context.Context, scheduleID string) ([]entities.ChildEvent, error)
	ChildEvents(scheduleID string) ([]entities.ChildEvent, bool)
}

// SearchService filters events by title and navigates matches cyclically.
type SearchService interface {
	Search(query string) *SearchResult
	Next() (*SearchHit, bool)
	Prev() (*SearchHit, bool)
}

// RangeSelection is a grid range-select gesture.
type RangeSelection struct {
	Start time.Time `json:"start" validate:"required"`
	End   time.Time `json:"end" validate:"required"`
}

// DraftResult reports the optimistic draft insert. Clamped is set when a
// multi-day selection was cut down to one hour because multi-day
// quick-create is not supported.
type DraftResult struct {
	Event   entities.Event `json:"event"`
	Clamped bool           `json:"clamped"`
}

// CommitDraftRequest carries the composed fields for a draft commit.
type CommitDraftRequest struct {
	Title          string                `json:"title" validate:"required"`
	Location       string                `json:"location,omitempty"`
	Description    string                `json:"description,omitempty"`
	Repeat         entities.RepeatPolicy `json:"repeat,omitempty"`
	HotelID        string                `json:"hotel_id,omitempty"`
	RestaurantID   string                `json:"restaurant_id,omitempty"`
	CheckinPlaceID string                `json:"checkin_place_id,omitempty"`
}

// CommitStatus distinguishes a confirmed create from the degraded
// offline fallback.
type CommitStatus string

const (
	CommitCreated      CommitStatus = "created"
	CommitSavedLocally CommitStatus = "saved_locally"
)

// CommitResult reports the committed event, whether it was persisted by
// the backend or kept locally, and an advisory conflict warning that
// never blocks the save.
type CommitResult struct {
	Event    entities.Event `json:"event"`
	Status   CommitStatus   `json:"status"`
	Conflict bool           `json:"conflict"`
}

// GestureRequest carries the endpoint of a completed drag or resize.
// For resize, a zero End means the gesture did not change the end and
// the stored value is kept.
type GestureRequest struct {
	EventID string    `json:"event_id" validate:"required"`
	Start   time.Time `json:"start" validate:"required"`
	End     time.Time `json:"end"`
}

// UpdateEventInfoRequest is the full-field edit-form update.
type UpdateEventInfoRequest struct {
	Title       string    `json:"title" validate:"required"`
	Start       time.Time `json:"start" validate:"required"`
	End         time.Time `json:"end" validate:"required"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
}

// ShareRequest shares an event with another user by email.
type ShareRequest struct {
	EventID string `json:"event_id" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Message string `json:"message,omitempty"`
}

// SearchResult is the ordered match set for the current query.
type SearchResult struct {
	Query    string   `json:"query"`
	MatchIDs []string `json:"match_ids"`
	Cursor   int      `json:"cursor"`
}

// SearchHit is one navigable match: the event to scroll the view to.
type SearchHit struct {
	EventID string    `json:"event_id"`
	Start   time.Time `json:"start"`
}

// MessageResponse is a generic acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the error body shape returned by the HTTP surface.
type ErrorResponse struct {
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
