package ports

import (
	"context"
	"time"

	"github.com/tripcal/core/internal/domain/entities"
	"github.com/tripcal/core/internal/domain/itinerary"
)

// CreateEventPayload is the wire payload for creating an event. The
// optional place ids are set when the user picked a structured location
// from autocomplete rather than typing free text.
type CreateEventPayload struct {
	Title          string                `json:"title" validate:"required"`
	Start          time.Time             `json:"start" validate:"required"`
	End            time.Time             `json:"end" validate:"required"`
	AllDay         bool                  `json:"all_day"`
	Location       string                `json:"location,omitempty"`
	Description    string                `json:"description,omitempty"`
	Repeat         entities.RepeatPolicy `json:"repeat,omitempty"`
	HotelID        string                `json:"hotel_id,omitempty"`
	RestaurantID   string                `json:"restaurant_id,omitempty"`
	CheckinPlaceID string                `json:"checkin_place_id,omitempty"`
}

// CreatedEvent is the backend's acknowledgement of a create; the id is
// server-assigned.
type CreatedEvent struct {
	ID string `json:"id"`
}

// TimeUpdate is the partial, time-only update used by drag and resize.
type TimeUpdate struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// EventInfoUpdate is the full-field update used by the edit form.
type EventInfoUpdate struct {
	Title       string    `json:"title" validate:"required"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
}

// EventBackend is the asynchronous persistence collaborator the
// scheduling core reconciles against. Implementations may fail or
// complete out of order; callers treat the backend as the source of
// truth after any successful mutation.
type EventBackend interface {
	CreateEvent(ctx context.Context, payload CreateEventPayload) (*CreatedEvent, error)
	UpdateEvent(ctx context.Context, id string, update TimeUpdate) error
	UpdateEventInfo(ctx context.Context, id string, update EventInfoUpdate) error
	DeleteEvent(ctx context.Context, id string) error
	GetUserEvents(ctx context.Context) ([]entities.Event, error)
	GetItineraryDetail(ctx context.Context, scheduleID string) (*itinerary.Detail, error)
	ShareEvent(ctx context.Context, id, email, message string) error
}
