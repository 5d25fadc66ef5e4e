package services_test

import (
	"context"
	"time"

	"github.com/tripcal/core/internal/domain/entities"
	"github.com/tripcal/core/internal/domain/itinerary"
	"github.com/tripcal/core/internal/ports"
)

// mockBackend implements ports.EventBackend with overridable functions.
// Set only the method fields your test needs; unset methods succeed with
// zero values.
type mockBackend struct {
	createEventFn        func(ctx context.Context, payload ports.CreateEventPayload) (*ports.CreatedEvent, error)
	updateEventFn        func(ctx context.Context, id string, update ports.TimeUpdate) error
	updateEventInfoFn    func(ctx context.Context, id string, update ports.EventInfoUpdate) error
	deleteEventFn        func(ctx context.Context, id string) error
	getUserEventsFn      func(ctx context.Context) ([]entities.Event, error)
	getItineraryDetailFn func(ctx context.Context, scheduleID string) (*itinerary.Detail, error)
	shareEventFn         func(ctx context.Context, id, email, message string) error
}

var _ ports.EventBackend = (*mockBackend)(nil)

func (m *mockBackend) CreateEvent(ctx context.Context, payload ports.CreateEventPayload) (*ports.CreatedEvent, error) {
	if m.createEventFn != nil {
		return m.createEventFn(ctx, payload)
	}
	return &ports.CreatedEvent{ID: "generated"}, nil
}

func (m *mockBackend) UpdateEvent(ctx context.Context, id string, update ports.TimeUpdate) error {
	if m.updateEventFn != nil {
		return m.updateEventFn(ctx, id, update)
	}
	return nil
}

func (m *mockBackend) UpdateEventInfo(ctx context.Context, id string, update ports.EventInfoUpdate) error {
	if m.updateEventInfoFn != nil {
		return m.updateEventInfoFn(ctx, id, update)
	}
	return nil
}

func (m *mockBackend) DeleteEvent(ctx context.Context, id string) error {
	if m.deleteEventFn != nil {
		return m.deleteEventFn(ctx, id)
	}
	return nil
}

func (m *mockBackend) GetUserEvents(ctx context.Context) ([]entities.Event, error) {
	if m.getUserEventsFn != nil {
		return m.getUserEventsFn(ctx)
	}
	return nil, nil
}

func (m *mockBackend) GetItineraryDetail(ctx context.Context, scheduleID string) (*itinerary.Detail, error) {
	if m.getItineraryDetailFn != nil {
		return m.getItineraryDetailFn(ctx, scheduleID)
	}
	return &itinerary.Detail{}, nil
}

func (m *mockBackend) ShareEvent(ctx context.Context, id, email, message string) error {
	if m.shareEventFn != nil {
		return m.shareEventFn(ctx, id, email, message)
	}
	return nil
}

func localTime(hh, mm int) time.Time {
	return time.Date(2025, time.June, 1, hh, mm, 0, 0, time.Local)
}
