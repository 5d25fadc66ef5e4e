package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripcal/core/internal/application/services"
	"github.com/tripcal/core/internal/application/store"
	"github.com/tripcal/core/internal/domain/itinerary"
	"github.com/tripcal/core/internal/infrastructure/logger"
	"github.com/tripcal/core/internal/ports"
)

func newItineraryService(backend ports.EventBackend) (*services.ItineraryService, *store.Store) {
	st := store.New()
	return services.NewItineraryService(st, backend, logger.NewNop()), st
}

func parisDetail() *itinerary.Detail {
	return &itinerary.Detail{EventsByDate: map[string][]itinerary.Activity{
		"2025-06-01": {
			{ID: "7", Name: "Louvre", TimeDisplay: "08:00 - 16:00"},
			{ID: "8", Name: "Dinner", TimeDisplay: "19:00"},
		},
	}}
}

func TestEnsureChildEvents_FetchesAndCaches(t *testing.T) {
	fetches := 0
	svc, st := newItineraryService(&mockBackend{
		getItineraryDetailFn: func(ctx context.Context, scheduleID string) (*itinerary.Detail, error) {
			fetches++
			return parisDetail(), nil
		},
	})

	children, err := svc.EnsureChildEvents(context.Background(), "42")
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, "child-7", children[0].ID)
	assert.Equal(t, "42", children[0].ParentScheduleID)

	// Subsequent calls hit the cache.
	again, err := svc.EnsureChildEvents(context.Background(), "42")
	require.NoError(t, err)
	assert.Len(t, again, 2)
	assert.Equal(t, 1, fetches)
	assert.True(t, st.HasChildren("42"))
}

func TestEnsureChildEvents_FailureLeavesCacheAbsentForRetry(t *testing.T) {
	fetches := 0
	fail := true
	svc, st := newItineraryService(&mockBackend{
		getItineraryDetailFn: func(ctx context.Context, scheduleID string) (*itinerary.Detail, error) {
			fetches++
			if fail {
				return nil, errors.New("backend down")
			}
			return parisDetail(), nil
		},
	})

	_, err := svc.EnsureChildEvents(context.Background(), "42")
	require.Error(t, err)
	assert.False(t, st.HasChildren("42"))
	assert.False(t, st.IsLoading("42"))

	// A later trigger retries and succeeds.
	fail = false
	children, err := svc.EnsureChildEvents(context.Background(), "42")
	require.NoError(t, err)
	assert.Len(t, children, 2)
	assert.Equal(t, 2, fetches)
}

func TestEnsureChildEvents_InFlightFetchNotDuplicated(t *testing.T) {
	fetches := 0
	svc, st := newItineraryService(&mockBackend{
		getItineraryDetailFn: func(ctx context.Context, scheduleID string) (*itinerary.Detail, error) {
			fetches++
			return parisDetail(), nil
		},
	})

	// Simulate another trigger's fetch already in flight.
	require.True(t, st.BeginChildFetch("42"))

	children, err := svc.EnsureChildEvents(context.Background(), "42")
	require.NoError(t, err)
	assert.Nil(t, children)
	assert.Equal(t, 0, fetches)
}

func TestChildEvents_ReadsCacheOnly(t *testing.T) {
	fetches := 0
	svc, st := newItineraryService(&mockBackend{
		getItineraryDetailFn: func(ctx context.Context, scheduleID string) (*itinerary.Detail, error) {
			fetches++
			return parisDetail(), nil
		},
	})

	_, ok := svc.ChildEvents("42")
	assert.False(t, ok)
	assert.Equal(t, 0, fetches)

	_, err := svc.EnsureChildEvents(context.Background(), "42")
	require.NoError(t, err)

	children, ok := svc.ChildEvents("42")
	require.True(t, ok)
	assert.Len(t, children, 2)
	assert.True(t, st.HasChildren("42"))
}
