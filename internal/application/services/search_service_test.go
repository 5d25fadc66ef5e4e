package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripcal/core/internal/application/services"
	"github.com/tripcal/core/internal/application/store"
	"github.com/tripcal/core/internal/domain/entities"
)

func newSearchService() (*services.SearchService, *store.Store) {
	st := store.New()
	st.Upsert(entities.Event{ID: "e1", Title: "Paris trip", Start: localTime(9, 0), End: localTime(10, 0)})
	st.Upsert(entities.Event{ID: "e2", Title: "Dinner in paris", Start: localTime(19, 0), End: localTime(20, 0)})
	st.Upsert(entities.Event{ID: "e3", Title: "Dentist", Start: localTime(11, 0), End: localTime(12, 0)})
	return services.NewSearchService(st), st
}

func TestSearch_CaseInsensitiveSubstring(t *testing.T) {
	svc, _ := newSearchService()

	res := svc.Search("PARIS")
	assert.Equal(t, "PARIS", res.Query)
	// Matches keep the store's start-time ordering.
	assert.Equal(t, []string{"e1", "e2"}, res.MatchIDs)
	assert.Equal(t, 0, res.Cursor)
}

func TestSearch_EmptyQueryClears(t *testing.T) {
	svc, _ := newSearchService()

	svc.Search("paris")
	res := svc.Search("   ")

	assert.NotNil(t, res.MatchIDs)
	assert.Empty(t, res.MatchIDs)

	_, ok := svc.Next()
	assert.False(t, ok)
}

func TestSearch_NoMatches(t *testing.T) {
	svc, _ := newSearchService()

	res := svc.Search("tokyo")
	assert.Empty(t, res.MatchIDs)

	_, ok := svc.Next()
	assert.False(t, ok)
	_, ok = svc.Prev()
	assert.False(t, ok)
}

func TestNext_CyclesThroughMatches(t *testing.T) {
	svc, _ := newSearchService()
	svc.Search("paris")

	hit, ok := svc.Next()
	require.True(t, ok)
	assert.Equal(t, "e1", hit.EventID)
	assert.Equal(t, localTime(9, 0), hit.Start)

	hit, ok = svc.Next()
	require.True(t, ok)
	assert.Equal(t, "e2", hit.EventID)

	// Wraps back to the first match.
	hit, ok = svc.Next()
	require.True(t, ok)
	assert.Equal(t, "e1", hit.EventID)
}

func TestPrev_WrapsToLastMatch(t *testing.T) {
	svc, _ := newSearchService()
	svc.Search("paris")

	hit, ok := svc.Prev()
	require.True(t, ok)
	assert.Equal(t, "e2", hit.EventID)

	hit, ok = svc.Prev()
	require.True(t, ok)
	assert.Equal(t, "e1", hit.EventID)
}

func TestNext_VanishedEventIsNoOp(t *testing.T) {
	svc, st := newSearchService()
	svc.Search("paris")

	st.Remove("e1")

	_, ok := svc.Next()
	assert.False(t, ok)

	// The cursor still advanced, so the surviving match comes next.
	hit, ok := svc.Next()
	require.True(t, ok)
	assert.Equal(t, "e2", hit.EventID)
}

func TestSearch_NewQueryResetsCursor(t *testing.T) {
	svc, _ := newSearchService()

	svc.Search("paris")
	_, _ = svc.Next()

	svc.Search("dentist")
	hit, ok := svc.Next()
	require.True(t, ok)
	assert.Equal(t, "e3", hit.EventID)
}
