package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tripcal/core/internal/domain/entities"
	"github.com/tripcal/core/internal/infrastructure/logger"
	"github.com/tripcal/core/internal/ports"
)

// EventHandler exposes the scheduling core to the grid UI. Dates cross
// this surface as timezone-less local strings and are parsed here, so
// the core only ever sees wall-clock values.
type EventHandler struct {
	schedule  ports.ScheduleService
	reconcile ports.ReconcileService
	itinerary ports.ItineraryService
	search    ports.SearchService
	logger    *logger.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(schedule ports.ScheduleService, reconcile ports.ReconcileService, itinerary ports.ItineraryService, search ports.SearchService, logger *logger.Logger) *EventHandler {
	return &EventHandler{
		schedule:  schedule,
		reconcile: reconcile,
		itinerary: itinerary,
		search:    search,
		logger:    logger,
	}
}

type draftRequest struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}

type commitRequest struct {
	Title          string `json:"title" validate:"required"`
	Location       string `json:"location"`
	Description    string `json:"description"`
	Repeat         string `json:"repeat"`
	HotelID        string `json:"hotel_id"`
	RestaurantID   string `json:"restaurant_id"`
	CheckinPlaceID string `json:"checkin_place_id"`
}

type gestureRequest struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end"`
}

type updateInfoRequest struct {
	Title       string `json:"title" validate:"required"`
	StartDate   string `json:"start_date" validate:"required"`
	EndDate     string `json:"end_date" validate:"required"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

type shareRequest struct {
	Email   string `json:"email" validate:"required"`
	Message string `json:"message"`
}

// ListEvents returns the events visible in the window implied by the
// view and anchor query parameters.
func (h *EventHandler) ListEvents(c echo.Context) error {
	view := entities.ViewKind(c.QueryParam("view"))
	if view == "" {
		view = entities.ViewMonth
	}
	if !view.IsValid() {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid view")
	}

	anchor := time.Now()
	if raw := c.QueryParam("anchor"); raw != "" {
		parsed, err := entities.ParseLocalDateTime(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid anchor date")
		}
		anchor = parsed
	}

	window, events := h.schedule.EventsInWindow(view, anchor)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"window": window,
		"events": events,
	})
}

// GetEvent returns one event. For an AI-originated parent the cached or
// freshly expanded child events ride along.
func (h *EventHandler) GetEvent(c echo.Context) error {
	event, err := h.schedule.GetEvent(c.Param("id"))
	if err != nil {
		return h.mapError(err)
	}

	response := map[string]interface{}{"event": event}
	if event.IsAIParent() {
		children, err := h.itinerary.EnsureChildEvents(c.Request().Context(), event.ID)
		if err != nil {
			// Degrade to the event alone; a later click retries the fetch.
			h.logger.Warn("Child events unavailable", "event_id", event.ID, "error", err)
		} else {
			response["child_events"] = children
		}
	}
	return c.JSON(http.StatusOK, response)
}

// BeginDraft starts a quick-create from a range selection.
func (h *EventHandler) BeginDraft(c echo.Context) error {
	var req draftRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start, err := entities.ParseLocalDateTime(req.Start)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid start date")
	}
	end, err := entities.ParseLocalDateTime(req.End)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid end date")
	}

	result, err := h.schedule.BeginDraft(c.Request().Context(), ports.RangeSelection{Start: start, End: end})
	if err != nil {
		return h.mapError(err)
	}
	return c.JSON(http.StatusCreated, result)
}

// DiscardDraft cancels the in-progress quick-create.
func (h *EventHandler) DiscardDraft(c echo.Context) error {
	if err := h.schedule.DiscardDraft(); err != nil {
		return h.mapError(err)
	}
	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "draft discarded"})
}

// CommitDraft persists the in-progress quick-create. A degraded save
// (backend down, event kept locally) still answers 200 with the
// saved_locally status rather than an error.
func (h *EventHandler) CommitDraft(c echo.Context) error {
	var req commitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.schedule.CommitDraft(c.Request().Context(), ports.CommitDraftRequest{
		Title:          req.Title,
		Location:       req.Location,
		Description:    req.Description,
		Repeat:         entities.RepeatPolicy(req.Repeat),
		HotelID:        req.HotelID,
		RestaurantID:   req.RestaurantID,
		CheckinPlaceID: req.CheckinPlaceID,
	})
	if err != nil {
		return h.mapError(err)
	}

	status := http.StatusCreated
	if result.Status == ports.CommitSavedLocally {
		status = http.StatusOK
	}
	return c.JSON(status, result)
}

// MoveEvent commits a drag gesture.
func (h *EventHandler) MoveEvent(c echo.Context) error {
	return h.applyGesture(c, h.reconcile.MoveEvent)
}

// ResizeEvent commits a resize gesture. A missing end means the end did
// not change.
func (h *EventHandler) ResizeEvent(c echo.Context) error {
	return h.applyGesture(c, h.reconcile.ResizeEvent)
}

func (h *EventHandler) applyGesture(c echo.Context, apply func(ctx context.Context, req ports.GestureRequest) error) error {
	var req gestureRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start, err := entities.ParseLocalDateTime(req.Start)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid start date")
	}
	var end time.Time
	if req.End != "" {
		end, err = entities.ParseLocalDateTime(req.End)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid end date")
		}
	}

	gesture := ports.GestureRequest{EventID: c.Param("id"), Start: start, End: end}
	if err := apply(c.Request().Context(), gesture); err != nil {
		return h.mapError(err)
	}
	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "event rescheduled"})
}

// UpdateEvent applies the edit form's full-field update.
func (h *EventHandler) UpdateEvent(c echo.Context) error {
	var req updateInfoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start, err := entities.ParseLocalDateTime(req.StartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid start date")
	}
	end, err := entities.ParseLocalDateTime(req.EndDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid end date")
	}

	event, err := h.reconcile.UpdateEventInfo(c.Request().Context(), c.Param("id"), ports.UpdateEventInfoRequest{
		Title:       req.Title,
		Start:       start,
		End:         end,
		Description: req.Description,
		Location:    req.Location,
	})
	if err != nil {
		return h.mapError(err)
	}
	return c.JSON(http.StatusOK, event)
}

// DeleteEvent removes an event.
func (h *EventHandler) DeleteEvent(c echo.Context) error {
	if err := h.reconcile.DeleteEvent(c.Request().Context(), c.Param("id")); err != nil {
		return h.mapError(err)
	}
	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "event deleted"})
}

// RefreshEvents reloads the authoritative event list.
func (h *EventHandler) RefreshEvents(c echo.Context) error {
	if err := h.reconcile.Refresh(c.Request().Context()); err != nil {
		return h.mapError(err)
	}
	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "events refreshed"})
}

// SearchEvents recomputes the title match set for a query.
func (h *EventHandler) SearchEvents(c echo.Context) error {
	return c.JSON(http.StatusOK, h.search.Search(c.QueryParam("q")))
}

// NextMatch advances the search cursor cyclically.
func (h *EventHandler) NextMatch(c echo.Context) error {
	hit, ok := h.search.Next()
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no matches")
	}
	return c.JSON(http.StatusOK, hit)
}

// PrevMatch steps the search cursor back cyclically.
func (h *EventHandler) PrevMatch(c echo.Context) error {
	hit, ok := h.search.Prev()
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no matches")
	}
	return c.JSON(http.StatusOK, hit)
}

// ShareEvent shares an event by email.
func (h *EventHandler) ShareEvent(c echo.Context) error {
	var req shareRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.schedule.ShareEvent(c.Request().Context(), ports.ShareRequest{
		EventID: c.Param("id"),
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		return h.mapError(err)
	}
	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "event shared"})
}

// GetChildEvents loads (or returns cached) child events for a parent
// schedule.
func (h *EventHandler) GetChildEvents(c echo.Context) error {
	children, err := h.itinerary.EnsureChildEvents(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.mapError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"child_events": children})
}

// mapError translates domain errors into HTTP responses. Backend
// failures on updates answer 502 with a revert signal so the grid can
// restore the pre-gesture position.
func (h *EventHandler) mapError(err error) error {
	switch {
	case errors.Is(err, entities.ErrEventNotFound),
		errors.Is(err, entities.ErrNoDraft),
		errors.Is(err, entities.ErrItineraryNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, entities.ErrDuplicateEvent):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, entities.ErrEmptyTitle),
		errors.Is(err, entities.ErrMissingDates),
		errors.Is(err, entities.ErrMultiDaySelection),
		errors.Is(err, entities.ErrInvalidEmail),
		errors.Is(err, entities.ErrInvalidViewKind):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, entities.ErrTempEventImmutable),
		errors.Is(err, entities.ErrChildEventReadOnly):
		return echo.NewHTTPError(http.StatusConflict, map[string]interface{}{
			"message": err.Error(),
			"revert":  true,
		})
	default:
		return echo.NewHTTPError(http.StatusBadGateway, map[string]interface{}{
			"message": err.Error(),
			"revert":  true,
		})
	}
}
