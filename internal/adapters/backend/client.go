// Package backend contains the HTTP client adapter for a remote event
// backend. Only the request/response contracts live here; the backend's
// own behavior is an external concern.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tripcal/core/internal/domain/entities"
	"github.com/tripcal/core/internal/domain/itinerary"
	"github.com/tripcal/core/internal/infrastructure/config"
	"github.com/tripcal/core/internal/ports"
)

// Client implements ports.EventBackend over JSON HTTP. Timestamps cross
// the wire as timezone-less local datetime strings, keeping the no-UTC
// semantic end to end.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a remote backend client from configuration.
func NewClient(cfg config.BackendConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

var _ ports.EventBackend = (*Client)(nil)

type wireEvent struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Start        string `json:"start"`
	End          string `json:"end"`
	AllDay       bool   `json:"allDay"`
	Location     string `json:"location"`
	Description  string `json:"description"`
	Cost         string `json:"cost"`
	Weather      string `json:"weather"`
	Repeat       string `json:"repeat"`
	AIOriginated bool   `json:"isAIOriginated"`
	User         string `json:"user"`
}

func (w wireEvent) toEntity() (entities.Event, error) {
	start, err := entities.ParseLocalDateTime(w.Start)
	if err != nil {
		return entities.Event{}, fmt.Errorf("event %s: %w", w.ID, err)
	}
	end, err := entities.ParseLocalDateTime(w.End)
	if err != nil {
		return entities.Event{}, fmt.Errorf("event %s: %w", w.ID, err)
	}
	return entities.Event{
		ID:           w.ID,
		Title:        w.Title,
		Start:        start,
		End:          end,
		AllDay:       w.AllDay,
		Location:     w.Location,
		Description:  w.Description,
		Cost:         w.Cost,
		Weather:      w.Weather,
		Repeat:       entities.RepeatPolicy(w.Repeat),
		AIOriginated: w.AIOriginated,
		User:         w.User,
	}, nil
}

func (c *Client) CreateEvent(ctx context.Context, payload ports.CreateEventPayload) (*ports.CreatedEvent, error) {
	body := map[string]interface{}{
		"title":       payload.Title,
		"start":       entities.FormatLocalDateTime(payload.Start),
		"end":         entities.FormatLocalDateTime(payload.End),
		"all_day":     payload.AllDay,
		"location":    payload.Location,
		"description": payload.Description,
		"repeat":      payload.Repeat,
	}
	if payload.HotelID != "" {
		body["hotel_id"] = payload.HotelID
	}
	if payload.RestaurantID != "" {
		body["restaurant_id"] = payload.RestaurantID
	}
	if payload.CheckinPlaceID != "" {
		body["checkin_place_id"] = payload.CheckinPlaceID
	}

	var created ports.CreatedEvent
	if err := c.do(ctx, http.MethodPost, "/events", body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateEvent(ctx context.Context, id string, update ports.TimeUpdate) error {
	body := map[string]interface{}{
		"start": entities.FormatLocalDateTime(update.Start),
		"end":   entities.FormatLocalDateTime(update.End),
	}
	return c.do(ctx, http.MethodPatch, "/events/"+url.PathEscape(id), body, nil)
}

func (c *Client) UpdateEventInfo(ctx context.Context, id string, update ports.EventInfoUpdate) error {
	body := map[string]interface{}{
		"title":       update.Title,
		"start_date":  entities.FormatLocalDateTime(update.StartDate),
		"end_date":    entities.FormatLocalDateTime(update.EndDate),
		"description": update.Description,
		"location":    update.Location,
	}
	return c.do(ctx, http.MethodPut, "/events/"+url.PathEscape(id), body, nil)
}

func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/events/"+url.PathEscape(id), nil, nil)
}

func (c *Client) GetUserEvents(ctx context.Context) ([]entities.Event, error) {
	var wire []wireEvent
	if err := c.do(ctx, http.MethodGet, "/events", nil, &wire); err != nil {
		return nil, err
	}

	events := make([]entities.Event, 0, len(wire))
	for _, w := range wire {
		e, err := w.toEntity()
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

func (c *Client) GetItineraryDetail(ctx context.Context, scheduleID string) (*itinerary.Detail, error) {
	var detail itinerary.Detail
	if err := c.do(ctx, http.MethodGet, "/itineraries/"+url.PathEscape(scheduleID), nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (c *Client) ShareEvent(ctx context.Context, id, email, message string) error {
	body := map[string]interface{}{
		"email":   email,
		"message": message,
	}
	return c.do(ctx, http.MethodPost, "/events/"+url.PathEscape(id)+"/share", body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return entities.ErrEventNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s: backend returned %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
