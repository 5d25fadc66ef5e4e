package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tripcal/core/internal/domain/entities"
	"github.com/tripcal/core/internal/domain/itinerary"
	"github.com/tripcal/core/internal/ports"
)

// EventRepositoryImpl serves the EventBackend contract from Postgres for
// self-hosted deployments. Timestamps are stored without time zone so
// wall-clock values round-trip unchanged.
type EventRepositoryImpl struct {
	db *sqlx.DB
}

// NewEventRepository creates a Postgres-backed event backend
func NewEventRepository(db *sqlx.DB) ports.EventBackend {
	return &EventRepositoryImpl{db: db}
}

type eventRow struct {
	ID           string         `db:"id"`
	Title        string         `db:"title"`
	StartTime    time.Time      `db:"start_time"`
	EndTime      time.Time      `db:"end_time"`
	AllDay       bool           `db:"all_day"`
	Location     sql.NullString `db:"location"`
	Description  sql.NullString `db:"description"`
	Cost         sql.NullString `db:"cost"`
	Weather      sql.NullString `db:"weather"`
	Repeat       sql.NullString `db:"repeat"`
	AIOriginated bool           `db:"ai_originated"`
	UserName     sql.NullString `db:"user_name"`
}

func (r eventRow) toEntity() entities.Event {
	return entities.Event{
		ID:           r.ID,
		Title:        r.Title,
		Start:        r.StartTime,
		End:          r.EndTime,
		AllDay:       r.AllDay,
		Location:     r.Location.String,
		Description:  r.Description.String,
		Cost:         r.Cost.String,
		Weather:      r.Weather.String,
		Repeat:       entities.RepeatPolicy(r.Repeat.String),
		AIOriginated: r.AIOriginated,
		User:         r.UserName.String,
	}
}

func (r *EventRepositoryImpl) CreateEvent(ctx context.Context, payload ports.CreateEventPayload) (*ports.CreatedEvent, error) {
	query := `
		INSERT INTO events (id, title, start_time, end_time, all_day, location, description,
			repeat, hotel_id, restaurant_id, checkin_place_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	id := uuid.New().String()
	_, err := r.db.ExecContext(ctx, query,
		id, payload.Title, payload.Start, payload.End, payload.AllDay,
		nullable(payload.Location), nullable(payload.Description), nullable(string(payload.Repeat)),
		nullable(payload.HotelID), nullable(payload.RestaurantID), nullable(payload.CheckinPlaceID),
	)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	return &ports.CreatedEvent{ID: id}, nil
}

func (r *EventRepositoryImpl) UpdateEvent(ctx context.Context, id string, update ports.TimeUpdate) error {
	query := `
		UPDATE events
		SET start_time = $2, end_time = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, update.Start, update.End)
	if err != nil {
		return fmt.Errorf("update event times: %w", err)
	}
	return requireRow(result)
}

func (r *EventRepositoryImpl) UpdateEventInfo(ctx context.Context, id string, update ports.EventInfoUpdate) error {
	query := `
		UPDATE events
		SET title = $2, start_time = $3, end_time = $4, description = $5, location = $6,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		id, update.Title, update.StartDate, update.EndDate,
		nullable(update.Description), nullable(update.Location),
	)
	if err != nil {
		return fmt.Errorf("update event info: %w", err)
	}
	return requireRow(result)
}

func (r *EventRepositoryImpl) DeleteEvent(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return requireRow(result)
}

func (r *EventRepositoryImpl) GetUserEvents(ctx context.Context) ([]entities.Event, error) {
	query := `
		SELECT id, title, start_time, end_time, all_day, location, description,
			cost, weather, repeat, ai_originated, user_name
		FROM events
		ORDER BY start_time, id`

	var rows []eventRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	events := make([]entities.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, row.toEntity())
	}
	return events, nil
}

type activityRow struct {
	ActivityID   string         `db:"activity_id"`
	ActivityDate string         `db:"activity_date"`
	Name         string         `db:"name"`
	Type         sql.NullString `db:"type"`
	Icon         sql.NullString `db:"icon"`
	TimeDisplay  sql.NullString `db:"time_display"`
	StartTime    sql.NullString `db:"start_time"`
	EndTime      sql.NullString `db:"end_time"`
	Location     sql.NullString `db:"location"`
	Description  sql.NullString `db:"description"`
	CostDisplay  sql.NullString `db:"cost_display"`
	Weather      sql.NullString `db:"weather"`
}

func (r *EventRepositoryImpl) GetItineraryDetail(ctx context.Context, scheduleID string) (*itinerary.Detail, error) {
	query := `
		SELECT activity_id, to_char(activity_date, 'YYYY-MM-DD') AS activity_date,
			name, type, icon, time_display, start_time, end_time,
			location, description, cost_display, weather
		FROM itinerary_activities
		WHERE schedule_id = $1
		ORDER BY activity_date, position`

	var rows []activityRow
	if err := r.db.SelectContext(ctx, &rows, query, scheduleID); err != nil {
		return nil, fmt.Errorf("get itinerary detail: %w", err)
	}
	if len(rows) == 0 {
		return nil, entities.ErrItineraryNotFound
	}

	detail := &itinerary.Detail{EventsByDate: make(map[string][]itinerary.Activity)}
	for _, row := range rows {
		detail.EventsByDate[row.ActivityDate] = append(detail.EventsByDate[row.ActivityDate], itinerary.Activity{
			ID:          row.ActivityID,
			Name:        row.Name,
			Type:        row.Type.String,
			Icon:        row.Icon.String,
			TimeDisplay: row.TimeDisplay.String,
			StartTime:   row.StartTime.String,
			EndTime:     row.EndTime.String,
			Location:    row.Location.String,
			Description: row.Description.String,
			CostDisplay: row.CostDisplay.String,
			Weather:     row.Weather.String,
		})
	}
	return detail, nil
}

func (r *EventRepositoryImpl) ShareEvent(ctx context.Context, id, email, message string) error {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM events WHERE id = $1)`, id); err != nil {
		return fmt.Errorf("share event: %w", err)
	}
	if !exists {
		return entities.ErrEventNotFound
	}

	query := `
		INSERT INTO event_shares (id, event_id, email, message)
		VALUES ($1, $2, $3, $4)`

	if _, err := r.db.ExecContext(ctx, query, uuid.New().String(), id, email, nullable(message)); err != nil {
		return fmt.Errorf("share event: %w", err)
	}
	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return entities.ErrEventNotFound
	}
	return nil
}
