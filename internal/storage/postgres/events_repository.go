package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mibcs/clubsite/internal/domain/events"
)

type EventRepository struct {
	pool *pgxpool.Pool
}

var _ events.Repository = (*EventRepository)(nil)

const eventColumns = `id, title, description, short_description, start_time, end_time,
       display_time, venue, event_type, status, registration_link,
       max_participants, current_participants, tags, domains, organizers,
       images, featured, views, registration_clicks, created_at, updated_at`

func (r *EventRepository) List(ctx context.Context, filters events.Filters, pagination events.Pagination) (events.ListResult, error) {
	limit := pagination.Limit
	if limit <= 0 {
		limit = 10
	}

	// Completed listings read newest-first; everything else surfaces the
	// soonest events first.
	order := "ASC"
	if filters.Status == events.StatusCompleted {
		order = "DESC"
	}

	query := fmt.Sprintf(`
SELECT %s, COUNT(*) OVER () AS total
  FROM events
 WHERE ($1 = '' OR status = $1)
   AND ($2 = '' OR $2 = ANY(domains))
   AND ($3::boolean IS NULL OR featured = $3)
 ORDER BY start_time %s, id ASC
OFFSET $4 LIMIT $5
`, eventColumns, order)

	rows, err := r.pool.Query(ctx, query,
		string(filters.Status),
		filters.Domain,
		filters.Featured,
		pagination.Offset(),
		limit,
	)
	if err != nil {
		return events.ListResult{}, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	result := events.ListResult{Events: make([]events.Event, 0, limit)}
	for rows.Next() {
		event, total, err := scanEventWithTotal(rows)
		if err != nil {
			return events.ListResult{}, fmt.Errorf("scan events: %w", err)
		}
		result.Total = total
		result.Events = append(result.Events, *event)
	}
	if err := rows.Err(); err != nil {
		return events.ListResult{}, fmt.Errorf("iterate events: %w", err)
	}
	return result, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*events.Event, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`SELECT %s FROM events WHERE id = $1`, eventColumns), id)
	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (r *EventRepository) Create(ctx context.Context, params events.CreateParams) (*events.Event, error) {
	images, err := marshalImages(params.Images)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
INSERT INTO events (id, title, description, short_description, start_time, end_time,
                    display_time, venue, event_type, status, registration_link,
                    max_participants, current_participants, tags, domains, organizers,
                    images, featured)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
RETURNING %s
`, eventColumns),
		params.ID,
		params.Title,
		params.Description,
		params.ShortDescription,
		params.StartTime,
		params.EndTime,
		params.DisplayTime,
		params.Venue,
		string(params.Type),
		string(params.Status),
		params.RegistrationLink,
		params.MaxParticipants,
		params.CurrentParticipants,
		params.Tags,
		params.Domains,
		params.Organizers,
		images,
		params.Featured,
	)

	event, err := scanEvent(row)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (r *EventRepository) Update(ctx context.Context, id string, params events.UpdateParams) (*events.Event, error) {
	set := []string{"updated_at = now()"}
	args := []any{id}

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if params.Title != nil {
		add("title", *params.Title)
	}
	if params.Description != nil {
		add("description", *params.Description)
	}
	if params.ShortDescription != nil {
		add("short_description", *params.ShortDescription)
	}
	if params.StartTime != nil {
		add("start_time", *params.StartTime)
	}
	if params.EndTime != nil {
		add("end_time", *params.EndTime)
	}
	if params.DisplayTime != nil {
		add("display_time", *params.DisplayTime)
	}
	if params.Venue != nil {
		add("venue", *params.Venue)
	}
	if params.Type != nil {
		add("event_type", string(*params.Type))
	}
	if params.Status != nil {
		add("status", string(*params.Status))
	}
	if params.RegistrationLink != nil {
		add("registration_link", *params.RegistrationLink)
	}
	if params.MaxParticipants != nil {
		add("max_participants", *params.MaxParticipants)
	}
	if params.CurrentParticipants != nil {
		add("current_participants", *params.CurrentParticipants)
	}
	if params.Tags != nil {
		add("tags", params.Tags)
	}
	if params.Domains != nil {
		add("domains", params.Domains)
	}
	if params.Organizers != nil {
		add("organizers", params.Organizers)
	}
	if params.Images != nil {
		images, err := marshalImages(params.Images)
		if err != nil {
			return nil, err
		}
		add("images", images)
	}
	if params.Featured != nil {
		add("featured", *params.Featured)
	}

	query := fmt.Sprintf(`UPDATE events SET %s WHERE id = $1 RETURNING %s`,
		strings.Join(set, ", "), eventColumns)

	row := r.pool.QueryRow(ctx, query, args...)
	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return events.ErrNotFound
	}
	return nil
}

// IncrementViews bumps the view counter in a single statement so concurrent
// increments cannot lose updates.
func (r *EventRepository) IncrementViews(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE events SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return events.ErrNotFound
	}
	return nil
}

func (r *EventRepository) IncrementRegistrationClicks(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE events SET registration_clicks = registration_clicks + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment registration clicks: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return events.ErrNotFound
	}
	return nil
}

func (r *EventRepository) EngagementTotals(ctx context.Context) (events.EngagementTotals, error) {
	row := r.pool.QueryRow(ctx, `
SELECT COALESCE(SUM(views), 0), COALESCE(SUM(registration_clicks), 0) FROM events`)

	var totals events.EngagementTotals
	if err := row.Scan(&totals.TotalViews, &totals.TotalRegistrationClicks); err != nil {
		return events.EngagementTotals{}, fmt.Errorf("engagement totals: %w", err)
	}
	return totals, nil
}

func scanEvent(row pgx.Row) (*events.Event, error) {
	var (
		event     events.Event
		eventType string
		status    string
		endTime   *time.Time
		rawImages []byte
	)
	if err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.ShortDescription,
		&event.StartTime,
		&endTime,
		&event.DisplayTime,
		&event.Venue,
		&eventType,
		&status,
		&event.RegistrationLink,
		&event.MaxParticipants,
		&event.CurrentParticipants,
		&event.Tags,
		&event.Domains,
		&event.Organizers,
		&rawImages,
		&event.Featured,
		&event.Views,
		&event.RegistrationClicks,
		&event.CreatedAt,
		&event.UpdatedAt,
	); err != nil {
		return nil, err
	}
	event.Type = events.EventType(eventType)
	event.Status = events.Status(status)
	event.EndTime = endTime
	if len(rawImages) > 0 {
		if err := json.Unmarshal(rawImages, &event.Images); err != nil {
			return nil, fmt.Errorf("decode images: %w", err)
		}
	}
	return &event, nil
}

func scanEventWithTotal(rows pgx.Rows) (*events.Event, int, error) {
	var (
		event     events.Event
		eventType string
		status    string
		endTime   *time.Time
		rawImages []byte
		total     int
	)
	if err := rows.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.ShortDescription,
		&event.StartTime,
		&endTime,
		&event.DisplayTime,
		&event.Venue,
		&eventType,
		&status,
		&event.RegistrationLink,
		&event.MaxParticipants,
		&event.CurrentParticipants,
		&event.Tags,
		&event.Domains,
		&event.Organizers,
		&rawImages,
		&event.Featured,
		&event.Views,
		&event.RegistrationClicks,
		&event.CreatedAt,
		&event.UpdatedAt,
		&total,
	); err != nil {
		return nil, 0, err
	}
	event.Type = events.EventType(eventType)
	event.Status = events.Status(status)
	event.EndTime = endTime
	if len(rawImages) > 0 {
		if err := json.Unmarshal(rawImages, &event.Images); err != nil {
			return nil, 0, fmt.Errorf("decode images: %w", err)
		}
	}
	return &event, total, nil
}

func marshalImages(images []events.Image) ([]byte, error) {
	if len(images) == 0 {
		return []byte("[]"), nil
	}
	data, err := json.Marshal(images)
	if err != nil {
		return nil, fmt.Errorf("encode images: %w", err)
	}
	return data, nil
}
