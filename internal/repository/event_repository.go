package repository

import (
	"context"
	"fmt"

	"sweetcrumb/internal/domain/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

const eventTable = "events"

var eventColumns = []string{
	"id", "title", "venue", "event_date", "description", "image_urls",
	"image_public_ids", "cover_image", "highlights", "display_order",
	"is_active", "created_at", "updated_at",
}

var eventUpdatable = map[string]bool{
	"title":            true,
	"venue":            true,
	"event_date":       true,
	"description":      true,
	"image_urls":       true,
	"image_public_ids": true,
	"cover_image":      true,
	"highlights":       true,
	"display_order":    true,
	"is_active":        true,
}

type EventRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewEventRepository(db *pgxpool.Pool) *EventRepo {
	return &EventRepo{
		db: db,
		sb: newBuilder(),
	}
}

func (r *EventRepo) CreateEvent(ctx context.Context, event models.Event) (uuid.UUID, error) {
	const op = "repository.EventRepo.CreateEvent"

	builder := r.sb.Insert(eventTable).
		Columns(
			"title",
			"venue",
			"event_date",
			"description",
			"image_urls",
			"image_public_ids",
			"cover_image",
			"highlights",
			"display_order",
			"is_active",
		).
		Values(
			event.Title,
			event.Venue,
			event.Date,
			event.Description,
			nonNil(event.ImageURLs),
			nonNil(event.ImagePublicIDs),
			event.CoverImage,
			event.Highlights,
			event.Order,
			event.IsActive,
		)

	return insertReturningID(ctx, r.db, op, builder)
}

func (r *EventRepo) UpdateEventFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	const op = "repository.EventRepo.UpdateEventFields"

	return updateFields(ctx, r.db, r.sb, op, eventTable, id, eventUpdatable, updates)
}

func (r *EventRepo) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	const op = "repository.EventRepo.DeleteEvent"

	return deleteByID(ctx, r.db, r.sb, op, eventTable, id)
}

func (r *EventRepo) GetEventByID(ctx context.Context, id uuid.UUID) (models.Event, error) {
	const op = "repository.EventRepo.GetEventByID"

	query, args, err := r.sb.Select(eventColumns...).
		From(eventTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	event, err := scanEvent(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Event{}, mapErr(op, err)
	}

	return event, nil
}

func (r *EventRepo) GetEvents(ctx context.Context, activeOnly bool) ([]models.Event, error) {
	const op = "repository.EventRepo.GetEvents"

	builder := r.sb.Select(eventColumns...).From(eventTable)
	if activeOnly {
		builder = builder.Where(sq.Eq{"is_active": true})
	}

	query, args, err := builder.OrderBy("display_order ASC", "event_date DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	events := make([]models.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

func scanEvent(row pgx.Row) (models.Event, error) {
	var e models.Event

	err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Venue,
		&e.Date,
		&e.Description,
		&e.ImageURLs,
		&e.ImagePublicIDs,
		&e.CoverImage,
		&e.Highlights,
		&e.Order,
		&e.IsActive,
		&e.CreatedAt,
		&e.UpdatedAt,
	)

	return e, err
}

// nonNil keeps NOT NULL array columns from receiving a SQL NULL.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
