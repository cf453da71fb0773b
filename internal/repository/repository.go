package repository

import (
	"context"
	"errors"
	"fmt"

	"sweetcrumb/internal/storage"
	"sweetcrumb/internal/storage/postgresql"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Repository struct {
	db       *pgxpool.Pool
	Blog     *BlogRepo
	Category *CategoryRepo
	Event    *EventRepo
	Gallery  *GalleryRepo
	Menu     *MenuRepo
	RateList *RateListRepo
	Reel     *ReelRepo
	Review   *ReviewRepo
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		db:       db,
		Blog:     NewBlogRepository(db),
		Category: NewCategoryRepository(db),
		Event:    NewEventRepository(db),
		Gallery:  NewGalleryRepository(db),
		Menu:     NewMenuRepository(db),
		RateList: NewRateListRepository(db),
		Reel:     NewReelRepository(db),
		Review:   NewReviewRepository(db),
	}
}

func (r *Repository) Close() {
	r.db.Close()
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func newBuilder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// mapErr translates driver errors into storage sentinels.
func mapErr(op string, err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	case postgresql.IsUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, storage.ErrConflict)
	case postgresql.IsInvalidInput(err):
		return fmt.Errorf("%s: %w", op, storage.ErrInvalidInput)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// updateFields applies a partial update restricted to allowed columns and
// bumps updated_at. Zero affected rows means the id does not exist.
func updateFields(
	ctx context.Context,
	q querier,
	sb sq.StatementBuilderType,
	op, table string,
	id uuid.UUID,
	allowed map[string]bool,
	updates map[string]interface{},
) error {
	if len(updates) == 0 {
		return fmt.Errorf("%s: no fields to update", op)
	}

	builder := sb.Update(table).Set("updated_at", sq.Expr("NOW()"))

	for field, value := range updates {
		if !allowed[field] {
			return fmt.Errorf("%s: field '%s' is not allowed for update", op, field)
		}

		builder = builder.Set(field, value)
	}

	query, args, err := builder.Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return mapErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func deleteByID(ctx context.Context, q querier, sb sq.StatementBuilderType, op, table string, id uuid.UUID) error {
	query, args, err := sb.Delete(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// setOrder writes display_order for a single row inside a reorder.
func setOrder(ctx context.Context, q querier, sb sq.StatementBuilderType, op, table string, id uuid.UUID, order int) error {
	query, args, err := sb.Update(table).
		Set("display_order", order).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func insertReturningID(ctx context.Context, q querier, op string, builder sq.InsertBuilder) (uuid.UUID, error) {
	query, args, err := builder.Suffix("RETURNING id").ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	var id uuid.UUID
	if err := q.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return uuid.Nil, mapErr(op, err)
	}

	return id, nil
}

func nextOrder(ctx context.Context, q querier, sb sq.StatementBuilderType, op, table string, where sq.Sqlizer) (int, error) {
	builder := sb.Select("COALESCE(MAX(display_order) + 1, 0)").From(table)
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var next int
	if err := q.QueryRow(ctx, query, args...).Scan(&next); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return next, nil
}
