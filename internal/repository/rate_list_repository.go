package repository

import (
	"context"
	"errors"
	"fmt"

	"sweetcrumb/internal/domain/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

const rateListTable = "rate_list"

var rateListColumns = []string{
	"id", "category", "item_name", "description", "price", "discount_price",
	"unit", "is_available", "display_order", "created_at", "updated_at",
}

var rateListUpdatable = map[string]bool{
	"category":       true,
	"item_name":      true,
	"description":    true,
	"price":          true,
	"discount_price": true,
	"unit":           true,
	"is_available":   true,
	"display_order":  true,
}

type RateListRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewRateListRepository(db *pgxpool.Pool) *RateListRepo {
	return &RateListRepo{
		db: db,
		sb: newBuilder(),
	}
}

func (r *RateListRepo) CreateEntry(ctx context.Context, entry models.RateListEntry) (uuid.UUID, error) {
	const op = "repository.RateListRepo.CreateEntry"

	builder := r.sb.Insert(rateListTable).
		Columns(
			"category",
			"item_name",
			"description",
			"price",
			"discount_price",
			"unit",
			"is_available",
			"display_order",
		).
		Values(
			entry.Category,
			entry.ItemName,
			entry.Description,
			entry.Price,
			entry.DiscountPrice,
			string(entry.Unit),
			entry.IsAvailable,
			entry.Order,
		)

	return insertReturningID(ctx, r.db, op, builder)
}

// UpdateEntry applies updates to id. A non-nil swap moves the counterpart
// first, and both writes commit or roll back together.
func (r *RateListRepo) UpdateEntry(ctx context.Context, id uuid.UUID, updates map[string]interface{}, swap *models.OrderSwap) error {
	const op = "repository.RateListRepo.UpdateEntry"

	if swap == nil {
		return updateFields(ctx, r.db, r.sb, op, rateListTable, id, rateListUpdatable, updates)
	}

	return r.db.BeginFunc(ctx, func(tx pgx.Tx) error {
		if err := setOrder(ctx, tx, r.sb, op, rateListTable, swap.CounterpartID, swap.NewOrder); err != nil {
			return err
		}

		return updateFields(ctx, tx, r.sb, op, rateListTable, id, rateListUpdatable, updates)
	})
}

func (r *RateListRepo) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	const op = "repository.RateListRepo.DeleteEntry"

	return deleteByID(ctx, r.db, r.sb, op, rateListTable, id)
}

func (r *RateListRepo) GetEntryByID(ctx context.Context, id uuid.UUID) (models.RateListEntry, error) {
	const op = "repository.RateListRepo.GetEntryByID"

	query, args, err := r.sb.Select(rateListColumns...).
		From(rateListTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.RateListEntry{}, fmt.Errorf("%s: %w", op, err)
	}

	entry, err := scanRateListEntry(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.RateListEntry{}, mapErr(op, err)
	}

	return entry, nil
}

// FindByOrder returns the first entry of category holding order, ignoring
// excludeID. found is false when the slot is free.
func (r *RateListRepo) FindByOrder(ctx context.Context, category string, order int, excludeID uuid.UUID) (models.RateListEntry, bool, error) {
	const op = "repository.RateListRepo.FindByOrder"

	query, args, err := r.sb.Select(rateListColumns...).
		From(rateListTable).
		Where(sq.Eq{"category": category, "display_order": order}).
		Where(sq.NotEq{"id": excludeID}).
		OrderBy("created_at ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return models.RateListEntry{}, false, fmt.Errorf("%s: %w", op, err)
	}

	entry, err := scanRateListEntry(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.RateListEntry{}, false, nil
	}
	if err != nil {
		return models.RateListEntry{}, false, fmt.Errorf("%s: %w", op, err)
	}

	return entry, true, nil
}

func (r *RateListRepo) NextOrder(ctx context.Context, category string) (int, error) {
	const op = "repository.RateListRepo.NextOrder"

	return nextOrder(ctx, r.db, r.sb, op, rateListTable, sq.Eq{"category": category})
}

// GetEntries lists entries sorted by category then order. availableOnly
// hides unavailable entries; an empty category means all of them.
func (r *RateListRepo) GetEntries(ctx context.Context, availableOnly bool, category string) ([]models.RateListEntry, error) {
	const op = "repository.RateListRepo.GetEntries"

	builder := r.sb.Select(rateListColumns...).From(rateListTable)
	if availableOnly {
		builder = builder.Where(sq.Eq{"is_available": true})
	}
	if category != "" {
		builder = builder.Where(sq.Eq{"category": category})
	}

	query, args, err := builder.OrderBy("category ASC", "display_order ASC", "item_name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	entries := make([]models.RateListEntry, 0)
	for rows.Next() {
		entry, err := scanRateListEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func scanRateListEntry(row pgx.Row) (models.RateListEntry, error) {
	var e models.RateListEntry
	var unit string

	err := row.Scan(
		&e.ID,
		&e.Category,
		&e.ItemName,
		&e.Description,
		&e.Price,
		&e.DiscountPrice,
		&unit,
		&e.IsAvailable,
		&e.Order,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	e.Unit = models.PriceUnit(unit)

	return e, err
}
