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

const menuTable = "menu_items"

var menuColumns = []string{
	"id", "name", "description", "image_url", "image_public_id", "badge",
	"price", "discount_price", "unit", "category_id", "display_order",
	"is_active", "created_at", "updated_at",
}

var menuUpdatable = map[string]bool{
	"name":            true,
	"description":     true,
	"image_url":       true,
	"image_public_id": true,
	"badge":           true,
	"price":           true,
	"discount_price":  true,
	"unit":            true,
	"category_id":     true,
	"display_order":   true,
	"is_active":       true,
}

type MenuRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewMenuRepository(db *pgxpool.Pool) *MenuRepo {
	return &MenuRepo{
		db: db,
		sb: newBuilder(),
	}
}

func (r *MenuRepo) CreateMenuItem(ctx context.Context, item models.MenuItem) (uuid.UUID, error) {
	const op = "repository.MenuRepo.CreateMenuItem"

	builder := r.sb.Insert(menuTable).
		Columns(
			"name",
			"description",
			"image_url",
			"image_public_id",
			"badge",
			"price",
			"discount_price",
			"unit",
			"category_id",
			"display_order",
			"is_active",
		).
		Values(
			item.Name,
			item.Description,
			item.ImageURL,
			item.ImagePublicID,
			item.Badge,
			item.Price,
			item.DiscountPrice,
			string(item.Unit),
			item.CategoryID,
			item.Order,
			item.IsActive,
		)

	return insertReturningID(ctx, r.db, op, builder)
}

func (r *MenuRepo) UpdateMenuItemFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	const op = "repository.MenuRepo.UpdateMenuItemFields"

	return updateFields(ctx, r.db, r.sb, op, menuTable, id, menuUpdatable, updates)
}

func (r *MenuRepo) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	const op = "repository.MenuRepo.DeleteMenuItem"

	return deleteByID(ctx, r.db, r.sb, op, menuTable, id)
}

func (r *MenuRepo) GetMenuItemByID(ctx context.Context, id uuid.UUID) (models.MenuItem, error) {
	const op = "repository.MenuRepo.GetMenuItemByID"

	query, args, err := r.sb.Select(menuColumns...).
		From(menuTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("%s: %w", op, err)
	}

	item, err := scanMenuItem(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.MenuItem{}, mapErr(op, err)
	}

	return item, nil
}

// GetMenuItems lists items, optionally only active ones and only those in
// categoryID.
func (r *MenuRepo) GetMenuItems(ctx context.Context, activeOnly bool, categoryID uuid.NullUUID) ([]models.MenuItem, error) {
	const op = "repository.MenuRepo.GetMenuItems"

	builder := r.sb.Select(menuColumns...).From(menuTable)
	if activeOnly {
		builder = builder.Where(sq.Eq{"is_active": true})
	}
	if categoryID.Valid {
		builder = builder.Where(sq.Eq{"category_id": categoryID.UUID})
	}

	query, args, err := builder.OrderBy("display_order ASC", "name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	items := make([]models.MenuItem, 0)
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func scanMenuItem(row pgx.Row) (models.MenuItem, error) {
	var item models.MenuItem
	var unit string

	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.ImageURL,
		&item.ImagePublicID,
		&item.Badge,
		&item.Price,
		&item.DiscountPrice,
		&unit,
		&item.CategoryID,
		&item.Order,
		&item.IsActive,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	item.Unit = models.PriceUnit(unit)

	return item, err
}
