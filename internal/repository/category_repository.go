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

const categoryTable = "categories"

var categoryColumns = []string{
	"id", "name", "description", "display_order", "is_active", "created_at", "updated_at",
}

var categoryUpdatable = map[string]bool{
	"name":          true,
	"description":   true,
	"display_order": true,
	"is_active":     true,
}

type CategoryRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepo {
	return &CategoryRepo{
		db: db,
		sb: newBuilder(),
	}
}

func (r *CategoryRepo) CreateCategory(ctx context.Context, category models.Category) (uuid.UUID, error) {
	const op = "repository.CategoryRepo.CreateCategory"

	builder := r.sb.Insert(categoryTable).
		Columns("name", "description", "display_order", "is_active").
		Values(category.Name, category.Description, category.Order, category.IsActive)

	return insertReturningID(ctx, r.db, op, builder)
}

func (r *CategoryRepo) UpdateCategoryFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	const op = "repository.CategoryRepo.UpdateCategoryFields"

	return updateFields(ctx, r.db, r.sb, op, categoryTable, id, categoryUpdatable, updates)
}

// DeleteCategory leaves menu items that point at it untouched.
func (r *CategoryRepo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	const op = "repository.CategoryRepo.DeleteCategory"

	return deleteByID(ctx, r.db, r.sb, op, categoryTable, id)
}

func (r *CategoryRepo) GetCategoryByID(ctx context.Context, id uuid.UUID) (models.Category, error) {
	const op = "repository.CategoryRepo.GetCategoryByID"

	query, args, err := r.sb.Select(categoryColumns...).
		From(categoryTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Category{}, fmt.Errorf("%s: %w", op, err)
	}

	category, err := scanCategory(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Category{}, mapErr(op, err)
	}

	return category, nil
}

func (r *CategoryRepo) GetCategories(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	const op = "repository.CategoryRepo.GetCategories"

	builder := r.sb.Select(categoryColumns...).From(categoryTable)
	if activeOnly {
		builder = builder.Where(sq.Eq{"is_active": true})
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

	categories := make([]models.Category, 0)
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

func scanCategory(row pgx.Row) (models.Category, error) {
	var c models.Category

	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Description,
		&c.Order,
		&c.IsActive,
		&c.CreatedAt,
		&c.UpdatedAt,
	)

	return c, err
}
