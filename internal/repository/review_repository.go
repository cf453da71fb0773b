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

const reviewTable = "reviews"

var reviewColumns = []string{
	"id", "name", "email", "cake_type", "rating", "review", "avatar",
	"is_approved", "is_featured", "created_at", "updated_at",
}

var reviewUpdatable = map[string]bool{
	"name":        true,
	"email":       true,
	"cake_type":   true,
	"rating":      true,
	"review":      true,
	"avatar":      true,
	"is_approved": true,
	"is_featured": true,
}

type ReviewRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewReviewRepository(db *pgxpool.Pool) *ReviewRepo {
	return &ReviewRepo{
		db: db,
		sb: newBuilder(),
	}
}

func (r *ReviewRepo) CreateReview(ctx context.Context, review models.Review) (uuid.UUID, error) {
	const op = "repository.ReviewRepo.CreateReview"

	builder := r.sb.Insert(reviewTable).
		Columns(
			"name",
			"email",
			"cake_type",
			"rating",
			"review",
			"avatar",
			"is_approved",
			"is_featured",
		).
		Values(
			review.Name,
			review.Email,
			review.CakeType,
			review.Rating,
			review.Review,
			review.Avatar,
			review.IsApproved,
			review.IsFeatured,
		)

	return insertReturningID(ctx, r.db, op, builder)
}

func (r *ReviewRepo) UpdateReviewFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	const op = "repository.ReviewRepo.UpdateReviewFields"

	return updateFields(ctx, r.db, r.sb, op, reviewTable, id, reviewUpdatable, updates)
}

func (r *ReviewRepo) DeleteReview(ctx context.Context, id uuid.UUID) error {
	const op = "repository.ReviewRepo.DeleteReview"

	return deleteByID(ctx, r.db, r.sb, op, reviewTable, id)
}

func (r *ReviewRepo) GetReviewByID(ctx context.Context, id uuid.UUID) (models.Review, error) {
	const op = "repository.ReviewRepo.GetReviewByID"

	query, args, err := r.sb.Select(reviewColumns...).
		From(reviewTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Review{}, fmt.Errorf("%s: %w", op, err)
	}

	review, err := scanReview(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Review{}, mapErr(op, err)
	}

	return review, nil
}

func (r *ReviewRepo) GetReviews(ctx context.Context, filter models.ReviewFilter) ([]models.Review, error) {
	const op = "repository.ReviewRepo.GetReviews"

	builder := r.sb.Select(reviewColumns...).From(reviewTable)
	if filter.PublicOnly {
		builder = builder.Where(sq.Eq{"is_approved": true})
	}
	if filter.FeaturedOnly {
		builder = builder.Where(sq.Eq{"is_featured": true})
	}

	query, args, err := builder.OrderBy("created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	reviews := make([]models.Review, 0)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		reviews = append(reviews, review)
	}

	return reviews, rows.Err()
}

func scanReview(row pgx.Row) (models.Review, error) {
	var rv models.Review

	err := row.Scan(
		&rv.ID,
		&rv.Name,
		&rv.Email,
		&rv.CakeType,
		&rv.Rating,
		&rv.Review,
		&rv.Avatar,
		&rv.IsApproved,
		&rv.IsFeatured,
		&rv.CreatedAt,
		&rv.UpdatedAt,
	)

	return rv, err
}
