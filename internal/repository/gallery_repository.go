package repository

import (
	"context"
	"fmt"

	"sweetcrumb/internal/domain/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

const galleryTable = "gallery_images"

var galleryColumns = []string{
	"id", "image_url", "public_id", "caption", "alt_text",
	"display_order", "is_active", "created_at", "updated_at",
}

var galleryUpdatable = map[string]bool{
	"image_url":     true,
	"public_id":     true,
	"caption":       true,
	"alt_text":      true,
	"display_order": true,
	"is_active":     true,
}

type GalleryRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewGalleryRepository(db *pgxpool.Pool) *GalleryRepo {
	return &GalleryRepo{
		db: db,
		sb: newBuilder(),
	}
}

// CreateImage stores an already uploaded image and returns its id.
func (r *GalleryRepo) CreateImage(ctx context.Context, image models.GalleryImage) (uuid.UUID, error) {
	const op = "repository.GalleryRepo.CreateImage"

	builder := r.sb.Insert(galleryTable).
		Columns(
			"image_url",
			"public_id",
			"caption",
			"alt_text",
			"display_order",
			"is_active",
		).
		Values(
			image.ImageURL,
			image.PublicID,
			image.Caption,
			image.AltText,
			image.Order,
			image.IsActive,
		)

	return insertReturningID(ctx, r.db, op, builder)
}

func (r *GalleryRepo) UpdateImageFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	const op = "repository.GalleryRepo.UpdateImageFields"

	return updateFields(ctx, r.db, r.sb, op, galleryTable, id, galleryUpdatable, updates)
}

func (r *GalleryRepo) DeleteImage(ctx context.Context, id uuid.UUID) error {
	const op = "repository.GalleryRepo.DeleteImage"

	return deleteByID(ctx, r.db, r.sb, op, galleryTable, id)
}

func (r *GalleryRepo) GetImageByID(ctx context.Context, id uuid.UUID) (models.GalleryImage, error) {
	const op = "repository.GalleryRepo.GetImageByID"

	query, args, err := r.sb.Select(galleryColumns...).
		From(galleryTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.GalleryImage{}, fmt.Errorf("%s: %w", op, err)
	}

	image, err := scanGalleryImage(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.GalleryImage{}, mapErr(op, err)
	}

	return image, nil
}

func (r *GalleryRepo) GetImages(ctx context.Context, activeOnly bool) ([]models.GalleryImage, error) {
	const op = "repository.GalleryRepo.GetImages"

	queryBuilder := r.sb.Select(galleryColumns...).From(galleryTable)
	if activeOnly {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := queryBuilder.OrderBy("display_order ASC", "created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	images := make([]models.GalleryImage, 0)
	for rows.Next() {
		image, err := scanGalleryImage(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		images = append(images, image)
	}

	return images, rows.Err()
}

func scanGalleryImage(row pgx.Row) (models.GalleryImage, error) {
	var image models.GalleryImage

	err := row.Scan(
		&image.ID,
		&image.ImageURL,
		&image.PublicID,
		&image.Caption,
		&image.AltText,
		&image.Order,
		&image.IsActive,
		&image.CreatedAt,
		&image.UpdatedAt,
	)

	return image, err
}
