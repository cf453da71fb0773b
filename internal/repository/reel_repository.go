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

const reelTable = "reels"

var reelColumns = []string{
	"id", "video_url", "thumbnail_url", "thumbnail_public_id", "caption",
	"display_order", "is_active", "created_at", "updated_at",
}

var reelUpdatable = map[string]bool{
	"video_url":           true,
	"thumbnail_url":       true,
	"thumbnail_public_id": true,
	"caption":             true,
	"display_order":       true,
	"is_active":           true,
}

type ReelRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewReelRepository(db *pgxpool.Pool) *ReelRepo {
	return &ReelRepo{
		db: db,
		sb: newBuilder(),
	}
}

func (r *ReelRepo) CreateReel(ctx context.Context, reel models.Reel) (uuid.UUID, error) {
	const op = "repository.ReelRepo.CreateReel"

	builder := r.sb.Insert(reelTable).
		Columns(
			"video_url",
			"thumbnail_url",
			"thumbnail_public_id",
			"caption",
			"display_order",
			"is_active",
		).
		Values(
			reel.VideoURL,
			reel.ThumbnailURL,
			reel.ThumbnailPublicID,
			reel.Caption,
			reel.Order,
			reel.IsActive,
		)

	return insertReturningID(ctx, r.db, op, builder)
}

// UpdateReel works like RateListRepo.UpdateEntry with a single global order
// scope.
func (r *ReelRepo) UpdateReel(ctx context.Context, id uuid.UUID, updates map[string]interface{}, swap *models.OrderSwap) error {
	const op = "repository.ReelRepo.UpdateReel"

	if swap == nil {
		return updateFields(ctx, r.db, r.sb, op, reelTable, id, reelUpdatable, updates)
	}

	return r.db.BeginFunc(ctx, func(tx pgx.Tx) error {
		if err := setOrder(ctx, tx, r.sb, op, reelTable, swap.CounterpartID, swap.NewOrder); err != nil {
			return err
		}

		return updateFields(ctx, tx, r.sb, op, reelTable, id, reelUpdatable, updates)
	})
}

func (r *ReelRepo) DeleteReel(ctx context.Context, id uuid.UUID) error {
	const op = "repository.ReelRepo.DeleteReel"

	return deleteByID(ctx, r.db, r.sb, op, reelTable, id)
}

func (r *ReelRepo) GetReelByID(ctx context.Context, id uuid.UUID) (models.Reel, error) {
	const op = "repository.ReelRepo.GetReelByID"

	query, args, err := r.sb.Select(reelColumns...).
		From(reelTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Reel{}, fmt.Errorf("%s: %w", op, err)
	}

	reel, err := scanReel(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Reel{}, mapErr(op, err)
	}

	return reel, nil
}

func (r *ReelRepo) FindByOrder(ctx context.Context, order int, excludeID uuid.UUID) (models.Reel, bool, error) {
	const op = "repository.ReelRepo.FindByOrder"

	query, args, err := r.sb.Select(reelColumns...).
		From(reelTable).
		Where(sq.Eq{"display_order": order}).
		Where(sq.NotEq{"id": excludeID}).
		OrderBy("created_at ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return models.Reel{}, false, fmt.Errorf("%s: %w", op, err)
	}

	reel, err := scanReel(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Reel{}, false, nil
	}
	if err != nil {
		return models.Reel{}, false, fmt.Errorf("%s: %w", op, err)
	}

	return reel, true, nil
}

func (r *ReelRepo) NextOrder(ctx context.Context) (int, error) {
	const op = "repository.ReelRepo.NextOrder"

	return nextOrder(ctx, r.db, r.sb, op, reelTable, nil)
}

func (r *ReelRepo) GetReels(ctx context.Context, activeOnly bool) ([]models.Reel, error) {
	const op = "repository.ReelRepo.GetReels"

	builder := r.sb.Select(reelColumns...).From(reelTable)
	if activeOnly {
		builder = builder.Where(sq.Eq{"is_active": true})
	}

	query, args, err := builder.OrderBy("display_order ASC", "created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	reels := make([]models.Reel, 0)
	for rows.Next() {
		reel, err := scanReel(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		reels = append(reels, reel)
	}

	return reels, rows.Err()
}

func scanReel(row pgx.Row) (models.Reel, error) {
	var reel models.Reel

	err := row.Scan(
		&reel.ID,
		&reel.VideoURL,
		&reel.ThumbnailURL,
		&reel.ThumbnailPublicID,
		&reel.Caption,
		&reel.Order,
		&reel.IsActive,
		&reel.CreatedAt,
		&reel.UpdatedAt,
	)

	return reel, err
}
