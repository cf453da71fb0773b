package services

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"strings"

	"sweetcrumb/internal/domain/models"
	"sweetcrumb/internal/lib/logger/sl"
	"sweetcrumb/internal/lib/sanitize"
	"sweetcrumb/internal/repository"
	"sweetcrumb/internal/services/reorder"
	"sweetcrumb/internal/storage"
	"sweetcrumb/internal/transport/http/dto"

	"github.com/google/uuid"
)

const mediaFolder = "reels"

type MediaService interface {
	Upload(ctx context.Context, file *multipart.FileHeader, folder string) (models.UploadResult, error)
	Delete(ctx context.Context, publicIDs ...string)
}

type ReelService struct {
	log   *slog.Logger
	repo  repository.ReelRepository
	media MediaService
}

func NewReelService(log *slog.Logger, repo repository.ReelRepository, media MediaService) *ReelService {
	return &ReelService{
		log:   log,
		repo:  repo,
		media: media,
	}
}

func (s *ReelService) CreateReel(ctx context.Context, req dto.CreateReelRequest) (models.Reel, error) {
	const op = "reel_service.CreateReel"

	log := s.log.With(
		slog.String("op", op),
	)

	videoURL := strings.TrimSpace(req.VideoURL)
	if err := sanitize.ValidateRequired(map[string]any{
		"videoUrl":  videoURL,
		"thumbnail": req.Thumbnail,
	}, "videoUrl", "thumbnail"); err != nil {
		return models.Reel{}, err
	}
	if !sanitize.IsValidURL(videoURL) {
		return models.Reel{}, models.NewValidationError("Invalid video URL")
	}

	reel := models.Reel{
		VideoURL: videoURL,
		Caption:  sanitize.String(req.Caption),
		IsActive: true,
	}
	if err := models.CheckLength("Caption", reel.Caption, models.MaxReelCaptionLength); err != nil {
		return models.Reel{}, err
	}
	if req.IsActive != nil {
		reel.IsActive = *req.IsActive
	}

	if req.Order != nil {
		if *req.Order < 0 {
			return models.Reel{}, models.NewValidationError("order must be zero or greater")
		}
		reel.Order = *req.Order
	} else {
		next, err := s.repo.NextOrder(ctx)
		if err != nil {
			return models.Reel{}, fmt.Errorf("%s: %w", op, err)
		}
		reel.Order = next
	}

	res, err := s.media.Upload(ctx, req.Thumbnail, mediaFolder)
	if err != nil {
		return models.Reel{}, fmt.Errorf("%s: %w", op, err)
	}
	reel.ThumbnailURL = res.URL
	reel.ThumbnailPublicID = res.PublicID

	id, err := s.repo.CreateReel(ctx, reel)
	if err != nil {
		log.Error("failed to create reel", sl.Err(err))
		s.media.Delete(ctx, res.PublicID)

		return models.Reel{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("reel created", slog.String("reel_id", id.String()), slog.Int("order", reel.Order))

	return s.repo.GetReelByID(ctx, id)
}

// UpdateReel applies a partial update. A changed order swaps with whichever
// reel holds the target.
func (s *ReelService) UpdateReel(ctx context.Context, id uuid.UUID, req dto.UpdateReelRequest) (dto.ReelUpdateResponse, error) {
	const op = "reel_service.UpdateReel"

	log := s.log.With(
		slog.String("op", op),
		slog.String("reel_id", id.String()),
	)

	existing, err := s.repo.GetReelByID(ctx, id)
	if err != nil {
		return dto.ReelUpdateResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	updates := make(map[string]interface{})

	if req.VideoURL != nil {
		videoURL := strings.TrimSpace(*req.VideoURL)
		if !sanitize.IsValidURL(videoURL) {
			return dto.ReelUpdateResponse{}, models.NewValidationError("Invalid video URL")
		}
		updates["video_url"] = videoURL
	}
	if req.Caption != nil {
		caption := sanitize.String(*req.Caption)
		if err := models.CheckLength("Caption", caption, models.MaxReelCaptionLength); err != nil {
			return dto.ReelUpdateResponse{}, err
		}
		updates["caption"] = caption
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	plan, err := reorder.Make(ctx, existing.Order, req.Order, func(ctx context.Context, target int) (reorder.Counterpart, bool, error) {
		other, found, err := s.repo.FindByOrder(ctx, target, id)
		if err != nil || !found {
			return reorder.Counterpart{}, found, err
		}

		return reorder.Counterpart{ID: other.ID, Label: other.Caption}, true, nil
	})
	if err != nil {
		return dto.ReelUpdateResponse{}, fmt.Errorf("%s: %w", op, err)
	}
	if plan.Requested {
		updates["display_order"] = plan.Target
	}

	var replaced models.UploadResult
	if req.Thumbnail != nil {
		replaced, err = s.media.Upload(ctx, req.Thumbnail, mediaFolder)
		if err != nil {
			return dto.ReelUpdateResponse{}, fmt.Errorf("%s: %w", op, err)
		}
		updates["thumbnail_url"] = replaced.URL
		updates["thumbnail_public_id"] = replaced.PublicID
	}

	if len(updates) == 0 {
		return dto.ReelUpdateResponse{Item: existing}, nil
	}

	if err := s.repo.UpdateReel(ctx, id, updates, plan.Swap); err != nil {
		log.Error("failed to update reel", sl.Err(err))
		if replaced.PublicID != "" {
			s.media.Delete(ctx, replaced.PublicID)
		}

		return dto.ReelUpdateResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	if replaced.PublicID != "" && existing.ThumbnailPublicID != "" {
		s.media.Delete(ctx, existing.ThumbnailPublicID)
	}

	updated, err := s.repo.GetReelByID(ctx, id)
	if err != nil {
		return dto.ReelUpdateResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	return dto.ReelUpdateResponse{
		Item:        updated,
		SwappedWith: plan.SwappedWith,
	}, nil
}

func (s *ReelService) GetReel(ctx context.Context, id uuid.UUID, admin bool) (models.Reel, error) {
	const op = "reel_service.GetReel"

	reel, err := s.repo.GetReelByID(ctx, id)
	if err != nil {
		return models.Reel{}, fmt.Errorf("%s: %w", op, err)
	}

	if !admin && !reel.IsActive {
		return models.Reel{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return reel, nil
}

func (s *ReelService) ListReels(ctx context.Context, admin bool) ([]models.Reel, error) {
	const op = "reel_service.ListReels"

	reels, err := s.repo.GetReels(ctx, !admin)
	if err != nil {
		s.log.Error("failed to list reels", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return reels, nil
}

func (s *ReelService) DeleteReel(ctx context.Context, id uuid.UUID) error {
	const op = "reel_service.DeleteReel"

	reel, err := s.repo.GetReelByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.DeleteReel(ctx, id); err != nil {
		s.log.Error("failed to delete reel", slog.String("op", op), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if reel.ThumbnailPublicID != "" {
		s.media.Delete(ctx, reel.ThumbnailPublicID)
	}

	return nil
}
