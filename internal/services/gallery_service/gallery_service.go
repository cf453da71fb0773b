package services

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"

	"sweetcrumb/internal/domain/models"
	"sweetcrumb/internal/lib/logger/sl"
	"sweetcrumb/internal/lib/sanitize"
	"sweetcrumb/internal/repository"
	"sweetcrumb/internal/storage"
	"sweetcrumb/internal/transport/http/dto"

	"github.com/google/uuid"
)

const mediaFolder = "gallery"

type MediaService interface {
	Upload(ctx context.Context, file *multipart.FileHeader, folder string) (models.UploadResult, error)
	Delete(ctx context.Context, publicIDs ...string)
}

type GalleryService struct {
	log   *slog.Logger
	repo  repository.GalleryRepository
	media MediaService
}

func NewGalleryService(log *slog.Logger, repo repository.GalleryRepository, media MediaService) *GalleryService {
	return &GalleryService{
		log:   log,
		repo:  repo,
		media: media,
	}
}

func (s *GalleryService) CreateImage(ctx context.Context, req dto.CreateGalleryImageRequest) (models.GalleryImage, error) {
	const op = "service.GalleryService.CreateImage"

	log := s.log.With(
		slog.String("op", op),
	)

	if req.Image == nil {
		return models.GalleryImage{}, models.NewValidationError("Image is required")
	}

	image := models.GalleryImage{
		Caption:  sanitize.String(req.Caption),
		AltText:  sanitize.String(req.AltText),
		IsActive: true,
	}
	if err := models.CheckLengths(
		models.LengthCheck{Field: "Caption", Value: image.Caption, Max: models.MaxCaptionLength},
		models.LengthCheck{Field: "Alt text", Value: image.AltText, Max: models.MaxAltTextLength},
	); err != nil {
		return models.GalleryImage{}, err
	}
	if req.Order != nil {
		if *req.Order < 0 {
			return models.GalleryImage{}, models.NewValidationError("order must be zero or greater")
		}
		image.Order = *req.Order
	}
	if req.IsActive != nil {
		image.IsActive = *req.IsActive
	}

	res, err := s.media.Upload(ctx, req.Image, mediaFolder)
	if err != nil {
		return models.GalleryImage{}, fmt.Errorf("%s: %w", op, err)
	}
	image.ImageURL = res.URL
	image.PublicID = res.PublicID

	id, err := s.repo.CreateImage(ctx, image)
	if err != nil {
		log.Error("failed to create gallery image", sl.Err(err))
		s.media.Delete(ctx, res.PublicID)

		return models.GalleryImage{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("gallery image created", slog.String("id", id.String()))

	return s.repo.GetImageByID(ctx, id)
}

// UpdateImage may swap the stored file. The previous file is removed from
// the host once the record points at the new one.
func (s *GalleryService) UpdateImage(ctx context.Context, id uuid.UUID, req dto.UpdateGalleryImageRequest) (models.GalleryImage, error) {
	const op = "service.GalleryService.UpdateImage"

	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_id", id.String()),
	)

	existing, err := s.repo.GetImageByID(ctx, id)
	if err != nil {
		return models.GalleryImage{}, fmt.Errorf("%s: %w", op, err)
	}

	updates := make(map[string]interface{})

	if req.Caption != nil {
		caption := sanitize.String(*req.Caption)
		if err := models.CheckLength("Caption", caption, models.MaxCaptionLength); err != nil {
			return models.GalleryImage{}, err
		}
		updates["caption"] = caption
	}
	if req.AltText != nil {
		altText := sanitize.String(*req.AltText)
		if err := models.CheckLength("Alt text", altText, models.MaxAltTextLength); err != nil {
			return models.GalleryImage{}, err
		}
		updates["alt_text"] = altText
	}
	if req.Order != nil {
		if *req.Order < 0 {
			return models.GalleryImage{}, models.NewValidationError("order must be zero or greater")
		}
		updates["display_order"] = *req.Order
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	var replaced models.UploadResult
	if req.Image != nil {
		replaced, err = s.media.Upload(ctx, req.Image, mediaFolder)
		if err != nil {
			return models.GalleryImage{}, fmt.Errorf("%s: %w", op, err)
		}
		updates["image_url"] = replaced.URL
		updates["public_id"] = replaced.PublicID
	}

	if len(updates) == 0 {
		return existing, nil
	}

	if err := s.repo.UpdateImageFields(ctx, id, updates); err != nil {
		log.Error("failed to update gallery image", sl.Err(err))
		if replaced.PublicID != "" {
			s.media.Delete(ctx, replaced.PublicID)
		}

		return models.GalleryImage{}, fmt.Errorf("%s: %w", op, err)
	}

	if replaced.PublicID != "" && existing.PublicID != "" {
		s.media.Delete(ctx, existing.PublicID)
	}

	return s.repo.GetImageByID(ctx, id)
}

func (s *GalleryService) GetImage(ctx context.Context, id uuid.UUID, admin bool) (models.GalleryImage, error) {
	const op = "service.GalleryService.GetImage"

	image, err := s.repo.GetImageByID(ctx, id)
	if err != nil {
		return models.GalleryImage{}, fmt.Errorf("%s: %w", op, err)
	}

	if !admin && !image.IsActive {
		return models.GalleryImage{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return image, nil
}

func (s *GalleryService) ListImages(ctx context.Context, admin bool) ([]models.GalleryImage, error) {
	const op = "service.GalleryService.ListImages"

	images, err := s.repo.GetImages(ctx, !admin)
	if err != nil {
		s.log.Error("failed to list gallery", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return images, nil
}

func (s *GalleryService) DeleteImage(ctx context.Context, id uuid.UUID) error {
	const op = "service.GalleryService.DeleteImage"

	image, err := s.repo.GetImageByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.DeleteImage(ctx, id); err != nil {
		s.log.Error("failed to delete gallery image", slog.String("op", op), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if image.PublicID != "" {
		s.media.Delete(ctx, image.PublicID)
	}

	return nil
}
