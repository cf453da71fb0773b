package services

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"

	"sweetcrumb/internal/domain/models"
	"sweetcrumb/internal/lib/logger/sl"
	"sweetcrumb/internal/metrics"
	"sweetcrumb/internal/storage/mediahost"
)

// MediaService fronts the configured media host. Deletion is best effort:
// a failed remote delete is logged and counted, never returned.
type MediaService struct {
	log  *slog.Logger
	host mediahost.MediaHost
}

func NewMediaService(log *slog.Logger, host mediahost.MediaHost) *MediaService {
	return &MediaService{
		log:  log,
		host: host,
	}
}

func (s *MediaService) Upload(ctx context.Context, file *multipart.FileHeader, folder string) (models.UploadResult, error) {
	const op = "media_service.Upload"

	log := s.log.With(
		slog.String("op", op),
		slog.String("folder", folder),
	)

	if file == nil {
		return models.UploadResult{}, models.NewValidationError("image file is required")
	}

	log.Info("upload media", slog.String("filename", file.Filename), slog.Int64("size", file.Size))

	res, err := s.host.Upload(ctx, file, folder)
	if err != nil {
		log.Error("failed to upload file", sl.Err(err))

		return models.UploadResult{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("media uploaded", slog.String("public_id", res.PublicID))

	return res, nil
}

func (s *MediaService) Delete(ctx context.Context, publicIDs ...string) {
	const op = "media_service.Delete"

	log := s.log.With(
		slog.String("op", op),
	)

	for _, id := range publicIDs {
		if id == "" {
			continue
		}

		if err := s.host.Delete(ctx, id); err != nil {
			metrics.MediaDeleteFailures.Inc()
			log.Warn("failed to delete remote media", slog.String("public_id", id), sl.Err(err))
			continue
		}

		log.Debug("remote media deleted", slog.String("public_id", id))
	}
}
