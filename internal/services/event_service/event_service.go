package services

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"strings"
	"time"

	"sweetcrumb/internal/domain/models"
	"sweetcrumb/internal/lib/logger/sl"
	"sweetcrumb/internal/lib/sanitize"
	"sweetcrumb/internal/repository"
	"sweetcrumb/internal/storage"
	"sweetcrumb/internal/transport/http/dto"

	"github.com/google/uuid"
)

const mediaFolder = "events"

type MediaService interface {
	Upload(ctx context.Context, file *multipart.FileHeader, folder string) (models.UploadResult, error)
	Delete(ctx context.Context, publicIDs ...string)
}

type EventService struct {
	log   *slog.Logger
	repo  repository.EventRepository
	media MediaService
}

func NewEventService(log *slog.Logger, repo repository.EventRepository, media MediaService) *EventService {
	return &EventService{
		log:   log,
		repo:  repo,
		media: media,
	}
}

// CreateEvent uploads every image before the record is written. An
// explicit cover is stored with the other images so it can be deleted
// later; without one the first image becomes the cover.
func (s *EventService) CreateEvent(ctx context.Context, req dto.CreateEventRequest) (models.Event, error) {
	const op = "event_service.CreateEvent"

	log := s.log.With(
		slog.String("op", op),
	)

	title := sanitize.String(req.Title)
	venue := sanitize.String(req.Venue)

	if err := sanitize.ValidateRequired(map[string]any{
		"title": title,
		"venue": venue,
		"date":  strings.TrimSpace(req.Date),
	}, "title", "venue", "date"); err != nil {
		return models.Event{}, err
	}

	if err := models.CheckLengths(
		models.LengthCheck{Field: "Title", Value: title, Max: models.MaxEventTitleLength},
		models.LengthCheck{Field: "Venue", Value: venue, Max: models.MaxVenueLength},
	); err != nil {
		return models.Event{}, err
	}

	date, err := ParseDate(req.Date)
	if err != nil {
		return models.Event{}, err
	}

	event := models.Event{
		Title:       title,
		Venue:       venue,
		Date:        date,
		Description: sanitize.String(req.Description),
		Highlights:  sanitize.String(req.Highlights),
		IsActive:    true,
	}

	if req.Order != nil {
		if *req.Order < 0 {
			return models.Event{}, models.NewValidationError("order must be zero or greater")
		}
		event.Order = *req.Order
	}
	if req.IsActive != nil {
		event.IsActive = *req.IsActive
	}

	uploaded, err := s.uploadAll(ctx, req.Images)
	if err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}
	for _, res := range uploaded {
		event.ImageURLs = append(event.ImageURLs, res.URL)
		event.ImagePublicIDs = append(event.ImagePublicIDs, res.PublicID)
	}

	if req.CoverImage != nil {
		cover, err := s.media.Upload(ctx, req.CoverImage, mediaFolder)
		if err != nil {
			s.media.Delete(ctx, event.ImagePublicIDs...)
			return models.Event{}, fmt.Errorf("%s: %w", op, err)
		}
		event.ImageURLs = append(event.ImageURLs, cover.URL)
		event.ImagePublicIDs = append(event.ImagePublicIDs, cover.PublicID)
		event.CoverImage = cover.URL
	} else if len(event.ImageURLs) > 0 {
		event.CoverImage = event.ImageURLs[0]
	}

	id, err := s.repo.CreateEvent(ctx, event)
	if err != nil {
		log.Error("failed to create event", sl.Err(err))
		if len(event.ImagePublicIDs) > 0 {
			s.media.Delete(ctx, event.ImagePublicIDs...)
		}

		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("event created", slog.String("event_id", id.String()), slog.Int("images", len(event.ImageURLs)))

	return s.repo.GetEventByID(ctx, id)
}

// UpdateEvent appends new images and drops removed ones. Removed images are
// deleted from the host only after the record no longer references them.
func (s *EventService) UpdateEvent(ctx context.Context, id uuid.UUID, req dto.UpdateEventRequest) (models.Event, error) {
	const op = "event_service.UpdateEvent"

	log := s.log.With(
		slog.String("op", op),
		slog.String("event_id", id.String()),
	)

	event, err := s.repo.GetEventByID(ctx, id)
	if err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	updates := make(map[string]interface{})

	if req.Title != nil {
		title := sanitize.String(*req.Title)
		if title == "" {
			return models.Event{}, models.NewValidationError("title cannot be empty")
		}
		if err := models.CheckLength("Title", title, models.MaxEventTitleLength); err != nil {
			return models.Event{}, err
		}
		updates["title"] = title
	}
	if req.Venue != nil {
		venue := sanitize.String(*req.Venue)
		if venue == "" {
			return models.Event{}, models.NewValidationError("venue cannot be empty")
		}
		if err := models.CheckLength("Venue", venue, models.MaxVenueLength); err != nil {
			return models.Event{}, err
		}
		updates["venue"] = venue
	}
	if req.Date != nil {
		date, err := ParseDate(*req.Date)
		if err != nil {
			return models.Event{}, err
		}
		updates["event_date"] = date
	}
	if req.Description != nil {
		updates["description"] = sanitize.String(*req.Description)
	}
	if req.Highlights != nil {
		updates["highlights"] = sanitize.String(*req.Highlights)
	}
	if req.Order != nil {
		if *req.Order < 0 {
			return models.Event{}, models.NewValidationError("order must be zero or greater")
		}
		updates["display_order"] = *req.Order
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	var removed []string
	if len(req.RemoveImages) > 0 {
		removed = event.RemoveImages(req.RemoveImages)
	}

	uploaded, err := s.uploadAll(ctx, req.Images)
	if err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}
	var fresh []string
	for _, res := range uploaded {
		event.ImageURLs = append(event.ImageURLs, res.URL)
		event.ImagePublicIDs = append(event.ImagePublicIDs, res.PublicID)
		fresh = append(fresh, res.PublicID)
	}

	if req.CoverImage != nil {
		cover, err := s.media.Upload(ctx, req.CoverImage, mediaFolder)
		if err != nil {
			if len(fresh) > 0 {
				s.media.Delete(ctx, fresh...)
			}
			return models.Event{}, fmt.Errorf("%s: %w", op, err)
		}
		event.ImageURLs = append(event.ImageURLs, cover.URL)
		event.ImagePublicIDs = append(event.ImagePublicIDs, cover.PublicID)
		event.CoverImage = cover.URL
		fresh = append(fresh, cover.PublicID)
	}

	if len(removed) > 0 || len(fresh) > 0 {
		if event.CoverImage == "" && len(event.ImageURLs) > 0 {
			event.CoverImage = event.ImageURLs[0]
		}
		updates["image_urls"] = event.ImageURLs
		updates["image_public_ids"] = event.ImagePublicIDs
		updates["cover_image"] = event.CoverImage
	}

	if len(updates) == 0 {
		return event, nil
	}

	if err := s.repo.UpdateEventFields(ctx, id, updates); err != nil {
		log.Error("failed to update event", sl.Err(err))
		if len(fresh) > 0 {
			s.media.Delete(ctx, fresh...)
		}

		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	if len(removed) > 0 {
		s.media.Delete(ctx, removed...)
	}

	log.Info("event updated", slog.Int("added", len(fresh)), slog.Int("removed", len(removed)))

	return s.repo.GetEventByID(ctx, id)
}

func (s *EventService) GetEvent(ctx context.Context, id uuid.UUID, admin bool) (models.Event, error) {
	const op = "event_service.GetEvent"

	event, err := s.repo.GetEventByID(ctx, id)
	if err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	if !admin && !event.IsActive {
		return models.Event{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return event, nil
}

func (s *EventService) ListEvents(ctx context.Context, admin bool) ([]models.Event, error) {
	const op = "event_service.ListEvents"

	events, err := s.repo.GetEvents(ctx, !admin)
	if err != nil {
		s.log.Error("failed to list events", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return events, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	const op = "event_service.DeleteEvent"

	event, err := s.repo.GetEventByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.DeleteEvent(ctx, id); err != nil {
		s.log.Error("failed to delete event", slog.String("op", op), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if len(event.ImagePublicIDs) > 0 {
		s.media.Delete(ctx, event.ImagePublicIDs...)
	}

	return nil
}

// uploadAll uploads files in order. On the first failure the ones already
// stored are removed again.
func (s *EventService) uploadAll(ctx context.Context, files []*multipart.FileHeader) ([]models.UploadResult, error) {
	results := make([]models.UploadResult, 0, len(files))

	for _, file := range files {
		res, err := s.media.Upload(ctx, file, mediaFolder)
		if err != nil {
			if len(results) > 0 {
				ids := make([]string, 0, len(results))
				for _, r := range results {
					ids = append(ids, r.PublicID)
				}
				s.media.Delete(ctx, ids...)
			}

			return nil, err
		}
		results = append(results, res)
	}

	return results, nil
}

// ParseDate accepts an RFC 3339 timestamp or a bare 2006-01-02 day.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}

	return time.Time{}, models.NewValidationError("Invalid date '%s'", raw)
}
