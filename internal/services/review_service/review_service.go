package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"sweetcrumb/internal/domain/models"
	"sweetcrumb/internal/lib/logger/sl"
	"sweetcrumb/internal/lib/sanitize"
	"sweetcrumb/internal/repository"
	"sweetcrumb/internal/storage"
	"sweetcrumb/internal/transport/http/dto"

	"github.com/google/uuid"
)

type ReviewService struct {
	log  *slog.Logger
	repo repository.ReviewRepository
}

func NewReviewService(log *slog.Logger, repo repository.ReviewRepository) *ReviewService {
	return &ReviewService{
		log:  log,
		repo: repo,
	}
}

// SubmitReview stores a customer review from the public form. Only the
// sanitized projection is persisted and the review waits for approval.
func (s *ReviewService) SubmitReview(ctx context.Context, input map[string]any) (models.Review, error) {
	const op = "review_service.SubmitReview"

	log := s.log.With(
		slog.String("op", op),
	)

	res := sanitize.ValidateReviewData(input)
	if !res.Valid {
		log.Info("review rejected", slog.Int("errors", len(res.Errors)))
		return models.Review{}, models.NewValidationError("%s", strings.Join(res.Errors, ", "))
	}

	review := models.Review{
		Name:     res.Sanitized.Name,
		Email:    res.Sanitized.Email,
		CakeType: res.Sanitized.CakeType,
		Rating:   res.Sanitized.Rating,
		Review:   res.Sanitized.Review,
	}

	id, err := s.repo.CreateReview(ctx, review)
	if err != nil {
		log.Error("failed to save review", sl.Err(err))
		return models.Review{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("review submitted", slog.String("review_id", id.String()), slog.Int("rating", review.Rating))

	return s.repo.GetReviewByID(ctx, id)
}

// UpdateReview is the moderation edit. Ratings outside 1..5 are clamped.
func (s *ReviewService) UpdateReview(ctx context.Context, id uuid.UUID, req dto.UpdateReviewRequest) (models.Review, error) {
	const op = "review_service.UpdateReview"

	log := s.log.With(
		slog.String("op", op),
		slog.String("review_id", id.String()),
	)

	existing, err := s.repo.GetReviewByID(ctx, id)
	if err != nil {
		return models.Review{}, fmt.Errorf("%s: %w", op, err)
	}

	updates := make(map[string]interface{})

	if req.Name != nil {
		name := sanitize.String(*req.Name)
		if name == "" {
			return models.Review{}, models.NewValidationError("name cannot be empty")
		}
		if len([]rune(name)) > sanitize.MaxReviewNameLength {
			return models.Review{}, models.NewValidationError("Name must be less than %d characters", sanitize.MaxReviewNameLength)
		}
		updates["name"] = name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !sanitize.IsValidEmail(email) {
			return models.Review{}, models.NewValidationError("Invalid email format")
		}
		updates["email"] = email
	}
	if req.CakeType != nil {
		cakeType := sanitize.String(*req.CakeType)
		if err := models.CheckLength("Cake type", cakeType, sanitize.MaxCakeTypeLength); err != nil {
			return models.Review{}, err
		}
		updates["cake_type"] = cakeType
	}
	if req.Rating != nil {
		updates["rating"] = models.ClampRating(*req.Rating)
	}
	if req.Review != nil {
		text := sanitize.String(*req.Review)
		if text == "" {
			return models.Review{}, models.NewValidationError("review cannot be empty")
		}
		if len([]rune(text)) > sanitize.MaxReviewTextLength {
			return models.Review{}, models.NewValidationError("Review must be less than %d characters", sanitize.MaxReviewTextLength)
		}
		updates["review"] = text
	}
	if req.IsApproved != nil {
		updates["is_approved"] = *req.IsApproved
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}

	if len(updates) == 0 {
		return existing, nil
	}

	if err := s.repo.UpdateReviewFields(ctx, id, updates); err != nil {
		log.Error("failed to update review", sl.Err(err))
		return models.Review{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("review updated", slog.Int("fields", len(updates)))

	return s.repo.GetReviewByID(ctx, id)
}

// GetReview hides reviews awaiting approval from the public.
func (s *ReviewService) GetReview(ctx context.Context, id uuid.UUID, admin bool) (models.Review, error) {
	const op = "review_service.GetReview"

	review, err := s.repo.GetReviewByID(ctx, id)
	if err != nil {
		return models.Review{}, fmt.Errorf("%s: %w", op, err)
	}

	if !admin && !review.IsApproved {
		return models.Review{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return review, nil
}

func (s *ReviewService) ListReviews(ctx context.Context, admin, featuredOnly bool) ([]models.Review, error) {
	const op = "review_service.ListReviews"

	reviews, err := s.repo.GetReviews(ctx, models.ReviewFilter{
		PublicOnly:   !admin,
		FeaturedOnly: featuredOnly,
	})
	if err != nil {
		s.log.Error("failed to list reviews", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return reviews, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, id uuid.UUID) error {
	const op = "review_service.DeleteReview"

	if err := s.repo.DeleteReview(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("review deleted", slog.String("op", op), slog.String("review_id", id.String()))

	return nil
}
