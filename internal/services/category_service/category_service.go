package services

import (
	"context"
	"fmt"
	"log/slog"

	"sweetcrumb/internal/domain/models"
	"sweetcrumb/internal/lib/logger/sl"
	"sweetcrumb/internal/lib/sanitize"
	"sweetcrumb/internal/repository"
	"sweetcrumb/internal/storage"
	"sweetcrumb/internal/transport/http/dto"

	"github.com/google/uuid"
)

const (
	MaxNameLength        = 50
	MaxDescriptionLength = 200
)

type CategoryService struct {
	log  *slog.Logger
	repo repository.CategoryRepository
}

func NewCategoryService(log *slog.Logger, repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{
		log:  log,
		repo: repo,
	}
}

func (s *CategoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (models.Category, error) {
	const op = "category_service.CreateCategory"

	log := s.log.With(
		slog.String("op", op),
	)

	category := models.Category{
		Name:        sanitize.String(req.Name),
		Description: sanitize.String(req.Description),
		IsActive:    true,
	}

	if err := sanitize.ValidateRequired(map[string]any{"name": category.Name}, "name"); err != nil {
		return models.Category{}, err
	}
	if err := checkLengths(category.Name, category.Description); err != nil {
		return models.Category{}, err
	}

	if req.Order != nil {
		if *req.Order < 0 {
			return models.Category{}, models.NewValidationError("order must be zero or greater")
		}
		category.Order = *req.Order
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	id, err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		log.Error("failed to create category", sl.Err(err))
		return models.Category{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("category created", slog.String("category_id", id.String()))

	return s.repo.GetCategoryByID(ctx, id)
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (models.Category, error) {
	const op = "category_service.UpdateCategory"

	log := s.log.With(
		slog.String("op", op),
		slog.String("category_id", id.String()),
	)

	existing, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return models.Category{}, fmt.Errorf("%s: %w", op, err)
	}

	updates := make(map[string]interface{})

	if req.Name != nil {
		name := sanitize.String(*req.Name)
		if name == "" {
			return models.Category{}, models.NewValidationError("name cannot be empty")
		}
		if err := checkLengths(name, ""); err != nil {
			return models.Category{}, err
		}
		updates["name"] = name
	}
	if req.Description != nil {
		description := sanitize.String(*req.Description)
		if err := checkLengths("", description); err != nil {
			return models.Category{}, err
		}
		updates["description"] = description
	}
	if req.Order != nil {
		if *req.Order < 0 {
			return models.Category{}, models.NewValidationError("order must be zero or greater")
		}
		updates["display_order"] = *req.Order
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		return existing, nil
	}

	if err := s.repo.UpdateCategoryFields(ctx, id, updates); err != nil {
		log.Error("failed to update category", sl.Err(err))
		return models.Category{}, fmt.Errorf("%s: %w", op, err)
	}

	return s.repo.GetCategoryByID(ctx, id)
}

// GetCategory hides inactive categories from the public view.
func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID, admin bool) (models.Category, error) {
	const op = "category_service.GetCategory"

	category, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return models.Category{}, fmt.Errorf("%s: %w", op, err)
	}

	if !admin && !category.IsActive {
		return models.Category{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return category, nil
}

func (s *CategoryService) ListCategories(ctx context.Context, admin bool) ([]models.Category, error) {
	const op = "category_service.ListCategories"

	categories, err := s.repo.GetCategories(ctx, !admin)
	if err != nil {
		s.log.Error("failed to list categories", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return categories, nil
}

// DeleteCategory leaves menu items that pointed at it untouched.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	const op = "category_service.DeleteCategory"

	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("category deleted", slog.String("op", op), slog.String("category_id", id.String()))

	return nil
}

func checkLengths(name, description string) error {
	if len([]rune(name)) > MaxNameLength {
		return models.NewValidationError("Name must be less than %d characters", MaxNameLength)
	}
	if len([]rune(description)) > MaxDescriptionLength {
		return models.NewValidationError("Description must be less than %d characters", MaxDescriptionLength)
	}

	return nil
}
