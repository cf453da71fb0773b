package services

import (
	"context"
	"errors"
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
	"github.com/shopspring/decimal"
)

const (
	MaxNameLength = 100

	mediaFolder = "menu"
)

type MediaService interface {
	Upload(ctx context.Context, file *multipart.FileHeader, folder string) (models.UploadResult, error)
	Delete(ctx context.Context, publicIDs ...string)
}

// CategoryLookup resolves the optional category reference of an item.
type CategoryLookup interface {
	GetCategoryByID(ctx context.Context, id uuid.UUID) (models.Category, error)
}

type MenuService struct {
	log        *slog.Logger
	repo       repository.MenuRepository
	categories CategoryLookup
	media      MediaService
}

func NewMenuService(log *slog.Logger, repo repository.MenuRepository, categories CategoryLookup, media MediaService) *MenuService {
	return &MenuService{
		log:        log,
		repo:       repo,
		categories: categories,
		media:      media,
	}
}

func (s *MenuService) CreateMenuItem(ctx context.Context, req dto.CreateMenuItemRequest) (dto.MenuItemResponse, error) {
	const op = "menu_service.CreateMenuItem"

	log := s.log.With(
		slog.String("op", op),
	)

	name := sanitize.String(req.Name)
	if err := sanitize.ValidateRequired(map[string]any{
		"name":  name,
		"price": req.Price,
	}, "name", "price"); err != nil {
		return dto.MenuItemResponse{}, err
	}
	if len([]rune(name)) > MaxNameLength {
		return dto.MenuItemResponse{}, models.NewValidationError("Name must be less than %d characters", MaxNameLength)
	}

	unit, err := models.ParsePriceUnit(req.Unit)
	if err != nil {
		return dto.MenuItemResponse{}, models.NewValidationError("%s", err.Error())
	}

	item := models.MenuItem{
		Name:        name,
		Description: sanitize.String(req.Description),
		Badge:       sanitize.String(req.Badge),
		Price:       *req.Price,
		Unit:        unit,
		IsActive:    true,
	}
	if err := models.CheckLength("Badge", item.Badge, models.MaxBadgeLength); err != nil {
		return dto.MenuItemResponse{}, err
	}

	if req.DiscountPrice != nil && !req.DiscountPrice.IsZero() {
		item.DiscountPrice = decimal.NewNullDecimal(*req.DiscountPrice)
	}
	if err := models.ValidatePrice(item.Price, item.DiscountPrice); err != nil {
		return dto.MenuItemResponse{}, err
	}

	if req.CategoryID != nil {
		if err := s.checkCategory(ctx, *req.CategoryID); err != nil {
			return dto.MenuItemResponse{}, err
		}
		item.CategoryID = uuid.NullUUID{UUID: *req.CategoryID, Valid: true}
	}
	if req.Order != nil {
		if *req.Order < 0 {
			return dto.MenuItemResponse{}, models.NewValidationError("order must be zero or greater")
		}
		item.Order = *req.Order
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if req.Image != nil {
		res, err := s.media.Upload(ctx, req.Image, mediaFolder)
		if err != nil {
			return dto.MenuItemResponse{}, fmt.Errorf("%s: %w", op, err)
		}
		item.ImageURL = res.URL
		item.ImagePublicID = res.PublicID
	}

	id, err := s.repo.CreateMenuItem(ctx, item)
	if err != nil {
		log.Error("failed to create menu item", sl.Err(err))
		if item.ImagePublicID != "" {
			s.media.Delete(ctx, item.ImagePublicID)
		}

		return dto.MenuItemResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("menu item created", slog.String("item_id", id.String()))

	return s.get(ctx, op, id)
}

func (s *MenuService) UpdateMenuItem(ctx context.Context, id uuid.UUID, req dto.UpdateMenuItemRequest) (dto.MenuItemResponse, error) {
	const op = "menu_service.UpdateMenuItem"

	log := s.log.With(
		slog.String("op", op),
		slog.String("item_id", id.String()),
	)

	existing, err := s.repo.GetMenuItemByID(ctx, id)
	if err != nil {
		return dto.MenuItemResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	updates := make(map[string]interface{})

	if req.Name != nil {
		name := sanitize.String(*req.Name)
		if name == "" {
			return dto.MenuItemResponse{}, models.NewValidationError("name cannot be empty")
		}
		if len([]rune(name)) > MaxNameLength {
			return dto.MenuItemResponse{}, models.NewValidationError("Name must be less than %d characters", MaxNameLength)
		}
		updates["name"] = name
	}
	if req.Description != nil {
		updates["description"] = sanitize.String(*req.Description)
	}
	if req.Badge != nil {
		badge := sanitize.String(*req.Badge)
		if err := models.CheckLength("Badge", badge, models.MaxBadgeLength); err != nil {
			return dto.MenuItemResponse{}, err
		}
		updates["badge"] = badge
	}

	price, discount := existing.Price, existing.DiscountPrice
	if req.Price != nil {
		price = *req.Price
		updates["price"] = price
	}
	if req.DiscountPrice != nil {
		if req.DiscountPrice.IsZero() {
			discount = decimal.NullDecimal{}
			updates["discount_price"] = nil
		} else {
			discount = decimal.NewNullDecimal(*req.DiscountPrice)
			updates["discount_price"] = *req.DiscountPrice
		}
	}
	if req.Price != nil || req.DiscountPrice != nil {
		if err := models.ValidatePrice(price, discount); err != nil {
			return dto.MenuItemResponse{}, err
		}
	}

	if req.Unit != nil {
		unit, err := models.ParsePriceUnit(*req.Unit)
		if err != nil {
			return dto.MenuItemResponse{}, models.NewValidationError("%s", err.Error())
		}
		updates["unit"] = string(unit)
	}
	if req.ClearCategory {
		updates["category_id"] = nil
	} else if req.CategoryID != nil {
		if err := s.checkCategory(ctx, *req.CategoryID); err != nil {
			return dto.MenuItemResponse{}, err
		}
		updates["category_id"] = *req.CategoryID
	}
	if req.Order != nil {
		if *req.Order < 0 {
			return dto.MenuItemResponse{}, models.NewValidationError("order must be zero or greater")
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
			return dto.MenuItemResponse{}, fmt.Errorf("%s: %w", op, err)
		}
		updates["image_url"] = replaced.URL
		updates["image_public_id"] = replaced.PublicID
	}

	if len(updates) == 0 {
		return dto.NewMenuItemResponse(existing), nil
	}

	if err := s.repo.UpdateMenuItemFields(ctx, id, updates); err != nil {
		log.Error("failed to update menu item", sl.Err(err))
		if replaced.PublicID != "" {
			s.media.Delete(ctx, replaced.PublicID)
		}

		return dto.MenuItemResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	if replaced.PublicID != "" && existing.ImagePublicID != "" {
		s.media.Delete(ctx, existing.ImagePublicID)
	}

	return s.get(ctx, op, id)
}

func (s *MenuService) GetMenuItem(ctx context.Context, id uuid.UUID, admin bool) (dto.MenuItemResponse, error) {
	const op = "menu_service.GetMenuItem"

	item, err := s.repo.GetMenuItemByID(ctx, id)
	if err != nil {
		return dto.MenuItemResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	if !admin && !item.IsActive {
		return dto.MenuItemResponse{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return dto.NewMenuItemResponse(item), nil
}

// ListMenuItems optionally narrows to one category.
func (s *MenuService) ListMenuItems(ctx context.Context, admin bool, categoryID uuid.NullUUID) ([]dto.MenuItemResponse, error) {
	const op = "menu_service.ListMenuItems"

	items, err := s.repo.GetMenuItems(ctx, !admin, categoryID)
	if err != nil {
		s.log.Error("failed to list menu", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	res := make([]dto.MenuItemResponse, 0, len(items))
	for _, item := range items {
		res = append(res, dto.NewMenuItemResponse(item))
	}

	return res, nil
}

func (s *MenuService) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	const op = "menu_service.DeleteMenuItem"

	item, err := s.repo.GetMenuItemByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.DeleteMenuItem(ctx, id); err != nil {
		s.log.Error("failed to delete menu item", slog.String("op", op), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if item.ImagePublicID != "" {
		s.media.Delete(ctx, item.ImagePublicID)
	}

	return nil
}

func (s *MenuService) get(ctx context.Context, op string, id uuid.UUID) (dto.MenuItemResponse, error) {
	item, err := s.repo.GetMenuItemByID(ctx, id)
	if err != nil {
		return dto.MenuItemResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	return dto.NewMenuItemResponse(item), nil
}

func (s *MenuService) checkCategory(ctx context.Context, id uuid.UUID) error {
	_, err := s.categories.GetCategoryByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return models.NewValidationError("Category not found")
	}

	return err
}
