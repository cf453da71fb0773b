package services

import (
	"context"
	"fmt"
	"log/slog"

	"sweetcrumb/internal/domain/models"
	"sweetcrumb/internal/lib/logger/sl"
	"sweetcrumb/internal/lib/sanitize"
	"sweetcrumb/internal/repository"
	"sweetcrumb/internal/services/reorder"
	"sweetcrumb/internal/storage"
	"sweetcrumb/internal/transport/http/dto"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MaxItemNameLength = 100
	MaxCategoryLength = 50
)

type RateListService struct {
	log  *slog.Logger
	repo repository.RateListRepository
}

func NewRateListService(log *slog.Logger, repo repository.RateListRepository) *RateListService {
	return &RateListService{
		log:  log,
		repo: repo,
	}
}

// CreateEntry appends the entry to the end of its category unless an order
// is given.
func (s *RateListService) CreateEntry(ctx context.Context, req dto.CreateRateListRequest) (dto.RateListEntryResponse, error) {
	const op = "rate_list_service.CreateEntry"

	log := s.log.With(
		slog.String("op", op),
	)

	entry := models.RateListEntry{
		Category:    sanitize.String(req.Category),
		ItemName:    sanitize.String(req.ItemName),
		Description: sanitize.String(req.Description),
		IsAvailable: true,
	}

	if err := sanitize.ValidateRequired(map[string]any{
		"category": entry.Category,
		"itemName": entry.ItemName,
		"price":    req.Price,
	}, "category", "itemName", "price"); err != nil {
		return dto.RateListEntryResponse{}, err
	}
	if err := checkLengths(entry.Category, entry.ItemName); err != nil {
		return dto.RateListEntryResponse{}, err
	}

	entry.Price = *req.Price
	if req.DiscountPrice != nil && !req.DiscountPrice.IsZero() {
		entry.DiscountPrice = decimal.NewNullDecimal(*req.DiscountPrice)
	}
	if err := models.ValidatePrice(entry.Price, entry.DiscountPrice); err != nil {
		return dto.RateListEntryResponse{}, err
	}

	unit, err := models.ParsePriceUnit(req.Unit)
	if err != nil {
		return dto.RateListEntryResponse{}, models.NewValidationError("%s", err.Error())
	}
	entry.Unit = unit

	if req.IsAvailable != nil {
		entry.IsAvailable = *req.IsAvailable
	}

	if req.Order != nil {
		if *req.Order < 0 {
			return dto.RateListEntryResponse{}, models.NewValidationError("order must be zero or greater")
		}
		entry.Order = *req.Order
	} else {
		next, err := s.repo.NextOrder(ctx, entry.Category)
		if err != nil {
			log.Error("failed to compute next order", sl.Err(err))
			return dto.RateListEntryResponse{}, fmt.Errorf("%s: %w", op, err)
		}
		entry.Order = next
	}

	id, err := s.repo.CreateEntry(ctx, entry)
	if err != nil {
		log.Error("failed to create entry", sl.Err(err))
		return dto.RateListEntryResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("rate list entry created", slog.String("entry_id", id.String()), slog.Int("order", entry.Order))

	created, err := s.repo.GetEntryByID(ctx, id)
	if err != nil {
		return dto.RateListEntryResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	return dto.NewRateListEntryResponse(created), nil
}

// UpdateEntry applies a partial update. A changed order swaps with the
// entry of the same category holding the target, where the category is the
// one the entry ends up in.
func (s *RateListService) UpdateEntry(ctx context.Context, id uuid.UUID, req dto.UpdateRateListRequest) (dto.RateListUpdateResponse, error) {
	const op = "rate_list_service.UpdateEntry"

	log := s.log.With(
		slog.String("op", op),
		slog.String("entry_id", id.String()),
	)

	existing, err := s.repo.GetEntryByID(ctx, id)
	if err != nil {
		return dto.RateListUpdateResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	updates := make(map[string]interface{})
	category := existing.Category

	if req.Category != nil {
		category = sanitize.String(*req.Category)
		if category == "" {
			return dto.RateListUpdateResponse{}, models.NewValidationError("category cannot be empty")
		}
		updates["category"] = category
	}
	if req.ItemName != nil {
		name := sanitize.String(*req.ItemName)
		if name == "" {
			return dto.RateListUpdateResponse{}, models.NewValidationError("itemName cannot be empty")
		}
		updates["item_name"] = name
	}
	if err := checkLengths(category, stringOr(updates["item_name"])); err != nil {
		return dto.RateListUpdateResponse{}, err
	}
	if req.Description != nil {
		updates["description"] = sanitize.String(*req.Description)
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
			return dto.RateListUpdateResponse{}, err
		}
	}

	if req.Unit != nil {
		unit, err := models.ParsePriceUnit(*req.Unit)
		if err != nil {
			return dto.RateListUpdateResponse{}, models.NewValidationError("%s", err.Error())
		}
		updates["unit"] = string(unit)
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}

	plan, err := reorder.Make(ctx, existing.Order, req.Order, func(ctx context.Context, target int) (reorder.Counterpart, bool, error) {
		other, found, err := s.repo.FindByOrder(ctx, category, target, id)
		if err != nil || !found {
			return reorder.Counterpart{}, found, err
		}

		return reorder.Counterpart{ID: other.ID, Label: other.ItemName}, true, nil
	})
	if err != nil {
		log.Error("failed to plan reorder", sl.Err(err))
		return dto.RateListUpdateResponse{}, fmt.Errorf("%s: %w", op, err)
	}
	if plan.Requested {
		updates["display_order"] = plan.Target
	}

	if len(updates) == 0 {
		return dto.RateListUpdateResponse{Item: dto.NewRateListEntryResponse(existing)}, nil
	}

	if err := s.repo.UpdateEntry(ctx, id, updates, plan.Swap); err != nil {
		log.Error("failed to update entry", sl.Err(err))
		return dto.RateListUpdateResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	if plan.SwappedWith != nil {
		log.Info("entry order swapped",
			slog.String("counterpart_id", plan.SwappedWith.ID.String()),
			slog.Int("order", plan.Target),
		)
	}

	updated, err := s.repo.GetEntryByID(ctx, id)
	if err != nil {
		return dto.RateListUpdateResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	return dto.RateListUpdateResponse{
		Item:        dto.NewRateListEntryResponse(updated),
		SwappedWith: plan.SwappedWith,
	}, nil
}

func (s *RateListService) GetEntry(ctx context.Context, id uuid.UUID, admin bool) (dto.RateListEntryResponse, error) {
	const op = "rate_list_service.GetEntry"

	entry, err := s.repo.GetEntryByID(ctx, id)
	if err != nil {
		return dto.RateListEntryResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	if !admin && !entry.IsAvailable {
		return dto.RateListEntryResponse{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return dto.NewRateListEntryResponse(entry), nil
}

// ListEntries is sorted by category then order. An empty category lists
// every category.
func (s *RateListService) ListEntries(ctx context.Context, admin bool, category string) ([]dto.RateListEntryResponse, error) {
	const op = "rate_list_service.ListEntries"

	entries, err := s.repo.GetEntries(ctx, !admin, sanitize.String(category))
	if err != nil {
		s.log.Error("failed to list entries", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	res := make([]dto.RateListEntryResponse, 0, len(entries))
	for _, entry := range entries {
		res = append(res, dto.NewRateListEntryResponse(entry))
	}

	return res, nil
}

func (s *RateListService) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	const op = "rate_list_service.DeleteEntry"

	if err := s.repo.DeleteEntry(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("rate list entry deleted", slog.String("op", op), slog.String("entry_id", id.String()))

	return nil
}

func checkLengths(category, itemName string) error {
	if len([]rune(category)) > MaxCategoryLength {
		return models.NewValidationError("Category must be less than %d characters", MaxCategoryLength)
	}
	if len([]rune(itemName)) > MaxItemNameLength {
		return models.NewValidationError("Item name must be less than %d characters", MaxItemNameLength)
	}

	return nil
}

func stringOr(v interface{}) string {
	s, _ := v.(string)
	return s
}
