package dto

import (
	"sweetcrumb/internal/domain/models"

	"github.com/shopspring/decimal"
)

type CreateRateListRequest struct {
	Category      string           `json:"category"`
	ItemName      string           `json:"itemName"`
	Description   string           `json:"description,omitempty"`
	Price         *decimal.Decimal `json:"price" swaggertype:"number"`
	DiscountPrice *decimal.Decimal `json:"discountPrice,omitempty" swaggertype:"number"`
	Unit          string           `json:"unit,omitempty"`
	IsAvailable   *bool            `json:"isAvailable,omitempty"`
	Order         *int             `json:"order,omitempty"`
}

// UpdateRateListRequest: a zero DiscountPrice removes the discount.
type UpdateRateListRequest struct {
	Category      *string          `json:"category,omitempty"`
	ItemName      *string          `json:"itemName,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty" swaggertype:"number"`
	DiscountPrice *decimal.Decimal `json:"discountPrice,omitempty" swaggertype:"number"`
	Unit          *string          `json:"unit,omitempty"`
	IsAvailable   *bool            `json:"isAvailable,omitempty"`
	Order         *int             `json:"order,omitempty"`
}

type RateListEntryResponse struct {
	models.RateListEntry
	HasDiscount        bool `json:"hasDiscount"`
	DiscountPercentage int  `json:"discountPercentage"`
}

func NewRateListEntryResponse(entry models.RateListEntry) RateListEntryResponse {
	return RateListEntryResponse{
		RateListEntry:      entry,
		HasDiscount:        entry.HasDiscount(),
		DiscountPercentage: entry.DiscountPercentage(),
	}
}

type RateListUpdateResponse struct {
	Item        RateListEntryResponse `json:"item"`
	SwappedWith *models.SwappedWith   `json:"swappedWith"`
}
