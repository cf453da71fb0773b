package dto

import (
	"mime/multipart"

	"sweetcrumb/internal/domain/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateMenuItemRequest struct {
	Name          string
	Description   string
	Badge         string
	Price         *decimal.Decimal
	DiscountPrice *decimal.Decimal
	Unit          string
	CategoryID    *uuid.UUID
	Order         *int
	IsActive      *bool
	Image         *multipart.FileHeader
}

// UpdateMenuItemRequest: a zero DiscountPrice removes the discount, and
// ClearCategory detaches the item from its category.
type UpdateMenuItemRequest struct {
	Name          *string
	Description   *string
	Badge         *string
	Price         *decimal.Decimal
	DiscountPrice *decimal.Decimal
	Unit          *string
	CategoryID    *uuid.UUID
	ClearCategory bool
	Order         *int
	IsActive      *bool
	Image         *multipart.FileHeader
}

type MenuItemResponse struct {
	models.MenuItem
	HasDiscount        bool `json:"hasDiscount"`
	DiscountPercentage int  `json:"discountPercentage"`
}

func NewMenuItemResponse(item models.MenuItem) MenuItemResponse {
	return MenuItemResponse{
		MenuItem:           item,
		HasDiscount:        item.HasDiscount(),
		DiscountPercentage: item.DiscountPercentage(),
	}
}
