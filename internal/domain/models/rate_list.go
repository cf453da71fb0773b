package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RateListEntry orders are scoped per Category: two entries in different
// categories may share an order value.
type RateListEntry struct {
	ID            uuid.UUID           `db:"id" json:"id"`
	Category      string              `db:"category" json:"category"`
	ItemName      string              `db:"item_name" json:"itemName"`
	Description   string              `db:"description" json:"description"`
	Price         decimal.Decimal     `db:"price" json:"price"`
	DiscountPrice decimal.NullDecimal `db:"discount_price" json:"discountPrice"`
	Unit          PriceUnit           `db:"unit" json:"unit"`
	IsAvailable   bool                `db:"is_available" json:"isAvailable"`
	Order         int                 `db:"display_order" json:"order"`
	CreatedAt     time.Time           `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time           `db:"updated_at" json:"updatedAt"`
}

func (r RateListEntry) HasDiscount() bool {
	return hasDiscount(r.Price, r.DiscountPrice)
}

func (r RateListEntry) DiscountPercentage() int {
	return discountPercentage(r.Price, r.DiscountPrice)
}
