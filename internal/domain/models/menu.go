package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MenuItem struct {
	ID            uuid.UUID           `db:"id" json:"id"`
	Name          string              `db:"name" json:"name"`
	Description   string              `db:"description" json:"description"`
	ImageURL      string              `db:"image_url" json:"image"`
	ImagePublicID string              `db:"image_public_id" json:"imagePublicId,omitempty"`
	Badge         string              `db:"badge" json:"badge,omitempty"`
	Price         decimal.Decimal     `db:"price" json:"price"`
	DiscountPrice decimal.NullDecimal `db:"discount_price" json:"discountPrice"`
	Unit          PriceUnit           `db:"unit" json:"unit"`
	CategoryID    uuid.NullUUID       `db:"category_id" json:"categoryId"`
	Order         int                 `db:"display_order" json:"order"`
	IsActive      bool                `db:"is_active" json:"isActive"`
	CreatedAt     time.Time           `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time           `db:"updated_at" json:"updatedAt"`
}

func (m MenuItem) HasDiscount() bool {
	return hasDiscount(m.Price, m.DiscountPrice)
}

// DiscountPercentage is the rounded percentage saved, 0 without a discount.
func (m MenuItem) DiscountPercentage() int {
	return discountPercentage(m.Price, m.DiscountPrice)
}

func hasDiscount(price decimal.Decimal, discount decimal.NullDecimal) bool {
	return discount.Valid && discount.Decimal.LessThan(price) && price.IsPositive()
}

func discountPercentage(price decimal.Decimal, discount decimal.NullDecimal) int {
	if !hasDiscount(price, discount) {
		return 0
	}

	saved := price.Sub(discount.Decimal).Div(price).Mul(decimal.NewFromInt(100))
	return int(saved.Round(0).IntPart())
}

// ValidatePrice requires a positive price and, when a discount is set, a
// positive discount strictly below it.
func ValidatePrice(price decimal.Decimal, discount decimal.NullDecimal) error {
	if !price.IsPositive() {
		return NewValidationError("Price must be greater than 0")
	}
	if err := checkAmount("Price", price); err != nil {
		return err
	}
	if !discount.Valid {
		return nil
	}
	if !discount.Decimal.IsPositive() {
		return NewValidationError("Discount price must be greater than 0")
	}
	if err := checkAmount("Discount price", discount.Decimal); err != nil {
		return err
	}
	if !discount.Decimal.LessThan(price) {
		return NewValidationError("Discount price must be less than price")
	}

	return nil
}

// Prices are stored as NUMERIC(10,2).
var maxAmount = decimal.New(1, 8)

func checkAmount(field string, d decimal.Decimal) error {
	if !d.Equal(d.Round(2)) {
		return NewValidationError("%s can have at most 2 decimal places", field)
	}
	if !d.LessThan(maxAmount) {
		return NewValidationError("%s must be less than %s", field, maxAmount.String())
	}

	return nil
}
