package models

import "github.com/google/uuid"

// SwappedWith names the record whose display order was exchanged during a
// reorder.
type SwappedWith struct {
	ID    uuid.UUID `json:"id"`
	Label string    `json:"label"`
}

// OrderSwap is a pending counterpart write: CounterpartID takes NewOrder.
type OrderSwap struct {
	CounterpartID uuid.UUID
	NewOrder      int
}
