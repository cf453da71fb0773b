// Package reorder decides how a display order change is applied to a scope
// of ordered items.
//
// When an item asks for an order value another item of the same scope
// already holds, the two exchange values. When nobody holds it the item
// just takes the value, which may leave duplicates; that is accepted.
package reorder

import (
	"context"
	"fmt"

	"sweetcrumb/internal/domain/models"

	"github.com/google/uuid"
)

// Counterpart is the item currently holding an order value.
type Counterpart struct {
	ID    uuid.UUID
	Label string
}

// Lookup finds the other item of the scope holding target. found is false
// when the slot is free.
type Lookup func(ctx context.Context, target int) (c Counterpart, found bool, err error)

type Plan struct {
	// Requested is false when the update leaves the order unchanged.
	Requested bool
	Target    int
	// Swap is the counterpart write, nil without a counterpart.
	Swap        *models.OrderSwap
	SwappedWith *models.SwappedWith
}

// Make plans moving an item from current to requested. A nil requested or
// one equal to current needs no reorder and never calls lookup.
func Make(ctx context.Context, current int, requested *int, lookup Lookup) (Plan, error) {
	const op = "reorder.Make"

	if requested == nil || *requested == current {
		return Plan{}, nil
	}

	target := *requested
	if target < 0 {
		return Plan{}, models.NewValidationError("order must be zero or greater")
	}

	plan := Plan{Requested: true, Target: target}

	c, found, err := lookup(ctx, target)
	if err != nil {
		return Plan{}, fmt.Errorf("%s: %w", op, err)
	}

	if found {
		plan.Swap = &models.OrderSwap{CounterpartID: c.ID, NewOrder: current}
		plan.SwappedWith = &models.SwappedWith{ID: c.ID, Label: c.Label}
	}

	return plan, nil
}
