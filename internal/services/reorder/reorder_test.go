package reorder_test

import (
	"context"
	"errors"
	"testing"

	"sweetcrumb/internal/domain/models"
	"sweetcrumb/internal/services/reorder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestMake(t *testing.T) {
	ctx := context.Background()
	other := uuid.New()

	holder := func(at int) reorder.Lookup {
		return func(_ context.Context, target int) (reorder.Counterpart, bool, error) {
			if target == at {
				return reorder.Counterpart{ID: other, Label: "Red Velvet"}, true, nil
			}
			return reorder.Counterpart{}, false, nil
		}
	}

	unreachable := func(context.Context, int) (reorder.Counterpart, bool, error) {
		t.Fatal("lookup must not be called")
		return reorder.Counterpart{}, false, nil
	}

	t.Run("no order submitted", func(t *testing.T) {
		plan, err := reorder.Make(ctx, 3, nil, unreachable)
		require.NoError(t, err)
		assert.False(t, plan.Requested)
	})

	t.Run("same order submitted", func(t *testing.T) {
		plan, err := reorder.Make(ctx, 3, intPtr(3), unreachable)
		require.NoError(t, err)
		assert.False(t, plan.Requested)
	})

	t.Run("swap with holder", func(t *testing.T) {
		plan, err := reorder.Make(ctx, 3, intPtr(0), holder(0))
		require.NoError(t, err)

		assert.True(t, plan.Requested)
		assert.Equal(t, 0, plan.Target)
		assert.Equal(t, &models.OrderSwap{CounterpartID: other, NewOrder: 3}, plan.Swap)
		assert.Equal(t, &models.SwappedWith{ID: other, Label: "Red Velvet"}, plan.SwappedWith)
	})

	t.Run("free slot", func(t *testing.T) {
		plan, err := reorder.Make(ctx, 3, intPtr(9), holder(0))
		require.NoError(t, err)

		assert.True(t, plan.Requested)
		assert.Equal(t, 9, plan.Target)
		assert.Nil(t, plan.Swap)
		assert.Nil(t, plan.SwappedWith)
	})

	t.Run("negative order", func(t *testing.T) {
		_, err := reorder.Make(ctx, 3, intPtr(-1), unreachable)
		var verr *models.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("lookup failure", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := reorder.Make(ctx, 3, intPtr(1), func(context.Context, int) (reorder.Counterpart, bool, error) {
			return reorder.Counterpart{}, false, boom
		})
		assert.ErrorIs(t, err, boom)
	})
}
