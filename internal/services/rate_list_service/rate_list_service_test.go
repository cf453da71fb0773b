package services

import (
	"context"
	"testing"

	"sweetcrumb/internal/domain/models"
	"sweetcrumb/internal/lib/logger/handlers/slogdiscard"
	"sweetcrumb/internal/storage"
	"sweetcrumb/internal/transport/http/dto"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRateListRepository struct {
	mock.Mock
}

func (m *MockRateListRepository) CreateEntry(ctx context.Context, entry models.RateListEntry) (uuid.UUID, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockRateListRepository) UpdateEntry(ctx context.Context, id uuid.UUID, updates map[string]interface{}, swap *models.OrderSwap) error {
	args := m.Called(ctx, id, updates, swap)
	return args.Error(0)
}

func (m *MockRateListRepository) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRateListRepository) GetEntryByID(ctx context.Context, id uuid.UUID) (models.RateListEntry, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.RateListEntry), args.Error(1)
}

func (m *MockRateListRepository) FindByOrder(ctx context.Context, category string, order int, excludeID uuid.UUID) (models.RateListEntry, bool, error) {
	args := m.Called(ctx, category, order, excludeID)
	return args.Get(0).(models.RateListEntry), args.Bool(1), args.Error(2)
}

func (m *MockRateListRepository) NextOrder(ctx context.Context, category string) (int, error) {
	args := m.Called(ctx, category)
	return args.Int(0), args.Error(1)
}

func (m *MockRateListRepository) GetEntries(ctx context.Context, availableOnly bool, category string) ([]models.RateListEntry, error) {
	args := m.Called(ctx, availableOnly, category)
	return args.Get(0).([]models.RateListEntry), args.Error(1)
}

func intPtr(v int) *int { return &v }

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func newTestService() (*RateListService, *MockRateListRepository) {
	repo := new(MockRateListRepository)
	return NewRateListService(slogdiscard.NewDiscardLogger(), repo), repo
}

func TestRateListService_CreateEntry(t *testing.T) {
	ctx := context.Background()

	t.Run("order defaults to the end of the category", func(t *testing.T) {
		s, repo := newTestService()
		id := uuid.New()

		repo.On("NextOrder", ctx, "Cakes").Return(3, nil).Once()
		repo.On("CreateEntry", ctx, mock.MatchedBy(func(e models.RateListEntry) bool {
			return e.Category == "Cakes" && e.ItemName == "Black Forest" && e.Order == 3 &&
				e.Unit == models.UnitKg && e.IsAvailable
		})).Return(id, nil).Once()
		repo.On("GetEntryByID", ctx, id).Return(models.RateListEntry{ID: id, Order: 3}, nil).Once()

		res, err := s.CreateEntry(ctx, dto.CreateRateListRequest{
			Category: "Cakes",
			ItemName: "Black Forest",
			Price:    dec("18.50"),
			Unit:     "kg",
		})
		require.NoError(t, err)
		assert.Equal(t, 3, res.Order)
		repo.AssertExpectations(t)
	})

	t.Run("explicit order skips the lookup", func(t *testing.T) {
		s, repo := newTestService()
		id := uuid.New()

		repo.On("CreateEntry", ctx, mock.MatchedBy(func(e models.RateListEntry) bool { return e.Order == 0 })).Return(id, nil).Once()
		repo.On("GetEntryByID", ctx, id).Return(models.RateListEntry{ID: id}, nil).Once()

		_, err := s.CreateEntry(ctx, dto.CreateRateListRequest{Category: "Cakes", ItemName: "A", Price: dec("1"), Order: intPtr(0)})
		require.NoError(t, err)
		repo.AssertNotCalled(t, "NextOrder", mock.Anything, mock.Anything)
	})

	t.Run("discount must be below price", func(t *testing.T) {
		s, repo := newTestService()

		_, err := s.CreateEntry(ctx, dto.CreateRateListRequest{
			Category: "Cakes", ItemName: "A", Price: dec("5"), DiscountPrice: dec("6"),
		})
		var vErr *models.ValidationError
		assert.ErrorAs(t, err, &vErr)
		repo.AssertNotCalled(t, "CreateEntry", mock.Anything, mock.Anything)
	})
}

func TestRateListService_UpdateEntry(t *testing.T) {
	ctx := context.Background()
	idA := uuid.New()
	idB := uuid.New()
	a := models.RateListEntry{ID: idA, Category: "Cakes", ItemName: "Sponge", Order: 1, Price: decimal.NewFromInt(10)}

	t.Run("swaps with the holder of the target in the same category", func(t *testing.T) {
		s, repo := newTestService()

		repo.On("GetEntryByID", ctx, idA).Return(a, nil).Once()
		repo.On("FindByOrder", ctx, "Cakes", 2, idA).Return(models.RateListEntry{ID: idB, ItemName: "Carrot"}, true, nil).Once()
		repo.On("UpdateEntry", ctx, idA, map[string]interface{}{"display_order": 2},
			&models.OrderSwap{CounterpartID: idB, NewOrder: 1}).Return(nil).Once()
		repo.On("GetEntryByID", ctx, idA).Return(models.RateListEntry{ID: idA, Order: 2}, nil).Once()

		res, err := s.UpdateEntry(ctx, idA, dto.UpdateRateListRequest{Order: intPtr(2)})
		require.NoError(t, err)
		assert.Equal(t, 2, res.Item.Order)
		require.NotNil(t, res.SwappedWith)
		assert.Equal(t, models.SwappedWith{ID: idB, Label: "Carrot"}, *res.SwappedWith)
		repo.AssertExpectations(t)
	})

	t.Run("free slot moves only the acting entry", func(t *testing.T) {
		s, repo := newTestService()

		repo.On("GetEntryByID", ctx, idA).Return(a, nil).Once()
		repo.On("FindByOrder", ctx, "Cakes", 5, idA).Return(models.RateListEntry{}, false, nil).Once()
		repo.On("UpdateEntry", ctx, idA, map[string]interface{}{"display_order": 5}, (*models.OrderSwap)(nil)).Return(nil).Once()
		repo.On("GetEntryByID", ctx, idA).Return(models.RateListEntry{ID: idA, Order: 5}, nil).Once()

		res, err := s.UpdateEntry(ctx, idA, dto.UpdateRateListRequest{Order: intPtr(5)})
		require.NoError(t, err)
		assert.Nil(t, res.SwappedWith)
		repo.AssertExpectations(t)
	})

	t.Run("category change scopes the lookup to the new category", func(t *testing.T) {
		s, repo := newTestService()
		cookies := "Cookies"

		repo.On("GetEntryByID", ctx, idA).Return(a, nil).Once()
		repo.On("FindByOrder", ctx, "Cookies", 2, idA).Return(models.RateListEntry{}, false, nil).Once()
		repo.On("UpdateEntry", ctx, idA, map[string]interface{}{"category": "Cookies", "display_order": 2}, (*models.OrderSwap)(nil)).Return(nil).Once()
		repo.On("GetEntryByID", ctx, idA).Return(a, nil).Once()

		_, err := s.UpdateEntry(ctx, idA, dto.UpdateRateListRequest{Category: &cookies, Order: intPtr(2)})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("same order is not a reorder", func(t *testing.T) {
		s, repo := newTestService()
		name := "Victoria Sponge"

		repo.On("GetEntryByID", ctx, idA).Return(a, nil).Twice()
		repo.On("UpdateEntry", ctx, idA, map[string]interface{}{"item_name": "Victoria Sponge"}, (*models.OrderSwap)(nil)).Return(nil).Once()

		res, err := s.UpdateEntry(ctx, idA, dto.UpdateRateListRequest{ItemName: &name, Order: intPtr(1)})
		require.NoError(t, err)
		assert.Nil(t, res.SwappedWith)
		repo.AssertNotCalled(t, "FindByOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing entry fails before any write", func(t *testing.T) {
		s, repo := newTestService()
		repo.On("GetEntryByID", ctx, idA).Return(models.RateListEntry{}, storage.ErrNotFound).Once()

		_, err := s.UpdateEntry(ctx, idA, dto.UpdateRateListRequest{Order: intPtr(2)})
		assert.ErrorIs(t, err, storage.ErrNotFound)
		repo.AssertNotCalled(t, "FindByOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "UpdateEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("negative order", func(t *testing.T) {
		s, repo := newTestService()
		repo.On("GetEntryByID", ctx, idA).Return(a, nil).Once()

		_, err := s.UpdateEntry(ctx, idA, dto.UpdateRateListRequest{Order: intPtr(-1)})
		var vErr *models.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
}

func TestRateListService_GetEntry(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	s, repo := newTestService()

	repo.On("GetEntryByID", ctx, id).Return(models.RateListEntry{ID: id, IsAvailable: false}, nil)

	_, err := s.GetEntry(ctx, id, false)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = s.GetEntry(ctx, id, true)
	assert.NoError(t, err)
}

func TestRateListService_ListEntries(t *testing.T) {
	ctx := context.Background()
	s, repo := newTestService()

	repo.On("GetEntries", ctx, true, "Cakes").Return([]models.RateListEntry{
		{ItemName: "A", Price: decimal.NewFromInt(10), DiscountPrice: decimal.NewNullDecimal(decimal.NewFromInt(9))},
	}, nil).Once()

	entries, err := s.ListEntries(ctx, false, "Cakes")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 10, entries[0].DiscountPercentage)
}
