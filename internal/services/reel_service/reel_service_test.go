package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"testing"

	"sweetcrumb/internal/domain/models"
	"sweetcrumb/internal/lib/logger/handlers/slogdiscard"
	"sweetcrumb/internal/lib/sanitize"
	"sweetcrumb/internal/storage"
	"sweetcrumb/internal/transport/http/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReelRepository struct {
	mock.Mock
}

func (m *MockReelRepository) CreateReel(ctx context.Context, reel models.Reel) (uuid.UUID, error) {
	args := m.Called(ctx, reel)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockReelRepository) UpdateReel(ctx context.Context, id uuid.UUID, updates map[string]interface{}, swap *models.OrderSwap) error {
	args := m.Called(ctx, id, updates, swap)
	return args.Error(0)
}

func (m *MockReelRepository) DeleteReel(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReelRepository) GetReelByID(ctx context.Context, id uuid.UUID) (models.Reel, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Reel), args.Error(1)
}

func (m *MockReelRepository) FindByOrder(ctx context.Context, order int, excludeID uuid.UUID) (models.Reel, bool, error) {
	args := m.Called(ctx, order, excludeID)
	return args.Get(0).(models.Reel), args.Bool(1), args.Error(2)
}

func (m *MockReelRepository) NextOrder(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockReelRepository) GetReels(ctx context.Context, activeOnly bool) ([]models.Reel, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).([]models.Reel), args.Error(1)
}

type MockMediaService struct {
	mock.Mock
}

func (m *MockMediaService) Upload(ctx context.Context, file *multipart.FileHeader, folder string) (models.UploadResult, error) {
	args := m.Called(ctx, file, folder)
	return args.Get(0).(models.UploadResult), args.Error(1)
}

func (m *MockMediaService) Delete(ctx context.Context, publicIDs ...string) {
	m.Called(ctx, publicIDs)
}

func intPtr(v int) *int { return &v }

func newTestService() (*ReelService, *MockReelRepository, *MockMediaService) {
	repo := new(MockReelRepository)
	media := new(MockMediaService)

	return NewReelService(slogdiscard.NewDiscardLogger(), repo, media), repo, media
}

func TestReelService_CreateReel(t *testing.T) {
	ctx := context.Background()
	thumb := &multipart.FileHeader{Filename: "thumb.jpg"}

	t.Run("successful creation at the end", func(t *testing.T) {
		s, repo, media := newTestService()
		id := uuid.New()

		repo.On("NextOrder", ctx).Return(4, nil).Once()
		media.On("Upload", ctx, thumb, "reels").Return(models.UploadResult{URL: "https://cdn/t.jpg", PublicID: "reels/t"}, nil).Once()
		repo.On("CreateReel", ctx, models.Reel{
			VideoURL:          "https://www.instagram.com/reel/abc/",
			ThumbnailURL:      "https://cdn/t.jpg",
			ThumbnailPublicID: "reels/t",
			Caption:           "Fresh bakes",
			Order:             4,
			IsActive:          true,
		}).Return(id, nil).Once()
		repo.On("GetReelByID", ctx, id).Return(models.Reel{ID: id, Order: 4}, nil).Once()

		reel, err := s.CreateReel(ctx, dto.CreateReelRequest{
			VideoURL:  " https://www.instagram.com/reel/abc/ ",
			Caption:   "Fresh bakes",
			Thumbnail: thumb,
		})
		require.NoError(t, err)
		assert.Equal(t, 4, reel.Order)
		repo.AssertExpectations(t)
	})

	t.Run("thumbnail is required", func(t *testing.T) {
		s, _, media := newTestService()

		_, err := s.CreateReel(ctx, dto.CreateReelRequest{VideoURL: "https://x.test/v"})
		var missing *sanitize.MissingFieldsError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, []string{"thumbnail"}, missing.Fields)
		media.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("video url must be http", func(t *testing.T) {
		s, _, _ := newTestService()

		_, err := s.CreateReel(ctx, dto.CreateReelRequest{VideoURL: "javascript:alert(1)", Thumbnail: thumb})
		var vErr *models.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("caption longer than the column", func(t *testing.T) {
		s, repo, media := newTestService()

		_, err := s.CreateReel(ctx, dto.CreateReelRequest{
			VideoURL:  "https://x.test/v",
			Caption:   strings.Repeat("&", 61),
			Thumbnail: thumb,
		})
		var vErr *models.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "Caption must be less than 300 characters", vErr.Message)
		repo.AssertNotCalled(t, "NextOrder", mock.Anything)
		media.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("thumbnail removed when insert fails", func(t *testing.T) {
		s, repo, media := newTestService()

		media.On("Upload", ctx, thumb, "reels").Return(models.UploadResult{PublicID: "reels/t"}, nil).Once()
		repo.On("CreateReel", ctx, mock.Anything).Return(uuid.Nil, errors.New("db down")).Once()
		media.On("Delete", ctx, []string{"reels/t"}).Once()

		_, err := s.CreateReel(ctx, dto.CreateReelRequest{VideoURL: "https://x.test/v", Thumbnail: thumb, Order: intPtr(0)})
		assert.Error(t, err)
		media.AssertExpectations(t)
	})
}

func TestReelService_UpdateReel(t *testing.T) {
	ctx := context.Background()
	idA := uuid.New()
	idB := uuid.New()
	a := models.Reel{ID: idA, Order: 1, Caption: "A"}

	t.Run("full swap", func(t *testing.T) {
		s, repo, _ := newTestService()

		repo.On("GetReelByID", ctx, idA).Return(a, nil).Once()
		repo.On("FindByOrder", ctx, 2, idA).Return(models.Reel{ID: idB, Order: 2, Caption: "B"}, true, nil).Once()
		repo.On("UpdateReel", ctx, idA, map[string]interface{}{"display_order": 2},
			&models.OrderSwap{CounterpartID: idB, NewOrder: 1}).Return(nil).Once()
		repo.On("GetReelByID", ctx, idA).Return(models.Reel{ID: idA, Order: 2}, nil).Once()

		res, err := s.UpdateReel(ctx, idA, dto.UpdateReelRequest{Order: intPtr(2)})
		require.NoError(t, err)
		assert.Equal(t, 2, res.Item.Order)
		assert.Equal(t, &models.SwappedWith{ID: idB, Label: "B"}, res.SwappedWith)
		repo.AssertExpectations(t)
	})

	t.Run("no holder leaves other reels alone", func(t *testing.T) {
		s, repo, _ := newTestService()

		repo.On("GetReelByID", ctx, idA).Return(a, nil).Once()
		repo.On("FindByOrder", ctx, 5, idA).Return(models.Reel{}, false, nil).Once()
		repo.On("UpdateReel", ctx, idA, map[string]interface{}{"display_order": 5}, (*models.OrderSwap)(nil)).Return(nil).Once()
		repo.On("GetReelByID", ctx, idA).Return(models.Reel{ID: idA, Order: 5}, nil).Once()

		res, err := s.UpdateReel(ctx, idA, dto.UpdateReelRequest{Order: intPtr(5)})
		require.NoError(t, err)
		assert.Nil(t, res.SwappedWith)
	})

	t.Run("missing reel is a not found before any write", func(t *testing.T) {
		s, repo, _ := newTestService()
		repo.On("GetReelByID", ctx, idA).Return(models.Reel{}, storage.ErrNotFound).Once()

		_, err := s.UpdateReel(ctx, idA, dto.UpdateReelRequest{Order: intPtr(2)})
		assert.ErrorIs(t, err, storage.ErrNotFound)
		repo.AssertNotCalled(t, "UpdateReel", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("new thumbnail replaces the old one", func(t *testing.T) {
		s, repo, media := newTestService()
		thumb := &multipart.FileHeader{Filename: "new.jpg"}
		withThumb := models.Reel{ID: idA, Order: 1, ThumbnailPublicID: "reels/old"}

		repo.On("GetReelByID", ctx, idA).Return(withThumb, nil).Twice()
		media.On("Upload", ctx, thumb, "reels").Return(models.UploadResult{URL: "u", PublicID: "reels/new"}, nil).Once()
		repo.On("UpdateReel", ctx, idA, map[string]interface{}{
			"thumbnail_url":       "u",
			"thumbnail_public_id": "reels/new",
		}, (*models.OrderSwap)(nil)).Return(nil).Once()
		media.On("Delete", ctx, []string{"reels/old"}).Once()

		_, err := s.UpdateReel(ctx, idA, dto.UpdateReelRequest{Thumbnail: thumb})
		require.NoError(t, err)
		media.AssertExpectations(t)
	})
}

func TestReelService_DeleteReel(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	s, repo, media := newTestService()

	repo.On("GetReelByID", ctx, id).Return(models.Reel{ID: id, ThumbnailPublicID: "reels/t"}, nil).Once()
	repo.On("DeleteReel", ctx, id).Return(nil).Once()
	media.On("Delete", ctx, []string{"reels/t"}).Once()

	require.NoError(t, s.DeleteReel(ctx, id))
	media.AssertExpectations(t)
}
