package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"testing"
	"time"

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

type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) CreateEvent(ctx context.Context, event models.Event) (uuid.UUID, error) {
	args := m.Called(ctx, event)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockEventRepository) UpdateEventFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	args := m.Called(ctx, id, updates)
	return args.Error(0)
}

func (m *MockEventRepository) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEventRepository) GetEventByID(ctx context.Context, id uuid.UUID) (models.Event, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Event), args.Error(1)
}

func (m *MockEventRepository) GetEvents(ctx context.Context, activeOnly bool) ([]models.Event, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).([]models.Event), args.Error(1)
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

func newTestService() (*EventService, *MockEventRepository, *MockMediaService) {
	repo := new(MockEventRepository)
	media := new(MockMediaService)

	return NewEventService(slogdiscard.NewDiscardLogger(), repo, media), repo, media
}

func TestEventService_CreateEvent(t *testing.T) {
	ctx := context.Background()
	a := &multipart.FileHeader{Filename: "a.jpg"}
	b := &multipart.FileHeader{Filename: "b.jpg"}

	t.Run("first image becomes the cover", func(t *testing.T) {
		s, repo, media := newTestService()
		id := uuid.New()

		media.On("Upload", ctx, a, "events").Return(models.UploadResult{URL: "https://cdn/a.jpg", PublicID: "events/a"}, nil).Once()
		media.On("Upload", ctx, b, "events").Return(models.UploadResult{URL: "https://cdn/b.jpg", PublicID: "events/b"}, nil).Once()
		repo.On("CreateEvent", ctx, models.Event{
			Title:          "Summer Fair",
			Venue:          "Town Square",
			Date:           time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC),
			ImageURLs:      []string{"https://cdn/a.jpg", "https://cdn/b.jpg"},
			ImagePublicIDs: []string{"events/a", "events/b"},
			CoverImage:     "https://cdn/a.jpg",
			IsActive:       true,
		}).Return(id, nil).Once()
		repo.On("GetEventByID", ctx, id).Return(models.Event{ID: id}, nil).Once()

		_, err := s.CreateEvent(ctx, dto.CreateEventRequest{
			Title:  "Summer Fair",
			Venue:  "Town Square",
			Date:   "2024-07-20",
			Images: []*multipart.FileHeader{a, b},
		})
		require.NoError(t, err)
		repo.AssertExpectations(t)
		media.AssertExpectations(t)
	})

	t.Run("failed upload rolls back earlier uploads", func(t *testing.T) {
		s, repo, media := newTestService()

		media.On("Upload", ctx, a, "events").Return(models.UploadResult{PublicID: "events/a"}, nil).Once()
		media.On("Upload", ctx, b, "events").Return(models.UploadResult{}, errors.New("host down")).Once()
		media.On("Delete", ctx, []string{"events/a"}).Once()

		_, err := s.CreateEvent(ctx, dto.CreateEventRequest{
			Title:  "Fair",
			Venue:  "Square",
			Date:   "2024-07-20T18:00:00Z",
			Images: []*multipart.FileHeader{a, b},
		})
		assert.Error(t, err)
		media.AssertExpectations(t)
		repo.AssertNotCalled(t, "CreateEvent", mock.Anything, mock.Anything)
	})

	t.Run("missing fields and bad date", func(t *testing.T) {
		s, _, _ := newTestService()

		_, err := s.CreateEvent(ctx, dto.CreateEventRequest{Title: "Fair"})
		var missing *sanitize.MissingFieldsError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, []string{"venue", "date"}, missing.Fields)

		_, err = s.CreateEvent(ctx, dto.CreateEventRequest{Title: "Fair", Venue: "Square", Date: "next friday"})
		var vErr *models.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("blank title and venue are missing", func(t *testing.T) {
		s, _, _ := newTestService()

		_, err := s.CreateEvent(ctx, dto.CreateEventRequest{Title: "  ", Venue: "\n", Date: "2026-06-01"})
		var missing *sanitize.MissingFieldsError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, []string{"title", "venue"}, missing.Fields)
	})

	t.Run("venue longer than the column", func(t *testing.T) {
		s, repo, media := newTestService()

		_, err := s.CreateEvent(ctx, dto.CreateEventRequest{
			Title: "Fair",
			Venue: strings.Repeat("v", 201),
			Date:  "2026-06-01",
		})
		var vErr *models.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "Venue must be less than 200 characters", vErr.Message)
		repo.AssertNotCalled(t, "CreateEvent", mock.Anything, mock.Anything)
		media.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestEventService_UpdateEvent(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	existing := models.Event{
		ID:             id,
		Title:          "Fair",
		ImageURLs:      []string{"https://cdn/a.jpg", "https://cdn/b.jpg"},
		ImagePublicIDs: []string{"events/a", "events/b"},
		CoverImage:     "https://cdn/a.jpg",
	}

	t.Run("remove and append images", func(t *testing.T) {
		s, repo, media := newTestService()
		c := &multipart.FileHeader{Filename: "c.jpg"}

		repo.On("GetEventByID", ctx, id).Return(existing, nil).Twice()
		media.On("Upload", ctx, c, "events").Return(models.UploadResult{URL: "https://cdn/c.jpg", PublicID: "events/c"}, nil).Once()
		repo.On("UpdateEventFields", ctx, id, map[string]interface{}{
			"image_urls":       []string{"https://cdn/b.jpg", "https://cdn/c.jpg"},
			"image_public_ids": []string{"events/b", "events/c"},
			"cover_image":      "https://cdn/b.jpg",
		}).Return(nil).Once()
		media.On("Delete", ctx, []string{"events/a"}).Once()

		_, err := s.UpdateEvent(ctx, id, dto.UpdateEventRequest{
			Images:       []*multipart.FileHeader{c},
			RemoveImages: []string{"events/a"},
		})
		require.NoError(t, err)
		repo.AssertExpectations(t)
		media.AssertExpectations(t)
	})

	t.Run("removed images survive a failed update", func(t *testing.T) {
		s, repo, media := newTestService()

		repo.On("GetEventByID", ctx, id).Return(existing, nil).Once()
		repo.On("UpdateEventFields", ctx, id, mock.Anything).Return(errors.New("db down")).Once()

		_, err := s.UpdateEvent(ctx, id, dto.UpdateEventRequest{RemoveImages: []string{"events/a"}})
		assert.Error(t, err)
		media.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("unknown event", func(t *testing.T) {
		s, repo, _ := newTestService()
		repo.On("GetEventByID", ctx, id).Return(models.Event{}, storage.ErrNotFound).Once()

		_, err := s.UpdateEvent(ctx, id, dto.UpdateEventRequest{})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestEventService_DeleteEvent(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	s, repo, media := newTestService()

	repo.On("GetEventByID", ctx, id).Return(models.Event{ID: id, ImagePublicIDs: []string{"events/a", "events/b"}}, nil).Once()
	repo.On("DeleteEvent", ctx, id).Return(nil).Once()
	media.On("Delete", ctx, []string{"events/a", "events/b"}).Once()

	require.NoError(t, s.DeleteEvent(ctx, id))
	media.AssertExpectations(t)
}

func TestEventService_GetEvent(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	s, repo, _ := newTestService()

	repo.On("GetEventByID", ctx, id).Return(models.Event{ID: id, IsActive: false}, nil)

	_, err := s.GetEvent(ctx, id, false)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = s.GetEvent(ctx, id, true)
	assert.NoError(t, err)
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-12-24")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseDate("2024-12-24T19:30:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, 17, got.UTC().Hour())

	_, err = ParseDate("24/12/2024")
	assert.Error(t, err)
}
