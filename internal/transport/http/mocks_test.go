package http_test

import (
	"context"
	"mime/multipart"

	"sweetcrumb/internal/domain/models"
	"sweetcrumb/internal/transport/http/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockMediaService struct{ mock.Mock }

func (m *MockMediaService) Upload(ctx context.Context, file *multipart.FileHeader, folder string) (models.UploadResult, error) {
	args := m.Called(ctx, file, folder)
	return args.Get(0).(models.UploadResult), args.Error(1)
}

type MockBlogService struct{ mock.Mock }

func (m *MockBlogService) CreatePost(ctx context.Context, req dto.CreateBlogPostRequest) (*models.BlogPost, error) {
	args := m.Called(ctx, req)
	post, _ := args.Get(0).(*models.BlogPost)
	return post, args.Error(1)
}

func (m *MockBlogService) UpdatePost(ctx context.Context, postID uuid.UUID, req dto.UpdateBlogPostRequest) (*models.BlogPost, error) {
	args := m.Called(ctx, postID, req)
	post, _ := args.Get(0).(*models.BlogPost)
	return post, args.Error(1)
}

func (m *MockBlogService) GetPost(ctx context.Context, idOrSlug string, admin bool) (*models.BlogPost, error) {
	args := m.Called(ctx, idOrSlug, admin)
	post, _ := args.Get(0).(*models.BlogPost)
	return post, args.Error(1)
}

func (m *MockBlogService) ListPosts(ctx context.Context, filter models.BlogFilter) (*dto.BlogPostListResponse, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).(*dto.BlogPostListResponse)
	return list, args.Error(1)
}

func (m *MockBlogService) DeletePost(ctx context.Context, postID uuid.UUID) error {
	return m.Called(ctx, postID).Error(0)
}

type MockCategoryService struct{ mock.Mock }

func (m *MockCategoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (models.Category, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.Category), args.Error(1)
}

func (m *MockCategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (models.Category, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(models.Category), args.Error(1)
}

func (m *MockCategoryService) GetCategory(ctx context.Context, id uuid.UUID, admin bool) (models.Category, error) {
	args := m.Called(ctx, id, admin)
	return args.Get(0).(models.Category), args.Error(1)
}

func (m *MockCategoryService) ListCategories(ctx context.Context, admin bool) ([]models.Category, error) {
	args := m.Called(ctx, admin)
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockEventService struct{ mock.Mock }

func (m *MockEventService) CreateEvent(ctx context.Context, req dto.CreateEventRequest) (models.Event, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.Event), args.Error(1)
}

func (m *MockEventService) UpdateEvent(ctx context.Context, id uuid.UUID, req dto.UpdateEventRequest) (models.Event, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(models.Event), args.Error(1)
}

func (m *MockEventService) GetEvent(ctx context.Context, id uuid.UUID, admin bool) (models.Event, error) {
	args := m.Called(ctx, id, admin)
	return args.Get(0).(models.Event), args.Error(1)
}

func (m *MockEventService) ListEvents(ctx context.Context, admin bool) ([]models.Event, error) {
	args := m.Called(ctx, admin)
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *MockEventService) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockMenuService struct{ mock.Mock }

func (m *MockMenuService) CreateMenuItem(ctx context.Context, req dto.CreateMenuItemRequest) (dto.MenuItemResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(dto.MenuItemResponse), args.Error(1)
}

func (m *MockMenuService) UpdateMenuItem(ctx context.Context, id uuid.UUID, req dto.UpdateMenuItemRequest) (dto.MenuItemResponse, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(dto.MenuItemResponse), args.Error(1)
}

func (m *MockMenuService) GetMenuItem(ctx context.Context, id uuid.UUID, admin bool) (dto.MenuItemResponse, error) {
	args := m.Called(ctx, id, admin)
	return args.Get(0).(dto.MenuItemResponse), args.Error(1)
}

func (m *MockMenuService) ListMenuItems(ctx context.Context, admin bool, categoryID uuid.NullUUID) ([]dto.MenuItemResponse, error) {
	args := m.Called(ctx, admin, categoryID)
	return args.Get(0).([]dto.MenuItemResponse), args.Error(1)
}

func (m *MockMenuService) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockRateListService struct{ mock.Mock }

func (m *MockRateListService) CreateEntry(ctx context.Context, req dto.CreateRateListRequest) (dto.RateListEntryResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(dto.RateListEntryResponse), args.Error(1)
}

func (m *MockRateListService) UpdateEntry(ctx context.Context, id uuid.UUID, req dto.UpdateRateListRequest) (dto.RateListUpdateResponse, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(dto.RateListUpdateResponse), args.Error(1)
}

func (m *MockRateListService) GetEntry(ctx context.Context, id uuid.UUID, admin bool) (dto.RateListEntryResponse, error) {
	args := m.Called(ctx, id, admin)
	return args.Get(0).(dto.RateListEntryResponse), args.Error(1)
}

func (m *MockRateListService) ListEntries(ctx context.Context, admin bool, category string) ([]dto.RateListEntryResponse, error) {
	args := m.Called(ctx, admin, category)
	return args.Get(0).([]dto.RateListEntryResponse), args.Error(1)
}

func (m *MockRateListService) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockReelService struct{ mock.Mock }

func (m *MockReelService) CreateReel(ctx context.Context, req dto.CreateReelRequest) (models.Reel, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.Reel), args.Error(1)
}

func (m *MockReelService) UpdateReel(ctx context.Context, id uuid.UUID, req dto.UpdateReelRequest) (dto.ReelUpdateResponse, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(dto.ReelUpdateResponse), args.Error(1)
}

func (m *MockReelService) GetReel(ctx context.Context, id uuid.UUID, admin bool) (models.Reel, error) {
	args := m.Called(ctx, id, admin)
	return args.Get(0).(models.Reel), args.Error(1)
}

func (m *MockReelService) ListReels(ctx context.Context, admin bool) ([]models.Reel, error) {
	args := m.Called(ctx, admin)
	return args.Get(0).([]models.Reel), args.Error(1)
}

func (m *MockReelService) DeleteReel(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockReviewService struct{ mock.Mock }

func (m *MockReviewService) SubmitReview(ctx context.Context, input map[string]any) (models.Review, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(models.Review), args.Error(1)
}

func (m *MockReviewService) UpdateReview(ctx context.Context, id uuid.UUID, req dto.UpdateReviewRequest) (models.Review, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(models.Review), args.Error(1)
}

func (m *MockReviewService) GetReview(ctx context.Context, id uuid.UUID, admin bool) (models.Review, error) {
	args := m.Called(ctx, id, admin)
	return args.Get(0).(models.Review), args.Error(1)
}

func (m *MockReviewService) ListReviews(ctx context.Context, admin, featuredOnly bool) ([]models.Review, error) {
	args := m.Called(ctx, admin, featuredOnly)
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewService) DeleteReview(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockSitemapService struct{ mock.Mock }

func (m *MockSitemapService) Build(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	body, _ := args.Get(0).([]byte)
	return body, args.Error(1)
}
