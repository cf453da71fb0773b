package repository

import (
	"context"
	"time"

	"sweetcrumb/internal/domain/models"

	"github.com/google/uuid"
)

type SessionRepository interface {
	SaveSession(ctx context.Context, token string, ttl time.Duration) error
	SessionValid(ctx context.Context, token string) (bool, error)
	DeleteSession(ctx context.Context, token string) error
}

type BlogRepository interface {
	SaveBlogPost(ctx context.Context, blogPost models.BlogPost) (uuid.UUID, error)
	UpdateBlogPostFields(ctx context.Context, postID uuid.UUID, updates map[string]interface{}) error
	DeleteBlogPost(ctx context.Context, postID uuid.UUID) error
	GetBlogPostByID(ctx context.Context, postID uuid.UUID) (*models.BlogPost, error)
	GetBlogPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
	GetBlogPosts(ctx context.Context, filter models.BlogFilter) ([]models.BlogPost, int, error)
	IncrementViews(ctx context.Context, postID uuid.UUID) error
	PublicSlugs(ctx context.Context) ([]models.BlogPost, error)
}

type CategoryRepository interface {
	CreateCategory(ctx context.Context, category models.Category) (uuid.UUID, error)
	UpdateCategoryFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	GetCategoryByID(ctx context.Context, id uuid.UUID) (models.Category, error)
	GetCategories(ctx context.Context, activeOnly bool) ([]models.Category, error)
}

type EventRepository interface {
	CreateEvent(ctx context.Context, event models.Event) (uuid.UUID, error)
	UpdateEventFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteEvent(ctx context.Context, id uuid.UUID) error
	GetEventByID(ctx context.Context, id uuid.UUID) (models.Event, error)
	GetEvents(ctx context.Context, activeOnly bool) ([]models.Event, error)
}

type GalleryRepository interface {
	CreateImage(ctx context.Context, image models.GalleryImage) (uuid.UUID, error)
	UpdateImageFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteImage(ctx context.Context, id uuid.UUID) error
	GetImageByID(ctx context.Context, id uuid.UUID) (models.GalleryImage, error)
	GetImages(ctx context.Context, activeOnly bool) ([]models.GalleryImage, error)
}

type MenuRepository interface {
	CreateMenuItem(ctx context.Context, item models.MenuItem) (uuid.UUID, error)
	UpdateMenuItemFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteMenuItem(ctx context.Context, id uuid.UUID) error
	GetMenuItemByID(ctx context.Context, id uuid.UUID) (models.MenuItem, error)
	GetMenuItems(ctx context.Context, activeOnly bool, categoryID uuid.NullUUID) ([]models.MenuItem, error)
}

type RateListRepository interface {
	CreateEntry(ctx context.Context, entry models.RateListEntry) (uuid.UUID, error)
	UpdateEntry(ctx context.Context, id uuid.UUID, updates map[string]interface{}, swap *models.OrderSwap) error
	DeleteEntry(ctx context.Context, id uuid.UUID) error
	GetEntryByID(ctx context.Context, id uuid.UUID) (models.RateListEntry, error)
	FindByOrder(ctx context.Context, category string, order int, excludeID uuid.UUID) (models.RateListEntry, bool, error)
	NextOrder(ctx context.Context, category string) (int, error)
	GetEntries(ctx context.Context, availableOnly bool, category string) ([]models.RateListEntry, error)
}

type ReelRepository interface {
	CreateReel(ctx context.Context, reel models.Reel) (uuid.UUID, error)
	UpdateReel(ctx context.Context, id uuid.UUID, updates map[string]interface{}, swap *models.OrderSwap) error
	DeleteReel(ctx context.Context, id uuid.UUID) error
	GetReelByID(ctx context.Context, id uuid.UUID) (models.Reel, error)
	FindByOrder(ctx context.Context, order int, excludeID uuid.UUID) (models.Reel, bool, error)
	NextOrder(ctx context.Context) (int, error)
	GetReels(ctx context.Context, activeOnly bool) ([]models.Reel, error)
}

type ReviewRepository interface {
	CreateReview(ctx context.Context, review models.Review) (uuid.UUID, error)
	UpdateReviewFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteReview(ctx context.Context, id uuid.UUID) error
	GetReviewByID(ctx context.Context, id uuid.UUID) (models.Review, error)
	GetReviews(ctx context.Context, filter models.ReviewFilter) ([]models.Review, error)
}
