package http

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"sweetcrumb/internal/domain/models"
	"sweetcrumb/internal/lib/logger/sl"
	"sweetcrumb/internal/lib/sanitize"
	"sweetcrumb/internal/storage"
	"sweetcrumb/internal/transport/http/dto"
	"sweetcrumb/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"

	_ "sweetcrumb/docs"
)

type AdminService interface {
	Verify(ctx context.Context, key string) (string, time.Time, error)
	Authorize(ctx context.Context, r *http.Request) bool
	Throttled(r *http.Request) (retryAfter int, throttled bool)
	CheckSession(ctx context.Context, r *http.Request) bool
	SetToken(sess *sessions.Session, token string)
	Logout(ctx context.Context, r *http.Request, sess *sessions.Session) error
}

type MediaService interface {
	Upload(ctx context.Context, file *multipart.FileHeader, folder string) (models.UploadResult, error)
}

type BlogService interface {
	CreatePost(ctx context.Context, req dto.CreateBlogPostRequest) (*models.BlogPost, error)
	UpdatePost(ctx context.Context, postID uuid.UUID, req dto.UpdateBlogPostRequest) (*models.BlogPost, error)
	GetPost(ctx context.Context, idOrSlug string, admin bool) (*models.BlogPost, error)
	ListPosts(ctx context.Context, filter models.BlogFilter) (*dto.BlogPostListResponse, error)
	DeletePost(ctx context.Context, postID uuid.UUID) error
}

type CategoryService interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (models.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID, admin bool) (models.Category, error)
	ListCategories(ctx context.Context, admin bool) ([]models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type EventService interface {
	CreateEvent(ctx context.Context, req dto.CreateEventRequest) (models.Event, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, req dto.UpdateEventRequest) (models.Event, error)
	GetEvent(ctx context.Context, id uuid.UUID, admin bool) (models.Event, error)
	ListEvents(ctx context.Context, admin bool) ([]models.Event, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error
}

type GalleryService interface {
	CreateImage(ctx context.Context, req dto.CreateGalleryImageRequest) (models.GalleryImage, error)
	UpdateImage(ctx context.Context, id uuid.UUID, req dto.UpdateGalleryImageRequest) (models.GalleryImage, error)
	GetImage(ctx context.Context, id uuid.UUID, admin bool) (models.GalleryImage, error)
	ListImages(ctx context.Context, admin bool) ([]models.GalleryImage, error)
	DeleteImage(ctx context.Context, id uuid.UUID) error
}

type MenuService interface {
	CreateMenuItem(ctx context.Context, req dto.CreateMenuItemRequest) (dto.MenuItemResponse, error)
	UpdateMenuItem(ctx context.Context, id uuid.UUID, req dto.UpdateMenuItemRequest) (dto.MenuItemResponse, error)
	GetMenuItem(ctx context.Context, id uuid.UUID, admin bool) (dto.MenuItemResponse, error)
	ListMenuItems(ctx context.Context, admin bool, categoryID uuid.NullUUID) ([]dto.MenuItemResponse, error)
	DeleteMenuItem(ctx context.Context, id uuid.UUID) error
}

type RateListService interface {
	CreateEntry(ctx context.Context, req dto.CreateRateListRequest) (dto.RateListEntryResponse, error)
	UpdateEntry(ctx context.Context, id uuid.UUID, req dto.UpdateRateListRequest) (dto.RateListUpdateResponse, error)
	GetEntry(ctx context.Context, id uuid.UUID, admin bool) (dto.RateListEntryResponse, error)
	ListEntries(ctx context.Context, admin bool, category string) ([]dto.RateListEntryResponse, error)
	DeleteEntry(ctx context.Context, id uuid.UUID) error
}

type ReelService interface {
	CreateReel(ctx context.Context, req dto.CreateReelRequest) (models.Reel, error)
	UpdateReel(ctx context.Context, id uuid.UUID, req dto.UpdateReelRequest) (dto.ReelUpdateResponse, error)
	GetReel(ctx context.Context, id uuid.UUID, admin bool) (models.Reel, error)
	ListReels(ctx context.Context, admin bool) ([]models.Reel, error)
	DeleteReel(ctx context.Context, id uuid.UUID) error
}

type ReviewService interface {
	SubmitReview(ctx context.Context, input map[string]any) (models.Review, error)
	UpdateReview(ctx context.Context, id uuid.UUID, req dto.UpdateReviewRequest) (models.Review, error)
	GetReview(ctx context.Context, id uuid.UUID, admin bool) (models.Review, error)
	ListReviews(ctx context.Context, admin, featuredOnly bool) ([]models.Review, error)
	DeleteReview(ctx context.Context, id uuid.UUID) error
}

type SitemapService interface {
	Build(ctx context.Context) ([]byte, error)
}

// Services groups every dependency of the routers. Nil members are allowed
// in tests that never reach them.
type Services struct {
	Admin    AdminService
	Media    MediaService
	Blog     BlogService
	Category CategoryService
	Event    EventService
	Gallery  GalleryService
	Menu     MenuService
	RateList RateListService
	Reel     ReelService
	Review   ReviewService
	Sitemap  SitemapService
}

type Routers struct {
	log *slog.Logger
	Services
}

func NewRouter(log *slog.Logger, services Services) *Routers {
	return &Routers{
		log:      log,
		Services: services,
	}
}

// isAdmin lets public GET routes widen their view for an admin caller.
func (r *Routers) isAdmin(c echo.Context) bool {
	return r.Admin != nil && r.Admin.Authorize(c.Request().Context(), c.Request())
}

// fail turns a service error into the response envelope. Anything not
// known to be the caller's fault is logged and answered with 500.
func (r *Routers) fail(c echo.Context, log *slog.Logger, err error) error {
	var validationErr *models.ValidationError
	var missingErr *sanitize.MissingFieldsError

	switch {
	case errors.Is(err, errInvalidID):
		return c.JSON(http.StatusBadRequest, response.ErrInvalidID)
	case errors.As(err, &validationErr):
		return c.JSON(http.StatusBadRequest, response.ErrorResponse(validationErr.Message))
	case errors.As(err, &missingErr):
		return c.JSON(http.StatusBadRequest, response.ErrorResponse(missingErr.Error()))
	case errors.Is(err, storage.ErrFileTooLarge):
		return c.JSON(http.StatusBadRequest, response.ErrFileTooLarge)
	case errors.Is(err, storage.ErrInvalidFileType):
		return c.JSON(http.StatusBadRequest, response.ErrInvalidFileType)
	case errors.Is(err, storage.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, response.ErrInvalidInput)
	case errors.Is(err, storage.ErrNotFound):
		return c.JSON(http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, storage.ErrConflict):
		return c.JSON(http.StatusConflict, response.ErrAlreadyExists)
	}

	log.Error("request failed", sl.Err(err))

	return c.JSON(http.StatusInternalServerError, response.ErrInternal)
}
