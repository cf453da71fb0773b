package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"mime/multipart"
	"regexp"
	"strings"
	"time"

	"sweetcrumb/internal/domain/models"
	"sweetcrumb/internal/lib/logger/sl"
	"sweetcrumb/internal/lib/sanitize"
	"sweetcrumb/internal/repository"
	"sweetcrumb/internal/storage"
	"sweetcrumb/internal/transport/http/dto"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const (
	DefaultAuthor = "Sweetcrumb Bakery"

	MaxTitleLength   = 200
	MaxExcerptLength = 500

	wordsPerMinute = 200
	// leaves room for the collision suffix within the slug column
	maxSlugBase = 300
	mediaFolder = "blog"
)

var tagRe = regexp.MustCompile(`<[^>]*>`)

type MediaService interface {
	Upload(ctx context.Context, file *multipart.FileHeader, folder string) (models.UploadResult, error)
	Delete(ctx context.Context, publicIDs ...string)
}

type BlogService struct {
	log   *slog.Logger
	repo  repository.BlogRepository
	media MediaService
	now   func() time.Time
}

func NewBlogService(log *slog.Logger, repo repository.BlogRepository, media MediaService) *BlogService {
	return &BlogService{
		log:   log,
		repo:  repo,
		media: media,
		now:   time.Now,
	}
}

// CreatePost validates and stores a new post. Title and excerpt are
// sanitized, content is kept verbatim.
func (s *BlogService) CreatePost(ctx context.Context, req dto.CreateBlogPostRequest) (*models.BlogPost, error) {
	const op = "blog_service.CreatePost"

	log := s.log.With(
		slog.String("op", op),
	)

	title := sanitize.String(req.Title)
	excerpt := sanitize.String(req.Excerpt)

	if err := sanitize.ValidateRequired(map[string]any{
		"title":   title,
		"excerpt": excerpt,
		"content": req.Content,
	}, "title", "excerpt", "content"); err != nil {
		return nil, err
	}

	if err := checkLengths(title, excerpt); err != nil {
		log.Warn("rejected blog post", sl.Err(err))
		return nil, err
	}

	now := s.now()
	post := models.BlogPost{
		Title:          title,
		Excerpt:        excerpt,
		Content:        req.Content,
		Author:         DefaultAuthor,
		Category:       sanitize.String(req.Category),
		Tags:           normalizeTags(req.Tags),
		PublishedAt:    now,
		ReadTime:       readTime(req.Content),
		IsPublished:    true,
		IsActive:       true,
		SEOTitle:       sanitize.String(req.SEOTitle),
		SEODescription: sanitize.String(req.SEODescription),
	}

	if author := sanitize.String(req.Author); author != "" {
		post.Author = author
	}
	if err := checkFields(post.Author, post.Category, post.SEOTitle, post.SEODescription); err != nil {
		log.Warn("rejected blog post", sl.Err(err))
		return nil, err
	}
	if req.PublishedAt != nil {
		post.PublishedAt = *req.PublishedAt
	}
	if req.IsPublished != nil {
		post.IsPublished = *req.IsPublished
	}
	if req.IsActive != nil {
		post.IsActive = *req.IsActive
	}
	if req.Order != nil {
		if *req.Order < 0 {
			return nil, models.NewValidationError("order must be zero or greater")
		}
		post.Order = *req.Order
	}

	slugValue, err := s.uniqueSlug(ctx, title, uuid.Nil)
	if err != nil {
		log.Error("failed to check slug", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	post.Slug = slugValue

	if req.CoverImage != nil {
		res, err := s.media.Upload(ctx, req.CoverImage, mediaFolder)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		post.CoverImageURL = res.URL
		post.CoverImagePublicID = res.PublicID
	}

	id, err := s.repo.SaveBlogPost(ctx, post)
	if err != nil {
		log.Error("failed to save post", sl.Err(err))
		if post.CoverImagePublicID != "" {
			s.media.Delete(ctx, post.CoverImagePublicID)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("post created", slog.String("post_id", id.String()), slog.String("slug", post.Slug))

	created, err := s.repo.GetBlogPostByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

// UpdatePost applies a partial update. A new title regenerates the slug; a
// new cover replaces the old one, which is then removed from the host.
func (s *BlogService) UpdatePost(ctx context.Context, postID uuid.UUID, req dto.UpdateBlogPostRequest) (*models.BlogPost, error) {
	const op = "blog_service.UpdatePost"

	log := s.log.With(
		slog.String("op", op),
		slog.String("post_id", postID.String()),
	)

	existing, err := s.repo.GetBlogPostByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	updates := make(map[string]interface{})

	if req.Title != nil {
		title := sanitize.String(*req.Title)
		if title == "" {
			return nil, models.NewValidationError("title cannot be empty")
		}
		if err := checkLengths(title, ""); err != nil {
			return nil, err
		}
		if title != existing.Title {
			updates["title"] = title

			slugValue, err := s.uniqueSlug(ctx, title, postID)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			updates["slug"] = slugValue
		}
	}
	if req.Excerpt != nil {
		excerpt := sanitize.String(*req.Excerpt)
		if err := checkLengths("", excerpt); err != nil {
			return nil, err
		}
		updates["excerpt"] = excerpt
	}
	if req.Content != nil {
		updates["content"] = *req.Content
		updates["read_time"] = readTime(*req.Content)
	}
	if req.Author != nil {
		author := sanitize.String(*req.Author)
		if author == "" {
			author = DefaultAuthor
		}
		if err := models.CheckLength("Author", author, models.MaxAuthorLength); err != nil {
			return nil, err
		}
		updates["author"] = author
	}
	if req.Category != nil {
		category := sanitize.String(*req.Category)
		if err := models.CheckLength("Category", category, models.MaxBlogCategoryLength); err != nil {
			return nil, err
		}
		updates["category"] = category
	}
	if req.Tags != nil {
		updates["tags"] = normalizeTags(req.Tags)
	}
	if req.PublishedAt != nil {
		updates["published_at"] = *req.PublishedAt
	}
	if req.IsPublished != nil {
		updates["is_published"] = *req.IsPublished
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.Order != nil {
		if *req.Order < 0 {
			return nil, models.NewValidationError("order must be zero or greater")
		}
		updates["display_order"] = *req.Order
	}
	if req.SEOTitle != nil {
		seoTitle := sanitize.String(*req.SEOTitle)
		if err := models.CheckLength("SEO title", seoTitle, models.MaxSEOTitleLength); err != nil {
			return nil, err
		}
		updates["seo_title"] = seoTitle
	}
	if req.SEODescription != nil {
		seoDescription := sanitize.String(*req.SEODescription)
		if err := models.CheckLength("SEO description", seoDescription, models.MaxSEODescriptionLength); err != nil {
			return nil, err
		}
		updates["seo_description"] = seoDescription
	}

	var uploaded models.UploadResult
	if req.CoverImage != nil {
		uploaded, err = s.media.Upload(ctx, req.CoverImage, mediaFolder)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		updates["cover_image_url"] = uploaded.URL
		updates["cover_image_public_id"] = uploaded.PublicID
	}

	if len(updates) == 0 {
		return existing, nil
	}

	if err := s.repo.UpdateBlogPostFields(ctx, postID, updates); err != nil {
		log.Error("failed to update post", sl.Err(err))
		if uploaded.PublicID != "" {
			s.media.Delete(ctx, uploaded.PublicID)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if uploaded.PublicID != "" && existing.CoverImagePublicID != "" {
		s.media.Delete(ctx, existing.CoverImagePublicID)
	}

	log.Info("post updated", slog.Int("fields", len(updates)))

	updated, err := s.repo.GetBlogPostByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

// GetPost looks a post up by id or slug. The public view hides unpublished
// and inactive posts and counts the read.
func (s *BlogService) GetPost(ctx context.Context, idOrSlug string, admin bool) (*models.BlogPost, error) {
	const op = "blog_service.GetPost"

	log := s.log.With(
		slog.String("op", op),
		slog.String("key", idOrSlug),
	)

	var (
		post *models.BlogPost
		err  error
	)

	if id, parseErr := uuid.Parse(idOrSlug); parseErr == nil {
		post, err = s.repo.GetBlogPostByID(ctx, id)
	} else {
		post, err = s.repo.GetBlogPostBySlug(ctx, idOrSlug)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if admin {
		return post, nil
	}

	if !post.IsPublished || !post.IsActive {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	if err := s.repo.IncrementViews(ctx, post.ID); err != nil {
		log.Warn("failed to count view", sl.Err(err))
	} else {
		post.Views++
	}

	return post, nil
}

func (s *BlogService) ListPosts(ctx context.Context, filter models.BlogFilter) (*dto.BlogPostListResponse, error) {
	const op = "blog_service.ListPosts"

	log := s.log.With(
		slog.String("op", op),
		slog.Bool("public_only", filter.PublicOnly),
	)

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 || filter.PerPage > 100 {
		filter.PerPage = 10
	}
	filter.Tag = strings.ToLower(strings.TrimSpace(filter.Tag))

	posts, total, err := s.repo.GetBlogPosts(ctx, filter)
	if err != nil {
		log.Error("failed to list posts", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &dto.BlogPostListResponse{
		Posts: posts,
		Pagination: dto.Pagination{
			Page:  filter.Page,
			Limit: filter.PerPage,
			Total: total,
			Pages: int(math.Ceil(float64(total) / float64(filter.PerPage))),
		},
	}, nil
}

// DeletePost removes the record, then the cover image. A failing remote
// delete does not fail the call.
func (s *BlogService) DeletePost(ctx context.Context, postID uuid.UUID) error {
	const op = "blog_service.DeletePost"

	log := s.log.With(
		slog.String("op", op),
		slog.String("post_id", postID.String()),
	)

	post, err := s.repo.GetBlogPostByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.DeleteBlogPost(ctx, postID); err != nil {
		log.Error("failed to delete post", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if post.CoverImagePublicID != "" {
		s.media.Delete(ctx, post.CoverImagePublicID)
	}

	log.Info("post deleted")

	return nil
}

// uniqueSlug derives a slug from title and suffixes it with the current
// unix milliseconds when another post already holds it.
func (s *BlogService) uniqueSlug(ctx context.Context, title string, excludeID uuid.UUID) (string, error) {
	base := slug.Make(sanitize.Unescape(title))
	if len(base) > maxSlugBase {
		base = strings.TrimRight(base[:maxSlugBase], "-")
	}
	if base == "" {
		base = "post"
	}

	exists, err := s.repo.SlugExists(ctx, base, excludeID)
	if err != nil {
		return "", err
	}
	if !exists {
		return base, nil
	}

	return fmt.Sprintf("%s-%d", base, s.now().UnixMilli()), nil
}

func checkLengths(title, excerpt string) error {
	if len([]rune(title)) > MaxTitleLength {
		return models.NewValidationError("Title must be less than %d characters", MaxTitleLength)
	}
	if len([]rune(excerpt)) > MaxExcerptLength {
		return models.NewValidationError("Excerpt must be less than %d characters", MaxExcerptLength)
	}

	return nil
}

func checkFields(author, category, seoTitle, seoDescription string) error {
	return models.CheckLengths(
		models.LengthCheck{Field: "Author", Value: author, Max: models.MaxAuthorLength},
		models.LengthCheck{Field: "Category", Value: category, Max: models.MaxBlogCategoryLength},
		models.LengthCheck{Field: "SEO title", Value: seoTitle, Max: models.MaxSEOTitleLength},
		models.LengthCheck{Field: "SEO description", Value: seoDescription, Max: models.MaxSEODescriptionLength},
	)
}

// normalizeTags lowercases, trims and de-duplicates tags. An entry may
// hold several comma separated tags.
func normalizeTags(raw []string) []string {
	seen := make(map[string]struct{})
	tags := make([]string, 0, len(raw))

	for _, entry := range raw {
		for _, t := range strings.Split(entry, ",") {
			tag := strings.ToLower(sanitize.String(t))
			if tag == "" {
				continue
			}
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}

	return tags
}

// readTime is minutes at 200 words per minute over the visible text,
// never less than one.
func readTime(content string) int {
	words := len(strings.Fields(tagRe.ReplaceAllString(content, " ")))

	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		return 1
	}

	return minutes
}
