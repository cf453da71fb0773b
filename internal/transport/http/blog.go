package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"sweetcrumb/internal/domain/models"
	"sweetcrumb/internal/transport/http/dto"
	"sweetcrumb/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// ListBlogPosts godoc
// @Summary List blog posts
// @Description Public callers only see published, active posts. Admins see everything.
// @Tags blog
// @Produce json
// @Param page query int false "Page, from 1"
// @Param limit query int false "Posts per page, at most 100"
// @Param category query string false "Category filter"
// @Param tag query string false "Tag filter"
// @Success 200 {object} response.Response{data=dto.BlogPostListResponse}
// @Failure 500 {object} response.Response
// @Router /api/blogs [get]
func (r *Routers) ListBlogPosts(c echo.Context) error {
	const op = "http.routers.ListBlogPosts"

	log := r.log.With(
		slog.String("op", op),
	)

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	list, err := r.Blog.ListPosts(c.Request().Context(), models.BlogFilter{
		PublicOnly: !r.isAdmin(c),
		Category:   c.QueryParam("category"),
		Tag:        c.QueryParam("tag"),
		Page:       page,
		PerPage:    limit,
	})
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(list))
}

// GetBlogPost godoc
// @Summary Get a blog post by id or slug
// @Description A public read of a published post increments its view counter.
// @Tags blog
// @Produce json
// @Param id path string true "Post id or slug"
// @Success 200 {object} response.Response{data=models.BlogPost}
// @Failure 404 {object} response.Response
// @Router /api/blogs/{id} [get]
func (r *Routers) GetBlogPost(c echo.Context) error {
	const op = "http.routers.GetBlogPost"

	log := r.log.With(
		slog.String("op", op),
	)

	post, err := r.Blog.GetPost(c.Request().Context(), c.Param("id"), r.isAdmin(c))
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(post))
}

// CreateBlogPost godoc
// @Summary Create a blog post
// @Tags blog
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param excerpt formData string true "Excerpt"
// @Param content formData string true "HTML content"
// @Param author formData string false "Author"
// @Param category formData string false "Category"
// @Param tags formData string false "Tags, comma separated or JSON array"
// @Param publishedAt formData string false "Publish time, RFC 3339"
// @Param isPublished formData bool false "Published"
// @Param isActive formData bool false "Active"
// @Param order formData int false "Display order"
// @Param coverImage formData file false "Cover image"
// @Success 201 {object} response.Response{data=models.BlogPost}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/blogs [post]
func (r *Routers) CreateBlogPost(c echo.Context) error {
	const op = "http.routers.CreateBlogPost"

	log := r.log.With(
		slog.String("op", op),
	)

	f, err := readForm(c)
	if err != nil {
		return r.fail(c, log, err)
	}

	req := dto.CreateBlogPostRequest{
		Title:          f.Value("title"),
		Excerpt:        f.Value("excerpt"),
		Content:        f.Value("content"),
		Author:         f.Value("author"),
		Category:       f.Value("category"),
		Tags:           f.Strings("tags"),
		PublishedAt:    f.Time("publishedAt"),
		IsPublished:    f.Bool("isPublished"),
		IsActive:       f.Bool("isActive"),
		Order:          f.Int("order"),
		SEOTitle:       f.Value("seoTitle"),
		SEODescription: f.Value("seoDescription"),
		CoverImage:     f.File("coverImage"),
	}
	if err := f.Err(); err != nil {
		return r.fail(c, log, err)
	}

	post, err := r.Blog.CreatePost(c.Request().Context(), req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(post))
}

// UpdateBlogPost godoc
// @Summary Update a blog post
// @Description Only the fields sent are changed. A new title regenerates the slug.
// @Tags blog
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Post id"
// @Param title formData string false "Title"
// @Param excerpt formData string false "Excerpt"
// @Param content formData string false "HTML content"
// @Param tags formData string false "Tags, comma separated or JSON array"
// @Param coverImage formData file false "Cover image"
// @Success 200 {object} response.Response{data=models.BlogPost}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/blogs/{id} [put]
func (r *Routers) UpdateBlogPost(c echo.Context) error {
	const op = "http.routers.UpdateBlogPost"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseID(c)
	if err != nil {
		return r.fail(c, log, err)
	}

	f, err := readForm(c)
	if err != nil {
		return r.fail(c, log, err)
	}

	req := dto.UpdateBlogPostRequest{
		Title:          f.String("title"),
		Excerpt:        f.String("excerpt"),
		Content:        f.String("content"),
		Author:         f.String("author"),
		Category:       f.String("category"),
		Tags:           f.Strings("tags"),
		PublishedAt:    f.Time("publishedAt"),
		IsPublished:    f.Bool("isPublished"),
		IsActive:       f.Bool("isActive"),
		Order:          f.Int("order"),
		SEOTitle:       f.String("seoTitle"),
		SEODescription: f.String("seoDescription"),
		CoverImage:     f.File("coverImage"),
	}
	if err := f.Err(); err != nil {
		return r.fail(c, log, err)
	}

	post, err := r.Blog.UpdatePost(c.Request().Context(), id, req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(post))
}

// DeleteBlogPost godoc
// @Summary Delete a blog post
// @Tags blog
// @Produce json
// @Param id path string true "Post id"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/blogs/{id} [delete]
func (r *Routers) DeleteBlogPost(c echo.Context) error {
	const op = "http.routers.DeleteBlogPost"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseID(c)
	if err != nil {
		return r.fail(c, log, err)
	}

	if err := r.Blog.DeletePost(c.Request().Context(), id); err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessMessage("Blog post deleted", nil))
}
