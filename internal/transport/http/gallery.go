package http

import (
	"log/slog"
	"net/http"

	"sweetcrumb/internal/transport/http/dto"
	"sweetcrumb/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// ListGalleryImages godoc
// @Summary List gallery images
// @Tags gallery
// @Produce json
// @Success 200 {object} response.Response{data=[]models.GalleryImage}
// @Router /api/gallery [get]
func (r *Routers) ListGalleryImages(c echo.Context) error {
	const op = "http.routers.ListGalleryImages"

	log := r.log.With(
		slog.String("op", op),
	)

	images, err := r.Gallery.ListImages(c.Request().Context(), r.isAdmin(c))
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(images))
}

// GetGalleryImage godoc
// @Summary Get a gallery image
// @Tags gallery
// @Produce json
// @Param id path string true "Image id"
// @Success 200 {object} response.Response{data=models.GalleryImage}
// @Failure 404 {object} response.Response
// @Router /api/gallery/{id} [get]
func (r *Routers) GetGalleryImage(c echo.Context) error {
	const op = "http.routers.GetGalleryImage"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseID(c)
	if err != nil {
		return r.fail(c, log, err)
	}

	image, err := r.Gallery.GetImage(c.Request().Context(), id, r.isAdmin(c))
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(image))
}

// CreateGalleryImage godoc
// @Summary Upload a gallery image
// @Tags gallery
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image"
// @Param caption formData string false "Caption"
// @Param altText formData string false "Alt text"
// @Param order formData int false "Display order"
// @Param isActive formData bool false "Active"
// @Success 201 {object} response.Response{data=models.GalleryImage}
// @Failure 400 {object} response.Response
// @Router /api/gallery [post]
func (r *Routers) CreateGalleryImage(c echo.Context) error {
	const op = "http.routers.CreateGalleryImage"

	log := r.log.With(
		slog.String("op", op),
	)

	f, err := readForm(c)
	if err != nil {
		return r.fail(c, log, err)
	}

	req := dto.CreateGalleryImageRequest{
		Caption:  f.Value("caption"),
		AltText:  f.Value("altText"),
		Order:    f.Int("order"),
		IsActive: f.Bool("isActive"),
		Image:    f.File("image"),
	}
	if err := f.Err(); err != nil {
		return r.fail(c, log, err)
	}

	image, err := r.Gallery.CreateImage(c.Request().Context(), req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(image))
}

// UpdateGalleryImage godoc
// @Summary Update a gallery image
// @Tags gallery
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Image id"
// @Param image formData file false "Replacement image"
// @Success 200 {object} response.Response{data=models.GalleryImage}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/gallery/{id} [put]
func (r *Routers) UpdateGalleryImage(c echo.Context) error {
	const op = "http.routers.UpdateGalleryImage"

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

	req := dto.UpdateGalleryImageRequest{
		Caption:  f.String("caption"),
		AltText:  f.String("altText"),
		Order:    f.Int("order"),
		IsActive: f.Bool("isActive"),
		Image:    f.File("image"),
	}
	if err := f.Err(); err != nil {
		return r.fail(c, log, err)
	}

	image, err := r.Gallery.UpdateImage(c.Request().Context(), id, req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(image))
}

// DeleteGalleryImage godoc
// @Summary Delete a gallery image
// @Tags gallery
// @Produce json
// @Param id path string true "Image id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/gallery/{id} [delete]
func (r *Routers) DeleteGalleryImage(c echo.Context) error {
	const op = "http.routers.DeleteGalleryImage"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseID(c)
	if err != nil {
		return r.fail(c, log, err)
	}

	if err := r.Gallery.DeleteImage(c.Request().Context(), id); err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessMessage("Image deleted", nil))
}
