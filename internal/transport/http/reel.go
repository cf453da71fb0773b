package http

import (
	"log/slog"
	"net/http"

	"sweetcrumb/internal/transport/http/dto"
	"sweetcrumb/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// ListReels godoc
// @Summary List reels
// @Tags reels
// @Produce json
// @Success 200 {object} response.Response{data=[]models.Reel}
// @Router /api/reels [get]
func (r *Routers) ListReels(c echo.Context) error {
	const op = "http.routers.ListReels"

	log := r.log.With(
		slog.String("op", op),
	)

	reels, err := r.Reel.ListReels(c.Request().Context(), r.isAdmin(c))
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(reels))
}

// GetReel godoc
// @Summary Get a reel
// @Tags reels
// @Produce json
// @Param id path string true "Reel id"
// @Success 200 {object} response.Response{data=models.Reel}
// @Failure 404 {object} response.Response
// @Router /api/reels/{id} [get]
func (r *Routers) GetReel(c echo.Context) error {
	const op = "http.routers.GetReel"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseID(c)
	if err != nil {
		return r.fail(c, log, err)
	}

	reel, err := r.Reel.GetReel(c.Request().Context(), id, r.isAdmin(c))
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(reel))
}

// CreateReel godoc
// @Summary Create a reel
// @Tags reels
// @Accept multipart/form-data
// @Produce json
// @Param videoUrl formData string true "Video URL"
// @Param thumbnail formData file true "Thumbnail"
// @Param caption formData string false "Caption"
// @Param order formData int false "Display order, defaults to last"
// @Success 201 {object} response.Response{data=models.Reel}
// @Failure 400 {object} response.Response
// @Router /api/reels [post]
func (r *Routers) CreateReel(c echo.Context) error {
	const op = "http.routers.CreateReel"

	log := r.log.With(
		slog.String("op", op),
	)

	f, err := readForm(c)
	if err != nil {
		return r.fail(c, log, err)
	}

	req := dto.CreateReelRequest{
		VideoURL:  f.Value("videoUrl"),
		Caption:   f.Value("caption"),
		Order:     f.Int("order"),
		IsActive:  f.Bool("isActive"),
		Thumbnail: f.File("thumbnail"),
	}
	if err := f.Err(); err != nil {
		return r.fail(c, log, err)
	}

	reel, err := r.Reel.CreateReel(c.Request().Context(), req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(reel))
}

// UpdateReel godoc
// @Summary Update a reel
// @Description Moving to an order held by another reel swaps the two.
// @Tags reels
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Reel id"
// @Param thumbnail formData file false "Replacement thumbnail"
// @Param order formData int false "Display order"
// @Success 200 {object} response.Response{data=dto.ReelUpdateResponse}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/reels/{id} [put]
func (r *Routers) UpdateReel(c echo.Context) error {
	const op = "http.routers.UpdateReel"

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

	req := dto.UpdateReelRequest{
		VideoURL:  f.String("videoUrl"),
		Caption:   f.String("caption"),
		Order:     f.Int("order"),
		IsActive:  f.Bool("isActive"),
		Thumbnail: f.File("thumbnail"),
	}
	if err := f.Err(); err != nil {
		return r.fail(c, log, err)
	}

	res, err := r.Reel.UpdateReel(c.Request().Context(), id, req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(res))
}

// DeleteReel godoc
// @Summary Delete a reel
// @Tags reels
// @Produce json
// @Param id path string true "Reel id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/reels/{id} [delete]
func (r *Routers) DeleteReel(c echo.Context) error {
	const op = "http.routers.DeleteReel"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseID(c)
	if err != nil {
		return r.fail(c, log, err)
	}

	if err := r.Reel.DeleteReel(c.Request().Context(), id); err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessMessage("Reel deleted", nil))
}
