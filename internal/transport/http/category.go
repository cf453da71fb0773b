package http

import (
	"log/slog"
	"net/http"

	"sweetcrumb/internal/transport/http/dto"
	"sweetcrumb/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// ListCategories godoc
// @Summary List menu categories
// @Tags categories
// @Produce json
// @Success 200 {object} response.Response{data=[]models.Category}
// @Router /api/categories [get]
func (r *Routers) ListCategories(c echo.Context) error {
	const op = "http.routers.ListCategories"

	log := r.log.With(
		slog.String("op", op),
	)

	categories, err := r.Category.ListCategories(c.Request().Context(), r.isAdmin(c))
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(categories))
}

// GetCategory godoc
// @Summary Get a menu category
// @Tags categories
// @Produce json
// @Param id path string true "Category id"
// @Success 200 {object} response.Response{data=models.Category}
// @Failure 404 {object} response.Response
// @Router /api/categories/{id} [get]
func (r *Routers) GetCategory(c echo.Context) error {
	const op = "http.routers.GetCategory"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseID(c)
	if err != nil {
		return r.fail(c, log, err)
	}

	category, err := r.Category.GetCategory(c.Request().Context(), id, r.isAdmin(c))
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(category))
}

// CreateCategory godoc
// @Summary Create a menu category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Category"
// @Success 201 {object} response.Response{data=models.Category}
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/categories [post]
func (r *Routers) CreateCategory(c echo.Context) error {
	const op = "http.routers.CreateCategory"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	category, err := r.Category.CreateCategory(c.Request().Context(), req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(category))
}

// UpdateCategory godoc
// @Summary Update a menu category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category id"
// @Param request body dto.UpdateCategoryRequest true "Changed fields"
// @Success 200 {object} response.Response{data=models.Category}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/categories/{id} [put]
func (r *Routers) UpdateCategory(c echo.Context) error {
	const op = "http.routers.UpdateCategory"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseID(c)
	if err != nil {
		return r.fail(c, log, err)
	}

	var req dto.UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	category, err := r.Category.UpdateCategory(c.Request().Context(), id, req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(category))
}

// DeleteCategory godoc
// @Summary Delete a menu category
// @Tags categories
// @Produce json
// @Param id path string true "Category id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/categories/{id} [delete]
func (r *Routers) DeleteCategory(c echo.Context) error {
	const op = "http.routers.DeleteCategory"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseID(c)
	if err != nil {
		return r.fail(c, log, err)
	}

	if err := r.Category.DeleteCategory(c.Request().Context(), id); err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessMessage("Category deleted", nil))
}
