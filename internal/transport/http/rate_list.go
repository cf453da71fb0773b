package http

import (
	"log/slog"
	"net/http"

	"sweetcrumb/internal/transport/http/dto"
	"sweetcrumb/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// ListRateList godoc
// @Summary List the rate list
// @Description Sorted by category then order. Public callers only see available entries.
// @Tags rate-list
// @Produce json
// @Param category query string false "Category"
// @Success 200 {object} response.Response{data=[]dto.RateListEntryResponse}
// @Router /api/rate-list [get]
func (r *Routers) ListRateList(c echo.Context) error {
	const op = "http.routers.ListRateList"

	log := r.log.With(
		slog.String("op", op),
	)

	entries, err := r.RateList.ListEntries(c.Request().Context(), r.isAdmin(c), c.QueryParam("category"))
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(entries))
}

// GetRateListEntry godoc
// @Summary Get a rate list entry
// @Tags rate-list
// @Produce json
// @Param id path string true "Entry id"
// @Success 200 {object} response.Response{data=dto.RateListEntryResponse}
// @Failure 404 {object} response.Response
// @Router /api/rate-list/{id} [get]
func (r *Routers) GetRateListEntry(c echo.Context) error {
	const op = "http.routers.GetRateListEntry"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseID(c)
	if err != nil {
		return r.fail(c, log, err)
	}

	entry, err := r.RateList.GetEntry(c.Request().Context(), id, r.isAdmin(c))
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(entry))
}

// CreateRateListEntry godoc
// @Summary Create a rate list entry
// @Description Without an order the entry goes last in its category.
// @Tags rate-list
// @Accept json
// @Produce json
// @Param request body dto.CreateRateListRequest true "Entry"
// @Success 201 {object} response.Response{data=dto.RateListEntryResponse}
// @Failure 400 {object} response.Response
// @Router /api/rate-list [post]
func (r *Routers) CreateRateListEntry(c echo.Context) error {
	const op = "http.routers.CreateRateListEntry"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.CreateRateListRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	entry, err := r.RateList.CreateEntry(c.Request().Context(), req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(entry))
}

// UpdateRateListEntry godoc
// @Summary Update a rate list entry
// @Description Moving to an order held by another entry of the same category swaps the two.
// @Tags rate-list
// @Accept json
// @Produce json
// @Param id path string true "Entry id"
// @Param request body dto.UpdateRateListRequest true "Changed fields"
// @Success 200 {object} response.Response{data=dto.RateListUpdateResponse}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/rate-list/{id} [put]
func (r *Routers) UpdateRateListEntry(c echo.Context) error {
	const op = "http.routers.UpdateRateListEntry"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseID(c)
	if err != nil {
		return r.fail(c, log, err)
	}

	var req dto.UpdateRateListRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	res, err := r.RateList.UpdateEntry(c.Request().Context(), id, req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(res))
}

// DeleteRateListEntry godoc
// @Summary Delete a rate list entry
// @Tags rate-list
// @Produce json
// @Param id path string true "Entry id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/rate-list/{id} [delete]
func (r *Routers) DeleteRateListEntry(c echo.Context) error {
	const op = "http.routers.DeleteRateListEntry"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseID(c)
	if err != nil {
		return r.fail(c, log, err)
	}

	if err := r.RateList.DeleteEntry(c.Request().Context(), id); err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessMessage("Rate list entry deleted", nil))
}
