package http

import (
	"log/slog"
	"net/http"
	"strings"

	"sweetcrumb/internal/transport/http/dto"
	"sweetcrumb/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ListMenuItems godoc
// @Summary List menu items
// @Tags menu
// @Produce json
// @Param category query string false "Category id"
// @Success 200 {object} response.Response{data=[]dto.MenuItemResponse}
// @Failure 400 {object} response.Response
// @Router /api/menu [get]
func (r *Routers) ListMenuItems(c echo.Context) error {
	const op = "http.routers.ListMenuItems"

	log := r.log.With(
		slog.String("op", op),
	)

	var categoryID uuid.NullUUID
	if raw := strings.TrimSpace(c.QueryParam("category")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, response.ErrInvalidID)
		}
		categoryID = uuid.NullUUID{UUID: id, Valid: true}
	}

	items, err := r.Menu.ListMenuItems(c.Request().Context(), r.isAdmin(c), categoryID)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(items))
}

// GetMenuItem godoc
// @Summary Get a menu item
// @Tags menu
// @Produce json
// @Param id path string true "Item id"
// @Success 200 {object} response.Response{data=dto.MenuItemResponse}
// @Failure 404 {object} response.Response
// @Router /api/menu/{id} [get]
func (r *Routers) GetMenuItem(c echo.Context) error {
	const op = "http.routers.GetMenuItem"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseID(c)
	if err != nil {
		return r.fail(c, log, err)
	}

	item, err := r.Menu.GetMenuItem(c.Request().Context(), id, r.isAdmin(c))
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(item))
}

// CreateMenuItem godoc
// @Summary Create a menu item
// @Tags menu
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Name"
// @Param price formData number true "Price"
// @Param discountPrice formData number false "Discounted price"
// @Param unit formData string false "Unit"
// @Param categoryId formData string false "Category id"
// @Param image formData file false "Image"
// @Success 201 {object} response.Response{data=dto.MenuItemResponse}
// @Failure 400 {object} response.Response
// @Router /api/menu [post]
func (r *Routers) CreateMenuItem(c echo.Context) error {
	const op = "http.routers.CreateMenuItem"

	log := r.log.With(
		slog.String("op", op),
	)

	f, err := readForm(c)
	if err != nil {
		return r.fail(c, log, err)
	}

	req := dto.CreateMenuItemRequest{
		Name:          f.Value("name"),
		Description:   f.Value("description"),
		Badge:         f.Value("badge"),
		Price:         f.Decimal("price"),
		DiscountPrice: f.Decimal("discountPrice"),
		Unit:          f.Value("unit"),
		CategoryID:    f.UUID("categoryId"),
		Order:         f.Int("order"),
		IsActive:      f.Bool("isActive"),
		Image:         f.File("image"),
	}
	if err := f.Err(); err != nil {
		return r.fail(c, log, err)
	}

	item, err := r.Menu.CreateMenuItem(c.Request().Context(), req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(item))
}

// UpdateMenuItem godoc
// @Summary Update a menu item
// @Description A discountPrice of 0 removes the discount. An empty categoryId detaches the category.
// @Tags menu
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Item id"
// @Param image formData file false "Replacement image"
// @Success 200 {object} response.Response{data=dto.MenuItemResponse}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/menu/{id} [put]
func (r *Routers) UpdateMenuItem(c echo.Context) error {
	const op = "http.routers.UpdateMenuItem"

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

	req := dto.UpdateMenuItemRequest{
		Name:          f.String("name"),
		Description:   f.String("description"),
		Badge:         f.String("badge"),
		Price:         f.Decimal("price"),
		DiscountPrice: f.Decimal("discountPrice"),
		Unit:          f.String("unit"),
		CategoryID:    f.UUID("categoryId"),
		ClearCategory: f.Has("categoryId") && strings.TrimSpace(f.Value("categoryId")) == "",
		Order:         f.Int("order"),
		IsActive:      f.Bool("isActive"),
		Image:         f.File("image"),
	}
	if err := f.Err(); err != nil {
		return r.fail(c, log, err)
	}

	item, err := r.Menu.UpdateMenuItem(c.Request().Context(), id, req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(item))
}

// DeleteMenuItem godoc
// @Summary Delete a menu item
// @Tags menu
// @Produce json
// @Param id path string true "Item id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/menu/{id} [delete]
func (r *Routers) DeleteMenuItem(c echo.Context) error {
	const op = "http.routers.DeleteMenuItem"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseID(c)
	if err != nil {
		return r.fail(c, log, err)
	}

	if err := r.Menu.DeleteMenuItem(c.Request().Context(), id); err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessMessage("Menu item deleted", nil))
}
