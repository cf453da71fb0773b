package http

import (
	"log/slog"
	"net/http"

	"sweetcrumb/internal/transport/http/dto"
	"sweetcrumb/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// ListEvents godoc
// @Summary List events
// @Tags events
// @Produce json
// @Success 200 {object} response.Response{data=[]models.Event}
// @Router /api/events [get]
func (r *Routers) ListEvents(c echo.Context) error {
	const op = "http.routers.ListEvents"

	log := r.log.With(
		slog.String("op", op),
	)

	events, err := r.Event.ListEvents(c.Request().Context(), r.isAdmin(c))
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(events))
}

// GetEvent godoc
// @Summary Get an event
// @Tags events
// @Produce json
// @Param id path string true "Event id"
// @Success 200 {object} response.Response{data=models.Event}
// @Failure 404 {object} response.Response
// @Router /api/events/{id} [get]
func (r *Routers) GetEvent(c echo.Context) error {
	const op = "http.routers.GetEvent"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseID(c)
	if err != nil {
		return r.fail(c, log, err)
	}

	event, err := r.Event.GetEvent(c.Request().Context(), id, r.isAdmin(c))
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(event))
}

// CreateEvent godoc
// @Summary Create an event
// @Tags events
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param venue formData string true "Venue"
// @Param date formData string true "Date, RFC 3339 or YYYY-MM-DD"
// @Param description formData string false "Description"
// @Param highlights formData string false "Highlights"
// @Param images formData file false "Images"
// @Param coverImage formData file false "Cover image, defaults to the first image"
// @Success 201 {object} response.Response{data=models.Event}
// @Failure 400 {object} response.Response
// @Router /api/events [post]
func (r *Routers) CreateEvent(c echo.Context) error {
	const op = "http.routers.CreateEvent"

	log := r.log.With(
		slog.String("op", op),
	)

	f, err := readForm(c)
	if err != nil {
		return r.fail(c, log, err)
	}

	req := dto.CreateEventRequest{
		Title:       f.Value("title"),
		Venue:       f.Value("venue"),
		Date:        f.Value("date"),
		Description: f.Value("description"),
		Highlights:  f.Value("highlights"),
		Order:       f.Int("order"),
		IsActive:    f.Bool("isActive"),
		Images:      f.Files("images"),
		CoverImage:  f.File("coverImage"),
	}
	if err := f.Err(); err != nil {
		return r.fail(c, log, err)
	}

	event, err := r.Event.CreateEvent(c.Request().Context(), req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(event))
}

// UpdateEvent godoc
// @Summary Update an event
// @Description New images are appended. removeImages lists public ids to drop.
// @Tags events
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Event id"
// @Param images formData file false "Images to append"
// @Param removeImages formData string false "Public ids to remove"
// @Param coverImage formData file false "New cover image"
// @Success 200 {object} response.Response{data=models.Event}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/events/{id} [put]
func (r *Routers) UpdateEvent(c echo.Context) error {
	const op = "http.routers.UpdateEvent"

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

	req := dto.UpdateEventRequest{
		Title:        f.String("title"),
		Venue:        f.String("venue"),
		Date:         f.String("date"),
		Description:  f.String("description"),
		Highlights:   f.String("highlights"),
		Order:        f.Int("order"),
		IsActive:     f.Bool("isActive"),
		Images:       f.Files("images"),
		RemoveImages: f.Strings("removeImages"),
		CoverImage:   f.File("coverImage"),
	}
	if err := f.Err(); err != nil {
		return r.fail(c, log, err)
	}

	event, err := r.Event.UpdateEvent(c.Request().Context(), id, req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(event))
}

// DeleteEvent godoc
// @Summary Delete an event and its images
// @Tags events
// @Produce json
// @Param id path string true "Event id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/events/{id} [delete]
func (r *Routers) DeleteEvent(c echo.Context) error {
	const op = "http.routers.DeleteEvent"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseID(c)
	if err != nil {
		return r.fail(c, log, err)
	}

	if err := r.Event.DeleteEvent(c.Request().Context(), id); err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessMessage("Event deleted", nil))
}
