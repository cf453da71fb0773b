package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"sweetcrumb/internal/transport/http/dto"
	"sweetcrumb/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// ListReviews godoc
// @Summary List reviews
// @Description Public callers only see approved reviews, without reviewer emails.
// @Tags reviews
// @Produce json
// @Param featured query bool false "Only featured reviews"
// @Success 200 {object} response.Response{data=[]dto.PublicReview}
// @Router /api/reviews [get]
func (r *Routers) ListReviews(c echo.Context) error {
	const op = "http.routers.ListReviews"

	log := r.log.With(
		slog.String("op", op),
	)

	featured := c.QueryParam("featured") == "true"
	admin := r.isAdmin(c)

	reviews, err := r.Review.ListReviews(c.Request().Context(), admin, featured)
	if err != nil {
		return r.fail(c, log, err)
	}

	if !admin {
		return c.JSON(http.StatusOK, response.SuccessResponse(dto.NewPublicReviews(reviews)))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(reviews))
}

// GetReview godoc
// @Summary Get a review
// @Tags reviews
// @Produce json
// @Param id path string true "Review id"
// @Success 200 {object} response.Response{data=dto.PublicReview}
// @Failure 404 {object} response.Response
// @Router /api/reviews/{id} [get]
func (r *Routers) GetReview(c echo.Context) error {
	const op = "http.routers.GetReview"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseID(c)
	if err != nil {
		return r.fail(c, log, err)
	}

	admin := r.isAdmin(c)

	review, err := r.Review.GetReview(c.Request().Context(), id, admin)
	if err != nil {
		return r.fail(c, log, err)
	}

	if !admin {
		return c.JSON(http.StatusOK, response.SuccessResponse(dto.NewPublicReview(review)))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(review))
}

// SubmitReview godoc
// @Summary Submit a customer review
// @Description Open to everyone and rate limited. The review waits for approval.
// @Tags reviews
// @Accept json
// @Produce json
// @Param request body object{name=string,email=string,cakeType=string,rating=int,review=string} true "Review"
// @Success 201 {object} response.Response{data=models.Review}
// @Failure 400 {object} response.Response
// @Failure 429 {object} response.Response
// @Router /api/reviews [post]
func (r *Routers) SubmitReview(c echo.Context) error {
	const op = "http.routers.SubmitReview"

	log := r.log.With(
		slog.String("op", op),
	)

	input, err := reviewInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	review, err := r.Review.SubmitReview(c.Request().Context(), input)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessMessage("Thank you! Your review will appear once approved.", review))
}

// UpdateReview godoc
// @Summary Moderate or edit a review
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path string true "Review id"
// @Param request body dto.UpdateReviewRequest true "Changed fields"
// @Success 200 {object} response.Response{data=models.Review}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/reviews/{id} [put]
func (r *Routers) UpdateReview(c echo.Context) error {
	const op = "http.routers.UpdateReview"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseID(c)
	if err != nil {
		return r.fail(c, log, err)
	}

	var req dto.UpdateReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	review, err := r.Review.UpdateReview(c.Request().Context(), id, req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(review))
}

// DeleteReview godoc
// @Summary Delete a review
// @Tags reviews
// @Produce json
// @Param id path string true "Review id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/reviews/{id} [delete]
func (r *Routers) DeleteReview(c echo.Context) error {
	const op = "http.routers.DeleteReview"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseID(c)
	if err != nil {
		return r.fail(c, log, err)
	}

	if err := r.Review.DeleteReview(c.Request().Context(), id); err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessMessage("Review deleted", nil))
}

// reviewInput reads the untrusted submission as loose values, JSON or form.
func reviewInput(c echo.Context) (map[string]any, error) {
	input := make(map[string]any)

	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		if err := json.NewDecoder(c.Request().Body).Decode(&input); err != nil {
			return nil, err
		}

		return input, nil
	}

	f, err := readForm(c)
	if err != nil {
		return nil, err
	}
	for name := range f.values {
		input[name] = f.Value(name)
	}

	return input, nil
}
