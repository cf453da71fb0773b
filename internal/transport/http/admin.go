package http

import (
	"errors"
	"log/slog"
	"net/http"

	admin "sweetcrumb/internal/services/admin_service"
	"sweetcrumb/internal/transport/http/dto"
	"sweetcrumb/internal/transport/http/dto/response"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

// VerifyAdmin godoc
// @Summary Open an admin session
// @Description Checks the shared admin key and sets the admin_session cookie for 24 hours.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.VerifyAdminRequest true "Admin key"
// @Success 200 {object} response.Response{data=dto.VerifyAdminResponse}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 429 {object} response.Response
// @Router /api/admin/verify [post]
func (r *Routers) VerifyAdmin(c echo.Context) error {
	const op = "http.routers.VerifyAdmin"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.VerifyAdminRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("admin key missing")
		return c.JSON(http.StatusBadRequest, response.ErrorResponse("Admin key is required"))
	}

	ctx := c.Request().Context()

	token, expiresAt, err := r.Admin.Verify(ctx, req.AdminKey)
	if err != nil {
		if errors.Is(err, admin.ErrInvalidKey) {
			return c.JSON(http.StatusUnauthorized, response.ErrInvalidAdminKey)
		}

		return r.fail(c, log, err)
	}

	// A stale or forged cookie still yields a fresh session to overwrite.
	sess, err := session.Get(admin.CookieName, c)
	if sess == nil {
		return r.fail(c, log, err)
	}

	r.Admin.SetToken(sess, token)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessMessage("Authenticated", dto.VerifyAdminResponse{
		Authenticated: true,
		ExpiresAt:     expiresAt,
	}))
}

// CheckAdmin godoc
// @Summary Report whether the admin cookie is live
// @Tags admin
// @Produce json
// @Success 200 {object} response.Response{data=dto.CheckAdminResponse}
// @Router /api/admin/check [get]
func (r *Routers) CheckAdmin(c echo.Context) error {
	ok := r.Admin.CheckSession(c.Request().Context(), c.Request())

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.CheckAdminResponse{
		Authenticated: ok,
	}))
}

// LogoutAdmin godoc
// @Summary Close the admin session
// @Tags admin
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/admin/logout [post]
func (r *Routers) LogoutAdmin(c echo.Context) error {
	const op = "http.routers.LogoutAdmin"

	log := r.log.With(
		slog.String("op", op),
	)

	sess, err := session.Get(admin.CookieName, c)
	if sess == nil {
		return r.fail(c, log, err)
	}

	if err := r.Admin.Logout(c.Request().Context(), c.Request(), sess); err != nil {
		return r.fail(c, log, err)
	}

	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessMessage("Logged out", nil))
}
