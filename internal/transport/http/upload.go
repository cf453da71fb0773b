package http

import (
	"log/slog"
	"net/http"
	"strings"

	"sweetcrumb/internal/domain/models"
	"sweetcrumb/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

const defaultUploadFolder = "uploads"

// UploadMedia godoc
// @Summary Upload a single image
// @Description Stores the file with the configured media host and returns its URL and public id.
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image"
// @Param folder formData string false "Folder"
// @Success 201 {object} response.Response{data=models.UploadResult}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/upload [post]
func (r *Routers) UploadMedia(c echo.Context) error {
	const op = "http.routers.UploadMedia"

	log := r.log.With(
		slog.String("op", op),
	)

	f, err := readForm(c)
	if err != nil {
		return r.fail(c, log, err)
	}

	file := f.File("file")
	if file == nil {
		return r.fail(c, log, models.NewValidationError("No file provided"))
	}

	folder := strings.Trim(f.Value("folder"), "/ ")
	if folder == "" || strings.Contains(folder, "..") {
		folder = defaultUploadFolder
	}

	res, err := r.Media.Upload(c.Request().Context(), file, folder)
	if err != nil {
		return r.fail(c, log, err)
	}

	log.Info("media uploaded", slog.String("public_id", res.PublicID))

	return c.JSON(http.StatusCreated, response.SuccessResponse(res))
}

// SitemapXML godoc
// @Summary Sitemap of the public site
// @Tags seo
// @Produce xml
// @Success 200 {string} string "sitemap"
// @Router /sitemap.xml [get]
func (r *Routers) SitemapXML(c echo.Context) error {
	const op = "http.routers.SitemapXML"

	log := r.log.With(
		slog.String("op", op),
	)

	body, err := r.Sitemap.Build(c.Request().Context())
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.Blob(http.StatusOK, echo.MIMEApplicationXMLCharsetUTF8, body)
}
