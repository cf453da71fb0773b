// Package mediahost stores uploaded images outside the database. Only the
// returned URL and PublicID are persisted by callers.
package mediahost

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"strings"

	"sweetcrumb/internal/domain/models"
	"sweetcrumb/internal/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

type MediaHost interface {
	Upload(ctx context.Context, file *multipart.FileHeader, folder string) (models.UploadResult, error)
	Delete(ctx context.Context, publicID string) error
}

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// DetectImage sniffs the file content and returns its mime type and the
// extension stored objects get. Files over maxSize or of another type are
// rejected.
func DetectImage(file *multipart.FileHeader, maxSize int64) (mimeType, ext string, err error) {
	const op = "mediahost.DetectImage"

	if maxSize > 0 && file.Size > maxSize {
		return "", "", fmt.Errorf("%s: %w", op, storage.ErrFileTooLarge)
	}

	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	defer src.Close()

	mt, err := mimetype.DetectReader(src)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}

	ext, ok := allowedImageTypes[mt.String()]
	if !ok {
		return "", "", fmt.Errorf("%s: %s: %w", op, mt.String(), storage.ErrInvalidFileType)
	}

	return mt.String(), ext, nil
}

// objectKey builds "<folder>/<uuid><ext>" with folder reduced to a safe
// relative path.
func objectKey(folder, ext string) string {
	folder = strings.Trim(path.Clean("/"+folder), "/")
	name := uuid.NewString() + ext
	if folder == "" {
		return name
	}
	return folder + "/" + name
}
