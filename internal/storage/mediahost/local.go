package mediahost

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"sweetcrumb/internal/domain/models"
	"sweetcrumb/internal/storage"
)

// Local keeps files under baseDir and serves them from baseURL.
type Local struct {
	baseDir string
	baseURL string
	maxSize int64
}

func NewLocal(baseDir, baseURL string, maxSize int64) (*Local, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &Local{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
		maxSize: maxSize,
	}, nil
}

func (s *Local) Upload(ctx context.Context, file *multipart.FileHeader, folder string) (models.UploadResult, error) {
	const op = "mediahost.Local.Upload"

	if err := ctx.Err(); err != nil {
		return models.UploadResult{}, err
	}

	_, ext, err := DetectImage(file, s.maxSize)
	if err != nil {
		return models.UploadResult{}, err
	}

	key := objectKey(folder, ext)
	filePath := s.fullPath(key)

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return models.UploadResult{}, fmt.Errorf("%s: failed to create directories: %w", op, err)
	}

	src, err := file.Open()
	if err != nil {
		return models.UploadResult{}, fmt.Errorf("%s: failed to open source file: %w", op, err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return models.UploadResult{}, fmt.Errorf("%s: failed to create destination file: %w", op, err)
	}
	defer dst.Close()

	done := make(chan struct{})
	var size int64
	var copyErr error

	go func() {
		size, copyErr = io.Copy(dst, src)
		close(done)
	}()

	select {
	case <-done:
		if copyErr != nil {
			_ = os.Remove(filePath)
			return models.UploadResult{}, fmt.Errorf("%s: failed to copy file: %w", op, copyErr)
		}
	case <-ctx.Done():
		<-done
		_ = os.Remove(filePath)
		return models.UploadResult{}, ctx.Err()
	}

	return models.UploadResult{
		URL:      s.baseURL + "/" + key,
		PublicID: key,
		Bytes:    size,
	}, nil
}

func (s *Local) Delete(ctx context.Context, publicID string) error {
	const op = "mediahost.Local.Delete"

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Remove(s.fullPath(publicID)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", op, storage.ErrFileNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Dir is the directory served as static content.
func (s *Local) Dir() string {
	return s.baseDir
}

// fullPath keeps publicID inside baseDir even when it contains "..".
func (s *Local) fullPath(publicID string) string {
	return filepath.Join(s.baseDir, filepath.FromSlash(filepath.Clean("/"+publicID)))
}
