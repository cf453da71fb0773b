package mediahost_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"sweetcrumb/internal/storage"
	"sweetcrumb/internal/storage/mediahost"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func setupLocal(t *testing.T, maxSize int64) (*mediahost.Local, string) {
	t.Helper()

	dir := t.TempDir()

	host, err := mediahost.NewLocal(dir, "http://test.local/uploads/", maxSize)
	require.NoError(t, err)

	return host, dir
}

func createTestFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)

	_, err = part.Write(content)
	require.NoError(t, err)

	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	file, header, err := req.FormFile("file")
	require.NoError(t, err)
	file.Close()

	return header
}

func TestLocal_Upload(t *testing.T) {
	host, dir := setupLocal(t, 1<<20)
	ctx := context.Background()

	t.Run("successful upload", func(t *testing.T) {
		res, err := host.Upload(ctx, createTestFile(t, "cake.png", pngBytes), "gallery")
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(res.PublicID, "gallery/"))
		assert.True(t, strings.HasSuffix(res.PublicID, ".png"))
		assert.Equal(t, "http://test.local/uploads/"+res.PublicID, res.URL)
		assert.Equal(t, int64(len(pngBytes)), res.Bytes)

		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(res.PublicID)))
		require.NoError(t, err)
		assert.Equal(t, pngBytes, data)
	})

	t.Run("extension follows content not filename", func(t *testing.T) {
		res, err := host.Upload(ctx, createTestFile(t, "cake.jpg", pngBytes), "")
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(res.PublicID, ".png"))
		assert.NotContains(t, res.PublicID, "/")
	})

	t.Run("folder cannot escape base dir", func(t *testing.T) {
		res, err := host.Upload(ctx, createTestFile(t, "x.png", pngBytes), "../../etc")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(res.PublicID, "etc/"))
	})

	t.Run("non image rejected", func(t *testing.T) {
		_, err := host.Upload(ctx, createTestFile(t, "notes.png", []byte("just text")), "gallery")
		assert.ErrorIs(t, err, storage.ErrInvalidFileType)
	})

	t.Run("context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := host.Upload(ctx, createTestFile(t, "cake.png", pngBytes), "gallery")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLocal_UploadTooLarge(t *testing.T) {
	host, _ := setupLocal(t, 4)

	_, err := host.Upload(context.Background(), createTestFile(t, "cake.png", pngBytes), "gallery")
	assert.ErrorIs(t, err, storage.ErrFileTooLarge)
}

func TestLocal_Delete(t *testing.T) {
	host, dir := setupLocal(t, 0)
	ctx := context.Background()

	t.Run("successful delete", func(t *testing.T) {
		res, err := host.Upload(ctx, createTestFile(t, "cake.png", pngBytes), "menu")
		require.NoError(t, err)

		require.NoError(t, host.Delete(ctx, res.PublicID))

		_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(res.PublicID)))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("delete non-existent file", func(t *testing.T) {
		err := host.Delete(ctx, "menu/nonexistent.png")
		assert.ErrorIs(t, err, storage.ErrFileNotFound)
	})
}

func TestNewLocal(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		host, err := mediahost.NewLocal(t.TempDir(), "http://test.local", 0)
		require.NoError(t, err)
		assert.NotNil(t, host)
	})

	t.Run("invalid directory", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(file, nil, 0644))

		_, err := mediahost.NewLocal(filepath.Join(file, "sub"), "http://test.local", 0)
		assert.Error(t, err)
	})
}

func TestConcurrentUploads(t *testing.T) {
	host, _ := setupLocal(t, 0)
	ctx := context.Background()
	file := createTestFile(t, "concurrent.png", pngBytes)

	var mu sync.Mutex
	seen := make(map[string]struct{})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := host.Upload(ctx, file, "concurrent")
			assert.NoError(t, err)

			mu.Lock()
			seen[res.PublicID] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 10)
}
