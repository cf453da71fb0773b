package http

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/url"
	"strconv"
	"strings"
	"time"

	"sweetcrumb/internal/domain/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const maxFormMemory = 32 << 20

// form reads a multipart or urlencoded body. Accessors return nil for
// absent fields so callers can tell "not sent" from "sent empty". The first
// malformed value is kept and reported by Err.
type form struct {
	values url.Values
	files  map[string][]*multipart.FileHeader
	err    error
}

func readForm(c echo.Context) (*form, error) {
	req := c.Request()

	f := &form{}

	if strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		if err := req.ParseMultipartForm(maxFormMemory); err != nil {
			return nil, models.NewValidationError("Invalid form data")
		}
		f.values = req.MultipartForm.Value
		f.files = req.MultipartForm.File

		return f, nil
	}

	values, err := c.FormParams()
	if err != nil {
		return nil, models.NewValidationError("Invalid form data")
	}
	f.values = values

	return f, nil
}

func (f *form) Err() error {
	return f.err
}

func (f *form) fail(name string) {
	if f.err == nil {
		f.err = models.NewValidationError("Invalid %s", name)
	}
}

func (f *form) raw(name string) (string, bool) {
	vs, ok := f.values[name]
	if !ok || len(vs) == 0 {
		return "", false
	}

	return vs[0], true
}

func (f *form) Has(name string) bool {
	_, ok := f.raw(name)
	return ok
}

// Value is the field as sent, or "" when absent.
func (f *form) Value(name string) string {
	v, _ := f.raw(name)
	return v
}

func (f *form) String(name string) *string {
	v, ok := f.raw(name)
	if !ok {
		return nil
	}

	return &v
}

func (f *form) Int(name string) *int {
	v, ok := f.raw(name)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		f.fail(name)
		return nil
	}

	return &n
}

func (f *form) Bool(name string) *bool {
	v, ok := f.raw(name)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}

	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		f.fail(name)
		return nil
	}

	return &b
}

func (f *form) Decimal(name string) *decimal.Decimal {
	v, ok := f.raw(name)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}

	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		f.fail(name)
		return nil
	}

	return &d
}

func (f *form) UUID(name string) *uuid.UUID {
	v, ok := f.raw(name)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}

	id, err := uuid.Parse(strings.TrimSpace(v))
	if err != nil {
		f.fail(name)
		return nil
	}

	return &id
}

// Time accepts RFC 3339 timestamps and plain dates.
func (f *form) Time(name string) *time.Time {
	v, ok := f.raw(name)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}

	v = strings.TrimSpace(v)
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, v); err == nil {
			return &t
		}
	}

	f.fail(name)
	return nil
}

// Strings collects a list field sent as repeated values, a JSON array or a
// comma separated string. A present but empty field yields an empty slice.
func (f *form) Strings(name string) []string {
	vs, ok := f.values[name]
	if !ok {
		return nil
	}

	out := make([]string, 0, len(vs))
	for _, v := range vs {
		v = strings.TrimSpace(v)

		if strings.HasPrefix(v, "[") {
			var arr []string
			if err := json.Unmarshal([]byte(v), &arr); err != nil {
				f.fail(name)
				return nil
			}
			out = appendNonEmpty(out, arr...)
			continue
		}

		out = appendNonEmpty(out, strings.Split(v, ",")...)
	}

	return out
}

func (f *form) File(name string) *multipart.FileHeader {
	files := f.files[name]
	if len(files) == 0 {
		return nil
	}

	return files[0]
}

func (f *form) Files(name string) []*multipart.FileHeader {
	return f.files[name]
}

func appendNonEmpty(dst []string, vs ...string) []string {
	for _, v := range vs {
		if v = strings.TrimSpace(v); v != "" {
			dst = append(dst, v)
		}
	}

	return dst
}

var errInvalidID = errors.New("invalid id")

func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errInvalidID
	}

	return id, nil
}
