// Package sanitize escapes and validates free-text input before it is
// persisted. Rich-text bodies (blog content) deliberately bypass it.
package sanitize

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

const MaxEmailLength = 254

var (
	validate = validator.New()

	htmlEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#x27;",
		"/", "&#x2F;",
	)

	htmlUnescaper = strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#x27;", "'",
		"&#x2F;", "/",
		"&amp;", "&",
	)

	phoneRe = regexp.MustCompile(`^\+?[0-9][0-9\s\-()]{6,18}[0-9]$`)
)

// String escapes the six HTML-significant characters and trims the result.
// Anything that is not a string becomes "".
func String(v any) string {
	var s string

	switch t := v.(type) {
	case string:
		s = t
	case *string:
		if t == nil {
			return ""
		}
		s = *t
	default:
		return ""
	}

	return strings.TrimSpace(htmlEscaper.Replace(s))
}

// Unescape reverses String's entity encoding.
func Unescape(s string) string {
	return htmlUnescaper.Replace(s)
}

func IsValidEmail(email string) bool {
	if email == "" || len(email) > MaxEmailLength {
		return false
	}

	return validate.Var(email, "email") == nil
}

// IsValidURL accepts absolute http and https URLs only.
func IsValidURL(raw string) bool {
	if raw == "" {
		return false
	}

	return validate.Var(raw, "http_url") == nil
}

func IsValidPhone(phone string) bool {
	return phoneRe.MatchString(strings.TrimSpace(phone))
}

// MissingFieldsError lists every required field that was absent.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("Missing required fields: %s", strings.Join(e.Fields, ", "))
}

// ValidateRequired reports the names in fields that are absent, nil (typed
// nil pointers included) or the empty string. It returns nil when everything is present.
func ValidateRequired(fields map[string]any, names ...string) error {
	var missing []string

	for _, name := range names {
		if isMissing(fields, name) {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}

	return nil
}

func isMissing(fields map[string]any, name string) bool {
	v, ok := fields[name]
	if !ok || v == nil {
		return true
	}

	switch t := v.(type) {
	case string:
		return t == ""
	case *string:
		return t == nil || *t == ""
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}

	return false
}
