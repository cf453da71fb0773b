package models

import "unicode/utf8"

// Widths of the bounded text columns.
const (
	MaxAuthorLength         = 100
	MaxBlogCategoryLength   = 50
	MaxSEOTitleLength       = 70
	MaxSEODescriptionLength = 160
	MaxEventTitleLength     = 200
	MaxVenueLength          = 200
	MaxCaptionLength        = 200
	MaxAltTextLength        = 200
	MaxBadgeLength          = 30
	MaxReelCaptionLength    = 300
)

// CheckLength rejects value when it holds more than max characters. It is
// meant for stored, already sanitized text.
func CheckLength(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return NewValidationError("%s must be less than %d characters", field, max)
	}

	return nil
}

// CheckLengths runs CheckLength over field/value/max triples and returns
// the first failure.
func CheckLengths(checks ...LengthCheck) error {
	for _, c := range checks {
		if err := CheckLength(c.Field, c.Value, c.Max); err != nil {
			return err
		}
	}

	return nil
}

type LengthCheck struct {
	Field string
	Value string
	Max   int
}
