package sanitize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	MaxReviewNameLength = 100
	MaxReviewTextLength = 1000
	MaxCakeTypeLength   = 100
)

// ReviewData is the sanitized projection of a submitted review. It is the
// only shape that may be persisted.
type ReviewData struct {
	Name     string
	Email    string
	CakeType string
	Rating   int
	Review   string
}

type ReviewValidation struct {
	Valid     bool
	Errors    []string
	Sanitized ReviewData
}

// ValidateReviewData checks required fields, email format, the 1..5 rating
// range and length ceilings.
func ValidateReviewData(input map[string]any) ReviewValidation {
	var errs []string

	data := ReviewData{
		Name:     String(input["name"]),
		Email:    strings.ToLower(strings.TrimSpace(rawString(input["email"]))),
		CakeType: String(input["cakeType"]),
		Review:   String(input["review"]),
	}

	// Text fields count as missing when nothing is left after sanitizing.
	if err := ValidateRequired(map[string]any{
		"name":   data.Name,
		"email":  data.Email,
		"rating": input["rating"],
		"review": data.Review,
	}, "name", "email", "rating", "review"); err != nil {
		errs = append(errs, err.Error())
	}

	if data.Email != "" && !IsValidEmail(data.Email) {
		errs = append(errs, "Invalid email format")
	}

	if v, ok := input["rating"]; ok && v != nil {
		rating, ok := toInt(v)
		if !ok || rating < 1 || rating > 5 {
			errs = append(errs, "Rating must be between 1 and 5")
		} else {
			data.Rating = rating
		}
	}

	if len([]rune(data.Name)) > MaxReviewNameLength {
		errs = append(errs, fmt.Sprintf("Name must be less than %d characters", MaxReviewNameLength))
	}
	if len([]rune(data.Review)) > MaxReviewTextLength {
		errs = append(errs, fmt.Sprintf("Review must be less than %d characters", MaxReviewTextLength))
	}
	if len([]rune(data.CakeType)) > MaxCakeTypeLength {
		errs = append(errs, fmt.Sprintf("Cake type must be less than %d characters", MaxCakeTypeLength))
	}

	return ReviewValidation{
		Valid:     len(errs) == 0,
		Errors:    errs,
		Sanitized: data,
	}
}

func rawString(v any) string {
	s, _ := v.(string)
	return s
}

// toInt accepts JSON numbers (float64), ints and numeric strings. Fractional
// values are rejected.
func toInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		if t != math.Trunc(t) {
			return 0, false
		}
		return int(t), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		return n, err == nil
	}

	return 0, false
}
