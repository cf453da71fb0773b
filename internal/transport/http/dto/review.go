package dto

import (
	"time"

	"sweetcrumb/internal/domain/models"

	"github.com/google/uuid"
)

// UpdateReviewRequest is the admin edit. Text fields are sanitized before
// they are stored.
type UpdateReviewRequest struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	CakeType   *string `json:"cakeType,omitempty"`
	Rating     *int    `json:"rating,omitempty"`
	Review     *string `json:"review,omitempty"`
	IsApproved *bool   `json:"isApproved,omitempty"`
	IsFeatured *bool   `json:"isFeatured,omitempty"`
}

// PublicReview is what site visitors see of a review. The reviewer's email
// stays with the admin view.
type PublicReview struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	CakeType   string    `json:"cakeType"`
	Rating     int       `json:"rating"`
	Review     string    `json:"review"`
	Avatar     *string   `json:"avatar"`
	IsFeatured bool      `json:"isFeatured"`
	CreatedAt  time.Time `json:"createdAt"`
}

func NewPublicReview(r models.Review) PublicReview {
	return PublicReview{
		ID:         r.ID,
		Name:       r.Name,
		CakeType:   r.CakeType,
		Rating:     r.Rating,
		Review:     r.Review,
		Avatar:     r.Avatar,
		IsFeatured: r.IsFeatured,
		CreatedAt:  r.CreatedAt,
	}
}

func NewPublicReviews(reviews []models.Review) []PublicReview {
	out := make([]PublicReview, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, NewPublicReview(r))
	}

	return out
}
