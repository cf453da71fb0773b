package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Email      string    `db:"email" json:"email"`
	CakeType   string    `db:"cake_type" json:"cakeType"`
	Rating     int       `db:"rating" json:"rating"`
	Review     string    `db:"review" json:"review"`
	Avatar     *string   `db:"avatar" json:"avatar"`
	IsApproved bool      `db:"is_approved" json:"isApproved"`
	IsFeatured bool      `db:"is_featured" json:"isFeatured"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}

// ReviewFilter narrows a review listing. PublicOnly hides unapproved reviews.
type ReviewFilter struct {
	PublicOnly   bool
	FeaturedOnly bool
}

// ClampRating forces r into [MinRating, MaxRating].
func ClampRating(r int) int {
	if r < MinRating {
		return MinRating
	}
	if r > MaxRating {
		return MaxRating
	}
	return r
}
