package models

import (
	"time"

	"github.com/google/uuid"
)

type GalleryImage struct {
	ID        uuid.UUID `db:"id" json:"id"`
	ImageURL  string    `db:"image_url" json:"imageUrl"`
	PublicID  string    `db:"public_id" json:"publicId"`
	Caption   string    `db:"caption" json:"caption"`
	AltText   string    `db:"alt_text" json:"altText"`
	Order     int       `db:"display_order" json:"order"`
	IsActive  bool      `db:"is_active" json:"isActive"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
