package models

import (
	"time"

	"github.com/google/uuid"
)

type Reel struct {
	ID                uuid.UUID `db:"id" json:"id"`
	VideoURL          string    `db:"video_url" json:"videoUrl"`
	ThumbnailURL      string    `db:"thumbnail_url" json:"thumbnail"`
	ThumbnailPublicID string    `db:"thumbnail_public_id" json:"thumbnailPublicId"`
	Caption           string    `db:"caption" json:"caption"`
	Order             int       `db:"display_order" json:"order"`
	IsActive          bool      `db:"is_active" json:"isActive"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time `db:"updated_at" json:"updatedAt"`
}
