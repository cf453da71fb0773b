package models

import (
	"time"

	"github.com/google/uuid"
)

// Event keeps ImageURLs and ImagePublicIDs as parallel slices: index i of
// one always describes the same uploaded image as index i of the other.
type Event struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Title          string    `db:"title" json:"title"`
	Venue          string    `db:"venue" json:"venue"`
	Date           time.Time `db:"event_date" json:"date"`
	Description    string    `db:"description" json:"description"`
	ImageURLs      []string  `db:"image_urls" json:"images"`
	ImagePublicIDs []string  `db:"image_public_ids" json:"imagePublicIds"`
	CoverImage     string    `db:"cover_image" json:"coverImage"`
	Highlights     string    `db:"highlights" json:"highlights"`
	Order          int       `db:"display_order" json:"order"`
	IsActive       bool      `db:"is_active" json:"isActive"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

// RemoveImages drops every image whose public id is in ids and returns the
// ids that were actually removed.
func (e *Event) RemoveImages(ids []string) []string {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	urls := make([]string, 0, len(e.ImageURLs))
	publicIDs := make([]string, 0, len(e.ImagePublicIDs))
	var removed []string

	for i, publicID := range e.ImagePublicIDs {
		if _, ok := drop[publicID]; ok {
			removed = append(removed, publicID)
			if i < len(e.ImageURLs) && e.ImageURLs[i] == e.CoverImage {
				e.CoverImage = ""
			}
			continue
		}
		publicIDs = append(publicIDs, publicID)
		if i < len(e.ImageURLs) {
			urls = append(urls, e.ImageURLs[i])
		}
	}

	e.ImageURLs = urls
	e.ImagePublicIDs = publicIDs

	if e.CoverImage == "" && len(e.ImageURLs) > 0 {
		e.CoverImage = e.ImageURLs[0]
	}

	return removed
}
