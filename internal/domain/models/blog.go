package models

import (
	"time"

	"github.com/google/uuid"
)

type BlogPost struct {
	ID                 uuid.UUID `db:"id" json:"id"`
	Title              string    `db:"title" json:"title"`
	Slug               string    `db:"slug" json:"slug"`
	Excerpt            string    `db:"excerpt" json:"excerpt"`
	Content            string    `db:"content" json:"content"`
	CoverImageURL      string    `db:"cover_image_url" json:"coverImage"`
	CoverImagePublicID string    `db:"cover_image_public_id" json:"coverImagePublicId,omitempty"`
	Author             string    `db:"author" json:"author"`
	PublishedAt        time.Time `db:"published_at" json:"publishedAt"`
	ReadTime           int       `db:"read_time" json:"readTime"`
	Tags               []string  `db:"tags" json:"tags"`
	Category           string    `db:"category" json:"category"`
	Views              int       `db:"views" json:"views"`
	IsPublished        bool      `db:"is_published" json:"isPublished"`
	IsActive           bool      `db:"is_active" json:"isActive"`
	Order              int       `db:"display_order" json:"order"`
	SEOTitle           string    `db:"seo_title" json:"seoTitle,omitempty"`
	SEODescription     string    `db:"seo_description" json:"seoDescription,omitempty"`
	CreatedAt          time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time `db:"updated_at" json:"updatedAt"`
}

// BlogFilter narrows a blog listing. PublicOnly hides unpublished and
// inactive posts.
type BlogFilter struct {
	PublicOnly bool
	Category   string
	Tag        string
	Page       int
	PerPage    int
}
