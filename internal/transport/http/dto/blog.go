package dto

import (
	"mime/multipart"
	"time"

	"sweetcrumb/internal/domain/models"
)

type CreateBlogPostRequest struct {
	Title          string                `json:"title"`
	Excerpt        string                `json:"excerpt"`
	Content        string                `json:"content"`
	Author         string                `json:"author,omitempty"`
	Category       string                `json:"category,omitempty"`
	Tags           []string              `json:"tags,omitempty"`
	PublishedAt    *time.Time            `json:"publishedAt,omitempty"`
	IsPublished    *bool                 `json:"isPublished,omitempty"`
	IsActive       *bool                 `json:"isActive,omitempty"`
	Order          *int                  `json:"order,omitempty"`
	SEOTitle       string                `json:"seoTitle,omitempty"`
	SEODescription string                `json:"seoDescription,omitempty"`
	CoverImage     *multipart.FileHeader `json:"-" swaggerignore:"true"`
}

// UpdateBlogPostRequest carries only the fields being changed. A nil Tags
// leaves the tags untouched; an empty non-nil slice clears them.
type UpdateBlogPostRequest struct {
	Title          *string               `json:"title,omitempty"`
	Excerpt        *string               `json:"excerpt,omitempty"`
	Content        *string               `json:"content,omitempty"`
	Author         *string               `json:"author,omitempty"`
	Category       *string               `json:"category,omitempty"`
	Tags           []string              `json:"tags,omitempty"`
	PublishedAt    *time.Time            `json:"publishedAt,omitempty"`
	IsPublished    *bool                 `json:"isPublished,omitempty"`
	IsActive       *bool                 `json:"isActive,omitempty"`
	Order          *int                  `json:"order,omitempty"`
	SEOTitle       *string               `json:"seoTitle,omitempty"`
	SEODescription *string               `json:"seoDescription,omitempty"`
	CoverImage     *multipart.FileHeader `json:"-" swaggerignore:"true"`
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type BlogPostListResponse struct {
	Posts      []models.BlogPost `json:"posts"`
	Pagination Pagination        `json:"pagination"`
}
