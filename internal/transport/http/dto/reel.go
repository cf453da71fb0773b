package dto

import (
	"mime/multipart"

	"sweetcrumb/internal/domain/models"
)

type CreateReelRequest struct {
	VideoURL  string
	Caption   string
	Order     *int
	IsActive  *bool
	Thumbnail *multipart.FileHeader
}

type UpdateReelRequest struct {
	VideoURL  *string
	Caption   *string
	Order     *int
	IsActive  *bool
	Thumbnail *multipart.FileHeader
}

type ReelUpdateResponse struct {
	Item        models.Reel         `json:"item"`
	SwappedWith *models.SwappedWith `json:"swappedWith"`
}
