package dto

import "mime/multipart"

type CreateGalleryImageRequest struct {
	Caption  string
	AltText  string
	Order    *int
	IsActive *bool
	Image    *multipart.FileHeader
}

type UpdateGalleryImageRequest struct {
	Caption  *string
	AltText  *string
	Order    *int
	IsActive *bool
	Image    *multipart.FileHeader
}
