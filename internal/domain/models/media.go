package models

// UploadResult is what the media host hands back for a stored asset.
// PublicID is the handle needed to delete it later.
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
	Bytes    int64  `json:"bytes"`
}
