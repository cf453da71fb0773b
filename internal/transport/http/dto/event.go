package dto

import "mime/multipart"

// Event dates are accepted as RFC 3339 timestamps or plain 2006-01-02 days.
type CreateEventRequest struct {
	Title       string
	Venue       string
	Date        string
	Description string
	Highlights  string
	Order       *int
	IsActive    *bool
	Images      []*multipart.FileHeader
	CoverImage  *multipart.FileHeader
}

// UpdateEventRequest appends Images to the event and drops every image
// whose public id is listed in RemoveImages.
type UpdateEventRequest struct {
	Title        *string
	Venue        *string
	Date         *string
	Description  *string
	Highlights   *string
	Order        *int
	IsActive     *bool
	Images       []*multipart.FileHeader
	RemoveImages []string
	CoverImage   *multipart.FileHeader
}
