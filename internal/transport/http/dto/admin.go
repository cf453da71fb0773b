package dto

import "time"

type VerifyAdminRequest struct {
	AdminKey string `json:"adminKey" validate:"required"`
}

type VerifyAdminResponse struct {
	Authenticated bool      `json:"authenticated"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

type CheckAdminResponse struct {
	Authenticated bool `json:"authenticated"`
}
