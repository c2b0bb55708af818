// File: internal/dto/token_response.go
package dto

import "time"

// swagger:model dto.TokenResponse
type TokenResponse struct {
	Token     string     `json:"token" example:"eyJhbGciOi..."`
	ExpiresAt *time.Time `json:"expiresAt,omitempty" example:"2025-05-09T15:04:05Z"`
}
