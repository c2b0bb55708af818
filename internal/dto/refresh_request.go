// File: internal/dto/refresh_request.go
package dto

// swagger:model dto.RefreshRequest
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" form:"refreshToken" validate:"required" example:"q8v1..."`
}
