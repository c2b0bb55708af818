// File: internal/dto/update_password_request.go
package dto

// swagger:model dto.UpdatePasswordRequest
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" form:"currentPassword" validate:"required" example:"OldSecret123!"`
	NewPassword     string `json:"newPassword" form:"newPassword" validate:"required,maxbytes=72" example:"NewSecret456!"`
}
