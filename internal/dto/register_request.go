// File: internal/dto/register_request.go
package dto

// swagger:model dto.RegisterRequest
type RegisterRequest struct {
	Name     string `json:"name" form:"name" validate:"required,max=100" example:"Alice"`
	Email    string `json:"email" form:"email" validate:"required,email,max=254" example:"alice@example.com"`
	Password string `json:"password" form:"password" validate:"required,maxbytes=72" example:"p1"`
	Role     string `json:"role" form:"role" validate:"omitempty,oneof=player coach admin" example:"player"`
}
