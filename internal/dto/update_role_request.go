// File: internal/dto/update_role_request.go
package dto

// swagger:model dto.UpdateRoleRequest
type UpdateRoleRequest struct {
	Role string `json:"role" form:"role" validate:"required,oneof=player coach admin" example:"coach"`
}
