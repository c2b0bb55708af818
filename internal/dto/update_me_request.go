// File: internal/dto/update_me_request.go
package dto

// UpdateMeRequest 目前只開放修改顯示名稱；email 與角色不可自行變更
// swagger:model dto.UpdateMeRequest
type UpdateMeRequest struct {
	Name string `json:"name" form:"name" validate:"required,max=100" example:"Alice"`
}
