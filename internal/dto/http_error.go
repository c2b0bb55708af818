// File: internal/dto/http_error.go
package dto

// HTTPError 所有錯誤回應共用的格式；500 一律為 "Server error"
// swagger:model dto.HTTPError
type HTTPError struct {
	Message string `json:"message" example:"Access denied"`
}
