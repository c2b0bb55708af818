// File: internal/dto/message_response.go
package dto

// MessageResponse 只帶訊息的回應
// swagger:model dto.MessageResponse
type MessageResponse struct {
	Message string `json:"message" example:"Registration successful"`
}
