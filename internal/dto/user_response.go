// File: internal/dto/user_response.go
package dto

import (
	"time"

	"talent-tracker/internal/model"

	"github.com/google/uuid"
)

// swagger:model dto.UserResponse
type UserResponse struct {
	ID        uuid.UUID  `json:"id" example:"3f2b8c1e-6a4d-4f7e-9b2a-1c2d3e4f5a6b"`
	Name      string     `json:"name" example:"Alice"`
	Email     string     `json:"email" example:"alice@example.com"`
	Role      model.Role `json:"role" example:"player"`
	CreatedAt time.Time  `json:"createdAt" example:"2025-05-01T15:04:05Z"`
}

// NewUserResponse 轉換為對外輸出的使用者資料，不含密碼雜湊
func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// NewUserResponses 轉換使用者清單，空清單輸出 []
func NewUserResponses(users []*model.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}
