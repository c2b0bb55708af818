// File: internal/model/user.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Role 使用者角色，決定可存取的路由
type Role string

const (
	RolePlayer Role = "player"
	RoleCoach  Role = "coach"
	RoleAdmin  Role = "admin"
)

// Roles 回傳所有合法角色
func Roles() []Role {
	return []Role{RolePlayer, RoleCoach, RoleAdmin}
}

// Valid 判斷是否為合法角色
func (r Role) Valid() bool {
	switch r {
	case RolePlayer, RoleCoach, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}
