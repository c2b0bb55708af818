// File: internal/handler/auth/auth.go
package auth

import (
	"context"
	"time"

	"talent-tracker/internal/store"

	"github.com/google/uuid"
)

var (
	getUserByEmail = store.GetUserByEmail
	getUserByID    = store.GetUserByID
	createUser     = store.CreateUser

	updateUserName     = store.UpdateUserName
	updateUserPassword = store.UpdateUserPassword
)

// Hasher 由 service.PasswordHasher 實作
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer 由 service.TokenService 實作
type TokenIssuer interface {
	Issue(userID uuid.UUID) (string, time.Time, error)
}

// RefreshTokens 由 service.RefreshStore 實作
type RefreshTokens interface {
	Issue(ctx context.Context, userID uuid.UUID) (string, error)
	Resolve(ctx context.Context, token string) (uuid.UUID, error)
	Revoke(ctx context.Context, token string) error
}

func expiryPtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
