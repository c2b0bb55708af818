// File: internal/service/password.go
package service

import (
	"errors"
	"fmt"

	"talent-tracker/internal/apperror"

	"golang.org/x/crypto/bcrypt"
)

var (
	bcryptGenerateFromPassword   = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
)

// PasswordHasher 以 bcrypt 產生帶鹽雜湊
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher cost 超出 bcrypt 範圍時改用 bcrypt.DefaultCost
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash 接收明文密碼，回傳 bcrypt 哈希字串；超過 72 bytes 回傳 Validation 錯誤
func (h *PasswordHasher) Hash(password string) (string, error) {
	hashBytes, err := bcryptGenerateFromPassword([]byte(password), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperror.Wrap(apperror.KindValidation, "Password: Maximum length is 72 bytes", err)
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashBytes), nil
}

// Verify 比對明文密碼與 bcrypt 哈希；格式錯誤的哈希視為不相符
func (h *PasswordHasher) Verify(password, hash string) bool {
	return bcryptCompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
