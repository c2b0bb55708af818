// File: internal/service/token.go
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken 所有驗證失敗都包裝這個錯誤
var ErrInvalidToken = errors.New("invalid token")

var (
	timeNowDefault = time.Now
	timeNow        = timeNowDefault
)

// Claims 定義 JWT 負載內容
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// UserUUID 解析 userId
func (c *Claims) UserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

// TokenService 使用啟動時載入的共享密鑰簽發與驗證 HS256 token
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService ttl 為 0 時簽發的 token 不帶 exp
func NewTokenService(secret []byte, ttl time.Duration) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, errors.New("JWT_SECRET not set")
	}
	if ttl < 0 {
		return nil, fmt.Errorf("invalid token ttl %s", ttl)
	}
	return &TokenService{secret: secret, ttl: ttl}, nil
}

// Issue 簽發 token；expiresAt 為零值表示不會過期
func (s *TokenService) Issue(userID uuid.UUID) (token string, expiresAt time.Time, err error) {
	now := timeNow()
	claims := Claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.ttl > 0 {
		expiresAt = now.Add(s.ttl)
		claims.ExpiresAt = jwt.NewNumericDate(expiresAt)
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return token, expiresAt, nil
}

// Verify 驗證並解析 JWT 令牌
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(timeNow),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if _, err := claims.UserUUID(); err != nil {
		return nil, fmt.Errorf("%w: userId: %v", ErrInvalidToken, err)
	}
	return claims, nil
}
