// File: internal/service/refresh.go
package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"talent-tracker/internal/cache"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const refreshKeyPrefix = "refresh:"

var (
	randReadDefault = rand.Read
	randRead        = randReadDefault
)

// RefreshStore 以 Redis 保存不透明的 refresh token -> user id
type RefreshStore struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewRefreshStore(c cache.Cache, ttl time.Duration) *RefreshStore {
	return &RefreshStore{cache: c, ttl: ttl}
}

func refreshKey(token string) string { return refreshKeyPrefix + token }

// Issue 產生 32 bytes 隨機 token 並寫入 Redis
func (s *RefreshStore) Issue(ctx context.Context, userID uuid.UUID) (string, error) {
	buf := make([]byte, 32)
	if _, err := randRead(buf); err != nil {
		return "", fmt.Errorf("refresh token: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(buf)
	if err := s.cache.Set(ctx, refreshKey(token), userID.String(), s.ttl).Err(); err != nil {
		return "", fmt.Errorf("refresh token: %w", err)
	}
	return token, nil
}

// Resolve 找不到或內容損壞時回傳 ErrInvalidToken
func (s *RefreshStore) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, ErrInvalidToken
	}
	val, err := s.cache.Get(ctx, refreshKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, ErrInvalidToken
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve refresh token: %w", err)
	}
	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return id, nil
}

// Revoke 刪除 token；不存在時不視為錯誤
func (s *RefreshStore) Revoke(ctx context.Context, token string) error {
	if err := s.cache.Del(ctx, refreshKey(token)).Err(); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}
