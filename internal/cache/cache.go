package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache 定義快取操作介面
// 目前用於保存 refresh token 與健康檢查
// 方便測試時替換 FakeCache 實作
// ttl <= 0 表示不設過期

type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

type FakeCache struct {
	GetFn   func(ctx context.Context, key string) *redis.StringCmd
	SetFn   func(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	DelFn   func(ctx context.Context, keys ...string) *redis.IntCmd
	PingFn  func(ctx context.Context) *redis.StatusCmd
	CloseFn func() error
}

// Get 執行 Fake 設定或 panic
func (f *FakeCache) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.GetFn != nil {
		return f.GetFn(ctx, key)
	}
	panic("unexpected Get")
}

// Set 執行 Fake 設定或 panic
func (f *FakeCache) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if f.SetFn != nil {
		return f.SetFn(ctx, key, value, expiration)
	}
	panic("unexpected Set")
}

// Del 執行 Fake 設定或 panic
func (f *FakeCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	if f.DelFn != nil {
		return f.DelFn(ctx, keys...)
	}
	panic("unexpected Del")
}

// Ping 執行 Fake 設定或 panic
func (f *FakeCache) Ping(ctx context.Context) *redis.StatusCmd {
	if f.PingFn != nil {
		return f.PingFn(ctx)
	}
	panic("unexpected Ping")
}

// Close 執行 Fake 設定或 no-op
func (f *FakeCache) Close() error {
	if f.CloseFn != nil {
		return f.CloseFn()
	}
	return nil
}

// MemoryCache 以 map 模擬 Redis 的 Get/Set/Del，供其他套件的測試使用
type MemoryCache struct {
	FakeCache
	Data map[string]string
}

func NewMemoryCache() *MemoryCache {
	m := &MemoryCache{Data: map[string]string{}}
	m.GetFn = func(ctx context.Context, key string) *redis.StringCmd {
		v, ok := m.Data[key]
		if !ok {
			return redis.NewStringResult("", redis.Nil)
		}
		return redis.NewStringResult(v, nil)
	}
	m.SetFn = func(ctx context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
		switch v := value.(type) {
		case string:
			m.Data[key] = v
		case []byte:
			m.Data[key] = string(v)
		default:
			panic("MemoryCache: unsupported value type")
		}
		return redis.NewStatusResult("OK", nil)
	}
	m.DelFn = func(ctx context.Context, keys ...string) *redis.IntCmd {
		var n int64
		for _, k := range keys {
			if _, ok := m.Data[k]; ok {
				delete(m.Data, k)
				n++
			}
		}
		return redis.NewIntResult(n, nil)
	}
	m.PingFn = func(ctx context.Context) *redis.StatusCmd { return redis.NewStatusResult("PONG", nil) }
	return m
}
