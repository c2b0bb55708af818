package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func restoreClient() {
	redisNewClient = func(o *redis.Options) Cache { return redis.NewClient(o) }
}

func TestNewRedisClient(t *testing.T) {
	t.Run("options and ping deadline", func(t *testing.T) {
		t.Cleanup(restoreClient)
		var opts *redis.Options
		closed := false
		fake := &FakeCache{
			PingFn: func(ctx context.Context) *redis.StatusCmd {
				deadline, ok := ctx.Deadline()
				require.True(t, ok)
				require.WithinDuration(t, time.Now().Add(pingTimeout), deadline, time.Second)
				return redis.NewStatusResult("PONG", nil)
			},
			CloseFn: func() error { closed = true; return nil },
		}
		redisNewClient = func(o *redis.Options) Cache {
			opts = o
			return fake
		}

		c, err := NewRedisClient("127.0.0.1:6379", "secret", 1)
		require.NoError(t, err)
		require.Same(t, fake, c)
		require.Equal(t, "127.0.0.1:6379", opts.Addr)
		require.Equal(t, "secret", opts.Password)
		require.Equal(t, 1, opts.DB)
		require.False(t, closed)
	})

	t.Run("unreachable server is closed", func(t *testing.T) {
		t.Cleanup(restoreClient)
		closed := false
		redisNewClient = func(*redis.Options) Cache {
			return &FakeCache{
				PingFn:  func(context.Context) *redis.StatusCmd { return redis.NewStatusResult("", errors.New("refused")) },
				CloseFn: func() error { closed = true; return errors.New("already closed") },
			}
		}

		c, err := NewRedisClient("10.0.0.9:6379", "", 0)
		require.Nil(t, c)
		require.ErrorContains(t, err, "10.0.0.9:6379")
		require.ErrorContains(t, err, "refused")
		require.ErrorContains(t, err, "already closed")
		require.True(t, closed)
	})
}
