package middleware

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_IsAllowed(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	limiter := NewRateLimiter(client, RateLimitConfig{
		Window:    time.Hour,
		Limit:     3,
		KeyPrefix: "rate_limit:test",
	})
	ctx := context.Background()

	t.Run("allows up to the limit", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			allowed, remaining, _, err := limiter.IsAllowed(ctx, "user-a")
			require.NoError(t, err)
			assert.True(t, allowed)
			assert.Equal(t, 2-i, remaining)
		}
	})

	t.Run("blocks past the limit", func(t *testing.T) {
		allowed, remaining, resetTime, err := limiter.IsAllowed(ctx, "user-a")
		require.NoError(t, err)
		assert.False(t, allowed)
		assert.Equal(t, 0, remaining)
		assert.True(t, resetTime.After(time.Now()))
	})

	t.Run("users are counted independently", func(t *testing.T) {
		allowed, _, _, err := limiter.IsAllowed(ctx, "user-b")
		require.NoError(t, err)
		assert.True(t, allowed)
	})
}
