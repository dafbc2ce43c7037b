package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_Allow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewWithClock(func() time.Time { return now })

	// split allows 2 uses per 120s
	allowed, _ := limiter.Allow(1, "split")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow(1, "split")
	assert.True(t, allowed)

	allowed, retryAfter := limiter.Allow(1, "split")
	assert.False(t, allowed)
	assert.Greater(t, retryAfter, time.Duration(0))

	t.Run("window slides", func(t *testing.T) {
		now = now.Add(121 * time.Second)
		allowed, _ := limiter.Allow(1, "split")
		assert.True(t, allowed)
	})

	t.Run("users are independent", func(t *testing.T) {
		allowed, _ := limiter.Allow(2, "split")
		assert.True(t, allowed)
	})

	t.Run("commands are independent", func(t *testing.T) {
		allowed, _ := limiter.Allow(1, "harvest")
		assert.True(t, allowed)
	})
}

func TestLimiter_DefaultLimit(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewWithClock(func() time.Time { return now })

	for n := 0; n < defaultLimit.MaxUses; n++ {
		allowed, _ := limiter.Allow(7, "unlisted")
		assert.True(t, allowed)
	}

	allowed, _ := limiter.Allow(7, "unlisted")
	assert.False(t, allowed)
}

func TestLimiter_DropsExpiredKeys(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewWithClock(func() time.Time { return now })

	limiter.Allow(1, "harvest")
	limiter.Allow(2, "split")

	// Long past every window, a fresh call sweeps the dead keys out
	now = now.Add(maxWindow + time.Second)
	limiter.Allow(3, "harvest")

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.Len(t, limiter.history, 1)
	assert.Contains(t, limiter.history, "3:harvest")
}
