package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryReportCache(t *testing.T) {
	ctx := context.Background()

	type payload struct {
		Month string             `json:"month"`
		Total map[string]float64 `json:"total"`
	}

	t.Run("set then get round trips", func(t *testing.T) {
		cache := NewInMemoryReportCache()
		defer cache.Close()

		in := payload{Month: "2024-03", Total: map[string]float64{"ARS": 300}}
		require.NoError(t, cache.Set(ctx, "cashbox:2024-03", in, time.Minute))

		var out payload
		hit, err := cache.Get(ctx, "cashbox:2024-03", &out)
		require.NoError(t, err)
		assert.True(t, hit)
		assert.Equal(t, in, out)
	})

	t.Run("miss on unknown key", func(t *testing.T) {
		cache := NewInMemoryReportCache()
		defer cache.Close()

		var out payload
		hit, err := cache.Get(ctx, "missing", &out)
		require.NoError(t, err)
		assert.False(t, hit)
	})

	t.Run("expired entry is a miss", func(t *testing.T) {
		cache := NewInMemoryReportCache()
		defer cache.Close()

		require.NoError(t, cache.Set(ctx, "short", payload{Month: "2024-01"}, time.Millisecond))
		time.Sleep(5 * time.Millisecond)

		var out payload
		hit, err := cache.Get(ctx, "short", &out)
		require.NoError(t, err)
		assert.False(t, hit)
	})

	t.Run("cleanup drops expired entries", func(t *testing.T) {
		cache := NewInMemoryReportCache()
		defer cache.Close()

		require.NoError(t, cache.Set(ctx, "old", payload{}, time.Millisecond))
		time.Sleep(5 * time.Millisecond)
		cache.cleanup()

		cache.mu.RLock()
		_, exists := cache.entries["old"]
		cache.mu.RUnlock()
		assert.False(t, exists)
	})

	t.Run("close is idempotent", func(t *testing.T) {
		cache := NewInMemoryReportCache()
		require.NoError(t, cache.Close())
		require.NoError(t, cache.Close())
	})
}
