package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexa-erp/backend/internal/domain/insights"
)

func TestInMemorySnapshotCache(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	snapshot := &insights.KPISnapshot{
		Liquidity:     insights.LiquidityGood,
		Profitability: insights.ProfitabilityThin,
		Growth:        insights.GrowthStable,
		ComputedAt:    time.Now(),
	}

	t.Run("miss on empty cache", func(t *testing.T) {
		cache := NewInMemorySnapshotCache()
		got, err := cache.Get(ctx, tenantID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("set then get within TTL", func(t *testing.T) {
		cache := NewInMemorySnapshotCache()
		require.NoError(t, cache.Set(ctx, tenantID, snapshot, time.Minute))

		got, err := cache.Get(ctx, tenantID)
		require.NoError(t, err)
		assert.Equal(t, snapshot, got)
	})

	t.Run("expired entries miss", func(t *testing.T) {
		cache := NewInMemorySnapshotCache()
		now := time.Now()
		cache.now = func() time.Time { return now }

		require.NoError(t, cache.Set(ctx, tenantID, snapshot, time.Minute))

		cache.now = func() time.Time { return now.Add(2 * time.Minute) }
		got, err := cache.Get(ctx, tenantID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("invalidate drops the entry", func(t *testing.T) {
		cache := NewInMemorySnapshotCache()
		require.NoError(t, cache.Set(ctx, tenantID, snapshot, time.Minute))
		require.NoError(t, cache.Invalidate(ctx, tenantID))

		got, err := cache.Get(ctx, tenantID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("tenants are isolated", func(t *testing.T) {
		cache := NewInMemorySnapshotCache()
		require.NoError(t, cache.Set(ctx, tenantID, snapshot, time.Minute))

		got, err := cache.Get(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
