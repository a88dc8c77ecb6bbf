package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/nexa-erp/backend/internal/domain/insights"
)

const defaultSnapshotKeyPrefix = "insights:kpi:"

// RedisSnapshotCache implements SnapshotCache on Redis so multiple
// instances share snapshots and see each other's invalidations.
type RedisSnapshotCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisSnapshotCache creates a cache with an existing Redis client
func NewRedisSnapshotCache(client *redis.Client, keyPrefix string) *RedisSnapshotCache {
	if keyPrefix == "" {
		keyPrefix = defaultSnapshotKeyPrefix
	}
	return &RedisSnapshotCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Get returns the cached snapshot, or nil when absent or expired
func (c *RedisSnapshotCache) Get(ctx context.Context, tenantID uuid.UUID) (*insights.KPISnapshot, error) {
	payload, err := c.client.Get(ctx, c.key(tenantID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached snapshot: %w", err)
	}

	var snapshot insights.KPISnapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode cached snapshot: %w", err)
	}
	return &snapshot, nil
}

// Set stores a snapshot with the given TTL
func (c *RedisSnapshotCache) Set(ctx context.Context, tenantID uuid.UUID, snapshot *insights.KPISnapshot, ttl time.Duration) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := c.client.Set(ctx, c.key(tenantID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache snapshot: %w", err)
	}
	return nil
}

// Invalidate drops the cached snapshot for a tenant
func (c *RedisSnapshotCache) Invalidate(ctx context.Context, tenantID uuid.UUID) error {
	if err := c.client.Del(ctx, c.key(tenantID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached snapshot: %w", err)
	}
	return nil
}

func (c *RedisSnapshotCache) key(tenantID uuid.UUID) string {
	return c.keyPrefix + tenantID.String()
}

// Ensure interface compliance
var _ insights.SnapshotCache = (*RedisSnapshotCache)(nil)
