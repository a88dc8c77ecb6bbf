package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nexa-erp/backend/internal/domain/insights"
)

// snapshotEntry wraps a cached snapshot with its expiration time
type snapshotEntry struct {
	snapshot  *insights.KPISnapshot
	expiresAt time.Time
}

func (e *snapshotEntry) isExpired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// InMemorySnapshotCache implements SnapshotCache with a process-local
// map. Suitable for single-instance deployments; distributed setups use
// the Redis-backed implementation so invalidation reaches every node.
type InMemorySnapshotCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*snapshotEntry
	now     func() time.Time
}

// NewInMemorySnapshotCache creates a new in-memory snapshot cache
func NewInMemorySnapshotCache() *InMemorySnapshotCache {
	return &InMemorySnapshotCache{
		entries: make(map[uuid.UUID]*snapshotEntry),
		now:     time.Now,
	}
}

// Get returns the cached snapshot, or nil when absent or expired
func (c *InMemorySnapshotCache) Get(ctx context.Context, tenantID uuid.UUID) (*insights.KPISnapshot, error) {
	c.mu.RLock()
	entry, ok := c.entries[tenantID]
	c.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if entry.isExpired(c.now()) {
		c.mu.Lock()
		// Re-check under the write lock; a fresher entry may have landed
		if current, ok := c.entries[tenantID]; ok && current.isExpired(c.now()) {
			delete(c.entries, tenantID)
		}
		c.mu.Unlock()
		return nil, nil
	}
	return entry.snapshot, nil
}

// Set stores a snapshot with the given TTL
func (c *InMemorySnapshotCache) Set(ctx context.Context, tenantID uuid.UUID, snapshot *insights.KPISnapshot, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[tenantID] = &snapshotEntry{
		snapshot:  snapshot,
		expiresAt: c.now().Add(ttl),
	}
	return nil
}

// Invalidate drops the cached snapshot for a tenant
func (c *InMemorySnapshotCache) Invalidate(ctx context.Context, tenantID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, tenantID)
	return nil
}

// Ensure interface compliance
var _ insights.SnapshotCache = (*InMemorySnapshotCache)(nil)
