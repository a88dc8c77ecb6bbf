package insights

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SnapshotCache stores computed KPI snapshots per tenant. Entries fall
// out on TTL; mutating business events invalidate them early.
type SnapshotCache interface {
	// Get returns the cached snapshot, or nil when absent or expired
	Get(ctx context.Context, tenantID uuid.UUID) (*KPISnapshot, error)

	// Set stores a snapshot with the given TTL
	Set(ctx context.Context, tenantID uuid.UUID, snapshot *KPISnapshot, ttl time.Duration) error

	// Invalidate drops the cached snapshot for a tenant
	Invalidate(ctx context.Context, tenantID uuid.UUID) error
}
