package inventory

import (
	"context"

	"github.com/google/uuid"
)

// StockMovementRepository defines the persistence surface for the
// stock movement audit trail.
type StockMovementRepository interface {
	// Save appends a movement record
	Save(ctx context.Context, movement *StockMovement) error

	// FindByProduct returns movements for a product, newest first
	FindByProduct(ctx context.Context, tenantID, productID uuid.UUID, limit int) ([]StockMovement, error)

	// FindBySaleRef returns movements tagged with a sale reference
	FindBySaleRef(ctx context.Context, tenantID uuid.UUID, saleRef string) ([]StockMovement, error)
}
