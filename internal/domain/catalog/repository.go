package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductRepository defines the product lookup and stock mutation
// surface consumed by the stock ledger.
type ProductRepository interface {
	// FindByRef resolves a loose product reference through the fallback
	// chain: internal identifier, then external code, then display name.
	// The first hit wins; exhaustion returns shared.ErrProductNotResolved.
	FindByRef(ctx context.Context, tenantID uuid.UUID, ref string) (*Product, error)

	// UpdateStock overwrites the authoritative stock quantity
	UpdateStock(ctx context.Context, productID uuid.UUID, newQuantity decimal.Decimal) error

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error
}
