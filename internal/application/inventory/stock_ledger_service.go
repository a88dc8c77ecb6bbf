package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/nexa-erp/backend/internal/domain/catalog"
	"github.com/nexa-erp/backend/internal/domain/inventory"
	"github.com/nexa-erp/backend/internal/domain/shared"
)

// StockLedgerService applies stock movements: it resolves the product,
// derives the new quantity, persists the movement audit record, updates
// the authoritative quantity and re-emits the movement as an event so
// the ledger engine can post matching inventory lines.
//
// Overselling is permitted: an exit may drive stock negative, which is
// logged as a warning but never blocked.
type StockLedgerService struct {
	products  catalog.ProductRepository
	movements inventory.StockMovementRepository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewStockLedgerService creates a new stock ledger service
func NewStockLedgerService(
	products catalog.ProductRepository,
	movements inventory.StockMovementRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *StockLedgerService {
	return &StockLedgerService{
		products:  products,
		movements: movements,
		publisher: publisher,
		logger:    logger,
	}
}

// MovementRequest describes one stock change to apply
type MovementRequest struct {
	ProductRef string
	Kind       inventory.MovementKind
	Quantity   decimal.Decimal
	Reason     string
	Value      decimal.Decimal
	SaleRef    string
}

// Apply records one stock movement and re-emits it
func (s *StockLedgerService) Apply(ctx context.Context, tenantID uuid.UUID, req MovementRequest) (*inventory.StockMovement, error) {
	product, err := s.products.FindByRef(ctx, tenantID, req.ProductRef)
	if err != nil {
		return nil, fmt.Errorf("product %q: %w", req.ProductRef, err)
	}
	return s.apply(ctx, tenantID, product, req)
}

// apply works from an already resolved product so the quantity read and
// the update come from the same lookup.
func (s *StockLedgerService) apply(ctx context.Context, tenantID uuid.UUID, product *catalog.Product, req MovementRequest) (*inventory.StockMovement, error) {
	movement, err := inventory.NewStockMovement(
		tenantID,
		&inventory.Resolved{ID: product.ID, Ref: req.ProductRef},
		req.Kind, req.Quantity, product.StockQuantity,
		req.Reason, req.Value,
	)
	if err != nil {
		return nil, err
	}
	if req.SaleRef != "" {
		movement.WithSaleRef(req.SaleRef)
	}

	if err := s.products.UpdateStock(ctx, product.ID, movement.NewQty); err != nil {
		return nil, fmt.Errorf("failed to update stock for %q: %w", req.ProductRef, err)
	}
	if err := s.movements.Save(ctx, movement); err != nil {
		return nil, fmt.Errorf("failed to save movement for %q: %w", req.ProductRef, err)
	}

	if movement.IsOversold() {
		s.logger.Warn("stock oversold",
			zap.String("product_ref", req.ProductRef),
			zap.String("previous", movement.PreviousQty.String()),
			zap.String("new", movement.NewQty.String()),
			zap.String("sale_ref", req.SaleRef),
		)
	}

	s.publisher.Publish(ctx, inventory.NewStockMovementAppliedEvent(movement))
	return movement, nil
}

// ApplyAdjustment records a signed manual correction valued at the
// product's unit cost.
func (s *StockLedgerService) ApplyAdjustment(ctx context.Context, tenantID uuid.UUID, productRef string, quantity decimal.Decimal, reason string) (*inventory.StockMovement, error) {
	product, err := s.products.FindByRef(ctx, tenantID, productRef)
	if err != nil {
		return nil, fmt.Errorf("product %q: %w", productRef, err)
	}

	return s.apply(ctx, tenantID, product, MovementRequest{
		ProductRef: productRef,
		Kind:       inventory.MovementKindAdjust,
		Quantity:   quantity,
		Reason:     reason,
		Value:      quantity.Abs().Mul(product.UnitCost).Round(2),
	})
}
