package inventory

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/nexa-erp/backend/internal/domain/inventory"
	"github.com/nexa-erp/backend/internal/domain/shared"
	"github.com/nexa-erp/backend/internal/domain/trade"
)

// SaleProcessedHandler applies one stock exit per sold line. A line
// whose product cannot be resolved is skipped with a warning; the
// remaining lines are still applied.
type SaleProcessedHandler struct {
	ledger *StockLedgerService
	logger *zap.Logger
}

// NewSaleProcessedHandler creates a new handler for sale processed events
func NewSaleProcessedHandler(ledger *StockLedgerService, logger *zap.Logger) *SaleProcessedHandler {
	return &SaleProcessedHandler{ledger: ledger, logger: logger}
}

// Name returns the handler name for logging and metrics
func (h *SaleProcessedHandler) Name() string {
	return "stock.sale-processed"
}

// EventTypes returns the event types this handler is interested in
func (h *SaleProcessedHandler) EventTypes() []string {
	return []string{trade.EventTypeSaleProcessed}
}

// Handle applies the exits for all resolvable sale lines
func (h *SaleProcessedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	sale, ok := event.(*trade.SaleProcessedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			trade.EventTypeSaleProcessed, event.EventType())
	}

	var errs []error
	for _, line := range sale.Lines {
		_, err := h.ledger.Apply(ctx, sale.TenantID(), MovementRequest{
			ProductRef: line.ProductRef,
			Kind:       inventory.MovementKindExit,
			Quantity:   line.Quantity,
			Reason:     fmt.Sprintf("Sale %s", sale.SaleRef),
			Value:      line.Quantity.Mul(line.UnitPrice).Round(2),
			SaleRef:    sale.SaleRef,
		})
		if err == nil {
			continue
		}
		if errors.Is(err, shared.ErrProductNotResolved) {
			h.logger.Warn("skipping unresolvable sale line",
				zap.String("sale_ref", sale.SaleRef),
				zap.String("product_ref", line.ProductRef),
			)
			continue
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Ensure interface compliance
var _ shared.EventHandler = (*SaleProcessedHandler)(nil)
