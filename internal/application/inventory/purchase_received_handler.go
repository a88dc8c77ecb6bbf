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

// PurchaseReceivedHandler applies one stock entry per received line,
// valued at the receipt cost. Unresolvable lines are skipped with a
// warning while their siblings continue.
type PurchaseReceivedHandler struct {
	ledger *StockLedgerService
	logger *zap.Logger
}

// NewPurchaseReceivedHandler creates a new handler for purchase received events
func NewPurchaseReceivedHandler(ledger *StockLedgerService, logger *zap.Logger) *PurchaseReceivedHandler {
	return &PurchaseReceivedHandler{ledger: ledger, logger: logger}
}

// Name returns the handler name for logging and metrics
func (h *PurchaseReceivedHandler) Name() string {
	return "stock.purchase-received"
}

// EventTypes returns the event types this handler is interested in
func (h *PurchaseReceivedHandler) EventTypes() []string {
	return []string{trade.EventTypePurchaseReceived}
}

// Handle applies the entries for all resolvable receipt lines
func (h *PurchaseReceivedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	receipt, ok := event.(*trade.PurchaseReceivedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			trade.EventTypePurchaseReceived, event.EventType())
	}

	var errs []error
	for _, line := range receipt.Lines {
		_, err := h.ledger.Apply(ctx, receipt.TenantID(), MovementRequest{
			ProductRef: line.ProductRef,
			Kind:       inventory.MovementKindEntry,
			Quantity:   line.Quantity,
			Reason:     fmt.Sprintf("Receipt %s", receipt.PurchaseRef),
			Value:      line.Value().Round(2),
		})
		if err == nil {
			continue
		}
		if errors.Is(err, shared.ErrProductNotResolved) {
			h.logger.Warn("skipping unresolvable receipt line",
				zap.String("purchase_ref", receipt.PurchaseRef),
				zap.String("product_ref", line.ProductRef),
			)
			continue
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Ensure interface compliance
var _ shared.EventHandler = (*PurchaseReceivedHandler)(nil)
