package accounting

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/nexa-erp/backend/internal/domain/accounting"
	"github.com/nexa-erp/backend/internal/domain/inventory"
	"github.com/nexa-erp/backend/internal/domain/shared"
)

// StockMovementHandler posts inventory entries for applied stock
// movements. Exits are skipped: their estimated cost was already posted
// with the originating sale.
type StockMovementHandler struct {
	poster EntryPoster
	chart  accounting.ChartPolicy
	logger *zap.Logger
}

// NewStockMovementHandler creates a new handler for stock movement events
func NewStockMovementHandler(poster EntryPoster, chart accounting.ChartPolicy, logger *zap.Logger) *StockMovementHandler {
	return &StockMovementHandler{
		poster: poster,
		chart:  chart,
		logger: logger,
	}
}

// Name returns the handler name for logging and metrics
func (h *StockMovementHandler) Name() string {
	return "ledger.stock-movement"
}

// EventTypes returns the event types this handler is interested in
func (h *StockMovementHandler) EventTypes() []string {
	return []string{inventory.EventTypeStockMovementApplied}
}

// Handle posts the matching inventory entry for one movement
func (h *StockMovementHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	movement, ok := event.(*inventory.StockMovementAppliedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			inventory.EventTypeStockMovementApplied, event.EventType())
	}

	switch movement.Kind {
	case inventory.MovementKindEntry:
		return h.postEntry(ctx, movement)
	case inventory.MovementKindAdjust:
		return h.postAdjustment(ctx, movement)
	case inventory.MovementKindExit:
		h.logger.Debug("skipping exit movement",
			zap.String("movement_id", movement.MovementID.String()),
			zap.String("sale_ref", movement.SaleRef),
		)
		return nil
	default:
		return fmt.Errorf("unknown movement kind %q", movement.Kind)
	}
}

// postEntry books received goods against accounts payable
func (h *StockMovementHandler) postEntry(ctx context.Context, movement *inventory.StockMovementAppliedEvent) error {
	if !movement.Value.IsPositive() {
		h.logger.Debug("skipping zero-value entry movement",
			zap.String("movement_id", movement.MovementID.String()))
		return nil
	}

	entry, err := accounting.NewJournalEntry(
		movement.TenantID(), movement.OccurredAt(),
		fmt.Sprintf("Goods received: %s", movement.ProductRef),
		movement.MovementID.String(),
		accounting.EntryStatusConfirmed,
	)
	if err != nil {
		return err
	}
	entry.AddDebit(h.chart.Inventory, movement.Value, "goods received")
	entry.AddCredit(h.chart.AccountsPayable, movement.Value, "supplier debt")

	return h.poster.Persist(ctx, entry)
}

// postAdjustment books a manual correction as a gain or loss
func (h *StockMovementHandler) postAdjustment(ctx context.Context, movement *inventory.StockMovementAppliedEvent) error {
	value := movement.Value.Abs()
	if value.IsZero() {
		return nil
	}

	entry, err := accounting.NewJournalEntry(
		movement.TenantID(), movement.OccurredAt(),
		fmt.Sprintf("Stock adjustment: %s", movement.ProductRef),
		movement.MovementID.String(),
		accounting.EntryStatusDraft,
	)
	if err != nil {
		return err
	}

	if movement.Quantity.IsPositive() {
		entry.AddDebit(h.chart.Inventory, value, movement.Reason)
		entry.AddCredit(h.chart.AdjustmentGain, value, "inventory surplus")
	} else {
		entry.AddDebit(h.chart.AdjustmentLoss, value, "inventory shrinkage")
		entry.AddCredit(h.chart.Inventory, value, movement.Reason)
	}

	return h.poster.Persist(ctx, entry)
}

// Ensure interface compliance
var _ shared.EventHandler = (*StockMovementHandler)(nil)
