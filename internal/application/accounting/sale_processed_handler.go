package accounting

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/nexa-erp/backend/internal/domain/accounting"
	"github.com/nexa-erp/backend/internal/domain/shared"
	"github.com/nexa-erp/backend/internal/domain/trade"
)

// SaleProcessedHandler posts the revenue entry for a processed sale.
// The cost of goods sold is estimated from the sale lines because the
// actual cost is not known at settlement time.
type SaleProcessedHandler struct {
	poster       EntryPoster
	chart        accounting.ChartPolicy
	costFraction decimal.Decimal
	logger       *zap.Logger
}

// NewSaleProcessedHandler creates a new handler for sale processed events
func NewSaleProcessedHandler(
	poster EntryPoster,
	chart accounting.ChartPolicy,
	costFraction decimal.Decimal,
	logger *zap.Logger,
) *SaleProcessedHandler {
	return &SaleProcessedHandler{
		poster:       poster,
		chart:        chart,
		costFraction: costFraction,
		logger:       logger,
	}
}

// Name returns the handler name for logging and metrics
func (h *SaleProcessedHandler) Name() string {
	return "ledger.sale-processed"
}

// EventTypes returns the event types this handler is interested in
func (h *SaleProcessedHandler) EventTypes() []string {
	return []string{trade.EventTypeSaleProcessed}
}

// Handle posts one balanced entry per sale: settlement debit, revenue
// and tax credits, plus the estimated cost pair.
func (h *SaleProcessedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	sale, ok := event.(*trade.SaleProcessedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			trade.EventTypeSaleProcessed, event.EventType())
	}

	entry, err := accounting.NewJournalEntry(
		sale.TenantID(), sale.OccurredAt(),
		fmt.Sprintf("Sale %s", sale.SaleRef), sale.SaleRef,
		accounting.EntryStatusConfirmed,
	)
	if err != nil {
		return err
	}

	entry.AddDebit(h.chart.SettlementAccount(sale.PaymentMethod), sale.Total, "customer settlement")
	entry.AddCredit(h.chart.Revenue, sale.Subtotal, "sales revenue")
	if sale.Tax.IsPositive() {
		entry.AddCredit(h.chart.TaxPayable, sale.Tax, "output tax")
	}

	estimated := h.estimateCost(sale.Lines)
	if estimated.IsPositive() {
		entry.AddDebit(h.chart.CostOfGoodsSold, estimated, "estimated cost of goods sold")
		entry.AddCredit(h.chart.Inventory, estimated, "estimated inventory consumption")
	}

	if err := h.poster.Persist(ctx, entry); err != nil {
		return fmt.Errorf("failed to post sale %s: %w", sale.SaleRef, err)
	}

	h.logger.Info("sale journaled",
		zap.String("sale_ref", sale.SaleRef),
		zap.String("total", sale.Total.String()),
		zap.String("estimated_cost", estimated.String()),
	)
	return nil
}

// estimateCost applies the cost fraction policy over all sale lines
func (h *SaleProcessedHandler) estimateCost(lines []trade.SaleLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(h.costFraction.Mul(line.UnitPrice).Mul(line.Quantity))
	}
	return total.Round(2)
}

// Ensure interface compliance
var _ shared.EventHandler = (*SaleProcessedHandler)(nil)
