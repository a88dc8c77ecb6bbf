package insights

import (
	"context"

	"go.uber.org/zap"

	"github.com/nexa-erp/backend/internal/domain/finance"
	"github.com/nexa-erp/backend/internal/domain/hr"
	"github.com/nexa-erp/backend/internal/domain/inventory"
	"github.com/nexa-erp/backend/internal/domain/shared"
	"github.com/nexa-erp/backend/internal/domain/trade"
)

// InvalidationHandler drops the cached KPI snapshot whenever a business
// event changes the numbers behind it. The next read recomputes.
type InvalidationHandler struct {
	service *KPIService
	logger  *zap.Logger
}

// NewInvalidationHandler creates a new cache invalidation handler
func NewInvalidationHandler(service *KPIService, logger *zap.Logger) *InvalidationHandler {
	return &InvalidationHandler{service: service, logger: logger}
}

// Name returns the handler name for logging and metrics
func (h *InvalidationHandler) Name() string {
	return "insights.invalidation"
}

// EventTypes lists every event that moves a KPI input
func (h *InvalidationHandler) EventTypes() []string {
	return []string{
		trade.EventTypeSaleProcessed,
		trade.EventTypePurchaseReceived,
		inventory.EventTypeStockMovementApplied,
		finance.EventTypeInvoiceCollected,
		finance.EventTypeExpenseRecorded,
		hr.EventTypePayrollComputed,
		hr.EventTypePayrollPaid,
	}
}

// Handle invalidates the emitting tenant's snapshot
func (h *InvalidationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if err := h.service.Invalidate(ctx, event.TenantID()); err != nil {
		h.logger.Warn("kpi cache invalidation failed",
			zap.Error(err),
			zap.String("event_type", event.EventType()),
			zap.String("tenant_id", event.TenantID().String()),
		)
		return err
	}
	return nil
}

// Ensure interface compliance
var _ shared.EventHandler = (*InvalidationHandler)(nil)
