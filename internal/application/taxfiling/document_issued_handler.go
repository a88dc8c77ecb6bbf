package taxfiling

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/nexa-erp/backend/internal/domain/shared"
	"github.com/nexa-erp/backend/internal/domain/taxfiling"
	"github.com/nexa-erp/backend/internal/domain/trade"
)

// DocumentIssuedHandler counts issued fiscal documents into their
// reporting period accumulator. Counting is not deduplicated: the same
// document issued twice raises the counter twice.
type DocumentIssuedHandler struct {
	periods taxfiling.PeriodRecordRepository
	logger  *zap.Logger
}

// NewDocumentIssuedHandler creates a new handler for document issued events
func NewDocumentIssuedHandler(periods taxfiling.PeriodRecordRepository, logger *zap.Logger) *DocumentIssuedHandler {
	return &DocumentIssuedHandler{periods: periods, logger: logger}
}

// Name returns the handler name for logging and metrics
func (h *DocumentIssuedHandler) Name() string {
	return "taxfiling.document-issued"
}

// EventTypes returns the event types this handler is interested in
func (h *DocumentIssuedHandler) EventTypes() []string {
	return []string{trade.EventTypeDocumentIssued}
}

// Handle accumulates one document into its filing period
func (h *DocumentIssuedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	document, ok := event.(*trade.DocumentIssuedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			trade.EventTypeDocumentIssued, event.EventType())
	}

	filingType, err := FilingTypeFor(document.DocumentType)
	if err != nil {
		return err
	}
	period := taxfiling.PeriodKey(document.IssuedAt)

	record, err := h.periods.FindOrCreate(ctx, document.TenantID(), period, filingType)
	if err != nil {
		return fmt.Errorf("failed to load filing period %s/%s: %w", period, filingType, err)
	}

	if !record.CanAccumulate() {
		h.logger.Warn("document issued into a sent filing period",
			zap.String("document_ref", document.DocumentRef),
			zap.String("period", period),
			zap.String("filing_type", string(filingType)),
		)
		return shared.ErrInvalidState
	}

	updated, err := h.periods.IncrementCount(ctx, record.ID)
	if err != nil {
		return fmt.Errorf("failed to count document %s: %w", document.DocumentRef, err)
	}

	if updated.State == taxfiling.PeriodStateBuilding && updated.RecordCount > 0 {
		updated.MarkReady()
		if err := h.periods.Save(ctx, updated); err != nil {
			return fmt.Errorf("failed to mark period %s ready: %w", period, err)
		}
	}

	h.logger.Info("document counted into filing period",
		zap.String("document_ref", document.DocumentRef),
		zap.String("period", period),
		zap.String("filing_type", string(filingType)),
		zap.Int64("record_count", updated.RecordCount),
	)
	return nil
}

// FilingTypeFor maps a document type to the filing it counts toward
func FilingTypeFor(docType trade.DocumentType) (taxfiling.FilingType, error) {
	switch docType {
	case trade.DocumentTypeSalesInvoice:
		return taxfiling.FilingTypeVATOutput, nil
	case trade.DocumentTypePurchaseInvoice:
		return taxfiling.FilingTypeVATInput, nil
	case trade.DocumentTypePayrollSlip:
		return taxfiling.FilingTypeWithholding, nil
	default:
		return "", fmt.Errorf("no filing for document type %q", docType)
	}
}

// Ensure interface compliance
var _ shared.EventHandler = (*DocumentIssuedHandler)(nil)
