package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nexa-erp/backend/internal/domain/finance"
	"github.com/nexa-erp/backend/internal/domain/hr"
	"github.com/nexa-erp/backend/internal/domain/shared"
	"github.com/nexa-erp/backend/internal/domain/shared/valueobject"
	"github.com/nexa-erp/backend/internal/domain/trade"
)

// Emitter is the typed entry point for feeding business facts into the
// bus. Upstream modules call these instead of constructing events by
// hand, which keeps the event shapes in one place.
type Emitter struct {
	publisher shared.EventPublisher
}

// NewEmitter creates a new emitter over the given publisher
func NewEmitter(publisher shared.EventPublisher) *Emitter {
	return &Emitter{publisher: publisher}
}

// EmitSaleProcessed announces a completed sale
func (e *Emitter) EmitSaleProcessed(ctx context.Context, tenantID, saleID uuid.UUID, saleRef string, total, subtotal, tax decimal.Decimal, method valueobject.PaymentMethod, lines []trade.SaleLine) shared.Emission {
	return e.publisher.Publish(ctx, trade.NewSaleProcessedEvent(tenantID, saleID, saleRef, total, subtotal, tax, method, lines))
}

// EmitPurchaseReceived announces goods received against a purchase
func (e *Emitter) EmitPurchaseReceived(ctx context.Context, tenantID, purchaseID uuid.UUID, purchaseRef, supplierName string, lines []trade.ReceiptLine) shared.Emission {
	return e.publisher.Publish(ctx, trade.NewPurchaseReceivedEvent(tenantID, purchaseID, purchaseRef, supplierName, lines))
}

// EmitDocumentIssued announces an issued fiscal document
func (e *Emitter) EmitDocumentIssued(ctx context.Context, tenantID, documentID uuid.UUID, documentRef string, docType trade.DocumentType, amount decimal.Decimal, issuedAt time.Time) shared.Emission {
	return e.publisher.Publish(ctx, trade.NewDocumentIssuedEvent(tenantID, documentID, documentRef, docType, amount, issuedAt))
}

// EmitPayrollComputed announces a computed payroll run
func (e *Emitter) EmitPayrollComputed(ctx context.Context, tenantID, payrollID uuid.UUID, payrollRef string, gross, withholding, net decimal.Decimal) shared.Emission {
	return e.publisher.Publish(ctx, hr.NewPayrollComputedEvent(tenantID, payrollID, payrollRef, gross, withholding, net))
}

// EmitPayrollPaid announces the settlement of a payroll run
func (e *Emitter) EmitPayrollPaid(ctx context.Context, tenantID, payrollID uuid.UUID, payrollRef string, net decimal.Decimal, method valueobject.PaymentMethod) shared.Emission {
	return e.publisher.Publish(ctx, hr.NewPayrollPaidEvent(tenantID, payrollID, payrollRef, net, method))
}

// EmitInvoiceCollected announces a collected customer invoice
func (e *Emitter) EmitInvoiceCollected(ctx context.Context, tenantID, invoiceID uuid.UUID, invoiceRef string, amount decimal.Decimal, method valueobject.PaymentMethod) shared.Emission {
	return e.publisher.Publish(ctx, finance.NewInvoiceCollectedEvent(tenantID, invoiceID, invoiceRef, amount, method))
}

// EmitExpenseRecorded announces a recorded operating expense
func (e *Emitter) EmitExpenseRecorded(ctx context.Context, tenantID, expenseID uuid.UUID, expenseRef, category string, amount decimal.Decimal, method valueobject.PaymentMethod) shared.Emission {
	return e.publisher.Publish(ctx, finance.NewExpenseRecordedEvent(tenantID, expenseID, expenseRef, category, amount, method))
}
