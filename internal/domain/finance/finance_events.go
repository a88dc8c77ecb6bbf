package finance

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nexa-erp/backend/internal/domain/shared"
	"github.com/nexa-erp/backend/internal/domain/shared/valueobject"
)

// Aggregate type constants
const (
	AggregateTypeInvoice = "Invoice"
	AggregateTypeExpense = "ExpenseRecord"
)

// Event type constants
const (
	EventTypeInvoiceCollected = "InvoiceCollected"
	EventTypeExpenseRecorded  = "ExpenseRecorded"
)

// InvoiceCollectedEvent is published when a customer invoice is paid,
// clearing the matching receivable in the ledger.
type InvoiceCollectedEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID                 `json:"invoice_id"`
	InvoiceRef    string                    `json:"invoice_ref"`
	Amount        decimal.Decimal           `json:"amount"`
	PaymentMethod valueobject.PaymentMethod `json:"payment_method"`
}

// NewInvoiceCollectedEvent creates a new InvoiceCollectedEvent
func NewInvoiceCollectedEvent(tenantID, invoiceID uuid.UUID, invoiceRef string, amount decimal.Decimal, method valueobject.PaymentMethod) *InvoiceCollectedEvent {
	return &InvoiceCollectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCollected, AggregateTypeInvoice, invoiceID, tenantID),
		InvoiceID:       invoiceID,
		InvoiceRef:      invoiceRef,
		Amount:          amount,
		PaymentMethod:   method,
	}
}

// EventType returns the event type name
func (e *InvoiceCollectedEvent) EventType() string {
	return EventTypeInvoiceCollected
}

// ExpenseRecordedEvent is published when an operating expense is entered
type ExpenseRecordedEvent struct {
	shared.BaseDomainEvent
	ExpenseID     uuid.UUID                 `json:"expense_id"`
	ExpenseRef    string                    `json:"expense_ref"`
	Category      string                    `json:"category"`
	Amount        decimal.Decimal           `json:"amount"`
	PaymentMethod valueobject.PaymentMethod `json:"payment_method"`
}

// NewExpenseRecordedEvent creates a new ExpenseRecordedEvent
func NewExpenseRecordedEvent(tenantID, expenseID uuid.UUID, expenseRef, category string, amount decimal.Decimal, method valueobject.PaymentMethod) *ExpenseRecordedEvent {
	return &ExpenseRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeExpenseRecorded, AggregateTypeExpense, expenseID, tenantID),
		ExpenseID:       expenseID,
		ExpenseRef:      expenseRef,
		Category:        category,
		Amount:          amount,
		PaymentMethod:   method,
	}
}

// EventType returns the event type name
func (e *ExpenseRecordedEvent) EventType() string {
	return EventTypeExpenseRecorded
}
