package accounting

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/nexa-erp/backend/internal/domain/accounting"
	"github.com/nexa-erp/backend/internal/domain/finance"
	"github.com/nexa-erp/backend/internal/domain/shared"
)

// InvoiceCollectedHandler clears a receivable when a customer invoice
// is paid.
type InvoiceCollectedHandler struct {
	poster EntryPoster
	chart  accounting.ChartPolicy
	logger *zap.Logger
}

// NewInvoiceCollectedHandler creates a new handler for invoice collected events
func NewInvoiceCollectedHandler(poster EntryPoster, chart accounting.ChartPolicy, logger *zap.Logger) *InvoiceCollectedHandler {
	return &InvoiceCollectedHandler{poster: poster, chart: chart, logger: logger}
}

// Name returns the handler name for logging and metrics
func (h *InvoiceCollectedHandler) Name() string {
	return "ledger.invoice-collected"
}

// EventTypes returns the event types this handler is interested in
func (h *InvoiceCollectedHandler) EventTypes() []string {
	return []string{finance.EventTypeInvoiceCollected}
}

// Handle books the collection against accounts receivable
func (h *InvoiceCollectedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	invoice, ok := event.(*finance.InvoiceCollectedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			finance.EventTypeInvoiceCollected, event.EventType())
	}

	entry, err := accounting.NewJournalEntry(
		invoice.TenantID(), invoice.OccurredAt(),
		fmt.Sprintf("Collection %s", invoice.InvoiceRef), invoice.InvoiceRef,
		accounting.EntryStatusConfirmed,
	)
	if err != nil {
		return err
	}
	entry.AddDebit(h.chart.SettlementAccount(invoice.PaymentMethod), invoice.Amount, "invoice collected")
	entry.AddCredit(h.chart.AccountsReceivable, invoice.Amount, "receivable cleared")

	if err := h.poster.Persist(ctx, entry); err != nil {
		return fmt.Errorf("failed to post collection %s: %w", invoice.InvoiceRef, err)
	}
	return nil
}

// ExpenseRecordedHandler books an operating expense paid from cash or bank
type ExpenseRecordedHandler struct {
	poster EntryPoster
	chart  accounting.ChartPolicy
	logger *zap.Logger
}

// NewExpenseRecordedHandler creates a new handler for expense recorded events
func NewExpenseRecordedHandler(poster EntryPoster, chart accounting.ChartPolicy, logger *zap.Logger) *ExpenseRecordedHandler {
	return &ExpenseRecordedHandler{poster: poster, chart: chart, logger: logger}
}

// Name returns the handler name for logging and metrics
func (h *ExpenseRecordedHandler) Name() string {
	return "ledger.expense-recorded"
}

// EventTypes returns the event types this handler is interested in
func (h *ExpenseRecordedHandler) EventTypes() []string {
	return []string{finance.EventTypeExpenseRecorded}
}

// Handle books the expense
func (h *ExpenseRecordedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	expense, ok := event.(*finance.ExpenseRecordedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			finance.EventTypeExpenseRecorded, event.EventType())
	}

	concept := fmt.Sprintf("Expense %s", expense.ExpenseRef)
	if expense.Category != "" {
		concept = fmt.Sprintf("Expense %s (%s)", expense.ExpenseRef, expense.Category)
	}

	entry, err := accounting.NewJournalEntry(
		expense.TenantID(), expense.OccurredAt(),
		concept, expense.ExpenseRef,
		accounting.EntryStatusConfirmed,
	)
	if err != nil {
		return err
	}
	entry.AddDebit(h.chart.OperatingExpense, expense.Amount, expense.Category)
	entry.AddCredit(h.chart.SettlementAccount(expense.PaymentMethod), expense.Amount, "expense paid")

	if err := h.poster.Persist(ctx, entry); err != nil {
		return fmt.Errorf("failed to post expense %s: %w", expense.ExpenseRef, err)
	}
	return nil
}

// Ensure interface compliance
var (
	_ shared.EventHandler = (*InvoiceCollectedHandler)(nil)
	_ shared.EventHandler = (*ExpenseRecordedHandler)(nil)
)
