package accounting

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/nexa-erp/backend/internal/domain/accounting"
	"github.com/nexa-erp/backend/internal/domain/hr"
	"github.com/nexa-erp/backend/internal/domain/shared"
)

// PayrollComputedHandler accrues a computed payroll run: the expense is
// recognized in full while the net stays owed to employees and the
// withholding to the tax authority. Nothing has been paid yet, so the
// entry stays in draft.
type PayrollComputedHandler struct {
	poster EntryPoster
	chart  accounting.ChartPolicy
	logger *zap.Logger
}

// NewPayrollComputedHandler creates a new handler for payroll computed events
func NewPayrollComputedHandler(poster EntryPoster, chart accounting.ChartPolicy, logger *zap.Logger) *PayrollComputedHandler {
	return &PayrollComputedHandler{poster: poster, chart: chart, logger: logger}
}

// Name returns the handler name for logging and metrics
func (h *PayrollComputedHandler) Name() string {
	return "ledger.payroll-computed"
}

// EventTypes returns the event types this handler is interested in
func (h *PayrollComputedHandler) EventTypes() []string {
	return []string{hr.EventTypePayrollComputed}
}

// Handle accrues the payroll expense
func (h *PayrollComputedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	payroll, ok := event.(*hr.PayrollComputedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			hr.EventTypePayrollComputed, event.EventType())
	}

	entry, err := accounting.NewJournalEntry(
		payroll.TenantID(), payroll.OccurredAt(),
		fmt.Sprintf("Payroll accrual %s", payroll.PayrollRef), payroll.PayrollRef,
		accounting.EntryStatusDraft,
	)
	if err != nil {
		return err
	}
	entry.AddDebit(h.chart.PayrollExpense, payroll.Gross, "gross payroll")
	entry.AddCredit(h.chart.PayrollPayable, payroll.Net, "net owed to employees")
	if payroll.Withholding.IsPositive() {
		entry.AddCredit(h.chart.TaxPayable, payroll.Withholding, "withholding")
	}

	if err := h.poster.Persist(ctx, entry); err != nil {
		return fmt.Errorf("failed to post payroll accrual %s: %w", payroll.PayrollRef, err)
	}
	return nil
}

// PayrollPaidHandler settles a previously accrued payroll run against
// the bank or cash account.
type PayrollPaidHandler struct {
	poster EntryPoster
	chart  accounting.ChartPolicy
	logger *zap.Logger
}

// NewPayrollPaidHandler creates a new handler for payroll paid events
func NewPayrollPaidHandler(poster EntryPoster, chart accounting.ChartPolicy, logger *zap.Logger) *PayrollPaidHandler {
	return &PayrollPaidHandler{poster: poster, chart: chart, logger: logger}
}

// Name returns the handler name for logging and metrics
func (h *PayrollPaidHandler) Name() string {
	return "ledger.payroll-paid"
}

// EventTypes returns the event types this handler is interested in
func (h *PayrollPaidHandler) EventTypes() []string {
	return []string{hr.EventTypePayrollPaid}
}

// Handle settles the payroll liability
func (h *PayrollPaidHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	payroll, ok := event.(*hr.PayrollPaidEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			hr.EventTypePayrollPaid, event.EventType())
	}

	entry, err := accounting.NewJournalEntry(
		payroll.TenantID(), payroll.OccurredAt(),
		fmt.Sprintf("Payroll payment %s", payroll.PayrollRef), payroll.PayrollRef,
		accounting.EntryStatusConfirmed,
	)
	if err != nil {
		return err
	}
	entry.AddDebit(h.chart.PayrollPayable, payroll.Net, "payroll liability settled")
	entry.AddCredit(h.chart.SettlementAccount(payroll.PaymentMethod), payroll.Net, "payroll paid out")

	if err := h.poster.Persist(ctx, entry); err != nil {
		return fmt.Errorf("failed to post payroll payment %s: %w", payroll.PayrollRef, err)
	}
	return nil
}

// Ensure interface compliance
var (
	_ shared.EventHandler = (*PayrollComputedHandler)(nil)
	_ shared.EventHandler = (*PayrollPaidHandler)(nil)
)
