package hr

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nexa-erp/backend/internal/domain/shared"
	"github.com/nexa-erp/backend/internal/domain/shared/valueobject"
)

// Aggregate type constant
const AggregateTypePayroll = "PayrollRun"

// Event type constants
const (
	EventTypePayrollComputed = "PayrollComputed"
	EventTypePayrollPaid     = "PayrollPaid"
)

// PayrollComputedEvent is published when a payroll run is computed.
// The ledger accrues the expense; nothing has been paid out yet.
type PayrollComputedEvent struct {
	shared.BaseDomainEvent
	PayrollID   uuid.UUID       `json:"payroll_id"`
	PayrollRef  string          `json:"payroll_ref"`
	Gross       decimal.Decimal `json:"gross"`
	Withholding decimal.Decimal `json:"withholding"`
	Net         decimal.Decimal `json:"net"`
}

// NewPayrollComputedEvent creates a new PayrollComputedEvent
func NewPayrollComputedEvent(tenantID, payrollID uuid.UUID, payrollRef string, gross, withholding, net decimal.Decimal) *PayrollComputedEvent {
	return &PayrollComputedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePayrollComputed, AggregateTypePayroll, payrollID, tenantID),
		PayrollID:       payrollID,
		PayrollRef:      payrollRef,
		Gross:           gross,
		Withholding:     withholding,
		Net:             net,
	}
}

// EventType returns the event type name
func (e *PayrollComputedEvent) EventType() string {
	return EventTypePayrollComputed
}

// PayrollPaidEvent is published when a computed payroll run is paid out
type PayrollPaidEvent struct {
	shared.BaseDomainEvent
	PayrollID     uuid.UUID                 `json:"payroll_id"`
	PayrollRef    string                    `json:"payroll_ref"`
	Net           decimal.Decimal           `json:"net"`
	PaymentMethod valueobject.PaymentMethod `json:"payment_method"`
}

// NewPayrollPaidEvent creates a new PayrollPaidEvent
func NewPayrollPaidEvent(tenantID, payrollID uuid.UUID, payrollRef string, net decimal.Decimal, method valueobject.PaymentMethod) *PayrollPaidEvent {
	return &PayrollPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePayrollPaid, AggregateTypePayroll, payrollID, tenantID),
		PayrollID:       payrollID,
		PayrollRef:      payrollRef,
		Net:             net,
		PaymentMethod:   method,
	}
}

// EventType returns the event type name
func (e *PayrollPaidEvent) EventType() string {
	return EventTypePayrollPaid
}
