package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nexa-erp/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeStockLedger = "StockLedger"

// Event type constants
const (
	EventTypeStockMovementApplied = "StockMovementApplied"
)

// StockMovementAppliedEvent is re-emitted by the stock ledger after a
// movement is recorded, so the ledger engine can post the matching
// inventory lines independently of the originating sale or purchase.
type StockMovementAppliedEvent struct {
	shared.BaseDomainEvent
	MovementID  uuid.UUID       `json:"movement_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductRef  string          `json:"product_ref"`
	Kind        MovementKind    `json:"kind"`
	Quantity    decimal.Decimal `json:"quantity"`
	PreviousQty decimal.Decimal `json:"previous_qty"`
	NewQty      decimal.Decimal `json:"new_qty"`
	Reason      string          `json:"reason"`
	Value       decimal.Decimal `json:"value"`
	SaleRef     string          `json:"sale_ref,omitempty"`
}

// NewStockMovementAppliedEvent creates the re-emission for a recorded movement
func NewStockMovementAppliedEvent(movement *StockMovement) *StockMovementAppliedEvent {
	return &StockMovementAppliedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockMovementApplied, AggregateTypeStockLedger, movement.ID, movement.TenantID),
		MovementID:      movement.ID,
		ProductID:       movement.ProductID,
		ProductRef:      movement.ProductRef,
		Kind:            movement.Kind,
		Quantity:        movement.Quantity,
		PreviousQty:     movement.PreviousQty,
		NewQty:          movement.NewQty,
		Reason:          movement.Reason,
		Value:           movement.Value,
		SaleRef:         movement.SaleRef,
	}
}

// EventType returns the event type name
func (e *StockMovementAppliedEvent) EventType() string {
	return EventTypeStockMovementApplied
}
