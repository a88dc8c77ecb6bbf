package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nexa-erp/backend/internal/domain/shared"
)

// MovementKind represents the direction of a stock movement
type MovementKind string

const (
	// MovementKindEntry represents stock coming in (purchase receiving)
	MovementKindEntry MovementKind = "ENTRY"
	// MovementKindExit represents stock leaving (sales shipment)
	MovementKindExit MovementKind = "EXIT"
	// MovementKindAdjust represents a signed manual correction
	MovementKindAdjust MovementKind = "ADJUST"
)

// String returns the string representation of MovementKind
func (k MovementKind) String() string {
	return string(k)
}

// IsValid returns true if the movement kind is recognized
func (k MovementKind) IsValid() bool {
	switch k {
	case MovementKindEntry, MovementKindExit, MovementKindAdjust:
		return true
	}
	return false
}

// NewQuantity computes the resulting stock quantity for a movement of
// this kind. ENTRY adds, EXIT subtracts, ADJUST applies the signed
// quantity as-is. EXIT may produce a negative result; oversold stock is
// accepted and warned about, never blocked.
func (k MovementKind) NewQuantity(previous, quantity decimal.Decimal) decimal.Decimal {
	switch k {
	case MovementKindEntry:
		return previous.Add(quantity)
	case MovementKindExit:
		return previous.Sub(quantity)
	default:
		return previous.Add(quantity)
	}
}

// StockMovement is an immutable audit record of one inventory change.
// Corrections are made with new ADJUST movements, never by editing.
type StockMovement struct {
	shared.BaseEntity
	TenantID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_stock_movement_tenant_time,priority:1"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_stock_movement_product"`
	ProductRef   string          `gorm:"type:varchar(200);not null"`
	Kind         MovementKind    `gorm:"type:varchar(10);not null;index:idx_stock_movement_kind"`
	Quantity     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PreviousQty  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	NewQty       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Reason       string          `gorm:"type:varchar(255)"`
	Value        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	SaleRef      string          `gorm:"type:varchar(100);index:idx_stock_movement_sale"`
	MovementDate time.Time       `gorm:"not null;index:idx_stock_movement_tenant_time,priority:2"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement creates a movement record. The new quantity is
// derived from the kind, never supplied by the caller.
func NewStockMovement(
	tenantID uuid.UUID,
	product *Resolved,
	kind MovementKind,
	quantity decimal.Decimal,
	previous decimal.Decimal,
	reason string,
	value decimal.Decimal,
) (*StockMovement, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if product == nil || product.ID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_KIND", "Invalid movement kind")
	}
	if kind != MovementKindAdjust && !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive for ENTRY and EXIT")
	}

	return &StockMovement{
		BaseEntity:   shared.NewBaseEntity(),
		TenantID:     tenantID,
		ProductID:    product.ID,
		ProductRef:   product.Ref,
		Kind:         kind,
		Quantity:     quantity,
		PreviousQty:  previous,
		NewQty:       kind.NewQuantity(previous, quantity),
		Reason:       reason,
		Value:        value,
		MovementDate: time.Now(),
	}, nil
}

// WithSaleRef tags the movement with its originating sale reference
func (m *StockMovement) WithSaleRef(saleRef string) *StockMovement {
	m.SaleRef = saleRef
	return m
}

// IsOversold reports whether the movement drove stock negative
func (m *StockMovement) IsOversold() bool {
	return m.NewQty.IsNegative()
}

// Resolved names a product after the resolution fallback chain ran:
// the storage ID plus the loose reference it was resolved from.
type Resolved struct {
	ID  uuid.UUID
	Ref string
}
