package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nexa-erp/backend/internal/domain/shared"
)

// Product carries the authoritative stock quantity for one sellable
// item. Quantity mutation goes through the stock ledger only.
type Product struct {
	shared.BaseEntity
	TenantID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_product_tenant_code,priority:1"`
	Code          string          `gorm:"type:varchar(50);not null;index:idx_product_tenant_code,priority:2"`
	Name          string          `gorm:"type:varchar(200);not null;index:idx_product_tenant_name"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	UnitCost      decimal.Decimal `gorm:"type:decimal(18,4)"`
	StockQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with zero stock
func NewProduct(tenantID uuid.UUID, code, name string, unitPrice decimal.Decimal) (*Product, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_CODE", "Product code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	return &Product{
		BaseEntity:    shared.NewBaseEntity(),
		TenantID:      tenantID,
		Code:          code,
		Name:          name,
		UnitPrice:     unitPrice,
		StockQuantity: decimal.Zero,
	}, nil
}
