package accounting

import (
	"github.com/google/uuid"

	"github.com/nexa-erp/backend/internal/domain/shared"
)

// Account is a node of the chart of accounts. The code is the external
// identity used by posting templates; the storage ID is internal and
// resolved through the account directory cache.
type Account struct {
	shared.BaseEntity
	TenantID        uuid.UUID `gorm:"type:uuid;not null;index:idx_account_tenant_code,priority:1"`
	Code            string    `gorm:"type:varchar(20);not null;index:idx_account_tenant_code,priority:2"`
	Name            string    `gorm:"type:varchar(100);not null"`
	AcceptsPostings bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Account) TableName() string {
	return "accounts"
}

// NewAccount creates a new chart of accounts node
func NewAccount(tenantID uuid.UUID, code, name string, acceptsPostings bool) (*Account, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_CODE", "Account code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name cannot be empty")
	}
	return &Account{
		BaseEntity:      shared.NewBaseEntity(),
		TenantID:        tenantID,
		Code:            code,
		Name:            name,
		AcceptsPostings: acceptsPostings,
	}, nil
}
