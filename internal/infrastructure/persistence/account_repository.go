package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexa-erp/backend/internal/domain/accounting"
	"github.com/nexa-erp/backend/internal/domain/shared"
)

// GormAccountRepository implements AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// FindIDByCode returns the storage ID of the account with the given code
func (r *GormAccountRepository) FindIDByCode(ctx context.Context, tenantID uuid.UUID, code string) (uuid.UUID, error) {
	var account accounting.Account
	if err := r.db.WithContext(ctx).
		Select("id").
		Where("tenant_id = ? AND code = ?", tenantID, code).
		First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, shared.ErrNotFound
		}
		return uuid.Nil, err
	}
	return account.ID, nil
}

// Save creates or updates an account
func (r *GormAccountRepository) Save(ctx context.Context, account *accounting.Account) error {
	return r.db.WithContext(ctx).Save(account).Error
}

// Ensure interface compliance
var _ accounting.AccountRepository = (*GormAccountRepository)(nil)
