package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nexa-erp/backend/internal/domain/catalog"
	"github.com/nexa-erp/backend/internal/domain/shared"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByRef resolves a loose product reference: internal ID first, then
// code, then display name. First hit wins.
func (r *GormProductRepository) FindByRef(ctx context.Context, tenantID uuid.UUID, ref string) (*catalog.Product, error) {
	if ref == "" {
		return nil, shared.ErrProductNotResolved
	}

	if id, err := uuid.Parse(ref); err == nil {
		product, err := r.findOne(ctx, "tenant_id = ? AND id = ?", tenantID, id)
		if err == nil {
			return product, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}

	product, err := r.findOne(ctx, "tenant_id = ? AND code = ?", tenantID, ref)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	product, err = r.findOne(ctx, "tenant_id = ? AND name = ?", tenantID, ref)
	if err == nil {
		return product, nil
	}
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.ErrProductNotResolved
	}
	return nil, err
}

func (r *GormProductRepository) findOne(ctx context.Context, query string, args ...any) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).Where(query, args...).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// UpdateStock overwrites the authoritative stock quantity
func (r *GormProductRepository) UpdateStock(ctx context.Context, productID uuid.UUID, newQuantity decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("id = ?", productID).
		Update("stock_quantity", newQuantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// Ensure interface compliance
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
