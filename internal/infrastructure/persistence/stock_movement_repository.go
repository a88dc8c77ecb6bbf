package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexa-erp/backend/internal/domain/inventory"
)

// GormStockMovementRepository implements StockMovementRepository using GORM
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// Save appends a movement record
func (r *GormStockMovementRepository) Save(ctx context.Context, movement *inventory.StockMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// FindByProduct returns movements for a product, newest first
func (r *GormStockMovementRepository) FindByProduct(ctx context.Context, tenantID, productID uuid.UUID, limit int) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	query := r.db.WithContext(ctx).
		Where("tenant_id = ? AND product_id = ?", tenantID, productID).
		Order("movement_date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// FindBySaleRef returns movements tagged with a sale reference
func (r *GormStockMovementRepository) FindBySaleRef(ctx context.Context, tenantID uuid.UUID, saleRef string) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND sale_ref = ?", tenantID, saleRef).
		Order("movement_date ASC").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// Ensure interface compliance
var _ inventory.StockMovementRepository = (*GormStockMovementRepository)(nil)
