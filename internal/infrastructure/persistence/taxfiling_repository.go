package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexa-erp/backend/internal/domain/shared"
	"github.com/nexa-erp/backend/internal/domain/taxfiling"
)

// GormPeriodRecordRepository implements PeriodRecordRepository using GORM
type GormPeriodRecordRepository struct {
	db *gorm.DB
}

// NewGormPeriodRecordRepository creates a new GormPeriodRecordRepository
func NewGormPeriodRecordRepository(db *gorm.DB) *GormPeriodRecordRepository {
	return &GormPeriodRecordRepository{db: db}
}

// FindOrCreate locates the period record for (period, filingType),
// creating an empty BUILDING record when absent. A concurrent create
// losing the unique-index race falls back to re-reading the winner.
func (r *GormPeriodRecordRepository) FindOrCreate(ctx context.Context, tenantID uuid.UUID, period string, filingType taxfiling.FilingType) (*taxfiling.FilingPeriodRecord, error) {
	record, err := r.find(ctx, tenantID, period, filingType)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	fresh, err := taxfiling.NewFilingPeriodRecord(tenantID, period, filingType)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(fresh).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.find(ctx, tenantID, period, filingType)
		}
		return nil, err
	}
	return fresh, nil
}

func (r *GormPeriodRecordRepository) find(ctx context.Context, tenantID uuid.UUID, period string, filingType taxfiling.FilingType) (*taxfiling.FilingPeriodRecord, error) {
	var record taxfiling.FilingPeriodRecord
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND period = ? AND filing_type = ?", tenantID, period, filingType).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// IncrementCount atomically raises the record count by one and returns
// the updated record.
func (r *GormPeriodRecordRepository) IncrementCount(ctx context.Context, id uuid.UUID) (*taxfiling.FilingPeriodRecord, error) {
	result := r.db.WithContext(ctx).
		Model(&taxfiling.FilingPeriodRecord{}).
		Where("id = ?", id).
		Update("record_count", gorm.Expr("record_count + 1"))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, shared.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// Save persists state transitions
func (r *GormPeriodRecordRepository) Save(ctx context.Context, record *taxfiling.FilingPeriodRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// FindByID loads a period record
func (r *GormPeriodRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*taxfiling.FilingPeriodRecord, error) {
	var record taxfiling.FilingPeriodRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// Ensure interface compliance
var _ taxfiling.PeriodRecordRepository = (*GormPeriodRecordRepository)(nil)
