package taxfiling

import (
	"context"

	"github.com/google/uuid"
)

// PeriodRecordRepository defines the persistence surface for filing
// period accumulators.
type PeriodRecordRepository interface {
	// FindOrCreate locates the period record for (period, filingType),
	// creating an empty BUILDING record when absent
	FindOrCreate(ctx context.Context, tenantID uuid.UUID, period string, filingType FilingType) (*FilingPeriodRecord, error)

	// IncrementCount atomically raises the record count by one and
	// returns the updated record
	IncrementCount(ctx context.Context, id uuid.UUID) (*FilingPeriodRecord, error)

	// Save persists state transitions
	Save(ctx context.Context, record *FilingPeriodRecord) error

	// FindByID loads a period record
	FindByID(ctx context.Context, id uuid.UUID) (*FilingPeriodRecord, error)
}
