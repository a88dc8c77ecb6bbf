package taxfiling

import (
	"time"

	"github.com/google/uuid"

	"github.com/nexa-erp/backend/internal/domain/shared"
)

// FilingType identifies which periodic filing a document counts toward
type FilingType string

const (
	// FilingTypeVATOutput accumulates customer-facing invoices
	FilingTypeVATOutput FilingType = "VAT_OUTPUT"
	// FilingTypeVATInput accumulates supplier invoices
	FilingTypeVATInput FilingType = "VAT_INPUT"
	// FilingTypeWithholding accumulates payroll settlement documents
	FilingTypeWithholding FilingType = "WITHHOLDING"
)

// IsValid returns true if the filing type is recognized
func (f FilingType) IsValid() bool {
	switch f {
	case FilingTypeVATOutput, FilingTypeVATInput, FilingTypeWithholding:
		return true
	}
	return false
}

// PeriodState represents the lifecycle of a filing period record
type PeriodState string

const (
	// PeriodStateBuilding accepts further increments
	PeriodStateBuilding PeriodState = "BUILDING"
	// PeriodStateReady holds at least one counted document
	PeriodStateReady PeriodState = "READY"
	// PeriodStateSent was submitted to the tax authority
	PeriodStateSent PeriodState = "SENT"
)

// PeriodKey formats a reporting period as YYYY-MM
func PeriodKey(t time.Time) string {
	return t.Format("2006-01")
}

// FilingPeriodRecord accumulates the number of documents counted into
// one reporting period for one filing type. Only the counter matters to
// the filing contract; documents are not itemized here. Increments are
// not deduplicated by document id.
type FilingPeriodRecord struct {
	shared.BaseEntity
	TenantID    uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_filing_period,priority:1"`
	Period      string      `gorm:"type:varchar(7);not null;uniqueIndex:idx_filing_period,priority:2"`
	FilingType  FilingType  `gorm:"type:varchar(20);not null;uniqueIndex:idx_filing_period,priority:3"`
	RecordCount int64       `gorm:"not null;default:0"`
	State       PeriodState `gorm:"type:varchar(10);not null"`
}

// TableName returns the table name for GORM
func (FilingPeriodRecord) TableName() string {
	return "tax_filing_periods"
}

// NewFilingPeriodRecord creates an empty period record in BUILDING state
func NewFilingPeriodRecord(tenantID uuid.UUID, period string, filingType FilingType) (*FilingPeriodRecord, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if period == "" {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period cannot be empty")
	}
	if !filingType.IsValid() {
		return nil, shared.NewDomainError("INVALID_FILING_TYPE", "Invalid filing type")
	}
	return &FilingPeriodRecord{
		BaseEntity:  shared.NewBaseEntity(),
		TenantID:    tenantID,
		Period:      period,
		FilingType:  filingType,
		RecordCount: 0,
		State:       PeriodStateBuilding,
	}, nil
}

// CanAccumulate reports whether the record still accepts increments.
// The counter only moves forward while the period has not been sent.
func (r *FilingPeriodRecord) CanAccumulate() bool {
	return r.State != PeriodStateSent
}

// MarkReady transitions a building record to READY
func (r *FilingPeriodRecord) MarkReady() {
	if r.State == PeriodStateBuilding {
		r.State = PeriodStateReady
	}
}

// MarkSent closes the period after submission
func (r *FilingPeriodRecord) MarkSent() error {
	if r.State != PeriodStateReady {
		return shared.ErrInvalidState
	}
	r.State = PeriodStateSent
	return nil
}
