package accounting

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nexa-erp/backend/internal/domain/shared"
)

// EntryStatus represents the lifecycle state of a journal entry
type EntryStatus string

const (
	// EntryStatusDraft marks accrual entries awaiting period review
	EntryStatusDraft EntryStatus = "DRAFT"
	// EntryStatusConfirmed marks entries backed by a settled transaction
	EntryStatusConfirmed EntryStatus = "CONFIRMED"
)

// IsValid returns true if the status is recognized
func (s EntryStatus) IsValid() bool {
	return s == EntryStatusDraft || s == EntryStatusConfirmed
}

// BalanceTolerance is the maximum permitted absolute difference between
// total debits and total credits of a persisted entry.
var BalanceTolerance = decimal.NewFromFloat(0.01)

// JournalLine is one posting within a journal entry. By convention
// exactly one of Debit/Credit is non-zero per line; the convention is
// not enforced so correction lines can carry both legs.
type JournalLine struct {
	shared.BaseEntity
	EntryID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_journal_line_entry"`
	AccountCode string          `gorm:"type:varchar(20);not null"`
	AccountID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_journal_line_account"`
	Debit       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Credit      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Description string          `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (JournalLine) TableName() string {
	return "journal_lines"
}

// JournalEntry is one balanced double-entry accounting transaction
type JournalEntry struct {
	shared.BaseEntity
	TenantID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_journal_entry_tenant_date,priority:1"`
	EntryDate   time.Time       `gorm:"not null;index:idx_journal_entry_tenant_date,priority:2"`
	Concept     string          `gorm:"type:varchar(255);not null"`
	Reference   string          `gorm:"type:varchar(100);index:idx_journal_entry_reference"`
	TotalDebit  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TotalCredit decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Status      EntryStatus     `gorm:"type:varchar(20);not null"`
	Lines       []JournalLine   `gorm:"-"`
}

// TableName returns the table name for GORM
func (JournalEntry) TableName() string {
	return "journal_entries"
}

// NewJournalEntry creates a journal entry with no lines yet
func NewJournalEntry(tenantID uuid.UUID, entryDate time.Time, concept, reference string, status EntryStatus) (*JournalEntry, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if concept == "" {
		return nil, shared.NewDomainError("INVALID_CONCEPT", "Entry concept cannot be empty")
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Invalid entry status")
	}
	return &JournalEntry{
		BaseEntity:  shared.NewBaseEntity(),
		TenantID:    tenantID,
		EntryDate:   entryDate,
		Concept:     concept,
		Reference:   reference,
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
		Status:      status,
	}, nil
}

// AddDebit appends a debit line for the given account code
func (e *JournalEntry) AddDebit(accountCode string, amount decimal.Decimal, description string) {
	e.addLine(accountCode, amount, decimal.Zero, description)
}

// AddCredit appends a credit line for the given account code
func (e *JournalEntry) AddCredit(accountCode string, amount decimal.Decimal, description string) {
	e.addLine(accountCode, decimal.Zero, amount, description)
}

func (e *JournalEntry) addLine(accountCode string, debit, credit decimal.Decimal, description string) {
	line := JournalLine{
		BaseEntity:  shared.NewBaseEntity(),
		EntryID:     e.ID,
		AccountCode: accountCode,
		Debit:       debit,
		Credit:      credit,
		Description: description,
	}
	e.Lines = append(e.Lines, line)
	e.TotalDebit = e.TotalDebit.Add(debit)
	e.TotalCredit = e.TotalCredit.Add(credit)
}

// IsBalanced reports whether total debits equal total credits within
// the balance tolerance.
func (e *JournalEntry) IsBalanced() bool {
	return e.TotalDebit.Sub(e.TotalCredit).Abs().LessThanOrEqual(BalanceTolerance)
}

// Validate checks the entry is persistable: at least one line and
// balanced within tolerance.
func (e *JournalEntry) Validate() error {
	if len(e.Lines) == 0 {
		return shared.NewDomainError("EMPTY_ENTRY", "Journal entry must have at least one line")
	}
	if !e.IsBalanced() {
		return shared.ErrUnbalancedEntry
	}
	return nil
}

// AccountCodes returns the distinct account codes referenced by the
// entry's lines, in first-seen order.
func (e *JournalEntry) AccountCodes() []string {
	seen := make(map[string]bool, len(e.Lines))
	codes := make([]string, 0, len(e.Lines))
	for _, line := range e.Lines {
		if !seen[line.AccountCode] {
			seen[line.AccountCode] = true
			codes = append(codes, line.AccountCode)
		}
	}
	return codes
}
