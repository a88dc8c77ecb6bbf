package accounting

import (
	"context"

	"github.com/google/uuid"
)

// AccountRepository defines the lookup surface for chart of accounts nodes
type AccountRepository interface {
	// FindIDByCode returns the storage ID of the account with the given
	// code for a tenant, or shared.ErrNotFound
	FindIDByCode(ctx context.Context, tenantID uuid.UUID, code string) (uuid.UUID, error)

	// Save creates or updates an account
	Save(ctx context.Context, account *Account) error
}

// JournalEntryRepository defines the persistence surface for journal
// entries. Headers and lines are inserted separately: a line failure
// after the header succeeded leaves the header in place.
type JournalEntryRepository interface {
	// InsertHeader persists the entry header (totals, status, reference)
	InsertHeader(ctx context.Context, entry *JournalEntry) error

	// InsertLines persists all lines referencing the given entry ID
	InsertLines(ctx context.Context, entryID uuid.UUID, lines []JournalLine) error

	// FindByID loads an entry header with its lines
	FindByID(ctx context.Context, id uuid.UUID) (*JournalEntry, error)

	// FindByReference returns entries carrying the given source reference
	FindByReference(ctx context.Context, tenantID uuid.UUID, reference string) ([]JournalEntry, error)
}
