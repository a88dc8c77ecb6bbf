package accounting

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/nexa-erp/backend/internal/domain/accounting"
)

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindIDByCode(ctx context.Context, tenantID uuid.UUID, code string) (uuid.UUID, error) {
	args := m.Called(ctx, tenantID, code)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockAccountRepository) Save(ctx context.Context, account *accounting.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// MockJournalEntryRepository is a mock implementation of JournalEntryRepository
type MockJournalEntryRepository struct {
	mock.Mock
}

func (m *MockJournalEntryRepository) InsertHeader(ctx context.Context, entry *accounting.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) InsertLines(ctx context.Context, entryID uuid.UUID, lines []accounting.JournalLine) error {
	args := m.Called(ctx, entryID, lines)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.JournalEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) FindByReference(ctx context.Context, tenantID uuid.UUID, reference string) ([]accounting.JournalEntry, error) {
	args := m.Called(ctx, tenantID, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]accounting.JournalEntry), args.Error(1)
}

// capturingPoster records persisted entries for assertions
type capturingPoster struct {
	entries []*accounting.JournalEntry
	err     error
}

func (p *capturingPoster) Persist(ctx context.Context, entry *accounting.JournalEntry) error {
	if p.err != nil {
		return p.err
	}
	p.entries = append(p.entries, entry)
	return nil
}

func (p *capturingPoster) last() *accounting.JournalEntry {
	if len(p.entries) == 0 {
		return nil
	}
	return p.entries[len(p.entries)-1]
}
