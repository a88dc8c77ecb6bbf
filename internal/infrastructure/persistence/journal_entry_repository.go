package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexa-erp/backend/internal/domain/accounting"
	"github.com/nexa-erp/backend/internal/domain/shared"
)

// GormJournalEntryRepository implements JournalEntryRepository using GORM
type GormJournalEntryRepository struct {
	db *gorm.DB
}

// NewGormJournalEntryRepository creates a new GormJournalEntryRepository
func NewGormJournalEntryRepository(db *gorm.DB) *GormJournalEntryRepository {
	return &GormJournalEntryRepository{db: db}
}

// InsertHeader persists the entry header
func (r *GormJournalEntryRepository) InsertHeader(ctx context.Context, entry *accounting.JournalEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// InsertLines persists all lines referencing the given entry ID
func (r *GormJournalEntryRepository) InsertLines(ctx context.Context, entryID uuid.UUID, lines []accounting.JournalLine) error {
	if len(lines) == 0 {
		return nil
	}
	for i := range lines {
		lines[i].EntryID = entryID
	}
	return r.db.WithContext(ctx).Create(&lines).Error
}

// FindByID loads an entry header with its lines
func (r *GormJournalEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.JournalEntry, error) {
	var entry accounting.JournalEntry
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Where("entry_id = ?", id).
		Order("created_at ASC").
		Find(&entry.Lines).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindByReference returns entries carrying the given source reference
func (r *GormJournalEntryRepository) FindByReference(ctx context.Context, tenantID uuid.UUID, reference string) ([]accounting.JournalEntry, error) {
	var entries []accounting.JournalEntry
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND reference = ?", tenantID, reference).
		Order("entry_date ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Ensure interface compliance
var _ accounting.JournalEntryRepository = (*GormJournalEntryRepository)(nil)
