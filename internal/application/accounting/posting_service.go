package accounting

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nexa-erp/backend/internal/domain/accounting"
)

// EntryPoster persists balanced journal entries
type EntryPoster interface {
	Persist(ctx context.Context, entry *accounting.JournalEntry) error
}

// PostingService validates and persists journal entries. Every account
// code is resolved before anything is written, so an unknown code fails
// the whole entry. Header and lines are inserted separately; a line
// failure after the header succeeded leaves the header in place.
type PostingService struct {
	entries   accounting.JournalEntryRepository
	directory *AccountDirectory
	logger    *zap.Logger
}

// NewPostingService creates a new posting service
func NewPostingService(
	entries accounting.JournalEntryRepository,
	directory *AccountDirectory,
	logger *zap.Logger,
) *PostingService {
	return &PostingService{
		entries:   entries,
		directory: directory,
		logger:    logger,
	}
}

// Persist resolves accounts, checks the balance and writes the entry
func (s *PostingService) Persist(ctx context.Context, entry *accounting.JournalEntry) error {
	ids := make(map[string]uuid.UUID)
	for _, code := range entry.AccountCodes() {
		id, err := s.directory.Resolve(ctx, entry.TenantID, code)
		if err != nil {
			return fmt.Errorf("account %s: %w", code, err)
		}
		ids[code] = id
	}
	for i := range entry.Lines {
		entry.Lines[i].AccountID = ids[entry.Lines[i].AccountCode]
	}

	if err := entry.Validate(); err != nil {
		return err
	}

	if err := s.entries.InsertHeader(ctx, entry); err != nil {
		return fmt.Errorf("failed to insert journal header: %w", err)
	}
	if err := s.entries.InsertLines(ctx, entry.ID, entry.Lines); err != nil {
		return fmt.Errorf("failed to insert journal lines: %w", err)
	}

	s.logger.Info("journal entry posted",
		zap.String("entry_id", entry.ID.String()),
		zap.String("reference", entry.Reference),
		zap.String("status", string(entry.Status)),
		zap.Int("lines", len(entry.Lines)),
		zap.String("total_debit", entry.TotalDebit.String()),
	)
	return nil
}

// Ensure interface compliance
var _ EntryPoster = (*PostingService)(nil)
