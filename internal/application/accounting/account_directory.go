package accounting

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/nexa-erp/backend/internal/domain/accounting"
	"github.com/nexa-erp/backend/internal/domain/shared"
)

type directoryKey struct {
	tenantID uuid.UUID
	code     string
}

// AccountDirectory resolves account codes to storage IDs through a
// read-through cache. The chart of accounts is static for the process
// lifetime, so entries are never evicted.
type AccountDirectory struct {
	accounts accounting.AccountRepository

	mu  sync.RWMutex
	ids map[directoryKey]uuid.UUID
}

// NewAccountDirectory creates a new account directory
func NewAccountDirectory(accounts accounting.AccountRepository) *AccountDirectory {
	return &AccountDirectory{
		accounts: accounts,
		ids:      make(map[directoryKey]uuid.UUID),
	}
}

// Resolve returns the storage ID for an account code. Cache first, then
// the repository; a miss in both is ErrAccountNotFound.
func (d *AccountDirectory) Resolve(ctx context.Context, tenantID uuid.UUID, code string) (uuid.UUID, error) {
	key := directoryKey{tenantID: tenantID, code: code}

	d.mu.RLock()
	id, ok := d.ids[key]
	d.mu.RUnlock()
	if ok {
		return id, nil
	}

	id, err := d.accounts.FindIDByCode(ctx, tenantID, code)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return uuid.Nil, shared.ErrAccountNotFound
		}
		return uuid.Nil, err
	}

	d.mu.Lock()
	d.ids[key] = id
	d.mu.Unlock()
	return id, nil
}
