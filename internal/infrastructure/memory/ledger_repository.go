package memory

import (
	"context"
	"encoding/json"
	"sync"

	domain "github.com/Samerabualsoud/jam3a-payments/internal/domain/ledger"
)

// LedgerRepository is an in-memory key-value store of JSON-serialized
// ledger entries, keyed by transaction id. Entries are stored as encoded
// bytes so the repository behaves like the string-keyed JSON store a real
// deployment would back it with.
type LedgerRepository struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{
		entries: make(map[string][]byte),
	}
}

func (r *LedgerRepository) Save(ctx context.Context, entry *domain.Entry) error {
	_ = ctx
	if entry == nil {
		return nil
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[entry.TransactionID] = raw
	return nil
}

func (r *LedgerRepository) Find(ctx context.Context, transactionID string) (*domain.Entry, error) {
	_ = ctx

	r.mu.RLock()
	raw, ok := r.entries[transactionID]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}

	var entry domain.Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Len reports the number of recorded entries.
func (r *LedgerRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
