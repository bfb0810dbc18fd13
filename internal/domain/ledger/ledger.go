package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/Samerabualsoud/jam3a-payments/internal/domain/payment"
)

var ErrNotFound = errors.New("ledger: transaction not found")

// Entry is the persisted record of a completed charge. JSON tags define the
// serialized shape handed to the key-value store.
type Entry struct {
	TransactionID string         `json:"transaction_id"`
	Method        payment.Method `json:"payment_method"`
	Amount        float64        `json:"amount"`
	Currency      string         `json:"currency"`
	Description   string         `json:"description,omitempty"`
	IssuedAt      time.Time      `json:"issued_at"`
	RecordedAt    time.Time      `json:"recorded_at"`
}

// FromEvent converts a completed-payment event into a ledger entry.
func FromEvent(e payment.CompletedEvent) *Entry {
	return &Entry{
		TransactionID: e.TransactionID,
		Method:        e.Method,
		Amount:        e.Amount,
		Currency:      e.Currency,
		Description:   e.Description,
		IssuedAt:      e.IssuedAt,
		RecordedAt:    time.Now().UTC(),
	}
}

// Repository stores entries keyed by transaction id.
type Repository interface {
	Save(ctx context.Context, entry *Entry) error
	Find(ctx context.Context, transactionID string) (*Entry, error)
}
