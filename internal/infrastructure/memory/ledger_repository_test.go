package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/Samerabualsoud/jam3a-payments/internal/domain/ledger"
	dompay "github.com/Samerabualsoud/jam3a-payments/internal/domain/payment"
)

func TestLedgerSaveAndFind(t *testing.T) {
	repo := NewLedgerRepository()
	ctx := context.Background()

	entry := &domain.Entry{
		TransactionID: "moyasar_1700000000000_ab12cd34",
		Method:        dompay.MethodCreditCard,
		Amount:        499,
		Currency:      "SAR",
		Description:   "deal checkout",
		IssuedAt:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		RecordedAt:    time.Date(2025, 6, 1, 12, 0, 1, 0, time.UTC),
	}
	if err := repo.Save(ctx, entry); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Find(ctx, entry.TransactionID)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got.TransactionID != entry.TransactionID ||
		got.Method != entry.Method ||
		got.Amount != entry.Amount ||
		got.Currency != entry.Currency ||
		got.Description != entry.Description {
		t.Errorf("roundtrip mismatch:\n got %+v\nwant %+v", got, entry)
	}
	if !got.IssuedAt.Equal(entry.IssuedAt) || !got.RecordedAt.Equal(entry.RecordedAt) {
		t.Errorf("timestamps not preserved: got %v/%v", got.IssuedAt, got.RecordedAt)
	}
}

func TestLedgerFindMissing(t *testing.T) {
	repo := NewLedgerRepository()

	_, err := repo.Find(context.Background(), "never-recorded")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Find(missing) error = %v, want ErrNotFound", err)
	}
}

func TestLedgerSaveNilEntry(t *testing.T) {
	repo := NewLedgerRepository()

	if err := repo.Save(context.Background(), nil); err != nil {
		t.Errorf("Save(nil) = %v, want nil", err)
	}
	if repo.Len() != 0 {
		t.Errorf("Len = %d after nil save, want 0", repo.Len())
	}
}

func TestLedgerOverwriteSameTransaction(t *testing.T) {
	repo := NewLedgerRepository()
	ctx := context.Background()

	first := &domain.Entry{TransactionID: "tabby_1_x", Amount: 10}
	second := &domain.Entry{TransactionID: "tabby_1_x", Amount: 20}
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Find(ctx, "tabby_1_x")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got.Amount != 20 {
		t.Errorf("amount = %v, want latest write 20", got.Amount)
	}
	if repo.Len() != 1 {
		t.Errorf("Len = %d, want 1", repo.Len())
	}
}
