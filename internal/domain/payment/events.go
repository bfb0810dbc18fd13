package payment

import "time"

// CompletedEvent is emitted after a provider resolves a charge. Downstream
// contexts (ledger, notifications) react to it; the charge result itself
// never depends on their outcome.
type CompletedEvent struct {
	TransactionID string
	Method        Method
	Amount        float64
	Currency      string
	Description   string
	IssuedAt      time.Time
	OccurredAt    time.Time
}

func (CompletedEvent) EventName() string { return "payment.completed" }

func NewCompletedEvent(res *Result, description string) CompletedEvent {
	return CompletedEvent{
		TransactionID: res.TransactionID,
		Method:        res.Method,
		Amount:        res.Amount,
		Currency:      res.Currency,
		Description:   description,
		IssuedAt:      res.IssuedAt,
		OccurredAt:    time.Now().UTC(),
	}
}
