package worker

import (
	"context"

	domledger "github.com/Samerabualsoud/jam3a-payments/internal/domain/ledger"
	domoutbox "github.com/Samerabualsoud/jam3a-payments/internal/domain/outbox"
	dompay "github.com/Samerabualsoud/jam3a-payments/internal/domain/payment"
	"github.com/Samerabualsoud/jam3a-payments/internal/observability"
	"github.com/Samerabualsoud/jam3a-payments/internal/observability/logctx"
)

const componentLedgerWorker = "ledger_worker"

// Worker records completed charges into the transaction ledger. It runs
// strictly downstream of the event bus: the orchestrator itself never
// persists anything.
type Worker struct {
	subscriber domoutbox.Subscriber
	repo       domledger.Repository
	log        observability.Logger
}

func New(subscriber domoutbox.Subscriber, repo domledger.Repository, logger observability.Logger) *Worker {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Worker{
		subscriber: subscriber,
		repo:       repo,
		log:        logger.With(observability.F("component", componentLedgerWorker)),
	}
}

func (w *Worker) Start() {
	if w.subscriber == nil || w.repo == nil {
		return
	}
	w.subscriber.Subscribe(dompay.CompletedEvent{}.EventName(), w.handlePaymentCompleted)
}

func (w *Worker) handlePaymentCompleted(ctx context.Context, e domoutbox.Event) error {
	logger := logctx.FromOr(ctx, w.log)

	evt, ok := e.(dompay.CompletedEvent)
	if !ok {
		return nil
	}

	if err := w.repo.Save(ctx, domledger.FromEvent(evt)); err != nil {
		logger.Warn("ledger_record_failed",
			observability.F("transaction_id", evt.TransactionID),
			observability.F("error", err.Error()),
		)
		return err
	}

	logger.Info("ledger_recorded",
		observability.F("transaction_id", evt.TransactionID),
		observability.F("payment_method", string(evt.Method)),
	)
	return nil
}
