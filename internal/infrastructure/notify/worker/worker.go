package worker

import (
	"context"
	"fmt"

	domoutbox "github.com/Samerabualsoud/jam3a-payments/internal/domain/outbox"
	dompay "github.com/Samerabualsoud/jam3a-payments/internal/domain/payment"
	"github.com/Samerabualsoud/jam3a-payments/internal/infrastructure/notify"
	"github.com/Samerabualsoud/jam3a-payments/internal/observability"
	"github.com/Samerabualsoud/jam3a-payments/internal/observability/logctx"
)

const componentNotifyWorker = "notify_worker"

// Worker surfaces completed charges as user-facing notifications.
type Worker struct {
	subscriber domoutbox.Subscriber
	notifier   notify.Notifier
	log        observability.Logger
}

func New(subscriber domoutbox.Subscriber, notifier notify.Notifier, logger observability.Logger) *Worker {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Worker{
		subscriber: subscriber,
		notifier:   notifier,
		log:        logger.With(observability.F("component", componentNotifyWorker)),
	}
}

func (w *Worker) Start() {
	if w.subscriber == nil || w.notifier == nil {
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

	body := fmt.Sprintf("Your %s payment of %.2f %s was received.", evt.Method, evt.Amount, evt.Currency)
	if err := w.notifier.Notify(ctx, "Payment received", body); err != nil {
		logger.Warn("notification_failed",
			observability.F("transaction_id", evt.TransactionID),
			observability.F("error", err.Error()),
		)
		return err
	}
	return nil
}
