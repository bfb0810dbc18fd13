package notify

import (
	"context"

	"github.com/Samerabualsoud/jam3a-payments/internal/observability"
)

// Notifier requests an immediate title/body notification. Fire and forget:
// there is no trigger, delay, or delivery acknowledgement.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}

// LogNotifier emits notifications as structured log lines. It stands in
// for the client-side local-notification scheduler in server deployments.
type LogNotifier struct {
	log observability.Logger
}

func NewLogNotifier(logger observability.Logger) *LogNotifier {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &LogNotifier{log: logger.With(observability.F("component", "notifier"))}
}

func (n *LogNotifier) Notify(ctx context.Context, title, body string) error {
	_ = ctx
	n.log.Info("notification_sent",
		observability.F("title", title),
		observability.F("body", body),
	)
	return nil
}
