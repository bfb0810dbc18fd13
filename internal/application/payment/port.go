package payment

import (
	"context"
	"time"

	dompay "github.com/Samerabualsoud/jam3a-payments/internal/domain/payment"
)

// Provider is an outbound port for a single simulated payment network.
// It belongs to the application layer to express use-case dependencies.
type Provider interface {
	Method() dompay.Method
	Charge(ctx context.Context, req dompay.Request) (*dompay.Result, error)
}

// Delayer models the simulated provider latency. Production supplies a real
// timer; tests supply an immediate return. The wait always runs to
// completion — cancellation is not part of the provider contract.
type Delayer func(ctx context.Context, d time.Duration)

// Wait is the production Delayer.
func Wait(_ context.Context, d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

// NoDelay resolves immediately, for tests.
func NoDelay(context.Context, time.Duration) {}
