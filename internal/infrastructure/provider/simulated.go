package provider

import (
	"context"
	"time"

	apppay "github.com/Samerabualsoud/jam3a-payments/internal/application/payment"
	dompay "github.com/Samerabualsoud/jam3a-payments/internal/domain/payment"
)

// Nominal provider round-trip latencies, as observed against the real
// gateways these simulators stand in for.
const (
	moyasarDelay   = 2000 * time.Millisecond
	applePayDelay  = 1500 * time.Millisecond
	googlePayDelay = 1500 * time.Millisecond
	stcPayDelay    = 1800 * time.Millisecond
	tabbyDelay     = 2200 * time.Millisecond
)

// decorator lets a provider attach method-specific fields to the
// normalized result before it is returned.
type decorator func(req dompay.Request, res *dompay.Result)

// Simulated stands in for an external payment network. A charge waits the
// nominal delay through the injected Delayer and then always resolves
// successfully; simulated providers never decline.
type Simulated struct {
	method   dompay.Method
	tag      string
	delay    time.Duration
	wait     apppay.Delayer
	now      func() time.Time
	decorate decorator
}

var _ apppay.Provider = (*Simulated)(nil)

func newSimulated(method dompay.Method, tag string, delay time.Duration, wait apppay.Delayer, decorate decorator) *Simulated {
	if wait == nil {
		wait = apppay.Wait
	}
	return &Simulated{
		method:   method,
		tag:      tag,
		delay:    delay,
		wait:     wait,
		now:      func() time.Time { return time.Now().UTC() },
		decorate: decorate,
	}
}

func (s *Simulated) Method() dompay.Method { return s.method }

// Charge runs the simulated round-trip. The wait runs to completion
// regardless of context state; cancellation is not supported.
func (s *Simulated) Charge(ctx context.Context, req dompay.Request) (*dompay.Result, error) {
	s.wait(ctx, s.delay)

	issuedAt := s.now()
	res := &dompay.Result{
		Success:       true,
		TransactionID: dompay.NewTransactionID(s.tag, issuedAt),
		Amount:        req.Amount,
		Currency:      req.Currency,
		Method:        s.method,
		IssuedAt:      issuedAt,
	}
	if s.decorate != nil {
		s.decorate(req, res)
	}
	return res, nil
}

// NewMoyasar simulates the Moyasar card processor (credit-card and mada).
func NewMoyasar(wait apppay.Delayer) *Simulated {
	return newSimulated(dompay.MethodCreditCard, "moyasar", moyasarDelay, wait, nil)
}

// NewApplePay simulates the Apple Pay wallet. Platform gating happens in
// the orchestrator, not here.
func NewApplePay(wait apppay.Delayer) *Simulated {
	return newSimulated(dompay.MethodApplePay, "applepay", applePayDelay, wait, nil)
}

// NewGooglePay simulates the Google Pay wallet.
func NewGooglePay(wait apppay.Delayer) *Simulated {
	return newSimulated(dompay.MethodGooglePay, "googlepay", googlePayDelay, wait, nil)
}

// NewSTCPay simulates the STC Pay wallet used by both platform variants.
func NewSTCPay(wait apppay.Delayer) *Simulated {
	return newSimulated(dompay.MethodSTCPay, "stcpay", stcPayDelay, wait, nil)
}

// NewTabby simulates the Tabby buy-now-pay-later network. Charges split
// into four equal installments.
func NewTabby(wait apppay.Delayer) *Simulated {
	return newSimulated(dompay.MethodTabby, "tabby", tabbyDelay, wait, func(req dompay.Request, res *dompay.Result) {
		res.Installments = 4
		res.InstallmentAmount = req.Amount / 4
	})
}

// All returns every simulated provider sharing one Delayer, in a stable
// order suitable for orchestrator wiring.
func All(wait apppay.Delayer) []apppay.Provider {
	return []apppay.Provider{
		NewMoyasar(wait),
		NewApplePay(wait),
		NewGooglePay(wait),
		NewSTCPay(wait),
		NewTabby(wait),
	}
}
