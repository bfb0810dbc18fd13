package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/Samerabualsoud/jam3a-payments/internal/domain/outbox"
	dompay "github.com/Samerabualsoud/jam3a-payments/internal/domain/payment"
	"github.com/Samerabualsoud/jam3a-payments/internal/domain/platform"
	"github.com/Samerabualsoud/jam3a-payments/internal/domain/pricing"
	"github.com/Samerabualsoud/jam3a-payments/internal/observability"
	"github.com/Samerabualsoud/jam3a-payments/internal/observability/logctx"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	paymentService = "payment-orchestrator"
	spanPrefix     = "UC."
	useCaseCharge  = "payment.charge"
	useCaseVerify  = "payment.verify"

	verifyDelay    = 1000 * time.Millisecond
	publishTimeout = 300 * time.Millisecond
)

// methodPlatform lists the platform-exclusive methods. Everything absent
// from this map is platform-agnostic at the API level.
var methodPlatform = map[dompay.Method]platform.Platform{
	dompay.MethodApplePay:  platform.IOS,
	dompay.MethodGooglePay: platform.Android,
}

// Orchestrator selects a payment method, dispatches to the matching
// simulated provider, and normalizes the response. Every call is stateless;
// nothing is cached or revisited between invocations.
type Orchestrator struct {
	providers map[dompay.Method]Provider
	detector  platform.Detector
	prices    *pricing.Table
	publisher outbox.Publisher
	delay     Delayer
	tel       observability.Observability

	log        observability.Logger
	reqCounter observability.Counter   // usecase_requests_total{use_case,outcome}
	durHist    observability.Histogram // usecase_duration_seconds{use_case}
	amountHist observability.Histogram // payment_amount{method}
}

// NewOrchestrator wires the providers and collaborators the façade needs.
// A nil publisher disables event fanout; a nil tel disables telemetry; a nil
// delay falls back to the production timer.
func NewOrchestrator(
	providers []Provider,
	detector platform.Detector,
	prices *pricing.Table,
	publisher outbox.Publisher,
	delay Delayer,
	tel observability.Observability,
) *Orchestrator {
	if detector == nil {
		detector = platform.Static(platform.Android)
	}
	if prices == nil {
		prices = pricing.Default()
	}
	if delay == nil {
		delay = Wait
	}

	baseLog := observability.NopLogger()
	metrics := observability.NopMetrics()
	if tel != nil {
		baseLog = tel.Logger().With(observability.F("service", paymentService))
		metrics = tel.Metrics()
	}

	byMethod := make(map[dompay.Method]Provider, len(providers))
	for _, p := range providers {
		if p != nil {
			byMethod[p.Method()] = p
		}
	}

	return &Orchestrator{
		providers:  byMethod,
		detector:   detector,
		prices:     prices,
		publisher:  publisher,
		delay:      delay,
		tel:        tel,
		log:        baseLog,
		reqCounter: metrics.Counter(observability.MUsecaseRequests),
		durHist:    metrics.Histogram(observability.MUsecaseDuration),
		amountHist: metrics.Histogram(observability.MPaymentAmount),
	}
}

// ProcessCreditCard charges a card through the simulated Moyasar provider.
// It always resolves successfully.
func (o *Orchestrator) ProcessCreditCard(ctx context.Context, req dompay.Request) (*dompay.Result, error) {
	return o.charge(ctx, dompay.MethodCreditCard, req)
}

// ProcessApplePay fails with ErrPlatformMismatch unless the current
// platform is iOS. The check runs before any simulated latency.
func (o *Orchestrator) ProcessApplePay(ctx context.Context, req dompay.Request) (*dompay.Result, error) {
	return o.charge(ctx, dompay.MethodApplePay, req)
}

// ProcessGooglePay fails with ErrPlatformMismatch unless the current
// platform is Android. The check runs before any simulated latency.
func (o *Orchestrator) ProcessGooglePay(ctx context.Context, req dompay.Request) (*dompay.Result, error) {
	return o.charge(ctx, dompay.MethodGooglePay, req)
}

// ProcessSTCPayIOS charges through STC Pay. The two STC Pay variants exist
// because the storefront client integrates a different SDK per platform;
// server-side they behave identically and neither is platform-gated.
func (o *Orchestrator) ProcessSTCPayIOS(ctx context.Context, req dompay.Request) (*dompay.Result, error) {
	return o.charge(ctx, dompay.MethodSTCPay, req)
}

// ProcessSTCPayAndroid charges through STC Pay. See ProcessSTCPayIOS.
func (o *Orchestrator) ProcessSTCPayAndroid(ctx context.Context, req dompay.Request) (*dompay.Result, error) {
	return o.charge(ctx, dompay.MethodSTCPay, req)
}

// ProcessTabby charges through the simulated Tabby installment provider.
// The result always carries four installments of Amount/4.
func (o *Orchestrator) ProcessTabby(ctx context.Context, req dompay.Request) (*dompay.Result, error) {
	return o.charge(ctx, dompay.MethodTabby, req)
}

func (o *Orchestrator) charge(ctx context.Context, method dompay.Method, req dompay.Request) (_ *dompay.Result, err error) {
	logger := logctx.FromOr(ctx, o.log).With(
		observability.F("use_case", useCaseCharge),
		observability.F("payment_method", string(method)),
		observability.F("amount", req.Amount),
		observability.F("currency", req.Currency),
	)

	tracer := observability.NopTracer()
	if o.tel != nil {
		tracer = o.tel.Tracer()
	}

	ctx, span := tracer.Start(ctx, spanPrefix+"Charge",
		attribute.String("use_case", useCaseCharge),
		attribute.String("payment.method", string(method)),
		attribute.Float64("payment.amount", req.Amount),
		attribute.String("payment.currency", req.Currency),
	)
	start := time.Now()
	outcome, statusText := "success", "OK"
	var result *dompay.Result

	defer func() {
		if span != nil {
			if result != nil {
				span.SetAttributes(attribute.String("payment.transaction_id", result.TransactionID))
			}
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, statusText)
			} else {
				span.SetStatus(codes.Ok, statusText)
			}
			span.End()
		}

		latency := time.Since(start).Seconds()
		o.reqCounter.Add(1,
			observability.L("use_case", useCaseCharge),
			observability.L("outcome", outcome),
		)
		o.durHist.Observe(latency,
			observability.L("use_case", useCaseCharge),
		)

		fields := []observability.Field{
			observability.F("outcome", outcome),
			observability.F("status", statusText),
			observability.F("latency_seconds", latency),
		}
		if result != nil {
			fields = append(fields, observability.F("transaction_id", result.TransactionID))
		}
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			fields = append(fields,
				observability.F("trace_id", sc.TraceID().String()),
				observability.F("span_id", sc.SpanID().String()),
			)
		}
		if err != nil {
			fields = append(fields, observability.F("error", err.Error()))
		}
		logger.Info("use_case_done", fields...)
	}()

	// Platform gating is the only validation performed; it fails fast,
	// before the provider round-trip.
	if required, exclusive := methodPlatform[method]; exclusive {
		if current := o.detector.Platform(); current != required {
			outcome, statusText = "error", "PLATFORM_MISMATCH"
			return nil, dompay.PlatformMismatch(method, required)
		}
	}

	provider, ok := o.providers[method]
	if !ok {
		outcome, statusText = "error", "METHOD_UNSUPPORTED"
		return nil, fmt.Errorf("payment: no provider registered for %s", method)
	}

	result, err = provider.Charge(ctx, req)
	if err != nil {
		outcome, statusText = "error", "PROVIDER_FAILED"
		return nil, err
	}

	o.amountHist.Observe(result.Amount,
		observability.L("method", string(method)),
	)

	o.publishCompleted(ctx, result, req.Description)
	return result, nil
}

// publishCompleted fans the charge out to downstream contexts. Failures are
// logged and swallowed; the charge result never depends on them.
func (o *Orchestrator) publishCompleted(ctx context.Context, res *dompay.Result, description string) {
	if o.publisher == nil || res == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := o.publisher.Publish(pubCtx, dompay.NewCompletedEvent(res, description)); err != nil {
		logctx.FromOr(ctx, o.log).Warn("payment_event_publish_failed",
			observability.F("transaction_id", res.TransactionID),
			observability.F("error", err.Error()),
		)
	}
}

// VerifyPayment reports any transaction id as completed after the nominal
// verification delay. No record of issued ids is consulted.
func (o *Orchestrator) VerifyPayment(ctx context.Context, transactionID string) (*dompay.Verification, error) {
	start := time.Now()
	o.delay(ctx, verifyDelay)

	o.reqCounter.Add(1,
		observability.L("use_case", useCaseVerify),
		observability.L("outcome", "success"),
	)
	o.durHist.Observe(time.Since(start).Seconds(),
		observability.L("use_case", useCaseVerify),
	)

	logctx.FromOr(ctx, o.log).Info("payment_verified",
		observability.F("use_case", useCaseVerify),
		observability.F("transaction_id", transactionID),
	)

	return &dompay.Verification{
		TransactionID: transactionID,
		Status:        dompay.StatusCompleted,
		Verified:      true,
	}, nil
}

// AvailableMethods lists the catalog entries offered on the current
// platform, base entries first, the platform-specific entry last.
func (o *Orchestrator) AvailableMethods() []dompay.Descriptor {
	return dompay.Catalog(o.detector.Platform())
}

// ProductPrice resolves the canonical price for a product id. Unknown ids
// fall back to the default price; the lookup never fails.
func (o *Orchestrator) ProductPrice(productID string) int {
	return o.prices.Price(productID)
}
