package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apppay "github.com/Samerabualsoud/jam3a-payments/internal/application/payment"
	"github.com/Samerabualsoud/jam3a-payments/internal/domain/pricing"
	httptransport "github.com/Samerabualsoud/jam3a-payments/internal/infrastructure/http"
	ledgerworker "github.com/Samerabualsoud/jam3a-payments/internal/infrastructure/ledger/worker"
	"github.com/Samerabualsoud/jam3a-payments/internal/infrastructure/memory"
	"github.com/Samerabualsoud/jam3a-payments/internal/infrastructure/notify"
	notifyworker "github.com/Samerabualsoud/jam3a-payments/internal/infrastructure/notify/worker"
	infraobs "github.com/Samerabualsoud/jam3a-payments/internal/infrastructure/observability"
	"github.com/Samerabualsoud/jam3a-payments/internal/infrastructure/observability/oteltrace"
	"github.com/Samerabualsoud/jam3a-payments/internal/infrastructure/observability/prometrics"
	"github.com/Samerabualsoud/jam3a-payments/internal/infrastructure/observability/zaplogger"
	"github.com/Samerabualsoud/jam3a-payments/internal/infrastructure/outbox"
	infraplatform "github.com/Samerabualsoud/jam3a-payments/internal/infrastructure/platform"
	"github.com/Samerabualsoud/jam3a-payments/internal/infrastructure/provider"
	"github.com/Samerabualsoud/jam3a-payments/internal/observability"
	"github.com/Samerabualsoud/jam3a-payments/internal/pkg/logging"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	serviceName := getenvDefault("SERVICE_NAME", "jam3a-payments")
	env := getenvDefault("ENV", "dev")
	addr := getenvDefault("HTTP_ADDR", ":8080")

	baseLogger := logging.MustNewLogger(serviceName, env)
	defer func() { _ = baseLogger.Sync() }()
	zap.ReplaceGlobals(baseLogger)

	obsLogger := zaplogger.Wrap(baseLogger)
	registry := prometrics.New("jam3a", "payments")

	counters := map[observability.MetricKey]observability.Counter{
		observability.MUsecaseRequests: registry.Counter(
			string(observability.MUsecaseRequests),
			"Total number of use case invocations.",
			"use_case", "outcome",
		),
		observability.MHTTPRequests: registry.Counter(
			string(observability.MHTTPRequests),
			"Total number of HTTP requests.",
			"method", "route", "status",
		),
	}
	histograms := map[observability.MetricKey]observability.Histogram{
		observability.MUsecaseDuration: registry.Histogram(
			string(observability.MUsecaseDuration),
			"Duration of use case execution in seconds.",
			nil,
			"use_case",
		),
		observability.MHTTPRequestDuration: registry.Histogram(
			string(observability.MHTTPRequestDuration),
			"Duration of HTTP request handling in seconds.",
			nil,
			"method", "route", "status",
		),
		observability.MPaymentAmount: registry.Histogram(
			string(observability.MPaymentAmount),
			"Charged amounts by payment method.",
			[]float64{10, 50, 100, 250, 500, 1000, 2500, 5000},
			"method",
		),
	}
	tel := infraobs.New(oteltrace.New(serviceName), obsLogger, counters, histograms)

	detector := infraplatform.FromEnv()

	// In-memory event bus fans completed charges out to the ledger and
	// notification workers.
	bus := outbox.NewBus(obsLogger)
	bus.Start(context.Background())
	defer bus.Stop(context.Background())

	ledgerRepo := memory.NewLedgerRepository()
	ledgerworker.New(bus, ledgerRepo, obsLogger).Start()
	notifyworker.New(bus, notify.NewLogNotifier(obsLogger), obsLogger).Start()

	orchestrator := apppay.NewOrchestrator(
		provider.All(apppay.Wait),
		detector,
		pricing.Default(),
		bus,
		apppay.Wait,
		tel,
	)

	handler := httptransport.NewHandler(orchestrator, detector)
	observed := httptransport.ObservabilityMiddleware(tel)(handler.Router())

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", observed)

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("http_server_start",
			zap.String("addr", server.Addr),
			zap.String("platform", string(detector.Platform())),
		)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Error("http_server_error",
				zap.Error(err),
			)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("http_server_shutdown_error",
			zap.Error(err),
		)
	} else {
		baseLogger.Info("http_server_stopped")
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
