package worker

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	dompay "github.com/Samerabualsoud/jam3a-payments/internal/domain/payment"
	"github.com/Samerabualsoud/jam3a-payments/internal/infrastructure/outbox"
	"github.com/Samerabualsoud/jam3a-payments/internal/observability"
)

type fakeNotifier struct {
	mu     sync.Mutex
	titles []string
	bodies []string
}

func (f *fakeNotifier) Notify(_ context.Context, title, body string) error {
	f.mu.Lock()
	f.titles = append(f.titles, title)
	f.bodies = append(f.bodies, body)
	f.mu.Unlock()
	return nil
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.titles)
}

func TestWorkerNotifiesOnCompletedPayment(t *testing.T) {
	bus := outbox.NewBus(observability.NopLogger())
	notifier := &fakeNotifier{}
	New(bus, notifier, observability.NopLogger()).Start()

	bus.Start(context.Background())
	defer bus.Stop(context.Background())

	evt := dompay.CompletedEvent{
		TransactionID: "tabby_1700000000000_cc33dd44",
		Method:        dompay.MethodTabby,
		Amount:        100,
		Currency:      "SAR",
	}
	if err := bus.Publish(context.Background(), evt); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for notifier.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if notifier.count() != 1 {
		t.Fatalf("sent %d notifications, want 1", notifier.count())
	}

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if notifier.titles[0] != "Payment received" {
		t.Errorf("title = %q", notifier.titles[0])
	}
	if !strings.Contains(notifier.bodies[0], "tabby") || !strings.Contains(notifier.bodies[0], "SAR") {
		t.Errorf("body = %q, want method and currency mentioned", notifier.bodies[0])
	}
}
