package payment

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Samerabualsoud/jam3a-payments/internal/domain/platform"
	"github.com/google/uuid"
)

// ErrPlatformMismatch is the single domain error: a platform-exclusive
// payment method was invoked on the wrong platform. It is raised before
// any provider round-trip starts; there is no fallback.
var ErrPlatformMismatch = errors.New("payment: method not available on this platform")

// PlatformMismatch wraps ErrPlatformMismatch with the method and the
// platform it requires, so transport layers can surface a useful message.
func PlatformMismatch(method Method, required platform.Platform) error {
	return fmt.Errorf("%w: %s requires %s", ErrPlatformMismatch, method, required)
}

// Method tags the payment network a charge was dispatched to.
type Method string

const (
	MethodCreditCard Method = "credit-card"
	MethodApplePay   Method = "apple-pay"
	MethodGooglePay  Method = "google-pay"
	MethodSTCPay     Method = "stc-pay"
	MethodTabby      Method = "tabby"
)

// Request carries the caller-supplied charge parameters. It is an immutable
// input and is never persisted by the orchestrator.
type Request struct {
	Amount      float64
	Currency    string
	Description string
	Metadata    map[string]any
}

// Result is the normalized outcome shape shared by every provider.
// Deferred-payment methods additionally fill the installment fields.
type Result struct {
	Success       bool
	TransactionID string
	Amount        float64
	Currency      string
	Method        Method
	IssuedAt      time.Time

	// Set only by installment providers; zero otherwise.
	Installments      int
	InstallmentAmount float64
}

// Verification echoes a completed status for any transaction id. No record
// of prior charges is consulted; the permissive behavior is intentional.
type Verification struct {
	TransactionID string
	Status        string
	Verified      bool
}

const StatusCompleted = "completed"

// NewTransactionID builds `<tag>_<unix-millis>_<short-random>`.
// The original scheme was tag+millis only; the random fragment keeps
// concurrent charges within one clock tick distinct.
func NewTransactionID(tag string, issuedAt time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return tag + "_" + strconv.FormatInt(issuedAt.UnixMilli(), 10) + "_" + suffix
}
