package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	apppay "github.com/Samerabualsoud/jam3a-payments/internal/application/payment"
	dompay "github.com/Samerabualsoud/jam3a-payments/internal/domain/payment"
	"github.com/Samerabualsoud/jam3a-payments/internal/domain/platform"
)

type Handler struct {
	orchestrator *apppay.Orchestrator
	detector     platform.Detector
}

func NewHandler(orchestrator *apppay.Orchestrator, detector platform.Detector) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		detector:     detector,
	}
}

func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/payments/credit-card", h.method(http.MethodPost, h.chargeHandler(h.orchestrator.ProcessCreditCard)))
	mux.HandleFunc("/payments/apple-pay", h.method(http.MethodPost, h.chargeHandler(h.orchestrator.ProcessApplePay)))
	mux.HandleFunc("/payments/google-pay", h.method(http.MethodPost, h.chargeHandler(h.orchestrator.ProcessGooglePay)))
	mux.HandleFunc("/payments/stc-pay", h.method(http.MethodPost, h.chargeHandler(h.processSTCPay)))
	mux.HandleFunc("/payments/tabby", h.method(http.MethodPost, h.chargeHandler(h.orchestrator.ProcessTabby)))
	mux.HandleFunc("/payments/verify", h.method(http.MethodPost, h.handleVerify))
	mux.HandleFunc("/payments/methods", h.method(http.MethodGet, h.handleMethods))
	mux.HandleFunc("/products/price", h.method(http.MethodGet, h.handleProductPrice))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return mux
}

// processSTCPay routes to the platform-specific STC Pay variant. Both
// variants charge identically; the split mirrors the client SDKs.
func (h *Handler) processSTCPay(ctx context.Context, req dompay.Request) (*dompay.Result, error) {
	if h.detector.Platform() == platform.IOS {
		return h.orchestrator.ProcessSTCPayIOS(ctx, req)
	}
	return h.orchestrator.ProcessSTCPayAndroid(ctx, req)
}

type chargeRequest struct {
	Amount      float64        `json:"amount"`
	Currency    string         `json:"currency"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

type chargeResponse struct {
	Success           bool      `json:"success"`
	TransactionID     string    `json:"transaction_id"`
	Amount            float64   `json:"amount"`
	Currency          string    `json:"currency"`
	PaymentMethod     string    `json:"payment_method"`
	IssuedAt          time.Time `json:"issued_at"`
	Installments      int       `json:"installments,omitempty"`
	InstallmentAmount float64   `json:"installment_amount,omitempty"`
}

type chargeFunc func(ctx context.Context, req dompay.Request) (*dompay.Result, error)

func (h *Handler) chargeHandler(charge chargeFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chargeRequest
		if err := decodeJSON(r.Context(), r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		result, err := charge(r.Context(), dompay.Request{
			Amount:      req.Amount,
			Currency:    req.Currency,
			Description: req.Description,
			Metadata:    req.Metadata,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, chargeResponse{
			Success:           result.Success,
			TransactionID:     result.TransactionID,
			Amount:            result.Amount,
			Currency:          result.Currency,
			PaymentMethod:     string(result.Method),
			IssuedAt:          result.IssuedAt,
			Installments:      result.Installments,
			InstallmentAmount: result.InstallmentAmount,
		})
	}
}

type verifyRequest struct {
	TransactionID string `json:"transaction_id"`
}

type verifyResponse struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	Verified      bool   `json:"verified"`
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := decodeJSON(r.Context(), r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	verification, err := h.orchestrator.VerifyPayment(r.Context(), req.TransactionID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, verifyResponse{
		TransactionID: verification.TransactionID,
		Status:        verification.Status,
		Verified:      verification.Verified,
	})
}

type methodEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type methodsResponse struct {
	Platform string        `json:"platform"`
	Methods  []methodEntry `json:"methods"`
}

func (h *Handler) handleMethods(w http.ResponseWriter, r *http.Request) {
	descriptors := h.orchestrator.AvailableMethods()
	entries := make([]methodEntry, 0, len(descriptors))
	for _, d := range descriptors {
		entries = append(entries, methodEntry{ID: d.ID, Name: d.Name, Icon: d.Icon})
	}

	writeJSON(w, http.StatusOK, methodsResponse{
		Platform: string(h.detector.Platform()),
		Methods:  entries,
	})
}

type priceResponse struct {
	ProductID string `json:"product_id"`
	Price     int    `json:"price"`
}

func (h *Handler) handleProductPrice(w http.ResponseWriter, r *http.Request) {
	productID := r.URL.Query().Get("id")
	writeJSON(w, http.StatusOK, priceResponse{
		ProductID: productID,
		Price:     h.orchestrator.ProductPrice(productID),
	})
}

func (h *Handler) method(method string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
			return
		}
		handler(w, r)
	}
}

func decodeJSON(ctx context.Context, r *http.Request, dst any) error {
	_ = ctx
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dompay.ErrPlatformMismatch):
		writeError(w, http.StatusConflict, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}
