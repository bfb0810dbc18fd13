package httptransport

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apppay "github.com/Samerabualsoud/jam3a-payments/internal/application/payment"
	"github.com/Samerabualsoud/jam3a-payments/internal/domain/platform"
	"github.com/Samerabualsoud/jam3a-payments/internal/infrastructure/provider"
)

func newTestServer(t *testing.T, p platform.Platform) *httptest.Server {
	t.Helper()
	detector := platform.Static(p)
	orchestrator := apppay.NewOrchestrator(provider.All(apppay.NoDelay), detector, nil, nil, apppay.NoDelay, nil)
	srv := httptest.NewServer(NewHandler(orchestrator, detector).Router())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestChargeCreditCardEndpoint(t *testing.T) {
	srv := newTestServer(t, platform.Android)

	resp := postJSON(t, srv.URL+"/payments/credit-card", map[string]any{
		"amount":      499,
		"currency":    "SAR",
		"description": "deal checkout",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body chargeResponse
	decodeBody(t, resp, &body)
	if !body.Success {
		t.Error("success = false")
	}
	if body.PaymentMethod != "credit-card" {
		t.Errorf("payment_method = %q", body.PaymentMethod)
	}
	if !strings.HasPrefix(body.TransactionID, "moyasar_") {
		t.Errorf("transaction_id = %q, want moyasar_ prefix", body.TransactionID)
	}
}

func TestApplePayMismatchMapsToConflict(t *testing.T) {
	srv := newTestServer(t, platform.Android)

	resp := postJSON(t, srv.URL+"/payments/apple-pay", map[string]any{
		"amount":   100,
		"currency": "SAR",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want 409", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestTabbyEndpointReturnsInstallments(t *testing.T) {
	srv := newTestServer(t, platform.IOS)

	resp := postJSON(t, srv.URL+"/payments/tabby", map[string]any{
		"amount":   100,
		"currency": "SAR",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body chargeResponse
	decodeBody(t, resp, &body)
	if body.Installments != 4 || body.InstallmentAmount != 25 {
		t.Errorf("installments = %d x %v, want 4 x 25", body.Installments, body.InstallmentAmount)
	}
}

func TestVerifyEndpoint(t *testing.T) {
	srv := newTestServer(t, platform.IOS)

	resp := postJSON(t, srv.URL+"/payments/verify", map[string]any{
		"transaction_id": "made-up-id",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body verifyResponse
	decodeBody(t, resp, &body)
	if body.TransactionID != "made-up-id" || body.Status != "completed" || !body.Verified {
		t.Errorf("verify response = %+v", body)
	}
}

func TestMethodsEndpointPerPlatform(t *testing.T) {
	cases := []struct {
		platform platform.Platform
		lastID   string
	}{
		{platform.IOS, "apple-pay"},
		{platform.Android, "google-pay"},
	}
	for _, tc := range cases {
		srv := newTestServer(t, tc.platform)

		resp, err := http.Get(srv.URL + "/payments/methods")
		if err != nil {
			t.Fatalf("GET methods: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}

		var body methodsResponse
		decodeBody(t, resp, &body)
		if len(body.Methods) != 5 {
			t.Fatalf("%s: %d methods, want 5", tc.platform, len(body.Methods))
		}
		if got := body.Methods[4].ID; got != tc.lastID {
			t.Errorf("%s: last method = %q, want %q", tc.platform, got, tc.lastID)
		}
	}
}

func TestProductPriceEndpoint(t *testing.T) {
	srv := newTestServer(t, platform.Android)

	cases := []struct {
		id   string
		want int
	}{
		{"iphone-16", 799},
		{"samsung-fold6", 1799},
		{"unknown-id-xyz", 799},
	}
	for _, tc := range cases {
		resp, err := http.Get(srv.URL + "/products/price?id=" + tc.id)
		if err != nil {
			t.Fatalf("GET price: %v", err)
		}
		var body priceResponse
		decodeBody(t, resp, &body)
		if body.Price != tc.want {
			t.Errorf("price(%s) = %d, want %d", tc.id, body.Price, tc.want)
		}
	}
}

func TestChargeRejectsMalformedBody(t *testing.T) {
	srv := newTestServer(t, platform.Android)

	resp, err := http.Post(srv.URL+"/payments/credit-card", "application/json", strings.NewReader("{not json"))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestChargeRejectsWrongMethod(t *testing.T) {
	srv := newTestServer(t, platform.Android)

	resp, err := http.Get(srv.URL + "/payments/credit-card")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
	resp.Body.Close()
}
