package coinpayments

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"fleet-toll-gateway/config"
	"fleet-toll-gateway/internal/core/domain"
	"fleet-toll-gateway/internal/core/ports"
	"fleet-toll-gateway/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) config.CoinPaymentsConfig {
	return config.CoinPaymentsConfig{
		APIKey:    "test-api-key",
		APISecret: "test-api-secret",
		IPNSecret: "test-ipn-secret",
		BaseURL:   baseURL,
		Timeout:   5 * time.Second,
	}
}

func hmacSHA512(secret string, payload []byte) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestClient_CreateInvoice(t *testing.T) {
	var gotBody []byte
	var gotMAC string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotMAC = r.Header.Get("HMAC")
		w.Write([]byte(`{"error":"ok","result":{"txn_id":"CPFD1NY3RJ","checkout_url":"https://www.coinpayments.net/index.php?cmd=checkout&id=CPFD1NY3RJ"}}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), nil, zerolog.Nop())
	invoice, err := client.CreateInvoice(context.Background(), ports.CryptoInvoiceRequest{
		Amount:     decimal.RequireFromString("0.01"),
		Currency:   domain.CurrencyBTC,
		BuyerEmail: "owner@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "CPFD1NY3RJ", invoice.ExternalID)
	assert.Contains(t, invoice.CheckoutURL, "cmd=checkout")

	// Request body must be signed with the API secret.
	assert.Equal(t, hmacSHA512("test-api-secret", gotBody), gotMAC)

	params, err := url.ParseQuery(string(gotBody))
	require.NoError(t, err)
	assert.Equal(t, "create_transaction", params.Get("cmd"))
	assert.Equal(t, "test-api-key", params.Get("key"))
	assert.Equal(t, "0.01", params.Get("amount"))
	assert.Equal(t, "BTC", params.Get("currency1"))
	assert.Equal(t, "owner@example.com", params.Get("buyer_email"))
	assert.NotEmpty(t, params.Get("nonce"))
}

func TestClient_CreateInvoice_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"Amount too small","result":{}}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), nil, zerolog.Nop())
	invoice, err := client.CreateInvoice(context.Background(), ports.CryptoInvoiceRequest{
		Amount:   decimal.RequireFromString("0.00000001"),
		Currency: domain.CurrencyBTC,
	})
	require.Error(t, err)
	assert.Nil(t, invoice)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "GW_001", appErr.Code)
	assert.Equal(t, "Amount too small", appErr.Message)
}

func TestClient_CreateInvoice_Non200Status(t *testing.T) {
	// A gateway in front of the provider can answer 5xx with a cached or
	// fabricated body; the envelope must not be trusted on a non-200.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"ok","result":{"txn_id":"T500","checkout_url":"https://checkout.test"}}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), nil, zerolog.Nop())
	invoice, err := client.CreateInvoice(context.Background(), ports.CryptoInvoiceRequest{
		Amount:   decimal.RequireFromString("0.01"),
		Currency: domain.CurrencyBTC,
	})
	require.Error(t, err)
	assert.Nil(t, invoice)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "GW_002", appErr.Code)
}

func TestClient_CreateInvoice_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused

	client := NewClient(testConfig(srv.URL), nil, zerolog.Nop())
	_, err := client.CreateInvoice(context.Background(), ports.CryptoInvoiceRequest{
		Amount:   decimal.RequireFromString("0.01"),
		Currency: domain.CurrencyBTC,
	})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "GW_002", appErr.Code)
}

func TestClient_VerifyIPN(t *testing.T) {
	client := NewClient(testConfig("https://unused.example"), nil, zerolog.Nop())
	payload := []byte("txn_id=CPFD1NY3RJ&status=100&amount1=0.01")

	validMAC := hmacSHA512("test-ipn-secret", payload)

	assert.True(t, client.VerifyIPN(payload, validMAC))
	assert.False(t, client.VerifyIPN(payload, "deadbeef"))
	assert.False(t, client.VerifyIPN(payload, ""))

	// A single altered byte in the payload must break the MAC.
	tampered := []byte("txn_id=CPFD1NY3RJ&status=101&amount1=0.01")
	assert.False(t, client.VerifyIPN(tampered, validMAC))
}

func TestClient_VerifyIPN_SignedWithAPISecret(t *testing.T) {
	client := NewClient(testConfig("https://unused.example"), nil, zerolog.Nop())
	payload := []byte("txn_id=CPFD1NY3RJ&status=100")

	// The IPN secret is distinct from the API secret; a MAC computed with
	// the wrong one must be rejected.
	wrongMAC := hmacSHA512("test-api-secret", payload)
	assert.False(t, client.VerifyIPN(payload, wrongMAC))
}
