package coinpayments

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fleet-toll-gateway/config"
	"fleet-toll-gateway/internal/core/ports"
	"fleet-toll-gateway/pkg/apperror"

	"github.com/rs/zerolog"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client implements ports.CryptoGateway against the CoinPayments HTTP API.
// Outbound requests are authenticated with HMAC-SHA512 over the encoded form
// body; inbound IPN callbacks are verified with a separate IPN secret.
type Client struct {
	cfg        config.CoinPaymentsConfig
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewClient creates a CoinPayments API client.
func NewClient(cfg config.CoinPaymentsConfig, httpClient HTTPClient, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		log:        log,
	}
}

// apiResponse is the CoinPayments envelope. The error field carries the
// literal string "ok" on success.
type apiResponse struct {
	Error  string `json:"error"`
	Result struct {
		TxnID       string `json:"txn_id"`
		CheckoutURL string `json:"checkout_url"`
	} `json:"result"`
}

// CreateInvoice calls cmd=create_transaction and returns the provider
// transaction id and hosted checkout URL.
func (c *Client) CreateInvoice(ctx context.Context, req ports.CryptoInvoiceRequest) (*ports.CryptoInvoice, error) {
	params := url.Values{}
	params.Set("cmd", "create_transaction")
	params.Set("key", c.cfg.APIKey)
	params.Set("version", "1")
	params.Set("format", "json")
	params.Set("amount", req.Amount.String())
	params.Set("currency1", string(req.Currency))
	params.Set("currency2", string(req.Currency))
	params.Set("buyer_email", req.BuyerEmail)
	params.Set("nonce", strconv.FormatInt(time.Now().Unix(), 10))

	// url.Values.Encode sorts keys, which is what the API signs against.
	body := params.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build coinpayments request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("HMAC", c.sign([]byte(body), c.cfg.APISecret))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Error().Err(err).Msg("coinpayments: request failed")
		return nil, apperror.ErrGatewayUnavailable(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.ErrGatewayUnavailable(err)
	}

	// The envelope's error field is only trustworthy on a 200; proxies and
	// provider outages answer with their own bodies.
	if resp.StatusCode != http.StatusOK {
		c.log.Error().Int("status", resp.StatusCode).Msg("coinpayments: unexpected http status")
		return nil, apperror.ErrGatewayUnavailable(fmt.Errorf("coinpayments http status %d", resp.StatusCode))
	}

	var api apiResponse
	if err := json.Unmarshal(respBody, &api); err != nil {
		c.log.Error().Err(err).Int("status", resp.StatusCode).Msg("coinpayments: malformed response")
		return nil, apperror.ErrGatewayUnavailable(err)
	}

	if api.Error != "ok" {
		c.log.Warn().Str("provider_error", api.Error).Msg("coinpayments: transaction rejected")
		return nil, apperror.ErrGateway(api.Error)
	}

	c.log.Info().
		Str("txn_id", api.Result.TxnID).
		Str("amount", req.Amount.String()).
		Str("currency", string(req.Currency)).
		Msg("coinpayments: transaction created")

	return &ports.CryptoInvoice{
		ExternalID:  api.Result.TxnID,
		CheckoutURL: api.Result.CheckoutURL,
	}, nil
}

// VerifyIPN recomputes HMAC-SHA512 over the exact bytes received and compares
// it with the HMAC header value in constant time. The payload must not be
// re-encoded before verification; any byte change breaks the MAC.
func (c *Client) VerifyIPN(payload []byte, providedMAC string) bool {
	if providedMAC == "" {
		return false
	}
	expected := c.sign(payload, c.cfg.IPNSecret)
	return hmac.Equal([]byte(expected), []byte(providedMAC))
}

// sign computes lowercase hex HMAC-SHA512 of payload.
func (c *Client) sign(payload []byte, secret string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
