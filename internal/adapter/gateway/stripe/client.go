package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"fleet-toll-gateway/config"
	"fleet-toll-gateway/internal/core/ports"
	"fleet-toll-gateway/pkg/apperror"

	"github.com/rs/zerolog"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client implements ports.CardGateway against the Stripe charges API.
type Client struct {
	cfg        config.StripeConfig
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewClient creates a Stripe API client.
func NewClient(cfg config.StripeConfig, httpClient HTTPClient, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		log:        log,
	}
}

type chargeResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Charge creates a synchronous card charge. Amounts are in the smallest
// currency unit, as the API requires.
func (c *Client) Charge(ctx context.Context, req ports.CardChargeRequest) (*ports.CardCharge, error) {
	params := url.Values{}
	params.Set("amount", strconv.FormatInt(req.AmountMinor, 10))
	params.Set("currency", strings.ToLower(string(req.Currency)))
	params.Set("source", req.Token)
	params.Set("description", req.Description)

	endpoint := c.cfg.BaseURL + "/v1/charges"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build stripe request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.SecretKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Error().Err(err).Msg("stripe: request failed")
		return nil, apperror.ErrGatewayUnavailable(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.ErrGatewayUnavailable(err)
	}

	var charge chargeResponse
	if err := json.Unmarshal(respBody, &charge); err != nil {
		c.log.Error().Err(err).Int("status", resp.StatusCode).Msg("stripe: malformed response")
		return nil, apperror.ErrGatewayUnavailable(err)
	}

	if resp.StatusCode != http.StatusOK || charge.Error != nil {
		msg := "card charge declined"
		if charge.Error != nil && charge.Error.Message != "" {
			msg = charge.Error.Message
		}
		c.log.Warn().Int("status", resp.StatusCode).Str("provider_error", msg).Msg("stripe: charge failed")
		return nil, apperror.ErrGateway(msg)
	}

	c.log.Info().
		Str("charge_id", charge.ID).
		Int64("amount_minor", req.AmountMinor).
		Msg("stripe: charge succeeded")

	return &ports.CardCharge{ChargeID: charge.ID}, nil
}
