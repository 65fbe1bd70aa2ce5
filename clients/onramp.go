package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/akabraham06/warp/config"
	"github.com/akabraham06/warp/models"
)

// OnRampProvider converts a fiat amount into a stablecoin amount. The
// result is independent of which chain the swap later runs on.
type OnRampProvider interface {
	Quote(ctx context.Context, amount decimal.Decimal, fiatCurrency, cryptoCurrency string) (*models.OnRampQuote, error)
}

// NewOnRampProvider returns the HTTP on-ramp client, or the simulated
// provider when no base URL is configured.
func NewOnRampProvider(cfg *config.Config) OnRampProvider {
	if cfg.OnRamp.BaseURL == "" {
		return NewSimulatedOnRamp()
	}
	return &onRampClient{
		baseURL: strings.TrimSuffix(cfg.OnRamp.BaseURL, "/"),
		apiKey:  cfg.OnRamp.APIKey,
		client:  newHTTPClient(cfg.OnRamp.Timeout),
	}
}

type onRampClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

type onRampQuoteResponse struct {
	CryptoAmount decimal.Decimal `json:"crypto_amount"`
	Rate         decimal.Decimal `json:"rate"`
}

func (c *onRampClient) Quote(ctx context.Context, amount decimal.Decimal, fiatCurrency, cryptoCurrency string) (*models.OnRampQuote, error) {
	url := fmt.Sprintf("%s/quote?amount=%s&fiat=%s&crypto=%s",
		c.baseURL, amount.String(), strings.ToUpper(fiatCurrency), strings.ToUpper(cryptoCurrency))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("authorization", "Bearer "+c.apiKey)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("on-ramp provider returned status %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	data := new(onRampQuoteResponse)
	if err := json.Unmarshal(body, data); err != nil {
		return nil, err
	}
	if data.CryptoAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("on-ramp provider returned non-positive amount")
	}

	return &models.OnRampQuote{
		CryptoAmount:   data.CryptoAmount,
		CryptoCurrency: strings.ToUpper(cryptoCurrency),
		Rate:           data.Rate,
		Source:         "On-Ramp API",
	}, nil
}

// simulatedOnRamp models the on-ramp leg as a flat 0.1% fee, matching the
// behaviour the platform ships with before a provider key is configured.
type simulatedOnRamp struct {
	fee decimal.Decimal
}

func NewSimulatedOnRamp() OnRampProvider {
	return &simulatedOnRamp{fee: decimal.NewFromFloat(0.999)}
}

func (s *simulatedOnRamp) Quote(ctx context.Context, amount decimal.Decimal, fiatCurrency, cryptoCurrency string) (*models.OnRampQuote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &models.OnRampQuote{
		CryptoAmount:   amount.Mul(s.fee),
		CryptoCurrency: strings.ToUpper(cryptoCurrency),
		Rate:           decimal.NewFromInt(1),
		Source:         "On-Ramp (Simulated)",
	}, nil
}
