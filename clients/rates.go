// Package clients holds the outbound integrations the quoting and
// settlement engines depend on: the fiat rate source, the on-ramp
// provider, the per-chain swap provider and the payment processor. Every
// call takes a context and carries its own timeout; a failure is returned
// to the caller, never retried into a hang.
package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/akabraham06/warp/config"
)

// RateSource returns the mid-market rate for a fiat currency pair.
type RateSource interface {
	Rate(ctx context.Context, base, quote string) (decimal.Decimal, error)
}

type exchangeRateClient struct {
	baseURL string
	client  *http.Client
}

// NewRateSource builds the exchangerate-api.com client.
func NewRateSource(cfg *config.Config) RateSource {
	return &exchangeRateClient{
		baseURL: strings.TrimSuffix(cfg.RateSource.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.RateSource.Timeout},
	}
}

type latestRatesResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

func (c *exchangeRateClient) Rate(ctx context.Context, base, quote string) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, strings.ToUpper(base))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, err
	}
	req.Header.Set("accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return decimal.Zero, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("rate source returned status %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return decimal.Zero, err
	}

	data := new(latestRatesResponse)
	if err := json.Unmarshal(body, data); err != nil {
		return decimal.Zero, err
	}

	rate, ok := data.Rates[strings.ToUpper(quote)]
	if !ok || rate == 0 {
		return decimal.Zero, fmt.Errorf("no rate for %s/%s", base, quote)
	}

	return decimal.NewFromFloat(rate), nil
}

// staticRateSource serves a fixed rate table. Used when the platform runs
// without outbound network access.
type staticRateSource struct {
	rates map[string]decimal.Decimal
}

func NewStaticRateSource(rates map[string]decimal.Decimal) RateSource {
	return &staticRateSource{rates: rates}
}

func (s *staticRateSource) Rate(ctx context.Context, base, quote string) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}
	key := strings.ToUpper(base) + "/" + strings.ToUpper(quote)
	rate, ok := s.rates[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("no rate for %s", key)
	}
	return rate, nil
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{Timeout: timeout}
}
