package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/akabraham06/warp/cache"
	"github.com/akabraham06/warp/clients"
	"github.com/akabraham06/warp/errors"
	"github.com/akabraham06/warp/metrics"
	"github.com/akabraham06/warp/types/requests"
)

func newTestQuoteService(quotes cache.QuoteCache, rates clients.RateSource, routes RouteService) QuoteService {
	return NewQuoteService(testConfig(), quotes, rates, routes, metrics.NewWith(prometheus.NewRegistry()), zap.NewNop())
}

func eurRates() clients.RateSource {
	return clients.NewStaticRateSource(map[string]decimal.Decimal{
		"USD/EUR": decimal.RequireFromString("0.90"),
	})
}

func TestCreateQuoteUsesBestRoute(t *testing.T) {
	routes := newTestRouteService(
		&stubOnRamp{quote: usdcQuote("999")},
		&stubChainSwap{outputs: map[string]string{
			"polygon":  "900",
			"zksync":   "905",
			"arbitrum": "898",
		}},
	)
	svc := newTestQuoteService(cache.NewQuoteCache(), eurRates(), routes)

	res, err := svc.CreateQuote(context.Background(), &requests.CreateQuoteRequest{
		SendCurrency:    "USD",
		ReceiveCurrency: "EUR",
		SendAmount:      decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	quote := res.Data.Quote
	require.Equal(t, "usd", quote.SendCurrency)
	require.Equal(t, "eur", quote.ReceiveCurrency)
	require.Equal(t, "0.9", quote.MidMarketRate.String())
	require.Equal(t, "900", quote.MidMarketAmount.String())

	require.NotNil(t, quote.Route)
	require.Equal(t, "zksync", quote.Route.Chain)
	require.Equal(t, "0.905905", quote.OurRate.String())
	require.Equal(t, "905.905", quote.OurAmount.String())
	require.True(t, quote.OurAmount.Equal(quote.SendAmount.Mul(quote.OurRate)))
	require.Len(t, quote.Routes, 3)
}

func TestCreateQuoteFallsBackToMidMarket(t *testing.T) {
	routes := newTestRouteService(
		&stubOnRamp{err: fmt.Errorf("provider unavailable")},
		&stubChainSwap{},
	)
	quotes := cache.NewQuoteCache()
	svc := newTestQuoteService(quotes, eurRates(), routes)

	res, err := svc.CreateQuote(context.Background(), &requests.CreateQuoteRequest{
		SendCurrency:    "usd",
		ReceiveCurrency: "eur",
		SendAmount:      decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	quote := res.Data.Quote
	require.True(t, quote.RouteUnavailable())
	require.Nil(t, quote.Route)
	require.Equal(t, "0.9", quote.OurRate.String())
	require.Equal(t, "450", quote.OurAmount.String())

	// fallback quotes are still claimable
	require.NotNil(t, quotes.Claim(quote.ID))
}

func TestCreateQuoteValidation(t *testing.T) {
	svc := newTestQuoteService(cache.NewQuoteCache(), eurRates(), newTestRouteService(
		&stubOnRamp{quote: usdcQuote("999")},
		&stubChainSwap{outputs: map[string]string{"polygon": "900"}},
	))

	cases := []struct {
		name string
		req  *requests.CreateQuoteRequest
	}{
		{"unsupported send currency", &requests.CreateQuoteRequest{SendCurrency: "xxx", ReceiveCurrency: "eur", SendAmount: decimal.NewFromInt(10)}},
		{"unsupported receive currency", &requests.CreateQuoteRequest{SendCurrency: "usd", ReceiveCurrency: "xxx", SendAmount: decimal.NewFromInt(10)}},
		{"zero amount", &requests.CreateQuoteRequest{SendCurrency: "usd", ReceiveCurrency: "eur", SendAmount: decimal.Zero}},
		{"negative amount", &requests.CreateQuoteRequest{SendCurrency: "usd", ReceiveCurrency: "eur", SendAmount: decimal.NewFromInt(-5)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateQuote(context.Background(), tc.req)
			require.Error(t, err)
			require.True(t, errors.IsType(err, errors.ErrValidation))
		})
	}
}

func TestCreateQuoteCachedUntilClaimed(t *testing.T) {
	quotes := cache.NewQuoteCache()
	svc := newTestQuoteService(quotes, eurRates(), newTestRouteService(
		&stubOnRamp{quote: usdcQuote("999")},
		&stubChainSwap{outputs: map[string]string{"polygon": "900"}},
	))

	res, err := svc.CreateQuote(context.Background(), &requests.CreateQuoteRequest{
		SendCurrency:    "usd",
		ReceiveCurrency: "eur",
		SendAmount:      decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	id := res.Data.Quote.ID

	fetched, err := svc.FetchQuote(context.Background(), &requests.FetchQuoteRequest{QuoteID: id})
	require.NoError(t, err)
	require.Equal(t, id, fetched.Data.Quote.ID)

	// peeking does not consume
	_, err = svc.FetchQuote(context.Background(), &requests.FetchQuoteRequest{QuoteID: id})
	require.NoError(t, err)

	require.NotNil(t, quotes.Claim(id))

	_, err = svc.FetchQuote(context.Background(), &requests.FetchQuoteRequest{QuoteID: id})
	require.Error(t, err)
	require.True(t, errors.IsType(err, errors.ErrQuoteNotFound))
}

func TestCreateQuoteRateSourceFailureUsesFallbackRate(t *testing.T) {
	noRates := clients.NewStaticRateSource(map[string]decimal.Decimal{})
	routes := newTestRouteService(
		&stubOnRamp{err: fmt.Errorf("provider unavailable")},
		&stubChainSwap{},
	)
	svc := newTestQuoteService(cache.NewQuoteCache(), noRates, routes)

	res, err := svc.CreateQuote(context.Background(), &requests.CreateQuoteRequest{
		SendCurrency:    "usd",
		ReceiveCurrency: "eur",
		SendAmount:      decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	require.Equal(t, "1", res.Data.Quote.OurRate.String())
	require.Equal(t, "100", res.Data.Quote.OurAmount.String())
}
