package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/akabraham06/warp/config"
)

func rateClient(baseURL string) RateSource {
	return NewRateSource(&config.Config{
		RateSource: config.RateSource{BaseURL: baseURL, Timeout: time.Second},
	})
}

func TestRateFetchesCurrencyPair(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/USD", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"base":"USD","date":"2026-08-31","rates":{"EUR":0.9,"GBP":0.78}}`))
	}))
	defer srv.Close()

	rate, err := rateClient(srv.URL).Rate(context.Background(), "usd", "eur")
	require.NoError(t, err)
	require.True(t, rate.Equal(decimal.RequireFromString("0.9")))
}

func TestRateMissingQuoteCurrency(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"base":"USD","rates":{"GBP":0.78}}`))
	}))
	defer srv.Close()

	_, err := rateClient(srv.URL).Rate(context.Background(), "usd", "eur")
	require.Error(t, err)
}

func TestRateUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := rateClient(srv.URL).Rate(context.Background(), "usd", "eur")
	require.Error(t, err)
}

func TestStaticRateSource(t *testing.T) {
	src := NewStaticRateSource(map[string]decimal.Decimal{
		"USD/EUR": decimal.RequireFromString("0.9"),
	})

	rate, err := src.Rate(context.Background(), "usd", "eur")
	require.NoError(t, err)
	require.Equal(t, "0.9", rate.String())

	_, err = src.Rate(context.Background(), "eur", "usd")
	require.Error(t, err)
}
