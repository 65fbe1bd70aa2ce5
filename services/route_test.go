package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/akabraham06/warp/clients"
	"github.com/akabraham06/warp/config"
	"github.com/akabraham06/warp/errors"
	"github.com/akabraham06/warp/metrics"
	"github.com/akabraham06/warp/models"
)

func testConfig() *config.Config {
	return &config.Config{
		RateSource: config.RateSource{Timeout: time.Second},
		OnRamp:     config.OnRamp{Timeout: time.Second},
		ChainSwap: config.ChainSwap{
			Timeout:    time.Second,
			Candidates: []string{"polygon", "zksync", "arbitrum", "optimism"},
		},
		Payments: config.Payments{Timeout: time.Second},
		Quotes:   config.Quotes{TTL: 15 * time.Minute, Sweep: time.Minute},
		Deposits: config.Deposits{Currency: "usd"},
	}
}

type stubOnRamp struct {
	quote *models.OnRampQuote
	err   error
}

func (s *stubOnRamp) Quote(ctx context.Context, amount decimal.Decimal, fiatCurrency, cryptoCurrency string) (*models.OnRampQuote, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.quote, nil
}

type stubChainSwap struct {
	outputs map[string]string
	errs    map[string]error
}

func (s *stubChainSwap) Quote(ctx context.Context, cryptoAmount decimal.Decimal, fromCrypto, toFiatCurrency, chain string) (*clients.SwapQuote, error) {
	if err, ok := s.errs[chain]; ok {
		return nil, err
	}
	out, ok := s.outputs[chain]
	if !ok {
		return nil, fmt.Errorf("unsupported chain: %s", chain)
	}
	amount := decimal.RequireFromString(out)
	return &clients.SwapQuote{
		FinalAmount: amount,
		Rate:        amount.Div(cryptoAmount),
		Chain:       chain,
		Source:      "DEX Aggregator (Simulated)",
	}, nil
}

func usdcQuote(amount string) *models.OnRampQuote {
	return &models.OnRampQuote{
		CryptoAmount:   decimal.RequireFromString(amount),
		CryptoCurrency: "USDC",
		Rate:           decimal.NewFromInt(1),
		Source:         "On-Ramp (Simulated)",
	}
}

func newTestRouteService(onRamp clients.OnRampProvider, chainSwap clients.ChainSwapProvider) RouteService {
	return NewRouteService(testConfig(), onRamp, chainSwap, metrics.NewWith(prometheus.NewRegistry()), zap.NewNop())
}

func TestFindBestRouteRanksByOutput(t *testing.T) {
	svc := newTestRouteService(
		&stubOnRamp{quote: usdcQuote("999")},
		&stubChainSwap{outputs: map[string]string{
			"polygon":  "900",
			"zksync":   "905",
			"arbitrum": "898",
			"optimism": "890",
		}},
	)

	res, err := svc.FindBestRoute(context.Background(), decimal.NewFromInt(1000), "usd", "eur")
	require.NoError(t, err)
	require.Len(t, res.Routes, 4)

	require.Equal(t, "zksync", res.Best.Chain)
	require.True(t, res.Best.Best)
	require.True(t, res.Best.DiffFromBest.IsZero())
	require.True(t, res.Best.DiffFromBestPct.IsZero())

	for i := 1; i < len(res.Routes); i++ {
		require.False(t, res.Routes[i].Best)
		require.True(t, res.Routes[i-1].ExpectedOutput.GreaterThanOrEqual(res.Routes[i].ExpectedOutput))
	}

	second := res.Routes[1]
	require.Equal(t, "polygon", second.Chain)
	require.Equal(t, "5", second.DiffFromBest.String())
}

func TestFindBestRouteTieKeepsCandidateOrder(t *testing.T) {
	svc := newTestRouteService(
		&stubOnRamp{quote: usdcQuote("999")},
		&stubChainSwap{outputs: map[string]string{
			"polygon":  "905",
			"zksync":   "905",
			"arbitrum": "900",
			"optimism": "900",
		}},
	)

	res, err := svc.FindBestRoute(context.Background(), decimal.NewFromInt(1000), "usd", "eur")
	require.NoError(t, err)
	require.Equal(t, "polygon", res.Best.Chain)
}

func TestFindBestRouteSurvivesProbeFailures(t *testing.T) {
	svc := newTestRouteService(
		&stubOnRamp{quote: usdcQuote("999")},
		&stubChainSwap{
			outputs: map[string]string{"arbitrum": "898"},
			errs: map[string]error{
				"polygon": fmt.Errorf("rpc timeout"),
				"zksync":  fmt.Errorf("rpc timeout"),
			},
		},
	)

	res, err := svc.FindBestRoute(context.Background(), decimal.NewFromInt(1000), "usd", "eur")
	require.NoError(t, err)
	require.Len(t, res.Routes, 1)
	require.Equal(t, "arbitrum", res.Best.Chain)
}

func TestFindBestRouteNoViableRoute(t *testing.T) {
	svc := newTestRouteService(
		&stubOnRamp{quote: usdcQuote("999")},
		&stubChainSwap{errs: map[string]error{
			"polygon":  fmt.Errorf("down"),
			"zksync":   fmt.Errorf("down"),
			"arbitrum": fmt.Errorf("down"),
			"optimism": fmt.Errorf("down"),
		}},
	)

	_, err := svc.FindBestRoute(context.Background(), decimal.NewFromInt(1000), "usd", "eur")
	require.Error(t, err)
	require.True(t, errors.IsType(err, errors.ErrNoRoute))
}

func TestFindBestRouteOnRampFailure(t *testing.T) {
	svc := newTestRouteService(
		&stubOnRamp{err: fmt.Errorf("provider unavailable")},
		&stubChainSwap{outputs: map[string]string{"polygon": "900"}},
	)

	_, err := svc.FindBestRoute(context.Background(), decimal.NewFromInt(1000), "usd", "eur")
	require.Error(t, err)
	require.True(t, errors.IsType(err, errors.ErrProvider))
}

func TestFindBestRoutePathDescribesLegs(t *testing.T) {
	svc := newTestRouteService(
		&stubOnRamp{quote: usdcQuote("999")},
		&stubChainSwap{outputs: map[string]string{"polygon": "900"}},
	)

	res, err := svc.FindBestRoute(context.Background(), decimal.NewFromInt(1000), "usd", "eur")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(res.Best.Path, "USD → USDC"))
	require.Contains(t, res.Best.Path, "polygon")
	require.Contains(t, res.Best.Path, "EUR")
}
