package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/akabraham06/warp/clients"
	"github.com/akabraham06/warp/config"
	"github.com/akabraham06/warp/errors"
	"github.com/akabraham06/warp/metrics"
	"github.com/akabraham06/warp/models"
	"github.com/akabraham06/warp/utils"
)

type RouteService interface {
	// FindBestRoute quotes the on-ramp leg once, probes every candidate
	// chain concurrently, and returns the ranked surviving routes.
	FindBestRoute(ctx context.Context, sendAmount decimal.Decimal, fromCurrency, toCurrency string) (*RouteResult, error)
}

type RouteResult struct {
	Best   *models.Route
	Routes []*models.Route
	OnRamp *models.OnRampQuote
}

func NewRouteService(cfg *config.Config, onRamp clients.OnRampProvider, chainSwap clients.ChainSwapProvider, m *metrics.Metrics, log *zap.Logger) RouteService {
	return &routeService{
		service: service{
			cfg:       cfg,
			onRamp:    onRamp,
			chainSwap: chainSwap,
			metrics:   m,
			log:       log,
		},
	}
}

type routeService struct {
	service
}

func (r *routeService) FindBestRoute(ctx context.Context, sendAmount decimal.Decimal, fromCurrency, toCurrency string) (*RouteResult, error) {
	onRampCtx, cancel := context.WithTimeout(ctx, r.cfg.OnRamp.Timeout)
	defer cancel()

	onRampQuote, err := r.onRamp.Quote(onRampCtx, sendAmount, fromCurrency, StablecoinToken)
	if err != nil {
		return nil, errors.NewProviderError("on-ramp", err)
	}

	candidates := r.cfg.ChainSwap.Candidates
	probes := make([]*clients.SwapQuote, len(candidates))
	wg := sync.WaitGroup{}
	for i, chain := range candidates {
		wg.Add(1)
		go func(i int, chain string) {
			defer wg.Done()

			probeCtx, cancel := context.WithTimeout(ctx, r.cfg.ChainSwap.Timeout)
			defer cancel()

			quote, err := r.chainSwap.Quote(probeCtx, onRampQuote.CryptoAmount, StablecoinToken, toCurrency, chain)
			if err != nil {
				r.metrics.RouteProbesTotal.WithLabelValues(chain, "error").Inc()
				r.log.Warn("chain probe failed", zap.String("chain", chain), zap.Error(err))
				return
			}
			r.metrics.RouteProbesTotal.WithLabelValues(chain, "ok").Inc()
			probes[i] = quote
		}(i, chain)
	}
	wg.Wait()

	routes := make([]*models.Route, 0, len(candidates))
	for _, probe := range probes {
		if probe == nil {
			continue
		}
		effectiveRate := decimal.Zero
		if !sendAmount.IsZero() {
			effectiveRate = probe.FinalAmount.Div(sendAmount)
		}
		batchedRate := ApplyBatchingSavings(effectiveRate, sendAmount)
		routes = append(routes, &models.Route{
			Chain:          probe.Chain,
			Path:           routePath(fromCurrency, toCurrency, onRampQuote, probe),
			ExpectedOutput: probe.FinalAmount,
			EffectiveRate:  effectiveRate,
			BatchedRate:    batchedRate,
			BatchedAmount:  sendAmount.Mul(batchedRate),
			SwapRate:       probe.Rate,
			SwapSource:     probe.Source,
		})
	}
	if len(routes) == 0 {
		return nil, errors.NewNoRouteError()
	}

	// Stable sort keeps candidate order as the tie-break.
	sort.SliceStable(routes, func(i, j int) bool {
		return routes[i].ExpectedOutput.GreaterThan(routes[j].ExpectedOutput)
	})

	best := routes[0]
	for _, route := range routes {
		route.Best = route == best
		route.DiffFromBest = best.ExpectedOutput.Sub(route.ExpectedOutput)
		route.DiffFromBestPct = utils.Percentage(route.DiffFromBest, best.ExpectedOutput)
	}

	return &RouteResult{Best: best, Routes: routes, OnRamp: onRampQuote}, nil
}

func routePath(fromCurrency, toCurrency string, onRamp *models.OnRampQuote, swap *clients.SwapQuote) string {
	return fmt.Sprintf("%s → %s (%s) → %s (%s via %s)",
		strings.ToUpper(fromCurrency), onRamp.CryptoCurrency, onRamp.Source,
		strings.ToUpper(toCurrency), swap.Chain, swap.Source)
}
