package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts the externally observable outcomes of quoting and
// settlement.
type Metrics struct {
	QuotesIssuedTotal    *prometheus.CounterVec
	QuoteFallbacksTotal  prometheus.Counter
	QuoteDurationSeconds prometheus.Histogram

	RouteProbesTotal *prometheus.CounterVec

	TransfersCompletedTotal prometheus.Counter
	TransfersFailedTotal    *prometheus.CounterVec
	DepositRefundsTotal     prometheus.Counter
}

func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the collectors on a specific registry.
func NewWith(r prometheus.Registerer) *Metrics {
	factory := promauto.With(r)
	return &Metrics{
		QuotesIssuedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "warp_quotes_issued_total",
			Help: "Quotes issued, by currency pair",
		}, []string{"send_currency", "receive_currency"}),
		QuoteFallbacksTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "warp_quote_fallbacks_total",
			Help: "Quotes that fell back to the mid-market rate",
		}),
		QuoteDurationSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "warp_quote_duration_seconds",
			Help:    "End-to-end quote computation latency",
			Buckets: prometheus.DefBuckets,
		}),
		RouteProbesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "warp_route_probes_total",
			Help: "Chain swap probes, by chain and outcome",
		}, []string{"chain", "status"}),
		TransfersCompletedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "warp_transfers_completed_total",
			Help: "Settlements committed to the ledger",
		}),
		TransfersFailedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "warp_transfers_failed_total",
			Help: "Settlement attempts that failed, by reason",
		}, []string{"reason"}),
		DepositRefundsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "warp_deposit_refunds_total",
			Help: "Compensating refunds issued against payment deposits",
		}),
	}
}
