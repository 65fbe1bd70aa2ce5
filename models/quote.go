package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is immutable once issued. It lives in the quote cache until it is
// claimed by a settlement attempt or expires.
type Quote struct {
	ID              string          `json:"id"`
	SendCurrency    string          `json:"send_currency"`
	ReceiveCurrency string          `json:"receive_currency"`
	SendAmount      decimal.Decimal `json:"send_amount"`
	OurRate         decimal.Decimal `json:"our_rate"`
	OurAmount       decimal.Decimal `json:"our_amount"`
	MidMarketRate   decimal.Decimal `json:"mid_market_rate"`
	MidMarketAmount decimal.Decimal `json:"mid_market_amount"`

	// Route is nil when every chain probe failed and the quote fell back
	// to the mid-market rate.
	Route  *Route   `json:"route,omitempty"`
	Routes []*Route `json:"routes,omitempty"`

	OnRamp *OnRampQuote `json:"on_ramp,omitempty"`

	SenderID  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RouteUnavailable reports whether the quote fell back to the mid-market
// rate because no crypto route could be evaluated.
func (q *Quote) RouteUnavailable() bool {
	return q.Route == nil
}

// Route is one candidate (chain, provider) path for a quote. Routes are
// immutable once ranked.
type Route struct {
	Chain          string          `json:"chain"`
	Path           string          `json:"path"`
	ExpectedOutput decimal.Decimal `json:"expected_final_amount"`
	EffectiveRate  decimal.Decimal `json:"effective_rate"`
	BatchedRate    decimal.Decimal `json:"projected_batched_rate"`
	BatchedAmount  decimal.Decimal `json:"projected_batched_amount"`
	SwapRate       decimal.Decimal `json:"dex_rate"`
	SwapSource     string          `json:"dex_source"`

	DiffFromBest    decimal.Decimal `json:"difference_from_best"`
	DiffFromBestPct decimal.Decimal `json:"difference_pct"`
	Best            bool            `json:"is_best"`
}

// OnRampQuote is the fiat→stablecoin leg shared by every route of a quote.
type OnRampQuote struct {
	CryptoAmount   decimal.Decimal `json:"crypto_amount"`
	CryptoCurrency string          `json:"crypto_currency"`
	Rate           decimal.Decimal `json:"rate"`
	Source         string          `json:"source"`
}
