package services

import (
	"database/sql"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/akabraham06/warp/cache"
	"github.com/akabraham06/warp/clients"
	"github.com/akabraham06/warp/config"
	"github.com/akabraham06/warp/ledger"
	"github.com/akabraham06/warp/metrics"
)

type service struct {
	cfg            *config.Config
	dataDB         *sql.DB
	ledger         ledger.Store
	quotes         cache.QuoteCache
	rates          clients.RateSource
	onRamp         clients.OnRampProvider
	chainSwap      clients.ChainSwapProvider
	payments       clients.PaymentProcessor
	accountService AccountService
	routeService   RouteService
	walletService  WalletService
	webhookService WebhookService
	metrics        *metrics.Metrics
	log            *zap.Logger
}

// StablecoinToken is the intermediate token every route settles through.
const StablecoinToken = "USDC"

var Currencies = map[string]string{
	"usd": "US Dollar",
	"eur": "Euro",
	"gbp": "Pound Sterling",
	"jpy": "Japanese Yen",
	"cad": "Canadian Dollar",
	"aud": "Australian Dollar",
	"mxn": "Mexican Peso",
}

func SupportedCurrency(code string) bool {
	_, ok := Currencies[code]
	return ok
}

// SeedBalances is the opening balance sheet for a freshly created account.
var SeedBalances = map[string]decimal.Decimal{
	"usd": decimal.NewFromInt(1000),
}
