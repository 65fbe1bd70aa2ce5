package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env        string `env:"WARP_ENV" env-default:"development"`
	ListenAddr string `env:"WARP_LISTEN_ADDR" env-default:":80"`

	DataDB DataDB

	RateSource RateSource
	OnRamp     OnRamp
	ChainSwap  ChainSwap
	Payments   Payments

	Quotes   Quotes
	Deposits Deposits
}

type DataDB struct {
	User   string `env:"WARP_DB_USER" env-default:"root"`
	Pass   string `env:"WARP_DB_PASS" env-default:""`
	Addr   string `env:"WARP_DB_ADDR" env-default:"127.0.0.1:3306"`
	Name   string `env:"WARP_DB_NAME" env-default:"warp"`
}

type RateSource struct {
	BaseURL string        `env:"WARP_FX_URL" env-default:"https://api.exchangerate-api.com/v4/latest"`
	Timeout time.Duration `env:"WARP_FX_TIMEOUT" env-default:"10s"`
}

type OnRamp struct {
	BaseURL string        `env:"WARP_ONRAMP_URL" env-default:""`
	APIKey  string        `env:"WARP_ONRAMP_KEY" env-default:""`
	Timeout time.Duration `env:"WARP_ONRAMP_TIMEOUT" env-default:"10s"`
}

type ChainSwap struct {
	BaseURL string        `env:"WARP_DEX_URL" env-default:""`
	APIKey  string        `env:"WARP_DEX_KEY" env-default:""`
	Timeout time.Duration `env:"WARP_DEX_TIMEOUT" env-default:"10s"`
	// Chains probed for every quote, in ranking tie-break order.
	Candidates []string `env:"WARP_DEX_CHAINS" env-default:"polygon,zksync,arbitrum,optimism"`
}

type Payments struct {
	BaseURL string        `env:"WARP_PAYMENTS_URL" env-default:"https://api.stripe.com"`
	APIKey  string        `env:"WARP_PAYMENTS_KEY" env-default:""`
	Timeout time.Duration `env:"WARP_PAYMENTS_TIMEOUT" env-default:"15s"`
}

type Quotes struct {
	TTL   time.Duration `env:"WARP_QUOTE_TTL" env-default:"15m"`
	Sweep time.Duration `env:"WARP_QUOTE_SWEEP" env-default:"1m"`
}

type Deposits struct {
	// Receiver emails whose inbound transfers are settled through the
	// payment processor when paid out in Currency.
	Receivers []string `env:"WARP_DEPOSIT_RECEIVERS" env-default:""`
	Currency  string   `env:"WARP_DEPOSIT_CURRENCY" env-default:"usd"`
}

func Load() *Config {
	// Optional; container deployments set the environment directly.
	_ = godotenv.Load()

	cfg := new(Config)
	if err := cleanenv.ReadEnv(cfg); err != nil {
		log.Fatalf("reading environment config: %v", err)
	}

	return cfg
}
