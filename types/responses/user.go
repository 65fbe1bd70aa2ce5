package responses

import (
	"github.com/shopspring/decimal"

	"github.com/akabraham06/warp/models"
)

type UserResponseData struct {
	*models.Account

	Balances map[string]decimal.Decimal `json:"balances"`
}

type WalletResponseData struct {
	Currency string          `json:"currency"`
	Name     string          `json:"name"`
	Balance  decimal.Decimal `json:"balance"`
	User     *models.Account `json:"user,omitempty"`
}
