package requests

import "github.com/shopspring/decimal"

type CreateQuoteRequest struct {
	SendCurrency    string `json:"send_currency" validate:"required"`
	ReceiveCurrency string `json:"receive_currency" validate:"required"`
	// Positivity and currency support are checked by the quote service
	// before any external call is made.
	SendAmount decimal.Decimal `json:"send_amount" validate:"required"`
}
