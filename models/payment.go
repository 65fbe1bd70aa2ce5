package models

import "github.com/shopspring/decimal"

// PaymentDeposit is the external processor's record of a deposit created
// ahead of a ledger transfer.
type PaymentDeposit struct {
	ID            string          `json:"id"`
	Status        string          `json:"status"`
	ClientSecret  string          `json:"client_secret,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	QuoteID       string          `json:"quote_id"`
	ReceiverEmail string          `json:"receiver_email"`
}
