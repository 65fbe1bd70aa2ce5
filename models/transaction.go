package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRecord is the immutable audit entry written in the same
// ledger transaction that moves the balances.
type TransactionRecord struct {
	ID               string          `json:"transaction_id"`
	SenderID         string          `json:"sender_id"`
	ReceiverID       string          `json:"receiver_id"`
	ReceiverEmail    string          `json:"receiver_email"`
	SentAmount       decimal.Decimal `json:"sent_amount"`
	SentCurrency     string          `json:"sent_currency"`
	ReceivedAmount   decimal.Decimal `json:"received_amount"`
	ReceivedCurrency string          `json:"received_currency"`
	Rate             decimal.Decimal `json:"rate"`

	// Snapshot of the chosen route, nil for mid-market fallback quotes.
	Route *Route `json:"route,omitempty"`

	PaymentID     *string `json:"payment_id,omitempty"`
	PaymentStatus *string `json:"payment_status,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
