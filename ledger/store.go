// Package ledger exposes the transactional store that owns every account
// balance and transaction record. All balance mutation goes through
// RunTransaction: the function either commits as a whole or leaves no
// trace, and conflicting transactions are retried.
package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/akabraham06/warp/models"
)

// Balances maps currency code to a non-negative amount.
type Balances map[string]decimal.Decimal

// AccountDoc is an account's balance document as read inside a transaction.
type AccountDoc struct {
	ID       string
	Balances Balances
}

// Balance returns the balance for a currency, zero when absent.
func (d *AccountDoc) Balance(currency string) decimal.Decimal {
	if v, ok := d.Balances[currency]; ok {
		return v
	}
	return decimal.Zero
}

// Tx is the unit-of-work handle passed to RunTransaction. Reads lock the
// rows they touch; writes land only on commit.
type Tx interface {
	Account(id string) (*AccountDoc, error)
	SetBalance(accountID, currency string, amount decimal.Decimal) error
	CreateRecord(rec *models.TransactionRecord) error
}

type Store interface {
	// RunTransaction executes fn atomically, retrying on store-level
	// conflicts. An error returned by fn aborts the transaction and is
	// propagated unchanged.
	RunTransaction(ctx context.Context, fn func(tx Tx) error) error

	FindAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	Balances(ctx context.Context, accountID string) (Balances, error)
	TransactionsByAccount(ctx context.Context, accountID string) ([]*models.TransactionRecord, error)
	Transaction(ctx context.Context, id string) (*models.TransactionRecord, error)
}
