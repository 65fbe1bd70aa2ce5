package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/akabraham06/warp/errors"
	"github.com/akabraham06/warp/models"
)

func seededStore() *MemoryStore {
	store := NewMemoryStore()
	store.SeedAccount(&models.Account{ID: "a1", Email: "alice@example.com"}, Balances{"usd": decimal.NewFromInt(1000)})
	store.SeedAccount(&models.Account{ID: "a2", Email: "bob@example.com"}, Balances{"usd": decimal.NewFromInt(500), "eur": decimal.Zero})
	return store
}

func TestRunTransactionCommits(t *testing.T) {
	store := seededStore()

	err := store.RunTransaction(context.Background(), func(tx Tx) error {
		doc, err := tx.Account("a1")
		if err != nil {
			return err
		}
		if err := tx.SetBalance("a1", "usd", doc.Balance("usd").Sub(decimal.NewFromInt(100))); err != nil {
			return err
		}
		return tx.SetBalance("a2", "eur", decimal.NewFromInt(90))
	})
	require.NoError(t, err)

	balances, err := store.Balances(context.Background(), "a1")
	require.NoError(t, err)
	require.Equal(t, "900", balances["usd"].String())

	balances, err = store.Balances(context.Background(), "a2")
	require.NoError(t, err)
	require.Equal(t, "90", balances["eur"].String())
}

func TestRunTransactionAbortLeavesNoTrace(t *testing.T) {
	store := seededStore()

	err := store.RunTransaction(context.Background(), func(tx Tx) error {
		if err := tx.SetBalance("a1", "usd", decimal.NewFromInt(1)); err != nil {
			return err
		}
		if err := tx.CreateRecord(&models.TransactionRecord{ID: "t1", SenderID: "a1", ReceiverID: "a2", CreatedAt: time.Now()}); err != nil {
			return err
		}
		return errors.NewInsufficientBalanceError("usd")
	})
	require.Error(t, err)

	balances, err := store.Balances(context.Background(), "a1")
	require.NoError(t, err)
	require.Equal(t, "1000", balances["usd"].String())

	_, err = store.Transaction(context.Background(), "t1")
	require.Error(t, err)
}

func TestTransactionReadsSeeOwnWrites(t *testing.T) {
	store := seededStore()

	err := store.RunTransaction(context.Background(), func(tx Tx) error {
		if err := tx.SetBalance("a1", "usd", decimal.NewFromInt(250)); err != nil {
			return err
		}
		doc, err := tx.Account("a1")
		if err != nil {
			return err
		}
		require.Equal(t, "250", doc.Balance("usd").String())
		return nil
	})
	require.NoError(t, err)
}

func TestSetBalanceRejectsNegative(t *testing.T) {
	store := seededStore()

	err := store.RunTransaction(context.Background(), func(tx Tx) error {
		return tx.SetBalance("a1", "usd", decimal.NewFromInt(-1))
	})
	require.Error(t, err)
	require.True(t, errors.IsType(err, errors.ErrInsufficientBalance))
}

func TestSetBalanceUnknownAccount(t *testing.T) {
	store := seededStore()

	err := store.RunTransaction(context.Background(), func(tx Tx) error {
		return tx.SetBalance("ghost", "usd", decimal.NewFromInt(1))
	})
	require.Error(t, err)
	require.True(t, errors.IsType(err, errors.ErrNotFound))
}

func TestFindAccountByEmailCaseInsensitive(t *testing.T) {
	store := seededStore()

	account, err := store.FindAccountByEmail(context.Background(), "ALICE@Example.COM")
	require.NoError(t, err)
	require.Equal(t, "a1", account.ID)

	_, err = store.FindAccountByEmail(context.Background(), "nobody@example.com")
	require.Error(t, err)
	require.True(t, errors.IsType(err, errors.ErrNotFound))
}

func TestTransactionsByAccountNewestFirst(t *testing.T) {
	store := seededStore()

	base := time.Now()
	err := store.RunTransaction(context.Background(), func(tx Tx) error {
		for i, id := range []string{"t1", "t2", "t3"} {
			rec := &models.TransactionRecord{
				ID:         id,
				SenderID:   "a1",
				ReceiverID: "a2",
				CreatedAt:  base.Add(time.Duration(i) * time.Second),
			}
			if err := tx.CreateRecord(rec); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	records, err := store.TransactionsByAccount(context.Background(), "a1")
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, "t3", records[0].ID)
	require.Equal(t, "t1", records[2].ID)

	records, err = store.TransactionsByAccount(context.Background(), "ghost")
	require.NoError(t, err)
	require.Empty(t, records)
}
