package ledger

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/akabraham06/warp/errors"
	"github.com/akabraham06/warp/models"
)

// NewMemoryStore returns a Store backed by process memory. It serializes
// transactions behind a single lock and stages writes until fn returns,
// so a failed transaction leaves no partial state. Used for local
// development and tests.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts: map[string]*models.Account{},
		balances: map[string]Balances{},
	}
}

type MemoryStore struct {
	mu       sync.Mutex
	accounts map[string]*models.Account
	balances map[string]Balances
	records  []*models.TransactionRecord
}

// SeedAccount registers an account with starting balances. Not part of the
// Store contract; account provisioning normally goes through the account
// service.
func (s *MemoryStore) SeedAccount(account *models.Account, balances Balances) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts[account.ID] = account
	copied := Balances{}
	for currency, amount := range balances {
		copied[currency] = amount
	}
	s.balances[account.ID] = copied
}

func (s *MemoryStore) RunTransaction(ctx context.Context, fn func(tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{
		store:    s,
		balances: map[string]Balances{},
	}
	if err := fn(tx); err != nil {
		return err
	}

	for accountID, staged := range tx.balances {
		live := s.balances[accountID]
		for currency, amount := range staged {
			live[currency] = amount
		}
	}
	s.records = append(s.records, tx.records...)

	return nil
}

type memTx struct {
	store *MemoryStore
	// staged balance writes, applied only on commit
	balances map[string]Balances
	records  []*models.TransactionRecord
}

func (t *memTx) Account(id string) (*AccountDoc, error) {
	if _, ok := t.store.accounts[id]; !ok {
		return nil, errors.NewNotFoundError("resource not found")
	}

	doc := &AccountDoc{ID: id, Balances: Balances{}}
	for currency, amount := range t.store.balances[id] {
		doc.Balances[currency] = amount
	}
	// reads observe writes staged earlier in the same transaction
	for currency, amount := range t.balances[id] {
		doc.Balances[currency] = amount
	}

	return doc, nil
}

func (t *memTx) SetBalance(accountID, currency string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errors.NewInsufficientBalanceError(currency)
	}
	if _, ok := t.store.accounts[accountID]; !ok {
		return errors.NewNotFoundError("resource not found")
	}

	if t.balances[accountID] == nil {
		t.balances[accountID] = Balances{}
	}
	t.balances[accountID][currency] = amount
	return nil
}

func (t *memTx) CreateRecord(rec *models.TransactionRecord) error {
	t.records = append(t.records, rec)
	return nil
}

func (s *MemoryStore) FindAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, account := range s.accounts {
		if strings.EqualFold(account.Email, email) {
			return account, nil
		}
	}
	return nil, errors.NewNotFoundError("receiver not found")
}

func (s *MemoryStore) Balances(ctx context.Context, accountID string) (Balances, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	balances, ok := s.balances[accountID]
	if !ok {
		return nil, errors.NewNotFoundError("resource not found")
	}
	copied := Balances{}
	for currency, amount := range balances {
		copied[currency] = amount
	}
	return copied, nil
}

func (s *MemoryStore) TransactionsByAccount(ctx context.Context, accountID string) ([]*models.TransactionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]*models.TransactionRecord, 0)
	for _, rec := range s.records {
		if rec.SenderID == accountID || rec.ReceiverID == accountID {
			records = append(records, rec)
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

func (s *MemoryStore) Transaction(ctx context.Context, id string) (*models.TransactionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, errors.NewNotFoundError("transaction not found")
}
