package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/akabraham06/warp/errors"
	"github.com/akabraham06/warp/models"
)

const maxTxAttempts = 3

func NewSQLStore(db *sql.DB, log *zap.Logger) Store {
	return &sqlStore{db: db, log: log}
}

type sqlStore struct {
	db  *sql.DB
	log *zap.Logger
}

func (s *sqlStore) RunTransaction(ctx context.Context, fn func(tx Tx) error) error {
	var lastErr error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err := s.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !isConflict(err) {
			return err
		}
		lastErr = err
		s.log.Warn("ledger transaction conflict, retrying",
			zap.Int("attempt", attempt), zap.Error(err))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * 50 * time.Millisecond):
		}
	}
	return errors.NewSettlementFailedError(lastErr)
}

func (s *sqlStore) runOnce(ctx context.Context, fn func(tx Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	// Defer a rollback in case anything fails.
	defer tx.Rollback()

	if err := fn(&sqlTx{ctx: ctx, tx: tx}); err != nil {
		return err
	}

	return tx.Commit()
}

// isConflict reports whether err is a MySQL deadlock or lock wait timeout,
// the two cases worth a retry.
func isConflict(err error) bool {
	mysqlErr := new(mysql.MySQLError)
	if !stderrors.As(err, &mysqlErr) {
		return false
	}
	return mysqlErr.Number == 1213 || mysqlErr.Number == 1205
}

type sqlTx struct {
	ctx context.Context
	tx  *sql.Tx
}

func (t *sqlTx) Account(id string) (*AccountDoc, error) {
	row := sq.
		Select("id").
		From("accounts").
		Where(sq.Eq{"id": id}).
		RunWith(t.tx).
		QueryRowContext(t.ctx)

	var accountID string
	if err := row.Scan(&accountID); err != nil {
		return nil, errors.HandleDataDBError(err)
	}

	rows, err := sq.
		Select("currency", "amount").
		From("balances").
		Where(sq.Eq{"account_id": id}).
		Suffix("FOR UPDATE").
		RunWith(t.tx).
		QueryContext(t.ctx)
	if err != nil {
		return nil, errors.HandleDataDBError(err)
	}
	defer rows.Close()

	doc := &AccountDoc{ID: accountID, Balances: Balances{}}
	for rows.Next() {
		var currency, amount string
		if err := rows.Scan(&currency, &amount); err != nil {
			return nil, errors.HandleDataDBError(err)
		}
		value, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, errors.NewFatalError(err)
		}
		doc.Balances[currency] = value
	}

	return doc, rows.Err()
}

func (t *sqlTx) SetBalance(accountID, currency string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errors.NewInsufficientBalanceError(currency)
	}

	_, err := sq.
		Replace("balances").
		Columns("account_id", "currency", "amount").
		Values(accountID, currency, amount.String()).
		RunWith(t.tx).
		ExecContext(t.ctx)
	if err != nil {
		return errors.HandleDataDBError(err)
	}

	return nil
}

func (t *sqlTx) CreateRecord(rec *models.TransactionRecord) error {
	var routeSnapshot *string
	if rec.Route != nil {
		data, err := json.Marshal(rec.Route)
		if err != nil {
			return errors.NewFatalError(err)
		}
		snapshot := string(data)
		routeSnapshot = &snapshot
	}

	_, err := sq.
		Insert("transactions").
		Columns(
			"id", "sender_id", "receiver_id", "receiver_email",
			"sent_amount", "sent_currency", "received_amount", "received_currency",
			"rate", "route_snapshot", "payment_id", "payment_status", "created_at",
		).
		Values(
			rec.ID, rec.SenderID, rec.ReceiverID, rec.ReceiverEmail,
			rec.SentAmount.String(), rec.SentCurrency, rec.ReceivedAmount.String(), rec.ReceivedCurrency,
			rec.Rate.String(), routeSnapshot, rec.PaymentID, rec.PaymentStatus, rec.CreatedAt,
		).
		RunWith(t.tx).
		ExecContext(t.ctx)
	if err != nil {
		return errors.HandleDataDBError(err)
	}

	return nil
}

func (s *sqlStore) FindAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	row := sq.
		Select("id", "sn", "display_name", "email", "first_name", "last_name", "created_at", "updated_at").
		From("accounts").
		Where(sq.Eq{"email": email}).
		Limit(1).
		RunWith(s.db).
		QueryRowContext(ctx)

	account := &models.Account{}
	err := row.Scan(
		&account.ID, &account.SN, &account.DisplayName, &account.Email,
		&account.FirstName, &account.LastName, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("receiver not found")
		}
		return nil, errors.HandleDataDBError(err)
	}

	return account, nil
}

func (s *sqlStore) Balances(ctx context.Context, accountID string) (Balances, error) {
	rows, err := sq.
		Select("currency", "amount").
		From("balances").
		Where(sq.Eq{"account_id": accountID}).
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return nil, errors.HandleDataDBError(err)
	}
	defer rows.Close()

	balances := Balances{}
	for rows.Next() {
		var currency, amount string
		if err := rows.Scan(&currency, &amount); err != nil {
			return nil, errors.HandleDataDBError(err)
		}
		value, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, errors.NewFatalError(err)
		}
		balances[currency] = value
	}

	return balances, rows.Err()
}

func (s *sqlStore) TransactionsByAccount(ctx context.Context, accountID string) ([]*models.TransactionRecord, error) {
	rows, err := s.selectTransactions().
		Where(sq.Or{sq.Eq{"sender_id": accountID}, sq.Eq{"receiver_id": accountID}}).
		OrderBy("created_at DESC").
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return nil, errors.HandleDataDBError(err)
	}
	defer rows.Close()

	records := make([]*models.TransactionRecord, 0)
	for rows.Next() {
		rec, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func (s *sqlStore) Transaction(ctx context.Context, id string) (*models.TransactionRecord, error) {
	rows, err := s.selectTransactions().
		Where(sq.Eq{"id": id}).
		Limit(1).
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return nil, errors.HandleDataDBError(err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, errors.NewNotFoundError("transaction not found")
	}
	return scanTransaction(rows)
}

func (s *sqlStore) selectTransactions() sq.SelectBuilder {
	return sq.Select(
		"id", "sender_id", "receiver_id", "receiver_email",
		"sent_amount", "sent_currency", "received_amount", "received_currency",
		"rate", "route_snapshot", "payment_id", "payment_status", "created_at",
	).From("transactions")
}

func scanTransaction(rows *sql.Rows) (*models.TransactionRecord, error) {
	rec := &models.TransactionRecord{}
	var sentAmount, receivedAmount, rate string
	var routeSnapshot *string
	err := rows.Scan(
		&rec.ID, &rec.SenderID, &rec.ReceiverID, &rec.ReceiverEmail,
		&sentAmount, &rec.SentCurrency, &receivedAmount, &rec.ReceivedCurrency,
		&rate, &routeSnapshot, &rec.PaymentID, &rec.PaymentStatus, &rec.CreatedAt,
	)
	if err != nil {
		return nil, errors.HandleDataDBError(err)
	}

	if rec.SentAmount, err = decimal.NewFromString(sentAmount); err != nil {
		return nil, errors.NewFatalError(err)
	}
	if rec.ReceivedAmount, err = decimal.NewFromString(receivedAmount); err != nil {
		return nil, errors.NewFatalError(err)
	}
	if rec.Rate, err = decimal.NewFromString(rate); err != nil {
		return nil, errors.NewFatalError(err)
	}
	if routeSnapshot != nil {
		route := &models.Route{}
		if err := json.Unmarshal([]byte(*routeSnapshot), route); err != nil {
			return nil, errors.NewFatalError(err)
		}
		rec.Route = route
	}

	return rec, nil
}
