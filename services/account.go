package services

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lucsky/cuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/akabraham06/warp/errors"
	"github.com/akabraham06/warp/ledger"
	"github.com/akabraham06/warp/models"
	"github.com/akabraham06/warp/types/requests"
	"github.com/akabraham06/warp/types/responses"
)

type AccountService interface {
	CreateAccount(context.Context, *requests.CreateAccountRequest) (*responses.Response[*responses.CreateAccountResponseData], error)
	FetchAccountDetails(context.Context) (*responses.Response[*responses.UserResponseData], error)
	UpdateWebHookURL(context.Context, *requests.UpdateWebhookURLRequest) error
	GetAccountByAccessToken(context.Context, string) (*models.Account, error)
}

func NewAccountService(dataDatabase *sql.DB, store ledger.Store, log *zap.Logger) AccountService {
	return &accountService{
		service{
			dataDB: dataDatabase,
			ledger: store,
			log:    log,
		},
	}
}

type accountService struct {
	service
}

func (a *accountService) CreateAccount(ctx context.Context, req *requests.CreateAccountRequest) (*responses.Response[*responses.CreateAccountResponseData], error) {
	now := time.Now()

	account := &models.Account{
		ID:          uuid.NewString(),
		SN:          cuid.New(),
		DisplayName: req.DisplayName,
		Email:       cases.Lower(language.English).String(req.Email),
		FirstName:   cases.Title(language.English).String(req.FirstName),
		LastName:    cases.Title(language.English).String(req.LastName),
		CreatedAt:   &now,
		UpdatedAt:   &now,
	}

	password, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	tx, err := a.dataDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	// Defer a rollback in case anything fails.
	defer tx.Rollback()

	// * create user account
	_, err = sq.
		Insert("accounts").
		Columns("id", "sn", "display_name", "email", "first_name", "last_name", "created_at", "updated_at").
		Values(account.ID, account.SN, account.DisplayName, account.Email, account.FirstName, account.LastName, now, now).
		RunWith(tx).
		ExecContext(ctx)

	if err != nil {
		return nil, errors.HandleDataDBError(err)
	}

	credentials := &models.Credentials{
		ID:       account.ID,
		Password: string(password),
	}

	_, err = sq.
		Insert("credentials").
		Columns("id", "password").
		Values(credentials.ID, credentials.Password).
		RunWith(tx).
		ExecContext(ctx)

	if err != nil {
		return nil, errors.HandleDataDBError(err)
	}

	accessToken := &models.AccessToken{
		ID:          uuid.NewString(),
		Name:        "Default Token",
		Description: "default token for user requests",
		AccountID:   account.ID,
		Token:       "pub_test_" + cuid.Slug(),
	}

	// * create user access token to authenticate requests
	_, err = sq.
		Insert("access_tokens").
		Columns("id", "name", "description", "account_id", "token").
		Values(accessToken.ID, accessToken.Name, accessToken.Description, accessToken.AccountID, accessToken.Token).
		RunWith(tx).
		ExecContext(ctx)

	if err != nil {
		return nil, errors.HandleDataDBError(err)
	}

	// * open a wallet per supported currency, with the starter balance
	balancesInsertStmt := sq.
		Insert("balances").
		Columns("account_id", "currency", "amount")
	for currency := range Currencies {
		balancesInsertStmt = balancesInsertStmt.
			Values(account.ID, currency, SeedBalances[currency].String())
	}

	_, err = balancesInsertStmt.
		RunWith(tx).
		ExecContext(ctx)
	if err != nil {
		return nil, errors.HandleDataDBError(err)
	}

	if err = tx.Commit(); err != nil {
		return nil, errors.HandleDataDBError(err)
	}

	return &responses.Response[*responses.CreateAccountResponseData]{
		Status:  "successful",
		Message: "Account Created successfully",
		Data: &responses.CreateAccountResponseData{
			User:  account,
			Token: accessToken,
		},
	}, nil
}

func (a *accountService) FetchAccountDetails(ctx context.Context) (*responses.Response[*responses.UserResponseData], error) {
	user := ctx.Value("user").(*models.Account)

	row := sq.
		Select("accounts.id", "sn", "display_name", "email", "first_name", "last_name", "created_at", "updated_at", "callback_url", "webhook_key").
		From("accounts").
		LeftJoin("webhook_details on webhook_details.id = accounts.id").
		Where(sq.Eq{"accounts.id": user.ID}).
		Limit(1).
		RunWith(a.dataDB).
		QueryRowContext(ctx)

	var account = &models.Account{}
	err := row.Scan(&account.ID, &account.SN, &account.DisplayName, &account.Email, &account.FirstName, &account.LastName, &account.CreatedAt, &account.UpdatedAt, &account.WebhookDetails.CallbackURL, &account.WebhookDetails.WebhookKey)
	if err != nil {
		return nil, errors.HandleDataDBError(err)
	}

	balances, err := a.ledger.Balances(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	return &responses.Response[*responses.UserResponseData]{
		Status: "successful",
		Data: &responses.UserResponseData{
			Account:  account,
			Balances: balances,
		},
	}, nil
}

func (a *accountService) GetAccountByAccessToken(ctx context.Context, token string) (*models.Account, error) {
	row := sq.
		Select("accounts.id", "accounts.email", "webhook_details.callback_url", "accounts.display_name", "webhook_details.webhook_key").
		From("access_tokens").
		Join("accounts on access_tokens.account_id = accounts.id").
		LeftJoin("webhook_details on webhook_details.id = accounts.id").
		Where(sq.Eq{"token": token}).
		RunWith(a.dataDB).
		QueryRowContext(ctx)

	var account = &models.Account{}
	err := row.Scan(&account.ID, &account.Email, &account.WebhookDetails.CallbackURL, &account.DisplayName, &account.WebhookDetails.WebhookKey)
	if err != nil {
		return nil, errors.HandleDataDBError(err)
	}

	return account, nil
}

func (a *accountService) UpdateWebHookURL(ctx context.Context, req *requests.UpdateWebhookURLRequest) error {
	user := ctx.Value("user").(*models.Account)

	_, err := sq.
		Replace("webhook_details").
		Columns("id", "callback_url", "webhook_key").
		Values(user.ID, req.CallbackURL, req.WebhookKey).
		RunWith(a.dataDB).
		ExecContext(ctx)
	if err != nil {
		return errors.HandleDataDBError(err)
	}

	return nil
}
