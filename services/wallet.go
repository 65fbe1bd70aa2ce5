package services

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/akabraham06/warp/ledger"
	"github.com/akabraham06/warp/models"
	"github.com/akabraham06/warp/types/responses"
)

type WalletService interface {
	FetchUserWallets(ctx context.Context) (*responses.Response[[]*responses.WalletResponseData], error)
}

func NewWalletService(store ledger.Store, log *zap.Logger) WalletService {
	return &walletService{
		service: service{
			ledger: store,
			log:    log,
		},
	}
}

type walletService struct {
	service
}

func (w *walletService) FetchUserWallets(ctx context.Context) (*responses.Response[[]*responses.WalletResponseData], error) {
	user := ctx.Value("user").(*models.Account)

	balances, err := w.ledger.Balances(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	currencies := make([]string, 0, len(Currencies))
	for currency := range Currencies {
		currencies = append(currencies, currency)
	}
	sort.Strings(currencies)

	wallets := make([]*responses.WalletResponseData, 0, len(currencies))
	for _, currency := range currencies {
		wallets = append(wallets, &responses.WalletResponseData{
			Currency: currency,
			Name:     Currencies[currency],
			Balance:  balances[currency],
			User:     user,
		})
	}

	return &responses.Response[[]*responses.WalletResponseData]{
		Status: "successful",
		Data:   wallets,
	}, nil
}
