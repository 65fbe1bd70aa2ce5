package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/akabraham06/warp/errors"
	"github.com/akabraham06/warp/services"
	"github.com/akabraham06/warp/utils"
)

type WalletHandler interface {
	FetchUserWallets(w http.ResponseWriter, r *http.Request)

	ServeHttp(*http.ServeMux)
}

func NewWalletHandler(accountService services.AccountService, walletService services.WalletService, middlewares MiddleWareHandler, log *zap.Logger) WalletHandler {
	return &walletHandler{
		handler: handler{accountService: accountService, walletService: walletService, middlewares: middlewares, log: log},
	}
}

type walletHandler struct {
	handler
}

func (h *walletHandler) ServeHttp(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/user/me/wallets", h.middlewares.ValidateAccessToken(h.FetchUserWallets))
}

func (h *walletHandler) FetchUserWallets(w http.ResponseWriter, r *http.Request) {
	res, err := h.walletService.FetchUserWallets(r.Context())
	if err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	utils.JSON(w, 200, res)
}
