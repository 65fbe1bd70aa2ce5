package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/akabraham06/warp/services"
)

type handler struct {
	accountService  services.AccountService
	quoteService    services.QuoteService
	transferService services.TransferService
	walletService   services.WalletService
	middlewares     MiddleWareHandler

	log *zap.Logger
}

type Handler interface {
	ServeHttp(*http.ServeMux)
}
