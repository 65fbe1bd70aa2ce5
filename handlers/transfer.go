package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/akabraham06/warp/errors"
	"github.com/akabraham06/warp/services"
	"github.com/akabraham06/warp/types/requests"
	"github.com/akabraham06/warp/utils"
)

type TransferHandler interface {
	ExecuteTransfer(w http.ResponseWriter, r *http.Request)
	FetchTransfer(w http.ResponseWriter, r *http.Request)
	GetTransferHistory(w http.ResponseWriter, r *http.Request)

	ServeHttp(*http.ServeMux)
}

func NewTransferHandler(accountService services.AccountService, transferService services.TransferService, middlewares MiddleWareHandler, log *zap.Logger) TransferHandler {
	return &transferHandler{
		handler: handler{accountService: accountService, transferService: transferService, middlewares: middlewares, log: log},
	}
}

type transferHandler struct {
	handler
}

func (t *transferHandler) ServeHttp(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/transfers", t.middlewares.ValidateAccessToken(t.ExecuteTransfer))
	mux.HandleFunc("GET /api/v1/transfers", t.middlewares.ValidateAccessToken(t.GetTransferHistory))
	mux.HandleFunc("GET /api/v1/transfers/{transaction_id}", t.middlewares.ValidateAccessToken(t.FetchTransfer))
}

func (t *transferHandler) ExecuteTransfer(w http.ResponseWriter, r *http.Request) {
	req := utils.Bind[requests.ExecuteTransferRequest](r)

	res, err := t.transferService.ExecuteTransfer(r.Context(), req)
	if err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	utils.JSON(w, 200, res)
}

func (t *transferHandler) FetchTransfer(w http.ResponseWriter, r *http.Request) {
	req := utils.Bind[requests.FetchTransferRequest](r)

	res, err := t.transferService.FetchTransfer(r.Context(), req)
	if err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	utils.JSON(w, 200, res)
}

func (t *transferHandler) GetTransferHistory(w http.ResponseWriter, r *http.Request) {
	req := utils.Bind[requests.FetchTransfersRequest](r)

	res, err := t.transferService.GetTransferHistory(r.Context(), req)
	if err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	utils.JSON(w, 200, res)
}
