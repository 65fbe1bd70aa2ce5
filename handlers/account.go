package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/akabraham06/warp/errors"
	"github.com/akabraham06/warp/services"
	"github.com/akabraham06/warp/types/requests"
	"github.com/akabraham06/warp/utils"
)

type AccountHandler interface {
	CreateAccount(w http.ResponseWriter, r *http.Request)
	FetchAccountDetails(w http.ResponseWriter, r *http.Request)
	UpdateWebhookURL(w http.ResponseWriter, r *http.Request)

	ServeHttp(*http.ServeMux)
}

func NewAccountHandler(accountService services.AccountService, middlewares MiddleWareHandler, log *zap.Logger) AccountHandler {
	return &accountHandler{
		handler: handler{accountService: accountService, middlewares: middlewares, log: log},
	}
}

type accountHandler struct {
	handler
}

func (a *accountHandler) ServeHttp(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/accounts", a.CreateAccount)
	mux.HandleFunc("GET /api/v1/user/me", a.middlewares.ValidateAccessToken(a.FetchAccountDetails))
	mux.HandleFunc("PUT /api/v1/user/me/webhook", a.middlewares.ValidateAccessToken(a.UpdateWebhookURL))
}

func (a *accountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	req := utils.Bind[requests.CreateAccountRequest](r)

	res, err := a.accountService.CreateAccount(r.Context(), req)
	if err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	utils.JSON(w, 201, res)
}

func (a *accountHandler) FetchAccountDetails(w http.ResponseWriter, r *http.Request) {
	res, err := a.accountService.FetchAccountDetails(r.Context())
	if err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	utils.JSON(w, 200, res)
}

func (a *accountHandler) UpdateWebhookURL(w http.ResponseWriter, r *http.Request) {
	req := utils.Bind[requests.UpdateWebhookURLRequest](r)

	if err := a.accountService.UpdateWebHookURL(r.Context(), req); err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	utils.JSON(w, 200, map[string]any{"status": "successful"})
}
