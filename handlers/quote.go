package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/akabraham06/warp/errors"
	"github.com/akabraham06/warp/services"
	"github.com/akabraham06/warp/types/requests"
	"github.com/akabraham06/warp/utils"
)

type QuoteHandler interface {
	CreateQuote(w http.ResponseWriter, r *http.Request)
	FetchQuote(w http.ResponseWriter, r *http.Request)

	ServeHttp(*http.ServeMux)
}

func NewQuoteHandler(accountService services.AccountService, quoteService services.QuoteService, middlewares MiddleWareHandler, log *zap.Logger) QuoteHandler {
	return &quoteHandler{
		handler: handler{accountService: accountService, quoteService: quoteService, middlewares: middlewares, log: log},
	}
}

type quoteHandler struct {
	handler
}

func (q *quoteHandler) ServeHttp(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/quotes", q.middlewares.ValidateAccessToken(q.CreateQuote))
	mux.HandleFunc("GET /api/v1/quotes/{quote_id}", q.middlewares.ValidateAccessToken(q.FetchQuote))
}

func (q *quoteHandler) CreateQuote(w http.ResponseWriter, r *http.Request) {
	req := utils.Bind[requests.CreateQuoteRequest](r)

	res, err := q.quoteService.CreateQuote(r.Context(), req)
	if err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	utils.JSON(w, 201, res)
}

func (q *quoteHandler) FetchQuote(w http.ResponseWriter, r *http.Request) {
	req := utils.Bind[requests.FetchQuoteRequest](r)

	res, err := q.quoteService.FetchQuote(r.Context(), req)
	if err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	utils.JSON(w, 200, res)
}
