package handlers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/akabraham06/warp/utils"
)

type HealthHandler interface {
	Health(w http.ResponseWriter, r *http.Request)

	ServeHttp(*http.ServeMux)
}

func NewHealthHandler(log *zap.Logger) HealthHandler {
	return &healthHandler{handler: handler{log: log}}
}

type healthHandler struct {
	handler
}

func (h *healthHandler) ServeHttp(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.Health)
	mux.Handle("GET /metrics", promhttp.Handler())
}

func (h *healthHandler) Health(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, 200, map[string]any{"status": "healthy", "service": "warp"})
}
