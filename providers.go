package main

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	ghandlers "github.com/gorilla/handlers"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/akabraham06/warp/config"
	"github.com/akabraham06/warp/errors"
	"github.com/akabraham06/warp/handlers"
)

func NewHttpServer(lc fx.Lifecycle, cfg *config.Config, mux *http.ServeMux, log *zap.Logger) *http.Server {
	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      wrapHandler(mux, log),
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("starting HTTP server", zap.String("addr", srv.Addr))
			go srv.Serve(ln)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	return srv
}

func NewServeMux(routers []handlers.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	for _, router := range routers {
		router.ServeHttp(mux)
	}
	return mux
}

func wrapHandler(mux *http.ServeMux, log *zap.Logger) http.Handler {
	var h http.Handler = recoverHandler(mux)
	h = ghandlers.CustomLoggingHandler(io.Discard, h, func(_ io.Writer, params ghandlers.LogFormatterParams) {
		log.Info("request completed",
			zap.String("method", params.Request.Method),
			zap.String("path", params.URL.Path),
			zap.Int("status", params.StatusCode),
			zap.Int("size", params.Size),
		)
	})
	h = ghandlers.CORS(
		ghandlers.AllowedOrigins([]string{"*"}),
		ghandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		ghandlers.AllowedHeaders([]string{"authorization", "content-type"}),
	)(h)
	return h
}

// recoverHandler turns panicking request binds into their serialized form.
func recoverHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if appErr, ok := rec.(errors.AppError); ok {
					appErr.Serialize(w)
					return
				}
				panic(rec)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
