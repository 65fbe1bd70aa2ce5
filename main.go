package main

import (
	"net/http"

	"github.com/madflojo/tasks"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/akabraham06/warp/cache"
	"github.com/akabraham06/warp/clients"
	"github.com/akabraham06/warp/config"
	"github.com/akabraham06/warp/db"
	"github.com/akabraham06/warp/handlers"
	"github.com/akabraham06/warp/ledger"
	"github.com/akabraham06/warp/metrics"
	"github.com/akabraham06/warp/services"
)

func main() {
	fx.New(
		fx.Provide(
			NewHttpServer,
			fx.Annotate(
				NewServeMux,
				fx.ParamTags(`group:"handlers"`),
			),
			fx.Annotate(
				handlers.NewAccountHandler,
				fx.As(new(handlers.Handler)),
				fx.ResultTags(`group:"handlers"`),
			),
			fx.Annotate(
				handlers.NewWalletHandler,
				fx.As(new(handlers.Handler)),
				fx.ResultTags(`group:"handlers"`),
			),
			fx.Annotate(
				handlers.NewQuoteHandler,
				fx.As(new(handlers.Handler)),
				fx.ResultTags(`group:"handlers"`),
			),
			fx.Annotate(
				handlers.NewTransferHandler,
				fx.As(new(handlers.Handler)),
				fx.ResultTags(`group:"handlers"`),
			),
			fx.Annotate(
				handlers.NewHealthHandler,
				fx.As(new(handlers.Handler)),
				fx.ResultTags(`group:"handlers"`),
			),
			handlers.NewMiddlewareHandler,
			services.NewQuoteService,
			services.NewRouteService,
			services.NewTransferService,
			services.NewWalletService,
			services.NewWebhookService,
			services.NewSchedulerService,
			services.NewAccountService,
			clients.NewRateSource,
			clients.NewOnRampProvider,
			clients.NewChainSwapProvider,
			clients.NewPaymentProcessor,
			cache.NewQuoteCache,
			ledger.NewSQLStore,
			metrics.New,
			config.Load,
			db.GetDataDBConnection,
			tasks.New,
			zap.NewProduction,
		),
		fx.Invoke(func(*http.Server) {}),
		fx.Invoke(func(scheduler services.SchedulerService) {
			scheduler.ScheduleQuoteSweep()
		}),
	).Run()
}
