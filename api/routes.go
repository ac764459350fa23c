package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/syndicate-server/internal/auth"
	"github.com/carson-networks/syndicate-server/internal/handlers/v1/portfolio"
	"github.com/carson-networks/syndicate-server/internal/handlers/v1/status"
	"github.com/carson-networks/syndicate-server/internal/handlers/v1/syndicate"
	"github.com/carson-networks/syndicate-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/syndicate-server/internal/handlers/v1/user"
	"github.com/carson-networks/syndicate-server/internal/logging"
	"github.com/carson-networks/syndicate-server/internal/service"
)

type Rest struct {
	Logger      *logrus.Logger
	Port        string
	Service     *service.Service
	TokenIssuer *auth.Issuer
}

func (r *Rest) Serve() {
	mux := http.NewServeMux()

	humaConfig := huma.DefaultConfig("syndicate-server", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}
	humaAPI := humago.New(mux, humaConfig)
	humaAPI.UseMiddleware(
		logging.Middleware(r.Logger),
		r.TokenIssuer.Middleware(humaAPI),
	)

	user.NewLoginHandler(r.Service.User).Register(humaAPI)
	user.NewRegisterHandler(r.Service.User).Register(humaAPI)
	transaction.NewCreateTransactionHandler(r.Service.Transaction).Register(humaAPI)
	transaction.NewListTransactionsHandler(r.Service.Transaction).Register(humaAPI)
	portfolio.NewGetPortfolioHandler(r.Service.Portfolio).Register(humaAPI)
	syndicate.NewGetSyndicateHandler(r.Service.Syndicate).Register(humaAPI)
	syndicate.NewCreateFriendHandler(r.Service.Syndicate).Register(humaAPI)
	syndicate.NewCheckFriendRequestStatusHandler(r.Service.Syndicate).Register(humaAPI)
	syndicate.NewUpdateFriendRequestStatusHandler(r.Service.Syndicate).Register(humaAPI)

	statusHandler := status.NewHandler()
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           mux,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}
