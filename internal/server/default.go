package server

import (
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/stocktakehq/stocktake/pkg/application"
	"github.com/stocktakehq/stocktake/pkg/configuration"
	"github.com/stocktakehq/stocktake/pkg/constants"
	"github.com/stocktakehq/stocktake/pkg/httpapi"
	"github.com/stocktakehq/stocktake/pkg/middleware"
	"github.com/stocktakehq/stocktake/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
	Pool          *pgxpool.Pool
}

func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application

	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger),
		middleware.Provide(constants.AppKey, app),
		middleware.Provide(constants.PoolKey, options.Pool),
		middleware.Cors(options.Configuration.Origin),
		middleware.RequestParams(),
	}
	app.RegisterMiddleware(middlewares...)
	app.RegisterControllers(&navigationController{app: app})

	serverInstance := server.NewHTTPServer(
		app,
		httpapi.NotFound(),
		httpapi.MethodNotAllowed(),
	)
	return serverInstance, nil
}
