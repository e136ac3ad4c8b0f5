package server

import (
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"

	"github.com/iota-uz/teamtrack/modules/people/presentation/controllers"
	"github.com/iota-uz/teamtrack/pkg/application"
	"github.com/iota-uz/teamtrack/pkg/configuration"
	"github.com/iota-uz/teamtrack/pkg/constants"
	"github.com/iota-uz/teamtrack/pkg/middleware"
	"github.com/iota-uz/teamtrack/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
	Pool          *pgxpool.Pool
}

// Default assembles the middleware stack and fallback handlers every
// entrypoint shares. Order matters: the logger opens the root span and stamps
// the request id, Provide seeds the context for everything downstream, and
// Authorize must run after RequestParams so it sees the extracted token.
func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application

	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger, middleware.DefaultLoggerOptions()),

		middleware.TracedMiddleware("database"),
		middleware.Provide(constants.AppKey, app),
		middleware.Provide(constants.PoolKey, options.Pool),

		middleware.TracedMiddleware("cors"),
		middleware.Cors("*"),
	}

	if options.Configuration.RateLimit.Enabled {
		var store limiter.Store
		var err error

		switch options.Configuration.RateLimit.Storage {
		case "redis":
			store, err = middleware.NewRedisStore(options.Configuration.RateLimit.RedisURL)
			if err != nil {
				options.Logger.WithError(err).Warn("failed to create redis store for rate limiting, falling back to memory")
				store = middleware.NewMemoryStore()
			}
		default:
			store = middleware.NewMemoryStore()
		}

		middlewares = append(middlewares,
			middleware.TracedMiddleware("rateLimit"),
			middleware.RateLimit(middleware.RateLimitConfig{
				RequestsPerPeriod: options.Configuration.RateLimit.GlobalRPS,
				Store:             store,
			}),
		)
	}

	middlewares = append(middlewares,
		middleware.TracedMiddleware("requestParams"),
		middleware.RequestParams(),
		middleware.TracedMiddleware("auth"),
		middleware.Authorize(),
	)

	app.RegisterMiddleware(middlewares...)

	return server.NewHTTPServer(
		app,
		controllers.NotFound(),
		controllers.MethodNotAllowed(),
	), nil
}
