package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"

	"github.com/iota-uz/usecase-catalog/pkg/application"
	"github.com/iota-uz/usecase-catalog/pkg/configuration"
	"github.com/iota-uz/usecase-catalog/pkg/constants"
	"github.com/iota-uz/usecase-catalog/pkg/httpapi"
	"github.com/iota-uz/usecase-catalog/pkg/middleware"
	"github.com/iota-uz/usecase-catalog/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
	DB            *sqlx.DB
}

// SubmitLimiter builds the rate limiter for the anonymous submission
// endpoints, or returns nil when rate limiting is disabled. A redis store that
// cannot be created falls back to memory.
func SubmitLimiter(conf *configuration.Configuration, logger *logrus.Logger) (mux.MiddlewareFunc, error) {
	if !conf.RateLimit.Enabled {
		return nil, nil
	}

	var store limiter.Store
	switch conf.RateLimit.Storage {
	case "redis":
		s, err := middleware.NewRedisStore(conf.RateLimit.RedisURL)
		if err != nil {
			logger.WithError(err).Warn("Failed to create Redis store for rate limiting, falling back to memory")
			s = middleware.NewMemoryStore()
		}
		store = s
	default:
		store = middleware.NewMemoryStore()
	}

	return middleware.RateLimit(middleware.RateLimitConfig{
		Rate:         conf.RateLimit.SubmitRate,
		Store:        store,
		RealIPHeader: conf.RealIPHeader,
	})
}

func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application
	conf := options.Configuration

	loggerOpts := middleware.DefaultLoggerOptions()
	loggerOpts.RequestIDHeader = conf.RequestIDHeader
	loggerOpts.RealIPHeader = conf.RealIPHeader

	app.RegisterMiddleware(
		middleware.WithLogger(options.Logger, loggerOpts),
		middleware.WithDB(options.DB),
		middleware.Provide(constants.AppKey, app),
	)

	serverInstance := server.NewHTTPServer(app, NotFound(), MethodNotAllowed())
	serverInstance.ReadTimeout = conf.Server.ReadTimeout
	serverInstance.WriteTimeout = conf.Server.WriteTimeout
	serverInstance.Wrappers = append(serverInstance.Wrappers, middleware.Cors(conf.CORS.AllowedOrigins...))
	return serverInstance, nil
}

func NotFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = httpapi.WriteError(w, http.StatusNotFound, "Not found")
	})
}

func MethodNotAllowed() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = httpapi.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
}
