package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// Cors answers preflight requests itself, so it wraps the router rather than
// running as route middleware.
func Cors(allowedOrigins ...string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-Id", "X-Trace-Id"},
		AllowCredentials: false,
	})
	return c.Handler
}
