package mw

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows browser calls from the given origins. If the list is empty,
// it acts as a passthrough and no CORS headers are sent.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		return passthrough
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Scope", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}
