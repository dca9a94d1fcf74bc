package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/secdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/secdash/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/secdash/internal/httpserver/mw"
)

func init() { Register(registerAPI) }

func registerAPI(r chi.Router, d deps.Deps) {
	r.Route("/api", func(r chi.Router) {
		r.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))
		r.Use(mw.CORS(d.CORSOrigins))
		r.Use(rateLimit(d, "api"))

		r.Get("/vulnerabilities", handlers.Vulnerabilities(d))
		r.Get("/vulnerabilities/{sha}", handlers.Vulnerability(d))
		r.Get("/facets", handlers.Facets(d))
		r.Post("/query", handlers.Query(d))
		r.Get("/ui", handlers.UI(d))
	})
}
