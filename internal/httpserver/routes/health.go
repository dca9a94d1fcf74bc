package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/secdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/secdash/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/secdash/internal/httpserver/mw"
)

func init() { Register(registerHealth) }

func registerHealth(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))

	r.Group(func(r chi.Router) {
		r.Use(mw.AllowOnlyCIDRS(d.AllowedNets, d.TrustProxy, d.Logger))
		r.Get("/readyz", handlers.Readyz(d))
		r.Get("/infra", handlers.Infra(d))
	})
}
