package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/secdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/secdash/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/secdash/internal/httpserver/mw"
)

func init() { Register(registerLink) }

func registerLink(r chi.Router, d deps.Deps) {
	r.With(mw.EnforceHost(d.AllowedHosts, d.Logger)).Get("/go/{sha}", handlers.Link(d))
}
