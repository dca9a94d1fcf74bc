package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/secdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/secdash/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/secdash/internal/httpserver/mw"
)

func init() { Register(registerGraphQL) }

func registerGraphQL(r chi.Router, d deps.Deps) {
	if d.Schema == nil {
		return
	}
	g := r.With(
		mw.EnforceHost(d.AllowedHosts, d.Logger),
		mw.CORS(d.CORSOrigins),
		rateLimit(d, "graphql"),
	)
	g.Post("/graphql", handlers.GraphQL(d))

	// preflight requests are answered by the CORS middleware and never
	// reach the handler
	if len(d.CORSOrigins) > 0 {
		g.Options("/graphql", handlers.GraphQL(d))
	}
}
