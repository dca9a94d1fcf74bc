package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/secdash/internal/httpserver/deps"
)

// Registrar mounts one group of routes.
type Registrar func(r chi.Router, d deps.Deps)

var registry []Registrar

// Register adds a route group. Called from the init of each routes file.
func Register(reg Registrar) {
	registry = append(registry, reg)
}

// Called once from server.NewRouter()
func RegisterAll(r chi.Router, d deps.Deps) {
	for _, reg := range registry {
		reg(r, d)
	}
}
