package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/secdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/secdash/internal/httpserver/respond"
)

// Facets serves the facet options of the full record store
func Facets(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		facets, err := d.Dashboard.Facets()
		if err != nil {
			writeServiceError(w, d.Logger, err)
			return
		}
		respond.JSON(w, http.StatusOK, facets)
	}
}
