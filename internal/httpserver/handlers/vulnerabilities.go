package handlers

import (
	"net/http"
	"net/url"

	"github.com/MrSnakeDoc/secdash/internal/domain"
	"github.com/MrSnakeDoc/secdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/secdash/internal/httpserver/respond"
	"github.com/MrSnakeDoc/secdash/internal/logger"
)

// Vulnerabilities serves the filtered view for the query parameters
// q, type, year, state and repository (alias repo). Unknown parameters
// are ignored.
func Vulnerabilities(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := queryFromURL(r.URL.Query())

		view, err := d.Dashboard.View(r.Context(), q)
		if err != nil {
			writeServiceError(w, d.Logger, err)
			return
		}

		d.Logger.Debug("vulnerabilities request",
			logger.String("query", q.Canonical()),
			logger.Int("count", view.Count()))

		respond.JSON(w, http.StatusOK, d.UI.RenderView(view))
	}
}

// facetParams is ordered so that "repository" wins over its "repo" alias.
var facetParams = []string{"type", "year", "state", "repo", "repository"}

func queryFromURL(v url.Values) domain.QueryState {
	q := domain.SetSearchTerm(domain.QueryState{}, v.Get("q"))
	for _, key := range facetParams {
		value := v.Get(key)
		if value == "" {
			continue
		}
		f, err := domain.ParseFacet(key)
		if err != nil {
			continue
		}
		q = domain.SetFacet(q, f, value)
	}
	return q
}
