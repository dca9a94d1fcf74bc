package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/secdash/internal/dashboard"
	"github.com/MrSnakeDoc/secdash/internal/domain"
	"github.com/MrSnakeDoc/secdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/secdash/internal/httpserver/respond"
	"github.com/MrSnakeDoc/secdash/internal/logger"
	"github.com/MrSnakeDoc/secdash/internal/presentation"
)

const maxQueryBody = 64 << 10

type queryRequest struct {
	State  domain.QueryState `json:"state"`
	Action *dashboard.Action `json:"action"`
}

type queryResponse struct {
	State domain.QueryState `json:"state"`
	View  presentation.View `json:"view"`
}

// Query applies one action to a client-held query state and returns the
// new state with its view. Without an action the state is only evaluated.
func Query(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req queryRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxQueryBody)).Decode(&req); err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid request body")
			return
		}

		state := req.State
		if req.Action != nil {
			next, err := dashboard.Apply(state, *req.Action)
			if err != nil {
				if errors.Is(err, domain.ErrUnknownFacet) || errors.Is(err, dashboard.ErrUnknownOp) {
					respond.Error(w, http.StatusBadRequest, err.Error())
					return
				}
				writeServiceError(w, d.Logger, err)
				return
			}
			state = next
		}

		view, err := d.Dashboard.View(r.Context(), state)
		if err != nil {
			writeServiceError(w, d.Logger, err)
			return
		}

		if req.Action != nil {
			d.Logger.Debug("query action applied",
				logger.String("op", string(req.Action.Op)),
				logger.String("state", state.Canonical()),
				logger.Int("count", view.Count()))
		}

		respond.JSON(w, http.StatusOK, queryResponse{
			State: state,
			View:  d.UI.RenderView(view),
		})
	}
}
