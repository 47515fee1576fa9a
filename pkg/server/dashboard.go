package server

import (
	"log/slog"
	"net/http"

	"github.com/loadlens/loadlens/pkg/log"
	"github.com/loadlens/loadlens/pkg/metrics"
	"github.com/loadlens/loadlens/pkg/scenario"
	"github.com/loadlens/loadlens/pkg/types"
)

// adjustedState loads the session state and returns it alongside the
// scenario-adjusted series. A session with no dataset yields a conflict
// response (written here) and ok=false: the metrics engine is never invoked
// on an empty series.
func (s *Server) adjustedState(w http.ResponseWriter, r *http.Request) (types.SessionState, types.Series, bool) {
	ctx := r.Context()
	state, err := s.getState(ctx, s.getSessionID(r))
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to get session state", slog.Any("error", err))
		writeJSONError(w, "internal server error", http.StatusInternalServerError)
		return types.SessionState{}, nil, false
	}
	if len(state.Series) == 0 {
		writeJSONError(w, "no dataset loaded: upload a file or generate a profile first", http.StatusConflict)
		return types.SessionState{}, nil, false
	}
	return state, scenario.Adjust(state.Series, state.Params), true
}

// handleDashboard recomputes every derived view from the current series and
// scenario parameters. Recomputing on every read keeps the views consistent
// with the live configuration.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	state, adjusted, ok := s.adjustedState(w, r)
	if !ok {
		return
	}
	writeJSON(w, metrics.Derive(adjusted, state.Params.Window))
}

func (s *Server) handleLDC(w http.ResponseWriter, r *http.Request) {
	state, adjusted, ok := s.adjustedState(w, r)
	if !ok {
		return
	}

	derived := metrics.Derive(adjusted, state.Params.Window)
	switch r.URL.Query().Get("kind") {
	case "", "daily":
		writeJSON(w, derived.DailyLDC)
	case "annual":
		writeJSON(w, derived.AnnualLDC)
	default:
		writeJSONError(w, "kind must be daily or annual", http.StatusBadRequest)
	}
}
