package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/loadlens/loadlens/pkg/log"
)

func (s *Server) handleGetScenario(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state, err := s.getState(ctx, s.getSessionID(r))
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to get session state", slog.Any("error", err))
		writeJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, state.Params)
}

// handleSetScenario replaces the session's scenario parameters. Derived views
// always reflect the latest parameters; nothing is frozen at adjustment time.
func (s *Server) handleSetScenario(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := s.getSessionID(r)

	state, err := s.getState(ctx, sessionID)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to get session state", slog.Any("error", err))
		writeJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	params := state.Params
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := params.Validate(); err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	state.Params = params
	if err := s.store.Put(ctx, sessionID, state); err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to save session state", slog.Any("error", err))
		writeJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, params)
}
