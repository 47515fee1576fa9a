package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/loadlens/loadlens/pkg/log"
	"github.com/loadlens/loadlens/pkg/profile"
	"github.com/loadlens/loadlens/pkg/types"
)

func (s *Server) handleListAppliances(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state, err := s.getState(ctx, s.getSessionID(r))
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to get session state", slog.Any("error", err))
		writeJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	rules := state.Rules
	if rules == nil {
		rules = []types.ApplianceRule{}
	}
	writeJSON(w, rules)
}

// handleAddAppliance appends one rule to the session's rule list. Rules are
// only ever appended or cleared as a whole, never edited in place.
func (s *Server) handleAddAppliance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := s.getSessionID(r)

	var rule types.ApplianceRule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := rule.Validate(); err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	state, err := s.getState(ctx, sessionID)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to get session state", slog.Any("error", err))
		writeJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	state.Rules = append(state.Rules, rule)
	if err := s.store.Put(ctx, sessionID, state); err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to save session state", slog.Any("error", err))
		writeJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleClearAppliances(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := s.getSessionID(r)

	state, err := s.getState(ctx, sessionID)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to get session state", slog.Any("error", err))
		writeJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	state.Rules = nil
	if err := s.store.Put(ctx, sessionID, state); err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to save session state", slog.Any("error", err))
		writeJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type generateRequest struct {
	Year int `json:"year"`
}

type generateResponse struct {
	Samples int `json:"samples"`
	Year    int `json:"year"`
}

// handleGenerateProfile synthesizes a full-year series from the session's
// rule list and replaces the active dataset.
func (s *Server) handleGenerateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := s.getSessionID(r)

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Year == 0 {
		req.Year = time.Now().Year()
	}
	if req.Year < 2000 || req.Year > time.Now().Year()+1 {
		writeJSONError(w, "year out of range", http.StatusBadRequest)
		return
	}

	state, err := s.getState(ctx, sessionID)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to get session state", slog.Any("error", err))
		writeJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	series, err := profile.Synthesize(state.Rules, req.Year)
	if errors.Is(err, profile.ErrEmptyRuleSet) {
		writeJSONError(w, "add at least one appliance before generating a profile", http.StatusBadRequest)
		return
	} else if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to synthesize profile", slog.Any("error", err))
		writeJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	state.Series = series
	if err := s.store.Put(ctx, sessionID, state); err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to save session state", slog.Any("error", err))
		writeJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	log.Ctx(ctx).InfoContext(ctx, "profile generated",
		slog.Int("year", req.Year),
		slog.Int("rules", len(state.Rules)),
		slog.Int("samples", len(series)))

	writeJSON(w, generateResponse{Samples: len(series), Year: req.Year})
}
