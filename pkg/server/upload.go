package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/loadlens/loadlens/pkg/ingest"
	"github.com/loadlens/loadlens/pkg/log"
)

type uploadResponse struct {
	Kind          ingest.Kind `json:"kind"`
	UnitConverted bool        `json:"unitConverted"`
	Samples       int         `json:"samples"`
	RuleCount     int         `json:"ruleCount,omitempty"`
}

// handleUpload ingests an uploaded consumption file and replaces the
// session's active dataset wholesale. On any recognition failure the previous
// dataset is kept untouched.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := s.getSessionID(r)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, "missing file upload", http.StatusBadRequest)
		return
	}
	defer file.Close()

	table, err := ingest.ReadTable(header.Filename, file)
	if err != nil {
		log.Ctx(ctx).WarnContext(ctx, "failed to decode upload",
			slog.String("filename", header.Filename), slog.Any("error", err))
		writeJSONError(w, "file could not be decoded as CSV or XLSX", http.StatusBadRequest)
		return
	}

	result, err := s.canon.Canonicalize(table)
	switch {
	case errors.Is(err, ingest.ErrNotRecognized):
		writeJSONError(w, "file matches neither a time series nor a load profile", http.StatusBadRequest)
		return
	case errors.Is(err, ingest.ErrDegenerateParse):
		writeJSONError(w, "load profile read, but no row had a usable name, power and hours", http.StatusBadRequest)
		return
	case err != nil:
		log.Ctx(ctx).ErrorContext(ctx, "failed to canonicalize upload", slog.Any("error", err))
		writeJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	state, err := s.getState(ctx, sessionID)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to get session state", slog.Any("error", err))
		writeJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	state.Series = result.Series
	if err := s.store.Put(ctx, sessionID, state); err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to save session state", slog.Any("error", err))
		writeJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	log.Ctx(ctx).InfoContext(ctx, "dataset replaced",
		slog.String("kind", string(result.Kind)),
		slog.Int("samples", len(result.Series)),
		slog.Bool("unitConverted", result.UnitConverted))

	writeJSON(w, uploadResponse{
		Kind:          result.Kind,
		UnitConverted: result.UnitConverted,
		Samples:       len(result.Series),
		RuleCount:     len(result.Rules),
	})
}
