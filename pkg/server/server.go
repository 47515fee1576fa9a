package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/google/uuid"
	"github.com/levenlabs/go-lflag"
	"github.com/loadlens/loadlens/pkg/common"
	"github.com/loadlens/loadlens/pkg/ingest"
	"github.com/loadlens/loadlens/pkg/log"
	"github.com/loadlens/loadlens/pkg/session"
	"github.com/loadlens/loadlens/pkg/types"
)

const sessionCookie = "lens_session"

// maxUploadBytes bounds the size of an uploaded consumption file.
const maxUploadBytes = 20 << 20

type contextKey string

const sessionIDContextKey contextKey = "sessionID"

// Server handles the HTTP API for the consumption analyzer. It orchestrates
// ingestion, synthesis, scenario adjustment and metric derivation against the
// per-session state in the session store.
type Server struct {
	canon *ingest.Canonicalizer
	store session.Store

	listenAddr   string
	cookieSecure bool
	httpServer   *http.Server
	serverName   string
}

// Configured initializes the Server with dependencies.
// It uses lflag to register command-line flags for configuration.
func Configured(c *ingest.Canonicalizer, st session.Store) *Server {
	srv := &Server{
		canon:      c,
		store:      st,
		serverName: common.ServerName(),
	}

	listenAddr := lflag.String("http-listen", ":8080", "HTTP server listen address")
	cookieSecure := lflag.Bool("cookie-secure", false, "Set the Secure attribute on the session cookie")

	lflag.Do(func() {
		srv.listenAddr = *listenAddr
		srv.cookieSecure = *cookieSecure
	})

	return srv
}

func (s *Server) setupHandler() http.Handler {
	apiMux := http.NewServeMux()
	apiMux.HandleFunc("POST /api/upload", s.handleUpload)
	apiMux.HandleFunc("GET /api/appliances", s.handleListAppliances)
	apiMux.HandleFunc("POST /api/appliances", s.handleAddAppliance)
	apiMux.HandleFunc("DELETE /api/appliances", s.handleClearAppliances)
	apiMux.HandleFunc("POST /api/appliances/generate", s.handleGenerateProfile)
	apiMux.HandleFunc("POST /api/billing", s.handleBilling)
	apiMux.HandleFunc("GET /api/scenario", s.handleGetScenario)
	apiMux.HandleFunc("POST /api/scenario", s.handleSetScenario)
	apiMux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	apiMux.HandleFunc("GET /api/ldc", s.handleLDC)
	apiMux.HandleFunc("GET /api/export/series.csv", s.handleExportCSV)
	apiMux.HandleFunc("GET /api/export/series.xlsx", s.handleExportXLSX)
	apiMux.HandleFunc("GET /api/export/chart/{name}", s.handleExportChart)
	apiMux.HandleFunc("GET /api/export/report.pdf", s.handleExportPDF)

	mux := http.NewServeMux()
	mux.Handle("/api/", s.sessionMiddleware(apiMux))
	mux.HandleFunc("/healthz", s.handleHealthz)
	return s.serverHeaderMiddleware(gziphandler.GzipHandler(mux))
}

// sessionMiddleware assigns a session cookie on first contact so every API
// call is tied to an isolated session.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		if c, err := r.Cookie(sessionCookie); err == nil {
			if id, err := uuid.Parse(c.Value); err == nil {
				sessionID = id.String()
			}
		}
		if sessionID == "" {
			sessionID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
				Secure:   s.cookieSecure,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(r.Context(), sessionIDContextKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) serverHeaderMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", s.serverName)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) getSessionID(r *http.Request) string {
	if sessionID, ok := r.Context().Value(sessionIDContextKey).(string); ok {
		return sessionID
	}
	// we want to have a stack trace when this happens
	panic("no sessionID in context")
}

// getState loads the session's state, starting a fresh session if none
// exists yet.
func (s *Server) getState(ctx context.Context, sessionID string) (types.SessionState, error) {
	state, err := s.store.Get(ctx, sessionID)
	if errors.Is(err, session.ErrNotFound) {
		return types.NewSessionState(), nil
	}
	return state, err
}

// Run starts the HTTP server and blocks until the context is canceled or an
// error occurs. It also handles graceful shutdown when the context is done.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.listenAddr,
		Handler:      s.setupHandler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		defer close(errChan)
		log.Ctx(ctx).InfoContext(ctx, "starting server", slog.String("addr", s.listenAddr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Ctx(ctx).InfoContext(ctx, "shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}
}

func writeJSONError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(struct {
		Error string `json:"error"`
	}{Error: msg}); err != nil {
		slog.Warn("failed to write error response", slog.Any("error", err))
		panic(http.ErrAbortHandler)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic(http.ErrAbortHandler)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		panic(http.ErrAbortHandler)
	}
}
