package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/loadlens/loadlens/pkg/log"
	"github.com/loadlens/loadlens/pkg/metrics"
	"github.com/loadlens/loadlens/pkg/types"
)

type billingRequest struct {
	// Months maps month label (Ene..Dic) to billed kWh. Zero means not
	// provided.
	Months map[string]float64 `json:"months"`
}

// handleBilling summarizes a twelve-field monthly billing form and remembers
// it on the session for the billing report.
func (s *Server) handleBilling(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := s.getSessionID(r)

	var req billingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	known := make(map[string]bool, len(types.MonthLabels))
	for _, m := range types.MonthLabels {
		known[m] = true
	}
	for m, v := range req.Months {
		if !known[m] {
			writeJSONError(w, "unknown month label: "+m, http.StatusBadRequest)
			return
		}
		if v < 0 {
			writeJSONError(w, "monthly consumption cannot be negative", http.StatusBadRequest)
			return
		}
	}

	// keep calendar order regardless of map iteration
	bills := make([]types.MonthlyBill, 0, len(types.MonthLabels))
	for _, m := range types.MonthLabels {
		bills = append(bills, types.MonthlyBill{Month: m, KWH: req.Months[m]})
	}

	summary := metrics.SummarizeBilling(bills)
	if summary.MonthsProvided == 0 {
		writeJSONError(w, "enter a consumption greater than 0 for at least one month", http.StatusBadRequest)
		return
	}

	state, err := s.getState(ctx, sessionID)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to get session state", slog.Any("error", err))
		writeJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	state.Bills = bills
	if err := s.store.Put(ctx, sessionID, state); err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to save session state", slog.Any("error", err))
		writeJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, summary)
}
