package server

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/loadlens/loadlens/pkg/export"
	"github.com/loadlens/loadlens/pkg/log"
	"github.com/loadlens/loadlens/pkg/metrics"
)

// writeEncodingError reports a failed rendering/encoding backend as a
// non-fatal warning. Session state is never affected by export failures.
func writeEncodingError(w http.ResponseWriter, r *http.Request, what string, err error) {
	ctx := r.Context()
	log.Ctx(ctx).WarnContext(ctx, "export encoding failed",
		slog.String("artifact", what), slog.Any("error", err))
	writeJSONError(w, what+" encoding failed", http.StatusInternalServerError)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	_, adjusted, ok := s.adjustedState(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteSeriesCSV(&buf, adjusted); err != nil {
		writeEncodingError(w, r, "csv", err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="perfil_consumo_anual.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		panic(http.ErrAbortHandler)
	}
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	_, adjusted, ok := s.adjustedState(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteSeriesXLSX(&buf, adjusted); err != nil {
		writeEncodingError(w, r, "xlsx", err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="perfil_consumo_anual.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		panic(http.ErrAbortHandler)
	}
}

func (s *Server) handleExportChart(w http.ResponseWriter, r *http.Request) {
	state, adjusted, ok := s.adjustedState(w, r)
	if !ok {
		return
	}
	derived := metrics.Derive(adjusted, state.Params.Window)

	var buf bytes.Buffer
	var err error
	name := r.PathValue("name")
	switch name {
	case "daily.png":
		err = export.DailyProfilePNG(&buf, derived.Hourly, "Perfil Diario (Línea)")
	case "bars.png":
		err = export.DailyBarsPNG(&buf, derived.Hourly, "Perfil Diario (Barras)")
	case "heatmap.png":
		err = export.HeatmapPNG(&buf, derived.Heatmap)
	case "ldc.png":
		err = export.LDCPNG(&buf, derived.AnnualLDC,
			derived.Metrics.SeriesPeakKW, derived.Metrics.SeriesMeanKW, "LDC Anual")
	default:
		writeJSONError(w, "unknown chart: "+name, http.StatusNotFound)
		return
	}
	if err != nil {
		writeEncodingError(w, r, name, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		panic(http.ErrAbortHandler)
	}
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	switch kind {
	case "", "daily":
		s.exportDailyPDF(w, r)
	case "billing":
		s.exportBillingPDF(w, r)
	default:
		writeJSONError(w, "kind must be daily or billing", http.StatusBadRequest)
	}
}

func (s *Server) exportDailyPDF(w http.ResponseWriter, r *http.Request) {
	state, adjusted, ok := s.adjustedState(w, r)
	if !ok {
		return
	}
	derived := metrics.Derive(adjusted, state.Params.Window)

	var chartBuf bytes.Buffer
	if err := export.DailyProfilePNG(&chartBuf, derived.Hourly, "Perfil Diario (Línea)"); err != nil {
		writeEncodingError(w, r, "daily chart", err)
		return
	}
	var buf bytes.Buffer
	if err := export.DailyReportPDF(&buf, derived.Metrics, chartBuf.Bytes()); err != nil {
		writeEncodingError(w, r, "daily report", err)
		return
	}
	writePDF(w, "reporte_diario_perfil_consumo.pdf", buf.Bytes())
}

func (s *Server) exportBillingPDF(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state, err := s.getState(ctx, s.getSessionID(r))
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to get session state", slog.Any("error", err))
		writeJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if len(state.Bills) == 0 {
		writeJSONError(w, "no billing form submitted yet", http.StatusConflict)
		return
	}
	summary := metrics.SummarizeBilling(state.Bills)

	var chartBuf bytes.Buffer
	if err := export.MonthlyBarsPNG(&chartBuf, summary.Rows, "Consumo Mensual"); err != nil {
		writeEncodingError(w, r, "monthly chart", err)
		return
	}
	var buf bytes.Buffer
	if err := export.BillingReportPDF(&buf, summary, chartBuf.Bytes()); err != nil {
		writeEncodingError(w, r, "billing report", err)
		return
	}
	writePDF(w, "reporte_factura.pdf", buf.Bytes())
}

func writePDF(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		panic(http.ErrAbortHandler)
	}
}
