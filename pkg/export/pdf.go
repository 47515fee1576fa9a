package export

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/loadlens/loadlens/pkg/common"
	"github.com/loadlens/loadlens/pkg/types"
)

// DailyReportPDF writes the daily-profile report: the key daily metrics plus
// the averaged daily profile chart.
func DailyReportPDF(w io.Writer, m types.ProfileMetrics, profilePNG []byte) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFooterFunc(func() { reportFooter(pdf) })

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Reporte Perfil Consumo Diario", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 8, "Generado: "+time.Now().Format("02/01/2006"), "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 10, tr("Métricas Clave (Diarias)"), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	metricRow(pdf, "Pico Potencia:", fmt.Sprintf("%.2f kW", m.PeakKW))
	metricRow(pdf, "Prom. Potencia:", fmt.Sprintf("%.2f kW", m.MeanKW))
	metricRow(pdf, "Consumo Mensual Est.:", fmt.Sprintf("%.0f kWh", m.MonthlyKWH))
	metricRow(pdf, "Consumo Anual Est.:", fmt.Sprintf("%.0f kWh", m.AnnualKWH))
	pdf.Ln(5)

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "Perfil Consumo Diario Promedio", "", 1, "C", false, 0, "")
	pdf.Ln(5)
	if err := embedPNG(pdf, "daily_profile", profilePNG); err != nil {
		return err
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("%w: %v", ErrEncodingFailure, err)
	}
	return nil
}

// BillingReportPDF writes the billing report: annual summary metrics, the
// monthly detail table and the monthly bar chart.
func BillingReportPDF(w io.Writer, sum types.BillingSummary, monthlyPNG []byte) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetFooterFunc(func() { reportFooter(pdf) })

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Reporte Consumo Factura", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 8, "Generado: "+time.Now().Format("02/01/2006"), "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 10, "Resumen Anual", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	metricRow(pdf, "Total Anual:", fmt.Sprintf("%.1f kWh", sum.TotalAnnualKWH))
	metricRow(pdf, "Prom. Mensual:", fmt.Sprintf("%.1f kWh", sum.AverageMonthlyKWH))
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 10, "Detalle Mensual", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(95, 8, ColumnMonth, "1", 0, "C", false, 0, "")
	pdf.CellFormat(95, 8, ColumnConsumption, "1", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, row := range sum.Rows {
		pdf.CellFormat(95, 8, row.Month, "1", 0, "L", false, 0, "")
		pdf.CellFormat(95, 8, fmt.Sprintf("%.1f", row.KWH), "1", 1, "R", false, 0, "")
	}

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "Consumo Anual por Mes", "", 1, "C", false, 0, "")
	pdf.Ln(5)
	if err := embedPNG(pdf, "monthly_bars", monthlyPNG); err != nil {
		return err
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("%w: %v", ErrEncodingFailure, err)
	}
	return nil
}

func metricRow(pdf *fpdf.Fpdf, label, value string) {
	pdf.CellFormat(95, 8, label, "1", 0, "L", false, 0, "")
	pdf.CellFormat(95, 8, value, "1", 1, "R", false, 0, "")
}

func embedPNG(pdf *fpdf.Fpdf, name string, data []byte) error {
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	w, _ := pdf.GetPageSize()
	pdf.ImageOptions(name, 10, 0, w-20, 0, true, opts, 0, "")
	if pdf.Err() {
		return fmt.Errorf("%w: %v", ErrEncodingFailure, pdf.Error())
	}
	return nil
}

func reportFooter(pdf *fpdf.Fpdf) {
	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.CellFormat(0, 10, common.ServerName(), "", 0, "C", false, 0, "")
}
