package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/loadlens/loadlens/pkg/types"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	profileColor = drawing.Color{R: 255, G: 195, B: 0, A: 255}
	meanColor    = drawing.Color{R: 46, G: 204, B: 113, A: 255}
	peakColor    = drawing.Color{R: 231, G: 76, B: 60, A: 255}
)

// DailyProfilePNG renders the averaged daily profile as a line chart.
func DailyProfilePNG(w io.Writer, profile []types.ProfilePoint, title string) error {
	xs := make([]float64, len(profile))
	ys := make([]float64, len(profile))
	for i, p := range profile {
		xs[i] = float64(p.Hour)
		ys[i] = p.PowerKW
	}

	graph := chart.Chart{
		Title:  title,
		Width:  800,
		Height: 400,
		XAxis:  chart.XAxis{Name: ColumnHour},
		YAxis:  chart.YAxis{Name: "kW"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: profileColor,
					StrokeWidth: 2,
					DotColor:    profileColor,
					DotWidth:    3,
				},
			},
		},
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("%w: %v", ErrEncodingFailure, err)
	}
	return nil
}

// DailyBarsPNG renders the averaged daily profile as a bar chart.
func DailyBarsPNG(w io.Writer, profile []types.ProfilePoint, title string) error {
	bars := make([]chart.Value, len(profile))
	for i, p := range profile {
		bars[i] = chart.Value{
			Label: strconv.Itoa(p.Hour),
			Value: p.PowerKW,
			Style: chart.Style{FillColor: profileColor, StrokeColor: profileColor},
		}
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    800,
		Height:   400,
		BarWidth: 20,
		Bars:     bars,
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("%w: %v", ErrEncodingFailure, err)
	}
	return nil
}

// MonthlyBarsPNG renders a billing summary as a monthly bar chart.
func MonthlyBarsPNG(w io.Writer, rows []types.MonthlyBill, title string) error {
	bars := make([]chart.Value, len(rows))
	for i, r := range rows {
		bars[i] = chart.Value{
			Label: r.Month,
			Value: r.KWH,
			Style: chart.Style{FillColor: profileColor, StrokeColor: profileColor},
		}
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    800,
		Height:   500,
		BarWidth: 40,
		Bars:     bars,
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("%w: %v", ErrEncodingFailure, err)
	}
	return nil
}

// LDCPNG renders a load-duration curve as a filled area chart with dashed
// peak and mean reference lines.
func LDCPNG(w io.Writer, curve []types.LDCPoint, peakKW, meanKW float64, title string) error {
	xs := make([]float64, len(curve))
	ys := make([]float64, len(curve))
	for i, p := range curve {
		xs[i] = p.TimePercent
		ys[i] = p.PowerKW
	}

	refXs := []float64{0, 100}
	graph := chart.Chart{
		Title:  title,
		Width:  800,
		Height: 400,
		XAxis:  chart.XAxis{Name: ColumnTimePercent},
		YAxis:  chart.YAxis{Name: "kW"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: profileColor,
					StrokeWidth: 2,
					FillColor:   profileColor.WithAlpha(80),
				},
			},
			chart.ContinuousSeries{
				Name:    fmt.Sprintf("Pico: %.2f kW", peakKW),
				XValues: refXs,
				YValues: []float64{peakKW, peakKW},
				Style: chart.Style{
					StrokeColor:     peakColor,
					StrokeDashArray: []float64{3, 3},
				},
			},
			chart.ContinuousSeries{
				Name:    fmt.Sprintf("Prom: %.2f kW", meanKW),
				XValues: refXs,
				YValues: []float64{meanKW, meanKW},
				Style: chart.Style{
					StrokeColor:     meanColor,
					StrokeDashArray: []float64{5, 5},
				},
			},
		},
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("%w: %v", ErrEncodingFailure, err)
	}
	return nil
}
