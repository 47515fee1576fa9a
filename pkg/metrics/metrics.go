// Package metrics derives the aggregate daily profile, day/night split,
// weekly heatmap, load-duration curves and scalar summary metrics from an
// adjusted canonical series.
package metrics

import (
	"sort"

	"github.com/loadlens/loadlens/pkg/types"
)

// HeatmapDayLabels are the weekday labels of the heatmap, Monday first.
var HeatmapDayLabels = []string{"Lun", "Mar", "Mié", "Jue", "Vie", "Sáb", "Dom"}

// Derive computes the full DerivedProfile for a series. The day window is
// read from the current configuration at derivation time, so changing the
// window re-splits the existing profile. The caller is responsible for
// rejecting empty series before invoking the engine; an empty input yields a
// zeroed 24-row profile and empty curves.
func Derive(s types.Series, window types.DayWindow) types.DerivedProfile {
	hourly := HourlyAverages(s)

	var daytime, nighttime []types.ProfilePoint
	for _, p := range hourly {
		if window.Contains(p.Hour) {
			daytime = append(daytime, p)
		} else {
			nighttime = append(nighttime, p)
		}
	}

	var dailyTotal, peak float64
	for _, p := range hourly {
		dailyTotal += p.PowerKW
		if p.PowerKW > peak {
			peak = p.PowerKW
		}
	}
	mean := dailyTotal / float64(len(hourly))

	hourlyValues := make([]float64, len(hourly))
	for i, p := range hourly {
		hourlyValues[i] = p.PowerKW
	}
	seriesValues := make([]float64, len(s))
	for i, smp := range s {
		seriesValues[i] = smp.PowerKW
	}

	return types.DerivedProfile{
		Hourly:    hourly,
		Daytime:   daytime,
		Nighttime: nighttime,
		AnnualLDC: LoadDuration(seriesValues),
		DailyLDC:  LoadDuration(hourlyValues),
		Heatmap:   WeeklyHeatmap(s),
		Metrics: types.ProfileMetrics{
			DailyTotalKWH:  dailyTotal,
			PeakKW:         peak,
			MeanKW:         mean,
			MonthlyKWH:     dailyTotal * 30,
			AnnualKWH:      dailyTotal * 365,
			SeriesPeakKW:   s.PeakKW(),
			SeriesMeanKW:   s.MeanKW(),
			SeriesTotalKWH: s.TotalEnergyKWH(),
		},
	}
}

// HourlyAverages groups samples by hour-of-day and averages power across all
// days present. The result always has exactly 24 rows for hours 0-23; hours
// with no samples read 0.
func HourlyAverages(s types.Series) []types.ProfilePoint {
	var sums [24]float64
	var counts [24]int
	for _, smp := range s {
		h := smp.TS.Hour()
		sums[h] += smp.PowerKW
		counts[h]++
	}

	points := make([]types.ProfilePoint, 24)
	for h := 0; h < 24; h++ {
		points[h].Hour = h
		if counts[h] > 0 {
			points[h].PowerKW = sums[h] / float64(counts[h])
		}
	}
	return points
}

// LoadDuration builds a load-duration curve: values sorted descending, each
// paired with the cumulative percentage of time at or above it (1-indexed
// rank over N).
func LoadDuration(values []float64) []types.LDCPoint {
	if len(values) == 0 {
		return nil
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	n := float64(len(sorted))
	curve := make([]types.LDCPoint, len(sorted))
	for i, v := range sorted {
		curve[i] = types.LDCPoint{
			PowerKW:     v,
			TimePercent: float64(i+1) / n * 100,
		}
	}
	return curve
}

// WeeklyHeatmap builds the 24x7 matrix of mean power by hour-of-day and
// day-of-week, Monday first.
func WeeklyHeatmap(s types.Series) types.Heatmap {
	hm := types.Heatmap{Days: HeatmapDayLabels}
	var sums [24][7]float64
	for _, smp := range s {
		h := smp.TS.Hour()
		d := (int(smp.TS.Weekday()) + 6) % 7 // Monday first
		sums[h][d] += smp.PowerKW
		hm.Counts[h][d]++
	}
	for h := 0; h < 24; h++ {
		for d := 0; d < 7; d++ {
			if hm.Counts[h][d] > 0 {
				hm.Values[h][d] = sums[h][d] / float64(hm.Counts[h][d])
			}
		}
	}
	return hm
}

// SummarizeBilling aggregates a twelve-month billing form. Months with zero
// or negative values are treated as not provided and excluded from the
// statistics; all submitted months appear in the rows, sorted descending by
// consumption.
func SummarizeBilling(bills []types.MonthlyBill) types.BillingSummary {
	var sum types.BillingSummary
	for _, b := range bills {
		if b.KWH > 0 {
			sum.TotalAnnualKWH += b.KWH
			sum.MonthsProvided++
		}
	}
	if sum.MonthsProvided > 0 {
		sum.AverageMonthlyKWH = sum.TotalAnnualKWH / float64(sum.MonthsProvided)
	}

	sum.Rows = make([]types.MonthlyBill, len(bills))
	copy(sum.Rows, bills)
	sort.SliceStable(sum.Rows, func(i, j int) bool { return sum.Rows[i].KWH > sum.Rows[j].KWH })
	return sum
}
