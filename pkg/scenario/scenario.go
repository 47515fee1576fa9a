// Package scenario applies the seasonal scenario multiplier and the day/night
// energy redistribution to a canonical series.
package scenario

import (
	"github.com/loadlens/loadlens/pkg/types"
)

// Seasonal multipliers. The peak windows use inclusive hour bounds.
const (
	summerBaseFactor = 1.20
	summerPeakFactor = 1.15
	winterBaseFactor = 1.10
	winterPeakFactor = 1.10
	vacationFactor   = 0.60
)

var (
	summerPeakWindow = types.DayWindow{StartHour: 14, EndHour: 21}
	winterPeakWindow = types.DayWindow{StartHour: 18, EndHour: 22}
)

// Adjust returns a new series with the scenario transform applied: first the
// seasonal multiplier for the scenario kind, then the day/night energy
// redistribution toward the target day share. The input is never mutated and
// the two steps always compose in this order, so the target share is enforced
// on the already-seasonally-scaled series.
func Adjust(s types.Series, p types.ScenarioParams) types.Series {
	adjusted := s.Clone()
	applySeasonal(adjusted, p.Kind)
	redistribute(adjusted, p.Window, p.DaySharePercent)
	return adjusted
}

func applySeasonal(s types.Series, kind types.ScenarioKind) {
	switch kind {
	case types.ScenarioSummerDry:
		for i := range s {
			s[i].PowerKW *= summerBaseFactor
			if summerPeakWindow.Contains(s[i].TS.Hour()) {
				s[i].PowerKW *= summerPeakFactor
			}
		}
	case types.ScenarioWinterRainy:
		for i := range s {
			s[i].PowerKW *= winterBaseFactor
			if winterPeakWindow.Contains(s[i].TS.Hour()) {
				s[i].PowerKW *= winterPeakFactor
			}
		}
	case types.ScenarioVacation:
		for i := range s {
			s[i].PowerKW *= vacationFactor
		}
	}
}

// redistribute rescales the daytime and nighttime partitions so the daytime
// window holds sharePercent of the total energy. A partition whose current
// energy is exactly zero keeps a factor of 0 and stays at zero regardless of
// the target, so the transform never divides by zero or produces NaN.
func redistribute(s types.Series, window types.DayWindow, sharePercent float64) {
	total := s.TotalEnergyKWH()
	day := s.DaytimeEnergyKWH(window)
	night := total - day

	wantDay := total * (sharePercent / 100.0)
	wantNight := total - wantDay

	dayFactor := 0.0
	if day > 0 {
		dayFactor = wantDay / day
	}
	nightFactor := 0.0
	if night > 0 {
		nightFactor = wantNight / night
	}

	for i := range s {
		if window.Contains(s[i].TS.Hour()) {
			s[i].PowerKW *= dayFactor
		} else {
			s[i].PowerKW *= nightFactor
		}
	}
}
