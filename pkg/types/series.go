package types

import "time"

// Sample is one hourly observation of household power draw.
type Sample struct {
	TS      time.Time `json:"ts"`
	PowerKW float64   `json:"powerKW"`
}

// Series is the canonical hourly power series used as the single source of
// truth for every derived view. Samples are strictly hourly-spaced, sorted
// ascending and unique by timestamp.
type Series []Sample

// Clone returns a copy of the series that can be mutated independently.
func (s Series) Clone() Series {
	if s == nil {
		return nil
	}
	out := make(Series, len(s))
	copy(out, s)
	return out
}

// TotalEnergyKWH returns the total energy of the series. Samples are hourly
// so each kW sample contributes exactly one kWh.
func (s Series) TotalEnergyKWH() float64 {
	var total float64
	for _, smp := range s {
		total += smp.PowerKW
	}
	return total
}

// DaytimeEnergyKWH returns the energy of samples whose hour-of-day falls
// inside the given day window.
func (s Series) DaytimeEnergyKWH(w DayWindow) float64 {
	var total float64
	for _, smp := range s {
		if w.Contains(smp.TS.Hour()) {
			total += smp.PowerKW
		}
	}
	return total
}

// PeakKW returns the maximum sample power, or 0 for an empty series.
func (s Series) PeakKW() float64 {
	var peak float64
	for _, smp := range s {
		if smp.PowerKW > peak {
			peak = smp.PowerKW
		}
	}
	return peak
}

// MeanKW returns the average sample power, or 0 for an empty series.
func (s Series) MeanKW() float64 {
	if len(s) == 0 {
		return 0
	}
	return s.TotalEnergyKWH() / float64(len(s))
}
