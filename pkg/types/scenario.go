package types

import "fmt"

// ScenarioKind names a multiplicative adjustment simulating seasonal or
// behavioral consumption shifts.
type ScenarioKind string

const (
	ScenarioNormal      ScenarioKind = "normal"
	ScenarioSummerDry   ScenarioKind = "summerDry"
	ScenarioWinterRainy ScenarioKind = "winterRainy"
	ScenarioVacation    ScenarioKind = "vacation"
)

// Valid reports whether the kind is one of the supported scenarios.
func (k ScenarioKind) Valid() bool {
	switch k {
	case ScenarioNormal, ScenarioSummerDry, ScenarioWinterRainy, ScenarioVacation:
		return true
	}
	return false
}

// DayWindow is the user-configured hour range defining "daytime" for all
// day/night-split calculations. Both endpoints are inclusive. A window whose
// start is after its end wraps past midnight.
type DayWindow struct {
	StartHour int `json:"startHour"`
	EndHour   int `json:"endHour"`
}

// Contains reports whether the given hour-of-day (0-23) is daytime.
func (w DayWindow) Contains(hour int) bool {
	if w.StartHour <= w.EndHour {
		return hour >= w.StartHour && hour <= w.EndHour
	}
	return hour >= w.StartHour || hour <= w.EndHour
}

// Validate checks that the window hours are within 0-23.
func (w DayWindow) Validate() error {
	if w.StartHour < 0 || w.StartHour > 23 || w.EndHour < 0 || w.EndHour > 23 {
		return fmt.Errorf("day window hours must be within 0-23, got %d-%d", w.StartHour, w.EndHour)
	}
	return nil
}

// ScenarioParams is the runtime configuration for the scenario adjuster.
type ScenarioParams struct {
	Kind ScenarioKind `json:"kind"`
	// Window defines daytime for the redistribution step and the day/night
	// sub-profiles.
	Window DayWindow `json:"window"`
	// DaySharePercent is the desired fraction (0-100) of total energy that
	// should fall inside the daytime window after adjustment.
	DaySharePercent float64 `json:"daySharePercent"`
}

// DefaultScenarioParams mirrors the initial dashboard configuration: no
// seasonal scaling, 6-18h daytime, even day/night split.
func DefaultScenarioParams() ScenarioParams {
	return ScenarioParams{
		Kind:            ScenarioNormal,
		Window:          DayWindow{StartHour: 6, EndHour: 18},
		DaySharePercent: 50,
	}
}

// Validate checks the parameter bounds.
func (p ScenarioParams) Validate() error {
	if !p.Kind.Valid() {
		return fmt.Errorf("unknown scenario kind: %s", p.Kind)
	}
	if err := p.Window.Validate(); err != nil {
		return err
	}
	if p.DaySharePercent < 0 || p.DaySharePercent > 100 {
		return fmt.Errorf("day share must be within 0-100, got %g", p.DaySharePercent)
	}
	return nil
}
