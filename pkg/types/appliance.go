package types

import (
	"fmt"
	"time"
)

// ApplianceRule declares one category of repeating electrical load: how many
// units, how much each draws, and on which weekdays and hours it runs.
type ApplianceRule struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	UnitPowerW float64 `json:"unitPowerW"`
	// DaysPerWeek selects the first N weekdays starting Monday and is only
	// consulted when Days is empty.
	DaysPerWeek int            `json:"daysPerWeek"`
	Days        []time.Weekday `json:"days,omitempty"`
	// HoursActive is the set of hours of day (0-23) during which the load
	// draws power. An empty set makes the rule a no-op.
	HoursActive []int `json:"hoursActive"`
}

// PowerKW returns the combined draw of all units in kW.
func (r ApplianceRule) PowerKW() float64 {
	return r.UnitPowerW * float64(r.Count) / 1000.0
}

// ActiveDays resolves the rule's weekday set. The first-N-weekdays form
// counts from Monday, matching how usage schedules are usually described.
func (r ApplianceRule) ActiveDays() map[time.Weekday]bool {
	days := make(map[time.Weekday]bool, 7)
	if len(r.Days) > 0 {
		for _, d := range r.Days {
			days[d] = true
		}
		return days
	}
	ordered := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
	n := r.DaysPerWeek
	if n > len(ordered) {
		n = len(ordered)
	}
	for i := 0; i < n; i++ {
		days[ordered[i]] = true
	}
	return days
}

// HourSet returns the active hours as a set for fast lookup.
func (r ApplianceRule) HourSet() map[int]bool {
	hours := make(map[int]bool, len(r.HoursActive))
	for _, h := range r.HoursActive {
		hours[h] = true
	}
	return hours
}

// Validate checks the entry-form bounds for a rule.
func (r ApplianceRule) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.Count < 1 || r.Count > 100 {
		return fmt.Errorf("count must be within 1-100, got %d", r.Count)
	}
	if r.UnitPowerW < 0 || r.UnitPowerW > 20000 {
		return fmt.Errorf("unit power must be within 0-20000 W, got %g", r.UnitPowerW)
	}
	if len(r.Days) == 0 && (r.DaysPerWeek < 1 || r.DaysPerWeek > 7) {
		return fmt.Errorf("days per week must be within 1-7, got %d", r.DaysPerWeek)
	}
	for _, h := range r.HoursActive {
		if h < 0 || h > 23 {
			return fmt.Errorf("hour %d out of range 0-23", h)
		}
	}
	return nil
}
