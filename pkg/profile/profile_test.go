package profile

import (
	"testing"
	"time"

	"github.com/loadlens/loadlens/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeSingleRule(t *testing.T) {
	rules := []types.ApplianceRule{{
		Name:        "Foco LED",
		Count:       5,
		UnitPowerW:  10,
		DaysPerWeek: 7,
		HoursActive: []int{18, 19, 20},
	}}

	series, err := Synthesize(rules, 2024)
	require.NoError(t, err)

	// 2024 is a leap year
	require.Len(t, series, 8784)

	for _, smp := range series {
		h := smp.TS.Hour()
		if h == 18 || h == 19 || h == 20 {
			assert.InDelta(t, 0.05, smp.PowerKW, 1e-9, "at %s", smp.TS)
		} else {
			assert.Zero(t, smp.PowerKW, "at %s", smp.TS)
		}
	}

	// 0.05 kW for 3 hours on each of 366 days
	assert.InDelta(t, 54.9, series.TotalEnergyKWH(), 1e-6)
}

func TestSynthesizeStacksRules(t *testing.T) {
	rules := []types.ApplianceRule{
		{Name: "A", Count: 1, UnitPowerW: 1000, DaysPerWeek: 7, HoursActive: []int{8}},
		{Name: "B", Count: 2, UnitPowerW: 500, DaysPerWeek: 7, HoursActive: []int{8}},
	}

	series, err := Synthesize(rules, 2023)
	require.NoError(t, err)
	require.Len(t, series, 8760)
	assert.InDelta(t, 2.0, series[8].PowerKW, 1e-9, "loads stack additively")
}

func TestSynthesizeWeekdayFilter(t *testing.T) {
	rules := []types.ApplianceRule{{
		Name:        "Lavadora",
		Count:       1,
		UnitPowerW:  2000,
		DaysPerWeek: 5, // Monday-Friday
		HoursActive: []int{10},
	}}

	series, err := Synthesize(rules, 2024)
	require.NoError(t, err)

	for _, smp := range series {
		if smp.TS.Hour() != 10 {
			continue
		}
		switch smp.TS.Weekday() {
		case time.Saturday, time.Sunday:
			assert.Zero(t, smp.PowerKW, "weekend at %s", smp.TS)
		default:
			assert.InDelta(t, 2.0, smp.PowerKW, 1e-9, "weekday at %s", smp.TS)
		}
	}
}

func TestSynthesizeEmptyHoursIsNoop(t *testing.T) {
	rules := []types.ApplianceRule{
		{Name: "Fantasma", Count: 1, UnitPowerW: 1000, DaysPerWeek: 7},
		{Name: "Real", Count: 1, UnitPowerW: 100, DaysPerWeek: 7, HoursActive: []int{0}},
	}

	series, err := Synthesize(rules, 2023)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, series[0].PowerKW, 1e-9)
	assert.Zero(t, series[1].PowerKW)
}

func TestSynthesizeEmptyRuleSet(t *testing.T) {
	series, err := Synthesize(nil, 2024)
	assert.ErrorIs(t, err, ErrEmptyRuleSet)
	assert.Empty(t, series)
}
