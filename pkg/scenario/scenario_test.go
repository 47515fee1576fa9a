package scenario

import (
	"testing"
	"time"

	"github.com/loadlens/loadlens/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatDay(kw float64) types.Series {
	base := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	s := make(types.Series, 24)
	for h := 0; h < 24; h++ {
		s[h] = types.Sample{TS: base.Add(time.Duration(h) * time.Hour), PowerKW: kw}
	}
	return s
}

func TestApplySeasonalSummerDry(t *testing.T) {
	s := flatDay(1)
	applySeasonal(s, types.ScenarioSummerDry)

	for h := 0; h < 24; h++ {
		want := 1.20
		if h >= 14 && h <= 21 {
			want = 1.20 * 1.15
		}
		assert.InDelta(t, want, s[h].PowerKW, 1e-9, "hour %d", h)
	}
}

func TestApplySeasonalWinterRainy(t *testing.T) {
	s := flatDay(1)
	applySeasonal(s, types.ScenarioWinterRainy)

	for h := 0; h < 24; h++ {
		want := 1.10
		if h >= 18 && h <= 22 {
			want = 1.10 * 1.10
		}
		assert.InDelta(t, want, s[h].PowerKW, 1e-9, "hour %d", h)
	}
}

func TestApplySeasonalVacation(t *testing.T) {
	s := flatDay(2)
	applySeasonal(s, types.ScenarioVacation)
	for h := 0; h < 24; h++ {
		assert.InDelta(t, 1.2, s[h].PowerKW, 1e-9, "hour %d", h)
	}
}

func TestApplySeasonalNormalIsIdentity(t *testing.T) {
	s := flatDay(1.5)
	applySeasonal(s, types.ScenarioNormal)
	for h := 0; h < 24; h++ {
		assert.Equal(t, 1.5, s[h].PowerKW)
	}
}

func TestRedistributeHitsTargetShare(t *testing.T) {
	s := flatDay(1)
	window := types.DayWindow{StartHour: 6, EndHour: 18}

	total := s.TotalEnergyKWH()
	redistribute(s, window, 70)

	assert.InDelta(t, total, s.TotalEnergyKWH(), 1e-9, "total energy conserved")
	assert.InDelta(t, 0.70, s.DaytimeEnergyKWH(window)/s.TotalEnergyKWH(), 1e-9)
}

func TestRedistributeNoopWhenShareAlreadyMet(t *testing.T) {
	// 6-18 inclusive covers 13 of 24 hours of a flat profile
	s := flatDay(1)
	window := types.DayWindow{StartHour: 6, EndHour: 18}
	redistribute(s, window, 13.0/24.0*100)

	for h := 0; h < 24; h++ {
		assert.InDelta(t, 1.0, s[h].PowerKW, 1e-9, "hour %d", h)
	}
}

func TestRedistributeZeroPartitionStaysZero(t *testing.T) {
	base := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	s := make(types.Series, 24)
	for h := 0; h < 24; h++ {
		kw := 0.0
		if h >= 20 {
			kw = 1.0
		}
		s[h] = types.Sample{TS: base.Add(time.Duration(h) * time.Hour), PowerKW: kw}
	}
	window := types.DayWindow{StartHour: 6, EndHour: 18}

	// all energy sits at night; asking for 80% daytime cannot invent any,
	// but the night partition still scales down to its 20% target
	redistribute(s, window, 80)

	for h := 0; h < 24; h++ {
		assert.False(t, s[h].PowerKW != s[h].PowerKW, "NaN at hour %d", h)
		if h >= 6 && h <= 18 {
			assert.Zero(t, s[h].PowerKW, "hour %d", h)
		}
	}
	assert.InDelta(t, 0.8, s.TotalEnergyKWH(), 1e-9)
}

func TestAdjustDoesNotMutateInput(t *testing.T) {
	s := flatDay(1)
	p := types.ScenarioParams{
		Kind:            types.ScenarioSummerDry,
		Window:          types.DayWindow{StartHour: 6, EndHour: 18},
		DaySharePercent: 80,
	}

	out := Adjust(s, p)
	require.Len(t, out, 24)

	for h := 0; h < 24; h++ {
		assert.Equal(t, 1.0, s[h].PowerKW, "input changed at hour %d", h)
	}
	assert.NotEqual(t, s[15].PowerKW, out[15].PowerKW)
}

func TestAdjustComposesSeasonalThenShare(t *testing.T) {
	s := flatDay(1)
	p := types.ScenarioParams{
		Kind:            types.ScenarioVacation,
		Window:          types.DayWindow{StartHour: 6, EndHour: 18},
		DaySharePercent: 50,
	}

	out := Adjust(s, p)
	assert.InDelta(t, 24*0.6, out.TotalEnergyKWH(), 1e-9, "vacation scales total")
	assert.InDelta(t, 0.5, out.DaytimeEnergyKWH(p.Window)/out.TotalEnergyKWH(), 1e-9)
}
