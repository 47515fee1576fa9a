package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayWindowContains(t *testing.T) {
	t.Run("inclusive endpoints", func(t *testing.T) {
		w := DayWindow{StartHour: 6, EndHour: 18}
		assert.True(t, w.Contains(6))
		assert.True(t, w.Contains(18))
		assert.True(t, w.Contains(12))
		assert.False(t, w.Contains(5))
		assert.False(t, w.Contains(19))
	})

	t.Run("wraps past midnight", func(t *testing.T) {
		w := DayWindow{StartHour: 22, EndHour: 4}
		assert.True(t, w.Contains(22))
		assert.True(t, w.Contains(23))
		assert.True(t, w.Contains(0))
		assert.True(t, w.Contains(4))
		assert.False(t, w.Contains(5))
		assert.False(t, w.Contains(21))
	})
}

func TestSeriesEnergy(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := Series{}
	for h := 0; h < 24; h++ {
		s = append(s, Sample{TS: base.Add(time.Duration(h) * time.Hour), PowerKW: 2})
	}

	assert.InDelta(t, 48.0, s.TotalEnergyKWH(), 1e-9)
	assert.InDelta(t, 2.0, s.MeanKW(), 1e-9)
	assert.InDelta(t, 2.0, s.PeakKW(), 1e-9)

	// 6-18 inclusive is 13 hours
	assert.InDelta(t, 26.0, s.DaytimeEnergyKWH(DayWindow{StartHour: 6, EndHour: 18}), 1e-9)
}

func TestSeriesClone(t *testing.T) {
	s := Series{{TS: time.Now(), PowerKW: 1}}
	c := s.Clone()
	c[0].PowerKW = 5
	assert.Equal(t, 1.0, s[0].PowerKW, "Clone must not share backing storage")

	assert.Nil(t, Series(nil).Clone())
}

func TestApplianceRuleActiveDays(t *testing.T) {
	t.Run("first N weekdays from Monday", func(t *testing.T) {
		r := ApplianceRule{DaysPerWeek: 5}
		days := r.ActiveDays()
		assert.True(t, days[time.Monday])
		assert.True(t, days[time.Friday])
		assert.False(t, days[time.Saturday])
		assert.False(t, days[time.Sunday])
	})

	t.Run("explicit day set wins", func(t *testing.T) {
		r := ApplianceRule{DaysPerWeek: 1, Days: []time.Weekday{time.Saturday, time.Sunday}}
		days := r.ActiveDays()
		assert.True(t, days[time.Saturday])
		assert.True(t, days[time.Sunday])
		assert.False(t, days[time.Monday])
	})
}

func TestApplianceRuleValidate(t *testing.T) {
	valid := ApplianceRule{Name: "Foco LED", Count: 5, UnitPowerW: 10, DaysPerWeek: 7, HoursActive: []int{18, 19, 20}}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name string
		mut  func(*ApplianceRule)
	}{
		{"empty name", func(r *ApplianceRule) { r.Name = "" }},
		{"count too low", func(r *ApplianceRule) { r.Count = 0 }},
		{"count too high", func(r *ApplianceRule) { r.Count = 101 }},
		{"negative power", func(r *ApplianceRule) { r.UnitPowerW = -1 }},
		{"power too high", func(r *ApplianceRule) { r.UnitPowerW = 20001 }},
		{"days out of range", func(r *ApplianceRule) { r.DaysPerWeek = 8 }},
		{"hour out of range", func(r *ApplianceRule) { r.HoursActive = []int{24} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mut(&r)
			assert.Error(t, r.Validate())
		})
	}
}

func TestScenarioParamsValidate(t *testing.T) {
	p := DefaultScenarioParams()
	require.NoError(t, p.Validate())

	p.Kind = ScenarioKind("beachParty")
	assert.Error(t, p.Validate())

	p = DefaultScenarioParams()
	p.DaySharePercent = 101
	assert.Error(t, p.Validate())

	p = DefaultScenarioParams()
	p.Window.EndHour = 24
	assert.Error(t, p.Validate())
}
