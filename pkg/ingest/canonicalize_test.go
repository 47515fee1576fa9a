package ingest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTable(t *testing.T, csvData string) *Table {
	t.Helper()
	table, err := ReadCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	return table
}

func TestCanonicalizeTimeSeries(t *testing.T) {
	c := New()

	t.Run("aliases and case-insensitive headers", func(t *testing.T) {
		table := mustTable(t, strings.Join([]string{
			" Fecha , Consumo ",
			"2024-01-01 00:00:00,1.5",
			"2024-01-01 01:00:00,2.5",
		}, "\n"))

		res, err := c.Canonicalize(table)
		require.NoError(t, err)
		assert.Equal(t, KindTimeSeries, res.Kind)
		require.Len(t, res.Series, 2)
		assert.Equal(t, 1.5, res.Series[0].PowerKW)
		assert.Equal(t, 2.5, res.Series[1].PowerKW)
	})

	t.Run("duplicates keep first, gaps forward-fill", func(t *testing.T) {
		table := mustTable(t, strings.Join([]string{
			"timestamp,power_kw",
			"2024-01-01 00:00:00,1.0",
			"2024-01-01 00:00:00,9.0",
			"2024-01-01 03:00:00,4.0",
		}, "\n"))

		res, err := c.Canonicalize(table)
		require.NoError(t, err)
		require.Len(t, res.Series, 4)
		assert.Equal(t, []float64{1.0, 1.0, 1.0, 4.0}, seriesValues(res))
	})

	t.Run("hourly cadence and unique timestamps", func(t *testing.T) {
		table := mustTable(t, strings.Join([]string{
			"date,kw",
			"2024-01-02 05:00:00,2",
			"2024-01-01 00:00:00,1",
			"2024-01-01 00:00:00,5",
			"2024-01-01 17:30:00,3",
		}, "\n"))

		res, err := c.Canonicalize(table)
		require.NoError(t, err)
		require.NotEmpty(t, res.Series)
		for i := 1; i < len(res.Series); i++ {
			assert.Equal(t, time.Hour, res.Series[i].TS.Sub(res.Series[i-1].TS),
				"series must be exactly hourly at index %d", i)
		}
	})

	t.Run("watts heuristic converts on high median", func(t *testing.T) {
		table := mustTable(t, strings.Join([]string{
			"timestamp,w",
			"2024-01-01 00:00:00,1500",
			"2024-01-01 01:00:00,2500",
			"2024-01-01 02:00:00,3500",
		}, "\n"))

		res, err := c.Canonicalize(table)
		require.NoError(t, err)
		assert.True(t, res.UnitConverted)
		assert.Equal(t, []float64{1.5, 2.5, 3.5}, seriesValues(res))
	})

	t.Run("watts heuristic respects configured threshold", func(t *testing.T) {
		high := &Canonicalizer{WattsThreshold: 10000}
		table := mustTable(t, strings.Join([]string{
			"timestamp,kw",
			"2024-01-01 00:00:00,1500",
			"2024-01-01 01:00:00,2500",
		}, "\n"))

		res, err := high.Canonicalize(table)
		require.NoError(t, err)
		assert.False(t, res.UnitConverted)
		assert.Equal(t, []float64{1500, 2500}, seriesValues(res))
	})

	t.Run("unparseable timestamps dropped, non-numeric forward-filled", func(t *testing.T) {
		table := mustTable(t, strings.Join([]string{
			"timestamp,kw",
			"2024-01-01 00:00:00,1.0",
			"not a date,9.0",
			"2024-01-01 01:00:00,n/a",
			"2024-01-01 02:00:00,2.0",
		}, "\n"))

		res, err := c.Canonicalize(table)
		require.NoError(t, err)
		assert.Equal(t, []float64{1.0, 1.0, 2.0}, seriesValues(res))
	})

	t.Run("not recognized without both columns", func(t *testing.T) {
		table := mustTable(t, strings.Join([]string{
			"timestamp,color",
			"2024-01-01 00:00:00,red",
		}, "\n"))

		_, err := c.Canonicalize(table)
		assert.ErrorIs(t, err, ErrNotRecognized)
	})

	t.Run("header only is not recognized", func(t *testing.T) {
		table := mustTable(t, "timestamp,kw")
		_, err := c.Canonicalize(table)
		assert.ErrorIs(t, err, ErrNotRecognized)
	})
}

func seriesValues(res Result) []float64 {
	values := make([]float64, len(res.Series))
	for i, smp := range res.Series {
		values[i] = smp.PowerKW
	}
	return values
}

func loadProfileCSV(rows ...string) string {
	var b strings.Builder
	for i := 0; i < 7; i++ {
		fmt.Fprintf(&b, "fila de preambulo %d\n", i)
	}
	b.WriteString("Carga,Potencia (W)")
	for h := 0; h < 24; h++ {
		fmt.Fprintf(&b, ",%d", h)
	}
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString(r)
		b.WriteString("\n")
	}
	return b.String()
}

func profileRow(name string, watts string, activeHours ...int) string {
	active := make(map[int]bool, len(activeHours))
	for _, h := range activeHours {
		active[h] = true
	}
	cols := []string{name, watts}
	for h := 0; h < 24; h++ {
		if active[h] {
			cols = append(cols, "1")
		} else {
			cols = append(cols, "0")
		}
	}
	return strings.Join(cols, ",")
}

func TestCanonicalizeLoadProfile(t *testing.T) {
	c := &Canonicalizer{WattsThreshold: DefaultWattsThreshold, Year: 2024}

	t.Run("valid rows become rules and synthesize a year", func(t *testing.T) {
		table := mustTable(t, loadProfileCSV(
			profileRow("Nevera", "150", 0, 1, 2, 3),
			profileRow("Foco", "60", 18, 19),
		))

		res, err := c.Canonicalize(table)
		require.NoError(t, err)
		assert.Equal(t, KindLoadProfile, res.Kind)
		require.Len(t, res.Rules, 2)
		assert.Equal(t, "Nevera", res.Rules[0].Name)
		assert.Equal(t, 1, res.Rules[0].Count)
		assert.Equal(t, 7, res.Rules[0].DaysPerWeek)
		assert.Equal(t, []int{0, 1, 2, 3}, res.Rules[0].HoursActive)

		// 2024 is a leap year
		assert.Len(t, res.Series, 8784)
		// hour 18 draws the 60W focus: 0.06 kW
		assert.InDelta(t, 0.06, res.Series[18].PowerKW, 1e-9)
		// hour 0 draws the fridge
		assert.InDelta(t, 0.15, res.Series[0].PowerKW, 1e-9)
	})

	t.Run("rows without name, power or hours are skipped", func(t *testing.T) {
		table := mustTable(t, loadProfileCSV(
			profileRow("", "100", 1),
			profileRow("SinPotencia", "0", 1),
			profileRow("SinHoras", "100"),
			profileRow("Valida", "100", 5),
		))

		res, err := c.Canonicalize(table)
		require.NoError(t, err)
		require.Len(t, res.Rules, 1)
		assert.Equal(t, "Valida", res.Rules[0].Name)
	})

	t.Run("degenerate parse when nothing usable", func(t *testing.T) {
		table := mustTable(t, loadProfileCSV(
			profileRow("", "100", 1),
			profileRow("Cero", "0", 1),
		))

		_, err := c.Canonicalize(table)
		assert.ErrorIs(t, err, ErrDegenerateParse)
	})

	t.Run("duplicate-suffixed hour headers still match", func(t *testing.T) {
		// spreadsheet readers rename duplicate columns to "N.1"
		data := strings.Replace(loadProfileCSV(profileRow("Foco", "60", 3)), ",3,", ",3.1,", 1)
		table := mustTable(t, data)

		res, err := c.Canonicalize(table)
		require.NoError(t, err)
		require.Len(t, res.Rules, 1)
		assert.Equal(t, []int{3}, res.Rules[0].HoursActive)
	})
}
