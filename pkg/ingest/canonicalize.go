package ingest

import (
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/levenlabs/go-lflag"
	"github.com/loadlens/loadlens/pkg/profile"
	"github.com/loadlens/loadlens/pkg/types"
)

var (
	// ErrNotRecognized means the table matches neither the time-series nor
	// the load-profile schema. The session keeps its previous dataset.
	ErrNotRecognized = errors.New("table matches no supported schema")

	// ErrDegenerateParse means the table has the load-profile shape but no
	// row yielded a usable rule.
	ErrDegenerateParse = errors.New("load profile table has no usable rows")
)

// Column alias sets for time-series recognition, matched case- and
// whitespace-insensitively.
var (
	timestampAliases = []string{"timestamp", "fecha", "time", "date"}
	powerAliases     = []string{"potencia_kw", "kw", "power_kw", "potencia_w", "w", "consumo"}
)

// DefaultWattsThreshold is the default median above which a power column is
// assumed to be in watts rather than kW.
const DefaultWattsThreshold = 1000.0

// Kind reports which schema an upload was recognized as.
type Kind string

const (
	KindTimeSeries  Kind = "timeSeries"
	KindLoadProfile Kind = "loadProfile"
)

// Result is the outcome of a successful canonicalization. UnitConverted is
// set when the watts heuristic fired so the caller can surface the decision
// instead of silently mutating data.
type Result struct {
	Series        types.Series
	Kind          Kind
	UnitConverted bool
	// Rules holds the appliance rules recovered from a load-profile table.
	Rules []types.ApplianceRule
}

// Canonicalizer normalizes uploaded tables into the canonical hourly series.
type Canonicalizer struct {
	// WattsThreshold is the median power above which a column is treated as
	// watts and divided by 1000. This is a heuristic, not a unit-declared
	// contract.
	WattsThreshold float64

	// Year used when synthesizing a series from a load-profile table. Zero
	// means the current calendar year.
	Year int
}

// New returns a Canonicalizer with the default watts threshold.
func New() *Canonicalizer {
	return &Canonicalizer{WattsThreshold: DefaultWattsThreshold}
}

// Configured initializes the Canonicalizer from command-line flags.
func Configured() *Canonicalizer {
	c := New()
	threshold := lflag.String("unit-watts-threshold", "1000", "Median power above which an uploaded column is assumed to be in watts")
	lflag.Do(func() {
		v, err := strconv.ParseFloat(*threshold, 64)
		if err != nil || v <= 0 {
			panic("unit-watts-threshold must be a positive number")
		}
		c.WattsThreshold = v
	})
	return c
}

// Canonicalize normalizes a table into the canonical hourly series. It first
// attempts time-series recognition and falls back to the fixed-shape
// load-profile table. Unrecognized input yields ErrNotRecognized with no
// partial result.
func (c *Canonicalizer) Canonicalize(t *Table) (Result, error) {
	if res, ok := c.canonicalizeTimeSeries(t); ok {
		return res, nil
	}
	return c.canonicalizeLoadProfile(t)
}

// rawSample is a parsed row before resampling. A NaN power marks a
// non-numeric cell that will be forward-filled.
type rawSample struct {
	ts      time.Time
	powerKW float64
}

func (c *Canonicalizer) canonicalizeTimeSeries(t *Table) (Result, bool) {
	header := t.headerAt(0)
	tsCol := findColumn(header, timestampAliases)
	powerCol := findColumn(header, powerAliases)
	if tsCol < 0 || powerCol < 0 {
		return Result{}, false
	}

	var raw []rawSample
	for _, row := range t.dataRows(0) {
		if tsCol >= len(row) {
			continue
		}
		ts, err := parseTimestamp(row[tsCol])
		if err != nil {
			// rows with unparseable timestamps are dropped
			continue
		}
		power := math.NaN()
		if powerCol < len(row) {
			if v, err := parseNumber(row[powerCol]); err == nil {
				power = v
			}
		}
		raw = append(raw, rawSample{ts: ts, powerKW: power})
	}
	if len(raw) == 0 {
		return Result{}, false
	}

	converted := c.convertWatts(raw)

	sort.SliceStable(raw, func(i, j int) bool { return raw[i].ts.Before(raw[j].ts) })

	return Result{
		Series:        resampleHourly(raw),
		Kind:          KindTimeSeries,
		UnitConverted: converted,
	}, true
}

// convertWatts applies the unit heuristic: if the median of the parsed power
// values exceeds the threshold the whole column is assumed to be in watts.
func (c *Canonicalizer) convertWatts(raw []rawSample) bool {
	var values []float64
	for _, r := range raw {
		if !math.IsNaN(r.powerKW) {
			values = append(values, r.powerKW)
		}
	}
	if len(values) == 0 || median(values) <= c.WattsThreshold {
		return false
	}
	for i := range raw {
		raw[i].powerKW /= 1000.0
	}
	return true
}

// resampleHourly deduplicates sorted raw samples (first wins) and projects
// them onto an exact hourly grid, forward-filling gaps and non-numeric cells.
// Leading missing values become 0.
func resampleHourly(raw []rawSample) types.Series {
	deduped := raw[:0]
	var lastTS time.Time
	for i, r := range raw {
		if i > 0 && r.ts.Equal(lastTS) {
			continue
		}
		deduped = append(deduped, r)
		lastTS = r.ts
	}

	start := deduped[0].ts.Truncate(time.Hour)
	end := deduped[len(deduped)-1].ts.Truncate(time.Hour)

	series := make(types.Series, 0, int(end.Sub(start)/time.Hour)+1)
	idx := 0
	last := 0.0
	for ts := start; !ts.After(end); ts = ts.Add(time.Hour) {
		// advance to the latest raw sample at or before this grid hour
		for idx < len(deduped) && !deduped[idx].ts.After(ts.Add(time.Hour-time.Nanosecond)) {
			if !math.IsNaN(deduped[idx].powerKW) {
				last = deduped[idx].powerKW
			}
			idx++
		}
		series = append(series, types.Sample{TS: ts, PowerKW: last})
	}
	return series
}

func findColumn(header []string, aliases []string) int {
	for _, alias := range aliases {
		for i, h := range header {
			if h == alias {
				return i
			}
		}
	}
	return -1
}

// timestampLayouts are tried in order when parsing uploaded timestamps.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02 15",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"2006/01/02 15:04",
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	// epoch seconds
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil && secs > 0 {
		return time.Unix(secs, 0).UTC(), nil
	}
	return time.Time{}, errors.New("unrecognized timestamp format")
}

func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty cell")
	}
	return strconv.ParseFloat(s, 64)
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// loadProfileHeaderOffset is the fixed number of rows preceding the header in
// a load-profile table.
const loadProfileHeaderOffset = 7

func (c *Canonicalizer) canonicalizeLoadProfile(t *Table) (Result, error) {
	header := t.headerAt(loadProfileHeaderOffset)
	nameCol := findColumn(header, []string{"carga"})
	powerCol := findColumn(header, []string{"potencia (w)"})
	if nameCol < 0 || powerCol < 0 {
		return Result{}, ErrNotRecognized
	}

	hourCols := make(map[int]int, 24) // hour -> column index
	for i, h := range header {
		if hr, err := strconv.Atoi(h); err == nil && hr >= 0 && hr <= 23 {
			hourCols[hr] = i
		}
	}

	var rules []types.ApplianceRule
	for _, row := range t.dataRows(loadProfileHeaderOffset) {
		if nameCol >= len(row) || powerCol >= len(row) {
			continue
		}
		name := strings.TrimSpace(row[nameCol])
		power, err := parseNumber(row[powerCol])
		if name == "" || err != nil || power == 0 {
			continue
		}
		var hours []int
		for hr := 0; hr < 24; hr++ {
			col, ok := hourCols[hr]
			if !ok || col >= len(row) {
				continue
			}
			if flag, err := parseNumber(row[col]); err == nil && flag == 1 {
				hours = append(hours, hr)
			}
		}
		if len(hours) == 0 {
			continue
		}
		rules = append(rules, types.ApplianceRule{
			Name:        name,
			Count:       1,
			UnitPowerW:  power,
			DaysPerWeek: 7,
			HoursActive: hours,
		})
	}
	if len(rules) == 0 {
		return Result{}, ErrDegenerateParse
	}

	year := c.Year
	if year == 0 {
		year = time.Now().Year()
	}
	series, err := profile.Synthesize(rules, year)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Series: series,
		Kind:   KindLoadProfile,
		Rules:  rules,
	}, nil
}
