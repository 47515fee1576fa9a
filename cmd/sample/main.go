// Command sample writes a synthetic year of household consumption as a CSV or
// XLSX file that round-trips through the upload endpoint.
package main

import (
	"context"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/levenlabs/go-lflag"
	"github.com/loadlens/loadlens/pkg/export"
	"github.com/loadlens/loadlens/pkg/log"
	"github.com/loadlens/loadlens/pkg/types"
)

func main() {
	out := lflag.String("out", "sample_consumo.csv", "Output file (.csv or .xlsx)")
	year := lflag.String("year", "", "Calendar year to generate (defaults to the current year)")
	lflag.Configure()

	ctx := context.Background()

	y := time.Now().Year()
	if *year != "" {
		parsed, err := time.Parse("2006", *year)
		if err != nil {
			log.Ctx(ctx).ErrorContext(ctx, "invalid year", "year", *year)
			os.Exit(1)
		}
		y = parsed.Year()
	}

	log.Ctx(ctx).InfoContext(ctx, "generating sample consumption", "year", y, "out", *out)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	series := generateYear(y, rng)

	f, err := os.Create(*out)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to create output file", "error", err)
		os.Exit(1)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(*out)) {
	case ".xlsx":
		err = export.WriteSeriesXLSX(f, series)
	default:
		err = export.WriteSeriesCSV(f, series)
	}
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to write sample", "error", err)
		os.Exit(1)
	}

	log.Ctx(ctx).InfoContext(ctx, "sample written", "samples", len(series))
}

// generateYear builds an hourly series with morning and evening peaks, a
// mid-day lull, a weekend bump and some jitter.
func generateYear(year int, rng *rand.Rand) types.Series {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 23, 0, 0, 0, time.UTC)

	var series types.Series
	for ts := start; !ts.After(end); ts = ts.Add(time.Hour) {
		hour := ts.Hour()

		baseKW := 0.25
		switch {
		case hour >= 6 && hour < 9:
			baseKW = 0.9 // morning peak
		case hour >= 10 && hour < 15:
			baseKW = 0.45
		case hour >= 18 && hour < 22:
			baseKW = 1.4 // evening peak
		case hour >= 22:
			baseKW = 0.5
		}

		wd := ts.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			baseKW *= 1.15
		}

		// seasonal swing peaking mid-year
		seasonal := 1.0 + 0.2*math.Sin(2*math.Pi*float64(ts.YearDay())/365.0)

		jitter := (rng.Float64() * 0.1) - 0.05
		kw := baseKW*seasonal + jitter
		if kw < 0 {
			kw = 0
		}
		series = append(series, types.Sample{TS: ts, PowerKW: kw})
	}
	return series
}
