package types

// MonthLabels are the calendar-month labels used by the billing form and the
// billing report, in calendar order.
var MonthLabels = []string{
	"Ene", "Feb", "Mar", "Abr", "May", "Jun",
	"Jul", "Ago", "Sep", "Oct", "Nov", "Dic",
}

// ProfilePoint is one hour-of-day row of an averaged daily profile.
type ProfilePoint struct {
	Hour    int     `json:"hour"`
	PowerKW float64 `json:"powerKW"`
}

// LDCPoint is one row of a load-duration curve: a power value paired with the
// cumulative percentage of time at or above it.
type LDCPoint struct {
	PowerKW     float64 `json:"powerKW"`
	TimePercent float64 `json:"timePercent"`
}

// Heatmap is the weekly hour-by-day-of-week matrix of average power.
// Values[h][d] is the mean kW at hour h on weekday d, Monday first.
type Heatmap struct {
	Days   []string       `json:"days"`
	Values [24][7]float64 `json:"values"`
	Counts [24][7]int     `json:"-"`
}

// ProfileMetrics are the scalar summary metrics of a derived profile. The
// monthly and annual figures are simple extrapolations from one averaged day,
// not calendar-aware.
type ProfileMetrics struct {
	DailyTotalKWH float64 `json:"dailyTotalKWH"`
	PeakKW        float64 `json:"peakKW"`
	MeanKW        float64 `json:"meanKW"`
	MonthlyKWH    float64 `json:"monthlyKWH"`
	AnnualKWH     float64 `json:"annualKWH"`

	// Reference values over the full adjusted series, used by the annual LDC.
	SeriesPeakKW   float64 `json:"seriesPeakKW"`
	SeriesMeanKW   float64 `json:"seriesMeanKW"`
	SeriesTotalKWH float64 `json:"seriesTotalKWH"`
}

// DerivedProfile is the full output of the metrics engine, recomputed from
// the canonical series and scenario parameters on every read.
type DerivedProfile struct {
	Hourly    []ProfilePoint `json:"hourly"`
	Daytime   []ProfilePoint `json:"daytime"`
	Nighttime []ProfilePoint `json:"nighttime"`
	AnnualLDC []LDCPoint     `json:"annualLDC"`
	DailyLDC  []LDCPoint     `json:"dailyLDC"`
	Heatmap   Heatmap        `json:"heatmap"`
	Metrics   ProfileMetrics `json:"metrics"`
}

// MonthlyBill maps one calendar month label to its billed energy. A zero
// value means "not provided".
type MonthlyBill struct {
	Month string  `json:"month"`
	KWH   float64 `json:"kwh"`
}

// BillingSummary aggregates a twelve-month billing form. Only months with a
// positive value participate in the statistics.
type BillingSummary struct {
	TotalAnnualKWH    float64       `json:"totalAnnualKWH"`
	AverageMonthlyKWH float64       `json:"averageMonthlyKWH"`
	MonthsProvided    int           `json:"monthsProvided"`
	// Rows holds every submitted month sorted descending by consumption.
	Rows []MonthlyBill `json:"rows"`
}
