// Package export encodes analysis results as delimited text, spreadsheets,
// raster charts and PDF reports. Column headers and report labels are part of
// the observable contract and are preserved verbatim.
package export

import "errors"

// ErrEncodingFailure wraps failures of a rendering or encoding backend.
// Export failures are non-fatal and never touch session state.
var ErrEncodingFailure = errors.New("export encoding failed")

// Verbatim artifact labels.
const (
	ColumnTimestamp   = "Timestamp"
	ColumnPowerKW     = "Potencia_kW"
	ColumnHour        = "Hora"
	ColumnMonth       = "Mes"
	ColumnConsumption = "Consumo (kWh)"
	ColumnTimePercent = "Porcentaje_Tiempo"
)

const timestampLayout = "2006-01-02 15:04:05"
