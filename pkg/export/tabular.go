package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/loadlens/loadlens/pkg/types"
	"github.com/xuri/excelize/v2"
)

// WriteSeriesCSV writes the full adjusted hourly series as delimited text.
func WriteSeriesCSV(w io.Writer, s types.Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{ColumnTimestamp, ColumnPowerKW}); err != nil {
		return fmt.Errorf("%w: %v", ErrEncodingFailure, err)
	}
	for _, smp := range s {
		row := []string{
			smp.TS.Format(timestampLayout),
			strconv.FormatFloat(smp.PowerKW, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("%w: %v", ErrEncodingFailure, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrEncodingFailure, err)
	}
	return nil
}

// WriteSeriesXLSX writes the full adjusted hourly series as a spreadsheet.
func WriteSeriesXLSX(w io.Writer, s types.Series) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	if err := f.SetCellValue(sheet, "A1", ColumnTimestamp); err != nil {
		return fmt.Errorf("%w: %v", ErrEncodingFailure, err)
	}
	if err := f.SetCellValue(sheet, "B1", ColumnPowerKW); err != nil {
		return fmt.Errorf("%w: %v", ErrEncodingFailure, err)
	}
	for i, smp := range s {
		row := i + 2
		tsCell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrEncodingFailure, err)
		}
		powerCell, err := excelize.CoordinatesToCellName(2, row)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrEncodingFailure, err)
		}
		if err := f.SetCellValue(sheet, tsCell, smp.TS.Format(timestampLayout)); err != nil {
			return fmt.Errorf("%w: %v", ErrEncodingFailure, err)
		}
		if err := f.SetCellValue(sheet, powerCell, smp.PowerKW); err != nil {
			return fmt.Errorf("%w: %v", ErrEncodingFailure, err)
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("%w: %v", ErrEncodingFailure, err)
	}
	return nil
}

// WriteLDCCSV writes a load-duration curve as delimited text.
func WriteLDCCSV(w io.Writer, curve []types.LDCPoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{ColumnTimePercent, ColumnPowerKW}); err != nil {
		return fmt.Errorf("%w: %v", ErrEncodingFailure, err)
	}
	for _, p := range curve {
		row := []string{
			strconv.FormatFloat(p.TimePercent, 'f', 4, 64),
			strconv.FormatFloat(p.PowerKW, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("%w: %v", ErrEncodingFailure, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrEncodingFailure, err)
	}
	return nil
}
