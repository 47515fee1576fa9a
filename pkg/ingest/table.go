package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table is a generic two-dimensional grid of cells as read from an uploaded
// file. Recognition decides later which row (if any) is the header.
type Table struct {
	Cells [][]string
}

// headerAt returns the row at the given offset normalized for matching
// (lowercased, trimmed, pandas-style ".N" duplicate suffix stripped), or nil
// if the table has no such row.
func (t *Table) headerAt(offset int) []string {
	if offset >= len(t.Cells) {
		return nil
	}
	header := make([]string, len(t.Cells[offset]))
	for i, c := range t.Cells[offset] {
		c = strings.TrimSpace(strings.ToLower(c))
		if dot := strings.LastIndex(c, "."); dot > 0 {
			if isDigits(c[dot+1:]) {
				c = c[:dot]
			}
		}
		header[i] = c
	}
	return header
}

// dataRows returns the rows following the header at the given offset.
func (t *Table) dataRows(offset int) [][]string {
	if offset+1 >= len(t.Cells) {
		return nil
	}
	return t.Cells[offset+1:]
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ReadCSV decodes a delimited text stream into a Table. Rows may have varying
// field counts.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return &Table{Cells: rows}, nil
}

// ReadXLSX decodes the first sheet of a spreadsheet stream into a Table.
func ReadXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return &Table{Cells: rows}, nil
}

// ReadTable decodes an uploaded file into a Table, picking the decoder from
// the file extension and falling back to the other on structural failure.
func ReadTable(filename string, r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	// spreadsheets are zip containers; the magic beats the extension
	isZip := bytes.HasPrefix(data, []byte("PK\x03\x04"))
	ext := strings.ToLower(filepath.Ext(filename))
	if isZip || ext == ".xlsx" || ext == ".xls" {
		if t, err := ReadXLSX(bytes.NewReader(data)); err == nil {
			return t, nil
		}
		return ReadCSV(bytes.NewReader(data))
	}
	if t, err := ReadCSV(bytes.NewReader(data)); err == nil {
		return t, nil
	}
	return ReadXLSX(bytes.NewReader(data))
}
