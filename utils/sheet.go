package utils

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet is a header row plus data rows, keyed by lower-cased header name.
type Sheet struct {
	Header []string
	Rows   []SheetRow
}

// SheetRow is one data row. Line is the 1-based row number in the file.
type SheetRow struct {
	Line   int
	Values map[string]string
}

// Get returns the trimmed cell under header name, "" when absent.
func (r SheetRow) Get(name string) string {
	return strings.TrimSpace(r.Values[strings.ToLower(name)])
}

func (r SheetRow) IsBlank() bool {
	for _, v := range r.Values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

var ErrEmptySheet = errors.New("file must contain header and at least one data row")

// ReadSheet picks the reader by file extension: .csv or .xlsx.
func ReadSheet(filename string, r io.Reader) (*Sheet, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ReadCSV(r)
	case ".xlsx":
		return ReadXLSX(r)
	default:
		return nil, fmt.Errorf("unsupported file type %q, only .csv and .xlsx are allowed", filepath.Ext(filename))
	}
}

func ReadCSV(r io.Reader) (*Sheet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return buildSheet(records)
}

// ReadXLSX reads the first sheet of the workbook.
func ReadXLSX(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("no sheets found in Excel file")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	return buildSheet(rows)
}

func buildSheet(records [][]string) (*Sheet, error) {
	if len(records) < 2 {
		return nil, ErrEmptySheet
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		// spreadsheets saved as UTF-8 CSV often start with a BOM
		h = strings.TrimPrefix(h, "\ufeff")
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	sheet := &Sheet{Header: header, Rows: make([]SheetRow, 0, len(records)-1)}
	for i, record := range records[1:] {
		values := make(map[string]string, len(header))
		for col, name := range header {
			if name == "" || col >= len(record) {
				continue
			}
			values[name] = record[col]
		}
		sheet.Rows = append(sheet.Rows, SheetRow{Line: i + 2, Values: values})
	}
	return sheet, nil
}

// HasColumns reports the first required header missing from the sheet.
func (s *Sheet) HasColumns(required ...string) error {
	present := make(map[string]bool, len(s.Header))
	for _, h := range s.Header {
		present[h] = true
	}
	for _, col := range required {
		if !present[col] {
			return fmt.Errorf("missing column %q", col)
		}
	}
	return nil
}

// WriteCSVTemplate writes a header-only CSV.
func WriteCSVTemplate(w io.Writer, header []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes header and rows into Sheet1 of a new workbook.
func WriteXLSX(w io.Writer, header []string, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := "Sheet1"

	for col, h := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for i, row := range rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return f.Write(w)
}
