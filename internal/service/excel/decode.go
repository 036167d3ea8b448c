// Package excel decodes uploaded workbooks and CSV files into raw rows keyed
// by header text. Decoding stays dumb on purpose: precedence lists, clamping
// and classification all happen downstream in normalize and classify.
package excel

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/heyyrintu/mis-lifelong/internal/model"
)

var (
	// ErrNoHeader means the sheet has no header row to key columns by.
	ErrNoHeader = errors.New("missing header row")

	// ErrEmptyDataset means the sheet has a header but zero data rows.
	ErrEmptyDataset = errors.New("no data rows")
)

// DecodeWorkbook reads the first sheet of an xlsx workbook into raw rows. The
// first row is the header; short data rows leave their trailing columns
// absent rather than empty-string present.
func DecodeWorkbook(reader io.Reader) ([]model.RawRow, error) {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoHeader
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	return rowsToRaw(rows)
}

// DecodeCSV reads a comma-separated file into raw rows, header row first.
func DecodeCSV(reader io.Reader) ([]model.RawRow, error) {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	return rowsToRaw(rows)
}

func rowsToRaw(rows [][]string) ([]model.RawRow, error) {
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}
	if len(rows) == 1 {
		return nil, ErrEmptyDataset
	}

	header := make([]string, len(rows[0]))
	for i, col := range rows[0] {
		header[i] = strings.TrimSpace(col)
	}

	out := make([]model.RawRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		raw := make(model.RawRow, len(header))
		for i, cell := range row {
			if i >= len(header) || header[i] == "" {
				continue
			}
			raw[header[i]] = cell
		}
		out = append(out, raw)
	}

	if len(out) == 0 {
		return nil, ErrEmptyDataset
	}
	return out, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
