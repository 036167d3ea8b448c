// Package exporter writes report tables into xlsx workbooks. Workbooks are
// built in memory and streamed to the response; nothing touches disk.
package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/heyyrintu/mis-lifelong/internal/model"
	"github.com/heyyrintu/mis-lifelong/internal/service/report"
)

const defaultSheet = "Sheet1"

// ReportWorkbook writes one channel report as a single-sheet workbook.
func ReportWorkbook(rep *report.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := writeReportSheet(f, defaultSheet, rep); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := f.SetSheetName(defaultSheet, rep.Title); err != nil {
		_ = f.Close()
		return nil, err
	}
	f.SetActiveSheet(0)
	return f, nil
}

// AllReportsWorkbook writes every channel report into one workbook, a sheet
// per channel in category priority order.
func AllReportsWorkbook(reports []*report.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	for i, rep := range reports {
		sheet := rep.Category.Label()
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet); err != nil {
				_ = f.Close()
				return nil, err
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				_ = f.Close()
				return nil, err
			}
		}
		if err := writeReportSheet(f, sheet, rep); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

var missingHeaders = []string{
	"Category", "Priority", "Customer Group", "Customer", "Transporter",
	"Sales Order No", "Invoice No", "Invoice Date", "Warehouse",
	"Sales Order Qty", "Invoice Qty",
}

// MissingWorkbook writes the LR-missing worklist, keeping the view's
// urgency ordering.
func MissingWorkbook(view *report.MissingView) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "LR Missing"
	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		_ = f.Close()
		return nil, err
	}

	if err := writeHeader(f, sheet, missingHeaders); err != nil {
		_ = f.Close()
		return nil, err
	}
	for i, entry := range view.Entries {
		r := entry.Record
		row := []any{
			entry.Category.Label(), string(entry.Priority), r.CustomerGroup,
			r.Customer, r.Transporter, r.SalesOrderNo, r.InvoiceNo,
			r.InvoiceDate, r.Warehouse, r.SalesOrderQty, r.InvoiceQty,
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	autoWidth(f, sheet, len(missingHeaders))
	f.SetActiveSheet(0)
	return f, nil
}

func writeReportSheet(f *excelize.File, sheet string, rep *report.Report) error {
	if err := writeHeader(f, sheet, rep.Headers); err != nil {
		return err
	}
	for i, row := range rep.Rows {
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	autoWidth(f, sheet, len(rep.Headers))
	return nil
}

func writeHeader(f *excelize.File, sheet string, headers []string) error {
	cells := make([]any, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	if err := writeRow(f, sheet, 1, cells); err != nil {
		return err
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", end, style)
}

func writeRow(f *excelize.File, sheet string, rowNum int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("invalid row %d: %w", rowNum, err)
	}
	return f.SetSheetRow(sheet, cell, &cells)
}

func autoWidth(f *excelize.File, sheet string, cols int) {
	for i := 1; i <= cols; i++ {
		name, err := excelize.ColumnNumberToName(i)
		if err != nil {
			continue
		}
		_ = f.SetColWidth(sheet, name, name, 18)
	}
}

// Filename builds the download name for a channel export.
func Filename(category model.Category) string {
	return fmt.Sprintf("%s-report.xlsx", string(category))
}
