package excel_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/heyyrintu/mis-lifelong/internal/service/excel"
)

func buildWorkbook(t *testing.T, rows [][]string) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return &buf
}

func TestDecodeWorkbook(t *testing.T) {
	buf := buildWorkbook(t, [][]string{
		{"Customer Group", "SALES Invoice QTY", "Sales Order No"},
		{"Blinkit", "5", "SO-1"},
		{"Amazon", "3", "SO-2"},
	})

	rows, err := excel.DecodeWorkbook(buf)
	if err != nil {
		t.Fatalf("DecodeWorkbook: %v", err)
	}
	if got, want := len(rows), 2; got != want {
		t.Fatalf("rows=%d, want %d", got, want)
	}
	if got, want := rows[0]["Customer Group"], "Blinkit"; got != want {
		t.Fatalf("rows[0][Customer Group]=%q, want %q", got, want)
	}
	if got, want := rows[1]["SALES Invoice QTY"], "3"; got != want {
		t.Fatalf("rows[1][SALES Invoice QTY]=%q, want %q", got, want)
	}
}

func TestDecodeWorkbookShortRows(t *testing.T) {
	buf := buildWorkbook(t, [][]string{
		{"Customer Group", "SALES Invoice QTY"},
		{"Blinkit"},
	})

	rows, err := excel.DecodeWorkbook(buf)
	if err != nil {
		t.Fatalf("DecodeWorkbook: %v", err)
	}
	if _, present := rows[0]["SALES Invoice QTY"]; present {
		t.Fatalf("missing trailing cell should be absent, got %+v", rows[0])
	}
}

func TestDecodeWorkbookSkipsBlankRows(t *testing.T) {
	buf := buildWorkbook(t, [][]string{
		{"Customer Group"},
		{"Blinkit"},
		{""},
		{"Amazon"},
	})

	rows, err := excel.DecodeWorkbook(buf)
	if err != nil {
		t.Fatalf("DecodeWorkbook: %v", err)
	}
	if got, want := len(rows), 2; got != want {
		t.Fatalf("rows=%d, want %d", got, want)
	}
}

func TestDecodeWorkbookHeaderOnly(t *testing.T) {
	buf := buildWorkbook(t, [][]string{
		{"Customer Group", "SALES Invoice QTY"},
	})

	_, err := excel.DecodeWorkbook(buf)
	if !errors.Is(err, excel.ErrEmptyDataset) {
		t.Fatalf("err=%v, want ErrEmptyDataset", err)
	}
}

func TestDecodeCSV(t *testing.T) {
	src := strings.Join([]string{
		"Customer Group,SALES Invoice QTY,Sales Order No",
		"Blinkit,5,SO-1",
		"Amazon,3,SO-2",
	}, "\n")

	rows, err := excel.DecodeCSV(strings.NewReader(src))
	if err != nil {
		t.Fatalf("DecodeCSV: %v", err)
	}
	if got, want := len(rows), 2; got != want {
		t.Fatalf("rows=%d, want %d", got, want)
	}
	if got, want := rows[1]["Sales Order No"], "SO-2"; got != want {
		t.Fatalf("rows[1][Sales Order No]=%q, want %q", got, want)
	}
}

func TestDecodeCSVEmpty(t *testing.T) {
	_, err := excel.DecodeCSV(strings.NewReader(""))
	if !errors.Is(err, excel.ErrNoHeader) {
		t.Fatalf("err=%v, want ErrNoHeader", err)
	}
}

func TestDecodeWorkbookGarbage(t *testing.T) {
	_, err := excel.DecodeWorkbook(strings.NewReader("not an xlsx file"))
	if err == nil {
		t.Fatalf("expected error for non-xlsx input")
	}
}
