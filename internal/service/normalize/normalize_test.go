package normalize_test

import (
	"testing"
	"time"

	"github.com/heyyrintu/mis-lifelong/internal/model"
	"github.com/heyyrintu/mis-lifelong/internal/service/normalize"
)

func TestFirstNonEmptyPrecedence(t *testing.T) {
	row := model.RawRow{
		"SALES Invoice QTY": "  ",
		"DELIVERY Note QTY": "7",
	}
	if got, want := normalize.FirstNonEmpty(row, normalize.InvoiceQtyColumns), "7"; got != want {
		t.Fatalf("FirstNonEmpty=%q, want %q", got, want)
	}

	row["SALES Invoice QTY"] = "5"
	if got, want := normalize.FirstNonEmpty(row, normalize.InvoiceQtyColumns), "5"; got != want {
		t.Fatalf("FirstNonEmpty=%q, want %q", got, want)
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"12.5", 12.5},
		{"", 0},
		{"abc", 0},
		{"-3", 0},
		{"1,250", 1250},
		{" 42 ", 42},
	}
	for _, tt := range tests {
		if got := normalize.Number(tt.in); got != tt.want {
			t.Errorf("Number(%q)=%v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestQuantityZeroCellFallsThrough(t *testing.T) {
	// A literal 0 in the primary column is not a real quantity; the next
	// candidate must be consulted.
	row := model.RawRow{
		"SALES Invoice QTY": "0",
		"DELIVERY Note QTY": "7",
	}
	if got, want := normalize.Quantity(row, normalize.InvoiceQtyColumns), 7.0; got != want {
		t.Fatalf("Quantity=%v, want %v", got, want)
	}

	row["DELIVERY Note QTY"] = "0"
	if got, want := normalize.Quantity(row, normalize.InvoiceQtyColumns), 0.0; got != want {
		t.Fatalf("Quantity with all-zero cells=%v, want %v", got, want)
	}
}

func TestRawNumberKeepsSign(t *testing.T) {
	if got, want := normalize.RawNumber("-3.5"), -3.5; got != want {
		t.Fatalf("RawNumber(-3.5)=%v, want %v", got, want)
	}
	if got, want := normalize.RawNumber("garbage"), 0.0; got != want {
		t.Fatalf("RawNumber(garbage)=%v, want %v", got, want)
	}
}

func TestDate(t *testing.T) {
	got := normalize.Date("2025-03-14")
	want := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("Date(2025-03-14)=%v, want %v", got, want)
	}

	if !normalize.Date("").IsZero() {
		t.Fatalf("Date(\"\") should be the zero time")
	}
	if !normalize.Date("not a date").IsZero() {
		t.Fatalf("Date(not a date) should be the zero time")
	}
}

func TestDateSeparatorFormsAreMonthFirst(t *testing.T) {
	want := time.Date(2025, 5, 6, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"05/06/2025", "05-06-2025", "5/6/2025", "05.06.2025"} {
		if got := normalize.Date(in); !got.Equal(want) {
			t.Errorf("Date(%q)=%v, want %v (month-first)", in, got, want)
		}
	}
}

func TestRowDerivesFields(t *testing.T) {
	raw := model.RawRow{
		"Customer Group":       " Blinkit Commerce ",
		"Customer":             "Blinkit Mumbai",
		"Transporter":          "DTDC",
		"Sales Order No":       "SO-1001",
		"SALES Invoice NO":     "INV-9",
		"Set Source Warehouse": "MH4 - Andheri",
		"LR Number":            "LR-77",
		"SALES Invoice QTY":    "10",
		"SO QTY":               "12",
		"SI Total CBM":         "1.25",
		"SO Date":              "2025-01-05",
		"SALES Invoice DATE":   "2025-01-06",
	}

	r := normalize.Row(raw)

	if got, want := r.CustomerGroup, "Blinkit Commerce"; got != want {
		t.Fatalf("CustomerGroup=%q, want %q", got, want)
	}
	if got, want := r.InvoiceNo, "INV-9"; got != want {
		t.Fatalf("InvoiceNo=%q, want %q", got, want)
	}
	if got, want := r.Warehouse, "MH4 - Andheri"; got != want {
		t.Fatalf("Warehouse=%q, want %q", got, want)
	}
	if got, want := r.TrackingNo, "LR-77"; got != want {
		t.Fatalf("TrackingNo=%q, want %q", got, want)
	}
	if got, want := r.InvoiceQty, 10.0; got != want {
		t.Fatalf("InvoiceQty=%v, want %v", got, want)
	}
	if got, want := r.SalesOrderQty, 12.0; got != want {
		t.Fatalf("SalesOrderQty=%v, want %v", got, want)
	}
	if got, want := r.VolumeCBM, 1.25; got != want {
		t.Fatalf("VolumeCBM=%v, want %v", got, want)
	}
	if r.OrderDate.IsZero() {
		t.Fatalf("OrderDate should be parsed")
	}
	if !r.HasTracking() {
		t.Fatalf("HasTracking should be true")
	}
}

func TestRowQuantityFallback(t *testing.T) {
	r := normalize.Row(model.RawRow{
		"DELIVERY Note QTY": "4",
	})
	if got, want := r.InvoiceQty, 4.0; got != want {
		t.Fatalf("InvoiceQty=%v, want %v", got, want)
	}

	// A zero-valued primary cell behaves like a missing one.
	r = normalize.Row(model.RawRow{
		"SALES Invoice QTY": "0",
		"DELIVERY Note QTY": "7",
		"SI Total CBM":      "0",
		"DN Total CBM":      "2.5",
	})
	if got, want := r.InvoiceQty, 7.0; got != want {
		t.Fatalf("InvoiceQty=%v, want %v", got, want)
	}
	if got, want := r.VolumeCBM, 2.5; got != want {
		t.Fatalf("VolumeCBM=%v, want %v", got, want)
	}
}

func TestGateDropsNegativeRows(t *testing.T) {
	raw := []model.RawRow{
		{"SALES Invoice QTY": "5", "SI Total CBM": "1.0"},
		{"SALES Invoice QTY": "-5"},
		{"SI Total CBM": "-0.5"},
		{"Per Unit CBM": "-1"},
		{"DELIVERY Note QTY": "3"},
	}

	kept, rep := normalize.Gate(raw)

	if got, want := len(kept), 2; got != want {
		t.Fatalf("kept=%d, want %d", got, want)
	}
	if got, want := rep.TotalRows, 5; got != want {
		t.Fatalf("TotalRows=%d, want %d", got, want)
	}
	if got, want := rep.DroppedRows, 3; got != want {
		t.Fatalf("DroppedRows=%d, want %d", got, want)
	}
	if got, want := rep.NegativeQtyRows, 1; got != want {
		t.Fatalf("NegativeQtyRows=%d, want %d", got, want)
	}
	if got, want := rep.NegativeCBMRows, 2; got != want {
		t.Fatalf("NegativeCBMRows=%d, want %d", got, want)
	}
	if rep.DropRate <= 0 {
		t.Fatalf("DropRate=%v, want > 0", rep.DropRate)
	}
}

func TestGateKeepsEverythingWhenClean(t *testing.T) {
	raw := []model.RawRow{
		{"SALES Invoice QTY": "1"},
		{"SALES Invoice QTY": "2"},
	}
	kept, rep := normalize.Gate(raw)
	if got, want := len(kept), 2; got != want {
		t.Fatalf("kept=%d, want %d", got, want)
	}
	if rep.DropRate != 0 {
		t.Fatalf("DropRate=%v, want 0", rep.DropRate)
	}
}
