// Package normalize converts raw spreadsheet rows into typed records. Every
// derived field follows an explicit first-non-empty precedence list over its
// candidate source columns; malformed input degrades to zero/empty instead of
// failing the row.
package normalize

import (
	"strconv"
	"strings"
	"time"

	"github.com/heyyrintu/mis-lifelong/internal/model"
)

// Candidate source columns per derived field, in precedence order. These
// lists are part of the contract with upstream spreadsheets; the first
// non-empty cell wins.
var (
	InvoiceQtyColumns = []string{"SALES Invoice QTY", "DELIVERY Note QTY"}

	SalesOrderQtyColumns = []string{
		"SALES Order QTY",
		"SO QTY",
		"Sales Order QTY",
		"Sales Order Qty",
		"SO Quantity",
		"SALES ORDER QUANTITY",
		"ORDER QTY",
		"Order Qty",
	}

	VolumeCBMColumns = []string{"SI Total CBM", "DN Total CBM"}

	TrackingNoColumns = []string{
		"SHIPMENT Awb NUMBER",
		"Shipment Awb Number",
		"AWB Number",
		"LR Number",
		"Tracking Number",
		"Docket Number",
	}

	InvoiceNoColumns = []string{"SALES Invoice NO", "DELIVERY Note NO"}

	WarehouseColumns = []string{
		"Set Source Warehouse",
		"Source Warehouse",
		"Warehouse",
		"Set Warehouse",
		"SourceWarehouse",
		"Source_Warehouse",
		"Set_Source_Warehouse",
		"Warehouse Code",
	}
)

// Date layouts accepted for "SO Date". Slash/dash/dot forms are month-first
// throughout, the way the source system reads them. Anything else resolves to
// the zero time sentinel.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"01-02-2006",
	"1/2/2006",
	"1-2-2006",
	"01.02.2006",
}

// FirstNonEmpty returns the first non-blank cell among the candidate columns.
// Used for the string-identifier fields, where "0" is a real value.
func FirstNonEmpty(row model.RawRow, columns []string) string {
	for _, col := range columns {
		if v := strings.TrimSpace(row[col]); v != "" {
			return v
		}
	}
	return ""
}

// Quantity resolves a numeric field across its candidate columns. A cell that
// is blank or parses to zero falls through to the next candidate; only a
// non-zero value counts as present. Exhausted candidates yield 0.
func Quantity(row model.RawRow, columns []string) float64 {
	for _, col := range columns {
		if v := Number(row[col]); v != 0 {
			return v
		}
	}
	return 0
}

// Number parses a cell into a non-negative quantity. Blank, non-numeric and
// negative values all degrade to 0. Thousands separators and stray currency
// characters are stripped before a second parse attempt.
func Number(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		v, err = strconv.ParseFloat(stripNonNumeric(s), 64)
		if err != nil {
			return 0
		}
	}
	if v < 0 {
		return 0
	}
	return v
}

// RawNumber parses a cell keeping its sign, for the load-time negative gate.
// Blank and non-numeric cells parse to 0.
func RawNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		v, err = strconv.ParseFloat(stripNonNumeric(s), 64)
		if err != nil {
			return 0
		}
	}
	return v
}

func stripNonNumeric(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" || out == "-" {
		return "0"
	}
	return out
}

// Date parses a date cell against the accepted layouts. Missing or
// unparseable dates return the zero time, which sorts as the oldest value.
func Date(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Row normalizes a single raw row. Pure aside from the one-time computation
// of derived fields, which are cached on the returned record.
func Row(raw model.RawRow) *model.Record {
	return &model.Record{
		CustomerGroup: strings.TrimSpace(raw["Customer Group"]),
		Customer:      strings.TrimSpace(raw["Customer"]),
		Transporter:   strings.TrimSpace(raw["Transporter"]),
		SalesOrderNo:  strings.TrimSpace(raw["Sales Order No"]),
		InvoiceNo:     FirstNonEmpty(raw, InvoiceNoColumns),
		Warehouse:     FirstNonEmpty(raw, WarehouseColumns),
		TrackingNo:    FirstNonEmpty(raw, TrackingNoColumns),

		InvoiceQty:    Quantity(raw, InvoiceQtyColumns),
		SalesOrderQty: Quantity(raw, SalesOrderQtyColumns),
		VolumeCBM:     Quantity(raw, VolumeCBMColumns),
		PerUnitCBM:    Number(raw["Per Unit CBM"]),

		OrderDate:    Date(raw["SO Date"]),
		InvoiceDate:  strings.TrimSpace(raw["SALES Invoice DATE"]),
		DeliveryDate: strings.TrimSpace(raw["DELIVERY Note DATE"]),

		Raw: raw,
	}
}

// Rows normalizes a full raw dataset in input order.
func Rows(raw []model.RawRow) []*model.Record {
	records := make([]*model.Record, 0, len(raw))
	for _, r := range raw {
		records = append(records, Row(r))
	}
	return records
}
