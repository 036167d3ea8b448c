// Package report builds the per-channel export tables. Each channel keeps the
// column shape its consumers expect, so the six builders stay separate even
// where they overlap. Membership comes from the category tag stamped at load
// time; builders never re-classify.
package report

import (
	"math"
	"strconv"
	"strings"

	"github.com/heyyrintu/mis-lifelong/internal/model"
)

// Report is one ready-to-export channel table. Row cells are positionally
// aligned with Headers; numeric cells stay typed so spreadsheet consumers get
// numbers, not text.
type Report struct {
	Category model.Category `json:"category"`
	Title    string         `json:"title"`
	Headers  []string       `json:"headers"`
	Rows     [][]any        `json:"rows"`
}

// Build assembles the export table for one category over the given records.
// Records tagged with other categories are skipped; the input order is kept.
func Build(category model.Category, records []*model.Record) *Report {
	shape := shapeFor(category)

	rep := &Report{
		Category: category,
		Title:    category.Label() + " Report",
		Headers:  shape.headers,
		Rows:     make([][]any, 0, len(records)),
	}
	for _, r := range records {
		if r.Category != category {
			continue
		}
		rep.Rows = append(rep.Rows, shape.row(r))
	}
	return rep
}

// BuildAll assembles all six channel tables in category priority order.
func BuildAll(records []*model.Record) []*Report {
	reports := make([]*Report, 0, len(model.Categories()))
	for _, c := range model.Categories() {
		reports = append(reports, Build(c, records))
	}
	return reports
}

type reportShape struct {
	headers []string
	row     func(r *model.Record) []any
}

func shapeFor(category model.Category) reportShape {
	switch category {
	case model.CategoryB2C, model.CategoryECommerce:
		return reportShape{
			headers: []string{
				"Customer Group", "Vehicle Series", "Dispatch Date",
				"Customer Name", "Transporter Name", "Vehicle No", "LR No.",
				"Invoice No", "Invoice Date", "Invoice SKU", "Invoice Qty",
				"Total CBM", "Number of Boxes",
			},
			row: func(r *model.Record) []any {
				return []any{
					r.CustomerGroup, vehicleNo(r), dispatchDate(r),
					r.Customer, r.Transporter, vehicleNo(r), r.TrackingNo,
					r.InvoiceNo, r.InvoiceDate, skuWithFallback(r), r.InvoiceQty,
					FormatCBM(r.VolumeCBM), Boxes(r.InvoiceQty),
				}
			},
		}
	case model.CategoryQuickCommerce:
		return reportShape{
			headers: []string{
				"Customer Group", "Transporter Name", "LR No.", "Invoice No",
				"Invoice Date", "Invoice SKU", "Invoice Qty", "Per Unit CBM",
				"Total CBM", "Number of Boxes",
			},
			row: func(r *model.Record) []any {
				return []any{
					r.CustomerGroup, r.Transporter, r.TrackingNo, r.InvoiceNo,
					r.InvoiceDate, sku(r), r.InvoiceQty, FormatCBM(r.PerUnitCBM),
					FormatCBM(r.VolumeCBM), Boxes(r.InvoiceQty),
				}
			},
		}
	case model.CategoryOffline:
		return reportShape{
			headers: []string{
				"Customer", "Customer Group", "Transporter Name", "LR No.",
				"Vehicle No", "Sales Order No", "Invoice No", "Invoice Date",
				"Invoice SKU", "Invoice Qty", "Per Unit CBM", "Total CBM",
				"Pickup Date", "Delivered Date", "Number of Boxes",
			},
			row: func(r *model.Record) []any {
				return []any{
					r.Customer, r.CustomerGroup, r.Transporter, r.TrackingNo,
					vehicleNo(r), r.SalesOrderNo, r.InvoiceNo, r.InvoiceDate,
					sku(r), r.InvoiceQty, FormatCBM(r.PerUnitCBM), FormatCBM(r.VolumeCBM),
					pickupDate(r), deliveredDate(r), Boxes(r.InvoiceQty),
				}
			},
		}
	case model.CategoryEBO:
		return reportShape{
			headers: []string{
				"Store Name", "Customer", "Transporter Name", "LR No.",
				"Vehicle No", "Sales Order No", "Invoice No", "Invoice Date",
				"Invoice SKU", "Invoice Qty", "Per Unit CBM", "Total CBM",
				"Pickup Date", "Delivered Date", "Number of Boxes",
			},
			row: func(r *model.Record) []any {
				return []any{
					r.CustomerGroup, r.Customer, r.Transporter, r.TrackingNo,
					vehicleNo(r), r.SalesOrderNo, r.InvoiceNo, r.InvoiceDate,
					sku(r), r.InvoiceQty, FormatCBM(r.PerUnitCBM), FormatCBM(r.VolumeCBM),
					pickupDate(r), deliveredDate(r), Boxes(r.InvoiceQty),
				}
			},
		}
	default:
		return reportShape{
			headers: []string{
				"Category", "Customer", "Transporter Name", "LR No.",
				"Vehicle No", "Sales Order No", "Invoice No", "Invoice Date",
				"Invoice SKU", "Invoice Qty", "Total CBM", "Pickup Date",
				"Delivered Date", "Number of Boxes",
			},
			row: func(r *model.Record) []any {
				return []any{
					r.CustomerGroup, r.Customer, r.Transporter, r.TrackingNo,
					vehicleNo(r), r.SalesOrderNo, r.InvoiceNo, r.InvoiceDate,
					sku(r), r.InvoiceQty, FormatCBM(r.VolumeCBM),
					pickupDate(r), deliveredDate(r), Boxes(r.InvoiceQty),
				}
			},
		}
	}
}

// Boxes derives the box count from a shipped quantity. Any shipment occupies
// at least one box.
func Boxes(qty float64) int {
	return int(math.Max(1, math.Ceil(qty/20)))
}

// FormatCBM renders a cubic-meter volume with exactly two decimals.
func FormatCBM(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func vehicleNo(r *model.Record) string {
	return strings.TrimSpace(r.Raw["SHIPMENT Vehicle NO"])
}

// dispatchDate prefers the shipment pickup date, falling back to the delivery
// note date when pickup was never recorded.
func dispatchDate(r *model.Record) string {
	if v := strings.TrimSpace(r.Raw["SHIPMENT Pickup DATE"]); v != "" {
		return v
	}
	return r.DeliveryDate
}

func pickupDate(r *model.Record) string {
	return strings.TrimSpace(r.Raw["SHIPMENT Pickup DATE"])
}

func deliveredDate(r *model.Record) string {
	return strings.TrimSpace(r.Raw["DELIVERED Date"])
}

func sku(r *model.Record) string {
	return strings.TrimSpace(r.Raw["SO Item"])
}

// skuWithFallback serves the parcel-channel shapes, where the content
// description substitutes for a missing item code.
func skuWithFallback(r *model.Record) string {
	if v := sku(r); v != "" {
		return v
	}
	return strings.TrimSpace(r.Raw["Description of Content"])
}
