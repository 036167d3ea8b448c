// Package dataset implements subset selection and ordering over the loaded
// records: the date/month filters, the cascading warehouse filters and the
// shared order-date sort contract. Filters are cheap to re-invoke; they
// allocate a fresh slice and never mutate records.
package dataset

import (
	"strings"

	"github.com/heyyrintu/mis-lifelong/internal/model"
	"github.com/heyyrintu/mis-lifelong/internal/service/warehouse"
)

// Apply selects the record subset matching the filter. Warehouse filters
// narrow progressively: the area-code filter only applies under a concrete
// location, the warehouse filter only under a concrete location and area
// code; "all" at any level disables everything beneath it.
func Apply(records []*model.Record, f model.Filter) []*model.Record {
	out := make([]*model.Record, 0, len(records))
	for _, r := range records {
		if !matchDate(r, f) {
			continue
		}
		out = append(out, r)
	}

	if !isAll(f.Location) {
		out = keep(out, func(r *model.Record) bool {
			if r.Warehouse == "" {
				return false
			}
			location, _ := warehouse.Resolve(r.Warehouse)
			return location == f.Location
		})
		if !isAll(f.AreaCode) {
			out = keep(out, func(r *model.Record) bool {
				return warehouse.ExtractCode(r.Warehouse) == f.AreaCode
			})
			if !isAll(f.Warehouse) {
				out = keep(out, func(r *model.Record) bool {
					return r.Warehouse == f.Warehouse
				})
			}
		}
	}

	return out
}

func isAll(v string) bool {
	return v == "" || v == model.FilterAll
}

// matchDate applies the date (exact day) or month (year-month) filter against
// the invoice and delivery-note date strings, as substring containment on the
// normalized YYYY-MM-DD prefix.
func matchDate(r *model.Record, f model.Filter) bool {
	switch {
	case f.Date != "":
		return strings.Contains(r.InvoiceDate, f.Date) ||
			strings.Contains(r.DeliveryDate, f.Date)
	case f.Month != "":
		return strings.HasPrefix(r.InvoiceDate, f.Month) ||
			strings.HasPrefix(r.DeliveryDate, f.Month)
	}
	return true
}

func keep(records []*model.Record, pred func(*model.Record) bool) []*model.Record {
	out := records[:0]
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}
