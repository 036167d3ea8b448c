// Package aggregate computes all category and transport-mode statistics over
// a filtered record set in a single pass. The Total pseudo-category is
// accumulated in lock-step with the per-category buckets, not summed after
// the fact, so it is consistent with the union by construction.
package aggregate

import (
	"math"

	"github.com/heyyrintu/mis-lifelong/internal/model"
)

// Result is the immutable outcome of one aggregation run.
type Result struct {
	// ByCategory keys by the six categories plus Total.
	ByCategory map[model.Category]model.CategoryStats `json:"byCategory"`

	// ByCategoryMode keys by (category plus Total) × (FTL, PTL). Unknown
	// transport rows are excluded here but still counted in ByCategory.
	ByCategoryMode map[model.Category]map[model.TransportMode]model.OrderViewStats `json:"byCategoryMode"`
}

// categoryAcc is the working accumulator for one category. Distinct counts
// use set insertion of non-empty trimmed identifiers.
type categoryAcc struct {
	stats       model.CategoryStats
	invoices    map[string]struct{}
	salesOrders map[string]struct{}
}

func newCategoryAcc() *categoryAcc {
	return &categoryAcc{
		invoices:    map[string]struct{}{},
		salesOrders: map[string]struct{}{},
	}
}

func (a *categoryAcc) add(r *model.Record) {
	if r.InvoiceNo != "" {
		a.invoices[r.InvoiceNo] = struct{}{}
	}
	if r.SalesOrderNo != "" {
		a.salesOrders[r.SalesOrderNo] = struct{}{}
	}
	a.stats.InvoiceQty += r.InvoiceQty
	a.stats.SalesOrderQty += r.SalesOrderQty
	// Per-record shortfall, then summed. max(0, Σorder-Σinvoice) is not the
	// same number and is the wrong one.
	if diff := r.SalesOrderQty - r.InvoiceQty; diff > 0 {
		a.stats.QtyShortfall += diff
	}
	if r.VolumeCBM >= 0 {
		a.stats.VolumeCBM += r.VolumeCBM
	}
	if !r.HasTracking() {
		a.stats.MissingTracking++
	}
}

func (a *categoryAcc) finalize() model.CategoryStats {
	s := a.stats
	s.DistinctInvoices = len(a.invoices)
	s.DistinctSalesOrders = len(a.salesOrders)
	s.VolumeCBM = round2(s.VolumeCBM)
	return s
}

type orderAcc struct {
	qty         float64
	salesOrders map[string]struct{}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Compute runs the single-pass aggregation over the given records. Each
// record is classified exactly once (at load time); here its category tag is
// trusted and both the category bucket and the Total bucket are updated
// identically.
func Compute(records []*model.Record) *Result {
	buckets := map[model.Category]*categoryAcc{
		model.CategoryTotal: newCategoryAcc(),
	}
	orders := map[model.Category]map[model.TransportMode]*orderAcc{
		model.CategoryTotal: newOrderBucket(),
	}
	for _, c := range model.Categories() {
		buckets[c] = newCategoryAcc()
		orders[c] = newOrderBucket()
	}

	for _, r := range records {
		cat := r.Category
		if _, ok := buckets[cat]; !ok {
			cat = model.CategoryOthers
		}
		buckets[cat].add(r)
		buckets[model.CategoryTotal].add(r)

		if r.Transport == model.TransportUnknown {
			continue
		}
		for _, acc := range []*orderAcc{orders[cat][r.Transport], orders[model.CategoryTotal][r.Transport]} {
			if r.SalesOrderNo != "" {
				acc.salesOrders[r.SalesOrderNo] = struct{}{}
			}
			acc.qty += r.SalesOrderQty
		}
	}

	result := &Result{
		ByCategory:     make(map[model.Category]model.CategoryStats, len(buckets)),
		ByCategoryMode: make(map[model.Category]map[model.TransportMode]model.OrderViewStats, len(orders)),
	}
	for cat, acc := range buckets {
		result.ByCategory[cat] = acc.finalize()
	}
	for cat, byMode := range orders {
		out := make(map[model.TransportMode]model.OrderViewStats, len(byMode))
		for mode, acc := range byMode {
			// Labor units derive from the finished bucket total, never
			// incrementally per row.
			out[mode] = model.OrderViewStats{
				DistinctSalesOrders: len(acc.salesOrders),
				SalesOrderQty:       acc.qty,
				LaborUnits:          int(math.Floor(acc.qty / 1000)),
			}
		}
		result.ByCategoryMode[cat] = out
	}
	return result
}

func newOrderBucket() map[model.TransportMode]*orderAcc {
	bucket := make(map[model.TransportMode]*orderAcc, 2)
	for _, mode := range model.TransportModes() {
		bucket[mode] = &orderAcc{salesOrders: map[string]struct{}{}}
	}
	return bucket
}
