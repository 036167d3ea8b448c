package report

import (
	"sort"
	"strings"

	"github.com/heyyrintu/mis-lifelong/internal/model"
)

// Priority bands the urgency of chasing a missing shipment document by the
// quantity stuck behind it.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// PriorityFor bands an invoiced quantity: 100+ high, 10+ medium, else low.
func PriorityFor(qty float64) Priority {
	switch {
	case qty >= 100:
		return PriorityHigh
	case qty >= 10:
		return PriorityMedium
	}
	return PriorityLow
}

func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	}
	return 1
}

// MissingEntry is one record awaiting its shipment document, with the
// category tag it was loaded with and its chase priority.
type MissingEntry struct {
	Record   *model.Record  `json:"record"`
	Category model.Category `json:"category"`
	Priority Priority       `json:"priority"`
}

// MissingView is the LR-missing read model: the undocumented subset with
// per-category counts and a worklist ordered by urgency.
type MissingView struct {
	Total      int                    `json:"total"`
	ByCategory map[model.Category]int `json:"byCategory"`
	Entries    []MissingEntry         `json:"entries"`
}

// Missing selects records without a tracking number, optionally scoped to one
// exact day against the invoice or delivery-note date. Entries are ordered
// newest order date first, then by priority, then by quantity descending.
func Missing(records []*model.Record, date string) *MissingView {
	view := &MissingView{
		ByCategory: make(map[model.Category]int, len(model.Categories())),
	}
	for _, c := range model.Categories() {
		view.ByCategory[c] = 0
	}

	for _, r := range records {
		if r.HasTracking() {
			continue
		}
		if date != "" && !strings.Contains(r.InvoiceDate, date) && !strings.Contains(r.DeliveryDate, date) {
			continue
		}
		view.Entries = append(view.Entries, MissingEntry{
			Record:   r,
			Category: r.Category,
			Priority: PriorityFor(r.InvoiceQty),
		})
		view.ByCategory[r.Category]++
	}
	view.Total = len(view.Entries)

	sort.SliceStable(view.Entries, func(i, j int) bool {
		a, b := view.Entries[i], view.Entries[j]
		if !a.Record.OrderDate.Equal(b.Record.OrderDate) {
			return a.Record.OrderDate.After(b.Record.OrderDate)
		}
		if a.Priority.rank() != b.Priority.rank() {
			return a.Priority.rank() > b.Priority.rank()
		}
		return a.Record.InvoiceQty > b.Record.InvoiceQty
	})

	return view
}
