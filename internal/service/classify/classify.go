// Package classify assigns each record its fulfillment channel and transport
// mode. The rule tables are a fixed, domain-specific set; they are evaluated
// in priority order and the first matching set wins, so every consumer of a
// record sees the same category.
package classify

import (
	"strings"

	"github.com/heyyrintu/mis-lifelong/internal/model"
)

// categoryRules are tested top to bottom against the lower-cased customer
// group; a substring hit on any pattern selects the set's category and stops
// evaluation. Order matters: "amazon b2c" must land in B2C before the plain
// "amazon" rule of E-Commerce can see it.
var categoryRules = []struct {
	category model.Category
	patterns []string
}{
	{model.CategoryB2C, []string{
		"decathlon", "flflipkart(b2c)", "snapmint", "shopify",
		"tatacliq", "amazon b2c", "pepperfry",
	}},
	{model.CategoryECommerce, []string{"amazon", "flipkart"}},
	{model.CategoryOffline, []string{
		"offline sales-b2b", "offline – gt", "offline - mt",
	}},
	{model.CategoryQuickCommerce, []string{
		"blinkit", "swiggy", "bigbasket", "zepto",
	}},
	{model.CategoryEBO, []string{"store 2-lucknow", "store3-zirakpur"}},
	{model.CategoryOthers, []string{
		"sales to vendor", "internal company", "others",
	}},
}

// Category maps a customer group to exactly one category. Unmatched input
// falls through to Others; the function is total and side-effect-free.
func Category(customerGroup string) model.Category {
	cg := strings.ToLower(customerGroup)
	for _, rule := range categoryRules {
		for _, pattern := range rule.patterns {
			if strings.Contains(cg, pattern) {
				return rule.category
			}
		}
	}
	return model.CategoryOthers
}

// Carrier lists for transport-mode classification. FTL names are checked
// first; the match is case-insensitive substring containment.
var (
	ftlCarriers = []string{
		"Loadit Supply Services Pvt Ltd",
		"SR ENTERPRISES",
		"Surya Freight Carrier",
		"Self Pick Up",
		"Loadit",
	}

	ptlCarriers = []string{
		"SKYLARK EXPRESS (DELHI) PVT LTD",
		"DTDC EXPRESS LIMITED",
		"Safexpress Private Limited",
		"V TRANS (INDIA) LIMITED",
		"DTDC Biker",
		"Safexpress",
		"DTDC",
		"Only Invoicing",
		"Skylark",
		"Self",
		"Safe Xpress",
		"V-Trans",
	}
)

// Transport maps a carrier name to FTL or PTL. Empty carriers and carriers
// in neither list are Unknown.
func Transport(transporter string) model.TransportMode {
	name := strings.ToLower(strings.TrimSpace(transporter))
	if name == "" {
		return model.TransportUnknown
	}
	for _, carrier := range ftlCarriers {
		if strings.Contains(name, strings.ToLower(carrier)) {
			return model.TransportFTL
		}
	}
	for _, carrier := range ptlCarriers {
		if strings.Contains(name, strings.ToLower(carrier)) {
			return model.TransportPTL
		}
	}
	return model.TransportUnknown
}

// Tag stamps category and transport mode onto every record in place and
// returns the slice for chaining.
func Tag(records []*model.Record) []*model.Record {
	for _, r := range records {
		r.Category = Category(r.CustomerGroup)
		r.Transport = Transport(r.Transporter)
	}
	return records
}
