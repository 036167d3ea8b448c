package model

// Category is one fulfillment channel. Every record belongs to exactly one of
// the six real categories; Total is a derived pseudo-category covering the
// whole record set and is never a classification outcome.
type Category string

const (
	CategoryB2C           Category = "b2c"
	CategoryECommerce     Category = "ecom"
	CategoryOffline       Category = "offline"
	CategoryQuickCommerce Category = "quickcom"
	CategoryEBO           Category = "ebo"
	CategoryOthers        Category = "others"
	CategoryTotal         Category = "total"
)

// Categories lists the six real categories in rule-priority order,
// without Total.
func Categories() []Category {
	return []Category{
		CategoryB2C,
		CategoryECommerce,
		CategoryOffline,
		CategoryQuickCommerce,
		CategoryEBO,
		CategoryOthers,
	}
}

// Label returns the display name used in exports and card headers.
func (c Category) Label() string {
	switch c {
	case CategoryB2C:
		return "B2C"
	case CategoryECommerce:
		return "E-Commerce"
	case CategoryOffline:
		return "Offline"
	case CategoryQuickCommerce:
		return "Quick-Commerce"
	case CategoryEBO:
		return "EBO"
	case CategoryOthers:
		return "Others"
	case CategoryTotal:
		return "Total"
	}
	return string(c)
}

// ParseCategory maps an API path/query value to a category. The boolean is
// false for anything outside the six real categories.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryB2C, CategoryECommerce, CategoryOffline,
		CategoryQuickCommerce, CategoryEBO, CategoryOthers:
		return Category(s), true
	}
	return "", false
}

// TransportMode is the truckload classification of a record's carrier.
type TransportMode string

const (
	TransportFTL     TransportMode = "ftl"
	TransportPTL     TransportMode = "ptl"
	TransportUnknown TransportMode = "unknown"
)

// TransportModes lists the two known modes. Unknown rows are excluded from
// transport-keyed aggregates.
func TransportModes() []TransportMode {
	return []TransportMode{TransportFTL, TransportPTL}
}
