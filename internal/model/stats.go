package model

// CategoryStats is the dashboard read model for one category (or Total) over
// one aggregation run. Instances are created fresh per run and never mutated
// after the pass completes.
type CategoryStats struct {
	InvoiceQty          float64 `json:"invoiceQty"`
	SalesOrderQty       float64 `json:"salesOrderQty"`
	DistinctInvoices    int     `json:"distinctInvoices"`
	DistinctSalesOrders int     `json:"distinctSalesOrders"`

	// QtyShortfall accumulates max(0, salesOrderQty-invoiceQty) per record.
	// It is not derivable from the aggregate totals.
	QtyShortfall float64 `json:"qtyShortfall"`

	// VolumeCBM is rounded to two decimals at read time only.
	VolumeCBM float64 `json:"volumeCBM"`

	MissingTracking int `json:"missingTracking"`
}

// OrderViewStats is the order-view read model for one (category, transport
// mode) bucket. Rows with an unknown transport mode never reach it.
type OrderViewStats struct {
	DistinctSalesOrders int     `json:"distinctSalesOrders"`
	SalesOrderQty       float64 `json:"salesOrderQty"`

	// LaborUnits = floor(salesOrderQty/1000), derived once after
	// accumulation for the bucket completes.
	LaborUnits int `json:"laborUnits"`
}

// LoadReport summarizes the load-time data-quality gate. Dropping rows is not
// an error; the counts exist so operators can spot unexpectedly high rates.
type LoadReport struct {
	TotalRows       int     `json:"totalRows"`
	LoadedRows      int     `json:"loadedRows"`
	DroppedRows     int     `json:"droppedRows"`
	NegativeCBMRows int     `json:"negativeCBMRows"`
	NegativeQtyRows int     `json:"negativeQtyRows"`
	DropRate        float64 `json:"dropRate"`
}

// WarehouseHierarchy is the three-level structure behind the cascading
// warehouse filters. All slices are sorted for presentation determinism.
type WarehouseHierarchy struct {
	Locations []string `json:"locations"`

	// AreaCodes keys by location.
	AreaCodes map[string][]string `json:"areaCodes"`

	// Warehouses keys by "location:areaCode".
	Warehouses map[string][]string `json:"warehouses"`
}

// WarehouseKey builds the composite key used by WarehouseHierarchy.Warehouses.
func WarehouseKey(location, areaCode string) string {
	return location + ":" + areaCode
}

// FilterAll is the wildcard value for the hierarchical warehouse filters.
const FilterAll = "all"

// Filter is one set of subset selections applied before aggregation. Zero
// values mean "no constraint".
type Filter struct {
	// Date is an exact calendar day, YYYY-MM-DD.
	Date string `json:"date"`
	// Month is a year-month, YYYY-MM. Ignored when Date is set.
	Month string `json:"month"`

	Location  string `json:"location"`
	AreaCode  string `json:"areaCode"`
	Warehouse string `json:"warehouse"`
}
