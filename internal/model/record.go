package model

import "time"

// RawRow is one spreadsheet row keyed by the exact header text of its column.
// Missing columns are simply absent from the map; consumers fall back to the
// field's default instead of erroring.
type RawRow map[string]string

// Record is one normalized row of the loaded dataset. Derived fields are
// computed exactly once during normalization and cached here for the lifetime
// of the session; nothing downstream re-derives them.
type Record struct {
	CustomerGroup string `json:"customerGroup"`
	Customer      string `json:"customer"`
	Transporter   string `json:"transporter"`
	SalesOrderNo  string `json:"salesOrderNo"`
	InvoiceNo     string `json:"invoiceNo"`
	Warehouse     string `json:"warehouse"`
	TrackingNo    string `json:"trackingNo"`

	InvoiceQty    float64 `json:"invoiceQty"`
	SalesOrderQty float64 `json:"salesOrderQty"`
	VolumeCBM     float64 `json:"volumeCBM"`
	PerUnitCBM    float64 `json:"perUnitCBM"`

	// OrderDate is parsed from "SO Date". The zero time is the sentinel for
	// missing/unparseable dates and always sorts as the oldest value.
	OrderDate time.Time `json:"orderDate"`

	// Raw date strings kept for substring-based date/month filtering and for
	// export pass-through.
	InvoiceDate  string `json:"invoiceDate"`
	DeliveryDate string `json:"deliveryDate"`

	// Tags assigned once at load time by the classifier and transport
	// classifier. Consumers must reuse these, never re-classify.
	Category  Category      `json:"category"`
	Transport TransportMode `json:"transport"`

	// Raw keeps the source row for export columns that are passed through
	// verbatim (SKU, vehicle, pickup/delivered dates and the like).
	Raw RawRow `json:"-"`
}

// HasTracking reports whether the shipment document number is present.
// An empty tracking number means dispatch is not yet confirmed.
func (r *Record) HasTracking() bool {
	return r.TrackingNo != ""
}
