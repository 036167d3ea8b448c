package dataset_test

import (
	"testing"
	"time"

	"github.com/heyyrintu/mis-lifelong/internal/model"
	"github.com/heyyrintu/mis-lifelong/internal/service/dataset"
)

func day(d int) time.Time {
	return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestApplyDateFilter(t *testing.T) {
	records := []*model.Record{
		{InvoiceDate: "2025-06-01"},
		{DeliveryDate: "2025-06-02"},
		{InvoiceDate: "2025-06-02"},
	}

	got := dataset.Apply(records, model.Filter{Date: "2025-06-02"})
	if len(got) != 2 {
		t.Fatalf("matched=%d, want 2", len(got))
	}
}

func TestApplyMonthFilter(t *testing.T) {
	records := []*model.Record{
		{InvoiceDate: "2025-06-30"},
		{InvoiceDate: "2025-07-01"},
		{DeliveryDate: "2025-06-15"},
	}

	got := dataset.Apply(records, model.Filter{Month: "2025-06"})
	if len(got) != 2 {
		t.Fatalf("matched=%d, want 2", len(got))
	}
}

func TestApplyDateWinsOverMonth(t *testing.T) {
	records := []*model.Record{
		{InvoiceDate: "2025-06-01"},
		{InvoiceDate: "2025-06-02"},
	}
	got := dataset.Apply(records, model.Filter{Date: "2025-06-01", Month: "2025-06"})
	if len(got) != 1 {
		t.Fatalf("matched=%d, want 1", len(got))
	}
}

func TestApplyWarehouseNarrowing(t *testing.T) {
	records := []*model.Record{
		{Warehouse: "MH4 - Andheri"},
		{Warehouse: "MH5 - Bhiwandi"},
		{Warehouse: "HR3 - Gurgaon"},
		{Warehouse: ""},
	}

	got := dataset.Apply(records, model.Filter{Location: "Mumbai"})
	if len(got) != 2 {
		t.Fatalf("location filter matched=%d, want 2", len(got))
	}

	got = dataset.Apply(records, model.Filter{Location: "Mumbai", AreaCode: "MH4"})
	if len(got) != 1 {
		t.Fatalf("area filter matched=%d, want 1", len(got))
	}

	got = dataset.Apply(records, model.Filter{
		Location: "Mumbai", AreaCode: "MH4", Warehouse: "MH4 - Andheri",
	})
	if len(got) != 1 {
		t.Fatalf("warehouse filter matched=%d, want 1", len(got))
	}
}

func TestApplyAllDisablesLowerLevels(t *testing.T) {
	records := []*model.Record{
		{Warehouse: "MH4 - Andheri"},
		{Warehouse: "HR3 - Gurgaon"},
	}

	// "all" at location level: the area and warehouse selections are stale
	// leftovers and must not narrow anything.
	got := dataset.Apply(records, model.Filter{
		Location: model.FilterAll, AreaCode: "MH4", Warehouse: "MH4 - Andheri",
	})
	if len(got) != 2 {
		t.Fatalf("matched=%d, want 2", len(got))
	}

	// "all" at area level disables only the warehouse filter.
	got = dataset.Apply(records, model.Filter{
		Location: "Mumbai", AreaCode: model.FilterAll, Warehouse: "HR3 - Gurgaon",
	})
	if len(got) != 1 {
		t.Fatalf("matched=%d, want 1", len(got))
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	records := []*model.Record{
		{InvoiceDate: "2025-06-01", Warehouse: "MH4"},
		{InvoiceDate: "2025-07-01", Warehouse: "HR3"},
	}
	dataset.Apply(records, model.Filter{Month: "2025-06", Location: "Mumbai"})

	if records[0].Warehouse != "MH4" || records[1].Warehouse != "HR3" {
		t.Fatalf("input slice mutated: %+v", records)
	}
	if len(records) != 2 {
		t.Fatalf("input length changed")
	}
}

func TestSortByOrderDateNewestFirst(t *testing.T) {
	records := []*model.Record{
		{SalesOrderNo: "old", OrderDate: day(1)},
		{SalesOrderNo: "new", OrderDate: day(9)},
		{SalesOrderNo: "mid", OrderDate: day(5)},
	}

	dataset.SortByOrderDate(records, false)

	want := []string{"new", "mid", "old"}
	for i, w := range want {
		if records[i].SalesOrderNo != w {
			t.Fatalf("order=%v, want %v", names(records), want)
		}
	}
}

func TestSortByOrderDateZeroTimeSinksOldest(t *testing.T) {
	records := []*model.Record{
		{SalesOrderNo: "missing"},
		{SalesOrderNo: "dated", OrderDate: day(3)},
	}

	dataset.SortByOrderDate(records, false)
	if records[len(records)-1].SalesOrderNo != "missing" {
		t.Fatalf("newest-first order=%v, want missing last", names(records))
	}

	dataset.SortByOrderDate(records, true)
	if records[0].SalesOrderNo != "missing" {
		t.Fatalf("oldest-first order=%v, want missing first", names(records))
	}
}

func TestSortByOrderDateStableOnTies(t *testing.T) {
	records := []*model.Record{
		{SalesOrderNo: "a", OrderDate: day(2)},
		{SalesOrderNo: "b", OrderDate: day(2)},
		{SalesOrderNo: "c", OrderDate: day(2)},
	}

	dataset.SortByOrderDate(records, false)

	want := []string{"a", "b", "c"}
	for i, w := range want {
		if records[i].SalesOrderNo != w {
			t.Fatalf("tie order=%v, want %v", names(records), want)
		}
	}
}

func names(records []*model.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.SalesOrderNo
	}
	return out
}
