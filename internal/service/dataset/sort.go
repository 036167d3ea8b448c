package dataset

import (
	"sort"

	"github.com/heyyrintu/mis-lifelong/internal/model"
)

// SortByOrderDate orders records by SO date, newest first by default. The
// sort is stable so rows sharing a date keep their spreadsheet order, and the
// zero-time sentinel for missing dates always sinks to the oldest end.
func SortByOrderDate(records []*model.Record, oldestFirst bool) {
	sort.SliceStable(records, func(i, j int) bool {
		if oldestFirst {
			return records[i].OrderDate.Before(records[j].OrderDate)
		}
		return records[i].OrderDate.After(records[j].OrderDate)
	})
}
