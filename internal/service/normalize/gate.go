package normalize

import "github.com/heyyrintu/mis-lifelong/internal/model"

// Columns checked by the negative-value gate. A negative raw value in any of
// them drops the whole row at load time, before normalization.
var gateCBMColumns = []string{"SI Total CBM", "DN Total CBM", "Per Unit CBM"}
var gateQtyColumns = []string{"SALES Invoice QTY", "DELIVERY Note QTY"}

// Gate applies the load-time data-quality gate: rows carrying a negative CBM
// or quantity are removed once, before any aggregation. Removal is not an
// error; the report lets operators sanity-check the drop rate.
func Gate(rows []model.RawRow) ([]model.RawRow, model.LoadReport) {
	report := model.LoadReport{TotalRows: len(rows)}
	kept := make([]model.RawRow, 0, len(rows))

	for _, row := range rows {
		negCBM := false
		for _, col := range gateCBMColumns {
			if RawNumber(row[col]) < 0 {
				negCBM = true
				break
			}
		}
		negQty := false
		for _, col := range gateQtyColumns {
			if RawNumber(row[col]) < 0 {
				negQty = true
				break
			}
		}

		if negCBM || negQty {
			report.DroppedRows++
			if negCBM {
				report.NegativeCBMRows++
			}
			if negQty {
				report.NegativeQtyRows++
			}
			continue
		}
		kept = append(kept, row)
	}

	report.LoadedRows = len(kept)
	if report.TotalRows > 0 {
		report.DropRate = float64(report.DroppedRows) / float64(report.TotalRows)
	}
	return kept, report
}
