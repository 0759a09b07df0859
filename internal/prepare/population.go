package prepare

import (
	"github.com/sells-group/parking-dashboard/internal/fetcher"
	"github.com/sells-group/parking-dashboard/internal/model"
)

// Range locates the usable block of an irregular population sheet.
// Rows are [StartRow, EndRow) of the raw sheet, columns are zero-based.
type Range struct {
	StartRow      int
	EndRow        int
	DistrictCol   int
	PopulationCol int
}

// LoadPopulation extracts district/population pairs from the raw sheet rows.
// Population is coerced to a non-negative integer with 0 for invalid cells.
// Rows past the end of the sheet are ignored.
func LoadPopulation(rows [][]string, r Range) []model.PopulationRow {
	start := max(r.StartRow, 0)
	end := min(r.EndRow, len(rows))
	if start >= end {
		return nil
	}

	out := make([]model.PopulationRow, 0, end-start)
	for _, row := range rows[start:end] {
		out = append(out, model.PopulationRow{
			District:   normalizeDistrict(fetcher.Cell(row, r.DistrictCol)),
			Population: parseCountOr(fetcher.Cell(row, r.PopulationCol), 0),
		})
	}
	return out
}
