package prepare

import (
	"cmp"
	"slices"

	"github.com/sells-group/parking-dashboard/internal/model"
)

// Rank returns a copy of rows sorted descending by key. Undefined ratios
// rank above every defined value; ties keep input order.
func Rank(rows []model.DistrictMetrics, key model.RatioKey) []model.DistrictMetrics {
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b model.DistrictMetrics) int {
		return b.Ratio(key).Compare(a.Ratio(key))
	})
	return out
}

// TopN returns the first n rows of Rank(rows, key).
func TopN(rows []model.DistrictMetrics, key model.RatioKey, n int) []model.DistrictMetrics {
	ranked := Rank(rows, key)
	if n >= 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// ByComplaints returns a copy of rows sorted by complaint count, descending.
func ByComplaints(rows []model.DistrictMetrics) []model.DistrictMetrics {
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b model.DistrictMetrics) int {
		return cmp.Compare(b.Complaints, a.Complaints)
	})
	return out
}
