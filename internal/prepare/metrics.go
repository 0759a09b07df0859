package prepare

import (
	"github.com/sells-group/parking-dashboard/internal/fetcher"
	"github.com/sells-group/parking-dashboard/internal/model"
)

// MetricsColumns names the header cells of the district metrics table.
type MetricsColumns struct {
	District   string
	Complaints string
	Lots       string
}

// LoadDistricts reads the primary per-district table. Rows with a blank
// district name are skipped; counts default to 0.
func LoadDistricts(t *fetcher.Table, cols MetricsColumns) []model.DistrictRow {
	out := make([]model.DistrictRow, 0, len(t.Rows))
	for _, rec := range t.Rows {
		district := normalizeDistrict(t.Col(rec, cols.District))
		if district == "" {
			continue
		}
		out = append(out, model.DistrictRow{
			District:    district,
			Complaints:  parseCountOr(t.Col(rec, cols.Complaints), 0),
			ParkingLots: parseCountOr(t.Col(rec, cols.Lots), 0),
		})
	}
	return out
}

// Join left-joins primary with population on district name. Every primary
// row is kept in order; unmatched rows carry population 0 and
// PopulationMatched=false. When a district repeats in population the first
// occurrence wins.
func Join(primary []model.DistrictRow, population []model.PopulationRow) []model.DistrictMetrics {
	byDistrict := make(map[string]int, len(population))
	for _, p := range population {
		key := normalizeDistrict(p.District)
		if _, dup := byDistrict[key]; dup {
			continue
		}
		byDistrict[key] = p.Population
	}

	out := make([]model.DistrictMetrics, len(primary))
	for i, row := range primary {
		pop, ok := byDistrict[normalizeDistrict(row.District)]
		out[i] = model.DistrictMetrics{
			DistrictRow:       row,
			Population:        pop,
			PopulationMatched: ok,
		}
	}
	return out
}

// DeriveRatios fills the four derived ratios of m. Zero denominators
// produce model.Undefined.
func DeriveRatios(m *model.DistrictMetrics) {
	pop := float64(m.Population)
	lots := float64(m.ParkingLots)
	complaints := float64(m.Complaints)

	m.ComplaintsPer1000 = model.Div(complaints, pop).Scale(1000)
	m.LotsPer1000 = model.Div(lots, pop).Scale(1000)
	m.ComplaintLotRatio = model.DivRatio(m.ComplaintsPer1000, m.LotsPer1000)
	m.PopulationPerLot = model.Div(pop, lots)
}

// Derive applies DeriveRatios to every row in place and returns rows.
func Derive(rows []model.DistrictMetrics) []model.DistrictMetrics {
	for i := range rows {
		DeriveRatios(&rows[i])
	}
	return rows
}

// Unmatched lists districts that found no population row.
func Unmatched(rows []model.DistrictMetrics) []string {
	var out []string
	for _, r := range rows {
		if !r.PopulationMatched {
			out = append(out, r.District)
		}
	}
	return out
}
