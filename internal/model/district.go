package model

import "fmt"

// DistrictRow is one row of the per-district metrics workbook.
type DistrictRow struct {
	District    string `json:"district" yaml:"district"`
	Complaints  int    `json:"complaints" yaml:"complaints"`
	ParkingLots int    `json:"parking_lots" yaml:"parking_lots"`
}

// PopulationRow is one cleaned row of the registered-population workbook.
type PopulationRow struct {
	District   string `json:"district" yaml:"district"`
	Population int    `json:"population" yaml:"population"`
}

// DistrictMetrics is a DistrictRow joined with population plus derived ratios.
type DistrictMetrics struct {
	DistrictRow `yaml:",inline"`

	Population        int  `json:"population" yaml:"population"`
	PopulationMatched bool `json:"population_matched" yaml:"population_matched"`

	ComplaintsPer1000 Ratio `json:"complaints_per_1000" yaml:"complaints_per_1000"`
	LotsPer1000       Ratio `json:"lots_per_1000" yaml:"lots_per_1000"`
	ComplaintLotRatio Ratio `json:"complaint_lot_ratio" yaml:"complaint_lot_ratio"`
	PopulationPerLot  Ratio `json:"population_per_lot" yaml:"population_per_lot"`
}

// RatioKey names one of the derived ratio columns.
type RatioKey string

const (
	KeyComplaintsPer1000 RatioKey = "complaints_per_1000"
	KeyLotsPer1000       RatioKey = "lots_per_1000"
	KeyComplaintLotRatio RatioKey = "complaint_lot_ratio"
	KeyPopulationPerLot  RatioKey = "population_per_lot"
)

// RatioKeys lists every derived ratio in display order.
var RatioKeys = []RatioKey{
	KeyComplaintsPer1000,
	KeyLotsPer1000,
	KeyComplaintLotRatio,
	KeyPopulationPerLot,
}

// ParseRatioKey validates a ratio key string.
func ParseRatioKey(s string) (RatioKey, error) {
	for _, k := range RatioKeys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown ratio key %q", s)
}

// Ratio returns the derived value for key.
func (m DistrictMetrics) Ratio(key RatioKey) Ratio {
	switch key {
	case KeyComplaintsPer1000:
		return m.ComplaintsPer1000
	case KeyLotsPer1000:
		return m.LotsPer1000
	case KeyComplaintLotRatio:
		return m.ComplaintLotRatio
	case KeyPopulationPerLot:
		return m.PopulationPerLot
	}
	return Undefined
}
