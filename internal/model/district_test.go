package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRatioKey(t *testing.T) {
	t.Parallel()

	for _, k := range RatioKeys {
		got, err := ParseRatioKey(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	_, err := ParseRatioKey("bogus")
	assert.Error(t, err)
}

func TestDistrictMetrics_Ratio(t *testing.T) {
	t.Parallel()

	m := DistrictMetrics{
		ComplaintsPer1000: Of(1),
		LotsPer1000:       Of(2),
		ComplaintLotRatio: Of(3),
		PopulationPerLot:  Of(4),
	}
	assert.Equal(t, Of(1), m.Ratio(KeyComplaintsPer1000))
	assert.Equal(t, Of(2), m.Ratio(KeyLotsPer1000))
	assert.Equal(t, Of(3), m.Ratio(KeyComplaintLotRatio))
	assert.Equal(t, Of(4), m.Ratio(KeyPopulationPerLot))
	assert.Equal(t, Undefined, m.Ratio("nope"))
}

func TestDistrictMetrics_JSONFlattensRow(t *testing.T) {
	t.Parallel()

	m := DistrictMetrics{
		DistrictRow:       DistrictRow{District: "강남구", Complaints: 120, ParkingLots: 40},
		Population:        550000,
		PopulationMatched: true,
		PopulationPerLot:  Of(13750),
	}
	b, err := json.Marshal(m)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "강남구", got["district"])
	assert.Equal(t, float64(120), got["complaints"])
	assert.Equal(t, float64(13750), got["population_per_lot"])
	assert.Nil(t, got["complaints_per_1000"])
}
