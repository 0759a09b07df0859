package prepare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// populationSheet mimics the registered-population export: a title block,
// then one row per district with the name in column 1 and total in column 3.
func populationSheet() [][]string {
	return [][]string{
		{"등록인구 (구별) 통계"},
		{"동별(1)", "동별(2)", "2025 1/4", "2025 1/4"},
		{"", "", "세대", "계"},
		{"합계", "소계", "4,400,000", "9,300,000"},
		{"합계", " 종로구 ", "70000", "139,417"},
		{"합계", "강남구", "230000", "550000"},
		{"합계", "중구", "63000", "abc"},
		{"합계", "용산구", "100000", ""},
		{"합계", "성동구", "130000", "-3"},
	}
}

func TestLoadPopulation(t *testing.T) {
	rows := LoadPopulation(populationSheet(), Range{StartRow: 4, EndRow: 9, DistrictCol: 1, PopulationCol: 3})
	require.Len(t, rows, 5)

	assert.Equal(t, "종로구", rows[0].District)
	assert.Equal(t, 139417, rows[0].Population)
	assert.Equal(t, "강남구", rows[1].District)
	assert.Equal(t, 550000, rows[1].Population)
	assert.Equal(t, 0, rows[2].Population, "invalid population defaults to 0")
	assert.Equal(t, 0, rows[3].Population, "missing population defaults to 0")
	assert.Equal(t, 0, rows[4].Population, "negative population defaults to 0")

	for _, r := range rows {
		assert.GreaterOrEqual(t, r.Population, 0)
	}
}

func TestLoadPopulation_RangeClipped(t *testing.T) {
	rows := LoadPopulation(populationSheet(), Range{StartRow: 4, EndRow: 25, DistrictCol: 1, PopulationCol: 3})
	assert.Len(t, rows, 5)
}

func TestLoadPopulation_EmptyRange(t *testing.T) {
	assert.Empty(t, LoadPopulation(populationSheet(), Range{StartRow: 20, EndRow: 25}))
	assert.Empty(t, LoadPopulation(nil, Range{StartRow: 0, EndRow: 5}))
}

func TestLoadPopulation_ShortRows(t *testing.T) {
	rows := LoadPopulation([][]string{{"only"}}, Range{StartRow: 0, EndRow: 1, DistrictCol: 1, PopulationCol: 3})
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].District)
	assert.Equal(t, 0, rows[0].Population)
}
