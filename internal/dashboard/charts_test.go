package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/parking-dashboard/internal/model"
)

func TestFigures(t *testing.T) {
	ds := testDataset(t)
	figs := Figures(ds)
	require.Len(t, figs, 5)

	counts := figs[0]
	assert.Equal(t, "group", counts.Layout["barmode"])
	assert.Equal(t, []string{"강남구", "종로구", "중구", "없는구"}, counts.Data[0].X)
	assert.Equal(t, []int{120, 80, 30, 10}, counts.Data[0].Y)

	trend := figs[1]
	require.Len(t, trend.Data, 2)
	assert.Equal(t, "lines", trend.Data[1].Mode)
	assert.Equal(t, []float64{0, 40}, trend.Data[1].X)

	perLot := figs[2]
	assert.Equal(t, "중구", perLot.Data[0].X.([]string)[0])

	perCapita := figs[3]
	assert.Len(t, perCapita.Data, 4, "one trace per district")

	top := figs[4]
	values := top.Data[0].Y.([]model.Ratio)
	require.NotEmpty(t, values)
	assert.False(t, values[0].Defined, "undefined ratios surface at the top")
}

func TestMinMax(t *testing.T) {
	lo, hi := minMax([]int{5, 1, 9})
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 9.0, hi)

	lo, hi = minMax(nil)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 0.0, hi)
}
