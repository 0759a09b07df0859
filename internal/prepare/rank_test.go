package prepare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/parking-dashboard/internal/model"
)

func rankFixture() []model.DistrictMetrics {
	mk := func(name string, complaints int, r model.Ratio) model.DistrictMetrics {
		return model.DistrictMetrics{
			DistrictRow:       model.DistrictRow{District: name, Complaints: complaints},
			ComplaintLotRatio: r,
		}
	}
	return []model.DistrictMetrics{
		mk("a", 10, model.Of(1.5)),
		mk("b", 30, model.Undefined),
		mk("c", 20, model.Of(4)),
		mk("d", 30, model.Of(1.5)),
		mk("e", 5, model.Undefined),
	}
}

func names(rows []model.DistrictMetrics) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.District
	}
	return out
}

func TestRank_UndefinedFirst(t *testing.T) {
	rows := rankFixture()
	ranked := Rank(rows, model.KeyComplaintLotRatio)
	assert.Equal(t, []string{"b", "e", "c", "a", "d"}, names(ranked))
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, names(rows), "input untouched")
}

func TestTopN(t *testing.T) {
	rows := rankFixture()
	assert.Equal(t, []string{"b", "e", "c"}, names(TopN(rows, model.KeyComplaintLotRatio, 3)))
	assert.Len(t, TopN(rows, model.KeyComplaintLotRatio, 10), 5)
	assert.Empty(t, TopN(rows, model.KeyComplaintLotRatio, 0))
}

func TestByComplaints(t *testing.T) {
	got := ByComplaints(rankFixture())
	require.Len(t, got, 5)
	assert.Equal(t, []string{"b", "d", "c", "a", "e"}, names(got))
}
