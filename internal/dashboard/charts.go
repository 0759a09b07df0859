package dashboard

import (
	"fmt"
	"math"

	"github.com/sells-group/parking-dashboard/internal/model"
	"github.com/sells-group/parking-dashboard/internal/prepare"
)

// Figure is a Plotly figure: traces plus layout. The browser passes it
// straight to Plotly.newPlot.
type Figure struct {
	ID     string         `json:"id"`
	Title  string         `json:"title"`
	Data   []Trace        `json:"data"`
	Layout map[string]any `json:"layout"`
}

// Trace is the subset of Plotly trace attributes the dashboard uses.
type Trace struct {
	Type         string       `json:"type"`
	Name         string       `json:"name,omitempty"`
	Mode         string       `json:"mode,omitempty"`
	X            any          `json:"x"`
	Y            any          `json:"y"`
	Text         []string     `json:"text,omitempty"`
	TextPosition string       `json:"textposition,omitempty"`
	Marker       *TraceMarker `json:"marker,omitempty"`
}

// TraceMarker styles bars and scatter points.
type TraceMarker struct {
	Color     any    `json:"color,omitempty"`
	Size      any    `json:"size,omitempty"`
	SizeMode  string `json:"sizemode,omitempty"`
	SizeRef   any    `json:"sizeref,omitempty"`
	ShowScale bool   `json:"showscale,omitempty"`
}

// TopRatioN is how many districts the ratio ranking chart shows.
const TopRatioN = 10

// Figures builds the five district charts.
func Figures(ds *prepare.Dataset) []Figure {
	return []Figure{
		countsFigure(ds.Districts),
		trendFigure(ds),
		populationPerLotFigure(ds.Districts),
		perCapitaFigure(ds.Districts),
		topRatioFigure(ds.Districts),
	}
}

func countsFigure(rows []model.DistrictMetrics) Figure {
	sorted := prepare.ByComplaints(rows)
	names := districtNames(sorted)
	complaints := make([]int, len(sorted))
	lots := make([]int, len(sorted))
	for i, r := range sorted {
		complaints[i] = r.Complaints
		lots[i] = r.ParkingLots
	}
	return Figure{
		ID:    "counts",
		Title: "자치구별 민원 건수 및 주차장 개수",
		Data: []Trace{
			{Type: "bar", Name: "불법주정차_민원건수", X: names, Y: complaints},
			{Type: "bar", Name: "공영주차장_개수", X: names, Y: lots},
		},
		Layout: map[string]any{"barmode": "group"},
	}
}

func trendFigure(ds *prepare.Dataset) Figure {
	rows := ds.Districts
	lots := make([]int, len(rows))
	complaints := make([]int, len(rows))
	for i, r := range rows {
		lots[i] = r.ParkingLots
		complaints[i] = r.Complaints
	}

	fig := Figure{
		ID:    "trend",
		Title: "공영주차장 수 vs 불법주정차 민원건수",
		Data: []Trace{{
			Type:         "scatter",
			Mode:         "markers+text",
			Name:         "자치구",
			X:            lots,
			Y:            complaints,
			Text:         districtNames(rows),
			TextPosition: "top center",
		}},
		Layout: map[string]any{
			"xaxis": map[string]any{"title": "공영주차장_개수"},
			"yaxis": map[string]any{"title": "불법주정차_민원건수"},
		},
	}

	if ds.Trend.Valid {
		lo, hi := minMax(lots)
		fig.Data = append(fig.Data, Trace{
			Type: "scatter",
			Mode: "lines",
			Name: fmt.Sprintf("OLS (R²=%.3f)", ds.Trend.RSquared),
			X:    []float64{lo, hi},
			Y:    []float64{ds.Trend.Predict(lo), ds.Trend.Predict(hi)},
		})
	}
	if ds.Correlation.Defined {
		fig.Title = fmt.Sprintf("%s (r=%.3f)", fig.Title, ds.Correlation.Value)
	}
	return fig
}

func populationPerLotFigure(rows []model.DistrictMetrics) Figure {
	ranked := prepare.Rank(rows, model.KeyPopulationPerLot)
	values := ratios(ranked, model.KeyPopulationPerLot)
	return Figure{
		ID:    "population_per_lot",
		Title: "공영주차장 1개당 인구 수",
		Data: []Trace{{
			Type:   "bar",
			Name:   "인구_주차장_비율",
			X:      districtNames(ranked),
			Y:      values,
			Marker: &TraceMarker{Color: values, ShowScale: true},
		}},
		Layout: map[string]any{},
	}
}

func perCapitaFigure(rows []model.DistrictMetrics) Figure {
	maxLots := 0
	for _, r := range rows {
		maxLots = max(maxLots, r.ParkingLots)
	}
	sizeRef := 1.0
	if maxLots > 0 {
		// scale the largest bubble to ~40px diameter
		sizeRef = 2.0 * float64(maxLots) / (40 * 40)
	}

	traces := make([]Trace, 0, len(rows))
	for _, r := range rows {
		traces = append(traces, Trace{
			Type:         "scatter",
			Mode:         "markers+text",
			Name:         r.District,
			X:            []model.Ratio{r.LotsPer1000},
			Y:            []model.Ratio{r.ComplaintsPer1000},
			Text:         []string{r.District},
			TextPosition: "top center",
			Marker: &TraceMarker{
				Size:     []int{r.ParkingLots},
				SizeMode: "area",
				SizeRef:  sizeRef,
			},
		})
	}
	return Figure{
		ID:    "per_capita",
		Title: "인구 1,000명당 주차장 수 vs 민원 수",
		Data:  traces,
		Layout: map[string]any{
			"xaxis": map[string]any{"title": "인구당_주차장수"},
			"yaxis": map[string]any{"title": "인구당_민원수"},
		},
	}
}

func topRatioFigure(rows []model.DistrictMetrics) Figure {
	top := prepare.TopN(rows, model.KeyComplaintLotRatio, TopRatioN)
	values := ratios(top, model.KeyComplaintLotRatio)
	return Figure{
		ID:    "top_ratio",
		Title: fmt.Sprintf("인구 기준 민원/주차장 비율 TOP %d", TopRatioN),
		Data: []Trace{{
			Type:   "bar",
			Name:   "인구기준_민원주차장비율",
			X:      districtNames(top),
			Y:      values,
			Marker: &TraceMarker{Color: values, ShowScale: true},
		}},
		Layout: map[string]any{},
	}
}

func districtNames(rows []model.DistrictMetrics) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.District
	}
	return out
}

func ratios(rows []model.DistrictMetrics, key model.RatioKey) []model.Ratio {
	out := make([]model.Ratio, len(rows))
	for i, r := range rows {
		out[i] = r.Ratio(key)
	}
	return out
}

func minMax(values []int) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, float64(v))
		hi = math.Max(hi, float64(v))
	}
	return lo, hi
}
