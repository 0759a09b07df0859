package dashboard

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/parking-dashboard/internal/config"
	"github.com/sells-group/parking-dashboard/internal/fetcher"
	"github.com/sells-group/parking-dashboard/internal/model"
	"github.com/sells-group/parking-dashboard/internal/prepare"
)

func testDataset(t *testing.T) *prepare.Dataset {
	t.Helper()

	metrics := &fetcher.Table{}
	metrics.SetHeader([]string{"자치구", "민원", "주차장"})
	metrics.Rows = [][]string{
		{"강남구", "120", "40"},
		{"종로구", "80", "20"},
		{"중구", "30", "0"},
		{"없는구", "10", "5"},
	}
	population := [][]string{
		{"", "강남구", "", "550000"},
		{"", "종로구", "", "140000"},
		{"", "중구", "", "120000"},
	}
	complaints := &fetcher.Table{}
	complaints.SetHeader([]string{"주소", "위도", "경도", "일시"})
	complaints.Rows = [][]string{
		{"서울특별시 강남구 테헤란로 1", "37.50", "127.03", "2023-11-01"},
		{"서울특별시 종로구 세종대로 209", "37.57", "126.97", "2023-11-02"},
		{"서울특별시 중구 세종대로 110", "0", "126.97", "2023-11-03"},
	}

	ds, err := prepare.Build(prepare.Inputs{
		Metrics:    metrics,
		Population: population,
		Complaints: complaints,
	}, prepare.Options{
		MetricsColumns:   prepare.MetricsColumns{District: "자치구", Complaints: "민원", Lots: "주차장"},
		PopulationRange:  prepare.Range{StartRow: 0, EndRow: 3, DistrictCol: 1, PopulationCol: 3},
		ComplaintColumns: prepare.ComplaintColumns{Address: "주소", Lat: "위도", Lon: "경도", Received: "일시"},
		DistrictPattern:  `서울특별시\s+(\S+구)`,
		SampleSize:       5000,
		SampleSeed:       42,
	})
	require.NoError(t, err)
	return ds
}

func testCCTV() *prepare.CCTVLayer {
	t := &fetcher.Table{}
	t.SetHeader([]string{"설치장소", "위도", "경도"})
	t.Rows = [][]string{{"정문", "35.18", "128.10"}}
	return prepare.BuildCCTV(t, prepare.CCTVColumns{Site: "설치장소", Lat: "위도", Lon: "경도"})
}

func testServerConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.AllowedOrigins = []string{"*"}
	cfg.Complaints.Map = config.MapConfig{CenterLat: 37.5665, CenterLon: 126.9780, Zoom: 11}
	cfg.CCTV.Map = config.MapConfig{CenterLat: 35.1799817, CenterLon: 128.1076213, Zoom: 13}
	return cfg
}

func newTestServer(t *testing.T, withCCTV bool) *httptest.Server {
	t.Helper()
	var layer *prepare.CCTVLayer
	if withCCTV {
		layer = testCCTV()
	}
	srv := httptest.NewServer(New(testServerConfig(), testDataset(t), layer).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, false)
	resp, body := get(t, srv, "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"ok"`)
}

func TestDistricts(t *testing.T) {
	srv := newTestServer(t, false)
	resp, body := get(t, srv, "/api/districts")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rows []model.DistrictMetrics
	require.NoError(t, json.Unmarshal(body, &rows))
	require.Len(t, rows, 4)
	assert.Equal(t, "강남구", rows[0].District)
	assert.InDelta(t, 13750.0, rows[0].PopulationPerLot.Value, 1e-9)
	assert.False(t, rows[3].ComplaintsPer1000.Defined)
}

func TestTop_UndefinedSurfacesFirst(t *testing.T) {
	srv := newTestServer(t, false)
	resp, body := get(t, srv, "/api/districts/top?key=population_per_lot&n=2")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rows []model.DistrictMetrics
	require.NoError(t, json.Unmarshal(body, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "중구", rows[0].District, "zero parking lots ranks first")
}

func TestTop_BadParams(t *testing.T) {
	srv := newTestServer(t, false)

	resp, _ := get(t, srv, "/api/districts/top?key=bogus")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = get(t, srv, "/api/districts/top?n=-1")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSummary(t *testing.T) {
	srv := newTestServer(t, false)
	_, body := get(t, srv, "/api/summary")

	var s Summary
	require.NoError(t, json.Unmarshal(body, &s))
	assert.Equal(t, 4, s.Districts)
	assert.Equal(t, []string{"없는구"}, s.Unmatched)
	assert.Equal(t, 3, s.ComplaintRows)
	assert.Equal(t, 2, s.Geocoded)
	assert.Equal(t, 2, s.Sampled)
	assert.False(t, s.Bounds.Empty)
}

func TestCharts(t *testing.T) {
	srv := newTestServer(t, false)
	_, body := get(t, srv, "/api/charts")

	var figs []struct {
		ID   string            `json:"id"`
		Data []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &figs))
	require.Len(t, figs, 5)
	assert.Equal(t, "counts", figs[0].ID)
	assert.Len(t, figs[1].Data, 2, "scatter plus trendline")
}

func TestComplaintSampleGeoJSON(t *testing.T) {
	srv := newTestServer(t, false)
	resp, body := get(t, srv, "/api/complaints/sample.geojson")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/geo+json", resp.Header.Get("Content-Type"))

	var fc struct {
		Features []struct {
			Properties map[string]string `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(body, &fc))
	require.Len(t, fc.Features, 2)
	assert.Equal(t, "강남구", fc.Features[0].Properties["label"])
	assert.Contains(t, fc.Features[0].Properties["popup"], "주소: 서울특별시 강남구 테헤란로 1")
}

func TestCCTV(t *testing.T) {
	srv := newTestServer(t, false)
	resp, _ := get(t, srv, "/api/cctv.geojson")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = get(t, srv, "/cctv")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	srv = newTestServer(t, true)
	resp, body := get(t, srv, "/api/cctv.geojson")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "정문")

	resp, body = get(t, srv, "/cctv")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "CCTV 현황")
	assert.Contains(t, string(body), "35.1799817")
}

func TestPreview(t *testing.T) {
	srv := newTestServer(t, true)

	_, body := get(t, srv, "/api/preview/metrics?limit=1")
	var p Preview
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, []string{"자치구", "민원", "주차장"}, p.Header)
	assert.Len(t, p.Rows, 1)
	assert.Equal(t, 4, p.Total)

	_, body = get(t, srv, "/api/preview/cctv")
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, 1, p.Total)

	resp, _ := get(t, srv, "/api/preview/nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDashboardPage(t *testing.T) {
	srv := newTestServer(t, false)
	resp, body := get(t, srv, "/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(body), "서울시 자치구별 공영주차장 vs 불법주정차 민원 분석 대시보드")
	assert.Contains(t, string(body), "plotly")
	assert.Contains(t, string(body), "markercluster")
}

func TestCORSHeaders(t *testing.T) {
	srv := newTestServer(t, false)
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/districts", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
