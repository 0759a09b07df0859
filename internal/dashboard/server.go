// Package dashboard serves the prepared tables to the browser: JSON and
// GeoJSON endpoints plus two HTML pages that hand the data to Plotly and
// Leaflet.markercluster.
package dashboard

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/parking-dashboard/internal/config"
	"github.com/sells-group/parking-dashboard/internal/geo"
	"github.com/sells-group/parking-dashboard/internal/model"
	"github.com/sells-group/parking-dashboard/internal/prepare"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// defaultPreviewLimit bounds raw-table previews.
const defaultPreviewLimit = 200

// Server renders one prepared Dataset and an optional CCTV layer. Both are
// read-only after construction.
type Server struct {
	cfg     *config.Config
	data    *prepare.Dataset
	cctv    *prepare.CCTVLayer
	figures []Figure
	router  chi.Router
}

// New builds the server and its routes.
func New(cfg *config.Config, data *prepare.Dataset, cctv *prepare.CCTVLayer) *Server {
	s := &Server{
		cfg:     cfg,
		data:    data,
		cctv:    cctv,
		figures: Figures(data),
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		MaxAge:         300,
	}))
	if s.cfg.Server.RateLimit > 0 {
		r.Use(rateLimit(rate.NewLimiter(rate.Limit(s.cfg.Server.RateLimit), max(s.cfg.Server.RateBurst, 1))))
	}

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleDashboardPage)
	r.Get("/cctv", s.handleCCTVPage)

	r.Route("/api", func(r chi.Router) {
		r.Get("/summary", s.handleSummary)
		r.Get("/districts", s.handleDistricts)
		r.Get("/districts/top", s.handleTop)
		r.Get("/charts", s.handleCharts)
		r.Get("/complaints/sample.geojson", s.handleComplaintSample)
		r.Get("/cctv.geojson", s.handleCCTV)
		r.Get("/preview/{table}", s.handlePreview)
	})
	return r
}

// Summary is the headline block shown above the charts.
type Summary struct {
	RunID         string      `json:"run_id"`
	PreparedAt    time.Time   `json:"prepared_at"`
	Districts     int         `json:"districts"`
	Unmatched     []string    `json:"unmatched"`
	ComplaintRows int         `json:"complaint_rows"`
	Geocoded      int         `json:"geocoded"`
	Sampled       int         `json:"sampled"`
	Correlation   model.Ratio `json:"correlation"`
	Bounds        geo.Bounds  `json:"bounds"`
}

func (s *Server) summary() Summary {
	points := make([]geo.Point, len(s.data.Sample))
	for i, c := range s.data.Sample {
		points[i] = geo.Point{Lat: c.Lat, Lon: c.Lon}
	}
	unmatched := s.data.Unmatched
	if unmatched == nil {
		unmatched = []string{}
	}
	return Summary{
		RunID:         s.data.RunID,
		PreparedAt:    s.data.PreparedAt,
		Districts:     len(s.data.Districts),
		Unmatched:     unmatched,
		ComplaintRows: s.data.ComplaintRows,
		Geocoded:      len(s.data.Complaints),
		Sampled:       len(s.data.Sample),
		Correlation:   s.data.Correlation,
		Bounds:        geo.BoundsOf(points),
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "run_id": s.data.RunID})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.summary())
}

func (s *Server) handleDistricts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.data.Districts)
}

func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	key := model.KeyComplaintLotRatio
	if k := r.URL.Query().Get("key"); k != "" {
		parsed, err := model.ParseRatioKey(k)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		key = parsed
	}

	n, ok := intParam(w, r, "n", TopRatioN)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, prepare.TopN(s.data.Districts, key, n))
}

func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.figures)
}

func (s *Server) handleComplaintSample(w http.ResponseWriter, r *http.Request) {
	writeGeoJSON(w, s.data.SampleMarkers())
}

func (s *Server) handleCCTV(w http.ResponseWriter, r *http.Request) {
	if s.cctv == nil {
		writeError(w, http.StatusNotFound, "cctv layer not loaded")
		return
	}
	writeGeoJSON(w, s.cctv.Markers())
}

// Preview is a head of one raw input table.
type Preview struct {
	Table  string     `json:"table"`
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
	Total  int        `json:"total"`
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "table")
	t, ok := s.data.Sources[name]
	if name == "cctv" && s.cctv != nil {
		t, ok = s.cctv.Source, true
	}
	if !ok || t == nil {
		writeError(w, http.StatusNotFound, "unknown table "+strconv.Quote(name))
		return
	}

	limit, ok := intParam(w, r, "limit", defaultPreviewLimit)
	if !ok {
		return
	}
	rows := t.Rows
	if limit < len(rows) {
		rows = rows[:limit]
	}
	header := t.Header
	if header == nil {
		header = []string{}
	}
	writeJSON(w, http.StatusOK, Preview{Table: name, Header: header, Rows: rows, Total: len(t.Rows)})
}

type pageData struct {
	Title     string
	Subtitle  string
	Lat       float64
	Lon       float64
	Zoom      int
	LayerURL  string
	Charts    bool
	RunID     string
	Preview   string
	LayerSize int
}

func (s *Server) handleDashboardPage(w http.ResponseWriter, r *http.Request) {
	m := s.cfg.Complaints.Map
	s.renderPage(w, pageData{
		Title:     "서울시 자치구별 공영주차장 vs 불법주정차 민원 분석 대시보드",
		Subtitle:  "불법주정차 민원 위치 지도 (" + strconv.Itoa(len(s.data.Sample)) + "건 랜덤 추출)",
		Lat:       m.CenterLat,
		Lon:       m.CenterLon,
		Zoom:      m.Zoom,
		LayerURL:  "/api/complaints/sample.geojson",
		Charts:    true,
		RunID:     s.data.RunID,
		Preview:   "metrics",
		LayerSize: len(s.data.Sample),
	})
}

func (s *Server) handleCCTVPage(w http.ResponseWriter, r *http.Request) {
	if s.cctv == nil {
		writeError(w, http.StatusNotFound, "cctv layer not loaded")
		return
	}
	m := s.cfg.CCTV.Map
	s.renderPage(w, pageData{
		Title:     "CCTV 현황",
		Subtitle:  strconv.Itoa(len(s.cctv.Sites)) + "개소",
		Lat:       m.CenterLat,
		Lon:       m.CenterLon,
		Zoom:      m.Zoom,
		LayerURL:  "/api/cctv.geojson",
		RunID:     s.cctv.RunID,
		Preview:   "cctv",
		LayerSize: len(s.cctv.Sites),
	})
}

func (s *Server) renderPage(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.ExecuteTemplate(w, "page.html", data); err != nil {
		zap.L().Error("render page", zap.Error(err))
	}
}

func intParam(w http.ResponseWriter, r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		writeError(w, http.StatusBadRequest, name+" must be a non-negative integer")
		return 0, false
	}
	return n, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeGeoJSON(w http.ResponseWriter, markers []geo.Marker) {
	b, err := geo.MarshalMarkers(markers)
	if err != nil {
		zap.L().Error("encode geojson", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "encode geojson")
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}
