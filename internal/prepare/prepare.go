// Package prepare turns the raw district, population, complaint and CCTV
// inputs into immutable tables for the dashboard. All transforms are pure;
// data-quality problems (bad numbers, unmatched districts, ungeocoded rows)
// are absorbed, never returned as errors.
package prepare

import (
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/parking-dashboard/internal/config"
	"github.com/sells-group/parking-dashboard/internal/fetcher"
	"github.com/sells-group/parking-dashboard/internal/geo"
	"github.com/sells-group/parking-dashboard/internal/model"
	"github.com/sells-group/parking-dashboard/internal/stats"
)

// Inputs are the raw tables a Dataset is built from. Complaints may be nil.
type Inputs struct {
	Metrics    *fetcher.Table
	Population [][]string
	Complaints *fetcher.Table
}

// Options control how Inputs are interpreted.
type Options struct {
	MetricsColumns   MetricsColumns
	PopulationRange  Range
	ComplaintColumns ComplaintColumns
	DistrictPattern  string
	SampleSize       int
	SampleSeed       uint64
}

// Dataset is the prepared, read-only result of one run.
type Dataset struct {
	RunID      string    `json:"run_id" yaml:"run_id"`
	PreparedAt time.Time `json:"prepared_at" yaml:"prepared_at"`

	Districts  []model.DistrictMetrics   `json:"districts" yaml:"districts"`
	Population []model.PopulationRow     `json:"population" yaml:"population"`
	Unmatched  []string                  `json:"unmatched,omitempty" yaml:"unmatched,omitempty"`
	Complaints []model.GeocodedComplaint `json:"-" yaml:"-"`
	Sample     []model.GeocodedComplaint `json:"-" yaml:"-"`

	// Trend regresses complaints on parking lots across districts.
	Trend       stats.Fit   `json:"trend" yaml:"trend"`
	Correlation model.Ratio `json:"correlation" yaml:"correlation"`

	// ComplaintRows counts raw complaint rows before filtering.
	ComplaintRows int `json:"complaint_rows" yaml:"complaint_rows"`

	Sources map[string]*fetcher.Table `json:"-" yaml:"-"`
}

// Build runs every transform over in. It fails only on an invalid district
// pattern.
func Build(in Inputs, opts Options) (*Dataset, error) {
	if in.Metrics == nil {
		in.Metrics = &fetcher.Table{}
	}
	ds := &Dataset{
		RunID:      uuid.New().String(),
		PreparedAt: time.Now().UTC(),
		Sources:    map[string]*fetcher.Table{},
	}

	primary := LoadDistricts(in.Metrics, opts.MetricsColumns)
	ds.Population = LoadPopulation(in.Population, opts.PopulationRange)
	ds.Districts = Derive(Join(primary, ds.Population))
	ds.Unmatched = Unmatched(ds.Districts)
	ds.Sources["metrics"] = in.Metrics
	ds.Sources["population"] = &fetcher.Table{Rows: in.Population}

	lots := make([]float64, len(ds.Districts))
	complaints := make([]float64, len(ds.Districts))
	for i, d := range ds.Districts {
		lots[i] = float64(d.ParkingLots)
		complaints[i] = float64(d.Complaints)
	}
	ds.Trend = stats.OLS(lots, complaints)
	ds.Correlation = model.Of(stats.Pearson(lots, complaints))

	if in.Complaints != nil {
		ex, err := NewDistrictExtractor(opts.DistrictPattern)
		if err != nil {
			return nil, err
		}
		raw := LoadComplaints(in.Complaints, opts.ComplaintColumns)
		ds.ComplaintRows = len(raw)
		ds.Complaints = FilterGeocoded(raw, ex)
		ds.Sample = Sample(ds.Complaints, opts.SampleSize, opts.SampleSeed)
		ds.Sources["complaints"] = in.Complaints
	}

	return ds, nil
}

// OptionsFromConfig maps configuration onto Options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		MetricsColumns: MetricsColumns{
			District:   cfg.Metrics.DistrictCol,
			Complaints: cfg.Metrics.ComplaintsCol,
			Lots:       cfg.Metrics.LotsCol,
		},
		PopulationRange: Range{
			StartRow:      cfg.Population.StartRow,
			EndRow:        cfg.Population.EndRow,
			DistrictCol:   cfg.Population.DistrictCol,
			PopulationCol: cfg.Population.PopulationCol,
		},
		ComplaintColumns: ComplaintColumns{
			Address:  cfg.Complaints.AddressCol,
			Lat:      cfg.Complaints.LatCol,
			Lon:      cfg.Complaints.LonCol,
			Received: cfg.Complaints.ReceivedCol,
		},
		DistrictPattern: cfg.Complaints.DistrictPattern,
		SampleSize:      cfg.Sample.Size,
		SampleSeed:      cfg.Sample.Seed,
	}
}

// Run reads every configured input once and builds the Dataset. A missing
// or unreadable file is returned as an error; the complaint file is skipped
// when its path is empty.
func Run(cfg *config.Config) (*Dataset, error) {
	log := zap.L().With(zap.String("phase", "prepare"))

	metrics, err := fetcher.ReadXLSXTable(cfg.Metrics.Path, fetcher.XLSXOptions{SheetIndex: cfg.Metrics.SheetIndex})
	if err != nil {
		return nil, eris.Wrap(err, "prepare: read metrics")
	}
	for _, col := range []string{cfg.Metrics.DistrictCol, cfg.Metrics.ComplaintsCol, cfg.Metrics.LotsCol} {
		if !metrics.HasCol(col) {
			log.Warn("metrics column not found, values default to 0", zap.String("column", col))
		}
	}

	population, err := fetcher.ReadXLSX(cfg.Population.Path, fetcher.XLSXOptions{SheetIndex: cfg.Population.SheetIndex})
	if err != nil {
		return nil, eris.Wrap(err, "prepare: read population")
	}

	in := Inputs{Metrics: metrics, Population: population}
	if cfg.Complaints.Path != "" {
		in.Complaints, err = fetcher.ReadCSV(cfg.Complaints.Path, fetcher.CSVOptions{
			Charset:    cfg.Complaints.Charset,
			HasHeader:  true,
			LazyQuotes: true,
		})
		if err != nil {
			return nil, eris.Wrap(err, "prepare: read complaints")
		}
	}

	ds, err := Build(in, OptionsFromConfig(cfg))
	if err != nil {
		return nil, err
	}

	log.Info("dataset prepared",
		zap.String("run_id", ds.RunID),
		zap.Int("districts", len(ds.Districts)),
		zap.Int("population_rows", len(ds.Population)),
		zap.Strings("unmatched", ds.Unmatched),
		zap.Int("complaint_rows", ds.ComplaintRows),
		zap.Int("geocoded", len(ds.Complaints)),
		zap.Int("sampled", len(ds.Sample)),
	)
	return ds, nil
}

// SampleMarkers converts the sampled complaints into map markers.
func (d *Dataset) SampleMarkers() []geo.Marker {
	out := make([]geo.Marker, len(d.Sample))
	for i, c := range d.Sample {
		out[i] = geo.Marker{
			ID:    c.Index,
			Point: geo.Point{Lat: c.Lat, Lon: c.Lon},
			Label: c.District,
			Popup: c.Popup(),
		}
	}
	return out
}

// CCTVLayer is the prepared CCTV location table.
type CCTVLayer struct {
	RunID   string           `json:"run_id" yaml:"run_id"`
	Sites   []model.CCTVSite `json:"sites" yaml:"sites"`
	Dropped int              `json:"dropped" yaml:"dropped"`
	Bounds  geo.Bounds       `json:"bounds" yaml:"bounds"`
	Source  *fetcher.Table   `json:"-" yaml:"-"`
}

// BuildCCTV prepares a CCTV layer from its raw table.
func BuildCCTV(t *fetcher.Table, cols CCTVColumns) *CCTVLayer {
	sites, dropped := LoadCCTV(t, cols)
	points := make([]geo.Point, len(sites))
	for i, s := range sites {
		points[i] = geo.Point{Lat: s.Lat, Lon: s.Lon}
	}
	return &CCTVLayer{
		RunID:   uuid.New().String(),
		Sites:   sites,
		Dropped: dropped,
		Bounds:  geo.BoundsOf(points),
		Source:  t,
	}
}

// RunCCTV reads the configured CCTV file and prepares its layer.
func RunCCTV(cfg *config.Config) (*CCTVLayer, error) {
	t, err := fetcher.ReadCSV(cfg.CCTV.Path, fetcher.CSVOptions{
		Charset:    cfg.CCTV.Charset,
		HasHeader:  true,
		LazyQuotes: true,
	})
	if err != nil {
		return nil, eris.Wrap(err, "prepare: read cctv")
	}

	layer := BuildCCTV(t, CCTVColumns{Site: cfg.CCTV.SiteCol, Lat: cfg.CCTV.LatCol, Lon: cfg.CCTV.LonCol})
	zap.L().Info("cctv layer prepared",
		zap.String("run_id", layer.RunID),
		zap.Int("sites", len(layer.Sites)),
		zap.Int("dropped", layer.Dropped),
	)
	return layer, nil
}

// Markers converts the CCTV sites into map markers.
func (l *CCTVLayer) Markers() []geo.Marker {
	out := make([]geo.Marker, len(l.Sites))
	for i, s := range l.Sites {
		out[i] = geo.Marker{
			ID:    s.Index,
			Point: geo.Point{Lat: s.Lat, Lon: s.Lon},
			Label: s.Name,
			Popup: s.Popup(),
		}
	}
	return out
}
