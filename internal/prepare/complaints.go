package prepare

import (
	"regexp"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/parking-dashboard/internal/fetcher"
	"github.com/sells-group/parking-dashboard/internal/geo"
	"github.com/sells-group/parking-dashboard/internal/model"
)

// ComplaintColumns names the header cells of the complaint report table.
type ComplaintColumns struct {
	Address  string
	Lat      string
	Lon      string
	Received string
}

// LoadComplaints reads raw complaint rows. Index is the data row position.
func LoadComplaints(t *fetcher.Table, cols ComplaintColumns) []model.ComplaintRow {
	out := make([]model.ComplaintRow, len(t.Rows))
	for i, rec := range t.Rows {
		row := model.ComplaintRow{
			Index:   i,
			Address: strings.TrimSpace(t.Col(rec, cols.Address)),
			Lat:     geo.ParseCoord(t.Col(rec, cols.Lat)),
			Lon:     geo.ParseCoord(t.Col(rec, cols.Lon)),
		}
		if cols.Received != "" {
			row.ReceivedAt = strings.TrimSpace(t.Col(rec, cols.Received))
		}
		out[i] = row
	}
	return out
}

// DistrictExtractor pulls a district name out of a free-text address.
type DistrictExtractor struct {
	re    *regexp.Regexp
	group int
}

// NewDistrictExtractor compiles pattern. The first capture group is the
// district; a pattern without groups uses the whole match.
func NewDistrictExtractor(pattern string) (*DistrictExtractor, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, eris.Wrapf(err, "prepare: compile district pattern %q", pattern)
	}
	group := 0
	if re.NumSubexp() > 0 {
		group = 1
	}
	return &DistrictExtractor{re: re, group: group}, nil
}

// Extract returns the district in addr, or false when the pattern does not match.
func (d *DistrictExtractor) Extract(addr string) (string, bool) {
	m := d.re.FindStringSubmatch(addr)
	if m == nil {
		return "", false
	}
	district := normalizeDistrict(m[d.group])
	if district == "" {
		return "", false
	}
	return district, true
}

// FilterGeocoded keeps rows whose address yields a district and whose
// coordinates are present and non-zero. Input order is preserved.
func FilterGeocoded(rows []model.ComplaintRow, ex *DistrictExtractor) []model.GeocodedComplaint {
	out := make([]model.GeocodedComplaint, 0, len(rows))
	for _, r := range rows {
		district, ok := ex.Extract(r.Address)
		if !ok {
			continue
		}
		if !geo.Placeable(r.Lat, r.Lon) {
			continue
		}
		out = append(out, model.GeocodedComplaint{
			Index:      r.Index,
			District:   district,
			Address:    r.Address,
			Lat:        *r.Lat,
			Lon:        *r.Lon,
			ReceivedAt: r.ReceivedAt,
		})
	}
	return out
}
