package prepare

import (
	"strings"

	"github.com/sells-group/parking-dashboard/internal/fetcher"
	"github.com/sells-group/parking-dashboard/internal/geo"
	"github.com/sells-group/parking-dashboard/internal/model"
)

// CCTVColumns names the header cells of the CCTV location table.
type CCTVColumns struct {
	Site string
	Lat  string
	Lon  string
}

// LoadCCTV reads camera sites, dropping rows that cannot be placed on a map.
// It returns the kept sites and the number dropped.
func LoadCCTV(t *fetcher.Table, cols CCTVColumns) ([]model.CCTVSite, int) {
	out := make([]model.CCTVSite, 0, len(t.Rows))
	dropped := 0
	for i, rec := range t.Rows {
		lat := geo.ParseCoord(t.Col(rec, cols.Lat))
		lon := geo.ParseCoord(t.Col(rec, cols.Lon))
		if !geo.Placeable(lat, lon) {
			dropped++
			continue
		}
		out = append(out, model.CCTVSite{
			Index: i,
			Name:  strings.TrimSpace(t.Col(rec, cols.Site)),
			Lat:   *lat,
			Lon:   *lon,
		})
	}
	return out, dropped
}
