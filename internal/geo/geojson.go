package geo

import (
	"encoding/json"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// Marker is one clustered map point with a label and popup body.
type Marker struct {
	ID    int
	Point Point
	Label string
	Popup string
}

// FeatureCollection builds a GeoJSON point layer. Coordinates are written
// in GeoJSON (lon, lat) order.
func FeatureCollection(markers []Marker) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{
		Features: make([]*geojson.Feature, 0, len(markers)),
	}
	for _, m := range markers {
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       strconv.Itoa(m.ID),
			Geometry: geom.NewPointFlat(geom.XY, []float64{m.Point.Lon, m.Point.Lat}),
			Properties: map[string]any{
				"label": m.Label,
				"popup": m.Popup,
			},
		})
	}
	return fc
}

// MarshalMarkers encodes markers as a GeoJSON FeatureCollection.
func MarshalMarkers(markers []Marker) ([]byte, error) {
	b, err := json.Marshal(FeatureCollection(markers))
	if err != nil {
		return nil, eris.Wrap(err, "geo: marshal geojson")
	}
	return b, nil
}
