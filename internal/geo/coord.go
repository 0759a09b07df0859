// Package geo provides coordinate parsing, map bounds and GeoJSON marker
// layers for the dashboard maps.
package geo

import (
	"math"
	"strconv"
	"strings"

	"github.com/golang/geo/s2"
)

// Point is a WGS84 latitude/longitude pair in degrees.
type Point struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// ParseCoord parses a coordinate cell. Blank, non-numeric and non-finite
// cells return nil.
func ParseCoord(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Placeable reports whether both coordinates are present and non-zero.
// A zero coordinate is the sources' placeholder for "not geocoded".
func Placeable(lat, lon *float64) bool {
	return lat != nil && lon != nil && *lat != 0 && *lon != 0
}

// Valid reports whether p lies within the WGS84 range.
func (p Point) Valid() bool {
	return s2.LatLngFromDegrees(p.Lat, p.Lon).IsValid()
}
