package geo

import "github.com/golang/geo/s2"

// Bounds is the lat/lon rectangle enclosing a set of markers.
type Bounds struct {
	South float64 `json:"south" yaml:"south"`
	West  float64 `json:"west" yaml:"west"`
	North float64 `json:"north" yaml:"north"`
	East  float64 `json:"east" yaml:"east"`
	Empty bool    `json:"empty" yaml:"empty"`
}

// BoundsOf returns the bounding rectangle of the valid points.
func BoundsOf(points []Point) Bounds {
	rect := s2.EmptyRect()
	for _, p := range points {
		ll := s2.LatLngFromDegrees(p.Lat, p.Lon)
		if !ll.IsValid() {
			continue
		}
		rect = rect.AddPoint(ll)
	}
	if rect.IsEmpty() {
		return Bounds{Empty: true}
	}
	lo, hi := rect.Lo(), rect.Hi()
	return Bounds{
		South: lo.Lat.Degrees(),
		West:  lo.Lng.Degrees(),
		North: hi.Lat.Degrees(),
		East:  hi.Lng.Degrees(),
	}
}

// Center returns the rectangle's center, or fallback when empty.
func (b Bounds) Center(fallback Point) Point {
	if b.Empty {
		return fallback
	}
	return Point{Lat: (b.South + b.North) / 2, Lon: (b.West + b.East) / 2}
}
