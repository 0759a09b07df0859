package model

import "html"

// CCTVSite is one installed camera location.
type CCTVSite struct {
	Index int     `json:"index" yaml:"index"`
	Name  string  `json:"name" yaml:"name"`
	Lat   float64 `json:"lat" yaml:"lat"`
	Lon   float64 `json:"lon" yaml:"lon"`
}

// Popup renders the marker popup body.
func (s CCTVSite) Popup() string {
	return html.EscapeString(s.Name)
}
