package model

import (
	"fmt"
	"html"
)

// ComplaintRow is one raw illegal-parking report. Lat/Lon are nil when the
// source cell is blank or not a number.
type ComplaintRow struct {
	Index      int      `json:"index"`
	Address    string   `json:"address"`
	Lat        *float64 `json:"lat"`
	Lon        *float64 `json:"lon"`
	ReceivedAt string   `json:"received_at"`
}

// GeocodedComplaint is a report with an extracted district and a usable,
// non-zero coordinate pair. Index is the row position in the source file.
type GeocodedComplaint struct {
	Index      int     `json:"index" yaml:"index"`
	District   string  `json:"district" yaml:"district"`
	Address    string  `json:"address" yaml:"address"`
	Lat        float64 `json:"lat" yaml:"lat"`
	Lon        float64 `json:"lon" yaml:"lon"`
	ReceivedAt string  `json:"received_at" yaml:"received_at"`
}

// Popup renders the marker popup body.
func (c GeocodedComplaint) Popup() string {
	return fmt.Sprintf("%s<br>주소: %s<br>일시: %s",
		html.EscapeString(c.District),
		html.EscapeString(c.Address),
		html.EscapeString(c.ReceivedAt),
	)
}
