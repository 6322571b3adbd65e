// Package geo holds the geographic side of a route map: named points, the
// connections between them, colour palettes, and the projections that turn
// latitude and longitude into plane coordinates.
//
// A point that cannot be placed on the map is reported as a miss (ok ==
// false), never as an error. Callers skip whatever depends on it.
package geo

import (
	"fmt"

	"github.com/golang/geo/s2"
)

// GeoPoint is a named place on the globe. Lat and Lon are in degrees.
type GeoPoint struct {
	ID      string  `mapstructure:"id" json:"id"`
	Lat     float64 `mapstructure:"lat" json:"lat"`
	Lon     float64 `mapstructure:"lon" json:"lon"`
	Label   string  `mapstructure:"label" json:"label,omitempty"`
	Content string  `mapstructure:"content" json:"content,omitempty"`
	Color   string  `mapstructure:"color" json:"color,omitempty"`
}

// LatLng returns the point as an s2.LatLng.
func (p GeoPoint) LatLng() s2.LatLng {
	return s2.LatLngFromDegrees(p.Lat, p.Lon)
}

// Valid reports whether the latitude is within [-90, 90] and the longitude
// within [-180, 180].
func (p GeoPoint) Valid() bool {
	return p.LatLng().IsValid()
}

// DisplayName returns the label, or the id if there is none.
func (p GeoPoint) DisplayName() string {
	if p.Label != "" {
		return p.Label
	}
	return p.ID
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("%s(%g, %g)", p.ID, p.Lat, p.Lon)
}

// Connection links two points by id. Color overrides the palette colour.
type Connection struct {
	From  string `mapstructure:"from" json:"from"`
	To    string `mapstructure:"to" json:"to"`
	Color string `mapstructure:"color" json:"color,omitempty"`
}

func (c Connection) String() string {
	return c.From + " → " + c.To
}

// Route is a connection whose endpoints were found.
type Route struct {
	// Index is the position of the connection in the list it was resolved
	// from.
	Index int
	From  GeoPoint
	To    GeoPoint
	Color string
}

// Distance returns the great-circle distance between the route's endpoints,
// in metres.
func (r Route) Distance() float64 {
	return Haversine(r.From, r.To)
}
