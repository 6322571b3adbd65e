package geo

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/skyroutes/flightpath"
)

// MaxLatitude is the latitude, in degrees, beyond which Mercator misses.
// At this latitude the projected map is square.
const MaxLatitude = 85.05112878

// Projection maps latitude and longitude, in degrees, onto the plane. It
// reports false for points it cannot place.
type Projection interface {
	Project(lat, lon float64) (flightpath.Point, bool)
}

var _ Projection = Mercator{}
var _ Projection = LonLat{}

// Locate projects p and returns nil on a miss, which is what
// [flightpath.BuildCurve] expects for an absent endpoint.
func Locate(proj Projection, p GeoPoint) *flightpath.Point {
	pt, ok := proj.Project(p.Lat, p.Lon)
	if !ok {
		return nil
	}
	return &pt
}

// Mercator is a spherical Mercator projection onto a y-down screen, set up the
// way web mapping libraries do it.
type Mercator struct {
	// Scale is the number of screen units per radian of longitude.
	Scale float64
	// Translate is where Center ends up on screen.
	Translate flightpath.Point
	// Center is the (lon, lat) in degrees that is projected to Translate.
	Center flightpath.Point
	// Rotate is added to every longitude before projecting, in degrees.
	Rotate float64
	// Clip, when set, turns every point projected outside it into a miss.
	Clip *flightpath.Rect
}

// NewAtlasMercator returns the projection used by the atlas view of a
// width×height canvas: the whole world in view, centred horizontally and
// shifted down to leave room for the northern hemisphere.
func NewAtlasMercator(width, height float64) Mercator {
	return Mercator{
		Scale:     width / 6,
		Translate: flightpath.Pt(width/2, height/1.5),
	}
}

// Project implements [Projection]. It misses for invalid coordinates and
// for latitudes beyond [MaxLatitude].
func (m Mercator) Project(lat, lon float64) (flightpath.Point, bool) {
	ll := s2.LatLngFromDegrees(lat, lon)
	if !ll.IsValid() || math.Abs(lat) > MaxLatitude {
		return flightpath.Point{}, false
	}
	r := m.FromLatLng(ll)
	pt := flightpath.Pt(r.X, r.Y)
	if !pt.IsFinite() {
		return flightpath.Point{}, false
	}
	if m.Clip != nil && !m.Clip.Contains(pt) {
		return flightpath.Point{}, false
	}
	return pt, true
}

// FromLatLng projects ll without any checks.
func (m Mercator) FromLatLng(ll s2.LatLng) r2.Point {
	x, y := mercatorRaw(m.rotate(ll.Lng), ll.Lat)
	x0, y0 := m.center()
	return r2.Point{
		X: m.Translate.X + m.Scale*(x-x0),
		Y: m.Translate.Y - m.Scale*(y-y0),
	}
}

// ToLatLng is the inverse of [Mercator.FromLatLng].
func (m Mercator) ToLatLng(pt r2.Point) s2.LatLng {
	x0, y0 := m.center()
	x := (pt.X-m.Translate.X)/m.Scale + x0
	y := (m.Translate.Y-pt.Y)/m.Scale + y0
	lat := s1.Angle(2*math.Atan(math.Exp(y)) - math.Pi/2)
	lng := (s1.Angle(x) - s1.Angle(m.Rotate)*s1.Degree).Normalized()
	return s2.LatLng{Lat: lat, Lng: lng}
}

func (m Mercator) rotate(lng s1.Angle) s1.Angle {
	if m.Rotate == 0 {
		return lng
	}
	return (lng + s1.Angle(m.Rotate)*s1.Degree).Normalized()
}

func (m Mercator) center() (x, y float64) {
	if m.Center == (flightpath.Point{}) {
		return 0, 0
	}
	c := s2.LatLngFromDegrees(m.Center.Y, m.Center.X)
	return mercatorRaw(c.Lng, c.Lat)
}

func mercatorRaw(lng, lat s1.Angle) (x, y float64) {
	return lng.Radians(), math.Log(math.Tan(math.Pi/4 + lat.Radians()/2))
}

// LonLat is the identity projection: x is the longitude and y the latitude,
// both in degrees. Curves built in this space are meant to be handed to
// renderers that project them themselves.
type LonLat struct{}

// Project implements [Projection]. It misses only for invalid coordinates.
func (LonLat) Project(lat, lon float64) (flightpath.Point, bool) {
	if !s2.LatLngFromDegrees(lat, lon).IsValid() {
		return flightpath.Point{}, false
	}
	return flightpath.Pt(lon, lat), true
}
