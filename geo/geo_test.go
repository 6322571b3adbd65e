package geo

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/skyroutes/flightpath"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func assertNear(t *testing.T, got, want flightpath.Point, epsilon float64) {
	t.Helper()
	if d := got.Distance(want); d > epsilon || math.IsNaN(d) {
		t.Errorf("got %s, expected %s", got, want)
	}
}

var (
	london = GeoPoint{ID: "london", Lat: 51.5072, Lon: -0.1276, Label: "London"}
	ny     = GeoPoint{ID: "ny", Lat: 40.7128, Lon: -74.006, Label: "New York"}
	tokyo  = GeoPoint{ID: "tokyo", Lat: 35.6762, Lon: 139.6503}
)

func TestGeoPoint(t *testing.T) {
	if !london.Valid() {
		t.Errorf("%v should be valid", london)
	}
	for _, p := range []GeoPoint{
		{Lat: 91},
		{Lat: -90.5},
		{Lon: 180.1},
		{Lat: math.NaN()},
	} {
		if p.Valid() {
			t.Errorf("%v shouldn't be valid", p)
		}
	}
	diff(t, london.DisplayName(), "London")
	diff(t, tokyo.DisplayName(), "tokyo")
	diff(t, Connection{From: "a", To: "b"}.String(), "a → b")
}

func TestCatalogLookup(t *testing.T) {
	dup := GeoPoint{ID: "london", Lat: 1, Lon: 1}
	c := NewCatalog([]GeoPoint{london, ny, dup})
	if c.Len() != 3 {
		t.Errorf("got %d points, want 3", c.Len())
	}

	got, ok := c.Lookup("london")
	if !ok {
		t.Fatal("london not found")
	}
	diff(t, got, london)

	if _, ok := c.Lookup("atlantis"); ok {
		t.Error("found a point that doesn't exist")
	}
}

func TestCatalogResolve(t *testing.T) {
	c := NewCatalog([]GeoPoint{london, ny, tokyo})
	conns := []Connection{
		{From: "london", To: "ny"},
		{From: "london", To: "atlantis"},
		{From: "ny", To: "tokyo", Color: "#123456"},
		{From: "nowhere", To: "tokyo"},
		{From: "tokyo", To: "london"},
	}
	routes, skipped := c.Resolve(conns, Palette{"#a", "#b", "#c"})
	if skipped != 2 {
		t.Errorf("got %d skipped connections, want 2", skipped)
	}
	want := []Route{
		{Index: 0, From: london, To: ny, Color: "#a"},
		{Index: 2, From: ny, To: tokyo, Color: "#123456"},
		{Index: 4, From: tokyo, To: london, Color: "#b"},
	}
	diff(t, routes, want)
}

func TestCatalogResolveEmpty(t *testing.T) {
	routes, skipped := NewCatalog(nil).Resolve([]Connection{{From: "a", To: "b"}}, nil)
	if len(routes) != 0 || skipped != 1 {
		t.Errorf("got %v routes and %d skipped, want none and 1", routes, skipped)
	}
}

func TestPalette(t *testing.T) {
	if len(VectorPalette) != 20 || len(BrightPalette) != 20 {
		t.Fatalf("palettes have %d and %d colours, want 20", len(VectorPalette), len(BrightPalette))
	}
	diff(t, VectorPalette.At(0), "#FF6B6B")
	diff(t, VectorPalette.At(20), "#FF6B6B")
	diff(t, BrightPalette.At(21), "#6DFF9E")
	diff(t, BrightPalette.At(-1), "#C86DFF")
	diff(t, Palette(nil).At(3), DefaultColor)

	p, ok := PaletteByName("bright")
	if !ok {
		t.Fatal("bright palette not found")
	}
	diff(t, p, BrightPalette)
	if _, ok := PaletteByName("neon"); ok {
		t.Error("found a palette that doesn't exist")
	}
}

func TestAtlasMercator(t *testing.T) {
	const epsilon = 1e-9
	m := NewAtlasMercator(960, 600)

	pt, ok := m.Project(0, 0)
	if !ok {
		t.Fatal("origin missed")
	}
	assertNear(t, pt, flightpath.Pt(480, 400), epsilon)

	pt, _ = m.Project(0, 90)
	assertNear(t, pt, flightpath.Pt(480+160*math.Pi/2, 400), epsilon)

	pt, _ = m.Project(45, 0)
	assertNear(t, pt, flightpath.Pt(480, 400-160*math.Log(math.Tan(3*math.Pi/8))), epsilon)

	// North is up.
	north, _ := m.Project(60, 0)
	south, _ := m.Project(-60, 0)
	if north.Y >= 400 || south.Y <= 400 {
		t.Errorf("got north %v and south %v around equator at y=400", north, south)
	}
}

func TestMercatorMiss(t *testing.T) {
	m := NewAtlasMercator(960, 600)
	for _, ll := range [][2]float64{
		{86, 0},
		{-89, 10},
		{90, 0},
		{0, 181},
		{math.NaN(), 0},
		{0, math.Inf(1)},
	} {
		if pt, ok := m.Project(ll[0], ll[1]); ok {
			t.Errorf("Project(%v, %v) = %v, want miss", ll[0], ll[1], pt)
		}
	}

	clip := flightpath.NewRectFromSize(960, 600)
	m.Clip = &clip
	if _, ok := m.Project(0, 0); !ok {
		t.Error("point inside the clip rectangle missed")
	}
	// 179°E lands past the right edge of a canvas centred on 0°.
	if pt, ok := m.Project(0, 179); ok {
		t.Errorf("got %v outside the clip rectangle", pt)
	}
}

func TestMercatorCenter(t *testing.T) {
	m := Mercator{
		Scale:     100,
		Translate: flightpath.Pt(50, 50),
		Center:    flightpath.Pt(10, 20),
	}
	pt, ok := m.Project(20, 10)
	if !ok {
		t.Fatal("center missed")
	}
	assertNear(t, pt, flightpath.Pt(50, 50), 1e-9)
}

func TestMercatorRotate(t *testing.T) {
	m := Mercator{Scale: 1, Rotate: 90}
	pt, _ := m.Project(0, 0)
	assertNear(t, pt, flightpath.Pt(math.Pi/2, 0), 1e-12)

	// Rotation wraps around the antimeridian.
	pt, _ = m.Project(0, 120)
	assertNear(t, pt, flightpath.Pt(-5*math.Pi/6, 0), 1e-12)
}

func TestMercatorInverse(t *testing.T) {
	m := Mercator{
		Scale:     153,
		Translate: flightpath.Pt(480, 250),
		Center:    flightpath.Pt(-30, 10),
		Rotate:    20,
	}
	for _, p := range []GeoPoint{london, ny, tokyo, {Lat: -33.8688, Lon: 151.2093}} {
		ll := m.ToLatLng(m.FromLatLng(p.LatLng()))
		diff(t, []float64{ll.Lat.Degrees(), ll.Lng.Degrees()}, []float64{p.Lat, p.Lon},
			cmpopts.EquateApprox(0, 1e-9))
	}
}

func TestLonLat(t *testing.T) {
	pt, ok := LonLat{}.Project(ny.Lat, ny.Lon)
	if !ok {
		t.Fatal("valid point missed")
	}
	diff(t, pt, flightpath.Pt(-74.006, 40.7128))

	if _, ok := (LonLat{}).Project(95, 0); ok {
		t.Error("invalid latitude didn't miss")
	}
}

func TestLocate(t *testing.T) {
	if p := Locate(LonLat{}, tokyo); p == nil || *p != flightpath.Pt(tokyo.Lon, tokyo.Lat) {
		t.Errorf("got %v, want tokyo's coordinates", p)
	}
	if p := Locate(NewAtlasMercator(960, 600), GeoPoint{Lat: 89}); p != nil {
		t.Errorf("got %v, want nil", *p)
	}
}

func TestHaversine(t *testing.T) {
	// London to New York is roughly 5570 km.
	d := Haversine(london, ny)
	if math.Abs(d-5570e3) > 10e3 {
		t.Errorf("got %.0f m between London and New York", d)
	}
	if d := Haversine(tokyo, tokyo); d != 0 {
		t.Errorf("got %v m from a point to itself", d)
	}

	diff(t, Route{From: london, To: ny}.Distance(), d)

	// A quarter of the equator.
	q := Haversine(GeoPoint{}, GeoPoint{Lon: 90})
	if math.Abs(q-EarthRadius*math.Pi/2) > 1e-6 {
		t.Errorf("got %v m for a quarter of the equator", q)
	}
}
