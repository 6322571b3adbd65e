// Package render turns a list of places and connections into a [Scene]: the
// projected cities and the curved, arrow-tipped routes between them. The
// sub-packages write scenes out as SVG, GeoJSON, or PNG.
package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/skyroutes/flightpath"
	"github.com/skyroutes/flightpath/geo"
)

// Reasons a connection is left out of a scene.
const (
	ReasonUnresolved     = "unresolved"
	ReasonProjectionMiss = "projection_miss"
)

// Recorder is told about every connection Plan draws or skips.
type Recorder interface {
	RouteDrawn(s flightpath.Strategy)
	RouteSkipped(s flightpath.Strategy, reason string)
}

type nopRecorder struct{}

func (nopRecorder) RouteDrawn(flightpath.Strategy)           {}
func (nopRecorder) RouteSkipped(flightpath.Strategy, string) {}

// Role marks what part a city plays in the drawn routes.
type Role uint8

const (
	Origin Role = 1 << iota
	Destination
)

// City is a catalog point placed on the scene.
type City struct {
	geo.GeoPoint
	Pos  flightpath.Point
	Role Role
}

// PlannedRoute is a resolved connection together with its curve.
type PlannedRoute struct {
	geo.Route
	Curve flightpath.Curve
}

// Stats counts what happened to the connections of a scene.
type Stats struct {
	Drawn          int
	Unresolved     int
	ProjectionMiss int
}

// Skipped returns the number of connections that weren't drawn.
func (s Stats) Skipped() int {
	return s.Unresolved + s.ProjectionMiss
}

// Scene is everything a backend needs to draw a route map.
type Scene struct {
	Width, Height float64
	Strategy      flightpath.Strategy
	Cities        []City
	Routes        []PlannedRoute
	Stats         Stats
}

// Input describes a scene to plan.
type Input struct {
	Catalog     *geo.Catalog
	Connections []geo.Connection
	// Projection places points on the scene. Nil means the atlas view's
	// Mercator for Width×Height.
	Projection geo.Projection
	Strategy   flightpath.Strategy
	Options    flightpath.Options
	Palette    geo.Palette
	Width      float64
	Height     float64
	// Logger overrides the package logger; see SetLogger.
	Logger   *slog.Logger
	Recorder Recorder
}

// Plan resolves, projects and builds every connection of in. Connections
// with unknown endpoints or endpoints the projection can't place are left
// out and counted in the scene's Stats; they are not errors. Plan fails only
// for an invalid strategy or a cancelled context.
func Plan(ctx context.Context, in Input) (*Scene, error) {
	if !in.Strategy.Valid() {
		return nil, fmt.Errorf("render: %w: %v", flightpath.ErrUnknownStrategy, in.Strategy)
	}
	cat := in.Catalog
	if cat == nil {
		cat = geo.NewCatalog(nil)
	}
	proj := in.Projection
	if proj == nil {
		proj = geo.NewAtlasMercator(in.Width, in.Height)
	}
	log := in.Logger
	if log == nil {
		log = Logger()
	}
	rec := in.Recorder
	if rec == nil {
		rec = nopRecorder{}
	}
	log = log.With("strategy", in.Strategy.String())

	sc := &Scene{
		Width:    in.Width,
		Height:   in.Height,
		Strategy: in.Strategy,
		Routes:   make([]PlannedRoute, 0, len(in.Connections)),
	}
	roles := make(map[string]Role)
	skip := func(conn geo.Connection, reason string) {
		rec.RouteSkipped(in.Strategy, reason)
		log.DebugContext(ctx, "skipping connection", "from", conn.From, "to", conn.To, "reason", reason)
	}

	for i, conn := range in.Connections {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("render: planning interrupted after %d of %d connections: %w", i, len(in.Connections), err)
		}
		r, ok := cat.Route(i, conn, in.Palette)
		if !ok {
			sc.Stats.Unresolved++
			skip(conn, ReasonUnresolved)
			continue
		}
		c, ok := buildCurve(proj, in.Strategy, r, in.Options)
		if !ok {
			sc.Stats.ProjectionMiss++
			skip(conn, ReasonProjectionMiss)
			continue
		}
		sc.Routes = append(sc.Routes, PlannedRoute{Route: r, Curve: c})
		sc.Stats.Drawn++
		rec.RouteDrawn(in.Strategy)
		roles[r.From.ID] |= Origin
		roles[r.To.ID] |= Destination
	}

	for _, p := range cat.Points() {
		pos, ok := proj.Project(p.Lat, p.Lon)
		if !ok {
			log.DebugContext(ctx, "city off the map", "id", p.ID)
			continue
		}
		sc.Cities = append(sc.Cities, City{GeoPoint: p, Pos: pos, Role: roles[p.ID]})
	}

	log.InfoContext(ctx, "planned scene",
		"drawn", sc.Stats.Drawn,
		"unresolved", sc.Stats.Unresolved,
		"projection_miss", sc.Stats.ProjectionMiss,
		"cities", len(sc.Cities))
	return sc, nil
}

// buildCurve builds the curve of r on the scene. Parabolic arcs are
// sampled in (lon, lat) and every sample is projected, so they keep bowing
// north whatever the projection. False means a point the projection
// couldn't place.
func buildCurve(proj geo.Projection, s flightpath.Strategy, r geo.Route, opts flightpath.Options) (flightpath.Curve, bool) {
	from := geo.Locate(proj, r.From)
	to := geo.Locate(proj, r.To)
	if _, lonLat := proj.(geo.LonLat); s != flightpath.ParabolicSampled || lonLat || from == nil || to == nil {
		return flightpath.BuildCurve(s, from, to, opts)
	}

	c, ok := flightpath.BuildCurve(s, lonLatOf(r.From), lonLatOf(r.To), opts)
	if !ok {
		return flightpath.Curve{}, false
	}
	pts := make([]flightpath.Point, len(c.Points))
	for i, p := range c.Points {
		pt, ok := proj.Project(p.Y, p.X)
		if !ok {
			return flightpath.Curve{}, false
		}
		pts[i] = pt
	}
	n := len(pts)
	c.Points = pts
	c.Arrow = flightpath.ArrowFromSamples(pts[n-2], pts[n-1])
	return c, true
}

func lonLatOf(p geo.GeoPoint) *flightpath.Point {
	pt := flightpath.Pt(p.Lon, p.Lat)
	return &pt
}

// ErrEmptyScene is returned by backends asked to draw a scene without a
// canvas size.
var ErrEmptyScene = errors.New("render: scene has no size")

// CheckSize returns ErrEmptyScene unless the scene has a positive width and
// height.
func (sc *Scene) CheckSize() error {
	if sc.Width <= 0 || sc.Height <= 0 {
		return fmt.Errorf("%w: %gx%g", ErrEmptyScene, sc.Width, sc.Height)
	}
	return nil
}

// Legend returns one line per drawn route, "From → To (distance km)".
func (sc *Scene) Legend() []string {
	out := make([]string, len(sc.Routes))
	for i, r := range sc.Routes {
		out[i] = fmt.Sprintf("%s → %s (%.0f km)", r.From.DisplayName(), r.To.DisplayName(), r.Distance()/1000)
	}
	return out
}

// Bounds returns the smallest rectangle enclosing every city and route
// curve, or false for an empty scene.
func (sc *Scene) Bounds() (flightpath.Rect, bool) {
	var r flightpath.Rect
	first := true
	add := func(o flightpath.Rect) {
		if first {
			r, first = o, false
		} else {
			r = r.Union(o)
		}
	}
	for _, c := range sc.Cities {
		add(flightpath.NewRectFromPoints(c.Pos, c.Pos))
	}
	for _, rt := range sc.Routes {
		add(rt.Curve.BoundingBox())
	}
	return r, !first
}
