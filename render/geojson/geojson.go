// Package geojson exports a [render.Scene] as a GeoJSON FeatureCollection for
// web map libraries. Plan the scene with the [geo.LonLat] projection so
// coordinates come out as longitude and latitude.
package geojson

import (
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/skyroutes/flightpath"
	"github.com/skyroutes/flightpath/render"
)

// Feature kinds, stored in the "kind" property.
const (
	KindRoute = "route"
	KindArrow = "arrow"
	KindCity  = "city"
)

// Options selects what goes into the collection.
type Options struct {
	// Straight replaces every curve with the straight line between its
	// endpoints and marks it dashed.
	Straight bool
	// Arrows adds a point feature per route carrying the arrowhead's
	// rotation in degrees.
	Arrows bool
	Cities bool
	// Segments is the number of line segments each cubic or quadratic piece
	// of a curve is flattened into. Sampled curves are used as they are.
	Segments int
}

// DefaultOptions includes arrows and cities.
func DefaultOptions() Options {
	return Options{Arrows: true, Cities: true, Segments: 16}
}

// Build converts sc into a feature collection. Routes come first, then
// arrowheads, then cities.
func Build(sc *render.Scene, opts Options) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	var arrows []*geojson.Feature
	for _, r := range sc.Routes {
		line, arrow := routeGeometry(r.Curve, opts)
		f := geojson.NewFeature(line)
		f.ID = routeID(r)
		f.Properties["kind"] = KindRoute
		f.Properties["color"] = r.Color
		f.Properties["from"] = r.From.ID
		f.Properties["to"] = r.To.ID
		f.Properties["curve"] = r.Curve.Kind.String()
		f.Properties["dashed"] = opts.Straight
		fc.Append(f)

		if opts.Arrows {
			a := geojson.NewFeature(point(arrow.Position))
			a.ID = routeID(r) + "-arrow"
			a.Properties["kind"] = KindArrow
			a.Properties["color"] = r.Color
			a.Properties["rotation"] = arrow.Angle
			arrows = append(arrows, a)
		}
	}
	for _, a := range arrows {
		fc.Append(a)
	}

	if opts.Cities {
		for _, c := range sc.Cities {
			f := geojson.NewFeature(point(c.Pos))
			f.ID = c.ID
			f.Properties["kind"] = KindCity
			f.Properties["label"] = c.DisplayName()
			if c.Content != "" {
				f.Properties["content"] = c.Content
			}
			if c.Color != "" {
				f.Properties["color"] = c.Color
			}
			f.Properties["origin"] = c.Role&render.Origin != 0
			f.Properties["destination"] = c.Role&render.Destination != 0
			fc.Append(f)
		}
	}
	return fc
}

// Write writes the collection built from sc as JSON.
func Write(w io.Writer, sc *render.Scene, opts Options) error {
	b, err := Build(sc, opts).MarshalJSON()
	if err != nil {
		return fmt.Errorf("geojson: encoding scene: %w", err)
	}
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("geojson: %w", err)
	}
	return nil
}

func routeGeometry(c flightpath.Curve, opts Options) (orb.LineString, flightpath.ArrowHead) {
	if opts.Straight {
		start, end := c.Start(), c.End()
		return orb.LineString{point(start), point(end)}, flightpath.ArrowFromSamples(start, end)
	}
	var pts []flightpath.Point
	if c.Kind == flightpath.SampledKind {
		pts = c.Points
	} else if lines := c.Path().Flatten(max(opts.Segments, 1)); len(lines) > 0 {
		pts = lines[0]
	}
	ls := make(orb.LineString, len(pts))
	for i, p := range pts {
		ls[i] = point(p)
	}
	return ls, c.Arrow
}

func point(p flightpath.Point) orb.Point {
	return orb.Point{p.X, p.Y}
}

func routeID(r render.PlannedRoute) string {
	return fmt.Sprintf("route-%d", r.Index)
}
