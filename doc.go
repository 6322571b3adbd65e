// Package flightpath computes curved connectors between pairs of points, the
// kind of bowed "flight path" a route map draws between two cities, together
// with the position and orientation of an arrowhead marker near the end of
// each connector.
//
// # Strategies
//
// Three interchangeable strategies derive a curve from two endpoints:
//
//   - [MidpointOffset] lifts the chord's midpoint by a fixed offset toward the
//     top of the viewport and returns the three-point control polygon
//     [from, mid, to], meant to be smoothed with a B-spline basis (see [Basis]).
//   - [PerpendicularOffset] pushes the control point of a quadratic Bézier
//     sideways, perpendicular to the direction of travel, so every connector
//     bows to the same side regardless of its orientation.
//   - [ParabolicSampled] works on raw (longitude, latitude) pairs and samples a
//     parabolic arc into a polyline for renderers that only draw line strings.
//
// Select a strategy with [NewBuilder], or call [BuildCurve] directly. All
// strategies are pure functions of their inputs and are safe for concurrent
// use.
//
// # Missing endpoints
//
// A point that could not be projected onto the map is not an error. At the
// [BuildCurve] boundary it is a nil *[Point], and the call reports ok == false;
// callers omit that connection and carry on.
//
// # Geometry
//
// The builders are written in terms of a small set of 2D primitives: [Point],
// [Vec2], [Line], [QuadBez], [CubicBez], [BezPath], [Affine], and [Rect]. A
// [Curve] converts itself to a [BezPath] with [Curve.Path], and paths render to
// SVG path data with [SVG].
//
// Coordinates follow the usual graphics convention of a y-down plane. In that
// plane [PerpendicularOffset] bows to the right of the direction of travel and
// [MidpointOffset] with a positive offset bows toward the top of the screen.
package flightpath
