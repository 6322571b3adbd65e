package flightpath

import (
	"fmt"
)

// CurveKind tells a renderer how to interpret [Curve.Points].
type CurveKind int

const (
	// BasisKind is a control polygon [start, control, end] meant to be
	// smoothed with a B-spline basis; see [Basis].
	BasisKind CurveKind = iota + 1
	// QuadraticKind is a quadratic Bézier [start, control, end].
	QuadraticKind
	// SampledKind is a polyline of points along the curve.
	SampledKind
)

func (k CurveKind) String() string {
	switch k {
	case BasisKind:
		return "basis"
	case QuadraticKind:
		return "quadratic"
	case SampledKind:
		return "sampled"
	default:
		return fmt.Sprintf("CurveKind(%d)", int(k))
	}
}

// Curve is the connector computed for one pair of endpoints, together with
// the placement of its arrowhead.
type Curve struct {
	Kind   CurveKind
	Points []Point
	Arrow  ArrowHead
}

// Start returns the first point of the curve.
func (c Curve) Start() Point {
	if len(c.Points) == 0 {
		return Point{}
	}
	return c.Points[0]
}

// End returns the last point of the curve.
func (c Curve) End() Point {
	if len(c.Points) == 0 {
		return Point{}
	}
	return c.Points[len(c.Points)-1]
}

// Control returns the single control point of basis and quadratic curves.
// Sampled curves have no control point and report false.
func (c Curve) Control() (Point, bool) {
	if (c.Kind == BasisKind || c.Kind == QuadraticKind) && len(c.Points) == 3 {
		return c.Points[1], true
	}
	return Point{}, false
}

// Quad returns the quadratic Bézier of a QuadraticKind curve.
func (c Curve) Quad() (QuadBez, bool) {
	if c.Kind != QuadraticKind || len(c.Points) != 3 {
		return QuadBez{}, false
	}
	return QuadBez{c.Points[0], c.Points[1], c.Points[2]}, true
}

// Path converts the curve into drawing commands: a B-spline basis for
// BasisKind, a single QuadTo for QuadraticKind, and line segments for
// SampledKind.
func (c Curve) Path() BezPath {
	if len(c.Points) == 0 {
		return nil
	}
	switch c.Kind {
	case BasisKind:
		return Basis(c.Points)
	case QuadraticKind:
		if q, ok := c.Quad(); ok {
			return BezPath{MoveTo(q.P0), QuadTo(q.P1, q.P2)}
		}
	}
	p := BezPath{MoveTo(c.Points[0])}
	for _, pt := range c.Points[1:] {
		p.LineTo(pt)
	}
	return p
}

// BoundingBox returns the bounds of the rendered curve, which for basis and
// quadratic curves is tighter than the bounds of their control points.
func (c Curve) BoundingBox() Rect {
	return c.Path().BoundingBox()
}

// Builder computes the connector between two endpoints. Implementations are
// pure and safe for concurrent use.
type Builder interface {
	Build(from, to Point) Curve
	Strategy() Strategy
}

// MidpointOffsetBuilder implements [MidpointOffset].
type MidpointOffsetBuilder struct {
	HeightOffset    float64
	ArrowPercentage float64
}

// PerpendicularOffsetBuilder implements [PerpendicularOffset].
type PerpendicularOffsetBuilder struct {
	Curvature float64
}

// ParabolicBuilder implements [ParabolicSampled]. Points are (lon, lat)
// pairs stored as (X, Y).
type ParabolicBuilder struct {
	Steps        int
	HeightFactor float64
}

var _ Builder = MidpointOffsetBuilder{}
var _ Builder = PerpendicularOffsetBuilder{}
var _ Builder = ParabolicBuilder{}

func (MidpointOffsetBuilder) Strategy() Strategy      { return MidpointOffset }
func (PerpendicularOffsetBuilder) Strategy() Strategy { return PerpendicularOffset }
func (ParabolicBuilder) Strategy() Strategy           { return ParabolicSampled }

func (b MidpointOffsetBuilder) Build(from, to Point) Curve {
	mid := from.Midpoint(to).Translate(Vec(0, -b.HeightOffset))
	return Curve{
		Kind:   BasisKind,
		Points: []Point{from, mid, to},
		Arrow:  ArrowAlongChord(from, to, b.ArrowPercentage),
	}
}

func (b PerpendicularOffsetBuilder) Build(from, to Point) Curve {
	d := to.Sub(from)
	// d.Turn() is ⟨-dy, dx⟩, so the offset is (-dy*k, dx*k).
	c := from.Midpoint(to).Translate(d.Turn().Mul(b.Curvature))
	q := QuadBez{from, c, to}
	return Curve{
		Kind:   QuadraticKind,
		Points: []Point{from, c, to},
		Arrow:  ArrowAtEnd(q),
	}
}

// Arc returns the quadratic Bézier the parabolic samples are taken from. Its
// control point sits above the chord's midpoint by HeightFactor times the
// straight-line distance between the endpoints, measured in raw coordinate
// units rather than along the globe.
func (b ParabolicBuilder) Arc(from, to Point) QuadBez {
	h := b.HeightFactor * from.Distance(to)
	return QuadBez{from, from.Midpoint(to).Translate(Vec(0, h)), to}
}

func (b ParabolicBuilder) Build(from, to Point) Curve {
	steps := b.Steps
	if steps < 1 {
		steps = DefaultSteps
	}
	pts := b.Arc(from, to).Sample(steps)
	return Curve{
		Kind:   SampledKind,
		Points: pts,
		Arrow:  ArrowFromSamples(pts[len(pts)-2], pts[len(pts)-1]),
	}
}

// NewBuilder returns the builder for strategy s configured from opts. It
// panics if s is not a valid strategy.
func NewBuilder(s Strategy, opts Options) Builder {
	switch s {
	case MidpointOffset:
		return MidpointOffsetBuilder{
			HeightOffset:    opts.HeightOffset,
			ArrowPercentage: opts.ArrowPercentage,
		}
	case PerpendicularOffset:
		return PerpendicularOffsetBuilder{Curvature: opts.Curvature}
	case ParabolicSampled:
		return ParabolicBuilder{Steps: opts.steps(), HeightFactor: opts.HeightFactor}
	default:
		panic(fmt.Sprintf("invalid Strategy %v", s))
	}
}

// BuildCurve computes the connector from from to to with strategy s. A nil
// endpoint stands for a point that could not be projected; in that case
// BuildCurve reports false and the caller should leave the connection out.
// Coincident endpoints are fine and yield a degenerate, zero-length curve.
func BuildCurve(s Strategy, from, to *Point, opts Options) (Curve, bool) {
	if from == nil || to == nil {
		return Curve{}, false
	}
	return NewBuilder(s, opts).Build(*from, *to), true
}
