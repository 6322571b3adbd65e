package flightpath

import "fmt"

// ArrowHead places an arrowhead marker: where it sits and which way it
// points. Angle is in degrees, measured like [Vec2.AngleDegrees], so 0 points
// along +x and 90 along +y (down, on screen).
type ArrowHead struct {
	Position Point
	Angle    float64
}

func (a ArrowHead) String() string {
	return fmt.Sprintf("ArrowHead(%s, %g°)", a.Position, a.Angle)
}

// Transform returns the transform that moves a glyph drawn at the origin and
// pointing along +x onto the arrowhead: rotate by Angle, then translate to
// Position. It is the equivalent of SVG's
// "translate(x, y) rotate(angle)".
func (a ArrowHead) Transform() Affine {
	return RotateDegrees(a.Angle).ThenTranslate(Vec2(a.Position))
}

// Direction returns the unit vector the arrowhead points along.
func (a ArrowHead) Direction() Vec2 {
	return VecFromAngle(Radians(a.Angle))
}

// ArrowAlongChord places an arrowhead on the straight chord from from to to,
// at fraction p of the way along it, pointing along the chord. It stands in
// for the true curve tangent when no samples of the curve are available; with
// p slightly below 1 the head sits near, but before, the endpoint.
func ArrowAlongChord(from, to Point, p float64) ArrowHead {
	chord := Line{from, to}
	return ArrowHead{
		Position: chord.Eval(p),
		Angle:    to.Sub(from).AngleDegrees(),
	}
}

// ArrowFromSamples places an arrowhead on last, pointing away from prev. It is
// meant for the final two points of a sampled curve.
func ArrowFromSamples(prev, last Point) ArrowHead {
	return ArrowHead{
		Position: last,
		Angle:    last.Sub(prev).AngleDegrees(),
	}
}

// ArrowAtEnd places an arrowhead on the end of c, oriented along c's end
// tangent, the way an SVG marker with orient="auto" is drawn.
func ArrowAtEnd(c ParametricCurve) ArrowHead {
	_, d := c.Tangents()
	return ArrowHead{
		Position: c.End(),
		Angle:    d.AngleDegrees(),
	}
}
