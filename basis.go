package flightpath

// Basis returns the uniform cubic B-spline through the control polygon pts,
// built span by span the same way d3's curveBasis builds it: a line from the
// first point to the first knot, one cubic per interior point, and a line
// into the last point. The curve is clamped to the first and last points but
// does not pass through the interior ones.
//
// Fewer than three points degrade to a polyline.
func Basis(pts []Point) BezPath {
	var p BezPath
	switch len(pts) {
	case 0:
		return nil
	case 1:
		p.MoveTo(pts[0])
		return p
	case 2:
		p.MoveTo(pts[0])
		p.LineTo(pts[1])
		return p
	}

	n := len(pts)
	p.MoveTo(pts[0])
	p.LineTo(weigh(pts[0], pts[1], pts[1], 5.0/6, 1.0/6, 0))
	for i := 2; i < n; i++ {
		basisSpan(&p, pts[i-2], pts[i-1], pts[i])
	}
	basisSpan(&p, pts[n-2], pts[n-1], pts[n-1])
	p.LineTo(pts[n-1])
	return p
}

// basisSpan appends the cubic covering the knot interval around b.
func basisSpan(p *BezPath, a, b, c Point) {
	p.CubicTo(
		weigh(a, b, c, 2.0/3, 1.0/3, 0),
		weigh(a, b, c, 1.0/3, 2.0/3, 0),
		weigh(a, b, c, 1.0/6, 4.0/6, 1.0/6),
	)
}

func weigh(a, b, c Point, wa, wb, wc float64) Point {
	return Point(Vec2(a).Mul(wa).Add(Vec2(b).Mul(wb)).Add(Vec2(c).Mul(wc)))
}
