package flightpath

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestPointArithmetic(t *testing.T) {
	diff(t, Pt(0, 0).Translate(Vec(-10, 0)), Pt(-10, 0))
	diff(t, Pt(2, 4).Midpoint(Pt(4, 8)), Pt(3, 6))
	diff(t, Pt(0, 0).Lerp(Pt(10, 20), 0.25), Pt(2.5, 5))
}

func TestPointDistance(t *testing.T) {
	p1 := Pt(0, 10)
	p2 := Pt(0, 5)
	if d := p1.Distance(p2); d != 5 {
		t.Errorf("got distance %v, want 5", d)
	}

	p3 := Pt(-11, 1)
	p4 := Pt(-7, -2)
	if d := p3.Distance(p4); d != 5 {
		t.Errorf("got distance %v, want 5", d)
	}
}

func TestPointFinite(t *testing.T) {
	if !Pt(1, 2).IsFinite() {
		t.Error("(1, 2) should be finite")
	}
	if Pt(math.NaN(), 2).IsFinite() {
		t.Error("NaN point should not be finite")
	}
	if Pt(1, math.Inf(-1)).IsFinite() {
		t.Error("infinite point should not be finite")
	}
}

func TestVecTurn(t *testing.T) {
	v := Vec(3, 4)
	if d := v.Dot(v.Turn()); d != 0 {
		t.Errorf("turned vector not perpendicular, dot product %v", d)
	}
	diff(t, v.Turn().Turn(), v.Negate())
}

func TestNormalizeDegrees(t *testing.T) {
	for _, tc := range []struct{ in, want float64 }{
		{0, 0},
		{360, 0},
		{-90, 270},
		{450, 90},
		{-720, 0},
		{179.5, 179.5},
	} {
		if got := NormalizeDegrees(tc.in); got != tc.want {
			t.Errorf("NormalizeDegrees(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLineEval(t *testing.T) {
	l := Line{Pt(0.0, 0.0), Pt(10.0, 20.0)}
	assertNear(t, l.Eval(0.5), l.Midpoint(), 1e-12)
	assertNear(t, l.Eval(0.85), Pt(8.5, 17), 1e-12)
	if want := math.Sqrt(500); math.Abs(l.Length()-want) > 1e-12 {
		t.Errorf("got length %v, want %v", l.Length(), want)
	}
	d0, d1 := l.Reverse().Tangents()
	diff(t, d0, Vec(-10, -20))
	diff(t, d1, Vec(-10, -20))
}

func TestLineIsInf(t *testing.T) {
	if (Line{Pt(0.0, 0.0), Pt(1.0, 1.0)}).IsInf() {
		t.Error("line is infinite but shouldn't be")
	}

	if !(Line{Pt(0.0, 0.0), Pt(math.Inf(1), 1.0)}).IsInf() {
		t.Errorf("line is finite but shouldn't be")
	}
}

func TestQuadBezExtrema(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-6)

	// y = x^2
	q := QuadBez{Pt(-1.0, 1.0), Pt(0.0, -1.0), Pt(1.0, 1.0)}
	extrema, n := q.Extrema()
	diff(t, extrema[:n], []float64{0.5}, approx)

	q = QuadBez{Pt(0.5, 0.0), Pt(1.0, 1.0), Pt(0.0, 0.5)}
	extrema, n = q.Extrema()
	diff(t, extrema[:n], []float64{1.0 / 3.0, 2.0 / 3.0}, approx)
}

func TestQuadBezBoundingBox(t *testing.T) {
	// The apex of this arc is at t = 0.5, y = -2.
	q := QuadBez{Pt(0, 0), Pt(5, -4), Pt(10, 0)}
	diff(t, q.BoundingBox(), Rect{0, -2, 10, 0}, cmpopts.EquateApprox(0, 1e-12))
}

func TestQuadBezSample(t *testing.T) {
	q := QuadBez{Pt(0, 0), Pt(1, 1), Pt(2, 0)}
	pts := q.Sample(4)
	if len(pts) != 5 {
		t.Fatalf("got %d samples, want 5", len(pts))
	}
	diff(t, pts[0], q.P0)
	diff(t, pts[4], q.P2)
	assertNear(t, pts[2], Pt(1, 0.5), 1e-12)

	if got := len(q.Sample(0)); got != 2 {
		t.Errorf("Sample(0) returned %d points, want 2", got)
	}
}

func TestCubicBezExtrema(t *testing.T) {
	q := CubicBez{Pt(0.0, 0.0), Pt(0.0, 1.0), Pt(1.0, 1.0), Pt(1.0, 0.0)}
	extrema, n := q.Extrema()
	if n != 1 {
		t.Fatalf("got %d extrema, expected 1", n)
	}
	if want := 0.5; math.Abs(extrema[0]-want) > 1e-6 {
		t.Errorf("got extrema %v, want %v", extrema[0], want)
	}

	q = CubicBez{Pt(0.4, 0.5), Pt(0.0, 1.0), Pt(1.0, 0.0), Pt(0.5, 0.4)}
	extrema, n = q.Extrema()
	if n != 4 {
		t.Fatalf("got %d extrema, expected 4", n)
	}
}

func TestCubicBezTangentsDegenerate(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(0, 0), Pt(10, 10), Pt(10, 10)}
	d0, d1 := c.Tangents()
	diff(t, d0, Vec(10, 10))
	diff(t, d1, Vec(10, 10))
}

func TestSolveQuadratic(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-12)
	roots, n := SolveQuadratic(-5.0, 0.0, 1.0)
	diff(t, roots[:n], []float64{-math.Sqrt(5), math.Sqrt(5)}, approx)
	roots, n = SolveQuadratic(5.0, 0.0, 1.0)
	diff(t, roots[:n], []float64{}, cmpopts.EquateEmpty())
	roots, n = SolveQuadratic(5.0, 1.0, 0.0)
	diff(t, roots[:n], []float64{-5.0}, approx)
	roots, n = SolveQuadratic(1.0, 2.0, 1.0)
	diff(t, roots[:n], []float64{-1.0}, approx)
}

func TestAffineBasic(t *testing.T) {
	const epsilon = 1e-9
	p := Pt(3, 4)

	assertNear(t, p.Transform(Identity), p, epsilon)
	assertNear(t, p.Transform(Scale(2, 2)), Pt(6, 8), epsilon)
	assertNear(t, p.Transform(Rotate(0)), p, epsilon)
	assertNear(t, p.Transform(Rotate(math.Pi/2)), Pt(-4, 3), epsilon)
	assertNear(t, p.Transform(RotateDegrees(90)), Pt(-4, 3), epsilon)
	assertNear(t, p.Transform(Translate(Vec(5, 6))), Pt(8, 10), epsilon)
	assertNear(t, p.Transform(FlipY), Pt(3, -4), epsilon)
}

func TestAffineMul(t *testing.T) {
	const epsilon = 1e-9
	a1 := Affine{1, 2, 3, 4, 5, 6}
	a2 := Affine{0.1, 1.2, 2.3, 3.4, 4.5, 5.6}

	for _, p := range []Point{Pt(1, 0), Pt(0, 1), Pt(1, 1)} {
		assertNear(t, p.Transform(a2).Transform(a1), p.Transform(a1.Mul(a2)), epsilon)
	}
}

func TestAffineInvert(t *testing.T) {
	const epsilon = 1e-9
	a := Affine{0.1, 1.2, 2.3, 3.4, 4.5, 5.6}
	aInv := a.Invert()

	for _, p := range []Point{Pt(1, 0), Pt(0, 1), Pt(1, 1)} {
		assertNear(t, p.Transform(aInv).Transform(a), p, epsilon)
		assertNear(t, p.Transform(a).Transform(aInv), p, epsilon)
	}
}

func TestAffineThen(t *testing.T) {
	const epsilon = 1e-9
	aff := Identity.ThenScale(2, 3).ThenRotate(math.Pi).ThenTranslate(Vec(1, 1))
	assertNear(t, Pt(1, 1).Transform(aff), Pt(-1, -2), epsilon)
	diff(t, aff.Translation(), Vec(1, 1))
}

func TestAffineSVG(t *testing.T) {
	got := Translate(Vec(10, 20)).SVG(SVGOptions{MaxPrecision: 3})
	diff(t, got, "matrix(1 0 0 1 10 20)")
}

func TestRect(t *testing.T) {
	r := NewRectFromPoints(Pt(10, 10), Pt(0, 0))
	diff(t, r, Rect{0, 0, 10, 10})
	if !r.Contains(Pt(0, 0)) || r.Contains(Pt(10, 5)) {
		t.Errorf("Contains treats edges wrong for %v", r)
	}
	diff(t, r.UnionPoint(Pt(-5, 20)), Rect{-5, 0, 10, 20})
	diff(t, r.Union(Rect{5, 5, 15, 15}), Rect{0, 0, 15, 15})
	diff(t, r.Inflate(1, 2), Rect{-1, -2, 11, 12})
	diff(t, r.Center(), Pt(5, 5))
	diff(t, NewRectFromSize(640, 480), Rect{0, 0, 640, 480})
}

func TestBezPathSegments(t *testing.T) {
	var p BezPath
	p.MoveTo(Pt(0, 0))
	p.LineTo(Pt(10, 0))
	p.QuadTo(Pt(15, 5), Pt(10, 10))
	p.ClosePath()

	var segs []ParametricCurve
	for seg := range p.Segments() {
		segs = append(segs, seg)
	}
	want := []ParametricCurve{
		Line{Pt(0, 0), Pt(10, 0)},
		QuadBez{Pt(10, 0), Pt(15, 5), Pt(10, 10)},
		Line{Pt(10, 10), Pt(0, 0)},
	}
	diff(t, segs, want)
}

func TestBezPathBoundingBox(t *testing.T) {
	p := BezPath{MoveTo(Pt(0, 0)), QuadTo(Pt(5, -4), Pt(10, 0))}
	diff(t, p.BoundingBox(), Rect{0, -2, 10, 0}, cmpopts.EquateApprox(0, 1e-12))

	single := BezPath{MoveTo(Pt(3, 4))}
	diff(t, single.BoundingBox(), Rect{3, 4, 3, 4})
}

func TestBezPathEndTangent(t *testing.T) {
	p := BezPath{MoveTo(Pt(0, 0)), QuadTo(Pt(5, 5), Pt(10, 0))}
	end, d, ok := p.EndTangent()
	if !ok {
		t.Fatal("expected an end tangent")
	}
	diff(t, end, Pt(10, 0))
	diff(t, d, Vec(5, -5))

	if _, _, ok := (BezPath{MoveTo(Pt(1, 1))}).EndTangent(); ok {
		t.Error("path without segments shouldn't have an end tangent")
	}
}

func TestBezPathFlatten(t *testing.T) {
	var p BezPath
	p.MoveTo(Pt(0, 0))
	p.QuadTo(Pt(1, 1), Pt(2, 0))
	p.LineTo(Pt(3, 0))
	p.MoveTo(Pt(5, 5))
	p.LineTo(Pt(6, 6))

	lines := p.Flatten(4)
	if len(lines) != 2 {
		t.Fatalf("got %d polylines, want 2", len(lines))
	}
	if len(lines[0]) != 6 {
		t.Fatalf("got %d points in first polyline, want 6", len(lines[0]))
	}
	diff(t, lines[0][0], Pt(0, 0))
	assertNear(t, lines[0][2], Pt(1, 0.5), 1e-12)
	diff(t, lines[0][4], Pt(2, 0))
	diff(t, lines[0][5], Pt(3, 0))
	diff(t, lines[1], []Point{Pt(5, 5), Pt(6, 6)})
}

func TestBezPathTransform(t *testing.T) {
	p := BezPath{MoveTo(Pt(0, 0)), LineTo(Pt(1, 0)), CubicTo(Pt(1, 1), Pt(2, 2), Pt(3, 3)), ClosePath()}
	got := p.Transform(Translate(Vec(1, 2)))
	want := BezPath{MoveTo(Pt(1, 2)), LineTo(Pt(2, 2)), CubicTo(Pt(2, 3), Pt(3, 4), Pt(4, 5)), ClosePath()}
	diff(t, got, want)
}

func TestSVGSingle(t *testing.T) {
	path := BezPath{
		MoveTo(Pt(10, 10)),
		CubicTo(Pt(20, 20), Pt(30, 30), Pt(40, 40)),
	}
	diff(t, path.SVG(SVGOptions{}), "M10,10 C20,20 30,30 40,40")
}

func TestSVGAllKinds(t *testing.T) {
	path := BezPath{
		MoveTo(Pt(0, 0)),
		LineTo(Pt(10, 0)),
		QuadTo(Pt(-2.5, 5), Pt(0, 10)),
		ClosePath(),
		MoveTo(Pt(50, 50)),
	}
	diff(t, path.SVG(SVGOptions{}), "M0,0 L10,0 Q-2.5,5 0,10 Z M50,50")
}

func TestSVGPrecision(t *testing.T) {
	path := BezPath{MoveTo(Pt(1.0/3.0, 2)), LineTo(Pt(-0.0001, 100))}
	diff(t, path.SVG(SVGOptions{MaxPrecision: 2}), "M0.33,2 L0,100")
}

func TestBasisThreePoints(t *testing.T) {
	got := Basis([]Point{Pt(0, 0), Pt(5, -4), Pt(10, 0)})
	want := BezPath{
		MoveTo(Pt(0, 0)),
		LineTo(Pt(5.0/6, -4.0/6)),
		CubicTo(Pt(5.0/3, -4.0/3), Pt(10.0/3, -8.0/3), Pt(5, -8.0/3)),
		CubicTo(Pt(20.0/3, -8.0/3), Pt(25.0/3, -4.0/3), Pt(55.0/6, -4.0/6)),
		LineTo(Pt(10, 0)),
	}
	diff(t, got, want, cmpopts.EquateApprox(0, 1e-12))
}

func TestBasisContinuity(t *testing.T) {
	pts := []Point{Pt(0, 0), Pt(10, 30), Pt(20, -10), Pt(40, 5), Pt(50, 0)}
	p := Basis(pts)
	var prev ParametricCurve
	for seg := range p.Segments() {
		if prev != nil {
			assertNear(t, seg.Start(), prev.End(), 1e-12)
		}
		prev = seg
	}
	diff(t, prev.End(), pts[len(pts)-1])
}

func TestBasisShort(t *testing.T) {
	if p := Basis(nil); p != nil {
		t.Errorf("got %v for no points, want nil", p)
	}
	diff(t, Basis([]Point{Pt(1, 2)}), BezPath{MoveTo(Pt(1, 2))})
	diff(t, Basis([]Point{Pt(1, 2), Pt(3, 4)}), BezPath{MoveTo(Pt(1, 2)), LineTo(Pt(3, 4))})
}
