package flightpath

import (
	"fmt"
	"io"
	"iter"
	"slices"
)

type PathElementKind int

const (
	/// Move directly to the point without drawing anything, starting a new
	/// subpath.
	MoveToKind PathElementKind = iota + 1
	/// Draw a line from the current location to the point.
	LineToKind
	/// Draw a quadratic bezier using the current location and the two points.
	QuadToKind
	/// Draw a cubic bezier using the current location and the three points.
	CubicToKind
	/// Close off the path.
	ClosePathKind
)

// PathElement is one drawing command of a [BezPath]. A valid path has a
// MoveTo at the beginning of each subpath.
type PathElement struct {
	Kind PathElementKind
	P0   Point
	P1   Point
	P2   Point
}

func (el PathElement) String() string {
	var kind string
	switch el.Kind {
	case MoveToKind:
		kind = "MoveTo"
	case LineToKind:
		kind = "LineTo"
	case QuadToKind:
		kind = "QuadTo"
	case CubicToKind:
		kind = "CubicTo"
	case ClosePathKind:
		kind = "ClosePath"
	default:
		kind = "InvalidPathElement"
	}
	return fmt.Sprintf("%s(%s, %s, %s)", kind, el.P0, el.P1, el.P2)
}

func (el PathElement) Transform(aff Affine) PathElement {
	switch el.Kind {
	case MoveToKind:
		return MoveTo(el.P0.Transform(aff))
	case LineToKind:
		return LineTo(el.P0.Transform(aff))
	case QuadToKind:
		return QuadTo(el.P0.Transform(aff), el.P1.Transform(aff))
	case CubicToKind:
		return CubicTo(el.P0.Transform(aff), el.P1.Transform(aff), el.P2.Transform(aff))
	case ClosePathKind:
		return ClosePath()
	default:
		return PathElement{}
	}
}

// EndPoint returns the end point of the path element, or false if none exists. It exists
// for all kinds except for [ClosePathKind].
func (el PathElement) EndPoint() (Point, bool) {
	switch el.Kind {
	case MoveToKind, LineToKind:
		return el.P0, true
	case QuadToKind:
		return el.P1, true
	case CubicToKind:
		return el.P2, true
	default:
		return Point{}, false
	}
}

func MoveTo(pt Point) PathElement {
	return PathElement{Kind: MoveToKind, P0: pt}
}

func LineTo(pt Point) PathElement {
	return PathElement{Kind: LineToKind, P0: pt}
}

func QuadTo(p0, p1 Point) PathElement {
	return PathElement{Kind: QuadToKind, P0: p0, P1: p1}
}

func CubicTo(p0, p1, p2 Point) PathElement {
	return PathElement{Kind: CubicToKind, P0: p0, P1: p1, P2: p2}
}

func ClosePath() PathElement {
	return PathElement{Kind: ClosePathKind}
}

// BezPath is a Bézier path: a sequence of path elements forming zero or more
// subpaths. Each subpath begins with a MoveTo, then has zero or more LineTo,
// QuadTo, and CubicTo elements, and optionally ends with a ClosePath.
type BezPath []PathElement

// Transform returns a new path with an affine transformation applied to every
// element.
func (p BezPath) Transform(aff Affine) BezPath {
	els := make([]PathElement, len(p))
	for i := range p {
		els[i] = p[i].Transform(aff)
	}
	return els
}

// Push adds an element to the path.
func (p *BezPath) Push(el PathElement) {
	*p = append(*p, el)
}

// MoveTo pushes a "move to" element onto the path.
func (p *BezPath) MoveTo(pt Point) { p.Push(MoveTo(pt)) }

// LineTo pushes a "line to" element onto the path.
func (p *BezPath) LineTo(pt Point) { p.Push(LineTo(pt)) }

// QuadTo pushes a "quad to" element onto the path.
func (p *BezPath) QuadTo(p1, p2 Point) { p.Push(QuadTo(p1, p2)) }

// CubicTo pushes a "cubic to" element onto the path.
func (p *BezPath) CubicTo(p1, p2, p3 Point) { p.Push(CubicTo(p1, p2, p3)) }

// ClosePath pushes a "close path" element onto the path.
func (p *BezPath) ClosePath() { p.Push(ClosePath()) }

// Elements returns an iterator over the path's elements.
func (p BezPath) Elements() iter.Seq[PathElement] { return slices.Values(p) }

// Segments returns an iterator over the path's drawn segments, each of which
// is a [Line], [QuadBez], or [CubicBez]. A ClosePath that returns to a point
// other than the current one yields the closing line.
func (p BezPath) Segments() iter.Seq[ParametricCurve] {
	return func(yield func(ParametricCurve) bool) {
		var start, last Point
		for _, el := range p {
			var seg ParametricCurve
			switch el.Kind {
			case MoveToKind:
				start = el.P0
				last = el.P0
				continue
			case LineToKind:
				seg = Line{last, el.P0}
				last = el.P0
			case QuadToKind:
				seg = QuadBez{last, el.P0, el.P1}
				last = el.P1
			case CubicToKind:
				seg = CubicBez{last, el.P0, el.P1, el.P2}
				last = el.P2
			case ClosePathKind:
				if last == start {
					continue
				}
				seg = Line{last, start}
				last = start
			default:
				panic(fmt.Sprintf("invalid PathElement kind %v", el.Kind))
			}
			if !yield(seg) {
				return
			}
		}
	}
}

// BoundingBox returns the smallest rectangle enclosing every drawn segment of
// the path. A path consisting only of MoveTo elements encloses those points.
func (p BezPath) BoundingBox() Rect {
	var bbox Rect
	first := true
	add := func(r Rect) {
		if first {
			bbox = r
			first = false
		} else {
			bbox = bbox.Union(r)
		}
	}
	for _, el := range p {
		if el.Kind == MoveToKind {
			add(NewRectFromPoints(el.P0, el.P0))
		}
	}
	for seg := range p.Segments() {
		add(BoundingBox(seg.(interface {
			Extremer
			ParametricCurve
		})))
	}
	return bbox
}

// EndTangent returns the point where the path ends and the direction of travel
// there. It reports false for a path without drawn segments.
func (p BezPath) EndTangent() (Point, Vec2, bool) {
	var last ParametricCurve
	for seg := range p.Segments() {
		last = seg
	}
	if last == nil {
		return Point{}, Vec2{}, false
	}
	_, d := last.Tangents()
	return last.End(), d, true
}

// Flatten approximates the path with straight lines by sampling every curved
// segment at n evenly spaced parameters. Lines are kept as they are. The
// result has one polyline per subpath.
func (p BezPath) Flatten(n int) [][]Point {
	var out [][]Point
	var cur []Point
	flush := func() {
		if len(cur) > 0 {
			out = append(out, cur)
		}
		cur = nil
	}
	var start, last Point
	for _, el := range p {
		switch el.Kind {
		case MoveToKind:
			flush()
			start, last = el.P0, el.P0
			cur = []Point{el.P0}
		case LineToKind:
			cur = append(cur, el.P0)
			last = el.P0
		case QuadToKind:
			cur = append(cur, QuadBez{last, el.P0, el.P1}.Sample(n)[1:]...)
			last = el.P1
		case CubicToKind:
			cur = append(cur, Sample(CubicBez{last, el.P0, el.P1, el.P2}, n)[1:]...)
			last = el.P2
		case ClosePathKind:
			if last != start {
				cur = append(cur, start)
			}
			last = start
		}
	}
	flush()
	return out
}

// SVG converts the path to a string of SVG path commands. See [SVG].
func (p BezPath) SVG(opts SVGOptions) string {
	return SVG(p.Elements(), opts)
}

// WriteSVG writes the path as SVG path commands to w. See [WriteSVG].
func (p BezPath) WriteSVG(w io.Writer, opts SVGOptions) error {
	return WriteSVG(w, p.Elements(), opts)
}
