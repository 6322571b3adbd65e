// Package raster paints a [render.Scene] into an image: thick stroked routes
// with a soft glow, arrowhead glyphs placed at each curve's
// [flightpath.ArrowHead], and city markers.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/skyroutes/flightpath"
	"github.com/skyroutes/flightpath/render"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Style controls how a scene is painted. Colours are parsed with
// [ParseColor].
type Style struct {
	Background  string
	StrokeWidth float64
	// GlowWidth is the width of the translucent underlay drawn beneath every
	// route and arrowhead. Zero disables it.
	GlowWidth float64
	// ArrowScale scales the arrowhead glyph, which is 10 units long.
	ArrowScale      float64
	CityRadius      float64
	CityStroke      string
	OriginFill      string
	DestinationFill string
	// OtherFill is used for cities no route starts or ends at. Empty leaves
	// them out.
	OtherFill  string
	Labels     bool
	LabelColor string
	// Segments is the number of line segments each curved piece of a route
	// is flattened into.
	Segments int
}

// DefaultStyle returns the dark ocean look.
func DefaultStyle() Style {
	return Style{
		Background:      "#0a1f44",
		StrokeWidth:     3,
		GlowWidth:       8,
		ArrowScale:      1,
		CityRadius:      4,
		CityStroke:      "#0a2a43",
		OriginFill:      "#00e5ff",
		DestinationFill: "#ff5252",
		LabelColor:      "#ffffff",
		Segments:        24,
	}
}

const glowAlpha = 0.3

var (
	// Glyphs point along +x with the tip at the origin.
	arrowGlyph = flightpath.BezPath{
		flightpath.MoveTo(flightpath.Pt(0, 0)),
		flightpath.LineTo(flightpath.Pt(-10, -6)),
		flightpath.LineTo(flightpath.Pt(-10, 6)),
		flightpath.ClosePath(),
	}
	arrowGlowGlyph = flightpath.BezPath{
		flightpath.MoveTo(flightpath.Pt(0, 0)),
		flightpath.LineTo(flightpath.Pt(-12, -8)),
		flightpath.LineTo(flightpath.Pt(-12, 8)),
		flightpath.ClosePath(),
	}
)

type palette struct {
	background, cityStroke, origin, destination, other, label color.NRGBA
	hasOther                                              bool
}

func (st Style) palette() (palette, error) {
	var p palette
	var err error
	parse := func(dst *color.NRGBA, name, s string) {
		if err != nil {
			return
		}
		c, e := ParseColor(s)
		if e != nil {
			err = fmt.Errorf("%s: %w", name, e)
			return
		}
		*dst = c
	}
	parse(&p.background, "background", st.Background)
	parse(&p.cityStroke, "city stroke", st.CityStroke)
	parse(&p.origin, "origin fill", st.OriginFill)
	parse(&p.destination, "destination fill", st.DestinationFill)
	if st.OtherFill != "" {
		parse(&p.other, "other fill", st.OtherFill)
		p.hasOther = true
	}
	if st.Labels {
		parse(&p.label, "label colour", st.LabelColor)
	}
	return p, err
}

// Render paints sc. Routes are drawn in order, cities on top of them.
func Render(sc *render.Scene, st Style) (*image.RGBA, error) {
	if err := sc.CheckSize(); err != nil {
		return nil, err
	}
	pal, err := st.palette()
	if err != nil {
		return nil, err
	}
	routeColors := make([]color.NRGBA, len(sc.Routes))
	for i, r := range sc.Routes {
		if routeColors[i], err = ParseColor(r.Color); err != nil {
			return nil, fmt.Errorf("route %s → %s: %w", r.From.ID, r.To.ID, err)
		}
	}

	w, h := int(math.Ceil(sc.Width)), int(math.Ceil(sc.Height))
	p := &painter{
		dst: image.NewRGBA(image.Rect(0, 0, w, h)),
		z:   vector.NewRasterizer(w, h),
	}
	draw.Draw(p.dst, p.dst.Bounds(), image.NewUniform(pal.background), image.Point{}, draw.Src)

	segments := max(st.Segments, 1)
	arrowScale := st.ArrowScale
	if arrowScale == 0 {
		arrowScale = 1
	}
	for i, r := range sc.Routes {
		c := routeColors[i]
		lines := r.Curve.Path().Flatten(segments)
		place := flightpath.Scale(arrowScale, arrowScale).
			ThenRotate(flightpath.Radians(r.Curve.Arrow.Angle)).
			ThenTranslate(flightpath.Vec2(r.Curve.Arrow.Position))
		if st.GlowWidth > 0 {
			glow := withAlpha(c, glowAlpha)
			for _, l := range lines {
				p.stroke(l, st.GlowWidth)
			}
			p.fillPath(arrowGlowGlyph.Transform(place))
			p.paint(glow)
		}
		for _, l := range lines {
			p.stroke(l, st.StrokeWidth)
		}
		p.paint(c)
		p.fillPath(arrowGlyph.Transform(place))
		p.paint(c)
	}

	for _, c := range sc.Cities {
		var fill color.NRGBA
		switch {
		case c.Role&render.Destination != 0:
			fill = pal.destination
		case c.Role&render.Origin != 0:
			fill = pal.origin
		case pal.hasOther:
			fill = pal.other
		default:
			continue
		}
		p.disc(c.Pos, st.CityRadius+1.5)
		p.paint(pal.cityStroke)
		p.disc(c.Pos, st.CityRadius)
		p.paint(fill)
		if st.Labels {
			p.label(c.Pos.Translate(flightpath.Vec(st.CityRadius+3, -st.CityRadius-3)), c.DisplayName(), pal.label)
		}
	}
	return p.dst, nil
}

// WritePNG renders sc and encodes it to w as PNG.
func WritePNG(w io.Writer, sc *render.Scene, st Style) error {
	img, err := Render(sc, st)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("raster: encoding png: %w", err)
	}
	return nil
}

// painter accumulates shapes in a rasterizer and paints them in one colour.
// Every shape is added with the same winding, because the rasterizer
// cancels out overlapping areas of opposite winding.
type painter struct {
	dst *image.RGBA
	z   *vector.Rasterizer
}

func (p *painter) paint(c color.Color) {
	p.z.Draw(p.dst, p.dst.Bounds(), image.NewUniform(c), image.Point{})
	b := p.dst.Bounds()
	p.z.Reset(b.Dx(), b.Dy())
}

// stroke adds a polyline of the given width with round joins and caps.
func (p *painter) stroke(pts []flightpath.Point, width float64) {
	hw := width / 2
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		d := b.Sub(a)
		l := d.Hypot()
		if l == 0 {
			continue
		}
		n := d.Turn().Mul(hw / l)
		p.polygon(a.Translate(n), b.Translate(n), b.Translate(n.Negate()), a.Translate(n.Negate()))
	}
	for _, pt := range pts {
		p.disc(pt, hw)
	}
}

func (p *painter) polygon(pts ...flightpath.Point) {
	p.z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, pt := range pts[1:] {
		p.z.LineTo(float32(pt.X), float32(pt.Y))
	}
	p.z.ClosePath()
}

// disc adds a circle as a polygon, walked in the same direction as the
// segments added by stroke.
func (p *painter) disc(c flightpath.Point, r float64) {
	if r <= 0 {
		return
	}
	n := max(12, int(math.Ceil(r*4)))
	pts := make([]flightpath.Point, n)
	for i := range pts {
		pts[i] = c.Translate(flightpath.VecFromAngle(-2 * math.Pi * float64(i) / float64(n)).Mul(r))
	}
	p.polygon(pts...)
}

func (p *painter) fillPath(path flightpath.BezPath) {
	f := func(pt flightpath.Point) (float32, float32) { return float32(pt.X), float32(pt.Y) }
	for _, el := range path {
		switch el.Kind {
		case flightpath.MoveToKind:
			p.z.MoveTo(f(el.P0))
		case flightpath.LineToKind:
			p.z.LineTo(f(el.P0))
		case flightpath.QuadToKind:
			x1, y1 := f(el.P0)
			x2, y2 := f(el.P1)
			p.z.QuadTo(x1, y1, x2, y2)
		case flightpath.CubicToKind:
			x1, y1 := f(el.P0)
			x2, y2 := f(el.P1)
			x3, y3 := f(el.P2)
			p.z.CubeTo(x1, y1, x2, y2, x3, y3)
		case flightpath.ClosePathKind:
			p.z.ClosePath()
		}
	}
}

func (p *painter) label(at flightpath.Point, s string, c color.Color) {
	d := font.Drawer{
		Dst:  p.dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(math.Round(at.X)), int(math.Round(at.Y))),
	}
	d.DrawString(s)
}
