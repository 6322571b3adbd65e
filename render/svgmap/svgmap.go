// Package svgmap draws a [render.Scene] as an SVG document: routes as curved
// paths ending in arrowhead markers, cities as coloured dots, and optionally
// labels, a legend and arrows that fly along the routes.
package svgmap

import (
	"fmt"
	"html"
	"io"
	"math"
	"time"

	svg "github.com/ajstarks/svgo"
	"github.com/skyroutes/flightpath"
	"github.com/skyroutes/flightpath/render"
)

// Arrows selects how arrowheads are drawn.
type Arrows int

const (
	// MarkerArrows lets the SVG renderer place an orient="auto" marker at the
	// end of each path.
	MarkerArrows Arrows = iota
	// GlyphArrows draws an arrowhead glyph at the curve's computed
	// [flightpath.ArrowHead], with a wider translucent copy underneath.
	GlyphArrows
)

// Style controls the look of the document.
type Style struct {
	Title           string
	Background      string
	StrokeWidth     float64
	Opacity         float64
	ArrowFill       string
	Arrows          Arrows
	OriginFill      string
	DestinationFill string
	CityStroke      string
	CityRadius      int
	Labels          bool
	LabelColor      string
	Legend          bool
	// Animate adds an arrow that travels along every route and stops at its
	// end, taking Duration to get there.
	Animate  bool
	Duration time.Duration
	// Precision is the number of decimals in path data; 0 means as many as
	// needed.
	Precision int
}

// DefaultStyle returns the dark atlas look.
func DefaultStyle() Style {
	return Style{
		Title:           "Flight routes",
		Background:      "#0a2a43",
		StrokeWidth:     8,
		Opacity:         1,
		ArrowFill:       "red",
		OriginFill:      "#00e5ff",
		DestinationFill: "#ff5252",
		CityStroke:      "#0a2a43",
		CityRadius:      4,
		LabelColor:      "#ffffff",
		Duration:        3 * time.Second,
		Precision:       2,
	}
}

const (
	markerID = "arrowhead"
	// Tip at (8, 4) in an 8×8 box.
	markerPath = "M0,0 L8,4 L0,8 Z"
	// Glyphs are drawn pointing along +x with the tip at the origin.
	glyphPath     = "M0,0 L-10,-6 L-10,6 Z"
	glyphGlowPath = "M0,0 L-12,-8 L-12,8 Z"
	// The travelling arrow: a shaft and two barbs.
	flyingArrowPath = "M0 0 H-16 M0 0 L-4 -4 M0 0 L-4 4"
)

// Write writes sc to w as a standalone SVG document.
func Write(w io.Writer, sc *render.Scene, st Style) error {
	if err := sc.CheckSize(); err != nil {
		return err
	}
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	width, height := int(math.Ceil(sc.Width)), int(math.Ceil(sc.Height))
	opts := flightpath.SVGOptions{MaxPrecision: st.Precision}

	canvas.Start(width, height, fmt.Sprintf(`viewBox="0 0 %d %d"`, width, height))
	if st.Title != "" {
		canvas.Title(st.Title)
	}
	canvas.Rect(0, 0, width, height, attr("fill", st.Background))

	if st.Arrows == MarkerArrows {
		canvas.Def()
		canvas.Marker(markerID, 7, 4, 4, 4,
			`viewBox="0 0 8 8"`, `orient="auto"`, `markerUnits="strokeWidth"`)
		canvas.Path(markerPath, attr("fill", st.ArrowFill))
		canvas.MarkerEnd()
		canvas.DefEnd()
	}

	canvas.Gid("cities")
	for _, c := range sc.Cities {
		if c.Role == 0 {
			continue
		}
		fill := st.OriginFill
		if c.Role&render.Destination != 0 {
			fill = st.DestinationFill
		}
		x, y := round(c.Pos.X), round(c.Pos.Y)
		canvas.Circle(x, y, st.CityRadius,
			attr("fill", fill), attr("stroke", st.CityStroke), `stroke-width="1.5"`)
		if st.Labels {
			canvas.Text(x+st.CityRadius+2, y-st.CityRadius-2, c.DisplayName(),
				attr("fill", st.LabelColor), `font-size="12"`, `font-family="sans-serif"`)
		}
	}
	canvas.Gend()

	canvas.Gid("routes")
	for i, r := range sc.Routes {
		id := routeID(i)
		d := r.Curve.Path().SVG(opts)
		attrs := []string{
			attr("id", id),
			`fill="none"`,
			attr("stroke", r.Color),
			attr("stroke-width", opts.Format(st.StrokeWidth)),
			attr("stroke-opacity", opts.Format(st.Opacity)),
			`stroke-linecap="round"`,
		}
		if st.Arrows == MarkerArrows {
			attrs = append(attrs, fmt.Sprintf(`marker-end="url(#%s)"`, markerID))
		}
		canvas.Path(d, attrs...)
		if st.Arrows == GlyphArrows {
			tr := attr("transform", r.Curve.Arrow.Transform().SVG(opts))
			canvas.Path(glyphGlowPath, tr, attr("fill", r.Color), `fill-opacity="0.3"`)
			canvas.Path(glyphPath, tr, attr("fill", r.Color))
		}
		if st.Animate {
			writeFlyingArrow(ew, id, r.Color, st.Duration)
		}
	}
	canvas.Gend()

	if st.Legend {
		canvas.Gid("legend")
		for i, line := range sc.Legend() {
			canvas.Text(10, height-10-16*(len(sc.Routes)-1-i), line,
				attr("fill", sc.Routes[i].Color), `font-size="12"`, `font-family="sans-serif"`)
		}
		canvas.Gend()
	}
	canvas.End()
	if ew.err != nil {
		return fmt.Errorf("svgmap: %w", ew.err)
	}
	return nil
}

func writeFlyingArrow(w io.Writer, pathID, color string, dur time.Duration) {
	fmt.Fprintf(w, `<path d="%s" fill="none" %s stroke-width="2" stroke-linecap="round" stroke-linejoin="round">`,
		flyingArrowPath, attr("stroke", color))
	fmt.Fprintf(w, `<animateMotion dur="%gs" fill="freeze" rotate="auto" begin="0s"><mpath xlink:href="#%s"/></animateMotion></path>`+"\n",
		dur.Seconds(), pathID)
}

func routeID(i int) string {
	return fmt.Sprintf("route-%d", i)
}

func attr(name, value string) string {
	return fmt.Sprintf(`%s="%s"`, name, html.EscapeString(value))
}

func round(f float64) int {
	return int(math.Round(f))
}

// errWriter remembers the first write error and turns every later write
// into a no-op.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
