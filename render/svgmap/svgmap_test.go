package svgmap

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/skyroutes/flightpath"
	"github.com/skyroutes/flightpath/geo"
	"github.com/skyroutes/flightpath/render"
)

func testScene() *render.Scene {
	from := geo.GeoPoint{ID: "a", Label: "Alpha"}
	to := geo.GeoPoint{ID: "b", Label: "Bravo <B>"}
	c := flightpath.PerpendicularOffsetBuilder{Curvature: 0.25}.Build(flightpath.Pt(0, 0), flightpath.Pt(0, 10))
	return &render.Scene{
		Width:    100,
		Height:   50,
		Strategy: flightpath.PerpendicularOffset,
		Cities: []render.City{
			{GeoPoint: from, Pos: flightpath.Pt(0, 0), Role: render.Origin},
			{GeoPoint: to, Pos: flightpath.Pt(0, 10), Role: render.Destination},
			{GeoPoint: geo.GeoPoint{ID: "lonely"}, Pos: flightpath.Pt(40, 40)},
		},
		Routes: []render.PlannedRoute{{
			Route: geo.Route{From: from, To: to, Color: "#ff3b3b"},
			Curve: c,
		}},
	}
}

func write(t *testing.T, sc *render.Scene, st Style) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Write(&buf, sc, st); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestWrite(t *testing.T) {
	out := write(t, testScene(), DefaultStyle())
	for _, want := range []string{
		`<svg width="100" height="50"`,
		`viewBox="0 0 100 50"`,
		`<title>Flight routes</title>`,
		`fill="#0a2a43"`,
		`<marker id="arrowhead"`,
		`refX="7"`,
		`orient="auto"`,
		`d="M0,0 Q-2.5,5 0,10"`,
		`id="route-0"`,
		`stroke="#ff3b3b"`,
		`stroke-width="8"`,
		`marker-end="url(#arrowhead)"`,
		`fill="#00e5ff"`,
		`fill="#ff5252"`,
		`</svg>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
	if n := strings.Count(out, "<circle"); n != 2 {
		t.Errorf("got %d cities, want 2; cities without routes aren't drawn", n)
	}
	for _, unwanted := range []string{"<text", "animateMotion"} {
		if strings.Contains(out, unwanted) {
			t.Errorf("output unexpectedly contains %q", unwanted)
		}
	}
}

func TestWriteLabels(t *testing.T) {
	st := DefaultStyle()
	st.Labels = true
	out := write(t, testScene(), st)
	if !strings.Contains(out, ">Alpha</text>") {
		t.Errorf("missing label:\n%s", out)
	}
	if !strings.Contains(out, ">Bravo &lt;B&gt;</text>") {
		t.Errorf("label not escaped:\n%s", out)
	}
}

func TestWriteLegend(t *testing.T) {
	st := DefaultStyle()
	st.Legend = true
	out := write(t, testScene(), st)
	if !strings.Contains(out, "Alpha → Bravo &lt;B&gt; (0 km)") {
		t.Errorf("missing legend:\n%s", out)
	}
}

func TestWriteGlyphArrows(t *testing.T) {
	st := DefaultStyle()
	st.Arrows = GlyphArrows
	out := write(t, testScene(), st)
	if strings.Contains(out, "<marker") || strings.Contains(out, "marker-end") {
		t.Errorf("glyph arrows shouldn't use markers:\n%s", out)
	}
	if !strings.Contains(out, `d="`+glyphPath+`"`) || !strings.Contains(out, `d="`+glyphGlowPath+`"`) {
		t.Errorf("missing arrow glyphs:\n%s", out)
	}
	if !strings.Contains(out, `transform="matrix(`) {
		t.Errorf("arrow glyph isn't placed with a transform:\n%s", out)
	}
}

func TestWriteAnimated(t *testing.T) {
	st := DefaultStyle()
	st.Animate = true
	st.Duration = 1500 * time.Millisecond
	out := write(t, testScene(), st)
	for _, want := range []string{
		`<animateMotion dur="1.5s" fill="freeze" rotate="auto" begin="0s">`,
		`<mpath xlink:href="#route-0"/>`,
		`d="` + flyingArrowPath + `"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestWriteEmptyScene(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, &render.Scene{}, DefaultStyle())
	if !errors.Is(err, render.ErrEmptyScene) {
		t.Errorf("got error %v, want %v", err, render.ErrEmptyScene)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes for an empty scene", buf.Len())
	}
}

var errBroken = errors.New("broken pipe")

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errBroken }

func TestWriteError(t *testing.T) {
	if err := Write(brokenWriter{}, testScene(), DefaultStyle()); !errors.Is(err, errBroken) {
		t.Errorf("got error %v, want %v", err, errBroken)
	}
}
