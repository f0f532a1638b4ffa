package sink

import (
	"bytes"
	"context"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/geom"
	"github.com/matzehuels/tagcloud/pkg/render"
	"github.com/matzehuels/tagcloud/pkg/render/styles"
)

func testCloud() render.Cloud {
	return render.Cloud{
		Center: geom.Pt(50, 40),
		Canvas: geom.Sz(100, 80),
		Rectangles: []geom.Rectangle{
			geom.Rect(40, 30, 20, 20),
			geom.Rect(60, 30, 10, 20),
		},
		Labels: []string{"go", "tcl"},
		Probes: []geom.Point{geom.Pt(50, 40), geom.Pt(51, 40), geom.Pt(50, 42)},
	}
}

func TestRenderSVG(t *testing.T) {
	tests := []struct {
		name     string
		opts     []SVGOption
		contains []string
		excludes []string
	}{
		{
			name:     "default",
			contains: []string{`viewBox="0 0 100 80"`, `id="box-0"`, `id="box-1"`, `fill="none"`},
			excludes: []string{"<text", "<polyline", `class="center"`},
		},
		{
			name:     "labels",
			opts:     []SVGOption{WithLabels()},
			contains: []string{">go</text>", ">tcl</text>"},
		},
		{
			name:     "probes and center",
			opts:     []SVGOption{WithProbePath(), WithCenter()},
			contains: []string{`points="50,40 51,40 50,42"`, `class="center"`},
		},
		{
			name:     "filled style",
			opts:     []SVGOption{WithStyle(styles.Filled{})},
			contains: []string{`stroke="#ffffff"`},
			excludes: []string{`fill="none"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svg := string(RenderSVG(testCloud(), tt.opts...))
			if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>\n") {
				t.Fatalf("RenderSVG() is not a complete document:\n%s", svg)
			}
			for _, s := range tt.contains {
				if !strings.Contains(svg, s) {
					t.Errorf("missing %q", s)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(svg, s) {
					t.Errorf("unexpected %q", s)
				}
			}
		})
	}
}

func TestRenderSVG_NoCanvas(t *testing.T) {
	c := render.Cloud{Rectangles: []geom.Rectangle{geom.Rect(-10, -10, 20, 20)}}
	svg := string(RenderSVG(c, WithMargin(5)))
	if !strings.Contains(svg, `viewBox="-15 -15 30 30"`) {
		t.Errorf("viewBox should pad the bounds:\n%s", svg)
	}
}

func TestRenderPNG(t *testing.T) {
	data, err := RenderPNG(testCloud(), WithScale(2), WithPNGStyle(styles.Filled{}), WithPNGProbePath(), WithPNGCenter())
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 160 {
		t.Errorf("PNG size = %dx%d, want 200x160", b.Dx(), b.Dy())
	}
}

func TestRenderPNG_TooLarge(t *testing.T) {
	tests := []struct {
		name  string
		cloud render.Cloud
		scale float64
	}{
		{"large canvas", render.Cloud{Canvas: geom.Sz(100000, 100000)}, 1},
		{"one long side", render.Cloud{Canvas: geom.Sz(MaxPNGPixels, 1)}, 2},
		{"area overflows int", testCloud(), 1e9},
		{"huge scale", testCloud(), 1e10},
		{"infinite scale", testCloud(), math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := RenderPNG(tt.cloud, WithScale(tt.scale)); err == nil {
				t.Error("RenderPNG() should refuse oversized frames")
			}
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	in := testCloud()
	data, err := RenderJSON(in, WithJSONStyle("filled"), WithJSONProbes())
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	out, style, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON() error: %v", err)
	}
	if style != "filled" {
		t.Errorf("style = %q, want filled", style)
	}
	if out.Center != in.Center || out.Canvas != in.Canvas {
		t.Errorf("center/canvas = %v/%v, want %v/%v", out.Center, out.Canvas, in.Center, in.Canvas)
	}
	if len(out.Rectangles) != len(in.Rectangles) {
		t.Fatalf("got %d rectangles, want %d", len(out.Rectangles), len(in.Rectangles))
	}
	for i := range in.Rectangles {
		if out.Rectangles[i] != in.Rectangles[i] || out.Label(i) != in.Label(i) {
			t.Errorf("rectangle %d = %v %q, want %v %q", i, out.Rectangles[i], out.Label(i), in.Rectangles[i], in.Label(i))
		}
	}
	if len(out.Probes) != len(in.Probes) {
		t.Errorf("got %d probes, want %d", len(out.Probes), len(in.Probes))
	}
}

func TestRenderJSON_OmitsProbesByDefault(t *testing.T) {
	data, err := RenderJSON(testCloud())
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	if strings.Contains(string(data), "probes") {
		t.Errorf("probes should be omitted:\n%s", data)
	}
}

func TestParseJSON_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", `{"rectangles": [`},
		{"negative size", `{"rectangles": [{"x": 0, "y": 0, "width": -1, "height": 2}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseJSON([]byte(tt.data))
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("ParseJSON() error = %v, want %s", err, errors.ErrCodeInvalidFormat)
			}
		})
	}
}

func TestRenderDOT(t *testing.T) {
	dot := RenderDOT(testCloud())
	for _, s := range []string{
		"graph cloud {",
		"layout=neato;",
		`r0 [label="go", pos="50,-40!", width=0.2778, height=0.2778];`,
		`r1 [label="tcl", pos="65,-40!"`,
	} {
		if !strings.Contains(dot, s) {
			t.Errorf("RenderDOT() missing %q in:\n%s", s, dot)
		}
	}
}

func TestDotQuote(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "go", `"go"`},
		{"quote", `say "hi"`, `"say \"hi\""`},
		{"backslash", `a\b`, `"a\\b"`},
		{"newline", "two\nlines", `"two\nlines"`},
		{"control dropped", "a\x00b\tc", `"abc"`},
		{"line separator kept", "a\u2028b", "\"a\u2028b\""},
		{"non-ascii", "Grüße 日本", `"Grüße 日本"`},
		{"invalid utf8 dropped", "a\xffb", `"ab"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dotQuote(tt.in); got != tt.want {
				t.Errorf("dotQuote(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestRenderDOT_EscapesLabels(t *testing.T) {
	c := testCloud()
	c.Labels = []string{"a\"b\\c\x00", "x\u2028y"}
	dot := RenderDOT(c)
	for _, bad := range []string{`\x00`, `\u2028`, "\x00"} {
		if strings.Contains(dot, bad) {
			t.Errorf("RenderDOT() contains %q in:\n%s", bad, dot)
		}
	}
	if !strings.Contains(dot, `label="a\"b\\c"`) {
		t.Errorf("RenderDOT() label not DOT-escaped in:\n%s", dot)
	}

	svg, err := RenderGraphvizSVG(context.Background(), dot)
	if err != nil {
		t.Fatalf("RenderGraphvizSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderGraphvizSVG() output missing <svg> tag")
	}
}

func TestRenderGraphvizSVG(t *testing.T) {
	svg, err := RenderGraphvizSVG(context.Background(), RenderDOT(testCloud()))
	if err != nil {
		t.Fatalf("RenderGraphvizSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderGraphvizSVG() output missing <svg> tag")
	}
}

func TestRenderGraphvizSVG_InvalidDOT(t *testing.T) {
	if _, err := RenderGraphvizSVG(context.Background(), `not valid DOT {{{`); err == nil {
		t.Error("RenderGraphvizSVG() should return error for invalid DOT")
	}
}
