package styles

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/tagcloud/pkg/errors"
)

func TestByName(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"outline", NameOutline, false},
		{"", NameOutline, false},
		{"filled", NameFilled, false},
		{"handdrawn", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ByName(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ByName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidStyle) {
					t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidStyle)
				}
				return
			}
			if s.Name() != tt.want {
				t.Errorf("Name() = %q, want %q", s.Name(), tt.want)
			}
		})
	}
}

func TestRenderBox(t *testing.T) {
	tests := []struct {
		name     string
		style    Style
		contains []string
	}{
		{
			name:  "outline",
			style: Outline{},
			contains: []string{
				`id="box-3"`, `x="10.00"`, `y="20.00"`, `width="30.00"`, `height="40.00"`,
				`fill="none"`, `stroke="#000000"`,
			},
		},
		{
			name:     "filled",
			style:    Filled{},
			contains: []string{`id="box-3"`, `fill="` + palette[3] + `"`, `stroke="#ffffff"`},
		},
	}

	box := Box{Index: 3, X: 10, Y: 20, W: 30, H: 40, CX: 25, CY: 40}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.style.RenderBox(&buf, box)
			for _, s := range tt.contains {
				if !strings.Contains(buf.String(), s) {
					t.Errorf("RenderBox() missing %q in %s", s, buf.String())
				}
			}
		})
	}
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	Outline{}.RenderText(&buf, Box{W: 100, H: 30})
	if buf.Len() != 0 {
		t.Errorf("unlabelled box should render no text, got %q", buf.String())
	}

	buf.Reset()
	Filled{}.RenderText(&buf, Box{Label: "a<b", W: 100, H: 30, CX: 50, CY: 15})
	out := buf.String()
	if !strings.Contains(out, "a&lt;b") {
		t.Errorf("label should be escaped: %s", out)
	}
	if !strings.Contains(out, `fill="#ffffff"`) {
		t.Errorf("filled labels should be white: %s", out)
	}
}

func TestFontSize(t *testing.T) {
	tests := []struct {
		name string
		box  Box
	}{
		{"tiny", Box{Label: "word", W: 5, H: 5}},
		{"huge", Box{Label: "w", W: 1000, H: 1000}},
		{"long label", Box{Label: "a-really-long-label", W: 40, H: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FontSize(tt.box)
			if got < fontSizeMin || got > fontSizeMax {
				t.Errorf("FontSize() = %v, want within [%v, %v]", got, fontSizeMin, fontSizeMax)
			}
		})
	}
}

func TestTruncateLabel(t *testing.T) {
	if got := TruncateLabel(Box{Label: "go", W: 100, H: 30}); got != "go" {
		t.Errorf("short label truncated to %q", got)
	}
	got := TruncateLabel(Box{Label: "supercalifragilistic", W: 20, H: 10})
	if !strings.HasSuffix(got, "..") {
		t.Errorf("long label = %q, want truncated", got)
	}
	if len(got) >= len("supercalifragilistic") {
		t.Errorf("truncated label %q not shorter", got)
	}
}
