package render

import (
	"testing"

	"github.com/matzehuels/tagcloud/pkg/geom"
)

func TestCloudFrame(t *testing.T) {
	tests := []struct {
		name   string
		cloud  Cloud
		margin int
		want   geom.Rectangle
	}{
		{
			name:   "canvas only",
			cloud:  Cloud{Center: geom.Pt(400, 300), Canvas: geom.Sz(800, 600)},
			margin: 10,
			want:   geom.Rect(0, 0, 800, 600),
		},
		{
			name: "canvas contains rectangles",
			cloud: Cloud{
				Center:     geom.Pt(400, 300),
				Canvas:     geom.Sz(800, 600),
				Rectangles: []geom.Rectangle{geom.Rect(390, 290, 20, 20)},
			},
			margin: 10,
			want:   geom.Rect(0, 0, 800, 600),
		},
		{
			name: "rectangle spills over canvas",
			cloud: Cloud{
				Canvas:     geom.Sz(100, 100),
				Rectangles: []geom.Rectangle{geom.Rect(90, 90, 20, 20)},
			},
			margin: 5,
			want:   geom.Rect(0, 0, 115, 115),
		},
		{
			name: "no canvas pads bounds",
			cloud: Cloud{
				Rectangles: []geom.Rectangle{geom.Rect(-10, -10, 20, 20), geom.Rect(10, -10, 20, 20)},
			},
			margin: 5,
			want:   geom.Rect(-15, -15, 50, 30),
		},
		{
			name:   "empty cloud frames the center",
			cloud:  Cloud{Center: geom.Pt(3, 4)},
			margin: 10,
			want:   geom.Rect(-7, -6, 20, 20),
		},
		{
			name:   "empty cloud without margin",
			cloud:  Cloud{Center: geom.Pt(3, 4)},
			margin: 0,
			want:   geom.Rect(2, 3, 2, 2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cloud.Frame(tt.margin); got != tt.want {
				t.Errorf("Frame(%d) = %v, want %v", tt.margin, got, tt.want)
			}
		})
	}
}

func TestCloudLabel(t *testing.T) {
	c := Cloud{Labels: []string{"go", "rust"}}
	tests := []struct {
		i    int
		want string
	}{
		{0, "go"},
		{1, "rust"},
		{2, ""},
		{-1, ""},
	}
	for _, tt := range tests {
		if got := c.Label(tt.i); got != tt.want {
			t.Errorf("Label(%d) = %q, want %q", tt.i, got, tt.want)
		}
	}
}
