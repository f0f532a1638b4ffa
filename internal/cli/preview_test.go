package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/geom"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
	"github.com/matzehuels/tagcloud/pkg/render"
	"github.com/matzehuels/tagcloud/pkg/sizes"
)

func testPreviewModel(t *testing.T, opts pipeline.Options, n int) previewModel {
	t.Helper()
	if err := opts.ValidateForLayout(); err != nil {
		t.Fatal(err)
	}
	sz, err := sizes.Random(n, geom.Sz(10, 5), geom.Sz(40, 20), 1)
	if err != nil {
		t.Fatal(err)
	}
	return newPreviewModel(opts, sizes.Items(sz))
}

func press(m previewModel, key string) previewModel {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(previewModel)
}

func TestPreviewModelKeys(t *testing.T) {
	m := testPreviewModel(t, pipeline.Options{}, 25)

	m = press(m, " ")
	if m.placed != 1 || m.layouter.Len() != 1 {
		t.Fatalf("space placed %d", m.placed)
	}
	m = press(m, "enter")
	m = press(m, "a")
	if m.placed != 12 {
		t.Errorf("placed = %d after space, enter, a; want 12", m.placed)
	}
	m = press(m, "a")
	m = press(m, "a")
	if m.placed != 25 {
		t.Errorf("placed = %d, want all 25", m.placed)
	}
	if !strings.Contains(m.View(), "all rectangles placed") {
		t.Error("view does not report completion")
	}

	m = press(m, "r")
	if m.placed != 0 || m.layouter.Len() != 0 || len(m.steps) != 0 {
		t.Errorf("reset left %d placed", m.placed)
	}

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd == nil {
		t.Error("q should return a quit command")
	}
}

func TestPreviewModelStopsOnError(t *testing.T) {
	m := testPreviewModel(t, pipeline.Options{MaxSteps: 1}, 5)
	m = press(m, "a")
	if m.placed != 1 {
		t.Errorf("placed = %d, want 1", m.placed)
	}
	if !errors.Is(m.err, errors.ErrCodeSearchExhausted) {
		t.Errorf("err = %v, want SEARCH_EXHAUSTED", m.err)
	}
	if !strings.Contains(m.View(), "rectangle 1") {
		t.Error("view does not show the failure")
	}
}

func TestPreviewModelResize(t *testing.T) {
	m := testPreviewModel(t, pipeline.Options{}, 3)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	m = next.(previewModel)
	lines := strings.Split(m.View(), "\n")
	// title, help, blank, 13 grid rows, blank, status
	if len(lines) != 18 {
		t.Errorf("view has %d lines, want 18", len(lines))
	}
}

func TestRasterize(t *testing.T) {
	cloud := render.Cloud{
		Center:     geom.Pt(50, 50),
		Canvas:     geom.Sz(100, 100),
		Rectangles: []geom.Rectangle{geom.Rect(0, 0, 50, 50), geom.Rect(50, 50, 50, 50)},
	}
	// 10 columns × 5 rows of 2:1 cells covers exactly 100 × 100.
	grid := rasterize(cloud, 10, 5)

	if grid[0][0] != 0 || grid[0][4] != 0 || grid[1][4] != 0 {
		t.Errorf("top-left rectangle not drawn: %v", grid[:2])
	}
	if grid[4][9] != 1 || grid[3][5] != 1 {
		t.Errorf("bottom-right rectangle not drawn: %v", grid[3:])
	}
	if grid[0][9] != cellEmpty || grid[4][0] != cellEmpty {
		t.Errorf("free corners should be empty: %v", grid)
	}
}

func TestRasterizeCenterMarker(t *testing.T) {
	grid := rasterize(render.Cloud{Center: geom.Pt(50, 50), Canvas: geom.Sz(100, 100)}, 10, 5)
	if grid[2][5] != cellCenter {
		t.Errorf("center cell = %d, want cellCenter", grid[2][5])
	}
}
