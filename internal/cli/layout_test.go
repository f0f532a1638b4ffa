package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/tagcloud/pkg/errors"
)

func runCLI(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func TestLayoutAndRenderCommands(t *testing.T) {
	c := testCLI(t)
	base := filepath.Join(t.TempDir(), "cloud")

	err := runCLI(t, c, "layout", "--no-cache", "-n", "8", "--seed", "3", "-f", "svg,json", "-o", base, "--table")
	if err != nil {
		t.Fatalf("layout: %v", err)
	}

	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(svg), `class="box"`); got != 8 {
		t.Errorf("svg has %d boxes, want 8", got)
	}
	data, err := os.ReadFile(base + ".json")
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Rectangles []json.RawMessage `json:"rectangles"`
	}
	if err := json.Unmarshal(data, &doc); err != nil || len(doc.Rectangles) != 8 {
		t.Fatalf("json: %v, %d rectangles", err, len(doc.Rectangles))
	}

	out := filepath.Join(t.TempDir(), "again")
	if err := runCLI(t, c, "render", base+".json", "-f", "svg", "-o", out); err != nil {
		t.Fatalf("render: %v", err)
	}
	again, err := os.ReadFile(out + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if string(again) != string(svg) {
		t.Error("re-rendered SVG differs from the original")
	}
}

func TestLayoutCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"bad format", []string{"layout", "--no-cache", "-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"bad style", []string{"layout", "--no-cache", "--style", "neon"}, errors.ErrCodeInvalidStyle},
		{"bad sizes", []string{"layout", "--no-cache", "--sizes", "3by4"}, errors.ErrCodeInvalidInput},
		{"exhausted", []string{"layout", "--no-cache", "--sizes", "10x10,10x10", "--max-steps", "1"}, errors.ErrCodeSearchExhausted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			args := append(tt.args, "-o", filepath.Join(dir, "x"))
			if err := runCLI(t, testCLI(t), args...); !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}
