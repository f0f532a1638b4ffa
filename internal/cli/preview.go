package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/pkg/geom"
	"github.com/matzehuels/tagcloud/pkg/layouter"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
	"github.com/matzehuels/tagcloud/pkg/render"
	"github.com/matzehuels/tagcloud/pkg/sizes"
)

// Preview styles
var (
	previewLatestStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	previewRectStyle   = lipgloss.NewStyle().Foreground(colorCyan)
	previewCenterStyle = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	previewEmptyStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	cellEmpty  = -1
	cellCenter = -2

	// Terminal cells are roughly twice as tall as they are wide.
	cellAspect = 2.0
)

// previewCommand creates the interactive preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var flags optionFlags

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Step through placements interactively in the terminal",
		Long: `Step through placements interactively in the terminal.

Keys:
  space, enter  place the next rectangle
  a             place the next ten
  r             start over
  q             quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd, c)
			if err != nil {
				return err
			}
			return c.runPreview(cmd.Context(), opts)
		},
	}

	flags.addLayoutFlags(cmd)
	flags.addSizeFlags(cmd)

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, opts pipeline.Options) error {
	if err := opts.ValidateForSizes(); err != nil {
		return err
	}
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}
	items, err := pipeline.GenerateSizes(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(newPreviewModel(opts, items), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(previewModel); ok {
		printSuccess("Placed %d of %d rectangles", fm.placed, len(fm.items))
	}
	return nil
}

// =============================================================================
// previewModel - placement stepper
// =============================================================================

type previewModel struct {
	opts     pipeline.Options
	items    []sizes.Item
	layouter *layouter.Layouter
	placed   int
	steps    []int
	err      error
	width    int
	height   int
}

func newPreviewModel(opts pipeline.Options, items []sizes.Item) previewModel {
	m := previewModel{opts: opts, items: items, width: 80, height: 24}
	return m.reset()
}

func (m previewModel) reset() previewModel {
	m.layouter = layouter.NewWithDistribution(m.opts.NewDistribution(), layouter.WithMaxSteps(m.opts.MaxSteps))
	m.placed = 0
	m.steps = nil
	m.err = nil
	return m
}

// place puts up to n more items. It stops at the first failure.
func (m previewModel) place(n int) previewModel {
	for ; n > 0 && m.err == nil && m.placed < len(m.items); n-- {
		if _, err := m.layouter.PutNext(m.items[m.placed].Size); err != nil {
			m.err = fmt.Errorf("rectangle %d: %w", m.placed, err)
			return m
		}
		m.steps = append(m.steps, m.layouter.LastSteps())
		m.placed++
	}
	return m
}

func (m previewModel) cloud() render.Cloud {
	c := render.Cloud{
		Center:     m.layouter.Center(),
		Canvas:     geom.Sz(m.opts.Width, m.opts.Height),
		Rectangles: m.layouter.Rectangles(),
	}
	for _, it := range m.items[:m.placed] {
		c.Labels = append(c.Labels, it.Label)
	}
	return c
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "enter":
			return m.place(1), nil
		case "a":
			return m.place(10), nil
		case "r":
			return m.reset(), nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Tagcloud preview"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("space place next  a place ten  r reset  q quit"))
	b.WriteString("\n\n")

	cols := max(m.width-2, 10)
	rows := max(m.height-7, 5)
	grid := rasterize(m.cloud(), cols, rows)
	for _, row := range grid {
		b.WriteString(" ")
		for _, owner := range row {
			b.WriteString(m.cell(owner))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	status := fmt.Sprintf("%s/%d placed", StyleNumber.Render(fmt.Sprint(m.placed)), len(m.items))
	if n := len(m.steps); n > 0 {
		status += StyleDim.Render(fmt.Sprintf("  last took %d candidates", m.steps[n-1]))
		status += StyleDim.Render("  bounds " + m.layouter.Bounds().String())
	}
	b.WriteString(status)
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(StyleWarning.Render(m.err.Error()))
	} else if m.placed == len(m.items) {
		b.WriteString("\n")
		b.WriteString(StyleSuccess.Render("all rectangles placed"))
	}
	return b.String()
}

func (m previewModel) cell(owner int) string {
	switch {
	case owner == cellEmpty:
		return previewEmptyStyle.Render("·")
	case owner == cellCenter:
		return previewCenterStyle.Render("+")
	case owner == m.placed-1:
		return previewLatestStyle.Render(string(cellRune(m.items[owner].Label, owner)))
	default:
		return previewRectStyle.Render(string(cellRune(m.items[owner].Label, owner)))
	}
}

// cellRune picks the character used to fill rectangle i: the first letter
// of its label, or a cycling letter for unlabelled rectangles.
func cellRune(label string, i int) rune {
	for _, r := range label {
		return r
	}
	return rune('a' + i%26)
}

// rasterize maps the cloud's frame onto a cols × rows character grid. Each
// cell holds the index of the last rectangle covering it, cellEmpty, or
// cellCenter for the spiral origin when nothing covers it.
func rasterize(c render.Cloud, cols, rows int) [][]int {
	grid := make([][]int, rows)
	for y := range grid {
		grid[y] = make([]int, cols)
		for x := range grid[y] {
			grid[y][x] = cellEmpty
		}
	}

	frame := c.Frame(0)
	k := math.Max(float64(frame.Size.Width)/float64(cols), float64(frame.Size.Height)/(float64(rows)*cellAspect))
	if k <= 0 {
		k = 1
	}
	toCol := func(x int) float64 { return float64(x-frame.Origin.X) / k }
	toRow := func(y int) float64 { return float64(y-frame.Origin.Y) / (k * cellAspect) }
	clamp := func(v, hi int) int { return min(max(v, 0), hi-1) }

	for i, r := range c.Rectangles {
		if r.Empty() {
			continue
		}
		end := r.Max()
		x0 := clamp(int(math.Floor(toCol(r.Origin.X))), cols)
		x1 := max(x0, clamp(int(math.Ceil(toCol(end.X)))-1, cols))
		y0 := clamp(int(math.Floor(toRow(r.Origin.Y))), rows)
		y1 := max(y0, clamp(int(math.Ceil(toRow(end.Y)))-1, rows))
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				grid[y][x] = i
			}
		}
	}

	cx := int(toCol(c.Center.X))
	cy := int(toRow(c.Center.Y))
	if cx >= 0 && cx < cols && cy >= 0 && cy < rows && grid[cy][cx] == cellEmpty {
		grid[cy][cx] = cellCenter
	}
	return grid
}
