package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/pkg/pipeline"
)

// layoutCommand creates the layout command, which runs the full
// sizes → layout → render pipeline.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags     optionFlags
		output    string
		noCache   bool
		refresh   bool
		showTable bool
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Lay out rectangles around a center point and render them",
		Long: `Lay out rectangles around a center point and render them.

Sizes come from one of three sources, in order of precedence:
  --sizes   explicit WxH list (with optional --labels)
  --text    word boxes sized by word frequency in a text file
  default   --count random sizes between --min-* and --max-*, seeded by --seed

Each rectangle is placed at the first point along the spiral where it does not
overlap anything placed before it. Results are cached locally for faster
subsequent runs.`,
		Example: `  tagcloud layout -n 100 -f svg,png
  tagcloud layout --text README.md --show-labels --style filled -o readme
  tagcloud layout --sizes 40x20,30x10,10x10 --labels go,rust,c -f json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd, c)
			if err != nil {
				return err
			}
			opts.Refresh = refresh
			return c.runLayout(cmd.Context(), opts, output, noCache, showTable)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: tagcloud)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().BoolVar(&showTable, "table", false, "print every placed rectangle")
	flags.addLayoutFlags(cmd)
	flags.addSizeFlags(cmd)
	flags.addRenderFlags(cmd)

	return cmd
}

// runLayout executes the pipeline and writes one file per format.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache, showTable bool) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Placing %s rectangles...", opts.Source()))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	if ctx.Err() != nil {
		spinner.Stop()
		return ctx.Err()
	}
	prog.done(fmt.Sprintf("Placed %d rectangles", result.Stats.Rectangles))

	spinner.SetMessage(fmt.Sprintf("Writing %d files...", len(opts.Formats)))
	paths, err := writeArtifacts(basePath(output, ""), opts.Formats, result.Artifacts)
	spinner.Stop()
	if err != nil {
		return err
	}

	printSuccess("Layout complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.Rectangles, result.Stats.Steps, result.CacheInfo.LayoutHit)
	printKeyValue("Bounds", result.Stats.Bounds.String())
	if showTable {
		printNewline()
		fmt.Println(rectangleTable(result.Layout))
	}
	if slices.Contains(opts.Formats, pipeline.FormatJSON) {
		printNewline()
		printNextStep("Re-render", "tagcloud render "+basePath(output, "")+".json -f png")
	}

	return nil
}
