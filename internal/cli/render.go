package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/pkg/pipeline"
	"github.com/matzehuels/tagcloud/pkg/render/sink"
)

// renderCommand creates the render command for re-rendering a saved layout.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags  optionFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "render [cloud.json]",
		Short: "Render a layout saved with 'layout -f json'",
		Long: `Render a layout saved with 'layout -f json'.

The JSON file holds every placed rectangle, so this step only draws; no
placement is repeated. The style recorded in the file is used unless --style
is given. Probe paths cannot be drawn because the file does not record the
spiral parameters.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd, c)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, cmd.Flags().Changed("style"), output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: <input> without extension)")
	flags.addRenderFlags(cmd)

	return cmd
}

// runRender reads a JSON cloud and writes it in the requested formats.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, styleSet bool, output string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}
	cloud, style, err := sink.ParseJSON(data)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	if !styleSet && style != "" {
		opts.Style = style
	}
	if err := opts.ValidateForRender(); err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("loaded cloud", "path", input, "rectangles", len(cloud.Rectangles), "style", opts.Style)

	artifacts, err := pipeline.RenderCloud(ctx, cloud, opts)
	if err != nil {
		return err
	}

	base := basePath(output, input)
	paths, err := writeArtifacts(base, opts.Formats, artifacts)
	if err != nil {
		return err
	}

	printSuccess("Rendered %d rectangles", len(cloud.Rectangles))
	for _, p := range paths {
		printFile(p)
	}
	return nil
}
