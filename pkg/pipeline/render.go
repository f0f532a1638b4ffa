package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/tagcloud/pkg/render"
	"github.com/matzehuels/tagcloud/pkg/render/sink"
	"github.com/matzehuels/tagcloud/pkg/render/styles"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, l Layout, opts Options) (map[string][]byte, error) {
	style, err := styles.ByName(opts.Style)
	if err != nil {
		return nil, err
	}
	cloud := l.Cloud(opts.NewDistribution(), opts.Probes)

	artifacts := make(map[string][]byte)
	var svg []byte
	renderSVG := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		var err error
		if opts.Engine == EngineGraphviz {
			svg, err = sink.RenderGraphvizSVG(ctx, sink.RenderDOT(cloud))
		} else {
			svg = sink.RenderSVG(cloud, buildSVGOptions(style, opts)...)
		}
		return svg, err
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = renderSVG()
		case FormatPNG:
			data, err = sink.RenderPNG(cloud, buildPNGOptions(style, opts)...)
		case FormatPDF:
			if data, err = renderSVG(); err == nil {
				data, err = render.ToPDF(data)
			}
		case FormatJSON:
			jsonOpts := []sink.JSONOption{sink.WithJSONStyle(opts.Style)}
			if opts.Probes > 0 {
				jsonOpts = append(jsonOpts, sink.WithJSONProbes())
			}
			data, err = sink.RenderJSON(cloud, jsonOpts...)
		case FormatDOT:
			data = []byte(sink.RenderDOT(cloud))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderCloud renders an already built cloud, for example one read back
// from JSON, skipping layout entirely.
func RenderCloud(ctx context.Context, cloud render.Cloud, opts Options) (map[string][]byte, error) {
	l := Layout{
		Center:     cloud.Center,
		Canvas:     cloud.Canvas,
		Rectangles: cloud.Rectangles,
		Labels:     cloud.Labels,
	}
	opts.Probes = 0
	return Render(ctx, l, opts)
}

func buildSVGOptions(style styles.Style, opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithStyle(style), sink.WithMargin(opts.Margin)}
	if opts.ShowLabels {
		svgOpts = append(svgOpts, sink.WithLabels())
	}
	if opts.Probes > 0 {
		svgOpts = append(svgOpts, sink.WithProbePath())
	}
	if opts.ShowCenter {
		svgOpts = append(svgOpts, sink.WithCenter())
	}
	return svgOpts
}

func buildPNGOptions(style styles.Style, opts Options) []sink.PNGOption {
	pngOpts := []sink.PNGOption{sink.WithPNGStyle(style), sink.WithPNGMargin(opts.Margin), sink.WithScale(opts.Scale)}
	if opts.Probes > 0 {
		pngOpts = append(pngOpts, sink.WithPNGProbePath())
	}
	if opts.ShowCenter {
		pngOpts = append(pngOpts, sink.WithPNGCenter())
	}
	return pngOpts
}
