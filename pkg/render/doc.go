// Package render turns placed rectangles into visual outputs.
//
// # Overview
//
// The rendering layer is deliberately separate from the layout algorithm: a
// [Cloud] is a plain snapshot of a layout (center, canvas, rectangles and
// optional labels) and every sink consumes it without knowing how it was
// produced. Subpackages:
//
//   - [sink]: output formats (SVG, PNG, JSON, DOT)
//   - [styles]: visual styles for SVG output (outline, filled)
//
// # Format Conversion
//
// [ToPDF] converts any SVG to PDF using the external rsvg-convert tool (from
// librsvg):
//
//	svg := sink.RenderSVG(cloud)
//	pdf, err := render.ToPDF(svg)
//
// [sink]: github.com/matzehuels/tagcloud/pkg/render/sink
// [styles]: github.com/matzehuels/tagcloud/pkg/render/styles
package render
