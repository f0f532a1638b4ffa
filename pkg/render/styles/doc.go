// Package styles defines visual styles for cloud rendering.
//
// # Overview
//
// A [Style] controls how each placed rectangle and its label are written to
// SVG. Two styles are provided:
//
//   - [Outline]: black strokes on white, the plain debugging view
//   - [Filled]: palette fills with white labels, for presentation
//
// Use [ByName] to resolve a style from a configuration string:
//
//	style, err := styles.ByName("filled")
//	svg := sink.RenderSVG(cloud, sink.WithStyle(style))
//
// # Text Fitting
//
// [FontSize] picks a font size that fits the label inside its box, clamped to
// a readable range, and [TruncateLabel] shortens labels that still do not
// fit.
package styles
