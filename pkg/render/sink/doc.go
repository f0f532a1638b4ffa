// Package sink writes a [render.Cloud] to concrete output formats.
//
// Supported formats:
//
//   - SVG ([RenderSVG]): styled vector output with optional labels, probe
//     path and center marker
//   - PNG ([RenderPNG]): raster output drawn in-process with gogpu/gg
//   - JSON ([RenderJSON], [ParseJSON]): the cloud as data, for re-rendering
//   - DOT ([RenderDOT], [RenderGraphvizSVG]): Graphviz input with pinned box
//     nodes, rendered by the neato engine through go-graphviz
//
// All sinks agree on the coordinate system: the visible frame is
// [render.Cloud.Frame] and y grows downwards, as in the layout itself.
//
// [render.Cloud]: github.com/matzehuels/tagcloud/pkg/render.Cloud
// [render.Cloud.Frame]: github.com/matzehuels/tagcloud/pkg/render.Cloud.Frame
package sink
