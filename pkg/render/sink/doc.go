// Package sink renders a computed [layout.Layout] into output formats.
//
//   - JSON: the layout itself, the export contract for print and PDF tools
//   - SVG: pages side by side with block boxes, margin styles, page numbers
//   - PNG: the same drawing rasterized with gg
//
// [Render] produces several formats concurrently:
//
//	artifacts, err := sink.Render(ctx, l, []string{sink.FormatSVG, sink.FormatPNG})
//	svg := artifacts[sink.FormatSVG]
//
// Blocks that extend past the content area are outlined in red so layout
// problems are visible in every preview.
//
// [layout.Layout]: github.com/matzehuels/folio/pkg/layout.Layout
package sink
