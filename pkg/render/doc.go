// Package render groups the output renderers of folio.
//
// # Page Sinks
//
// The [sink] subpackage turns a paginated [layout.Layout] into JSON (the
// export contract), SVG (pages side by side with block outlines, margin
// patterns and page numbers) or PNG (rasterized with gg). [sink.Render]
// produces several formats concurrently.
//
//	svg := sink.RenderSVG(l, sink.WithColumnGuides())
//	png, err := sink.RenderPNG(l, sink.WithScale(2), sink.WithPage(1))
//
// # Workbook Outline
//
// The [outline] subpackage draws a workbook's page order as a Graphviz graph
// with one cluster per chapter.
//
//	dot := outline.ToDOT(wb, outline.Options{Spreads: true})
//	svg, err := outline.RenderSVG(ctx, dot)
//
// [sink]: github.com/matzehuels/folio/pkg/render/sink
// [outline]: github.com/matzehuels/folio/pkg/render/outline
// [layout.Layout]: github.com/matzehuels/folio/pkg/layout
package render
