// Package outline renders a workbook's structure as a Graphviz diagram.
//
// # Overview
//
// Each chapter becomes a cluster holding its pages (or its facing spreads),
// linked left to right in reading order. Pages before the first chapter sit
// outside any cluster.
//
// # Usage
//
//	dot := outline.ToDOT(wb, outline.Options{Spreads: true})
//	svg, err := outline.RenderSVG(ctx, dot)
//
// When the workbook's ShowChapterColors setting is on, clusters and nodes
// are tinted with the chapter color.
//
// # Dependencies
//
// Rendering uses [github.com/goccy/go-graphviz], which runs Graphviz
// in-process, so no system installation is required.
package outline
