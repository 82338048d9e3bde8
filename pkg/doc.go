// Package pkg provides the core libraries of folio, a layout engine for
// printable worksheets and workbooks.
//
// # Overview
//
// A worksheet is a list of content blocks placed on a 1/2/3/6/12-column grid
// (or freely, in freeform mode). Folio flows those blocks onto fixed-size
// pages, exports the resulting geometry, and drives the interactive editing
// gestures around it. A workbook collects worksheet pages, groups them into
// chapters and composes them into facing spreads.
//
// # Architecture
//
// The typical data flow:
//
//	worksheet JSON + measured heights
//	         ↓
//	    [io] package (tolerant decode and repair)
//	         ↓
//	    [paginate] package (row packing, page breaks, auto-placement)
//	         ↓
//	    [layout] package (exported page/block geometry)
//	         ↓
//	    [render] packages (SVG/PNG/JSON sinks, workbook outline)
//
// # Quick Start
//
//	ws, _ := io.ImportWorksheet("fractions.json")
//	pages := paginate.PaginateWorksheet(ws, heights)
//	l := layout.Build(ws, pages, heights)
//	svg := sink.RenderSVG(l)
//
// # Main Packages
//
// ## Model and Geometry
//
// [geom] - Points, rectangles and grid math: column widths, span clamping,
// pixel/column conversion.
//
// [sheet] - Block model, worksheet settings, page formats and reading order.
//
// [paginate] - Pagination engine with a per-block height cache.
//
// [layout] - The serializable geometry of a paginated worksheet.
//
// ## Interaction
//
// [events] - Injected pointer, wheel and keyboard event source.
//
// [canvas] - Drag and resize state machine for grid, masonry and freeform
// worksheets.
//
// [viewport] - Infinite canvas pan and zoom.
//
// [selection] - Lasso and multi-select.
//
// ## Workbooks
//
// [workbook] - Pages, chapters, spreads, composition rows and page
// reordering.
//
// ## Infrastructure
//
// [pipeline] - Cached layout → render and compose runner shared by the CLI
// and the HTTP API.
//
// [cache] - Cache interface with file, Redis, MongoDB and null backends.
//
// [config] - TOML/YAML configuration with defaults and validation.
//
// [api] - HTTP service over the pipeline and the gesture engines.
//
// [observability] - Hook registry for layout, cache, gesture and HTTP events.
//
// [errors] - Coded errors with user-facing messages and HTTP status mapping.
//
// # Testing
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/paginate/...     # Specific package
//	go test -run Example ./pkg/... # Examples only
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/geom
// [sheet]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/sheet
// [paginate]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/paginate
// [layout]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/layout
// [io]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/render
// [events]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/events
// [canvas]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/canvas
// [viewport]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/viewport
// [selection]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/selection
// [workbook]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/workbook
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/config
// [api]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/api
// [observability]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/errors
package pkg
