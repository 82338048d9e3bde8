// Package paginate splits a worksheet's block list into fixed-size printable
// pages.
//
// # Grid Pagination
//
// Blocks are visited in list order. A row packer models CSS-grid auto-wrap:
// a block joins the current row while its columns still fit, otherwise the
// row is closed and its tallest block plus one gap is added to the page
// height. A page is closed when the next block would push the accumulated
// height past the content height. Blocks are never split and an empty page is
// only emitted for an empty worksheet.
//
//	heights := paginate.NewHeights()
//	heights.Set("intro", 412)
//	pages := paginate.Paginate(ws.Blocks, ws.Geometry(), heights)
//
// # Freeform Pagination
//
// Freeform blocks carry their own page index; [PaginateFreeform] groups them
// and [AutoPlace] flows blocks that have no position yet.
//
// # Measured Heights
//
// [Heights] caches measured block heights and notifies subscribers on
// change. A [Paginator] subscribes to it and re-runs pagination whenever a
// measurement changes.
package paginate
