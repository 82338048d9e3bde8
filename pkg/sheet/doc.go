// Package sheet defines the worksheet block model: typed content blocks with
// grid or free-position layout attributes, the page formats they are laid
// out on, and the mutations an editor applies to them.
//
// # Blocks
//
// A [Block] is an atomic content unit. Its Content payload is opaque to the
// layout engine. Layout attributes depend on the worksheet's [LayoutMode]:
//
//   - Grid and masonry: GridSpan (1..columns) and an optional GridStart
//     (0 means auto-flow), plus MarginBottom and MarginStyle in grid mode.
//   - Freeform: a [FreeLayout] with pixel position and size relative to the
//     page content area, a page index and a z-index.
//
// # Invariants
//
// Every mutation on [Worksheet] renumbers Order to 0..n-1 and clamps layout
// attributes so that 1 ≤ GridSpan ≤ Columns and GridStart+GridSpan-1 ≤ Columns.
// Out-of-range input is clamped, never rejected. Only references to unknown
// block ids produce errors.
//
// # Reading Order
//
// [ComputeReadingOrder] infers a top-to-bottom, left-to-right rank for
// freeform blocks. It is a pure query; [Worksheet.CommitReadingOrder] is the
// only operation that writes the derived order back onto the blocks.
package sheet
