// Package geom provides the pure geometry and grid math shared by every
// interactive component: rectangles and hit-testing, clamping, pixel to
// grid-column conversion and snapping.
//
// # Grid Math
//
// A worksheet page is divided into N equal columns separated by a fixed gap.
// Pointer deltas are converted to whole-column deltas by dividing by the
// column pitch (column width plus gap) and rounding:
//
//	w := geom.ColumnWidth(contentWidth, 12, 16)
//	cols := geom.ColumnsDelta(deltaX, w, 16) // e.g. +3
//
// Span and start clamps keep a block inside the grid:
//
//	span := geom.ClampSpan(span+cols, start, 12)   // 1 ≤ span ≤ 12-start+1
//	start = geom.ClampStart(start, span, 12)       // start+span-1 ≤ 12
//
// # Units
//
// All lengths are CSS pixels at 96 dpi. [MMToPx] converts physical page
// dimensions exactly; page-break decisions depend on it.
package geom
