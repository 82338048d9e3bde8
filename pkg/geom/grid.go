package geom

import "math"

// DefaultSnapY is the fixed vertical snapping grid in pixels.
const DefaultSnapY = 16.0

// MMToPx converts millimetres to CSS pixels at 96 dpi.
func MMToPx(mm float64) float64 {
	return mm * 96 / 25.4
}

// Clamp limits v to [lo, hi]. NaN is mapped to lo so that invalid input never
// reaches a rendered page.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampInt limits v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ColumnWidth returns the width of one grid column.
func ColumnWidth(contentWidth float64, columns int, gap float64) float64 {
	if columns < 1 {
		columns = 1
	}
	w := (contentWidth - gap*float64(columns-1)) / float64(columns)
	if w < 0 {
		return 0
	}
	return w
}

// ColumnsDelta converts a horizontal pointer delta into a whole number of
// columns: round(deltaX / (columnWidth + gap)).
func ColumnsDelta(deltaX, columnWidth, gap float64) int {
	pitch := columnWidth + gap
	if pitch <= 0 || math.IsNaN(deltaX) {
		return 0
	}
	return int(math.Round(deltaX / pitch))
}

// ClampSpan limits a column span so the block ends inside the grid.
// A start of 0 means auto-flow, in which case only 1 ≤ span ≤ columns holds.
func ClampSpan(span, start, columns int) int {
	if columns < 1 {
		columns = 1
	}
	maxSpan := columns
	if start >= 1 {
		maxSpan = columns - ClampInt(start, 1, columns) + 1
	}
	return ClampInt(span, 1, maxSpan)
}

// ClampStart limits a start column so that start+span-1 ≤ columns.
// A start of 0 (auto-flow) is preserved.
func ClampStart(start, span, columns int) int {
	if start == 0 {
		return 0
	}
	if columns < 1 {
		columns = 1
	}
	span = ClampInt(span, 1, columns)
	return ClampInt(start, 1, columns-span+1)
}

// ColumnX returns the x offset of the given 1-based column.
func ColumnX(column int, columnWidth, gap float64) float64 {
	if column < 1 {
		column = 1
	}
	return float64(column-1) * (columnWidth + gap)
}

// SpanWidth returns the pixel width of a block spanning span columns.
func SpanWidth(span int, columnWidth, gap float64) float64 {
	if span < 1 {
		return 0
	}
	return float64(span)*columnWidth + float64(span-1)*gap
}

// SnapX snaps x to the nearest column boundary.
func SnapX(x, columnWidth, gap float64) float64 {
	pitch := columnWidth + gap
	if pitch <= 0 {
		return x
	}
	return math.Round(x/pitch) * pitch
}

// SnapY snaps y to the nearest multiple of grid.
func SnapY(y, grid float64) float64 {
	if grid <= 0 {
		return y
	}
	return math.Round(y/grid) * grid
}
