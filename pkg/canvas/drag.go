package canvas

import (
	"time"

	"github.com/matzehuels/folio/pkg/geom"
	"github.com/matzehuels/folio/pkg/sheet"
)

// DragKind is the handle a gesture started on.
type DragKind string

const (
	DragMove         DragKind = "move"
	DragResizeLeft   DragKind = "resize-left"
	DragResizeRight  DragKind = "resize-right"
	DragResizeBottom DragKind = "resize-bottom"
)

// Valid reports whether k is a known drag kind.
func (k DragKind) Valid() bool {
	switch k {
	case DragMove, DragResizeLeft, DragResizeRight, DragResizeBottom:
		return true
	}
	return false
}

// Snapshot is a block's geometry captured when a gesture begins.
type Snapshot struct {
	GridStart    int
	GridSpan     int
	MarginBottom float64

	// Start is the column the block is rendered at. It equals GridStart for
	// explicitly placed blocks and is derived from row packing otherwise.
	Start int

	Free    sheet.FreeLayout
	HasFree bool
}

// SnapshotOf captures b. renderedStart is the column b currently occupies.
func SnapshotOf(b sheet.Block, renderedStart int) Snapshot {
	s := Snapshot{
		GridStart:    b.GridStart,
		GridSpan:     b.GridSpan,
		MarginBottom: b.MarginBottom,
		Start:        renderedStart,
	}
	if b.GridStart > 0 {
		s.Start = b.GridStart
	}
	if s.Start < 1 {
		s.Start = 1
	}
	if b.Free != nil {
		s.Free = *b.Free
		s.HasFree = true
	}
	return s
}

// DragState is an active gesture.
type DragState struct {
	BlockID   string
	Kind      DragKind
	Start     geom.Point
	Snapshot  Snapshot
	StartedAt time.Time
}

// Delta returns the pointer offset from the gesture start.
func (d DragState) Delta(p geom.Point) geom.Point {
	return p.Sub(d.Start)
}

// ResizeRight grows or shrinks the span from the right edge.
func ResizeRight(s Snapshot, colsDelta, columns int) int {
	return geom.ClampSpan(s.GridSpan+colsDelta, s.GridStart, columns)
}

// ResizeLeft moves the left edge by colsDelta columns, keeping the right
// edge fixed. ok is false when the result would be invalid, in which case the
// caller keeps the previous geometry.
func ResizeLeft(s Snapshot, colsDelta, columns int) (start, span int, ok bool) {
	start = s.Start + colsDelta
	span = s.GridSpan - colsDelta
	if span < 1 || start < 1 || start+span-1 > columns {
		return s.GridStart, s.GridSpan, false
	}
	return start, span, true
}

// ResizeBottom returns the new bottom margin, clamped to [0, MaxMargin].
func ResizeBottom(s Snapshot, deltaY float64) float64 {
	return geom.Clamp(s.MarginBottom+deltaY, 0, sheet.MaxMargin)
}

// MoveColumns shifts the block horizontally by whole columns. A zero delta
// leaves an auto-flowing block in auto-flow.
func MoveColumns(s Snapshot, colsDelta, columns int) int {
	if colsDelta == 0 {
		return s.GridStart
	}
	return geom.ClampStart(s.Start+colsDelta, s.GridSpan, columns)
}

// MoveFree offsets a freeform block by delta. Unless unsnapped, x snaps to the
// nearest column boundary and y to [geom.DefaultSnapY]. The result is clamped
// inside the content area.
func MoveFree(s Snapshot, delta geom.Point, g sheet.Geometry, unsnapped bool) sheet.FreeLayout {
	f := s.Free
	x, y := f.X+delta.X, f.Y+delta.Y
	if !unsnapped {
		x = geom.SnapX(x, g.ColumnWidth, g.Gap)
		y = geom.SnapY(y, geom.DefaultSnapY)
	}
	f.X = geom.Clamp(x, 0, max(0, g.ContentWidth-f.Width))
	f.Y = geom.Clamp(y, 0, max(0, g.ContentHeight-f.Height))
	return f
}

// minFreeSize is the smallest width or height a freeform resize produces.
const minFreeSize = geom.DefaultSnapY

// ResizeFree changes a freeform block's size from the given edge. Widths snap
// to whole columns and heights to the vertical grid unless unsnapped. Widths
// are clamped to the content area; heights may overflow it.
func ResizeFree(s Snapshot, kind DragKind, delta geom.Point, g sheet.Geometry, unsnapped bool) sheet.FreeLayout {
	f := s.Free
	snapW := func(w float64) float64 {
		if unsnapped {
			return w
		}
		return geom.SnapX(w+g.Gap, g.ColumnWidth, g.Gap) - g.Gap
	}
	minW := minFreeSize
	if !unsnapped && g.ColumnWidth > minW {
		minW = g.ColumnWidth
	}

	switch kind {
	case DragResizeRight:
		w := snapW(f.Width + delta.X)
		f.Width = geom.Clamp(w, minW, max(minW, g.ContentWidth-f.X))
	case DragResizeLeft:
		right := f.X + f.Width
		x := f.X + delta.X
		if !unsnapped {
			x = geom.SnapX(x, g.ColumnWidth, g.Gap)
		}
		x = geom.Clamp(x, 0, right-minW)
		f.X, f.Width = x, right-x
	case DragResizeBottom:
		h := f.Height + delta.Y
		if !unsnapped {
			h = geom.SnapY(h, geom.DefaultSnapY)
		}
		f.Height = max(h, minFreeSize)
	}
	return f
}
