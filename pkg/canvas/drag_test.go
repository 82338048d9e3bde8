package canvas

import (
	"testing"

	"github.com/matzehuels/folio/pkg/geom"
	"github.com/matzehuels/folio/pkg/sheet"
)

// testGeometry has a 100px column pitch to keep the arithmetic readable.
func testGeometry() sheet.Geometry {
	return sheet.Geometry{
		ContentWidth:  1000,
		ContentHeight: 1000,
		Columns:       10,
		Gap:           16,
		ColumnWidth:   84,
	}
}

func TestResizeRight(t *testing.T) {
	tests := []struct {
		name  string
		snap  Snapshot
		delta int
		want  int
	}{
		{"grow three", Snapshot{GridStart: 1, GridSpan: 6, Start: 1}, 3, 9},
		{"clamp to grid", Snapshot{GridStart: 1, GridSpan: 6, Start: 1}, 10, 12},
		{"clamp by start", Snapshot{GridStart: 7, GridSpan: 3, Start: 7}, 5, 6},
		{"shrink to one", Snapshot{GridStart: 2, GridSpan: 4, Start: 2}, -9, 1},
		{"auto flow", Snapshot{GridSpan: 4, Start: 5}, 20, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResizeRight(tt.snap, tt.delta, 12); got != tt.want {
				t.Errorf("ResizeRight() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResizeLeft(t *testing.T) {
	tests := []struct {
		name               string
		snap               Snapshot
		delta              int
		wantStart, wantSpn int
		wantOK             bool
	}{
		{"shrink", Snapshot{GridStart: 3, GridSpan: 6, Start: 3}, 2, 5, 4, true},
		{"grow left", Snapshot{GridStart: 3, GridSpan: 6, Start: 3}, -2, 1, 8, true},
		{"past column one", Snapshot{GridStart: 3, GridSpan: 6, Start: 3}, -3, 3, 6, false},
		{"span below one", Snapshot{GridStart: 3, GridSpan: 6, Start: 3}, 6, 3, 6, false},
		{"auto flow uses rendered start", Snapshot{GridSpan: 4, Start: 5}, 1, 6, 3, true},
		{"overflowing snapshot", Snapshot{GridStart: 10, GridSpan: 6, Start: 10}, 1, 10, 6, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, span, ok := ResizeLeft(tt.snap, tt.delta, 12)
			if start != tt.wantStart || span != tt.wantSpn || ok != tt.wantOK {
				t.Errorf("ResizeLeft() = %d, %d, %v, want %d, %d, %v",
					start, span, ok, tt.wantStart, tt.wantSpn, tt.wantOK)
			}
		})
	}
}

func TestResizeBottom(t *testing.T) {
	tests := []struct {
		margin, delta, want float64
	}{
		{0, 40, 40},
		{100, -150, 0},
		{200, 500, 300},
	}
	for _, tt := range tests {
		if got := ResizeBottom(Snapshot{MarginBottom: tt.margin}, tt.delta); got != tt.want {
			t.Errorf("ResizeBottom(%v, %v) = %v, want %v", tt.margin, tt.delta, got, tt.want)
		}
	}
}

func TestMoveColumns(t *testing.T) {
	tests := []struct {
		name  string
		snap  Snapshot
		delta int
		want  int
	}{
		{"right", Snapshot{GridStart: 1, GridSpan: 4, Start: 1}, 2, 3},
		{"clamped right", Snapshot{GridStart: 1, GridSpan: 4, Start: 1}, 20, 9},
		{"clamped left", Snapshot{GridStart: 3, GridSpan: 4, Start: 3}, -5, 1},
		{"auto flow stays", Snapshot{GridSpan: 4, Start: 5}, 0, 0},
		{"auto flow pinned", Snapshot{GridSpan: 4, Start: 5}, 1, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MoveColumns(tt.snap, tt.delta, 12); got != tt.want {
				t.Errorf("MoveColumns() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMoveFree(t *testing.T) {
	g := testGeometry()
	s := Snapshot{HasFree: true, Free: sheet.FreeLayout{Width: 200, Height: 100}}
	tests := []struct {
		name      string
		delta     geom.Point
		unsnapped bool
		wantX     float64
		wantY     float64
	}{
		{"snapped", geom.Point{X: 130, Y: 23}, false, 100, 16},
		{"unsnapped", geom.Point{X: 130, Y: 23}, true, 130, 23},
		{"clamped", geom.Point{X: 5000, Y: -50}, false, 800, 0},
		{"clamped bottom", geom.Point{X: 0, Y: 5000}, true, 0, 900},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := MoveFree(s, tt.delta, g, tt.unsnapped)
			if f.X != tt.wantX || f.Y != tt.wantY {
				t.Errorf("MoveFree() = (%v,%v), want (%v,%v)", f.X, f.Y, tt.wantX, tt.wantY)
			}
			if f.Width != 200 || f.Height != 100 {
				t.Errorf("MoveFree() changed size to %vx%v", f.Width, f.Height)
			}
		})
	}
}

func TestResizeFree(t *testing.T) {
	g := testGeometry()
	tests := []struct {
		name      string
		free      sheet.FreeLayout
		kind      DragKind
		delta     geom.Point
		unsnapped bool
		want      sheet.FreeLayout
	}{
		{
			name:  "right snaps to columns",
			free:  sheet.FreeLayout{X: 0, Width: 200, Height: 100},
			kind:  DragResizeRight,
			delta: geom.Point{X: 130},
			want:  sheet.FreeLayout{X: 0, Width: 284, Height: 100},
		},
		{
			name:      "right unsnapped",
			free:      sheet.FreeLayout{X: 0, Width: 200, Height: 100},
			kind:      DragResizeRight,
			delta:     geom.Point{X: 130},
			unsnapped: true,
			want:      sheet.FreeLayout{X: 0, Width: 330, Height: 100},
		},
		{
			name:  "right clamped to content",
			free:  sheet.FreeLayout{X: 800, Width: 200, Height: 100},
			kind:  DragResizeRight,
			delta: geom.Point{X: 500},
			want:  sheet.FreeLayout{X: 800, Width: 200, Height: 100},
		},
		{
			name:  "left grows",
			free:  sheet.FreeLayout{X: 200, Width: 200, Height: 100},
			kind:  DragResizeLeft,
			delta: geom.Point{X: -130},
			want:  sheet.FreeLayout{X: 100, Width: 300, Height: 100},
		},
		{
			name:  "left keeps minimum width",
			free:  sheet.FreeLayout{X: 200, Width: 200, Height: 100},
			kind:  DragResizeLeft,
			delta: geom.Point{X: 500},
			want:  sheet.FreeLayout{X: 316, Width: 84, Height: 100},
		},
		{
			name:  "bottom snaps",
			free:  sheet.FreeLayout{Width: 200, Height: 100},
			kind:  DragResizeBottom,
			delta: geom.Point{Y: 23},
			want:  sheet.FreeLayout{Width: 200, Height: 128},
		},
		{
			name:  "bottom minimum",
			free:  sheet.FreeLayout{Width: 200, Height: 100},
			kind:  DragResizeBottom,
			delta: geom.Point{Y: -500},
			want:  sheet.FreeLayout{Width: 200, Height: 16},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResizeFree(Snapshot{HasFree: true, Free: tt.free}, tt.kind, tt.delta, g, tt.unsnapped)
			if got != tt.want {
				t.Errorf("ResizeFree() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSnapshotOf(t *testing.T) {
	s := SnapshotOf(sheet.Block{GridSpan: 4, MarginBottom: 12, Free: &sheet.FreeLayout{X: 5}}, 7)
	if s.Start != 7 || s.GridStart != 0 || !s.HasFree || s.Free.X != 5 {
		t.Errorf("SnapshotOf() = %+v", s)
	}
	if s := SnapshotOf(sheet.Block{GridStart: 3, GridSpan: 2}, 9); s.Start != 3 {
		t.Errorf("explicit start = %d, want 3", s.Start)
	}
}
