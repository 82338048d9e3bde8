package sheet

import (
	"math"
	"testing"

	"github.com/matzehuels/folio/pkg/geom"
	apperr "github.com/matzehuels/folio/pkg/errors"
)

func TestPageFormatSize(t *testing.T) {
	tests := []struct {
		format PageFormat
		wantW  float64
		wantH  float64
	}{
		{FormatA4, 793.70, 1122.52},
		{FormatB5, 665.20, 944.88},
		{FormatA5, 559.37, 793.70},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			w, h := tt.format.Size()
			if math.Abs(w-tt.wantW) > 0.01 || math.Abs(h-tt.wantH) > 0.01 {
				t.Errorf("Size() = %.2f x %.2f, want %.2f x %.2f", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestParsers(t *testing.T) {
	if f, err := ParsePageFormat("a5"); err != nil || f != FormatA5 {
		t.Errorf("ParsePageFormat(a5) = %q, %v", f, err)
	}
	if _, err := ParsePageFormat("letter"); !apperr.Is(err, apperr.ErrCodeInvalidPageFormat) {
		t.Errorf("ParsePageFormat(letter) error = %v", err)
	}
	if m, err := ParseLayoutMode("Freeform"); err != nil || m != ModeFreeform {
		t.Errorf("ParseLayoutMode(Freeform) = %q, %v", m, err)
	}
	if _, err := ParseLayoutMode("flex"); !apperr.Is(err, apperr.ErrCodeInvalidLayoutMode) {
		t.Errorf("ParseLayoutMode(flex) error = %v", err)
	}
	if g, err := ParseGridGap("large"); err != nil || g.Px() != 24 {
		t.Errorf("ParseGridGap(large) = %q, %v", g, err)
	}
	if bt, err := ParseBlockType(" QR-Code "); err != nil || bt != TypeQRCode {
		t.Errorf("ParseBlockType(QR-Code) = %q, %v", bt, err)
	}
	if _, err := ParseBlockType("video"); !apperr.Is(err, apperr.ErrCodeInvalidBlockType) {
		t.Errorf("ParseBlockType(video) error = %v", err)
	}
}

func TestGapPx(t *testing.T) {
	tests := map[GridGap]float64{GapNone: 0, GapSmall: 8, GapMedium: 16, GapLarge: 24, "odd": 16}
	for g, want := range tests {
		if got := g.Px(); got != want {
			t.Errorf("%q.Px() = %v, want %v", g, got, want)
		}
	}
}

func TestNormalizeColumns(t *testing.T) {
	tests := []struct{ in, want int }{{0, 1}, {1, 1}, {4, 3}, {6, 6}, {11, 6}, {12, 12}, {40, 12}}
	for _, tt := range tests {
		if got := NormalizeColumns(tt.in); got != tt.want {
			t.Errorf("NormalizeColumns(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestGeometryA4(t *testing.T) {
	g := NewGeometry(FormatA4, 12, GapMedium)
	_, h := FormatA4.Size()
	if g.ContentHeight != h-100 {
		t.Errorf("ContentHeight = %v, want %v", g.ContentHeight, h-100)
	}
	if math.Abs(g.ContentHeight-1022.52) > 0.01 {
		t.Errorf("ContentHeight = %v, want ~1022.52", g.ContentHeight)
	}
	if g.ContentWidth != g.PageWidth-80 {
		t.Errorf("ContentWidth = %v", g.ContentWidth)
	}
	want := geom.ColumnWidth(g.ContentWidth, 12, 16)
	if g.ColumnWidth != want {
		t.Errorf("ColumnWidth = %v, want %v", g.ColumnWidth, want)
	}
	r := g.ContentRect()
	if r.X != 40 || r.Y != 60 {
		t.Errorf("ContentRect() origin = %v,%v", r.X, r.Y)
	}
}

func TestOutOfBounds(t *testing.T) {
	g := NewGeometry(FormatA4, 12, GapMedium)
	tests := []struct {
		name  string
		block Block
		want  bool
	}{
		{"grid ok", Block{GridSpan: 12, GridStart: 1}, false},
		{"grid overflow", Block{GridSpan: 6, GridStart: 8}, true},
		{"free inside", Block{Free: &FreeLayout{X: 10, Y: 10, Width: 100, Height: 100}}, false},
		{"free right", Block{Free: &FreeLayout{X: g.ContentWidth - 50, Width: 100, Height: 10}}, true},
		{"free below", Block{Free: &FreeLayout{Y: g.ContentHeight, Width: 10, Height: 10}}, true},
		{"free negative", Block{Free: &FreeLayout{X: -1, Width: 10, Height: 10}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutOfBounds(tt.block, g); got != tt.want {
				t.Errorf("OutOfBounds() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeFreeDefaults(t *testing.T) {
	ws := New("f", Settings{Mode: ModeFreeform})
	ws.Append(Block{ID: "a", Type: TypeImage, Free: &FreeLayout{X: math.NaN(), Width: -5, PageIndex: -2}})
	f := ws.Blocks[0].Free
	if f.X != 0 || f.Width != DefaultWidth(TypeImage) || f.Height != DefaultHeight(TypeImage) || f.PageIndex != 0 {
		t.Errorf("free defaults = %+v", *f)
	}
	if ws.Format != FormatA4 || ws.Columns != 12 || ws.Gap != GapMedium || ws.FontSize != 16 {
		t.Errorf("settings defaults = %s %d %s %v", ws.Format, ws.Columns, ws.Gap, ws.FontSize)
	}
}

func TestNormalizeClampsPageIndex(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-2, 0},
		{3, 3},
		{MaxPageIndex, MaxPageIndex},
		{2_000_000_000, MaxPageIndex},
	}
	for _, tt := range tests {
		b := Block{ID: "a", Type: TypeImage, Free: &FreeLayout{Width: 10, Height: 10, PageIndex: tt.in}}
		NormalizeBlock(&b, 12)
		if b.Free.PageIndex != tt.want {
			t.Errorf("PageIndex(%d) = %d, want %d", tt.in, b.Free.PageIndex, tt.want)
		}
	}
}
