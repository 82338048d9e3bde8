package sheet

import (
	"strings"

	"github.com/matzehuels/folio/pkg/geom"

	apperr "github.com/matzehuels/folio/pkg/errors"
)

// PageFormat is a printable paper size.
type PageFormat string

const (
	FormatA4 PageFormat = "A4"
	FormatB5 PageFormat = "B5"
	FormatA5 PageFormat = "A5"
)

var formatMM = map[PageFormat][2]float64{
	FormatA4: {210, 297},
	FormatB5: {176, 250},
	FormatA5: {148, 210},
}

// PageFormats returns the supported formats.
func PageFormats() []PageFormat { return []PageFormat{FormatA4, FormatB5, FormatA5} }

// Valid reports whether f is a known format.
func (f PageFormat) Valid() bool {
	_, ok := formatMM[f]
	return ok
}

// SizeMM returns the paper size in millimetres.
func (f PageFormat) SizeMM() (w, h float64) {
	d, ok := formatMM[f]
	if !ok {
		d = formatMM[FormatA4]
	}
	return d[0], d[1]
}

// Size returns the paper size in CSS pixels at 96 dpi.
func (f PageFormat) Size() (w, h float64) {
	wmm, hmm := f.SizeMM()
	return geom.MMToPx(wmm), geom.MMToPx(hmm)
}

// ParsePageFormat converts a case-insensitive name to a PageFormat.
func ParsePageFormat(s string) (PageFormat, error) {
	f := PageFormat(strings.ToUpper(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", apperr.New(apperr.ErrCodeInvalidPageFormat, "unknown page format %q (want A4, B5 or A5)", s)
	}
	return f, nil
}

// GridGap is the named spacing between grid columns and rows.
type GridGap string

const (
	GapNone   GridGap = "none"
	GapSmall  GridGap = "small"
	GapMedium GridGap = "medium"
	GapLarge  GridGap = "large"
)

var gapPx = map[GridGap]float64{
	GapNone:   0,
	GapSmall:  8,
	GapMedium: 16,
	GapLarge:  24,
}

// Valid reports whether g is a known gap.
func (g GridGap) Valid() bool {
	_, ok := gapPx[g]
	return ok
}

// Px returns the gap in pixels. Unknown gaps resolve to medium.
func (g GridGap) Px() float64 {
	if px, ok := gapPx[g]; ok {
		return px
	}
	return gapPx[GapMedium]
}

// ParseGridGap converts a name to a GridGap.
func ParseGridGap(s string) (GridGap, error) {
	g := GridGap(strings.ToLower(strings.TrimSpace(s)))
	if !g.Valid() {
		return "", apperr.New(apperr.ErrCodeInvalidInput, "unknown grid gap %q", s)
	}
	return g, nil
}

// LayoutMode selects how blocks are placed on pages.
type LayoutMode string

const (
	ModeGrid     LayoutMode = "grid"
	ModeFreeform LayoutMode = "freeform"
	ModeMasonry  LayoutMode = "masonry"
)

// Valid reports whether m is a known mode.
func (m LayoutMode) Valid() bool {
	switch m {
	case ModeGrid, ModeFreeform, ModeMasonry:
		return true
	}
	return false
}

// ParseLayoutMode converts a name to a LayoutMode.
func ParseLayoutMode(s string) (LayoutMode, error) {
	m := LayoutMode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", apperr.New(apperr.ErrCodeInvalidLayoutMode, "unknown layout mode %q", s)
	}
	return m, nil
}

// Allowed grid column counts.
var columnChoices = []int{1, 2, 3, 6, 12}

// NormalizeColumns maps n to the largest allowed column count not above it.
func NormalizeColumns(n int) int {
	best := columnChoices[0]
	for _, c := range columnChoices {
		if c <= n {
			best = c
		}
	}
	return best
}

// Fixed page chrome in pixels.
const (
	HeaderHeight = 60.0
	FooterHeight = 40.0
	PaddingX     = 40.0
)

// Geometry is the derived page geometry of a worksheet.
type Geometry struct {
	PageWidth     float64 `json:"pageWidth"`
	PageHeight    float64 `json:"pageHeight"`
	HeaderHeight  float64 `json:"headerHeight"`
	FooterHeight  float64 `json:"footerHeight"`
	PaddingX      float64 `json:"paddingX"`
	ContentWidth  float64 `json:"contentWidth"`
	ContentHeight float64 `json:"contentHeight"`
	Columns       int     `json:"columns"`
	Gap           float64 `json:"gap"`
	ColumnWidth   float64 `json:"columnWidth"`
}

// NewGeometry derives page geometry from a format, column count and gap.
func NewGeometry(format PageFormat, columns int, gap GridGap) Geometry {
	w, h := format.Size()
	columns = NormalizeColumns(columns)
	g := Geometry{
		PageWidth:    w,
		PageHeight:   h,
		HeaderHeight: HeaderHeight,
		FooterHeight: FooterHeight,
		PaddingX:     PaddingX,
		Columns:      columns,
		Gap:          gap.Px(),
	}
	g.ContentWidth = w - 2*PaddingX
	g.ContentHeight = h - HeaderHeight - FooterHeight
	g.ColumnWidth = geom.ColumnWidth(g.ContentWidth, columns, g.Gap)
	return g
}

// ContentRect returns the content area in page coordinates.
func (g Geometry) ContentRect() geom.Rect {
	return geom.Rect{X: g.PaddingX, Y: g.HeaderHeight, W: g.ContentWidth, H: g.ContentHeight}
}

// ColumnsDelta converts a horizontal pointer delta to whole columns.
func (g Geometry) ColumnsDelta(deltaX float64) int {
	return geom.ColumnsDelta(deltaX, g.ColumnWidth, g.Gap)
}

// GridRect returns the content-relative rectangle of a grid cell range.
func (g Geometry) GridRect(start, span int, y, height float64) geom.Rect {
	return geom.Rect{
		X: geom.ColumnX(start, g.ColumnWidth, g.Gap),
		Y: y,
		W: geom.SpanWidth(span, g.ColumnWidth, g.Gap),
		H: height,
	}
}
