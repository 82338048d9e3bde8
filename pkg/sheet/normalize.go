package sheet

import (
	"math"

	"github.com/matzehuels/folio/pkg/geom"
)

// Normalize clamps the worksheet and every block to valid values. It never
// fails: unknown settings fall back to defaults, unknown block types become
// paragraphs, missing or duplicate ids are re-issued and Order is renumbered
// to the list position.
func (ws *Worksheet) Normalize() {
	def := DefaultSettings()
	if !ws.Format.Valid() {
		ws.Format = def.Format
	}
	if ws.Columns < 1 {
		ws.Columns = def.Columns
	}
	ws.Columns = NormalizeColumns(ws.Columns)
	if !ws.Gap.Valid() {
		ws.Gap = def.Gap
	}
	if !ws.Mode.Valid() {
		ws.Mode = def.Mode
	}
	if ws.FontSize <= 0 || math.IsNaN(ws.FontSize) {
		ws.FontSize = def.FontSize
	}
	if ws.Blocks == nil {
		ws.Blocks = []Block{}
	}

	seen := make(map[string]bool, len(ws.Blocks))
	for i := range ws.Blocks {
		b := &ws.Blocks[i]
		if b.ID == "" || seen[b.ID] {
			b.ID = NewID()
		}
		seen[b.ID] = true
		b.Order = i
		NormalizeBlock(b, ws.Columns)
	}
}

// NormalizeBlock clamps a single block's layout attributes for a grid of the
// given column count.
func NormalizeBlock(b *Block, columns int) {
	if !b.Type.Valid() {
		b.Type = TypeParagraph
	}
	if columns < 1 {
		columns = 1
	}
	if b.GridSpan < 1 {
		b.GridSpan = columns
	}
	b.GridSpan = geom.ClampInt(b.GridSpan, 1, columns)
	if b.GridStart < 0 {
		b.GridStart = 0
	}
	b.GridStart = geom.ClampStart(b.GridStart, b.GridSpan, columns)
	b.MarginBottom = geom.Clamp(b.MarginBottom, 0, MaxMargin)
	if !b.MarginStyle.Valid() {
		b.MarginStyle = MarginNone
	}
	if f := b.Free; f != nil {
		if !(f.Width > 0) || math.IsInf(f.Width, 0) {
			f.Width = DefaultWidth(b.Type)
		}
		if !(f.Height > 0) || math.IsInf(f.Height, 0) {
			f.Height = DefaultHeight(b.Type)
		}
		if math.IsNaN(f.X) || math.IsInf(f.X, 0) {
			f.X = 0
		}
		if math.IsNaN(f.Y) || math.IsInf(f.Y, 0) {
			f.Y = 0
		}
		f.PageIndex = ClampPageIndex(f.PageIndex)
	}
}

// Rect returns the content-relative rectangle of a placed freeform block.
func (f FreeLayout) Rect() geom.Rect {
	return geom.Rect{X: f.X, Y: f.Y, W: f.Width, H: f.Height}
}

// Exceeds reports whether a content-relative rectangle extends past the
// content area.
func (g Geometry) Exceeds(r geom.Rect) bool {
	r = r.Normalize()
	return r.Left() < 0 || r.Top() < 0 ||
		r.Right() > g.ContentWidth || r.Bottom() > g.ContentHeight
}

// OutOfBounds reports whether the block extends outside the page content
// area. The flag is advisory: gestures may leave a block off-page.
func OutOfBounds(b Block, g Geometry) bool {
	if b.Free != nil {
		return g.Exceeds(b.Free.Rect())
	}
	if b.GridSpan > g.Columns {
		return true
	}
	return b.GridStart > 0 && b.GridStart+b.GridSpan-1 > g.Columns
}
