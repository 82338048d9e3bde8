package sink

import "github.com/matzehuels/folio/pkg/layout"

// DefaultPageGap is the horizontal gap between rendered pages.
const DefaultPageGap = 40.0

const (
	pageStroke     = "#d4d4d8"
	contentStroke  = "#e4e4e7"
	blockStroke    = "#71717a"
	overflowStroke = "#dc2626"
	selectStroke   = "#2563eb"
	labelColor     = "#3f3f46"
	marginColor    = "#a1a1aa"
	marginStep     = 8.0
)

// blockFills maps block types to a fill color. Unknown types are grey.
var blockFills = map[string]string{
	"heading":         "#e0e7ff",
	"paragraph":       "#f4f4f5",
	"infobox":         "#dbeafe",
	"multiple-choice": "#dcfce7",
	"fill-blank":      "#fef9c3",
	"free-answer":     "#fce7f3",
	"true-false":      "#ccfbf1",
	"matching":        "#ede9fe",
	"list":            "#f5f5f4",
	"image":           "#ffedd5",
	"table":           "#e0f2fe",
	"divider":         "#e5e7eb",
	"spacer":          "#fafafa",
	"qr-code":         "#f1f5f9",
	"free-canvas":     "#fef3c7",
}

func blockFill(t string) string {
	if c, ok := blockFills[t]; ok {
		return c
	}
	return "#f4f4f5"
}

// canvasSize returns the size of all pages laid out side by side.
func canvasSize(l layout.Layout, gap float64) (w, h float64) {
	n := float64(len(l.Pages))
	if n == 0 {
		return l.PageWidth, l.PageHeight
	}
	return n*l.PageWidth + (n-1)*gap, l.PageHeight
}

// pageOffset returns the x offset of the i-th page.
func pageOffset(l layout.Layout, i int, gap float64) float64 {
	return float64(i) * (l.PageWidth + gap)
}

// marginBand returns the rectangle below a block reserved by its margin.
func marginBand(b layout.Block) (x, y, w, h float64, ok bool) {
	if b.Margin <= 0 || b.MarginStyle == "" || b.MarginStyle == "none" {
		return 0, 0, 0, 0, false
	}
	return b.X, b.Y + b.Height, b.Width, b.Margin, true
}
