package sink

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"

	"github.com/fogleman/gg"

	"github.com/matzehuels/folio/pkg/layout"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
	gap   float64
	page  int
}

// WithScale sets the raster scale factor (default 1).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithPage renders only the page with the given 1-based number.
func WithPage(n int) PNGOption { return func(r *pngRenderer) { r.page = n } }

// WithPNGPageGap sets the gap between pages.
func WithPNGPageGap(px float64) PNGOption {
	return func(r *pngRenderer) {
		if px >= 0 {
			r.gap = px
		}
	}
}

// RenderPNG rasterizes the pages of l side by side.
func RenderPNG(l layout.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1, gap: DefaultPageGap}
	for _, opt := range opts {
		opt(&r)
	}
	if r.page > 0 {
		p, ok := l.Page(r.page)
		if !ok {
			return nil, fmt.Errorf("page %d out of range (1-%d)", r.page, len(l.Pages))
		}
		l.Pages = []layout.Page{p}
	}

	w, h := canvasSize(l, r.gap)
	dc := gg.NewContext(int(w*r.scale+0.5), int(h*r.scale+0.5))
	dc.Scale(r.scale, r.scale)
	dc.SetRGBA(0, 0, 0, 0)
	dc.Clear()

	for i, p := range l.Pages {
		dc.Push()
		dc.Translate(pageOffset(l, i, r.gap), 0)
		drawPage(dc, l, p)
		dc.Pop()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawPage(dc *gg.Context, l layout.Layout, p layout.Page) {
	bg := l.Background
	if bg == "" {
		bg = "#ffffff"
	}
	dc.DrawRectangle(0, 0, l.PageWidth, l.PageHeight)
	dc.SetHexColor(bg)
	dc.FillPreserve()
	dc.SetHexColor(pageStroke)
	dc.SetLineWidth(1)
	dc.Stroke()

	dc.SetDash(4, 4)
	dc.DrawRectangle(l.ContentX, l.ContentY, l.ContentWidth, l.ContentHeight)
	dc.SetHexColor(contentStroke)
	dc.Stroke()
	dc.SetDash()

	blocks := slices.Clone(p.Blocks)
	slices.SortStableFunc(blocks, func(a, b layout.Block) int { return cmp.Compare(a.ZIndex, b.ZIndex) })
	for _, b := range blocks {
		drawBlock(dc, b)
	}

	dc.SetHexColor(labelColor)
	dc.DrawStringAnchored(fmt.Sprint(p.Number), l.PageWidth/2, l.PageHeight-l.ContentY/2, 0.5, 0.5)
}

func drawBlock(dc *gg.Context, b layout.Block) {
	dc.DrawRoundedRectangle(b.X, b.Y, b.Width, b.Height, 4)
	dc.SetHexColor(blockFill(b.Type))
	dc.FillPreserve()
	if b.OutOfBounds {
		dc.SetHexColor(overflowStroke)
		dc.SetLineWidth(2)
	} else {
		dc.SetHexColor(blockStroke)
		dc.SetLineWidth(1)
	}
	dc.Stroke()

	if x, y, w, h, ok := marginBand(b); ok {
		drawMargin(dc, b.MarginStyle, x, y, w, h)
	}
	dc.SetHexColor(labelColor)
	dc.DrawString(b.Type, b.X+6, b.Y+14)
}

func drawMargin(dc *gg.Context, style string, x, y, w, h float64) {
	dc.Push()
	defer dc.Pop()
	dc.DrawRectangle(x, y, w, h)
	dc.Clip()
	dc.SetHexColor(marginColor)
	dc.SetLineWidth(0.5)

	switch style {
	case "lines":
		for ly := y + marginStep; ly <= y+h; ly += marginStep {
			dc.DrawLine(x, ly, x+w, ly)
		}
		dc.Stroke()
	case "grid":
		for ly := y + marginStep; ly <= y+h; ly += marginStep {
			dc.DrawLine(x, ly, x+w, ly)
		}
		for lx := x + marginStep; lx <= x+w; lx += marginStep {
			dc.DrawLine(lx, y, lx, y+h)
		}
		dc.Stroke()
	case "dots":
		for ly := y + marginStep/2; ly < y+h; ly += marginStep {
			for lx := x + marginStep/2; lx < x+w; lx += marginStep {
				dc.DrawCircle(lx, ly, 0.8)
			}
		}
		dc.Fill()
	}
	dc.ResetClip()
}
