package sink

import (
	"bytes"
	"cmp"
	"fmt"
	"html"
	"slices"

	"github.com/matzehuels/folio/pkg/layout"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	gap         float64
	pageNumbers bool
	columns     bool
	labels      bool
	selected    map[string]bool
}

// WithPageGap sets the gap between pages.
func WithPageGap(px float64) SVGOption {
	return func(r *svgRenderer) {
		if px >= 0 {
			r.gap = px
		}
	}
}

// WithColumnGuides draws the grid columns inside the content area.
func WithColumnGuides() SVGOption { return func(r *svgRenderer) { r.columns = true } }

// WithoutPageNumbers omits footer page numbers.
func WithoutPageNumbers() SVGOption { return func(r *svgRenderer) { r.pageNumbers = false } }

// WithoutLabels omits block type labels.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.labels = false } }

// WithSelection outlines the given blocks as selected.
func WithSelection(ids ...string) SVGOption {
	return func(r *svgRenderer) {
		for _, id := range ids {
			r.selected[id] = true
		}
	}
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{gap: DefaultPageGap, pageNumbers: true, labels: true, selected: map[string]bool{}}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG draws every page of l side by side.
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	w, h := canvasSize(l, r.gap)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n", w, h, w, h)
	renderDefs(&buf)
	for i, p := range l.Pages {
		fmt.Fprintf(&buf, `  <g class="page" id="page-%d" transform="translate(%.1f,0)">`+"\n", p.Number, pageOffset(l, i, r.gap))
		r.renderPage(&buf, l, p)
		buf.WriteString("  </g>\n")
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderDefs(buf *bytes.Buffer) {
	buf.WriteString("  <defs>\n")
	fmt.Fprintf(buf, `    <pattern id="margin-lines" width="%[1]g" height="%[1]g" patternUnits="userSpaceOnUse"><line x1="0" y1="%[1]g" x2="%[1]g" y2="%[1]g" stroke="%[2]s" stroke-width="0.5"/></pattern>`+"\n", marginStep, marginColor)
	fmt.Fprintf(buf, `    <pattern id="margin-grid" width="%[1]g" height="%[1]g" patternUnits="userSpaceOnUse"><path d="M %[1]g 0 L 0 0 0 %[1]g" fill="none" stroke="%[2]s" stroke-width="0.5"/></pattern>`+"\n", marginStep, marginColor)
	fmt.Fprintf(buf, `    <pattern id="margin-dots" width="%[1]g" height="%[1]g" patternUnits="userSpaceOnUse"><circle cx="%[3]g" cy="%[3]g" r="0.8" fill="%[2]s"/></pattern>`+"\n", marginStep, marginColor, marginStep/2)
	buf.WriteString("  </defs>\n")
}

func (r *svgRenderer) renderPage(buf *bytes.Buffer, l layout.Layout, p layout.Page) {
	bg := l.Background
	if bg == "" {
		bg = "#ffffff"
	}
	fmt.Fprintf(buf, `    <rect class="sheet" x="0" y="0" width="%.1f" height="%.1f" fill="%s" stroke="%s"/>`+"\n",
		l.PageWidth, l.PageHeight, html.EscapeString(bg), pageStroke)
	fmt.Fprintf(buf, `    <rect class="content" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s" stroke-dasharray="4 4"/>`+"\n",
		l.ContentX, l.ContentY, l.ContentWidth, l.ContentHeight, contentStroke)

	if r.columns && l.Columns > 1 {
		for c := 0; c < l.Columns; c++ {
			x := l.ContentX + float64(c)*(l.ColumnWidth+l.Gap)
			fmt.Fprintf(buf, `    <rect class="column" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" fill-opacity="0.04"/>`+"\n",
				x, l.ContentY, l.ColumnWidth, l.ContentHeight, selectStroke)
		}
	}

	blocks := slices.Clone(p.Blocks)
	slices.SortStableFunc(blocks, func(a, b layout.Block) int { return cmp.Compare(a.ZIndex, b.ZIndex) })
	for _, b := range blocks {
		r.renderBlock(buf, b)
	}

	if r.pageNumbers {
		fmt.Fprintf(buf, `    <text class="page-number" x="%.1f" y="%.1f" text-anchor="middle" font-family="sans-serif" font-size="12" fill="%s">%d</text>`+"\n",
			l.PageWidth/2, l.PageHeight-l.ContentY/2, labelColor, p.Number)
	}
}

func (r *svgRenderer) renderBlock(buf *bytes.Buffer, b layout.Block) {
	stroke, width := blockStroke, 1.0
	switch {
	case b.OutOfBounds:
		stroke, width = overflowStroke, 2
	case r.selected[b.ID]:
		stroke, width = selectStroke, 2
	}
	id := html.EscapeString(b.ID)
	fmt.Fprintf(buf, `    <rect class="block block-%s" id="block-%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="4" fill="%s" stroke="%s" stroke-width="%g"/>`+"\n",
		html.EscapeString(b.Type), id, b.X, b.Y, b.Width, b.Height, blockFill(b.Type), stroke, width)

	if x, y, w, h, ok := marginBand(b); ok {
		fmt.Fprintf(buf, `    <rect class="margin" data-block="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="url(#margin-%s)"/>`+"\n",
			id, x, y, w, h, html.EscapeString(b.MarginStyle))
	}
	if r.labels {
		fmt.Fprintf(buf, `    <text class="block-label" data-block="%s" x="%.1f" y="%.1f" font-family="sans-serif" font-size="11" fill="%s">%s</text>`+"\n",
			id, b.X+6, b.Y+14, labelColor, html.EscapeString(b.Type))
	}
}
