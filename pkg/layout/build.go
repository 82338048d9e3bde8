package layout

import (
	"github.com/matzehuels/folio/pkg/paginate"
	"github.com/matzehuels/folio/pkg/sheet"
)

// Build computes block geometry for already paginated pages.
func Build(ws *sheet.Worksheet, pages []paginate.Page, heights *paginate.Heights) Layout {
	g := ws.Geometry()
	content := g.ContentRect()
	l := Layout{
		WorksheetID:   ws.ID,
		Title:         ws.Title,
		Format:        string(ws.Format),
		Mode:          string(ws.Mode),
		Background:    ws.Background,
		PageWidth:     g.PageWidth,
		PageHeight:    g.PageHeight,
		ContentX:      content.X,
		ContentY:      content.Y,
		ContentWidth:  g.ContentWidth,
		ContentHeight: g.ContentHeight,
		Columns:       g.Columns,
		Gap:           g.Gap,
		ColumnWidth:   g.ColumnWidth,
		Pages:         make([]Page, 0, len(pages)),
	}

	for _, p := range pages {
		var blocks []Block
		if ws.Mode == sheet.ModeFreeform {
			blocks = freeBlocks(p.Blocks, g)
		} else {
			blocks = gridBlocks(p.Blocks, g, heights)
		}
		for i := range blocks {
			blocks[i].X += content.X
			blocks[i].Y += content.Y
		}
		l.Pages = append(l.Pages, Page{Number: p.Number, Blocks: blocks})
	}
	return l
}

// gridBlocks places blocks row by row in content coordinates.
func gridBlocks(in []sheet.Block, g sheet.Geometry, heights *paginate.Heights) []Block {
	out := make([]Block, 0, len(in))
	y := 0.0
	for _, row := range paginate.PackRows(in, g.Columns, heights) {
		for i, b := range row.Blocks {
			start := row.Starts[i]
			h := heights.Get(b)
			r := g.GridRect(start, b.GridSpan, y, h)
			oob := sheet.OutOfBounds(b, g) || y+h+b.MarginBottom > g.ContentHeight
			out = append(out, Block{
				ID:          b.ID,
				Type:        string(b.Type),
				X:           r.X,
				Y:           r.Y,
				Width:       r.W,
				Height:      r.H,
				Column:      start,
				Span:        b.GridSpan,
				Margin:      b.MarginBottom,
				MarginStyle: string(b.MarginStyle),
				OutOfBounds: oob,
			})
		}
		y += row.Height + g.Gap
	}
	return out
}

func freeBlocks(in []sheet.Block, g sheet.Geometry) []Block {
	out := make([]Block, 0, len(in))
	for _, b := range in {
		f := b.Free
		if f == nil {
			f = &sheet.FreeLayout{Width: sheet.DefaultWidth(b.Type), Height: sheet.DefaultHeight(b.Type)}
		}
		out = append(out, Block{
			ID:          b.ID,
			Type:        string(b.Type),
			X:           f.X,
			Y:           f.Y,
			Width:       f.Width,
			Height:      f.Height,
			ZIndex:      f.ZIndex,
			OutOfBounds: g.Exceeds(f.Rect()),
		})
	}
	return out
}
