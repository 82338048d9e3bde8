package paginate

import (
	"github.com/matzehuels/folio/pkg/sheet"
)

// Page is one printable page. Number is 1-based.
type Page struct {
	Number int           `json:"number"`
	Blocks []sheet.Block `json:"blocks"`
}

// Paginate distributes grid blocks over pages in list order.
func Paginate(blocks []sheet.Block, g sheet.Geometry, heights *Heights) []Page {
	var pages []Page
	var cur []sheet.Block
	pageHeight := 0.0
	rows := newRowPacker(g.Columns)

	emit := func() {
		pages = append(pages, Page{Number: len(pages) + 1, Blocks: cur})
		cur = nil
		pageHeight = 0
		rows.reset()
	}

	for _, b := range blocks {
		h := heights.Get(b) + b.MarginBottom
		if !rows.fits(b) {
			pageHeight += rows.height + g.Gap
			rows.reset()
		}
		if pageHeight+h > g.ContentHeight && len(cur) > 0 {
			emit()
		}
		cur = append(cur, b)
		rows.add(b, h)
	}
	if len(cur) > 0 || len(pages) == 0 {
		if cur == nil {
			cur = []sheet.Block{}
		}
		emit()
	}
	return pages
}

// PaginateWorksheet paginates ws according to its layout mode. Masonry uses
// the grid algorithm in list order.
func PaginateWorksheet(ws *sheet.Worksheet, heights *Heights) []Page {
	g := ws.Geometry()
	if ws.Mode == sheet.ModeFreeform {
		return PaginateFreeform(ws.Blocks, g)
	}
	return Paginate(ws.Blocks, g, heights)
}

// PageOf returns the 1-based page number holding the block, or 0.
func PageOf(pages []Page, id string) int {
	for _, p := range pages {
		for _, b := range p.Blocks {
			if b.ID == id {
				return p.Number
			}
		}
	}
	return 0
}
