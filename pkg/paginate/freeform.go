package paginate

import (
	"sort"

	"github.com/matzehuels/folio/pkg/sheet"
)

// PaginateFreeform groups placed blocks by page index. Pages between 0 and
// the highest index are kept even when empty, and at least one page is
// returned. Page indexes are bounded by [sheet.ClampPageIndex]. Within a
// page blocks are ordered by z-index, then reading order. Blocks without a
// position land on the first page; call [AutoPlace] first to position them.
func PaginateFreeform(blocks []sheet.Block, g sheet.Geometry) []Page {
	maxPage := 0
	for _, b := range blocks {
		if b.Free != nil {
			maxPage = max(maxPage, sheet.ClampPageIndex(b.Free.PageIndex))
		}
	}

	pages := make([]Page, maxPage+1)
	for i := range pages {
		pages[i] = Page{Number: i + 1, Blocks: []sheet.Block{}}
	}
	for _, b := range blocks {
		idx := 0
		if b.Free != nil {
			idx = sheet.ClampPageIndex(b.Free.PageIndex)
		}
		pages[idx].Blocks = append(pages[idx].Blocks, b)
	}

	ranks := sheet.ComputeReadingOrder(blocks)
	for i := range pages {
		pb := pages[i].Blocks
		sort.SliceStable(pb, func(a, b int) bool {
			za, zb := zIndex(pb[a]), zIndex(pb[b])
			if za != zb {
				return za < zb
			}
			return ranks[pb[a].ID] < ranks[pb[b].ID]
		})
	}
	return pages
}

func zIndex(b sheet.Block) int {
	if b.Free == nil {
		return 0
	}
	return b.Free.ZIndex
}

// AutoPlace positions every block whose Free layout is nil. Blocks are
// flowed left to right below the existing content of the last occupied page,
// wrapping when a block would cross the right edge of the content area and
// starting a new page when it would cross the bottom. It returns the ids of
// the blocks it placed.
func AutoPlace(blocks []sheet.Block, g sheet.Geometry) []string {
	page := 0
	for _, b := range blocks {
		if b.Free != nil {
			page = max(page, sheet.ClampPageIndex(b.Free.PageIndex))
		}
	}
	y, z := 0.0, 0
	for _, b := range blocks {
		if b.Free == nil {
			continue
		}
		if b.Free.ZIndex >= z {
			z = b.Free.ZIndex + 1
		}
		if sheet.ClampPageIndex(b.Free.PageIndex) == page && b.Free.Y+b.Free.Height+g.Gap > y {
			y = b.Free.Y + b.Free.Height + g.Gap
		}
	}

	var placed []string
	x, lineHeight := 0.0, 0.0
	for i := range blocks {
		b := &blocks[i]
		if b.Free != nil {
			continue
		}
		w := min(sheet.DefaultWidth(b.Type), g.ContentWidth)
		h := sheet.DefaultHeight(b.Type)

		if x > 0 && x+w > g.ContentWidth {
			x = 0
			y += lineHeight + g.Gap
			lineHeight = 0
		}
		if y > 0 && y+h > g.ContentHeight && page < sheet.MaxPageIndex {
			page++
			x, y, lineHeight = 0, 0, 0
		}

		b.Free = &sheet.FreeLayout{X: x, Y: y, Width: w, Height: h, PageIndex: page, ZIndex: z}
		z++
		placed = append(placed, b.ID)
		x += w + g.Gap
		if h > lineHeight {
			lineHeight = h
		}
	}
	return placed
}
