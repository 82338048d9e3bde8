package workbook

import (
	"context"
	"sort"
	"time"

	"github.com/matzehuels/folio/pkg/observability"
)

// MaxRowItems is the number of items a composition row holds.
const MaxRowItems = 3

// ItemKind distinguishes single pages from facing spreads.
type ItemKind string

const (
	ItemSingle ItemKind = "single"
	ItemSpread ItemKind = "spread"
)

// Item is one single page or spread in a composition row. Pages and
// Chapters are indexed by slot; a nil page is an empty placeholder for a
// page number beyond the existing pages.
type Item struct {
	Kind             ItemKind   `json:"kind"`
	PageNumbers      []int      `json:"pageNumbers"`
	Pages            []*Page    `json:"pages"`
	StartsNewChapter bool       `json:"startsNewChapter"`
	Chapter          *Chapter   `json:"chapter,omitempty"`
	Chapters         []*Chapter `json:"chapters"`
}

// Row is one visual row of the workbook canvas.
type Row struct {
	Items []Item `json:"items"`
}

// MaxPageLimit bounds the page limit when it exceeds the page count, so
// placeholder slots stay finite.
const MaxPageLimit = 1000

// BoundLimit returns the number of page slots composed for pageLimit over
// pageCount pages. A pageLimit ≤ 0 means the page count; limits above both
// the page count and MaxPageLimit are lowered to the larger of the two.
func BoundLimit(pageLimit, pageCount int) int {
	if pageLimit <= 0 {
		return pageCount
	}
	return min(pageLimit, max(pageCount, MaxPageLimit))
}

// Compose lays out page numbers 1..pageLimit as singles and spreads grouped
// into rows. The limit is bounded by [BoundLimit].
func Compose(pages []Page, chapters []Chapter, pageLimit int) []Row {
	limit := BoundLimit(pageLimit, len(pages))
	if limit <= 0 {
		return nil
	}
	c := newComposer(pages, chapters)

	items := []Item{c.item(1)}
	n := 2
	for ; n+1 <= limit; n += 2 {
		if c.starts[n+1] != nil {
			items = append(items, c.item(n), c.item(n+1))
			continue
		}
		items = append(items, c.item(n, n+1))
	}
	if n <= limit {
		items = append(items, c.item(n))
	}

	var rows []Row
	var cur []Item
	for _, it := range items {
		if len(cur) == MaxRowItems || (it.StartsNewChapter && len(cur) > 0) {
			rows = append(rows, Row{Items: cur})
			cur = nil
		}
		cur = append(cur, it)
	}
	if len(cur) > 0 {
		rows = append(rows, Row{Items: cur})
	}
	return rows
}

// composer resolves pages and chapters by page number from indexes built
// once per composition.
type composer struct {
	pages    []Page
	chapters []Chapter
	members  []string
	byNumber map[int]int
	starts   map[int]*Chapter
}

func newComposer(pages []Page, chapters []Chapter) composer {
	sorted := sortedPages(pages)
	c := composer{
		pages:    sorted,
		chapters: chapters,
		members:  memberships(sorted, chapters),
		byNumber: make(map[int]int, len(sorted)),
		starts:   make(map[int]*Chapter),
	}
	for i, p := range sorted {
		if _, ok := c.byNumber[p.PageNumber]; !ok {
			c.byNumber[p.PageNumber] = i
		}
		if _, ok := c.starts[p.PageNumber]; !ok && p.StartsChapterID != "" {
			c.starts[p.PageNumber] = chapterByID(chapters, p.StartsChapterID)
		}
	}
	return c
}

// chapterFor mirrors [ChapterForPage]: the chapter of the last resolvable
// start marker on a page numbered ≤ n.
func (c composer) chapterFor(n int) *Chapter {
	i := sort.Search(len(c.pages), func(i int) bool { return c.pages[i].PageNumber > n }) - 1
	if i < 0 {
		return nil
	}
	return chapterByID(c.chapters, c.members[i])
}

func (c composer) item(numbers ...int) Item {
	it := Item{Kind: ItemSingle, PageNumbers: numbers}
	if len(numbers) == 2 {
		it.Kind = ItemSpread
	}
	for _, n := range numbers {
		var page *Page
		if i, ok := c.byNumber[n]; ok {
			p := c.pages[i]
			page = &p
		}
		it.Pages = append(it.Pages, page)
		it.Chapters = append(it.Chapters, c.chapterFor(n))
	}
	if ch := c.starts[numbers[0]]; ch != nil {
		it.StartsNewChapter = true
		it.Chapter = ch
	}
	return it
}

// Composition is a serializable composer result.
type Composition struct {
	WorkbookID   string `json:"workbookId,omitempty"`
	PageCount    int    `json:"pageCount"`
	PageLimit    int    `json:"pageLimit"`
	Rows         []Row  `json:"rows"`
	Singles      int    `json:"singles"`
	Spreads      int    `json:"spreads"`
	Placeholders int    `json:"placeholders"`
	Chapters     int    `json:"chapters"`
}

// Compose composes the workbook using its configured page limit.
func (wb *Workbook) Compose(ctx context.Context) Composition {
	start := time.Now()
	limit := wb.EffectiveLimit()
	comp := NewComposition(wb.Pages, wb.Chapters, limit)
	comp.WorkbookID = wb.ID
	observability.Layout().OnCompose(ctx, comp.PageCount, len(comp.Rows), time.Since(start))
	return comp
}

// NewComposition composes pages and collects stats.
func NewComposition(pages []Page, chapters []Chapter, pageLimit int) Composition {
	rows := Compose(pages, chapters, pageLimit)
	comp := Composition{PageCount: len(pages), PageLimit: BoundLimit(pageLimit, len(pages)), Rows: rows}
	if comp.Rows == nil {
		comp.Rows = []Row{}
	}
	for _, r := range rows {
		for _, it := range r.Items {
			if it.Kind == ItemSpread {
				comp.Spreads++
			} else {
				comp.Singles++
			}
			if it.StartsNewChapter {
				comp.Chapters++
			}
			for _, p := range it.Pages {
				if p == nil {
					comp.Placeholders++
				}
			}
		}
	}
	return comp
}
