package workbook

import "sort"

// sortedPages returns a copy of pages ordered by PageNumber.
func sortedPages(pages []Page) []Page {
	out := append([]Page(nil), pages...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].PageNumber < out[j].PageNumber })
	return out
}

func chapterByID(chapters []Chapter, id string) *Chapter {
	if id == "" {
		return nil
	}
	for i := range chapters {
		if chapters[i].ID == id {
			c := chapters[i]
			return &c
		}
	}
	return nil
}

// ChapterForPage returns the chapter page n belongs to: the chapter of the
// last start marker on a page numbered ≤ n. Markers referencing unknown
// chapters are ignored. It returns nil when no chapter precedes n.
func ChapterForPage(pages []Page, chapters []Chapter, n int) *Chapter {
	var found *Chapter
	for _, p := range sortedPages(pages) {
		if p.PageNumber > n {
			break
		}
		if c := chapterByID(chapters, p.StartsChapterID); c != nil {
			found = c
		}
	}
	return found
}

// ChapterStartingAtPage returns the chapter whose start marker is on page n.
func ChapterStartingAtPage(pages []Page, chapters []Chapter, n int) *Chapter {
	for _, p := range pages {
		if p.PageNumber == n && p.StartsChapterID != "" {
			return chapterByID(chapters, p.StartsChapterID)
		}
	}
	return nil
}

// PageByNumber returns the page with the given number.
func PageByNumber(pages []Page, n int) (Page, bool) {
	for _, p := range pages {
		if p.PageNumber == n {
			return p, true
		}
	}
	return Page{}, false
}

// memberships returns the effective chapter id of every page in slice
// order. Pages must be sorted by number.
func memberships(pages []Page, chapters []Chapter) []string {
	out := make([]string, len(pages))
	cur := ""
	for i, p := range pages {
		if chapterByID(chapters, p.StartsChapterID) != nil {
			cur = p.StartsChapterID
		}
		out[i] = cur
	}
	return out
}

// ChapterPages returns the pages belonging to a chapter, in page order.
func (wb *Workbook) ChapterPages(chapterID string) []Page {
	pages := sortedPages(wb.Pages)
	var out []Page
	for i, c := range memberships(pages, wb.Chapters) {
		if c == chapterID {
			out = append(out, pages[i])
		}
	}
	return out
}

// ChapterOf returns the chapter a page belongs to.
func (wb *Workbook) ChapterOf(pageID string) *Chapter {
	p, ok := wb.Page(pageID)
	if !ok {
		return nil
	}
	return ChapterForPage(wb.Pages, wb.Chapters, p.PageNumber)
}
