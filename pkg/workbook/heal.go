package workbook

import (
	"github.com/google/uuid"

	"github.com/matzehuels/folio/pkg/sheet"
)

// Heal repairs a workbook loaded from storage. It drops start markers for
// unknown chapters, keeps only the lowest-numbered marker of each chapter,
// fills missing ids and colors, bounds the page limit and renumbers pages and
// chapters densely.
func (wb *Workbook) Heal() {
	known := make(map[string]bool, len(wb.Chapters))
	for i := range wb.Chapters {
		c := &wb.Chapters[i]
		if c.ID == "" || known[c.ID] {
			c.ID = uuid.NewString()
		}
		if c.Color == "" {
			c.Color = PaletteColor(i)
		}
		known[c.ID] = true
	}
	wb.renumberChapters()

	seen := make(map[string]bool, len(wb.Pages))
	for i := range wb.Pages {
		p := &wb.Pages[i]
		if p.ID == "" || seen[p.ID] {
			p.ID = uuid.NewString()
		}
		seen[p.ID] = true
		if !known[p.StartsChapterID] {
			p.StartsChapterID = ""
		}
	}
	if !wb.Settings.Format.Valid() {
		wb.Settings.Format = sheet.FormatA4
	}
	if wb.Settings.PageLimit < 0 {
		wb.Settings.PageLimit = 0
	}
	if wb.Settings.PageLimit > 0 {
		wb.Settings.PageLimit = BoundLimit(wb.Settings.PageLimit, len(wb.Pages))
	}
	wb.Renumber()
}

// Renumber sorts pages by their current number and reassigns numbers 1..N.
func (wb *Workbook) Renumber() {
	wb.sortPages()
	wb.renumber()
}

func (wb *Workbook) sortPages() {
	wb.Pages = sortedPages(wb.Pages)
}

// renumber assigns page numbers by slice position and normalizes markers.
func (wb *Workbook) renumber() {
	for i := range wb.Pages {
		wb.Pages[i].PageNumber = i + 1
	}
	wb.normalizeMarkers()
}

// normalizeMarkers keeps the first start marker of each chapter and clears
// the rest.
func (wb *Workbook) normalizeMarkers() {
	seen := make(map[string]bool, len(wb.Chapters))
	for i := range wb.Pages {
		id := wb.Pages[i].StartsChapterID
		if id == "" {
			continue
		}
		if seen[id] {
			wb.Pages[i].StartsChapterID = ""
			continue
		}
		seen[id] = true
	}
}
