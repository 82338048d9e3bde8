package workbook

import (
	"strings"

	"github.com/google/uuid"

	apperr "github.com/matzehuels/folio/pkg/errors"
)

// AddChapter appends a chapter with the next palette color. The chapter has
// no pages until it is started on one.
func (wb *Workbook) AddChapter(title string) Chapter {
	title = strings.TrimSpace(title)
	if title == "" {
		title = "Untitled chapter"
	}
	c := Chapter{
		ID:    uuid.NewString(),
		Title: title,
		Color: PaletteColor(len(wb.Chapters)),
		Order: len(wb.Chapters),
	}
	wb.Chapters = append(wb.Chapters, c)
	return c
}

// RenameChapter changes a chapter's title.
func (wb *Workbook) RenameChapter(id, title string) error {
	i := wb.chapterIndex(id)
	if i < 0 {
		return chapterNotFound(id)
	}
	wb.Chapters[i].Title = strings.TrimSpace(title)
	return nil
}

// RemoveChapter deletes a chapter and its start marker. Its pages fall back
// to the preceding chapter.
func (wb *Workbook) RemoveChapter(id string) error {
	i := wb.chapterIndex(id)
	if i < 0 {
		return chapterNotFound(id)
	}
	wb.Chapters = append(wb.Chapters[:i], wb.Chapters[i+1:]...)
	for j := range wb.Pages {
		if wb.Pages[j].StartsChapterID == id {
			wb.Pages[j].StartsChapterID = ""
		}
	}
	wb.renumberChapters()
	wb.Renumber()
	return nil
}

// StartChapterAt moves a chapter's start marker to the given page, replacing
// any marker that page carried.
func (wb *Workbook) StartChapterAt(chapterID, pageID string) error {
	if wb.chapterIndex(chapterID) < 0 {
		return chapterNotFound(chapterID)
	}
	pi := wb.pageIndex(pageID)
	if pi < 0 {
		return pageNotFound(pageID)
	}
	for j := range wb.Pages {
		if wb.Pages[j].StartsChapterID == chapterID {
			wb.Pages[j].StartsChapterID = ""
		}
	}
	wb.Pages[pi].StartsChapterID = chapterID
	wb.Renumber()
	return nil
}

// AssignPages moves pages into a chapter. The pages are appended to the end
// of the chapter's span, then all pages are regrouped by chapter order.
func (wb *Workbook) AssignPages(chapterID string, pageIDs []string) error {
	if wb.chapterIndex(chapterID) < 0 {
		return chapterNotFound(chapterID)
	}
	moved := make([]string, 0, len(pageIDs))
	seen := make(map[string]bool, len(pageIDs))
	for _, id := range pageIDs {
		if wb.pageIndex(id) < 0 {
			return pageNotFound(id)
		}
		if !seen[id] {
			seen[id] = true
			moved = append(moved, id)
		}
	}
	wb.regroup(chapterID, moved)
	return nil
}

// ReorderChapters moves the chapter at position from (in chapter order) to
// position to, carrying its pages along.
func (wb *Workbook) ReorderChapters(from, to int) error {
	sorted := wb.SortedChapters()
	if from < 0 || from >= len(sorted) || to < 0 || to >= len(sorted) {
		return apperr.New(apperr.ErrCodeInvalidInput, "chapter position out of range: %d -> %d", from, to)
	}
	if from == to {
		return nil
	}
	c := sorted[from]
	sorted = append(sorted[:from], sorted[from+1:]...)
	sorted = append(sorted[:to], append([]Chapter{c}, sorted[to:]...)...)
	order := make(map[string]int, len(sorted))
	for i, ch := range sorted {
		order[ch.ID] = i
	}
	members := wb.membership()
	for i := range wb.Chapters {
		wb.Chapters[i].Order = order[wb.Chapters[i].ID]
	}
	wb.rebuild(members, "", nil)
	return nil
}

// regroup rebuilds page order with moved pages appended to target.
func (wb *Workbook) regroup(target string, moved []string) {
	wb.rebuild(wb.membership(), target, moved)
}

// membership maps page ids to their effective chapter ids.
func (wb *Workbook) membership() map[string]string {
	wb.sortPages()
	m := make(map[string]string, len(wb.Pages))
	for i, c := range memberships(wb.Pages, wb.Chapters) {
		m[wb.Pages[i].ID] = c
	}
	return m
}

// rebuild lays pages out chapter by chapter in chapter order, followed by
// pages that belong to no chapter. Only the first page of each chapter span
// carries a start marker.
func (wb *Workbook) rebuild(members map[string]string, target string, moved []string) {
	wb.sortPages()
	isMoved := make(map[string]bool, len(moved))
	for _, id := range moved {
		isMoved[id] = true
	}
	byID := make(map[string]Page, len(wb.Pages))
	buckets := make(map[string][]Page)
	var loose []Page
	for _, p := range wb.Pages {
		byID[p.ID] = p
		if isMoved[p.ID] {
			continue
		}
		if c := members[p.ID]; c != "" {
			buckets[c] = append(buckets[c], p)
		} else {
			loose = append(loose, p)
		}
	}
	for _, id := range moved {
		buckets[target] = append(buckets[target], byID[id])
	}

	pages := make([]Page, 0, len(wb.Pages))
	for _, ch := range wb.SortedChapters() {
		span := buckets[ch.ID]
		for i := range span {
			span[i].StartsChapterID = ""
		}
		if len(span) > 0 {
			span[0].StartsChapterID = ch.ID
		}
		pages = append(pages, span...)
	}
	for _, p := range loose {
		p.StartsChapterID = ""
		pages = append(pages, p)
	}
	wb.Pages = pages
	wb.renumber()
}

func (wb *Workbook) renumberChapters() {
	sorted := wb.SortedChapters()
	order := make(map[string]int, len(sorted))
	for i, c := range sorted {
		order[c.ID] = i
	}
	for i := range wb.Chapters {
		wb.Chapters[i].Order = order[wb.Chapters[i].ID]
	}
}

func chapterNotFound(id string) error {
	return apperr.New(apperr.ErrCodeChapterNotFound, "chapter %s not found", id)
}
