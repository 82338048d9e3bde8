package workbook

import (
	"github.com/google/uuid"

	apperr "github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/paginate"
	"github.com/matzehuels/folio/pkg/sheet"
)

// InsertPage inserts a page so that it receives page number at. Positions
// outside 1..N+1 are clamped. The new page joins whatever chapter precedes
// it.
func (wb *Workbook) InsertPage(at int, worksheetID string, subPage int) Page {
	wb.sortPages()
	idx := max(0, min(at-1, len(wb.Pages)))
	p := Page{ID: uuid.NewString(), WorksheetID: worksheetID, SubPage: subPage}
	wb.Pages = append(wb.Pages, Page{})
	copy(wb.Pages[idx+1:], wb.Pages[idx:])
	wb.Pages[idx] = p
	wb.renumber()
	return wb.Pages[idx]
}

// DeletePage removes a page. A chapter start marker on the page moves to the
// following page when that page belonged to the same chapter.
func (wb *Workbook) DeletePage(id string) error {
	if _, err := wb.detach(id); err != nil {
		return err
	}
	wb.renumber()
	return nil
}

// MovePage moves a page so that it receives page number to. Chapter start
// markers stay at their position in the book rather than travelling with
// the page.
func (wb *Workbook) MovePage(id string, to int) error {
	p, err := wb.detach(id)
	if err != nil {
		return err
	}
	p.StartsChapterID = ""
	idx := max(0, min(to-1, len(wb.Pages)))
	wb.Pages = append(wb.Pages, Page{})
	copy(wb.Pages[idx+1:], wb.Pages[idx:])
	wb.Pages[idx] = p
	wb.renumber()
	return nil
}

// detach removes a page from the sorted page list, handing its start marker
// to the next page of the same chapter.
func (wb *Workbook) detach(id string) (Page, error) {
	members := wb.membership()
	i := wb.pageIndex(id)
	if i < 0 {
		return Page{}, pageNotFound(id)
	}
	p := wb.Pages[i]
	if marker := p.StartsChapterID; marker != "" && i+1 < len(wb.Pages) {
		next := &wb.Pages[i+1]
		if members[next.ID] == members[p.ID] && members[p.ID] == marker {
			next.StartsChapterID = marker
		}
	}
	wb.Pages = append(wb.Pages[:i], wb.Pages[i+1:]...)
	return p, nil
}

// AddWorksheet paginates a worksheet and appends one page per sub-page. The
// worksheet is cached on the workbook. It returns the new pages.
func (wb *Workbook) AddWorksheet(ws *sheet.Worksheet, heights *paginate.Heights) []Page {
	wb.Renumber()
	if wb.Worksheets == nil {
		wb.Worksheets = map[string]sheet.Worksheet{}
	}
	wb.Worksheets[ws.ID] = *ws.Clone()

	sub := paginate.PaginateWorksheet(ws, heights)
	if len(sub) == 0 {
		sub = []paginate.Page{{Number: 1}}
	}
	added := make([]Page, 0, len(sub))
	for i := range sub {
		p := Page{
			ID:          uuid.NewString(),
			PageNumber:  len(wb.Pages) + 1,
			WorksheetID: ws.ID,
			SubPage:     i,
		}
		wb.Pages = append(wb.Pages, p)
		added = append(added, p)
	}
	return added
}

// RemoveWorksheet deletes every page showing the worksheet and drops it from
// the cache.
func (wb *Workbook) RemoveWorksheet(worksheetID string) error {
	if _, ok := wb.Worksheets[worksheetID]; !ok {
		return apperr.New(apperr.ErrCodeNotFound, "worksheet %s not found", worksheetID)
	}
	delete(wb.Worksheets, worksheetID)
	for _, p := range sortedPages(wb.Pages) {
		if p.WorksheetID == worksheetID {
			if _, err := wb.detach(p.ID); err != nil {
				return err
			}
		}
	}
	wb.Renumber()
	return nil
}

// WorksheetPages returns the pages that show a worksheet, in page order.
func (wb *Workbook) WorksheetPages(worksheetID string) []Page {
	var out []Page
	for _, p := range sortedPages(wb.Pages) {
		if p.WorksheetID == worksheetID {
			out = append(out, p)
		}
	}
	return out
}

func pageNotFound(id string) error {
	return apperr.New(apperr.ErrCodePageNotFound, "page %s not found", id)
}
