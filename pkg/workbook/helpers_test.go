package workbook

import (
	"fmt"
	"testing"
)

// newBook builds a workbook with n pages numbered 1..n.
func newBook(n int) *Workbook {
	wb := New("test", Settings{})
	for i := 1; i <= n; i++ {
		wb.Pages = append(wb.Pages, Page{ID: fmt.Sprintf("p%d", i), PageNumber: i})
	}
	return wb
}

func pageIDs(pages []Page) []string {
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = p.ID
	}
	return out
}

func assertDense(t *testing.T, wb *Workbook) {
	t.Helper()
	seen := make(map[int]bool)
	for _, p := range wb.Pages {
		if p.PageNumber < 1 || p.PageNumber > len(wb.Pages) || seen[p.PageNumber] {
			t.Fatalf("page numbers not dense: %+v", wb.Pages)
		}
		seen[p.PageNumber] = true
	}
}

func assertUniqueMarkers(t *testing.T, wb *Workbook) {
	t.Helper()
	seen := make(map[string]bool)
	for _, p := range wb.Pages {
		if p.StartsChapterID == "" {
			continue
		}
		if seen[p.StartsChapterID] {
			t.Fatalf("chapter %s started twice: %+v", p.StartsChapterID, wb.Pages)
		}
		seen[p.StartsChapterID] = true
	}
}
