package workbook

import (
	"sort"

	"github.com/google/uuid"

	"github.com/matzehuels/folio/pkg/sheet"
)

// Palette is the fixed set of chapter colors, assigned in rotation.
var Palette = []string{
	"#ef4444", // red
	"#f97316", // orange
	"#eab308", // yellow
	"#22c55e", // green
	"#14b8a6", // teal
	"#3b82f6", // blue
	"#8b5cf6", // violet
	"#ec4899", // pink
}

// PaletteColor returns the palette color for the n-th chapter.
func PaletteColor(n int) string {
	if n < 0 {
		n = -n
	}
	return Palette[n%len(Palette)]
}

// Page is one physical page of a workbook. StartsChapterID is set only on
// the page where a chapter begins.
type Page struct {
	ID              string `json:"id"`
	PageNumber      int    `json:"pageNumber"`
	WorksheetID     string `json:"worksheetId,omitempty"`
	SubPage         int    `json:"subPage,omitempty"`
	StartsChapterID string `json:"startsChapterId,omitempty"`
}

// Chapter is a named, colored section of a workbook.
type Chapter struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Color string `json:"color"`
	Order int    `json:"order"`
}

// Settings are workbook-wide print settings.
type Settings struct {
	Format            sheet.PageFormat `json:"pageFormat"`
	PageLimit         int              `json:"pageLimit,omitempty"`
	ShowChapterColors bool             `json:"showChapterColors"`
}

// Workbook is an ordered, chaptered collection of worksheet pages.
type Workbook struct {
	ID          string                     `json:"id"`
	Title       string                     `json:"title"`
	Description string                     `json:"description,omitempty"`
	CoverImage  string                     `json:"coverImage,omitempty"`
	Pages       []Page                     `json:"pages"`
	Chapters    []Chapter                  `json:"chapters"`
	Worksheets  map[string]sheet.Worksheet `json:"worksheets,omitempty"`
	Settings    Settings                   `json:"settings"`
}

// New creates an empty workbook.
func New(title string, s Settings) *Workbook {
	if !s.Format.Valid() {
		s.Format = sheet.FormatA4
	}
	return &Workbook{
		ID:         uuid.NewString(),
		Title:      title,
		Pages:      []Page{},
		Chapters:   []Chapter{},
		Worksheets: map[string]sheet.Worksheet{},
		Settings:   s,
	}
}

// Clone returns a deep copy.
func (wb *Workbook) Clone() *Workbook {
	c := *wb
	c.Pages = append([]Page(nil), wb.Pages...)
	c.Chapters = append([]Chapter(nil), wb.Chapters...)
	if wb.Worksheets != nil {
		c.Worksheets = make(map[string]sheet.Worksheet, len(wb.Worksheets))
		for id, ws := range wb.Worksheets {
			c.Worksheets[id] = *ws.Clone()
		}
	}
	return &c
}

// PageCount returns the number of pages.
func (wb *Workbook) PageCount() int { return len(wb.Pages) }

// EffectiveLimit returns the page limit used for composition: the configured
// limit, or the page count when no limit is set, bounded by [BoundLimit].
func (wb *Workbook) EffectiveLimit() int {
	return BoundLimit(wb.Settings.PageLimit, len(wb.Pages))
}

// Chapter returns the chapter with the given id.
func (wb *Workbook) Chapter(id string) (Chapter, bool) {
	for _, c := range wb.Chapters {
		if c.ID == id {
			return c, true
		}
	}
	return Chapter{}, false
}

// Page returns the page with the given id.
func (wb *Workbook) Page(id string) (Page, bool) {
	if i := wb.pageIndex(id); i >= 0 {
		return wb.Pages[i], true
	}
	return Page{}, false
}

// SortedChapters returns the chapters ordered by Order.
func (wb *Workbook) SortedChapters() []Chapter {
	out := append([]Chapter(nil), wb.Chapters...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func (wb *Workbook) pageIndex(id string) int {
	for i := range wb.Pages {
		if wb.Pages[i].ID == id {
			return i
		}
	}
	return -1
}

func (wb *Workbook) chapterIndex(id string) int {
	for i := range wb.Chapters {
		if wb.Chapters[i].ID == id {
			return i
		}
	}
	return -1
}
