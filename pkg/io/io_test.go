package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	apperr "github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/sheet"
	"github.com/matzehuels/folio/pkg/workbook"
)

func TestReadWorksheetRepairs(t *testing.T) {
	input := `{
	  "id": "ws 1",
	  "title": "Fractions",
	  "pageFormat": "Letter",
	  "columns": 5,
	  "blocks": [
	    {"id": "a", "type": "heading"},
	    {"id": "a", "type": "mystery", "gridSpan": 40, "gridStart": 12},
	    {"type": "paragraph", "marginBottom": 900}
	  ]
	}`
	ws, err := ReadWorksheet(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if ws.ID == "ws 1" || ws.ID == "" {
		t.Errorf("ID = %q, want re-issued", ws.ID)
	}
	if ws.Format != sheet.FormatA4 || ws.Gap != sheet.GapMedium || ws.Mode != sheet.ModeGrid {
		t.Errorf("settings = %s/%s/%s, want defaults", ws.Format, ws.Gap, ws.Mode)
	}
	if len(ws.Blocks) != 3 {
		t.Fatalf("blocks = %d, want 3", len(ws.Blocks))
	}
	if ws.Blocks[0].GridSpan != ws.Columns {
		t.Errorf("missing span = %d, want %d", ws.Blocks[0].GridSpan, ws.Columns)
	}
	b := ws.Blocks[1]
	if b.ID == "a" || b.Type != sheet.TypeParagraph || b.GridSpan != ws.Columns {
		t.Errorf("block 1 = %+v, want new id, paragraph, full span", b)
	}
	if ws.Blocks[2].ID == "" || ws.Blocks[2].MarginBottom != sheet.MaxMargin {
		t.Errorf("block 2 = %+v", ws.Blocks[2])
	}
}

func TestReadWorksheetFreeformAutoPlaces(t *testing.T) {
	input := `{"id":"ws","layoutMode":"freeform","blocks":[{"id":"a","type":"heading"},{"id":"b","type":"image"}]}`
	ws, err := ReadWorksheet(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	for _, b := range ws.Blocks {
		if b.Free == nil {
			t.Errorf("block %s has no free layout", b.ID)
		}
	}
}

func TestReadWorksheetMalformed(t *testing.T) {
	_, err := ReadWorksheet(strings.NewReader(`{"blocks": [`))
	if !apperr.Is(err, apperr.ErrCodeInvalidDocument) {
		t.Errorf("err = %v, want INVALID_DOCUMENT", err)
	}
}

func TestReadWorkbookHeals(t *testing.T) {
	input := `{
	  "id": "wb",
	  "title": "Math",
	  "chapters": [{"id": "c1", "title": "Intro"}],
	  "pages": [
	    {"id": "p2", "pageNumber": 9, "startsChapterId": "c1"},
	    {"id": "p1", "pageNumber": 4, "startsChapterId": "c1"},
	    {"id": "p3", "pageNumber": 12, "startsChapterId": "gone"}
	  ],
	  "worksheets": {"ws": {"title": "Sheet", "blocks": [{"type": "list"}]}}
	}`
	wb, err := ReadWorkbook(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range wb.Pages {
		if p.PageNumber != i+1 {
			t.Errorf("page %s number = %d, want %d", p.ID, p.PageNumber, i+1)
		}
	}
	if wb.Pages[0].ID != "p1" || wb.Pages[0].StartsChapterID != "c1" {
		t.Errorf("first page = %+v, want p1 starting c1", wb.Pages[0])
	}
	if wb.Pages[1].StartsChapterID != "" || wb.Pages[2].StartsChapterID != "" {
		t.Errorf("stale markers kept: %+v", wb.Pages)
	}
	ws, ok := wb.Worksheets["ws"]
	if !ok || ws.ID != "ws" || ws.Blocks[0].ID == "" {
		t.Errorf("worksheet = %+v, want repaired under key ws", ws)
	}
	if wb.Chapters[0].Color == "" {
		t.Error("chapter color not filled")
	}
}

func TestReadDocument(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
	}{
		{`{"title":"s","blocks":[]}`, KindWorksheet},
		{`{"title":"b","pages":[]}`, KindWorkbook},
		{`{"chapters":[]}`, KindWorkbook},
	}
	for _, tt := range tests {
		doc, err := ReadDocument(strings.NewReader(tt.input))
		if err != nil {
			t.Fatalf("ReadDocument(%s) error = %v", tt.input, err)
		}
		if doc.Kind != tt.want {
			t.Errorf("Kind = %s, want %s", doc.Kind, tt.want)
		}
		if (doc.Worksheet != nil) != (tt.want == KindWorksheet) {
			t.Errorf("Worksheet set = %v for %s", doc.Worksheet != nil, tt.want)
		}
	}
	if _, err := ReadDocument(strings.NewReader(`[1,2]`)); !apperr.Is(err, apperr.ErrCodeInvalidDocument) {
		t.Errorf("array document err = %v, want INVALID_DOCUMENT", err)
	}
}

func TestWorksheetRoundTrip(t *testing.T) {
	ws := sheet.New("Round trip", sheet.DefaultSettings())
	ws.Append(ws.NewBlock(sheet.TypeHeading), ws.NewBlock(sheet.TypeMatching))

	path := filepath.Join(t.TempDir(), "ws.json")
	if err := ExportWorksheet(ws, path); err != nil {
		t.Fatal(err)
	}
	got, err := ImportWorksheet(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != ws.ID || len(got.Blocks) != 2 || got.Blocks[1].ID != ws.Blocks[1].ID {
		t.Errorf("round trip = %+v, want %+v", got, ws)
	}

	doc, err := ImportDocument(path)
	if err != nil || doc.Kind != KindWorksheet {
		t.Errorf("ImportDocument() = %v, %v", doc.Kind, err)
	}
}

func TestWorkbookRoundTrip(t *testing.T) {
	wb := workbook.New("Book", workbook.Settings{})
	ws := sheet.New("Sheet", sheet.DefaultSettings())
	wb.AddWorksheet(ws, nil)
	c := wb.AddChapter("Intro")
	if err := wb.StartChapterAt(c.ID, wb.Pages[0].ID); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteWorkbook(wb, &buf); err != nil {
		t.Fatal(err)
	}
	got, err := ReadWorkbook(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Pages) != len(wb.Pages) || got.Pages[0].StartsChapterID != c.ID {
		t.Errorf("pages = %+v, want %+v", got.Pages, wb.Pages)
	}
	if _, ok := got.Worksheets[ws.ID]; !ok {
		t.Error("worksheet lost in round trip")
	}

	path := filepath.Join(t.TempDir(), "wb.json")
	if err := ExportWorkbook(wb, path); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportWorkbook(path); err != nil {
		t.Errorf("ImportWorkbook() error = %v", err)
	}
}

func TestImportPathErrors(t *testing.T) {
	if _, err := ImportWorksheet("sheet.txt"); !apperr.Is(err, apperr.ErrCodeInvalidPath) {
		t.Errorf("err = %v, want INVALID_PATH", err)
	}
	missing := filepath.Join(t.TempDir(), "missing.json")
	if _, err := ImportWorkbook(missing); !apperr.Is(err, apperr.ErrCodeNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}
