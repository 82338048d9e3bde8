package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	apperr "github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/paginate"
	"github.com/matzehuels/folio/pkg/sheet"
	"github.com/matzehuels/folio/pkg/workbook"
)

// Kind identifies the document type of a JSON file.
type Kind string

const (
	KindWorksheet Kind = "worksheet"
	KindWorkbook  Kind = "workbook"
)

// Document is a decoded worksheet or workbook.
type Document struct {
	Kind      Kind
	Worksheet *sheet.Worksheet
	Workbook  *workbook.Workbook
}

// ReadWorksheet decodes and repairs a worksheet.
func ReadWorksheet(r io.Reader) (*sheet.Worksheet, error) {
	var ws sheet.Worksheet
	if err := json.NewDecoder(r).Decode(&ws); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidDocument, err, "decode worksheet")
	}
	RepairWorksheet(&ws)
	return &ws, nil
}

// RepairWorksheet clamps a decoded worksheet to valid values and positions
// freeform blocks that have no layout yet.
func RepairWorksheet(ws *sheet.Worksheet) {
	if apperr.ValidateID(ws.ID) != nil {
		ws.ID = sheet.NewID()
	}
	for i := range ws.Blocks {
		if apperr.ValidateID(ws.Blocks[i].ID) != nil {
			ws.Blocks[i].ID = ""
		}
	}
	ws.Normalize()
	if ws.Mode == sheet.ModeFreeform {
		paginate.AutoPlace(ws.Blocks, ws.Geometry())
	}
}

// ImportWorksheet reads a worksheet from a .json file.
func ImportWorksheet(path string) (*sheet.Worksheet, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadWorksheet(f)
}

// ReadWorkbook decodes and heals a workbook, repairing every cached
// worksheet.
func ReadWorkbook(r io.Reader) (*workbook.Workbook, error) {
	var wb workbook.Workbook
	if err := json.NewDecoder(r).Decode(&wb); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidDocument, err, "decode workbook")
	}
	RepairWorkbook(&wb)
	return &wb, nil
}

// RepairWorkbook fills missing collections, repairs cached worksheets and
// heals page numbering and chapter markers.
func RepairWorkbook(wb *workbook.Workbook) {
	if apperr.ValidateID(wb.ID) != nil {
		wb.ID = sheet.NewID()
	}
	if wb.Pages == nil {
		wb.Pages = []workbook.Page{}
	}
	if wb.Chapters == nil {
		wb.Chapters = []workbook.Chapter{}
	}
	for i := range wb.Pages {
		if apperr.ValidateID(wb.Pages[i].ID) != nil {
			wb.Pages[i].ID = ""
		}
	}
	for i := range wb.Chapters {
		if apperr.ValidateID(wb.Chapters[i].ID) != nil {
			wb.Chapters[i].ID = ""
		}
	}
	if wb.Worksheets == nil {
		wb.Worksheets = map[string]sheet.Worksheet{}
	}
	for id, ws := range wb.Worksheets {
		if apperr.ValidateID(ws.ID) != nil {
			ws.ID = id
		}
		RepairWorksheet(&ws)
		wb.Worksheets[id] = ws
	}
	wb.Heal()
}

// ImportWorkbook reads a workbook from a .json file.
func ImportWorkbook(path string) (*workbook.Workbook, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadWorkbook(f)
}

// ReadDocument decodes either document type. A top-level "pages" or
// "chapters" array marks a workbook, anything else is read as a worksheet.
func ReadDocument(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read document: %w", err)
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return Document{}, apperr.Wrap(apperr.ErrCodeInvalidDocument, err, "decode document")
	}
	_, pages := probe["pages"]
	_, chapters := probe["chapters"]
	if pages || chapters {
		wb, err := ReadWorkbook(bytes.NewReader(data))
		return Document{Kind: KindWorkbook, Workbook: wb}, err
	}
	ws, err := ReadWorksheet(bytes.NewReader(data))
	return Document{Kind: KindWorksheet, Worksheet: ws}, err
}

// ImportDocument reads either document type from a .json file.
func ImportDocument(path string) (Document, error) {
	f, err := open(path)
	if err != nil {
		return Document{}, err
	}
	defer f.Close()
	return ReadDocument(f)
}

func open(path string) (*os.File, error) {
	if err := apperr.ValidateDocumentPath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, apperr.Wrap(apperr.ErrCodeNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}
