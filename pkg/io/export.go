package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/folio/pkg/sheet"
	"github.com/matzehuels/folio/pkg/workbook"
)

// WriteWorksheet encodes ws as indented JSON.
func WriteWorksheet(ws *sheet.Worksheet, w io.Writer) error {
	return writeJSON(ws, w)
}

// ExportWorksheet writes ws to a file at path.
func ExportWorksheet(ws *sheet.Worksheet, path string) error {
	return exportFile(path, func(w io.Writer) error { return WriteWorksheet(ws, w) })
}

// WriteWorkbook encodes wb as indented JSON.
func WriteWorkbook(wb *workbook.Workbook, w io.Writer) error {
	return writeJSON(wb, w)
}

// ExportWorkbook writes wb to a file at path.
func ExportWorkbook(wb *workbook.Workbook, path string) error {
	return exportFile(path, func(w io.Writer) error { return WriteWorkbook(wb, w) })
}

func writeJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func exportFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
