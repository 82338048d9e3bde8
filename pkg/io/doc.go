// Package io imports and exports worksheets and workbooks as JSON.
//
// Decoding is tolerant. Documents written by older editors or other tools
// often omit layout fields, so missing or invalid values are repaired
// rather than rejected:
//
//   - unknown settings fall back to A4, 12 columns, medium gap, grid mode
//   - blocks without a column span take the full grid width
//   - freeform blocks without a position are flowed onto the page
//   - invalid or duplicate ids are re-issued
//   - workbook page numbers are made dense and duplicate chapter markers
//     are dropped
//
// Only malformed JSON is an error, reported with code INVALID_DOCUMENT.
//
//	ws, err := io.ImportWorksheet("fractions.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = io.ExportWorksheet(ws, "fractions.out.json")
package io
