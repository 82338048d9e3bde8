package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	apperr "github.com/matzehuels/folio/pkg/errors"
	fio "github.com/matzehuels/folio/pkg/io"
	"github.com/matzehuels/folio/pkg/paginate"
	"github.com/matzehuels/folio/pkg/sheet"
	"github.com/matzehuels/folio/pkg/workbook"
)

// =============================================================================
// Input Decoding
// =============================================================================

// ParseWorksheet decodes and repairs a worksheet document.
func ParseWorksheet(data []byte) (*sheet.Worksheet, error) {
	return fio.ReadWorksheet(bytes.NewReader(data))
}

// ParseWorkbook decodes and heals a workbook document.
func ParseWorkbook(data []byte) (*workbook.Workbook, error) {
	return fio.ReadWorkbook(bytes.NewReader(data))
}

// ParseHeights decodes a JSON object of measured block heights.
// Non-finite and negative values are clamped to zero.
func ParseHeights(data []byte) (*paginate.Heights, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return paginate.NewHeights(), nil
	}
	var m map[string]float64
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidDocument, err, "decode heights")
	}
	return paginate.HeightsFrom(m), nil
}

// LoadWorksheet reads a worksheet and, optionally, a heights file.
func LoadWorksheet(path, heightsPath string) (*sheet.Worksheet, *paginate.Heights, error) {
	ws, err := fio.ImportWorksheet(path)
	if err != nil {
		return nil, nil, err
	}
	if heightsPath == "" {
		return ws, paginate.NewHeights(), nil
	}
	data, err := os.ReadFile(heightsPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read heights: %w", err)
	}
	h, err := ParseHeights(data)
	if err != nil {
		return nil, nil, err
	}
	return ws, h, nil
}
