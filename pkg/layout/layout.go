package layout

import (
	"encoding/json"
	"fmt"
	"os"
)

// Layout is the exported geometry of a paginated worksheet.
type Layout struct {
	WorksheetID string `json:"worksheetId" bson:"worksheetId"`
	Title       string `json:"title,omitempty" bson:"title,omitempty"`
	Format      string `json:"format" bson:"format"`
	Mode        string `json:"mode" bson:"mode"`
	Background  string `json:"background,omitempty" bson:"background,omitempty"`

	// Page and content area in pixels
	PageWidth     float64 `json:"pageWidth" bson:"pageWidth"`
	PageHeight    float64 `json:"pageHeight" bson:"pageHeight"`
	ContentX      float64 `json:"contentX" bson:"contentX"`
	ContentY      float64 `json:"contentY" bson:"contentY"`
	ContentWidth  float64 `json:"contentWidth" bson:"contentWidth"`
	ContentHeight float64 `json:"contentHeight" bson:"contentHeight"`

	// Grid
	Columns     int     `json:"columns" bson:"columns"`
	Gap         float64 `json:"gap" bson:"gap"`
	ColumnWidth float64 `json:"columnWidth" bson:"columnWidth"`

	Pages []Page `json:"pages" bson:"pages"`
}

// Page is one laid-out page.
type Page struct {
	Number int     `json:"number" bson:"number"`
	Blocks []Block `json:"blocks" bson:"blocks"`
}

// Block is a positioned block. X and Y are relative to the page's top-left
// corner.
type Block struct {
	ID     string  `json:"id" bson:"id"`
	Type   string  `json:"type" bson:"type"`
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`

	// Grid placement
	Column      int     `json:"column,omitempty" bson:"column,omitempty"`
	Span        int     `json:"span,omitempty" bson:"span,omitempty"`
	Margin      float64 `json:"margin,omitempty" bson:"margin,omitempty"`
	MarginStyle string  `json:"marginStyle,omitempty" bson:"marginStyle,omitempty"`

	ZIndex      int  `json:"zIndex,omitempty" bson:"zIndex,omitempty"`
	OutOfBounds bool `json:"outOfBounds,omitempty" bson:"outOfBounds,omitempty"`
}

// BlockCount returns the number of blocks over all pages.
func (l *Layout) BlockCount() int {
	n := 0
	for _, p := range l.Pages {
		n += len(p.Blocks)
	}
	return n
}

// Page returns the page with the given 1-based number.
func (l *Layout) Page(n int) (Page, bool) {
	if n < 1 || n > len(l.Pages) {
		return Page{}, false
	}
	return l.Pages[n-1], true
}

// Find returns a block and the number of the page holding it.
func (l *Layout) Find(id string) (Block, int, bool) {
	for _, p := range l.Pages {
		for _, b := range p.Blocks {
			if b.ID == id {
				return b, p.Number, true
			}
		}
	}
	return Block{}, 0, false
}

// OutOfBounds returns the ids of blocks flagged as extending past the
// content area.
func (l *Layout) OutOfBounds() []string {
	var ids []string
	for _, p := range l.Pages {
		for _, b := range p.Blocks {
			if b.OutOfBounds {
				ids = append(ids, b.ID)
			}
		}
	}
	return ids
}

// Marshal serializes a Layout to pretty-printed JSON bytes.
func Marshal(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Layout.
func Unmarshal(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if len(l.Pages) == 0 {
		return Layout{}, fmt.Errorf("layout must contain at least one page")
	}
	return l, nil
}

// WriteFile writes a Layout to a JSON file.
func WriteFile(l Layout, path string) error {
	data, err := Marshal(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a Layout from a JSON file.
func ReadFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
