package sheet

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	apperr "github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/geom"
)

// BlockType identifies the kind of content a block holds.
type BlockType string

// Supported block types.
const (
	TypeHeading        BlockType = "heading"
	TypeParagraph      BlockType = "paragraph"
	TypeInfobox        BlockType = "infobox"
	TypeMultipleChoice BlockType = "multiple-choice"
	TypeFillBlank      BlockType = "fill-blank"
	TypeFreeAnswer     BlockType = "free-answer"
	TypeTrueFalse      BlockType = "true-false"
	TypeMatching       BlockType = "matching"
	TypeList           BlockType = "list"
	TypeImage          BlockType = "image"
	TypeTable          BlockType = "table"
	TypeDivider        BlockType = "divider"
	TypeSpacer         BlockType = "spacer"
	TypeQRCode         BlockType = "qr-code"
	TypeFreeCanvas     BlockType = "free-canvas"
)

// blockDefaults holds the size estimates used before a block is measured and
// when a freeform block arrives without a size.
var blockDefaults = map[BlockType]struct{ width, height float64 }{
	TypeHeading:        {400, 48},
	TypeParagraph:      {400, 96},
	TypeInfobox:        {400, 120},
	TypeMultipleChoice: {400, 160},
	TypeFillBlank:      {400, 96},
	TypeFreeAnswer:     {400, 160},
	TypeTrueFalse:      {400, 120},
	TypeMatching:       {400, 200},
	TypeList:           {300, 120},
	TypeImage:          {240, 240},
	TypeTable:          {400, 200},
	TypeDivider:        {400, 16},
	TypeSpacer:         {400, 48},
	TypeQRCode:         {128, 128},
	TypeFreeCanvas:     {400, 300},
}

// BlockTypes returns every supported block type in palette order.
func BlockTypes() []BlockType {
	return []BlockType{
		TypeHeading, TypeParagraph, TypeInfobox, TypeList, TypeTable,
		TypeImage, TypeMultipleChoice, TypeFillBlank, TypeFreeAnswer,
		TypeTrueFalse, TypeMatching, TypeDivider, TypeSpacer, TypeQRCode,
		TypeFreeCanvas,
	}
}

// Valid reports whether t is a known block type.
func (t BlockType) Valid() bool {
	_, ok := blockDefaults[t]
	return ok
}

// ParseBlockType converts a name to a BlockType.
func ParseBlockType(s string) (BlockType, error) {
	t := BlockType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", apperr.New(apperr.ErrCodeInvalidBlockType, "unknown block type %q", s)
	}
	return t, nil
}

// DefaultHeight returns the height estimate for a block that has not been
// measured yet.
func DefaultHeight(t BlockType) float64 {
	if d, ok := blockDefaults[t]; ok {
		return d.height
	}
	return blockDefaults[TypeParagraph].height
}

// DefaultWidth returns the width given to a freeform block without a size.
func DefaultWidth(t BlockType) float64 {
	if d, ok := blockDefaults[t]; ok {
		return d.width
	}
	return blockDefaults[TypeParagraph].width
}

// MarginStyle is the visual fill drawn in a block's bottom margin.
type MarginStyle string

const (
	MarginNone  MarginStyle = "none"
	MarginLines MarginStyle = "lines"
	MarginGrid  MarginStyle = "grid"
	MarginDots  MarginStyle = "dots"
)

// Valid reports whether s is a known margin style.
func (s MarginStyle) Valid() bool {
	switch s {
	case MarginNone, MarginLines, MarginGrid, MarginDots:
		return true
	}
	return false
}

// MaxMargin is the upper bound for MarginBottom in pixels.
const MaxMargin = 300.0

// MaxPageIndex is the highest freeform page index a block may carry.
const MaxPageIndex = 499

// ClampPageIndex bounds a freeform page index to [0, MaxPageIndex].
func ClampPageIndex(i int) int {
	return geom.ClampInt(i, 0, MaxPageIndex)
}

// FreeLayout positions a block in freeform mode. Coordinates are pixels
// relative to the top-left corner of the page content area.
type FreeLayout struct {
	X         float64 `json:"posX"`
	Y         float64 `json:"posY"`
	Width     float64 `json:"blockWidth"`
	Height    float64 `json:"blockHeight"`
	PageIndex int     `json:"pageIndex"`
	ZIndex    int     `json:"zIndex"`
}

// Block is a content unit placed on a worksheet page.
type Block struct {
	ID           string          `json:"id"`
	Type         BlockType       `json:"type"`
	Order        int             `json:"order"`
	Content      json.RawMessage `json:"content,omitempty"`
	GridSpan     int             `json:"gridSpan"`
	GridStart    int             `json:"gridStart,omitempty"`
	MarginBottom float64         `json:"marginBottom,omitempty"`
	MarginStyle  MarginStyle     `json:"marginStyle,omitempty"`

	// Free is nil until a freeform block has been placed.
	Free *FreeLayout `json:"free,omitempty"`
}

// Clone returns a deep copy of the block.
func (b Block) Clone() Block {
	if b.Content != nil {
		b.Content = append(json.RawMessage(nil), b.Content...)
	}
	if b.Free != nil {
		f := *b.Free
		b.Free = &f
	}
	return b
}

// NewID returns a fresh block identifier.
func NewID() string {
	return uuid.NewString()
}

// cloneBlocks deep-copies a block list.
func cloneBlocks(blocks []Block) []Block {
	if blocks == nil {
		return nil
	}
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		out[i] = b.Clone()
	}
	return out
}
