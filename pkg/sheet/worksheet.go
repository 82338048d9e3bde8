package sheet

import (
	"github.com/google/uuid"

	apperr "github.com/matzehuels/folio/pkg/errors"
)

// Settings are the page settings of a new worksheet.
type Settings struct {
	Format     PageFormat
	Columns    int
	Gap        GridGap
	FontSize   float64
	Mode       LayoutMode
	Background string
}

// DefaultSettings returns A4, 12 columns, medium gap, 16px text, grid mode.
func DefaultSettings() Settings {
	return Settings{
		Format:     FormatA4,
		Columns:    12,
		Gap:        GapMedium,
		FontSize:   16,
		Mode:       ModeGrid,
		Background: "#ffffff",
	}
}

// Worksheet is an ordered list of blocks plus page geometry metadata.
type Worksheet struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Format     PageFormat `json:"pageFormat"`
	Columns    int        `json:"columns"`
	Gap        GridGap    `json:"gridGap"`
	FontSize   float64    `json:"fontSize"`
	Mode       LayoutMode `json:"layoutMode"`
	Background string     `json:"background,omitempty"`
	Blocks     []Block    `json:"blocks"`
}

// New creates an empty worksheet.
func New(title string, s Settings) *Worksheet {
	ws := &Worksheet{
		ID:         uuid.NewString(),
		Title:      title,
		Format:     s.Format,
		Columns:    s.Columns,
		Gap:        s.Gap,
		FontSize:   s.FontSize,
		Mode:       s.Mode,
		Background: s.Background,
		Blocks:     []Block{},
	}
	ws.Normalize()
	return ws
}

// DropPayload is carried by a palette drag onto the canvas. An empty BeforeID
// appends the new block at the end.
type DropPayload struct {
	BlockType BlockType `json:"blockType"`
	BeforeID  string    `json:"beforeId,omitempty"`
}

// Geometry returns the derived page geometry.
func (ws *Worksheet) Geometry() Geometry {
	return NewGeometry(ws.Format, ws.Columns, ws.Gap)
}

// Clone returns a deep copy of the worksheet.
func (ws *Worksheet) Clone() *Worksheet {
	c := *ws
	c.Blocks = cloneBlocks(ws.Blocks)
	return &c
}

// Index returns the list position of the block, or -1.
func (ws *Worksheet) Index(id string) int {
	for i := range ws.Blocks {
		if ws.Blocks[i].ID == id {
			return i
		}
	}
	return -1
}

// Block returns the block with the given id.
func (ws *Worksheet) Block(id string) (Block, bool) {
	if i := ws.Index(id); i >= 0 {
		return ws.Blocks[i], true
	}
	return Block{}, false
}

// NewBlock returns a block of type t spanning the full grid width.
// The block is not added to the worksheet.
func (ws *Worksheet) NewBlock(t BlockType) Block {
	if !t.Valid() {
		t = TypeParagraph
	}
	return Block{
		ID:          NewID(),
		Type:        t,
		GridSpan:    NormalizeColumns(ws.Columns),
		MarginStyle: MarginNone,
	}
}

// Append adds blocks at the end of the list.
func (ws *Worksheet) Append(blocks ...Block) {
	ws.Blocks = append(ws.Blocks, cloneBlocks(blocks)...)
	ws.Normalize()
}

// Insert adds b at index, clamped to the list bounds.
func (ws *Worksheet) Insert(index int, b Block) {
	if index < 0 {
		index = 0
	}
	if index > len(ws.Blocks) {
		index = len(ws.Blocks)
	}
	ws.Blocks = append(ws.Blocks, Block{})
	copy(ws.Blocks[index+1:], ws.Blocks[index:])
	ws.Blocks[index] = b.Clone()
	ws.Normalize()
}

// InsertBefore adds b before the block with targetID. An empty or unknown
// target appends.
func (ws *Worksheet) InsertBefore(targetID string, b Block) {
	i := ws.Index(targetID)
	if targetID == "" || i < 0 {
		ws.Append(b)
		return
	}
	ws.Insert(i, b)
}

// Delete removes the block with the given id.
func (ws *Worksheet) Delete(id string) error {
	i := ws.Index(id)
	if i < 0 {
		return blockNotFound(id)
	}
	ws.Blocks = append(ws.Blocks[:i], ws.Blocks[i+1:]...)
	ws.Normalize()
	return nil
}

// Move moves the block to position to, clamped to the list bounds.
func (ws *Worksheet) Move(id string, to int) error {
	i := ws.Index(id)
	if i < 0 {
		return blockNotFound(id)
	}
	b := ws.Blocks[i]
	ws.Blocks = append(ws.Blocks[:i], ws.Blocks[i+1:]...)
	ws.Insert(to, b)
	return nil
}

// MoveBefore moves the block in front of targetID. An empty target moves it
// to the end.
func (ws *Worksheet) MoveBefore(id, targetID string) error {
	if id == targetID {
		return nil
	}
	i := ws.Index(id)
	if i < 0 {
		return blockNotFound(id)
	}
	if targetID != "" && ws.Index(targetID) < 0 {
		return blockNotFound(targetID)
	}
	b := ws.Blocks[i]
	ws.Blocks = append(ws.Blocks[:i], ws.Blocks[i+1:]...)
	if targetID == "" {
		ws.Append(b)
		return nil
	}
	ws.Insert(ws.Index(targetID), b)
	return nil
}

// Update applies fn to the block with the given id and re-establishes the
// layout invariants afterwards.
func (ws *Worksheet) Update(id string, fn func(*Block)) error {
	i := ws.Index(id)
	if i < 0 {
		return blockNotFound(id)
	}
	fn(&ws.Blocks[i])
	ws.Normalize()
	return nil
}

// Replace swaps the whole block list, e.g. for generated content.
func (ws *Worksheet) Replace(blocks []Block) {
	ws.Blocks = cloneBlocks(blocks)
	if ws.Blocks == nil {
		ws.Blocks = []Block{}
	}
	ws.Normalize()
}

// Drop inserts a new block for a palette drag payload and returns it.
func (ws *Worksheet) Drop(p DropPayload) (Block, error) {
	if !p.BlockType.Valid() {
		return Block{}, apperr.New(apperr.ErrCodeInvalidBlockType, "unknown block type %q", p.BlockType)
	}
	b := ws.NewBlock(p.BlockType)
	ws.InsertBefore(p.BeforeID, b)
	got, _ := ws.Block(b.ID)
	return got, nil
}

func blockNotFound(id string) error {
	return apperr.New(apperr.ErrCodeBlockNotFound, "block %q not found", id)
}
