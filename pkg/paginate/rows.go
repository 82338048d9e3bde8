package paginate

import (
	"github.com/matzehuels/folio/pkg/geom"
	"github.com/matzehuels/folio/pkg/sheet"
)

// Row is one grid row produced by the auto-wrap model.
type Row struct {
	Blocks []sheet.Block `json:"blocks"`
	Starts []int         `json:"starts"` // 1-based start column per block
	Span   int           `json:"span"`
	Height float64       `json:"height"`
}

// PackRows groups blocks into grid rows. Heights may be nil, in which case
// type defaults are used. Row heights include each block's bottom margin.
func PackRows(blocks []sheet.Block, columns int, heights *Heights) []Row {
	var rows []Row
	p := newRowPacker(columns)
	var cur Row
	for _, b := range blocks {
		if !p.fits(b) {
			cur.Span, cur.Height = p.cursor, p.height
			rows = append(rows, cur)
			cur = Row{}
			p.reset()
		}
		cur.Blocks = append(cur.Blocks, b)
		cur.Starts = append(cur.Starts, p.add(b, heights.Get(b)+b.MarginBottom))
	}
	if len(cur.Blocks) > 0 {
		cur.Span, cur.Height = p.cursor, p.height
		rows = append(rows, cur)
	}
	return rows
}

// rowPacker tracks the row being built: the last filled column and the
// tallest block so far.
type rowPacker struct {
	columns int
	cursor  int
	height  float64
	count   int
}

func newRowPacker(columns int) *rowPacker {
	if columns < 1 {
		columns = 1
	}
	return &rowPacker{columns: columns}
}

func (p *rowPacker) span(b sheet.Block) int {
	return geom.ClampInt(b.GridSpan, 1, p.columns)
}

// fits reports whether b can join the current row. An empty row accepts
// anything.
func (p *rowPacker) fits(b sheet.Block) bool {
	if p.count == 0 {
		return true
	}
	span := p.span(b)
	if b.GridStart > 0 {
		return b.GridStart-1 >= p.cursor && b.GridStart+span-1 <= p.columns
	}
	return p.cursor+span <= p.columns
}

// add places b in the current row and returns its 1-based start column.
func (p *rowPacker) add(b sheet.Block, h float64) int {
	span := p.span(b)
	start := p.cursor + 1
	if b.GridStart > 0 {
		start = geom.ClampStart(b.GridStart, span, p.columns)
	}
	p.cursor = start + span - 1
	if h > p.height {
		p.height = h
	}
	p.count++
	return start
}

func (p *rowPacker) reset() {
	p.cursor, p.height, p.count = 0, 0, 0
}
