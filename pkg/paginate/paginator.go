package paginate

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/folio/pkg/observability"
	"github.com/matzehuels/folio/pkg/sheet"
)

// Paginator keeps the pages of a worksheet current. It re-runs pagination
// whenever a measured height changes or the worksheet is replaced, and hands
// the new pages to the OnPages callback.
type Paginator struct {
	mu      sync.Mutex
	ws      *sheet.Worksheet
	heights *Heights
	pages   []Page
	onPages func([]Page)
	unsub   func()
	logger  *log.Logger
}

// PaginatorOption configures a Paginator.
type PaginatorOption func(*Paginator)

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) PaginatorOption {
	return func(p *Paginator) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithOnPages sets the callback invoked after every recomputation.
func WithOnPages(fn func([]Page)) PaginatorOption {
	return func(p *Paginator) { p.onPages = fn }
}

// NewPaginator binds a worksheet snapshot and a height cache. Pages are
// computed immediately. Call Close to stop listening for height changes.
func NewPaginator(ws *sheet.Worksheet, heights *Heights, opts ...PaginatorOption) *Paginator {
	if heights == nil {
		heights = NewHeights()
	}
	p := &Paginator{
		ws:      ws.Clone(),
		heights: heights,
		logger:  log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.unsub = heights.Subscribe(func(id string, h float64) {
		p.logger.Debug("height changed", "block", id, "height", h)
		p.Refresh()
	})
	p.Refresh()
	return p
}

// Heights returns the bound height cache.
func (p *Paginator) Heights() *Heights { return p.heights }

// Pages returns the most recent pagination.
func (p *Paginator) Pages() []Page {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pages
}

// SetWorksheet replaces the worksheet snapshot and recomputes.
func (p *Paginator) SetWorksheet(ws *sheet.Worksheet) []Page {
	p.mu.Lock()
	p.ws = ws.Clone()
	p.mu.Unlock()
	return p.Refresh()
}

// Refresh recomputes pages from the current snapshot and heights.
func (p *Paginator) Refresh() []Page {
	p.mu.Lock()
	start := time.Now()
	pages := PaginateWorksheet(p.ws, p.heights)
	p.pages = pages
	fn := p.onPages
	mode, blocks := string(p.ws.Mode), len(p.ws.Blocks)
	p.mu.Unlock()

	observability.Layout().OnPaginate(context.Background(), mode, blocks, len(pages), time.Since(start))
	p.logger.Debug("paginated", "mode", mode, "blocks", blocks, "pages", len(pages))
	if fn != nil {
		fn(pages)
	}
	return pages
}

// Close stops listening for height changes.
func (p *Paginator) Close() {
	if p.unsub != nil {
		p.unsub()
	}
}
