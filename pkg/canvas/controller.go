package canvas

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/folio/pkg/events"
	"github.com/matzehuels/folio/pkg/geom"
	"github.com/matzehuels/folio/pkg/layout"
	"github.com/matzehuels/folio/pkg/observability"
	"github.com/matzehuels/folio/pkg/paginate"
	"github.com/matzehuels/folio/pkg/sheet"
)

// Variant selects the gesture rules of a canvas.
type Variant int

const (
	VariantGrid Variant = iota
	VariantFreeform
	VariantMasonry
)

func (v Variant) String() string {
	switch v {
	case VariantFreeform:
		return "freeform"
	case VariantMasonry:
		return "masonry"
	default:
		return "grid"
	}
}

// VariantFor returns the variant matching a worksheet layout mode.
func VariantFor(m sheet.LayoutMode) Variant {
	switch m {
	case sheet.ModeFreeform:
		return VariantFreeform
	case sheet.ModeMasonry:
		return VariantMasonry
	default:
		return VariantGrid
	}
}

// Allows reports whether the variant has a handle of the given kind.
func (v Variant) Allows(k DragKind) bool {
	if !k.Valid() {
		return false
	}
	return !(v == VariantMasonry && k == DragResizeBottom)
}

// Controller owns a worksheet and the gesture state of one canvas. It is
// driven from a single event loop and is not safe for concurrent use.
type Controller struct {
	ws       *sheet.Worksheet
	src      events.Source
	variant  Variant
	heights  *paginate.Heights
	onChange func(*sheet.Worksheet)
	logger   *log.Logger

	drag *DragState
	subs []events.Subscription

	selected string
	hovered  string
}

// Option configures a Controller.
type Option func(*Controller)

// WithHeights sets the measured-height cache used for pagination.
func WithHeights(h *paginate.Heights) Option {
	return func(c *Controller) {
		if h != nil {
			c.heights = h
		}
	}
}

// WithOnChange sets the callback receiving the worksheet after every
// mutation: each live update while a gesture is active, the commit on
// pointer-up, and every model operation.
func WithOnChange(fn func(*sheet.Worksheet)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithVariant overrides the variant derived from the layout mode.
func WithVariant(v Variant) Option {
	return func(c *Controller) { c.variant = v }
}

// NewController creates an idle controller over ws.
func NewController(ws *sheet.Worksheet, src events.Source, opts ...Option) *Controller {
	ws.Normalize()
	c := &Controller{
		ws:      ws,
		src:     src,
		variant: VariantFor(ws.Mode),
		heights: paginate.NewHeights(),
		logger:  log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.variant == VariantFreeform {
		paginate.AutoPlace(c.ws.Blocks, c.ws.Geometry())
	}
	return c
}

// Worksheet returns the owned worksheet.
func (c *Controller) Worksheet() *sheet.Worksheet { return c.ws }

// Variant returns the active variant.
func (c *Controller) Variant() Variant { return c.variant }

// Heights returns the measured-height cache.
func (c *Controller) Heights() *paginate.Heights { return c.heights }

// Geometry returns the worksheet's page geometry.
func (c *Controller) Geometry() sheet.Geometry { return c.ws.Geometry() }

// =============================================================================
// Selection
// =============================================================================

// Select marks a block as selected. An empty id clears the selection.
func (c *Controller) Select(id string) {
	if id != "" && c.ws.Index(id) < 0 {
		return
	}
	c.selected = id
}

// Hover marks the block under the pointer. An empty id clears it.
func (c *Controller) Hover(id string) { c.hovered = id }

// Selected returns the selected block id.
func (c *Controller) Selected() string { return c.selected }

// Hovered returns the hovered block id.
func (c *Controller) Hovered() string { return c.hovered }

// HandlesVisible reports whether resize handles are shown for a block.
func (c *Controller) HandlesVisible(id string) bool {
	return id != "" && (id == c.selected || id == c.hovered)
}

// =============================================================================
// Gestures
// =============================================================================

// Dragging returns the active gesture, if any.
func (c *Controller) Dragging() (DragState, bool) {
	if c.drag == nil {
		return DragState{}, false
	}
	return *c.drag, true
}

// PointerDown starts a gesture on a block handle and reports whether it
// started. It is ignored while another gesture is active, for unknown
// blocks and for handles the variant does not have.
func (c *Controller) PointerDown(blockID string, kind DragKind, e events.PointerEvent) bool {
	if c.drag != nil {
		c.logger.Debug("pointer down ignored: gesture active", "block", blockID)
		return false
	}
	if !c.variant.Allows(kind) {
		return false
	}
	b, ok := c.ws.Block(blockID)
	if !ok {
		return false
	}
	if c.variant == VariantFreeform && b.Free == nil {
		paginate.AutoPlace(c.ws.Blocks, c.ws.Geometry())
		b, _ = c.ws.Block(blockID)
	}

	c.drag = &DragState{
		BlockID:   blockID,
		Kind:      kind,
		Start:     geom.Point{X: e.X, Y: e.Y},
		Snapshot:  SnapshotOf(b, c.renderedStart(blockID)),
		StartedAt: time.Now(),
	}
	c.selected = blockID
	c.subs = append(c.subs,
		c.src.OnPointerMove(c.pointerMove),
		c.src.OnPointerUp(c.pointerUp),
	)

	observability.Gesture().OnGestureStart(context.Background(), "canvas", string(kind))
	c.logger.Debug("gesture start", "block", blockID, "kind", kind, "variant", c.variant)
	return true
}

func (c *Controller) pointerMove(e events.PointerEvent) {
	if c.drag == nil {
		return
	}
	c.apply(*c.drag, e)
	c.changed()
}

func (c *Controller) pointerUp(e events.PointerEvent) {
	d := c.drag
	c.release()
	if d == nil {
		return
	}
	c.apply(*d, e)
	c.ws.Normalize()

	observability.Gesture().OnGestureEnd(context.Background(), "canvas", string(d.Kind), time.Since(d.StartedAt))
	c.logger.Debug("gesture end", "block", d.BlockID, "kind", d.Kind)
	c.changed()
}

// Cancel ends an active gesture without a final update.
func (c *Controller) Cancel() {
	if c.drag != nil {
		c.release()
		c.changed()
	}
}

func (c *Controller) release() {
	for _, s := range c.subs {
		s.Unsubscribe()
	}
	c.subs = nil
	c.drag = nil
}

// apply writes the geometry for pointer position e into the model.
func (c *Controller) apply(d DragState, e events.PointerEvent) {
	g := c.ws.Geometry()
	delta := d.Delta(geom.Point{X: e.X, Y: e.Y})
	unsnapped := e.Mods.Has(events.Alt)
	s := d.Snapshot

	_ = c.ws.Update(d.BlockID, func(b *sheet.Block) {
		if c.variant == VariantFreeform {
			if !s.HasFree {
				return
			}
			var f sheet.FreeLayout
			if d.Kind == DragMove {
				f = MoveFree(s, delta, g, unsnapped)
			} else {
				f = ResizeFree(s, d.Kind, delta, g, unsnapped)
			}
			b.Free = &f
			return
		}

		cols := g.ColumnsDelta(delta.X)
		switch d.Kind {
		case DragMove:
			b.GridStart = MoveColumns(s, cols, g.Columns)
		case DragResizeRight:
			b.GridSpan = ResizeRight(s, cols, g.Columns)
		case DragResizeLeft:
			if start, span, ok := ResizeLeft(s, cols, g.Columns); ok {
				b.GridStart, b.GridSpan = start, span
			}
		case DragResizeBottom:
			b.MarginBottom = ResizeBottom(s, delta.Y)
		}
	})
}

// renderedStart returns the column a block currently occupies.
func (c *Controller) renderedStart(id string) int {
	if c.variant == VariantFreeform {
		return 1
	}
	for _, p := range c.Pages() {
		for _, row := range paginate.PackRows(p.Blocks, c.ws.Columns, c.heights) {
			for i, b := range row.Blocks {
				if b.ID == id {
					return row.Starts[i]
				}
			}
		}
	}
	return 1
}

// Close releases any listeners held by an active gesture.
func (c *Controller) Close() { c.release() }

// =============================================================================
// Model operations
// =============================================================================

// Pages recomputes the pages of the current model.
func (c *Controller) Pages() []paginate.Page {
	return paginate.PaginateWorksheet(c.ws, c.heights)
}

// Layout returns the serializable geometry of the current model.
func (c *Controller) Layout() layout.Layout {
	return layout.Build(c.ws, c.Pages(), c.heights)
}

// OutOfBounds reports whether the block extends past the content area.
func (c *Controller) OutOfBounds(id string) bool {
	l := c.Layout()
	b, _, ok := l.Find(id)
	return ok && b.OutOfBounds
}

// Reorder moves a block in front of beforeID (empty appends).
func (c *Controller) Reorder(id, beforeID string) error {
	if err := c.ws.MoveBefore(id, beforeID); err != nil {
		return err
	}
	c.changed()
	return nil
}

// Drop inserts a block from a palette drag. Freeform blocks are auto-placed.
func (c *Controller) Drop(p sheet.DropPayload) (sheet.Block, error) {
	b, err := c.ws.Drop(p)
	if err != nil {
		return sheet.Block{}, err
	}
	if c.variant == VariantFreeform {
		paginate.AutoPlace(c.ws.Blocks, c.ws.Geometry())
		b, _ = c.ws.Block(b.ID)
	}
	c.selected = b.ID
	c.changed()
	return b, nil
}

// Delete removes a block and clears selection state that referenced it.
func (c *Controller) Delete(id string) error {
	if err := c.ws.Delete(id); err != nil {
		return err
	}
	if c.selected == id {
		c.selected = ""
	}
	if c.hovered == id {
		c.hovered = ""
	}
	c.heights.Delete(id)
	c.changed()
	return nil
}

// CommitReadingOrder stores the computed reading order of a freeform sheet.
func (c *Controller) CommitReadingOrder() {
	c.ws.CommitReadingOrder()
	c.changed()
}

func (c *Controller) changed() {
	if c.onChange != nil {
		c.onChange(c.ws)
	}
}
