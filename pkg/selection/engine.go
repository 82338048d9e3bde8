package selection

import (
	"context"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/folio/pkg/events"
	"github.com/matzehuels/folio/pkg/geom"
	"github.com/matzehuels/folio/pkg/observability"
)

// DefaultThreshold is the size in pixels a lasso must exceed on both axes
// to count as a drag.
const DefaultThreshold = 10.0

// Provider returns the current selectable elements.
type Provider func() []Element

// Engine drives lasso and click selection from an event source. It is not
// safe for concurrent use.
type Engine struct {
	src       events.Source
	elements  Provider
	threshold float64
	onChange  func([]string)
	logger    *log.Logger

	sel   Set
	lasso *lasso
	subs  []events.Subscription
}

type lasso struct {
	start, end geom.Point
	startedAt  time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithThreshold overrides the minimum lasso size.
func WithThreshold(px float64) Option {
	return func(e *Engine) {
		if px >= 0 {
			e.threshold = px
		}
	}
}

// WithOnChange sets the callback receiving the selection after it changes.
func WithOnChange(fn func([]string)) Option {
	return func(e *Engine) { e.onChange = fn }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates an idle engine.
func NewEngine(src events.Source, elements Provider, opts ...Option) *Engine {
	e := &Engine{
		src:       src,
		elements:  elements,
		threshold: DefaultThreshold,
		logger:    log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Selection returns the selected ids in selection order.
func (e *Engine) Selection() []string { return e.sel.IDs() }

// Has reports whether id is selected.
func (e *Engine) Has(id string) bool { return e.sel.Has(id) }

// Active reports whether a lasso is being drawn.
func (e *Engine) Active() bool { return e.lasso != nil }

// Rect returns the current lasso rectangle for rendering.
func (e *Engine) Rect() (geom.Rect, bool) {
	if e.lasso == nil {
		return geom.Rect{}, false
	}
	return geom.RectFromPoints(e.lasso.start, e.lasso.end), true
}

// Click handles a primary click on an element. With Ctrl or Meta held the
// element is toggled, otherwise it becomes the only selection.
func (e *Engine) Click(id string, mods events.Modifiers) {
	if mods.ZoomGesture() {
		e.Toggle(id)
		return
	}
	e.Replace([]string{id})
}

// Toggle flips id in the selection.
func (e *Engine) Toggle(id string) {
	e.sel.Toggle(id)
	e.changed()
}

// Replace sets the selection.
func (e *Engine) Replace(ids []string) {
	if slices.Equal(ids, e.sel.IDs()) {
		return
	}
	e.sel.Replace(ids)
	e.changed()
}

// Clear empties the selection.
func (e *Engine) Clear() {
	if e.sel.Len() == 0 {
		return
	}
	e.sel.Clear()
	e.changed()
}

// Prune drops selected ids that are no longer among the elements.
func (e *Engine) Prune() {
	live := make(map[string]bool)
	for _, el := range e.elements() {
		live[el.ID] = true
	}
	n := e.sel.Len()
	e.sel.Retain(func(id string) bool { return live[id] })
	if e.sel.Len() != n {
		e.changed()
	}
}

// PointerDown starts a lasso when the pointer is over empty canvas. It
// reports whether a lasso started.
func (e *Engine) PointerDown(ev events.PointerEvent) bool {
	if e.lasso != nil || ev.Target != "" || ev.Button != events.ButtonPrimary {
		return false
	}
	p := geom.Point{X: ev.X, Y: ev.Y}
	e.lasso = &lasso{start: p, end: p, startedAt: time.Now()}
	e.subs = append(e.subs,
		e.src.OnPointerMove(e.pointerMove),
		e.src.OnPointerUp(e.pointerUp),
	)
	observability.Gesture().OnGestureStart(context.Background(), "selection", "lasso")
	return true
}

func (e *Engine) pointerMove(ev events.PointerEvent) {
	if e.lasso != nil {
		e.lasso.end = geom.Point{X: ev.X, Y: ev.Y}
	}
}

func (e *Engine) pointerUp(ev events.PointerEvent) {
	l := e.lasso
	if l == nil {
		return
	}
	l.end = geom.Point{X: ev.X, Y: ev.Y}
	e.release()

	r := geom.RectFromPoints(l.start, l.end)
	if r.W > e.threshold && r.H > e.threshold {
		ids := HitTest(r, e.elements())
		e.logger.Debug("lasso", "rect", r, "hits", len(ids))
		e.Replace(ids)
	} else {
		e.Clear()
	}
	observability.Gesture().OnGestureEnd(context.Background(), "selection", "lasso", time.Since(l.startedAt))
}

// Cancel abandons an active lasso without changing the selection.
func (e *Engine) Cancel() { e.release() }

// Close releases all listeners.
func (e *Engine) Close() { e.release() }

func (e *Engine) release() {
	for _, s := range e.subs {
		s.Unsubscribe()
	}
	e.subs = nil
	e.lasso = nil
}

func (e *Engine) changed() {
	if e.onChange != nil {
		e.onChange(e.sel.IDs())
	}
}
