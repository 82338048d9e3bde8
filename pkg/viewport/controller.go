package viewport

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/folio/pkg/events"
	"github.com/matzehuels/folio/pkg/geom"
	"github.com/matzehuels/folio/pkg/observability"
)

// Viewport owns the transform of one infinite canvas. It subscribes to wheel
// and key events for its lifetime and to pointer move/up only while a manual
// pan is active. It is not safe for concurrent use.
type Viewport struct {
	state  State
	opts   Options
	width  float64
	height float64

	contentW float64
	contentH float64

	src      events.Source
	subs     []events.Subscription
	panSubs  []events.Subscription
	pan      *panState
	space    bool
	onChange func(State)
	logger   *log.Logger
}

type panState struct {
	pointer geom.Point
	origin  State
	started time.Time
}

// Option configures a Viewport.
type Option func(*Viewport)

// WithOptions sets zoom bounds and sensitivities.
func WithOptions(o Options) Option {
	return func(v *Viewport) { v.opts = o.Normalize() }
}

// WithState sets the initial transform.
func WithState(s State) Option {
	return func(v *Viewport) { v.state = s }
}

// WithOnChange sets a callback invoked after every transform change.
func WithOnChange(fn func(State)) Option {
	return func(v *Viewport) { v.onChange = fn }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(v *Viewport) {
		if l != nil {
			v.logger = l
		}
	}
}

// New creates a viewport of the given screen size and subscribes it to
// wheel and key events from src.
func New(src events.Source, width, height float64, opts ...Option) *Viewport {
	v := &Viewport{
		opts:   DefaultOptions(),
		width:  width,
		height: height,
		src:    src,
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.state.Zoom == 0 {
		v.state.Zoom = v.opts.DefaultZoom
	}
	v.state.Zoom = v.opts.ClampZoom(v.state.Zoom)
	if math.IsNaN(v.state.X) || math.IsNaN(v.state.Y) {
		v.state.X, v.state.Y = 0, 0
	}
	v.subs = append(v.subs,
		src.OnWheel(func(e events.WheelEvent) { v.HandleWheel(e) }),
		src.OnKey(func(e events.KeyEvent) { v.HandleKey(e) }),
	)
	return v
}

// State returns the current transform.
func (v *Viewport) State() State { return v.state }

// Options returns the active options.
func (v *Viewport) Options() Options { return v.opts }

// Size returns the viewport size in screen pixels.
func (v *Viewport) Size() (w, h float64) { return v.width, v.height }

// Resize updates the viewport size.
func (v *Viewport) Resize(w, h float64) { v.width, v.height = w, h }

// SetContentSize records the canvas content size used by Ctrl+0 fitting.
func (v *Viewport) SetContentSize(w, h float64) { v.contentW, v.contentH = w, h }

func (v *Viewport) set(s State) {
	v.state = s
	if v.onChange != nil {
		v.onChange(s)
	}
}

// HandleWheel applies a wheel event and reports whether the default browser
// behavior must be prevented, which is always the case.
func (v *Viewport) HandleWheel(e events.WheelEvent) bool {
	if math.IsNaN(e.DeltaX) || math.IsNaN(e.DeltaY) {
		return true
	}
	if e.Mods.ZoomGesture() {
		sens := v.opts.WheelSensitivity
		if math.Abs(e.DeltaY) < v.opts.PinchThreshold {
			sens = v.opts.PinchSensitivity
		}
		z := v.opts.ClampZoom(v.state.Zoom * (1 - e.DeltaY*sens))
		v.set(ZoomAt(v.state, e.X, e.Y, z))
		return true
	}

	dx, dy := e.DeltaX, e.DeltaY
	if e.Mods.Has(events.Shift) {
		dx, dy = dy, dx
	}
	v.set(State{X: v.state.X - dx, Y: v.state.Y - dy, Zoom: v.state.Zoom})
	return true
}

// HandleKey applies a key event and reports whether it was consumed. Space
// toggles pan mode; Ctrl/Cmd with "=" or "+", "-" and "0" zoom in, zoom out
// and fit.
func (v *Viewport) HandleKey(e events.KeyEvent) bool {
	if e.Key == " " {
		v.space = e.Down
		return true
	}
	if !e.Down || !e.Mods.ZoomGesture() {
		return false
	}
	switch e.Key {
	case "=", "+":
		v.ZoomIn()
	case "-":
		v.ZoomOut()
	case "0":
		v.Fit(v.contentW, v.contentH)
	default:
		return false
	}
	return true
}

// SpaceHeld reports whether pan mode is active.
func (v *Viewport) SpaceHeld() bool { return v.space }

// PointerDown starts a manual pan on a middle-button press or while Space
// is held, and reports whether it did.
func (v *Viewport) PointerDown(e events.PointerEvent) bool {
	if v.pan != nil {
		return false
	}
	if e.Button != events.ButtonMiddle && !v.space {
		return false
	}
	v.pan = &panState{pointer: geom.Point{X: e.X, Y: e.Y}, origin: v.state, started: time.Now()}
	v.panSubs = append(v.panSubs,
		v.src.OnPointerMove(v.panMove),
		v.src.OnPointerUp(v.panEnd),
	)
	observability.Gesture().OnGestureStart(context.Background(), "viewport", "pan")
	return true
}

// Panning reports whether a manual pan is active.
func (v *Viewport) Panning() bool { return v.pan != nil }

func (v *Viewport) panMove(e events.PointerEvent) {
	if v.pan == nil {
		return
	}
	v.set(State{
		X:    v.pan.origin.X + (e.X - v.pan.pointer.X),
		Y:    v.pan.origin.Y + (e.Y - v.pan.pointer.Y),
		Zoom: v.state.Zoom,
	})
}

func (v *Viewport) panEnd(e events.PointerEvent) {
	v.panMove(e)
	p := v.pan
	for _, s := range v.panSubs {
		s.Unsubscribe()
	}
	v.panSubs = nil
	v.pan = nil
	if p != nil {
		observability.Gesture().OnGestureEnd(context.Background(), "viewport", "pan", time.Since(p.started))
		v.logger.Debug("pan end", "x", v.state.X, "y", v.state.Y)
	}
}

// center returns the viewport center in screen pixels.
func (v *Viewport) center() (float64, float64) { return v.width / 2, v.height / 2 }

// SetZoom zooms to z anchored at the viewport center.
func (v *Viewport) SetZoom(z float64) {
	cx, cy := v.center()
	v.set(ZoomAt(v.state, cx, cy, v.opts.ClampZoom(z)))
}

// ZoomIn increases the zoom by one step.
func (v *Viewport) ZoomIn() { v.SetZoom(v.state.Zoom + v.opts.ZoomStep) }

// ZoomOut decreases the zoom by one step.
func (v *Viewport) ZoomOut() { v.SetZoom(v.state.Zoom - v.opts.ZoomStep) }

// Fit resets the zoom to the default and centers content of the given
// canvas size in the viewport.
func (v *Viewport) Fit(contentW, contentH float64) {
	z := v.opts.DefaultZoom
	v.set(State{
		X:    (v.width - contentW*z) / 2,
		Y:    (v.height - contentH*z) / 2,
		Zoom: z,
	})
}

// ScreenToCanvas maps a screen point to canvas coordinates.
func (v *Viewport) ScreenToCanvas(p geom.Point) geom.Point { return v.state.ScreenToCanvas(p) }

// CanvasToScreen maps a canvas point to screen coordinates.
func (v *Viewport) CanvasToScreen(p geom.Point) geom.Point { return v.state.CanvasToScreen(p) }

// Transform returns the CSS transform of the current state.
func (v *Viewport) Transform() string {
	f := func(x float64) string { return strconv.FormatFloat(x, 'f', -1, 64) }
	return fmt.Sprintf("translate(%spx, %spx) scale(%s)", f(v.state.X), f(v.state.Y), f(v.state.Zoom))
}

// Close releases all event subscriptions.
func (v *Viewport) Close() {
	for _, s := range append(v.subs, v.panSubs...) {
		s.Unsubscribe()
	}
	v.subs, v.panSubs, v.pan = nil, nil, nil
}
