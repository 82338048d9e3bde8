// Package events is the pointer and keyboard event source injected into
// interactive components.
//
// Gestures subscribe to move and up events when they begin and unsubscribe
// when they end, so no listener outlives the gesture that registered it.
// A [Bus] is the in-process implementation; hosts feed it from their own
// input loop, tests drive it directly.
//
//	bus := events.NewBus()
//	sub := bus.OnPointerMove(func(e events.PointerEvent) { ... })
//	bus.EmitPointerMove(events.PointerEvent{X: 10, Y: 20})
//	sub.Unsubscribe()
package events

import "strings"

// Modifiers is a bitset of held modifier keys.
type Modifiers uint8

const (
	Shift Modifiers = 1 << iota
	Ctrl
	Alt
	Meta
)

// Has reports whether every modifier in m2 is held.
func (m Modifiers) Has(m2 Modifiers) bool { return m&m2 == m2 }

// ZoomGesture reports whether Ctrl or Meta (Cmd) is held.
func (m Modifiers) ZoomGesture() bool { return m&(Ctrl|Meta) != 0 }

// String returns a "+"-joined list such as "ctrl+shift".
func (m Modifiers) String() string {
	var parts []string
	for _, k := range []struct {
		m    Modifiers
		name string
	}{{Ctrl, "ctrl"}, {Meta, "meta"}, {Alt, "alt"}, {Shift, "shift"}} {
		if m.Has(k.m) {
			parts = append(parts, k.name)
		}
	}
	return strings.Join(parts, "+")
}

// Button identifies a pointer button.
type Button uint8

const (
	ButtonPrimary Button = iota
	ButtonMiddle
	ButtonSecondary
)

// PointerEvent is a pointer down, move or up. X and Y are container-relative
// screen pixels. Target is the id of the element under the pointer, empty
// over blank canvas.
type PointerEvent struct {
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	Button Button    `json:"button,omitempty"`
	Mods   Modifiers `json:"mods,omitempty"`
	Target string    `json:"target,omitempty"`
}

// WheelEvent is a wheel or trackpad scroll.
type WheelEvent struct {
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	DeltaX float64   `json:"deltaX"`
	DeltaY float64   `json:"deltaY"`
	Mods   Modifiers `json:"mods,omitempty"`
}

// KeyEvent is a key press or release. Key uses DOM key names (" " for the
// space bar, "=", "+", "-", "0", ...).
type KeyEvent struct {
	Key  string    `json:"key"`
	Down bool      `json:"down"`
	Mods Modifiers `json:"mods,omitempty"`
}

// Subscription is a registered listener.
type Subscription interface {
	// Unsubscribe removes the listener. It is safe to call more than once.
	Unsubscribe()
}

// Source delivers global pointer, wheel and key events.
type Source interface {
	OnPointerMove(fn func(PointerEvent)) Subscription
	OnPointerUp(fn func(PointerEvent)) Subscription
	OnWheel(fn func(WheelEvent)) Subscription
	OnKey(fn func(KeyEvent)) Subscription
}
