package events

import "sync"

type kind int

const (
	kindMove kind = iota
	kindUp
	kindWheel
	kindKey
)

type listener struct {
	id   uint64
	kind kind
	fn   any
}

// Bus is an in-process [Source]. Emit calls dispatch synchronously to the
// listeners registered at the moment of the call, so handlers may
// unsubscribe (or subscribe) during dispatch.
type Bus struct {
	mu        sync.Mutex
	nextID    uint64
	listeners []listener
}

// NewBus returns an empty bus.
func NewBus() *Bus { return &Bus{} }

type subscription struct {
	bus  *Bus
	id   uint64
	once sync.Once
}

func (s *subscription) Unsubscribe() {
	s.once.Do(func() { s.bus.remove(s.id) })
}

func (b *Bus) add(k kind, fn any) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.listeners = append(b.listeners, listener{id: b.nextID, kind: k, fn: fn})
	return &subscription{bus: b, id: b.nextID}
}

func (b *Bus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, l := range b.listeners {
		if l.id == id {
			b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
			return
		}
	}
}

func (b *Bus) snapshot(k kind) []listener {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []listener
	for _, l := range b.listeners {
		if l.kind == k {
			out = append(out, l)
		}
	}
	return out
}

// live reports whether the listener is still registered. Listeners removed
// earlier in the same dispatch are skipped.
func (b *Bus) live(id uint64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, l := range b.listeners {
		if l.id == id {
			return true
		}
	}
	return false
}

func (b *Bus) OnPointerMove(fn func(PointerEvent)) Subscription { return b.add(kindMove, fn) }
func (b *Bus) OnPointerUp(fn func(PointerEvent)) Subscription   { return b.add(kindUp, fn) }
func (b *Bus) OnWheel(fn func(WheelEvent)) Subscription         { return b.add(kindWheel, fn) }
func (b *Bus) OnKey(fn func(KeyEvent)) Subscription             { return b.add(kindKey, fn) }

// EmitPointerMove dispatches a pointer move.
func (b *Bus) EmitPointerMove(e PointerEvent) {
	for _, l := range b.snapshot(kindMove) {
		if b.live(l.id) {
			l.fn.(func(PointerEvent))(e)
		}
	}
}

// EmitPointerUp dispatches a pointer up. Hosts also emit it when the pointer
// leaves the window so gestures always end.
func (b *Bus) EmitPointerUp(e PointerEvent) {
	for _, l := range b.snapshot(kindUp) {
		if b.live(l.id) {
			l.fn.(func(PointerEvent))(e)
		}
	}
}

// EmitWheel dispatches a wheel event.
func (b *Bus) EmitWheel(e WheelEvent) {
	for _, l := range b.snapshot(kindWheel) {
		if b.live(l.id) {
			l.fn.(func(WheelEvent))(e)
		}
	}
}

// EmitKey dispatches a key event.
func (b *Bus) EmitKey(e KeyEvent) {
	for _, l := range b.snapshot(kindKey) {
		if b.live(l.id) {
			l.fn.(func(KeyEvent))(e)
		}
	}
}

// Listeners returns the number of registered listeners.
func (b *Bus) Listeners() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}
