package paginate

import (
	"math"
	"sync"

	"github.com/matzehuels/folio/pkg/sheet"
)

// Heights caches measured block heights keyed by block id. Measurements
// typically arrive from a layout observer on another goroutine, so all
// methods are safe for concurrent use. A nil *Heights reads as an empty
// cache.
type Heights struct {
	mu     sync.RWMutex
	values map[string]float64
	subs   map[int]func(id string, height float64)
	nextID int
}

// NewHeights returns an empty cache.
func NewHeights() *Heights {
	return &Heights{
		values: make(map[string]float64),
		subs:   make(map[int]func(string, float64)),
	}
}

// HeightsFrom returns a cache pre-filled with the given measurements.
func HeightsFrom(m map[string]float64) *Heights {
	h := NewHeights()
	for id, v := range m {
		h.values[id] = sanitizeHeight(v)
	}
	return h
}

func sanitizeHeight(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// Set records a measurement and reports whether it changed. Subscribers are
// notified of changes after the lock is released.
func (h *Heights) Set(id string, height float64) bool {
	height = sanitizeHeight(height)
	h.mu.Lock()
	old, ok := h.values[id]
	if ok && old == height {
		h.mu.Unlock()
		return false
	}
	h.values[id] = height
	subs := make([]func(string, float64), 0, len(h.subs))
	for _, fn := range h.subs {
		subs = append(subs, fn)
	}
	h.mu.Unlock()

	for _, fn := range subs {
		fn(id, height)
	}
	return true
}

// Lookup returns the measured height of a block id.
func (h *Heights) Lookup(id string) (float64, bool) {
	if h == nil {
		return 0, false
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	v, ok := h.values[id]
	return v, ok
}

// Get returns the measured height of b, or the type default when b has not
// been measured.
func (h *Heights) Get(b sheet.Block) float64 {
	if v, ok := h.Lookup(b.ID); ok {
		return v
	}
	return sheet.DefaultHeight(b.Type)
}

// Delete forgets a measurement.
func (h *Heights) Delete(id string) {
	h.mu.Lock()
	delete(h.values, id)
	h.mu.Unlock()
}

// Len returns the number of measured blocks.
func (h *Heights) Len() int {
	if h == nil {
		return 0
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.values)
}

// Snapshot returns a copy of all measurements.
func (h *Heights) Snapshot() map[string]float64 {
	out := make(map[string]float64)
	if h == nil {
		return out
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, v := range h.values {
		out[id] = v
	}
	return out
}

// Subscribe registers fn to be called after every changed measurement and
// returns a function that removes it.
func (h *Heights) Subscribe(fn func(id string, height float64)) (unsubscribe func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
		})
	}
}
