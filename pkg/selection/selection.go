package selection

import (
	"github.com/matzehuels/folio/pkg/geom"
	"github.com/matzehuels/folio/pkg/layout"
)

// Element is a selectable item with its bounds in canvas coordinates.
type Element struct {
	ID     string    `json:"id"`
	Bounds geom.Rect `json:"bounds"`
}

// HitTest returns the ids of elements whose bounds intersect r, in element
// order. Touching edges count as a hit.
func HitTest(r geom.Rect, elements []Element) []string {
	r = r.Normalize()
	var ids []string
	for _, el := range elements {
		if r.Intersects(el.Bounds.Normalize()) {
			ids = append(ids, el.ID)
		}
	}
	return ids
}

// LayoutElements converts a layout into elements, stacking pages vertically
// with pageGap pixels between them.
func LayoutElements(l layout.Layout, pageGap float64) []Element {
	var out []Element
	for i, p := range l.Pages {
		offset := float64(i) * (l.PageHeight + pageGap)
		for _, b := range p.Blocks {
			out = append(out, Element{
				ID:     b.ID,
				Bounds: geom.Rect{X: b.X, Y: b.Y + offset, W: b.Width, H: b.Height},
			})
		}
	}
	return out
}

// Set is an insertion-ordered set of ids. The zero value is empty and ready
// to use.
type Set struct {
	ids   []string
	index map[string]int
}

// NewSet returns a set holding ids.
func NewSet(ids ...string) *Set {
	s := &Set{}
	s.Replace(ids)
	return s
}

// Has reports whether id is selected.
func (s *Set) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Len returns the number of ids.
func (s *Set) Len() int { return len(s.ids) }

// IDs returns a copy of the ids in insertion order.
func (s *Set) IDs() []string { return append([]string(nil), s.ids...) }

// Add inserts id if absent.
func (s *Set) Add(id string) {
	if id == "" || s.Has(id) {
		return
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	s.index[id] = len(s.ids)
	s.ids = append(s.ids, id)
}

// Remove deletes id if present.
func (s *Set) Remove(id string) {
	i, ok := s.index[id]
	if !ok {
		return
	}
	s.ids = append(s.ids[:i], s.ids[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.ids); j++ {
		s.index[s.ids[j]] = j
	}
}

// Toggle adds id when absent and removes it when present. It reports whether
// id is selected afterwards.
func (s *Set) Toggle(id string) bool {
	if s.Has(id) {
		s.Remove(id)
		return false
	}
	s.Add(id)
	return s.Has(id)
}

// Replace sets the contents to ids, dropping duplicates.
func (s *Set) Replace(ids []string) {
	s.Clear()
	for _, id := range ids {
		s.Add(id)
	}
}

// Clear empties the set.
func (s *Set) Clear() {
	s.ids = nil
	s.index = nil
}

// Retain drops ids for which keep returns false.
func (s *Set) Retain(keep func(id string) bool) {
	ids := s.ids
	s.Clear()
	for _, id := range ids {
		if keep(id) {
			s.Add(id)
		}
	}
}
