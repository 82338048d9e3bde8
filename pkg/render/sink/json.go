package sink

import "github.com/matzehuels/folio/pkg/layout"

// RenderJSON returns the layout as indented JSON.
func RenderJSON(l layout.Layout) ([]byte, error) {
	return layout.Marshal(l)
}
