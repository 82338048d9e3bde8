package sink

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/folio/pkg/layout"
	"github.com/matzehuels/folio/pkg/observability"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// Formats lists the supported formats.
func Formats() []string { return []string{FormatJSON, FormatSVG, FormatPNG} }

// ValidFormat reports whether f is a supported format.
func ValidFormat(f string) bool {
	switch f {
	case FormatJSON, FormatSVG, FormatPNG:
		return true
	}
	return false
}

// Options are passed through to the individual sinks.
type Options struct {
	SVG []SVGOption
	PNG []PNGOption
}

// Render produces every requested format concurrently. The first error
// cancels the remaining work.
func Render(ctx context.Context, l layout.Layout, formats []string, opts ...Options) (map[string][]byte, error) {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	for _, f := range formats {
		if !ValidFormat(f) {
			return nil, fmt.Errorf("unsupported format %q", f)
		}
	}

	start := time.Now()
	observability.Layout().OnRenderStart(ctx, formats)

	var mu sync.Mutex
	out := make(map[string][]byte, len(formats))
	g, gctx := errgroup.WithContext(ctx)
	for _, f := range formats {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := renderOne(l, f, o)
			if err != nil {
				return fmt.Errorf("render %s: %w", f, err)
			}
			mu.Lock()
			out[f] = data
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()
	observability.Layout().OnRenderComplete(ctx, formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func renderOne(l layout.Layout, format string, o Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return RenderJSON(l)
	case FormatSVG:
		return RenderSVG(l, o.SVG...), nil
	default:
		return RenderPNG(l, o.PNG...)
	}
}
