package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/folio/pkg/layout"
	"github.com/matzehuels/folio/pkg/render/outline"
	"github.com/matzehuels/folio/pkg/render/sink"
	"github.com/matzehuels/folio/pkg/workbook"
)

// RenderLayout generates output artifacts in the requested formats.
func RenderLayout(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	return sink.Render(ctx, l, opts.Formats, opts.sinkOptions())
}

// RenderOutline generates the chapter outline of a workbook.
func RenderOutline(ctx context.Context, wb *workbook.Workbook, opts Options) ([]byte, error) {
	if err := opts.ValidateForOutline(); err != nil {
		return nil, err
	}
	dot := outline.ToDOT(wb, outline.Options{Spreads: opts.Spreads, Detailed: opts.Detailed})

	switch opts.OutlineFormat {
	case FormatDOT:
		return []byte(dot), nil
	case FormatPNG:
		return outline.RenderPNG(ctx, dot)
	case FormatSVG:
		return outline.RenderSVG(ctx, dot)
	default:
		return nil, fmt.Errorf("unsupported outline format: %s", opts.OutlineFormat)
	}
}
