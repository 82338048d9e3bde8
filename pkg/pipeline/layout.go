package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/folio/pkg/layout"
	"github.com/matzehuels/folio/pkg/observability"
	"github.com/matzehuels/folio/pkg/paginate"
	"github.com/matzehuels/folio/pkg/sheet"
)

// =============================================================================
// Layout Generation
// =============================================================================

// ComputeLayout paginates a worksheet and returns its page geometry. The
// worksheet is normalized on a copy first, so malformed spans and positions
// are clamped rather than rejected.
func ComputeLayout(ctx context.Context, ws *sheet.Worksheet, heights *paginate.Heights) layout.Layout {
	start := time.Now()
	work := ws.Clone()
	work.Normalize()
	if work.Mode == sheet.ModeFreeform {
		paginate.AutoPlace(work.Blocks, work.Geometry())
	}

	pages := paginate.PaginateWorksheet(work, heights)
	l := layout.Build(work, pages, heights)
	observability.Layout().OnPaginate(ctx, string(work.Mode), len(work.Blocks), len(pages), time.Since(start))
	return l
}

// statsFor fills the size fields of Stats from a layout.
func statsFor(l layout.Layout) Stats {
	return Stats{
		Pages:       len(l.Pages),
		Blocks:      l.BlockCount(),
		OutOfBounds: len(l.OutOfBounds()),
	}
}
