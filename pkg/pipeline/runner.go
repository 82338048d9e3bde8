package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/folio/pkg/cache"
	"github.com/matzehuels/folio/pkg/layout"
	"github.com/matzehuels/folio/pkg/paginate"
	"github.com/matzehuels/folio/pkg/sheet"
	"github.com/matzehuels/folio/pkg/workbook"
)

// Runner encapsulates pipeline execution with caching. Both CLI and API use
// it so that they share cache keys.
//
// The Runner holds no pipeline results; multiple goroutines can use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs layout → render for a worksheet with caching.
func (r *Runner) Execute(ctx context.Context, ws *sheet.Worksheet, heights *paginate.Heights, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	layoutStart := time.Now()
	l, layoutHit, err := r.LayoutWithCacheInfo(ctx, ws, heights, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result := &Result{Layout: l, Stats: statsFor(l)}
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit
	if data, err := layout.Marshal(l); err == nil {
		result.LayoutHash = cache.Hash(data)
	}

	r.Logger.Info("computed layout",
		"pages", result.Stats.Pages,
		"blocks", result.Stats.Blocks,
		"out_of_bounds", result.Stats.OutOfBounds,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo computes a worksheet layout with caching and returns
// cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, ws *sheet.Worksheet, heights *paginate.Heights, opts Options) (layout.Layout, bool, error) {
	wsHash, err := cache.HashJSON(ws)
	if err != nil {
		return layout.Layout{}, false, fmt.Errorf("hash worksheet: %w", err)
	}
	var keyOpts cache.LayoutKeyOpts
	if heights != nil {
		if keyOpts.HeightsHash, err = cache.HashJSON(heights.Snapshot()); err != nil {
			return layout.Layout{}, false, fmt.Errorf("hash heights: %w", err)
		}
	}
	key := r.Keyer.LayoutKey(wsHash, keyOpts)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if cached, err := layout.Unmarshal(data); err == nil {
				r.Logger.Debug("layout cache hit", "worksheet", ws.ID)
				return cached, true, nil
			}
		}
	}

	l := ComputeLayout(ctx, ws, heights)
	if data, err := layout.Marshal(l); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLLayout); err != nil {
			r.Logger.Warn("cache write failed", "key", key, "error", err)
		}
	}
	return l, false, nil
}

// Layout is a convenience wrapper that discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, ws *sheet.Worksheet, heights *paginate.Heights) (layout.Layout, error) {
	l, _, err := r.LayoutWithCacheInfo(ctx, ws, heights, Options{})
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit
// info. The hit flag is set only when every format came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	layoutData, err := layout.Marshal(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	rendered, err := RenderLayout(ctx, l, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, key, data, cache.TTLArtifact)
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// ComposeWithCacheInfo composes a workbook preview with caching and returns
// cache hit info.
func (r *Runner) ComposeWithCacheInfo(ctx context.Context, wb *workbook.Workbook, opts Options) (workbook.Composition, bool, error) {
	hash, err := cache.HashJSON(struct {
		Pages    []workbook.Page    `json:"pages"`
		Chapters []workbook.Chapter `json:"chapters"`
	}{wb.Pages, wb.Chapters})
	if err != nil {
		return workbook.Composition{}, false, fmt.Errorf("hash workbook: %w", err)
	}
	key := r.Keyer.CompositionKey(hash, cache.CompositionKeyOpts{PageLimit: wb.EffectiveLimit()})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var comp workbook.Composition
			if err := json.Unmarshal(data, &comp); err == nil {
				comp.WorkbookID = wb.ID
				return comp, true, nil
			}
		}
	}

	comp := wb.Compose(ctx)
	if data, err := json.Marshal(comp); err == nil {
		_ = r.Cache.Set(ctx, key, data, cache.TTLComposition)
	}
	r.Logger.Debug("composed workbook",
		"pages", comp.PageCount,
		"rows", len(comp.Rows),
		"spreads", comp.Spreads)
	return comp, false, nil
}

// Compose is a convenience wrapper that discards the cache hit info.
func (r *Runner) Compose(ctx context.Context, wb *workbook.Workbook) (workbook.Composition, error) {
	comp, _, err := r.ComposeWithCacheInfo(ctx, wb, Options{})
	return comp, err
}

// OutlineWithCacheInfo renders a workbook outline with caching and returns
// cache hit info.
func (r *Runner) OutlineWithCacheInfo(ctx context.Context, wb *workbook.Workbook, opts Options) ([]byte, bool, error) {
	if err := opts.ValidateForOutline(); err != nil {
		return nil, false, err
	}
	hash, err := cache.HashJSON(struct {
		Title    string             `json:"title"`
		Pages    []workbook.Page    `json:"pages"`
		Chapters []workbook.Chapter `json:"chapters"`
	}{wb.Title, wb.Pages, wb.Chapters})
	if err != nil {
		return nil, false, fmt.Errorf("hash workbook: %w", err)
	}
	key := r.Keyer.OutlineKey(hash, opts.OutlineKeyOpts(wb.Settings.ShowChapterColors))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			return data, true, nil
		}
	}

	data, err := RenderOutline(ctx, wb, opts)
	if err != nil {
		return nil, false, err
	}
	_ = r.Cache.Set(ctx, key, data, cache.TTLOutline)
	return data, false, nil
}

// Outline is a convenience wrapper that discards the cache hit info.
func (r *Runner) Outline(ctx context.Context, wb *workbook.Workbook, opts Options) ([]byte, error) {
	data, _, err := r.OutlineWithCacheInfo(ctx, wb, opts)
	return data, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
