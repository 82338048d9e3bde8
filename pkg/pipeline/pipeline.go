// Package pipeline provides the cached layout → render pipeline for folio.
//
// This package implements the worksheet layout, workbook composition and
// rendering stages shared by the CLI and the HTTP service. Centralizing
// them keeps cache keys and defaults identical across entry points.
//
// # Architecture
//
// A worksheet passes through two stages:
//
//  1. Layout: paginate blocks and compute their page geometry
//  2. Render: produce artifacts (JSON, SVG, PNG) from the layout
//
// Workbooks have their own stages: Compose builds the preview rows and
// Outline renders the chapter diagram.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, ws, heights, pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	})
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	l, err := runner.Layout(ctx, ws, heights)
//	artifacts, err := runner.Render(ctx, l, opts)
//	comp, err := runner.Compose(ctx, wb)
//	svg, err := runner.Outline(ctx, wb, opts)
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/folio/pkg/cache"
	"github.com/matzehuels/folio/pkg/layout"
	"github.com/matzehuels/folio/pkg/render/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultScale is the PNG raster scale.
	DefaultScale = 1.0

	// MaxScale bounds PNG rasterization.
	MaxScale = 4.0

	// DefaultPageGap is the gap between pages in multi-page artifacts.
	DefaultPageGap = sink.DefaultPageGap
)

// Format constants for output formats.
const (
	FormatSVG  = sink.FormatSVG
	FormatPNG  = sink.FormatPNG
	FormatJSON = sink.FormatJSON
	FormatDOT  = "dot"
)

// DefaultFormat is the default artifact format.
const DefaultFormat = FormatSVG

// ValidFormats is the set of supported worksheet artifact formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// ValidOutlineFormats is the set of supported outline formats.
var ValidOutlineFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatDOT: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains render configuration. It supports JSON serialization for
// API requests.
type Options struct {
	// Worksheet render options
	Formats      []string `json:"formats,omitempty"`
	Scale        float64  `json:"scale,omitempty"`
	Page         int      `json:"page,omitempty"`
	ColumnGuides bool     `json:"columnGuides,omitempty"`
	Selected     []string `json:"selected,omitempty"`

	// Outline options
	OutlineFormat string `json:"outlineFormat,omitempty"`
	Spreads       bool   `json:"spreads,omitempty"`
	Detailed      bool   `json:"detailed,omitempty"`

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the paginated worksheet geometry.
	Layout layout.Layout

	// LayoutHash is the content hash of the layout.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Pages       int
	Blocks      int
	OutOfBounds int
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool // all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateOutlineFormat checks that an outline format is valid.
func ValidateOutlineFormat(format string) error {
	if !ValidOutlineFormats[format] {
		return fmt.Errorf("invalid outline format: %q (must be one of: svg, png, dot)", format)
	}
	return nil
}

// ParseFormats splits a comma-separated format list, as used by the CLI and
// the ?format= query parameter.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(strings.ToLower(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and validates every option. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetRenderDefaults()
	o.SetOutlineDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	if err := ValidateOutlineFormat(o.OutlineFormat); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Scale > MaxScale {
		o.Scale = MaxScale
	}
	if o.Page < 0 {
		o.Page = 0
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// SetOutlineDefaults sets default values for outline rendering.
func (o *Options) SetOutlineDefaults() {
	if o.OutlineFormat == "" {
		o.OutlineFormat = FormatSVG
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForOutline validates and sets defaults for outline rendering.
func (o *Options) ValidateForOutline() error {
	o.SetOutlineDefaults()
	return ValidateOutlineFormat(o.OutlineFormat)
}

// ArtifactKeyOpts returns cache key options for one artifact. Selection and
// guides change the SVG, so they are folded into the format component.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatPNG:
		k.Scale = o.Scale
		if o.Page > 0 {
			k.Format = fmt.Sprintf("%s:p%d", format, o.Page)
		}
	case FormatSVG:
		if o.ColumnGuides {
			k.Format += ":guides"
		}
		if len(o.Selected) > 0 {
			k.Format += ":sel=" + strings.Join(o.Selected, ",")
		}
	}
	return k
}

// OutlineKeyOpts returns cache key options for an outline.
func (o *Options) OutlineKeyOpts(chapterColors bool) cache.OutlineKeyOpts {
	format := o.OutlineFormat
	if o.Spreads {
		format += ":spreads"
	}
	if o.Detailed {
		format += ":detailed"
	}
	return cache.OutlineKeyOpts{Format: format, ChapterColors: chapterColors}
}

// sinkOptions translates Options into per-sink options.
func (o *Options) sinkOptions() sink.Options {
	so := sink.Options{
		PNG: []sink.PNGOption{sink.WithScale(o.Scale)},
	}
	if o.Page > 0 {
		so.PNG = append(so.PNG, sink.WithPage(o.Page))
	}
	if o.ColumnGuides {
		so.SVG = append(so.SVG, sink.WithColumnGuides())
	}
	if len(o.Selected) > 0 {
		so.SVG = append(so.SVG, sink.WithSelection(o.Selected...))
	}
	return so
}
