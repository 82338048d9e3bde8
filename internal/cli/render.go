package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/folio/pkg/layout"
	"github.com/matzehuels/folio/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string
	formats string
	heights string
	noCache bool
	opts    pipeline.Options
}

// renderCommand creates the render command. It accepts either a worksheet
// (paginated first) or a layout.json written by the layout command.
func (c *CLI) renderCommand() *cobra.Command {
	var ro renderOpts

	cmd := &cobra.Command{
		Use:   "render [worksheet.json|file.layout.json]",
		Short: "Render a worksheet or layout to SVG, PNG or JSON",
		Long: `Render a worksheet or layout to SVG, PNG or JSON.

Inputs ending in .layout.json are rendered as-is; anything else is read as a
worksheet and paginated first. SVG output places all pages side by side; PNG
output rasterizes all pages, or a single page with --page.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ro.opts.Formats = pipeline.ParseFormats(ro.formats)
			if err := ro.opts.ValidateForRender(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], ro)
		},
	}

	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&ro.formats, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	cmd.Flags().StringVar(&ro.heights, "heights", "", "JSON file of measured block heights (worksheet input)")
	cmd.Flags().Float64Var(&ro.opts.Scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().IntVar(&ro.opts.Page, "page", 0, "render only this page (PNG)")
	cmd.Flags().BoolVar(&ro.opts.ColumnGuides, "guides", false, "draw grid column guides")
	cmd.Flags().StringSliceVar(&ro.opts.Selected, "select", nil, "block ids to highlight")
	cmd.Flags().BoolVar(&ro.opts.Refresh, "refresh", false, "re-render even when cached")
	cmd.Flags().BoolVar(&ro.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, ro renderOpts) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, ro.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(logger)
	l, layoutHit, err := c.loadLayout(ctx, runner, input, ro)
	if err != nil {
		return err
	}
	if ro.opts.Page > len(l.Pages) {
		return fmt.Errorf("page %d out of range (layout has %d pages)", ro.opts.Page, len(l.Pages))
	}

	spinner := newSpinnerWithContext(ctx, "Rendering "+strings.Join(ro.opts.Formats, ", ")+"...")
	spinner.Start()
	artifacts, renderHit, err := runner.RenderWithCacheInfo(ctx, l, ro.opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %d artifact(s)", len(artifacts)))

	paths, err := writeArtifacts(artifacts, input, ro.output)
	if err != nil {
		return err
	}

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(len(l.Pages), l.BlockCount(), len(l.OutOfBounds()), layoutHit && renderHit)
	return nil
}

// loadLayout reads a layout file or paginates a worksheet.
func (c *CLI) loadLayout(ctx context.Context, runner *pipeline.Runner, input string, ro renderOpts) (layout.Layout, bool, error) {
	if strings.HasSuffix(input, ".layout.json") {
		l, err := layout.ReadFile(input)
		if err != nil {
			return layout.Layout{}, false, fmt.Errorf("load layout %s: %w", input, err)
		}
		return l, true, nil
	}
	ws, heights, err := pipeline.LoadWorksheet(input, ro.heights)
	if err != nil {
		return layout.Layout{}, false, fmt.Errorf("load worksheet %s: %w", input, err)
	}
	l, hit, err := runner.LayoutWithCacheInfo(ctx, ws, heights, pipeline.Options{Refresh: ro.opts.Refresh})
	if err != nil {
		return layout.Layout{}, false, fmt.Errorf("compute layout: %w", err)
	}
	return l, hit, nil
}

// writeArtifacts writes each artifact next to input (or at output) and
// returns the written paths in format order.
func writeArtifacts(artifacts map[string][]byte, input, output string) ([]string, error) {
	formats := make([]string, 0, len(artifacts))
	for f := range artifacts {
		formats = append(formats, f)
	}
	sort.Strings(formats)

	var paths []string
	for _, f := range formats {
		path := outputPath(input, output, f, len(formats) == 1)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// outputPath returns output unchanged for a single artifact with an explicit
// path; otherwise it derives "<base>.<format>". JSON artifacts get the
// ".layout.json" suffix so they can be fed back into render.
func outputPath(input, output, format string, single bool) string {
	if single && output != "" && filepath.Ext(output) != "" {
		return output
	}
	base := basePath(output, input)
	if format == pipeline.FormatJSON {
		return base + ".layout.json"
	}
	return base + "." + format
}
