package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/folio/pkg/layout"
	"github.com/matzehuels/folio/pkg/pipeline"
)

// layoutCommand creates the layout command for paginating a worksheet.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		heights string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "layout [worksheet.json]",
		Short: "Paginate a worksheet into page geometry",
		Long: `Paginate a worksheet into page geometry.

The layout command flows the worksheet's blocks onto fixed-size pages and
writes the resulting geometry to a layout.json file. Block heights are
measured by the editor; pass them with --heights as a JSON object of
block id to pixel height. Blocks without a height use their stored size.

Results are cached, keyed by the worksheet content and the heights.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], heights, output, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVar(&heights, "heights", "", "JSON file of measured block heights")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached")

	return cmd
}

// runLayout loads the worksheet, paginates it, and writes the layout.
func (c *CLI) runLayout(ctx context.Context, input, heightsPath, output string, noCache, refresh bool) error {
	ws, heights, err := pipeline.LoadWorksheet(input, heightsPath)
	if err != nil {
		return fmt.Errorf("load worksheet %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Paginating "+ws.Title+"...")
	spinner.Start()

	l, cacheHit, err := runner.LayoutWithCacheInfo(ctx, ws, heights, pipeline.Options{Refresh: refresh})
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input) + ".layout.json"
	}
	if err := layout.WriteFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	oob := l.OutOfBounds()
	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(l.Pages), l.BlockCount(), len(oob), cacheHit)
	for _, id := range oob {
		printWarning("block %s does not fit on its page", id)
	}
	printNewline()
	printNextStep("Render", appName+" render "+outputPath)

	return nil
}
