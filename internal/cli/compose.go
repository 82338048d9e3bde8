package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	fio "github.com/matzehuels/folio/pkg/io"
	"github.com/matzehuels/folio/pkg/pipeline"
)

// composeCommand creates the compose command, which arranges workbook pages
// into the rows of singles and spreads shown on the workbook canvas.
func (c *CLI) composeCommand() *cobra.Command {
	var (
		output  string
		limit   int
		asJSON  bool
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "compose [workbook.json]",
		Short: "Arrange workbook pages into spreads and rows",
		Long: `Arrange workbook pages into spreads and rows.

Page 1 is shown alone as the cover, following pages pair into facing spreads,
and a spread is split where a chapter starts on its right-hand page. With
--limit, page numbers beyond the existing pages are shown as placeholders.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			wb, err := fio.ImportWorkbook(args[0])
			if err != nil {
				return fmt.Errorf("load workbook %s: %w", args[0], err)
			}
			if cmd.Flags().Changed("limit") {
				wb.Settings.PageLimit = limit
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			comp, hit, err := runner.ComposeWithCacheInfo(ctx, wb, pipeline.Options{Refresh: refresh})
			if err != nil {
				return fmt.Errorf("compose: %w", err)
			}

			if asJSON || output != "" {
				data, err := json.MarshalIndent(comp, "", "  ")
				if err != nil {
					return err
				}
				if output == "" {
					fmt.Println(string(data))
					return nil
				}
				if err := os.WriteFile(output, data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", output, err)
				}
				printSuccess("Composition written")
				printFile(output)
				return nil
			}

			fmt.Println(StyleTitle.Render(wb.Title))
			fmt.Println(compositionTable(comp))
			printKeyValue("Pages", strconv.Itoa(comp.PageCount))
			printKeyValue("Spreads", strconv.Itoa(comp.Spreads))
			printKeyValue("Singles", strconv.Itoa(comp.Singles))
			if comp.Placeholders > 0 {
				printKeyValue("Empty", strconv.Itoa(comp.Placeholders))
			}
			printKeyValue("Chapters", strconv.Itoa(comp.Chapters))
			printStats(0, 0, 0, hit)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the composition as JSON to this file")
	cmd.Flags().IntVar(&limit, "limit", 0, "page limit (default: workbook setting or page count)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the composition as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompose even when cached")

	return cmd
}

// outlineCommand creates the outline command, which draws the page order
// and chapter grouping of a workbook as a graph.
func (c *CLI) outlineCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		opts    pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "outline [workbook.json]",
		Short: "Draw a workbook's page order and chapters as a graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.ValidateForOutline(); err != nil {
				return err
			}
			return c.runOutline(cmd.Context(), args[0], output, noCache, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.outline.<format>)")
	cmd.Flags().StringVarP(&opts.OutlineFormat, "format", "f", pipeline.FormatSVG, "output format: svg, png, dot")
	cmd.Flags().BoolVar(&opts.Spreads, "spreads", false, "one node per spread instead of per page")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "label nodes with their worksheet")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-render even when cached")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runOutline(ctx context.Context, input, output string, noCache bool, opts pipeline.Options) error {
	wb, err := fio.ImportWorkbook(input)
	if err != nil {
		return fmt.Errorf("load workbook %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	data, hit, err := runner.OutlineWithCacheInfo(ctx, wb, opts)
	if err != nil {
		return fmt.Errorf("outline: %w", err)
	}

	path := output
	if path == "" {
		path = basePath("", input) + ".outline." + opts.OutlineFormat
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	printSuccess("Outline complete")
	printFile(path)
	printStats(wb.PageCount(), 0, 0, hit)
	return nil
}
