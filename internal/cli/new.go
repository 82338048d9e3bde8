package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	fio "github.com/matzehuels/folio/pkg/io"
	"github.com/matzehuels/folio/pkg/sheet"
	"github.com/matzehuels/folio/pkg/workbook"
)

// newCommand creates empty documents using the editor defaults from the
// config file.
func (c *CLI) newCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create an empty worksheet or workbook",
	}
	cmd.AddCommand(c.newDocumentCommand("worksheet"))
	cmd.AddCommand(c.newDocumentCommand("workbook"))
	return cmd
}

func (c *CLI) newDocumentCommand(kind string) *cobra.Command {
	var (
		output string
		force  bool
	)
	cmd := &cobra.Command{
		Use:   kind + " [title]",
		Short: "Create an empty " + kind,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			settings := cfg.Editor.Settings()
			title := args[0]

			path := output
			if path == "" {
				path = slug(title) + ".json"
			}
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}
			}

			if kind == "worksheet" {
				err = fio.ExportWorksheet(sheet.New(title, settings), path)
			} else {
				err = fio.ExportWorkbook(workbook.New(title, workbook.Settings{
					Format:            settings.Format,
					ShowChapterColors: true,
				}), path)
			}
			if err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}

			printSuccess("Created %s %q", kind, title)
			printFile(path)
			printDetail("%s · %d columns · %s", settings.Format, settings.Columns, settings.Mode)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <title>.json)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// slug lowercases title and replaces runs of non-alphanumerics with "-".
func slug(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		return "untitled"
	}
	return s
}
