package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/folio/pkg/layout"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listOverflowStyle = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// InspectModel - Interactive page browser
// =============================================================================

// InspectModel is the bubbletea model for browsing the pages of a layout.
// Left/right change the page, up/down move the block cursor.
type InspectModel struct {
	Layout layout.Layout
	Page   int // index into Layout.Pages
	Cursor int // index into the current page's blocks
	Height int
	Offset int
}

// NewInspectModel creates a browser positioned on the first page.
func NewInspectModel(l layout.Layout) InspectModel {
	return InspectModel{Layout: l, Height: 15}
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) blocks() []layout.Block {
	if m.Page < 0 || m.Page >= len(m.Layout.Pages) {
		return nil
	}
	return m.Layout.Pages[m.Page].Blocks
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h", "pgup":
			if m.Page > 0 {
				m.Page--
				m.Cursor, m.Offset = 0, 0
			}
		case "right", "l", "pgdown":
			if m.Page < len(m.Layout.Pages)-1 {
				m.Page++
				m.Cursor, m.Offset = 0, 0
			}
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.blocks())-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m InspectModel) View() string {
	var b strings.Builder

	title := m.Layout.Title
	if title == "" {
		title = m.Layout.WorksheetID
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%s · %s · %d columns",
		m.Layout.Format, m.Layout.Mode, m.Layout.Columns)))
	b.WriteString("\n")
	b.WriteString(m.pageStrip())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→ page  ↑/↓ block  q quit"))
	b.WriteString("\n\n")

	blocks := m.blocks()
	if len(blocks) == 0 {
		b.WriteString(listDimStyle.Render("  (empty page)"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(blocks))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		blk := blocks[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		status := ""
		if blk.OutOfBounds {
			status = "overflow"
		}
		rows = append(rows, []string{
			cursor, blk.ID, blk.Type,
			fmt.Sprintf("%.0f,%.0f", blk.X, blk.Y),
			fmt.Sprintf("%.0f×%.0f", blk.Width, blk.Height),
			placement(blk), status,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Block", "Type", "Position", "Size", "Grid", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			idx := m.Offset + row
			if idx >= len(blocks) {
				return lipgloss.NewStyle()
			}
			switch {
			case blocks[idx].OutOfBounds:
				return listOverflowStyle
			case idx == m.Cursor:
				return listSelectedStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(blocks))))
	return b.String()
}

// pageStrip renders one marker per page, highlighting the current page and
// flagging pages that hold out-of-bounds blocks.
func (m InspectModel) pageStrip() string {
	parts := make([]string, len(m.Layout.Pages))
	for i, p := range m.Layout.Pages {
		label := fmt.Sprintf(" %d ", p.Number)
		style := listDimStyle
		for _, blk := range p.Blocks {
			if blk.OutOfBounds {
				style = listOverflowStyle
				break
			}
		}
		if i == m.Page {
			style = listSelectedStyle.Reverse(true)
		}
		parts[i] = style.Render(label)
	}
	return strings.Join(parts, " ")
}

func placement(blk layout.Block) string {
	if blk.Span == 0 {
		return fmt.Sprintf("z%d", blk.ZIndex)
	}
	return fmt.Sprintf("col %d +%d", blk.Column, blk.Span)
}

// =============================================================================
// inspect command
// =============================================================================

func (c *CLI) inspectCommand() *cobra.Command {
	var (
		heights string
		noCache bool
	)
	cmd := &cobra.Command{
		Use:   "inspect [worksheet.json|file.layout.json]",
		Short: "Browse the pages and blocks of a layout interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			l, _, err := c.loadLayout(ctx, runner, args[0], renderOpts{heights: heights})
			if err != nil {
				return err
			}
			if len(l.Pages) == 0 {
				printInfo("Layout has no pages")
				return nil
			}

			_, err = tea.NewProgram(NewInspectModel(l), tea.WithContext(ctx)).Run()
			return err
		},
	}
	cmd.Flags().StringVar(&heights, "heights", "", "JSON file of measured block heights (worksheet input)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
