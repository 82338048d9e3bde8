package outline

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/folio/pkg/workbook"
)

// Options configures outline generation.
type Options struct {
	// Spreads draws one node per facing spread instead of one per page.
	Spreads bool

	// Detailed adds the worksheet id and sub-page to page labels.
	Detailed bool
}

// node is one box in the diagram: a page or a spread.
type node struct {
	id      string
	label   string
	chapter string
}

// ToDOT converts a workbook to Graphviz DOT source.
func ToDOT(wb *workbook.Workbook, opts Options) string {
	colors := wb.Settings.ShowChapterColors
	nodes := pageNodes(wb, opts.Detailed)
	if opts.Spreads {
		nodes = spreadNodes(wb)
	}

	var buf bytes.Buffer
	buf.WriteString("digraph outline {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  nodesep=0.25;\n")
	if wb.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", wb.Title)
	}
	buf.WriteString("\n")

	for _, n := range nodes {
		if n.chapter == "" {
			fmt.Fprintf(&buf, "  %q [label=%q];\n", n.id, n.label)
		}
	}
	for _, c := range wb.SortedChapters() {
		writeCluster(&buf, c, nodes, colors)
	}

	buf.WriteString("\n")
	for i := 1; i < len(nodes); i++ {
		fmt.Fprintf(&buf, "  %q -> %q;\n", nodes[i-1].id, nodes[i].id)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func writeCluster(buf *bytes.Buffer, c workbook.Chapter, nodes []node, colors bool) {
	var members []node
	for _, n := range nodes {
		if n.chapter == c.ID {
			members = append(members, n)
		}
	}
	if len(members) == 0 {
		return
	}

	fmt.Fprintf(buf, "  subgraph %q {\n", "cluster_"+c.ID)
	fmt.Fprintf(buf, "    label=%q;\n", c.Title)
	buf.WriteString("    style=\"rounded\";\n")
	if colors && c.Color != "" {
		fmt.Fprintf(buf, "    color=%q;\n", c.Color)
		fmt.Fprintf(buf, "    node [fillcolor=%q];\n", tint(c.Color))
	}
	for _, n := range members {
		fmt.Fprintf(buf, "    %q [label=%q];\n", n.id, n.label)
	}
	buf.WriteString("  }\n")
}

func pageNodes(wb *workbook.Workbook, detailed bool) []node {
	pages := slices.Clone(wb.Pages)
	slices.SortStableFunc(pages, func(a, b workbook.Page) int { return cmp.Compare(a.PageNumber, b.PageNumber) })
	nodes := make([]node, 0, len(pages))
	for _, p := range pages {
		nodes = append(nodes, node{
			id:      "page_" + p.ID,
			label:   pageLabel(p, detailed),
			chapter: chapterID(wb, p.PageNumber),
		})
	}
	return nodes
}

func spreadNodes(wb *workbook.Workbook) []node {
	spreads := workbook.BuildSpreads(wb.Pages)
	nodes := make([]node, 0, len(spreads))
	for _, s := range spreads {
		var nums []string
		first := 0
		for _, p := range []*workbook.Page{s.Left, s.Right} {
			if p == nil {
				continue
			}
			if first == 0 {
				first = p.PageNumber
			}
			nums = append(nums, fmt.Sprint(p.PageNumber))
		}
		label := strings.Join(nums, " | ")
		if s.IsCover {
			label = "cover\n" + label
		}
		nodes = append(nodes, node{
			id:      fmt.Sprintf("spread_%d", s.Index),
			label:   label,
			chapter: chapterID(wb, first),
		})
	}
	return nodes
}

func pageLabel(p workbook.Page, detailed bool) string {
	label := fmt.Sprint(p.PageNumber)
	if !detailed || p.WorksheetID == "" {
		return label
	}
	return fmt.Sprintf("%s\n%s #%d", label, p.WorksheetID, p.SubPage+1)
}

func chapterID(wb *workbook.Workbook, n int) string {
	if c := workbook.ChapterForPage(wb.Pages, wb.Chapters, n); c != nil {
		return c.ID
	}
	return ""
}

// tint returns a translucent variant of a #rrggbb color.
func tint(hex string) string {
	if len(hex) == 7 && hex[0] == '#' {
		return hex + "33"
	}
	return hex
}
