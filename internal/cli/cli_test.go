package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	fio "github.com/matzehuels/folio/pkg/io"
	"github.com/matzehuels/folio/pkg/layout"
	"github.com/matzehuels/folio/pkg/sheet"
	"github.com/matzehuels/folio/pkg/workbook"
)

// writeWorksheet writes a worksheet whose image block overflows its page,
// plus a matching heights file.
func writeWorksheet(t *testing.T, dir string) (string, string) {
	t.Helper()
	ws := sheet.New("fractions", sheet.DefaultSettings())
	ws.Append(
		sheet.Block{ID: "h", Type: sheet.TypeHeading},
		sheet.Block{ID: "p", Type: sheet.TypeParagraph, GridSpan: 6},
		sheet.Block{ID: "q", Type: sheet.TypeImage, GridSpan: 6},
	)
	wsPath := filepath.Join(dir, "fractions.json")
	if err := fio.ExportWorksheet(ws, wsPath); err != nil {
		t.Fatal(err)
	}
	heightsPath := filepath.Join(dir, "heights.json")
	if err := os.WriteFile(heightsPath, []byte(`{"h":60,"p":120,"q":2000}`), 0o644); err != nil {
		t.Fatal(err)
	}
	return wsPath, heightsPath
}

func writeWorkbook(t *testing.T, dir string) string {
	t.Helper()
	wb := workbook.New("algebra", workbook.Settings{})
	for i, id := range []string{"p1", "p2", "p3", "p4", "p5"} {
		wb.Pages = append(wb.Pages, workbook.Page{ID: id, PageNumber: i + 1})
	}
	wb.Chapters = []workbook.Chapter{{ID: "c1", Title: "One", Color: workbook.PaletteColor(0)}}
	wb.Pages[1].StartsChapterID = "c1"
	path := filepath.Join(dir, "algebra.json")
	if err := fio.ExportWorkbook(wb, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	want := []string{"new", "layout", "render", "compose", "outline", "inspect", "serve", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("--config flag not registered")
	}
}

func TestLayoutCommand(t *testing.T) {
	dir := t.TempDir()
	wsPath, heightsPath := writeWorksheet(t, dir)
	out := filepath.Join(dir, "out.layout.json")

	if err := execute(t, "layout", wsPath, "--heights", heightsPath, "--no-cache", "-o", out); err != nil {
		t.Fatalf("layout: %v", err)
	}
	l, err := layout.ReadFile(out)
	if err != nil {
		t.Fatalf("read layout: %v", err)
	}
	if len(l.Pages) != 2 {
		t.Errorf("pages = %d, want 2", len(l.Pages))
	}
	if oob := l.OutOfBounds(); len(oob) != 1 || oob[0] != "q" {
		t.Errorf("OutOfBounds() = %v, want [q]", oob)
	}
}

func TestLayoutCommandDefaultOutput(t *testing.T) {
	dir := t.TempDir()
	wsPath, _ := writeWorksheet(t, dir)

	if err := execute(t, "layout", wsPath, "--no-cache"); err != nil {
		t.Fatalf("layout: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "fractions.layout.json")); err != nil {
		t.Errorf("default output missing: %v", err)
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	wsPath, heightsPath := writeWorksheet(t, dir)

	if err := execute(t, "render", wsPath, "--heights", heightsPath, "-f", "svg,json", "--no-cache"); err != nil {
		t.Fatalf("render: %v", err)
	}
	svg, err := os.ReadFile(filepath.Join(dir, "fractions.svg"))
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("svg output has no <svg> element")
	}
	if _, err := layout.ReadFile(filepath.Join(dir, "fractions.layout.json")); err != nil {
		t.Errorf("json artifact: %v", err)
	}
}

func TestRenderCommandFromLayout(t *testing.T) {
	dir := t.TempDir()
	wsPath, heightsPath := writeWorksheet(t, dir)
	layoutPath := filepath.Join(dir, "fractions.layout.json")
	if err := execute(t, "layout", wsPath, "--heights", heightsPath, "--no-cache"); err != nil {
		t.Fatalf("layout: %v", err)
	}

	out := filepath.Join(dir, "page2.png")
	if err := execute(t, "render", layoutPath, "-f", "png", "--page", "2", "--scale", "0.25", "-o", out, "--no-cache"); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read png: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestRenderCommandErrors(t *testing.T) {
	dir := t.TempDir()
	wsPath, _ := writeWorksheet(t, dir)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown format", []string{"render", wsPath, "-f", "pdf", "--no-cache"}, "invalid format"},
		{"page out of range", []string{"render", wsPath, "-f", "png", "--page", "9", "--no-cache"}, "out of range"},
		{"missing file", []string{"render", filepath.Join(dir, "nope.json"), "--no-cache"}, "nope.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestComposeCommandJSON(t *testing.T) {
	dir := t.TempDir()
	wbPath := writeWorkbook(t, dir)
	out := filepath.Join(dir, "composition.json")

	if err := execute(t, "compose", wbPath, "--limit", "8", "-o", out, "--no-cache"); err != nil {
		t.Fatalf("compose: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var comp workbook.Composition
	if err := json.Unmarshal(data, &comp); err != nil {
		t.Fatalf("decode composition: %v", err)
	}
	if comp.PageCount != 5 || comp.PageLimit != 8 {
		t.Errorf("pages/limit = %d/%d, want 5/8", comp.PageCount, comp.PageLimit)
	}
	if comp.Placeholders != 3 {
		t.Errorf("placeholders = %d, want 3", comp.Placeholders)
	}
}

func TestOutlineCommandDOT(t *testing.T) {
	dir := t.TempDir()
	wbPath := writeWorkbook(t, dir)

	if err := execute(t, "outline", wbPath, "-f", "dot", "--no-cache"); err != nil {
		t.Fatalf("outline: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "algebra.outline.dot"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "digraph outline") {
		t.Errorf("dot output missing graph header:\n%s", data)
	}
}

func TestOutlineCommandRejectsFormat(t *testing.T) {
	wbPath := writeWorkbook(t, t.TempDir())
	if err := execute(t, "outline", wbPath, "-f", "json", "--no-cache"); err == nil {
		t.Error("outline -f json succeeded, want error")
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "sheets/fractions.json", "sheets/fractions"},
		{"", "sheets/fractions.layout.json", "sheets/fractions"},
		{"out/page.svg", "in.json", "out/page"},
		{"out/page.dot", "in.json", "out/page"},
		{"out/page", "in.json", "out/page"},
		{"out/page.txt", "in.json", "out/page.txt"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name          string
		input, output string
		format        string
		single        bool
		want          string
	}{
		{"explicit single", "ws.json", "a/b.png", "png", true, "a/b.png"},
		{"derived svg", "ws.json", "", "svg", false, "ws.svg"},
		{"derived json", "ws.json", "", "json", true, "ws.layout.json"},
		{"base for many", "ws.json", "out/x", "png", false, "out/x.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.input, tt.output, tt.format, tt.single); got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewWorksheetUsesEditorConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.toml")
	body := "[editor]\npage_format = \"B5\"\ncolumns = 6\nmode = \"masonry\"\n"
	if err := os.WriteFile(cfg, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "ws.json")

	if err := execute(t, "--config", cfg, "new", "worksheet", "Fractions", "-o", out); err != nil {
		t.Fatalf("new worksheet: %v", err)
	}
	ws, err := fio.ImportWorksheet(out)
	if err != nil {
		t.Fatal(err)
	}
	if ws.Title != "Fractions" || ws.Format != sheet.PageFormat("B5") || ws.Columns != 6 || ws.Mode != sheet.LayoutMode("masonry") {
		t.Errorf("worksheet = %q %s %d %s, want Fractions B5 6 masonry", ws.Title, ws.Format, ws.Columns, ws.Mode)
	}

	if err := execute(t, "--config", cfg, "new", "worksheet", "Fractions", "-o", out); err == nil {
		t.Error("second new without --force succeeded, want error")
	}
}

func TestNewWorkbook(t *testing.T) {
	out := filepath.Join(t.TempDir(), "book.json")
	if err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.toml"), "new", "workbook", "Algebra", "-o", out); err == nil {
		t.Fatal("explicit missing config accepted, want error")
	}
	if err := execute(t, "new", "workbook", "Algebra", "-o", out); err != nil {
		t.Fatalf("new workbook: %v", err)
	}
	wb, err := fio.ImportWorkbook(out)
	if err != nil {
		t.Fatal(err)
	}
	if wb.Title != "Algebra" || len(wb.Pages) != 0 {
		t.Errorf("workbook = %q with %d pages, want Algebra with 0", wb.Title, len(wb.Pages))
	}
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Fractions":          "fractions",
		"Week 3: Fractions!": "week-3-fractions",
		"  ":                 "untitled",
	}
	for in, want := range tests {
		if got := slug(in); got != want {
			t.Errorf("slug(%q) = %q, want %q", in, got, want)
		}
	}
}
