package pipeline

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/folio/pkg/paginate"
	"github.com/matzehuels/folio/pkg/sheet"
	"github.com/matzehuels/folio/pkg/workbook"
)

// memCache is an in-memory cache.Cache for runner tests.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func testWorksheet() (*sheet.Worksheet, *paginate.Heights) {
	ws := sheet.New("fractions", sheet.DefaultSettings())
	ws.ID = "ws-1"
	ws.Append(
		sheet.Block{ID: "h", Type: sheet.TypeHeading},
		sheet.Block{ID: "p", Type: sheet.TypeParagraph, GridSpan: 6},
		sheet.Block{ID: "q", Type: sheet.TypeImage, GridSpan: 6},
	)
	h := paginate.NewHeights()
	h.Set("h", 60)
	h.Set("p", 120)
	h.Set("q", 2000)
	return ws, h
}

func testWorkbook() *workbook.Workbook {
	wb := workbook.New("algebra", workbook.Settings{})
	wb.ID = "wb-1"
	for i, id := range []string{"p1", "p2", "p3", "p4", "p5"} {
		wb.Pages = append(wb.Pages, workbook.Page{ID: id, PageNumber: i + 1})
	}
	wb.Chapters = []workbook.Chapter{{ID: "c1", Title: "One", Color: workbook.PaletteColor(0)}}
	wb.Pages[1].StartsChapterID = "c1"
	return wb
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"json", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateOutlineFormat(t *testing.T) {
	for _, f := range []string{"svg", "png", "dot"} {
		if err := ValidateOutlineFormat(f); err != nil {
			t.Errorf("ValidateOutlineFormat(%q) = %v", f, err)
		}
	}
	if err := ValidateOutlineFormat("json"); err == nil {
		t.Error("json outline should fail")
	}
}

func TestParseFormats(t *testing.T) {
	got := ParseFormats(" SVG, png,,json ")
	want := []string{"svg", "png", "json"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("ParseFormats = %v, want %v", got, want)
	}
	if ParseFormats("") != nil {
		t.Error("ParseFormats(\"\") should be nil")
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Scale: 10, Page: -2}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != DefaultFormat {
		t.Errorf("Formats = %v, want [%s]", opts.Formats, DefaultFormat)
	}
	if opts.Scale != MaxScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, MaxScale)
	}
	if opts.Page != 0 {
		t.Errorf("Page = %d, want 0", opts.Page)
	}
	if opts.OutlineFormat != FormatSVG {
		t.Errorf("OutlineFormat = %q, want svg", opts.OutlineFormat)
	}
	if opts.Logger == nil {
		t.Error("Logger not defaulted")
	}

	bad := Options{Formats: []string{"gif"}}
	if err := bad.ValidateAndSetDefaults(); err == nil {
		t.Error("expected error for gif")
	}
}

func TestArtifactKeyOptsDistinguishOptions(t *testing.T) {
	plain := Options{Scale: 1}
	guides := Options{Scale: 1, ColumnGuides: true}
	sel := Options{Scale: 1, Selected: []string{"a"}}
	page := Options{Scale: 1, Page: 2}

	keys := map[string]bool{
		plain.ArtifactKeyOpts(FormatSVG).Format:  true,
		guides.ArtifactKeyOpts(FormatSVG).Format: true,
		sel.ArtifactKeyOpts(FormatSVG).Format:    true,
	}
	if len(keys) != 3 {
		t.Errorf("svg key formats collide: %v", keys)
	}
	if plain.ArtifactKeyOpts(FormatPNG) == page.ArtifactKeyOpts(FormatPNG) {
		t.Error("png page not part of key")
	}
	if plain.ArtifactKeyOpts(FormatJSON) != guides.ArtifactKeyOpts(FormatJSON) {
		t.Error("json key should ignore svg-only options")
	}
}

func TestComputeLayout(t *testing.T) {
	ws, h := testWorksheet()
	ws.Blocks[0].GridSpan = 0
	l := ComputeLayout(context.Background(), ws, h)

	if len(l.Pages) != 2 {
		t.Fatalf("pages = %d, want 2", len(l.Pages))
	}
	if got := l.OutOfBounds(); len(got) != 1 || got[0] != "q" {
		t.Errorf("OutOfBounds = %v, want [q]", got)
	}
	if ws.Blocks[0].GridSpan != 0 {
		t.Error("ComputeLayout modified the input worksheet")
	}
}

func TestRunnerLayoutCache(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	ws, h := testWorksheet()

	_, hit, err := r.LayoutWithCacheInfo(ctx, ws, h, Options{})
	if err != nil || hit {
		t.Fatalf("first call: hit=%v err=%v", hit, err)
	}
	l, hit, err := r.LayoutWithCacheInfo(ctx, ws, h, Options{})
	if err != nil || !hit {
		t.Fatalf("second call: hit=%v err=%v", hit, err)
	}
	if len(l.Pages) != 2 {
		t.Errorf("cached pages = %d, want 2", len(l.Pages))
	}

	if _, hit, _ := r.LayoutWithCacheInfo(ctx, ws, h, Options{Refresh: true}); hit {
		t.Error("refresh should bypass cache")
	}

	h.Set("q", 100)
	if _, hit, _ := r.LayoutWithCacheInfo(ctx, ws, h, Options{}); hit {
		t.Error("changed heights should miss")
	}
}

func TestRunnerRenderCache(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(newMemCache(), nil, nil)
	ws, h := testWorksheet()
	l, err := r.Layout(ctx, ws, h)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}

	opts := Options{Formats: []string{FormatJSON, FormatSVG}}
	first, hit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil || hit {
		t.Fatalf("first render: hit=%v err=%v", hit, err)
	}
	second, hit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil || !hit {
		t.Fatalf("second render: hit=%v err=%v", hit, err)
	}
	if string(first[FormatSVG]) != string(second[FormatSVG]) {
		t.Error("cached svg differs")
	}

	// a format not rendered yet forces a full render
	if _, hit, _ := r.RenderWithCacheInfo(ctx, l, Options{Formats: []string{FormatJSON, FormatPNG}}); hit {
		t.Error("partial cache should not count as hit")
	}
}

func TestRunnerExecute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ws, h := testWorksheet()
	res, err := r.Execute(context.Background(), ws, h, Options{Formats: []string{FormatJSON}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Stats.Pages != 2 || res.Stats.Blocks != 3 || res.Stats.OutOfBounds != 1 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if res.LayoutHash == "" {
		t.Error("LayoutHash empty")
	}
	if len(res.Artifacts[FormatJSON]) == 0 {
		t.Error("json artifact missing")
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Error("null cache reported a hit")
	}

	if _, err := r.Execute(context.Background(), ws, h, Options{Formats: []string{"pdf"}}); err == nil {
		t.Error("expected error for pdf")
	}
}

func TestRunnerComposeCache(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(newMemCache(), nil, nil)
	wb := testWorkbook()

	comp, hit, err := r.ComposeWithCacheInfo(ctx, wb, Options{})
	if err != nil || hit {
		t.Fatalf("first compose: hit=%v err=%v", hit, err)
	}
	if comp.PageCount != 5 || comp.Chapters != 1 {
		t.Errorf("composition = %+v", comp)
	}
	cached, hit, err := r.ComposeWithCacheInfo(ctx, wb, Options{})
	if err != nil || !hit {
		t.Fatalf("second compose: hit=%v err=%v", hit, err)
	}
	if len(cached.Rows) != len(comp.Rows) || cached.WorkbookID != "wb-1" {
		t.Errorf("cached composition = %+v", cached)
	}

	wb.Settings.PageLimit = 8
	limited, hit, _ := r.ComposeWithCacheInfo(ctx, wb, Options{})
	if hit {
		t.Error("page limit change should miss")
	}
	if limited.Placeholders != 3 {
		t.Errorf("Placeholders = %d, want 3", limited.Placeholders)
	}
}

func TestRunnerOutlineDOT(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	wb := testWorkbook()

	dot, hit, err := r.OutlineWithCacheInfo(ctx, wb, Options{OutlineFormat: FormatDOT})
	if err != nil || hit {
		t.Fatalf("first outline: hit=%v err=%v", hit, err)
	}
	if !strings.HasPrefix(string(dot), "digraph outline {") {
		t.Errorf("outline = %q", dot)
	}
	if _, hit, _ := r.OutlineWithCacheInfo(ctx, wb, Options{OutlineFormat: FormatDOT}); !hit {
		t.Error("second outline should hit")
	}
	if _, hit, _ := r.OutlineWithCacheInfo(ctx, wb, Options{OutlineFormat: FormatDOT, Spreads: true}); hit {
		t.Error("spreads outline should miss")
	}
	if _, err := r.Outline(ctx, wb, Options{OutlineFormat: "gif"}); err == nil {
		t.Error("expected error for gif outline")
	}
}

func TestParseHeights(t *testing.T) {
	h, err := ParseHeights([]byte(`{"a": 40, "b": -3}`))
	if err != nil {
		t.Fatalf("ParseHeights: %v", err)
	}
	if v, ok := h.Lookup("a"); !ok || v != 40 {
		t.Errorf("a = %v, %v; want 40, true", v, ok)
	}
	if v, _ := h.Lookup("b"); v != 0 {
		t.Errorf("b = %v, want 0", v)
	}
	if _, err := ParseHeights([]byte(`[1,2]`)); err == nil {
		t.Error("expected error for array")
	}
	if h, err := ParseHeights(nil); err != nil || h.Len() != 0 {
		t.Errorf("ParseHeights(nil) = %v, %v", h, err)
	}
}
