package api

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"

	"github.com/matzehuels/folio/pkg/buildinfo"
	apperr "github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/events"
	"github.com/matzehuels/folio/pkg/geom"
	"github.com/matzehuels/folio/pkg/layout"
	"github.com/matzehuels/folio/pkg/paginate"
	"github.com/matzehuels/folio/pkg/pipeline"
	"github.com/matzehuels/folio/pkg/selection"
	"github.com/matzehuels/folio/pkg/sheet"
	"github.com/matzehuels/folio/pkg/viewport"
	"github.com/matzehuels/folio/pkg/workbook"
)

// =============================================================================
// Requests
// =============================================================================

type worksheetRequest struct {
	Worksheet json.RawMessage    `json:"worksheet" validate:"required"`
	Heights   map[string]float64 `json:"heights,omitempty"`
	Selected  []string           `json:"selected,omitempty"`
	Refresh   bool               `json:"refresh,omitempty"`
}

type workbookRequest struct {
	Workbook json.RawMessage `json:"workbook" validate:"required"`
	Refresh  bool            `json:"refresh,omitempty"`
}

type wheelRequest struct {
	State  viewport.State    `json:"state"`
	Width  float64           `json:"width" validate:"gt=0"`
	Height float64           `json:"height" validate:"gt=0"`
	Event  events.WheelEvent `json:"event"`
}

type lassoRequest struct {
	Layout   layout.Layout `json:"layout"`
	Start    geom.Point    `json:"start"`
	End      geom.Point    `json:"end"`
	PageGap  float64       `json:"pageGap" validate:"gte=0"`
	Selected []string      `json:"selected,omitempty"`
}

// =============================================================================
// Responses
// =============================================================================

type layoutResponse struct {
	Layout      layout.Layout `json:"layout"`
	Pages       int           `json:"pages"`
	Blocks      int           `json:"blocks"`
	OutOfBounds []string      `json:"outOfBounds"`
}

type readingOrderResponse struct {
	Order map[string]int `json:"order"`
	IDs   []string       `json:"ids"`
}

type spreadsResponse struct {
	Spreads []workbook.Spread `json:"spreads"`
}

type lassoResponse struct {
	Selected []string `json:"selected"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) worksheet(r *http.Request) (*sheet.Worksheet, *paginate.Heights, worksheetRequest, error) {
	var req worksheetRequest
	if err := s.decode(r, &req); err != nil {
		return nil, nil, req, err
	}
	ws, err := pipeline.ParseWorksheet(req.Worksheet)
	if err != nil {
		return nil, nil, req, err
	}
	return ws, paginate.HeightsFrom(req.Heights), req, nil
}

func (s *Server) workbook(r *http.Request) (*workbook.Workbook, workbookRequest, error) {
	var req workbookRequest
	if err := s.decode(r, &req); err != nil {
		return nil, req, err
	}
	wb, err := pipeline.ParseWorkbook(req.Workbook)
	return wb, req, err
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	ws, heights, req, err := s.worksheet(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	l, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), ws, heights, pipeline.Options{Refresh: req.Refresh})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	oob := l.OutOfBounds()
	if oob == nil {
		oob = []string{}
	}
	setCache(w, hit)
	writeJSON(w, http.StatusOK, layoutResponse{
		Layout:      l,
		Pages:       len(l.Pages),
		Blocks:      l.BlockCount(),
		OutOfBounds: oob,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.DefaultFormat
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "unsupported format %q", format))
		return
	}
	opts := pipeline.Options{Formats: []string{format}, ColumnGuides: q.Get("guides") == "true"}
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			s.writeError(w, r, apperr.New(apperr.ErrCodeInvalidInput, "scale must be a number"))
			return
		}
		opts.Scale = scale
	}
	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			s.writeError(w, r, apperr.New(apperr.ErrCodeInvalidInput, "page must be a positive integer"))
			return
		}
		opts.Page = page
	}

	ws, heights, req, err := s.worksheet(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Selected = req.Selected
	opts.Refresh = req.Refresh

	l, _, err := s.runner.LayoutWithCacheInfo(r.Context(), ws, heights, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if opts.Page > len(l.Pages) {
		s.writeError(w, r, apperr.New(apperr.ErrCodePageNotFound, "page %d not found (layout has %d pages)", opts.Page, len(l.Pages)))
		return
	}
	artifacts, hit, err := s.runner.RenderWithCacheInfo(r.Context(), l, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	setCache(w, hit)
	writeBytes(w, contentTypes[format], artifacts[format])
}

func (s *Server) handleReadingOrder(w http.ResponseWriter, r *http.Request) {
	ws, _, _, err := s.worksheet(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	order := sheet.ComputeReadingOrder(ws.Blocks)
	ids := make([]string, 0, len(order))
	for id := range order {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return order[ids[i]] < order[ids[j]] })
	writeJSON(w, http.StatusOK, readingOrderResponse{Order: order, IDs: ids})
}

func (s *Server) handleCompose(w http.ResponseWriter, r *http.Request) {
	wb, req, err := s.workbook(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	comp, hit, err := s.runner.ComposeWithCacheInfo(r.Context(), wb, pipeline.Options{Refresh: req.Refresh})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	setCache(w, hit)
	writeJSON(w, http.StatusOK, comp)
}

func (s *Server) handleSpreads(w http.ResponseWriter, r *http.Request) {
	wb, _, err := s.workbook(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	spreads := workbook.BuildSpreads(wb.Pages)
	if spreads == nil {
		spreads = []workbook.Spread{}
	}
	writeJSON(w, http.StatusOK, spreadsResponse{Spreads: spreads})
}

func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := pipeline.Options{
		OutlineFormat: q.Get("format"),
		Spreads:       q.Get("spreads") == "true",
		Detailed:      q.Get("detailed") == "true",
	}
	if err := opts.ValidateForOutline(); err != nil {
		s.writeError(w, r, apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "unsupported outline format %q", opts.OutlineFormat))
		return
	}

	wb, req, err := s.workbook(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Refresh = req.Refresh
	data, hit, err := s.runner.OutlineWithCacheInfo(r.Context(), wb, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	setCache(w, hit)
	writeBytes(w, contentTypes[opts.OutlineFormat], data)
}

func (s *Server) handleWheel(w http.ResponseWriter, r *http.Request) {
	var req wheelRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	bus := events.NewBus()
	v := viewport.New(bus, req.Width, req.Height,
		viewport.WithOptions(s.viewport),
		viewport.WithState(req.State),
		viewport.WithLogger(s.logger))
	defer v.Close()

	bus.EmitWheel(req.Event)
	writeJSON(w, http.StatusOK, v.State())
}

func (s *Server) handleLasso(w http.ResponseWriter, r *http.Request) {
	var req lassoRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	elements := selection.LayoutElements(req.Layout, req.PageGap)
	bus := events.NewBus()
	engine := selection.NewEngine(bus, func() []selection.Element { return elements },
		selection.WithThreshold(s.threshold),
		selection.WithLogger(s.logger))
	defer engine.Close()

	engine.Replace(req.Selected)
	engine.PointerDown(events.PointerEvent{X: req.Start.X, Y: req.Start.Y, Button: events.ButtonPrimary})
	bus.EmitPointerMove(events.PointerEvent{X: req.End.X, Y: req.End.Y})
	bus.EmitPointerUp(events.PointerEvent{X: req.End.X, Y: req.End.Y})

	sel := engine.Selection()
	if sel == nil {
		sel = []string{}
	}
	writeJSON(w, http.StatusOK, lassoResponse{Selected: sel})
}
