// Package viewport implements the pan and zoom transform of the infinite
// workbook canvas.
//
// The transform is translate(X, Y) scale(Zoom) with the origin at the top
// left. Zooming keeps a fixed screen point stationary:
//
//	newX = px - (px - x) * (newZoom / zoom)
//
// so the canvas point under the pointer (or the viewport center, for button
// and keyboard zoom) stays under it. Plain wheel scrolling pans; Ctrl/Cmd
// wheel and trackpad pinch zoom. Dragging with the middle button, or with
// the primary button while Space is held, pans manually.
package viewport

import (
	"math"

	"github.com/matzehuels/folio/pkg/geom"
)

// State is the canvas transform. X and Y are screen-pixel offsets.
type State struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

// Options tunes zoom bounds and input sensitivity.
type Options struct {
	MinZoom          float64 `json:"minZoom" toml:"min_zoom" yaml:"min_zoom"`
	MaxZoom          float64 `json:"maxZoom" toml:"max_zoom" yaml:"max_zoom"`
	DefaultZoom      float64 `json:"defaultZoom" toml:"default_zoom" yaml:"default_zoom"`
	WheelSensitivity float64 `json:"wheelSensitivity" toml:"wheel_sensitivity" yaml:"wheel_sensitivity"`
	PinchSensitivity float64 `json:"pinchSensitivity" toml:"pinch_sensitivity" yaml:"pinch_sensitivity"`
	PinchThreshold   float64 `json:"pinchThreshold" toml:"pinch_threshold" yaml:"pinch_threshold"`
	ZoomStep         float64 `json:"zoomStep" toml:"zoom_step" yaml:"zoom_step"`
}

// Default option values.
const (
	DefaultMinZoom          = 0.4
	DefaultMaxZoom          = 1.5
	DefaultZoom             = 0.8
	DefaultWheelSensitivity = 0.0025
	DefaultPinchSensitivity = 0.01
	DefaultPinchThreshold   = 50.0
	DefaultZoomStep         = 0.1
)

// DefaultOptions returns the default bounds and sensitivities.
func DefaultOptions() Options {
	return Options{
		MinZoom:          DefaultMinZoom,
		MaxZoom:          DefaultMaxZoom,
		DefaultZoom:      DefaultZoom,
		WheelSensitivity: DefaultWheelSensitivity,
		PinchSensitivity: DefaultPinchSensitivity,
		PinchThreshold:   DefaultPinchThreshold,
		ZoomStep:         DefaultZoomStep,
	}
}

// Normalize replaces missing or invalid values with defaults.
func (o Options) Normalize() Options {
	d := DefaultOptions()
	pos := func(v, def float64) float64 {
		if !(v > 0) || math.IsInf(v, 0) {
			return def
		}
		return v
	}
	o.MinZoom = pos(o.MinZoom, d.MinZoom)
	o.MaxZoom = pos(o.MaxZoom, d.MaxZoom)
	if o.MinZoom > o.MaxZoom {
		o.MinZoom, o.MaxZoom = o.MaxZoom, o.MinZoom
	}
	o.DefaultZoom = geom.Clamp(pos(o.DefaultZoom, d.DefaultZoom), o.MinZoom, o.MaxZoom)
	o.WheelSensitivity = pos(o.WheelSensitivity, d.WheelSensitivity)
	o.PinchSensitivity = pos(o.PinchSensitivity, d.PinchSensitivity)
	o.PinchThreshold = pos(o.PinchThreshold, d.PinchThreshold)
	o.ZoomStep = pos(o.ZoomStep, d.ZoomStep)
	return o
}

// ClampZoom limits z to the zoom bounds. NaN and non-positive values map to
// MinZoom.
func (o Options) ClampZoom(z float64) float64 {
	return geom.Clamp(z, o.MinZoom, o.MaxZoom)
}

// ZoomAt returns s zoomed to newZoom with the screen point (px, py) held
// fixed.
func ZoomAt(s State, px, py, newZoom float64) State {
	if !(s.Zoom > 0) {
		return State{X: s.X, Y: s.Y, Zoom: newZoom}
	}
	ratio := newZoom / s.Zoom
	return State{
		X:    px - (px-s.X)*ratio,
		Y:    py - (py-s.Y)*ratio,
		Zoom: newZoom,
	}
}

// ScreenToCanvas maps a screen point to canvas coordinates under s.
func (s State) ScreenToCanvas(p geom.Point) geom.Point {
	return geom.Point{X: (p.X - s.X) / s.Zoom, Y: (p.Y - s.Y) / s.Zoom}
}

// CanvasToScreen maps a canvas point to screen coordinates under s.
func (s State) CanvasToScreen(p geom.Point) geom.Point {
	return geom.Point{X: p.X*s.Zoom + s.X, Y: p.Y*s.Zoom + s.Y}
}
