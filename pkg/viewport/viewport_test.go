package viewport

import (
	"math"
	"math/rand"
	"testing"

	"github.com/matzehuels/folio/pkg/events"
	"github.com/matzehuels/folio/pkg/geom"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestZoomAtKeepsPointFixed(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 500; i++ {
		s := State{X: rng.Float64()*2000 - 1000, Y: rng.Float64()*2000 - 1000, Zoom: 0.4 + rng.Float64()*1.1}
		px, py := rng.Float64()*1500, rng.Float64()*900
		z1 := 0.4 + rng.Float64()*1.1
		got := ZoomAt(s, px, py, z1)
		before := s.ScreenToCanvas(geom.Point{X: px, Y: py})
		after := got.ScreenToCanvas(geom.Point{X: px, Y: py})
		if math.Abs(before.X-after.X) > 1e-6 || math.Abs(before.Y-after.Y) > 1e-6 {
			t.Fatalf("point moved: %v -> %v", before, after)
		}
	}
}

func TestZoomAtInvalidZoom(t *testing.T) {
	got := ZoomAt(State{X: 5, Y: 6, Zoom: 0}, 100, 100, 1)
	if got != (State{X: 5, Y: 6, Zoom: 1}) {
		t.Errorf("ZoomAt() from zero zoom = %+v", got)
	}
}

// Ctrl+wheel with deltaY -100 at (300,200) from zoom 1.0 gives 1.25 with the
// pointer fixed.
func TestCtrlWheelZoomTowardPointer(t *testing.T) {
	bus := events.NewBus()
	v := New(bus, 1200, 800, WithState(State{Zoom: 1}))
	bus.EmitWheel(events.WheelEvent{X: 300, Y: 200, DeltaY: -100, Mods: events.Ctrl})

	s := v.State()
	if !near(s.Zoom, 1.25) {
		t.Fatalf("Zoom = %v, want 1.25", s.Zoom)
	}
	if !near(s.X, -75) || !near(s.Y, -50) {
		t.Errorf("offset = (%v,%v), want (-75,-50)", s.X, s.Y)
	}
	if !near((300-s.X)/s.Zoom, 300) || !near((200-s.Y)/s.Zoom, 200) {
		t.Error("canvas point under the pointer moved")
	}
}

func TestWheel(t *testing.T) {
	tests := []struct {
		name  string
		start State
		event events.WheelEvent
		want  State
	}{
		{
			name:  "plain scroll pans",
			start: State{Zoom: 1},
			event: events.WheelEvent{DeltaX: 10, DeltaY: 30},
			want:  State{X: -10, Y: -30, Zoom: 1},
		},
		{
			name:  "shift swaps axes",
			start: State{Zoom: 1},
			event: events.WheelEvent{DeltaX: 10, DeltaY: 30, Mods: events.Shift},
			want:  State{X: -30, Y: -10, Zoom: 1},
		},
		{
			name:  "pinch uses pinch sensitivity",
			start: State{Zoom: 1},
			event: events.WheelEvent{DeltaY: -10, Mods: events.Ctrl},
			want:  State{Zoom: 1.1},
		},
		{
			name:  "zoom clamps at max",
			start: State{Zoom: 1.4},
			event: events.WheelEvent{DeltaY: -1000, Mods: events.Meta},
			want:  State{Zoom: 1.5},
		},
		{
			name:  "zoom clamps at min",
			start: State{Zoom: 0.5},
			event: events.WheelEvent{DeltaY: 1000, Mods: events.Ctrl},
			want:  State{Zoom: 0.4},
		},
		{
			name:  "nan ignored",
			start: State{Zoom: 1},
			event: events.WheelEvent{DeltaY: math.NaN(), Mods: events.Ctrl},
			want:  State{Zoom: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(events.NewBus(), 800, 600, WithState(tt.start))
			if !v.HandleWheel(tt.event) {
				t.Error("HandleWheel() = false, want prevented")
			}
			got := v.State()
			if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) || !near(got.Zoom, tt.want.Zoom) {
				t.Errorf("State() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestManualPan(t *testing.T) {
	bus := events.NewBus()
	v := New(bus, 800, 600, WithState(State{X: 10, Y: 20, Zoom: 1}))
	base := bus.Listeners()

	if v.PointerDown(events.PointerEvent{X: 100, Y: 100}) {
		t.Fatal("primary button without space should not pan")
	}
	if !v.PointerDown(events.PointerEvent{X: 100, Y: 100, Button: events.ButtonMiddle}) {
		t.Fatal("middle button should pan")
	}
	bus.EmitPointerMove(events.PointerEvent{X: 150, Y: 80})
	if s := v.State(); s.X != 60 || s.Y != 0 {
		t.Errorf("State() = %+v, want (60,0)", s)
	}
	bus.EmitPointerUp(events.PointerEvent{X: 160, Y: 80})
	if s := v.State(); s.X != 70 {
		t.Errorf("X = %v, want 70", s.X)
	}
	if v.Panning() || bus.Listeners() != base {
		t.Errorf("pan not released: panning=%v listeners=%d want %d", v.Panning(), bus.Listeners(), base)
	}
}

func TestSpacePan(t *testing.T) {
	bus := events.NewBus()
	v := New(bus, 800, 600)
	bus.EmitKey(events.KeyEvent{Key: " ", Down: true})
	if !v.SpaceHeld() {
		t.Fatal("SpaceHeld() = false")
	}
	if !v.PointerDown(events.PointerEvent{X: 0, Y: 0}) {
		t.Fatal("space + primary should pan")
	}
	if v.PointerDown(events.PointerEvent{Button: events.ButtonMiddle}) {
		t.Error("second pan started during an active pan")
	}
	bus.EmitPointerUp(events.PointerEvent{X: 5, Y: 5})
	bus.EmitKey(events.KeyEvent{Key: " ", Down: false})
	if v.SpaceHeld() {
		t.Error("SpaceHeld() after release = true")
	}
}

func TestKeyboardZoom(t *testing.T) {
	bus := events.NewBus()
	v := New(bus, 1000, 800, WithState(State{Zoom: 1}))
	v.SetContentSize(2000, 1000)

	if v.HandleKey(events.KeyEvent{Key: "=", Down: true}) {
		t.Error("unmodified = consumed")
	}
	bus.EmitKey(events.KeyEvent{Key: "=", Down: true, Mods: events.Ctrl})
	s := v.State()
	if !near(s.Zoom, 1.1) {
		t.Errorf("Zoom after Ctrl+= = %v, want 1.1", s.Zoom)
	}
	// Center (500,400) stays fixed.
	if !near((500-s.X)/s.Zoom, 500) || !near((400-s.Y)/s.Zoom, 400) {
		t.Errorf("center moved: %+v", s)
	}

	bus.EmitKey(events.KeyEvent{Key: "-", Down: true, Mods: events.Meta})
	bus.EmitKey(events.KeyEvent{Key: "-", Down: true, Mods: events.Meta})
	if !near(v.State().Zoom, 0.9) {
		t.Errorf("Zoom after two Cmd+- = %v, want 0.9", v.State().Zoom)
	}

	bus.EmitKey(events.KeyEvent{Key: "0", Down: true, Mods: events.Ctrl})
	s = v.State()
	if s.Zoom != DefaultZoom || !near(s.X, (1000-2000*DefaultZoom)/2) || !near(s.Y, (800-1000*DefaultZoom)/2) {
		t.Errorf("Fit state = %+v", s)
	}
}

func TestSetZoomClamps(t *testing.T) {
	v := New(events.NewBus(), 800, 600)
	for _, z := range []float64{math.NaN(), -1, 0} {
		v.SetZoom(z)
		if v.State().Zoom != DefaultMinZoom {
			t.Errorf("SetZoom(%v) = %v, want %v", z, v.State().Zoom, DefaultMinZoom)
		}
	}
	v.SetZoom(9)
	if v.State().Zoom != DefaultMaxZoom {
		t.Errorf("SetZoom(9) = %v", v.State().Zoom)
	}
}

func TestCoordinateMapping(t *testing.T) {
	v := New(events.NewBus(), 800, 600, WithState(State{X: 40, Y: -20, Zoom: 0.5}))
	p := geom.Point{X: 123, Y: 456}
	back := v.ScreenToCanvas(v.CanvasToScreen(p))
	if !near(back.X, p.X) || !near(back.Y, p.Y) {
		t.Errorf("round trip = %+v, want %+v", back, p)
	}
	if got := v.Transform(); got != "translate(40px, -20px) scale(0.5)" {
		t.Errorf("Transform() = %q", got)
	}
}

func TestOptionsNormalize(t *testing.T) {
	o := Options{MinZoom: 2, MaxZoom: 0.5, DefaultZoom: 9, WheelSensitivity: -1}.Normalize()
	if o.MinZoom != 0.5 || o.MaxZoom != 2 || o.DefaultZoom != 2 {
		t.Errorf("bounds = %+v", o)
	}
	if o.WheelSensitivity != DefaultWheelSensitivity || o.ZoomStep != DefaultZoomStep {
		t.Errorf("sensitivities = %+v", o)
	}
}

func TestOnChangeAndClose(t *testing.T) {
	bus := events.NewBus()
	var n int
	v := New(bus, 800, 600, WithOnChange(func(State) { n++ }))
	bus.EmitWheel(events.WheelEvent{DeltaY: 5})
	v.Close()
	bus.EmitWheel(events.WheelEvent{DeltaY: 5})
	if n != 1 {
		t.Errorf("changes = %d, want 1", n)
	}
	if bus.Listeners() != 0 {
		t.Errorf("Listeners() = %d, want 0", bus.Listeners())
	}
}

func TestNewUsesConfiguredDefaultZoom(t *testing.T) {
	v := New(events.NewBus(), 800, 600, WithOptions(Options{DefaultZoom: 1.2}))
	if v.State().Zoom != 1.2 {
		t.Errorf("Zoom = %v, want 1.2", v.State().Zoom)
	}
	if v.Options().MaxZoom != DefaultMaxZoom {
		t.Errorf("MaxZoom = %v", v.Options().MaxZoom)
	}
}
