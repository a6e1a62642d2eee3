package thumbstick

import (
	"errors"
	"math"
	"testing"
	"time"
)

type redraw struct {
	center, knob Vec2
}

type fakeRenderer struct {
	calls []redraw
}

func (r *fakeRenderer) Redraw(center, knob Vec2) {
	r.calls = append(r.calls, redraw{center, knob})
}

// deltaHarness wires a DeltaStick on a 200x200 surface at the bus origin, so
// the center is (100, 100) in both bus and surface coordinates.
type deltaHarness struct {
	bus      *Bus
	surface  *Surface
	stick    *DeltaStick
	renderer *fakeRenderer
	deltas   []Delta
	ends     int
}

func newDeltaHarness(t *testing.T, cfg DeltaConfig) *deltaHarness {
	t.Helper()
	h := &deltaHarness{bus: NewBus(), renderer: &fakeRenderer{}}
	h.surface = h.bus.NewSurface(Rect{Width: 200, Height: 200})
	cfg.OnMove = func(d Delta) { h.deltas = append(h.deltas, d) }
	cfg.OnEnd = func() { h.ends++ }
	s, err := NewDeltaStick(h.surface, h.renderer, cfg)
	if err != nil {
		t.Fatalf("NewDeltaStick: %v", err)
	}
	h.stick = s
	return h
}

func (h *deltaHarness) mouse(typ EventType, x, y float64) {
	h.bus.Publish(MouseEvent(typ, x, y, time.Time{}))
}

func touch(id int, x, y float64) Contact {
	return Contact{ID: id, Source: SourceTouch, X: x, Y: y}
}

func (h *deltaHarness) touches(typ EventType, changed []Contact, contacts ...Contact) {
	h.bus.Publish(InputEvent{Type: typ, Source: SourceTouch, Contacts: contacts, Changed: changed})
}

func (h *deltaHarness) last(t *testing.T) Delta {
	t.Helper()
	if len(h.deltas) == 0 {
		t.Fatal("expected at least one delta")
	}
	return h.deltas[len(h.deltas)-1]
}

func TestNewDeltaStick_RequiresRenderer(t *testing.T) {
	bus := NewBus()
	s, err := NewDeltaStick(bus.NewSurface(Rect{Width: 100, Height: 100}), nil, DefaultDeltaConfig())
	if !errors.Is(err, ErrNoRenderer) {
		t.Fatalf("err = %v, want ErrNoRenderer", err)
	}
	if s != nil {
		t.Error("expected nil stick on error")
	}
}

func TestNewDeltaStick_InitialState(t *testing.T) {
	h := newDeltaHarness(t, DefaultDeltaConfig())

	if c := h.stick.Center(); c != (Vec2{100, 100}) {
		t.Errorf("Center = %v, want (100, 100)", c)
	}
	if p := h.stick.Position(); p != h.stick.Center() {
		t.Errorf("Position = %v, want center", p)
	}
	if len(h.renderer.calls) != 1 {
		t.Fatalf("expected 1 initial redraw, got %d", len(h.renderer.calls))
	}
	if h.renderer.calls[0].knob != (Vec2{100, 100}) {
		t.Errorf("initial knob = %v", h.renderer.calls[0].knob)
	}
}

func TestNewDeltaStick_Defaults(t *testing.T) {
	bus := NewBus()
	s, err := NewDeltaStick(bus.NewSurface(Rect{Width: 10, Height: 10}), &fakeRenderer{}, DeltaConfig{})
	if err != nil {
		t.Fatal(err)
	}
	cfg := s.Config()
	if cfg.BaseRadius != DefaultBaseRadius || cfg.StickRadius != DefaultStickRadius {
		t.Errorf("radii = (%v, %v), want defaults", cfg.BaseRadius, cfg.StickRadius)
	}
}

func TestDeltaStick_PressOffKnobDoesNotDrag(t *testing.T) {
	h := newDeltaHarness(t, DefaultDeltaConfig())
	// 30 away from the knob: not strictly inside the grab radius.
	h.mouse(EventDown, 130, 100)
	h.mouse(EventMove, 150, 100)

	if h.stick.Dragging() {
		t.Error("press outside the grab radius should not start a drag")
	}
	if len(h.deltas) != 0 {
		t.Errorf("expected no deltas, got %v", h.deltas)
	}
}

func TestDeltaStick_DragEmitsDelta(t *testing.T) {
	h := newDeltaHarness(t, DefaultDeltaConfig())
	h.mouse(EventDown, 110, 95)
	if !h.stick.Dragging() {
		t.Fatal("press on the knob should start a drag")
	}
	if len(h.deltas) != 0 {
		t.Error("press alone should not emit a delta")
	}

	h.mouse(EventMove, 130, 140)
	got := h.last(t)
	if math.Abs(got.X-0.5) > 1e-9 || math.Abs(got.Y-40.0/60) > 1e-9 {
		t.Errorf("delta = %+v, want (0.5, 0.667)", got)
	}
	if p := h.stick.Position(); math.Abs(p.X-130) > 1e-9 || math.Abs(p.Y-140) > 1e-9 {
		t.Errorf("Position = %v, want (130, 140)", p)
	}
	if n := len(h.renderer.calls); n != 2 {
		t.Errorf("expected 2 redraws, got %d", n)
	}
}

func TestDeltaStick_ClampsToBaseRadius(t *testing.T) {
	points := []Vec2{{199, 100}, {0, 0}, {100, 199}, {190, 10}, {5, 150}}
	h := newDeltaHarness(t, DefaultDeltaConfig())
	h.mouse(EventDown, 100, 100)

	for _, p := range points {
		h.mouse(EventMove, p.X, p.Y)
		off := h.stick.Offset()
		if off.Len() > DefaultBaseRadius+1e-9 {
			t.Errorf("move to %v: |offset| = %v exceeds base radius", p, off.Len())
		}
		if math.Abs(off.Len()-DefaultBaseRadius) > 1e-9 {
			t.Errorf("move to %v: |offset| = %v, want %v", p, off.Len(), DefaultBaseRadius)
		}
		d := h.last(t)
		if mag := math.Hypot(d.X, d.Y); math.Abs(mag-1) > 1e-9 {
			t.Errorf("move to %v: |delta| = %v, want 1", p, mag)
		}
	}
}

func TestDeltaStick_LockAxis(t *testing.T) {
	tests := []struct {
		name  string
		axis  Axis
		to    Vec2
		wantX float64
		wantY float64
	}{
		{"x positive", AxisX, Vec2{120, 130}, math.Hypot(20, 30) / 60, 0},
		{"x negative", AxisX, Vec2{70, 60}, -50.0 / 60, 0},
		{"x clamped", AxisX, Vec2{10, 100}, -1, 0},
		{"x zero delta is negative", AxisX, Vec2{100, 130}, -0.5, 0},
		{"y positive", AxisY, Vec2{130, 120}, 0, math.Hypot(30, 20) / 60},
		{"y negative", AxisY, Vec2{100, 0}, 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultDeltaConfig()
			cfg.LockAxis = tt.axis
			h := newDeltaHarness(t, cfg)
			h.mouse(EventDown, 100, 100)
			h.mouse(EventMove, tt.to.X, tt.to.Y)

			got := h.last(t)
			if math.Abs(got.X-tt.wantX) > 1e-9 || math.Abs(got.Y-tt.wantY) > 1e-9 {
				t.Errorf("delta = %+v, want (%v, %v)", got, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestDeltaStick_ReleaseResetsAndCallsOnEnd(t *testing.T) {
	h := newDeltaHarness(t, DefaultDeltaConfig())
	h.mouse(EventDown, 100, 100)
	h.mouse(EventMove, 140, 100)
	moves := len(h.deltas)

	h.mouse(EventUp, 140, 100)
	if h.stick.Dragging() {
		t.Error("release should end the drag")
	}
	if h.ends != 1 {
		t.Errorf("OnEnd called %d times, want 1", h.ends)
	}
	if len(h.deltas) != moves {
		t.Error("release must not emit a final delta")
	}
	if p := h.stick.Position(); p != h.stick.Center() {
		t.Errorf("Position = %v, want center", p)
	}
	last := h.renderer.calls[len(h.renderer.calls)-1]
	if last.knob != h.stick.Center() {
		t.Errorf("last redraw knob = %v, want center", last.knob)
	}

	h.mouse(EventMove, 150, 100)
	if len(h.deltas) != moves {
		t.Error("moves after release should be ignored")
	}
}

func TestDeltaStick_ReleaseWithoutDragDoesNotCallOnEnd(t *testing.T) {
	h := newDeltaHarness(t, DefaultDeltaConfig())
	h.mouse(EventUp, 100, 100)
	if h.ends != 0 {
		t.Errorf("OnEnd called %d times, want 0", h.ends)
	}
}

func TestDeltaStick_NilCallbacks(t *testing.T) {
	bus := NewBus()
	s, err := NewDeltaStick(bus.NewSurface(Rect{Width: 200, Height: 200}), &fakeRenderer{}, DefaultDeltaConfig())
	if err != nil {
		t.Fatal(err)
	}
	bus.Publish(MouseEvent(EventDown, 100, 100, time.Time{}))
	bus.Publish(MouseEvent(EventMove, 120, 100, time.Time{}))
	bus.Publish(MouseEvent(EventUp, 120, 100, time.Time{}))
	if s.Dragging() {
		t.Error("expected drag to end")
	}
}

func TestDeltaStick_SurfaceLocalCoordinates(t *testing.T) {
	bus := NewBus()
	surface := bus.NewSurface(Rect{X: 300, Y: 50, Width: 200, Height: 200})
	var got Delta
	cfg := DefaultDeltaConfig()
	cfg.OnMove = func(d Delta) { got = d }
	s, err := NewDeltaStick(surface, &fakeRenderer{}, cfg)
	if err != nil {
		t.Fatal(err)
	}

	bus.Publish(MouseEvent(EventDown, 400, 150, time.Time{}))
	if !s.Dragging() {
		t.Fatal("press at the surface center should grab the knob")
	}
	bus.Publish(MouseEvent(EventMove, 430, 150, time.Time{}))
	if math.Abs(got.X-0.5) > 1e-9 || math.Abs(got.Y) > 1e-9 {
		t.Errorf("delta = %+v, want (0.5, 0)", got)
	}
}

func TestDeltaStick_MultiTouchClaimsFirstInRange(t *testing.T) {
	h := newDeltaHarness(t, DefaultDeltaConfig())
	far := touch(1, 20, 20)
	near := touch(2, 105, 100)
	h.touches(EventDown, []Contact{far, near}, far, near)

	if !h.stick.Dragging() {
		t.Fatal("expected the near contact to be claimed")
	}

	// Only the far finger moves: ignored.
	far.X = 40
	h.touches(EventMove, []Contact{far}, far)
	if len(h.deltas) != 0 {
		t.Errorf("move of an untracked contact emitted %v", h.deltas)
	}

	near.X = 130
	h.touches(EventMove, []Contact{near}, far, near)
	if got := h.last(t); math.Abs(got.X-0.5) > 1e-9 {
		t.Errorf("delta = %+v, want X=0.5", got)
	}
}

func TestDeltaStick_SecondTouchCannotStealDrag(t *testing.T) {
	h := newDeltaHarness(t, DefaultDeltaConfig())
	first := touch(5, 100, 100)
	h.touches(EventDown, []Contact{first}, first)

	second := touch(6, 100, 100)
	h.touches(EventDown, []Contact{second}, first, second)

	second.X = 60
	h.touches(EventMove, []Contact{second}, first, second)
	if len(h.deltas) != 0 {
		t.Errorf("second touch should not drive the stick, got %v", h.deltas)
	}

	// Lifting the second finger does not end the gesture.
	h.touches(EventUp, []Contact{second}, first)
	if !h.stick.Dragging() || h.ends != 0 {
		t.Error("releasing an untracked touch ended the drag")
	}

	h.touches(EventUp, []Contact{first})
	if h.stick.Dragging() || h.ends != 1 {
		t.Errorf("releasing the tracked touch: dragging=%v ends=%d", h.stick.Dragging(), h.ends)
	}
}

func TestDeltaStick_TouchIDZeroIsTracked(t *testing.T) {
	h := newDeltaHarness(t, DefaultDeltaConfig())
	c := touch(0, 100, 100)
	h.touches(EventDown, []Contact{c}, c)

	other := touch(3, 100, 100)
	h.touches(EventDown, []Contact{other}, c, other)

	c.Y = 130
	h.touches(EventMove, []Contact{c}, c, other)
	if got := h.last(t); math.Abs(got.Y-0.5) > 1e-9 {
		t.Errorf("delta = %+v, want Y=0.5", got)
	}
}

func TestDeltaStick_TouchLeavingSurfaceStaysTracked(t *testing.T) {
	h := newDeltaHarness(t, DefaultDeltaConfig())
	c := touch(1, 100, 100)
	h.touches(EventDown, []Contact{c}, c)

	c.X = 900
	h.touches(EventMove, []Contact{c}, c)
	if got := h.last(t); math.Abs(got.X-1) > 1e-9 {
		t.Errorf("delta = %+v, want X=1", got)
	}

	h.touches(EventUp, []Contact{c})
	if h.stick.Dragging() {
		t.Error("touch end outside the surface should still end the drag")
	}
}

func TestDeltaStick_IgnoresTouchCapturedElsewhere(t *testing.T) {
	h := newDeltaHarness(t, DefaultDeltaConfig())

	// Finger 1 goes down outside every surface and slides onto the knob.
	// None of its events are routed to this surface.
	outside := touch(1, 250, 100)
	h.touches(EventDown, []Contact{outside}, outside)
	outside.X = 100
	h.touches(EventMove, []Contact{outside}, outside)

	onSurface := touch(2, 150, 20)
	h.touches(EventDown, []Contact{onSurface}, outside, onSurface)
	if h.stick.Dragging() {
		t.Fatal("claimed a touch that went down outside the surface")
	}

	h.touches(EventUp, []Contact{onSurface}, outside)
	h.touches(EventUp, []Contact{outside})

	grab := touch(3, 100, 100)
	h.touches(EventDown, []Contact{grab}, grab)
	if !h.stick.Dragging() {
		t.Error("a fresh touch on the knob should still grab it")
	}
}

func TestDeltaStick_TrackedTouchMissingFromContactsEndsDrag(t *testing.T) {
	h := newDeltaHarness(t, DefaultDeltaConfig())
	tracked := touch(1, 100, 100)
	h.touches(EventDown, []Contact{tracked}, tracked)
	other := touch(2, 150, 150)
	h.touches(EventDown, []Contact{other}, tracked, other)

	// The tracked finger vanished without its own up event.
	h.touches(EventUp, []Contact{other})
	if h.stick.Dragging() || h.ends != 1 {
		t.Errorf("dragging=%v ends=%d, want the drag ended once", h.stick.Dragging(), h.ends)
	}
	if h.stick.Position() != h.stick.Center() {
		t.Errorf("position = %v, want center", h.stick.Position())
	}
}

func TestDeltaStick_MouseCannotDriveTouchDrag(t *testing.T) {
	h := newDeltaHarness(t, DefaultDeltaConfig())
	c := touch(1, 100, 100)
	h.touches(EventDown, []Contact{c}, c)

	h.mouse(EventMove, 130, 100)
	if len(h.deltas) != 0 {
		t.Errorf("mouse move drove a touch drag: %v", h.deltas)
	}
	h.mouse(EventUp, 130, 100)
	if !h.stick.Dragging() {
		t.Error("mouse up ended a touch drag")
	}

	c.X = 130
	h.touches(EventMove, []Contact{c}, c)
	if got := h.last(t); math.Abs(got.X-0.5) > 1e-9 {
		t.Errorf("delta = %+v, want X=0.5", got)
	}
}

func TestDeltaStick_DestroyUnbinds(t *testing.T) {
	h := newDeltaHarness(t, DefaultDeltaConfig())
	if h.surface.Len() != 3 {
		t.Fatalf("expected 3 surface handlers, got %d", h.surface.Len())
	}
	h.stick.Destroy()
	h.stick.Destroy()
	if h.surface.Len() != 0 {
		t.Errorf("handlers left after Destroy: %d", h.surface.Len())
	}

	h.mouse(EventDown, 100, 100)
	if h.stick.Dragging() {
		t.Error("destroyed stick should not react to input")
	}
}

func TestDeltaStick_EntityStore(t *testing.T) {
	cfg := DefaultDeltaConfig()
	cfg.Name = "throttle"
	h := newDeltaHarness(t, cfg)
	store := &recordingStore{}
	h.stick.SetEntityStore(store)

	h.mouse(EventDown, 100, 100)
	h.mouse(EventMove, 100, 70)
	h.mouse(EventUp, 100, 70)

	if len(store.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(store.events))
	}
	if e := store.events[0]; e.Kind != StickMoved || e.Name != "throttle" || math.Abs(e.Y+0.5) > 1e-9 {
		t.Errorf("event 0 = %+v", e)
	}
	if e := store.events[1]; e.Kind != StickEnded {
		t.Errorf("event 1 = %+v, want StickEnded", e)
	}
}

func TestRendererFunc(t *testing.T) {
	b := NewBus()
	s := b.NewSurface(Rect{Width: 100, Height: 100})
	var calls int
	var knob Vec2
	d, err := NewDeltaStick(s, RendererFunc(func(_, k Vec2) {
		calls++
		knob = k
	}), DefaultDeltaConfig())
	if err != nil {
		t.Fatal(err)
	}
	defer d.Destroy()

	if calls != 1 || knob != (Vec2{50, 50}) {
		t.Errorf("calls=%d knob=%v, want one redraw at the center", calls, knob)
	}
}
