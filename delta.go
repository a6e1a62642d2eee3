package thumbstick

import (
	"errors"
	"math"
)

// ErrNoRenderer is returned by NewDeltaStick when no renderer is supplied.
var ErrNoRenderer = errors.New("thumbstick: delta stick requires a renderer")

// Defaults for DeltaConfig.
const (
	DefaultBaseRadius  = 60.0
	DefaultStickRadius = 30.0
)

// Delta is the output of a DeltaStick: the knob offset from the center on
// each axis divided by the base radius.
type Delta struct {
	X, Y float64
}

// Renderer redraws a DeltaStick. center and knob are surface-local.
// Implementations that load images asynchronously should skip drawing
// until their images are ready.
type Renderer interface {
	Redraw(center, knob Vec2)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(center, knob Vec2)

// Redraw calls f(center, knob).
func (f RendererFunc) Redraw(center, knob Vec2) {
	f(center, knob)
}

// DeltaConfig configures a DeltaStick. Zero radii use the defaults.
type DeltaConfig struct {
	// Name identifies the stick in logs and ECS events.
	Name string
	// BaseRadius is the maximum knob travel from the center.
	BaseRadius float64
	// StickRadius is the grab radius around the knob.
	StickRadius float64
	// LockAxis restricts the knob to one axis. AxisNone allows free movement.
	LockAxis Axis
	// OnMove receives every delta. Nil is a no-op.
	OnMove func(Delta)
	// OnEnd is called once when a gesture ends. Nil is a no-op.
	OnEnd func()
}

// DefaultDeltaConfig returns a DeltaConfig with the default radii.
func DefaultDeltaConfig() DeltaConfig {
	return DeltaConfig{
		BaseRadius:  DefaultBaseRadius,
		StickRadius: DefaultStickRadius,
	}
}

// DeltaStick is the delta input engine. A gesture only starts when the press
// lands on the knob itself; the knob then follows the tracked contact,
// clamped to the base radius, and snaps back to the center on release.
//
// All events are taken from the surface. Touch contacts stay routed to the
// surface they went down on, so a finger may leave the surface mid-drag.
type DeltaStick struct {
	cfg      DeltaConfig
	surface  *Surface
	renderer Renderer
	store    EntityStore

	center   Vec2 // surface-local
	pos      Vec2 // surface-local knob position
	dragging bool
	tracking bool // a touch contact owns the drag
	touchID  int

	handles   []CallbackHandle
	destroyed bool
}

// NewDeltaStick creates a DeltaStick centered on surface. The renderer is
// asked to draw the initial state before NewDeltaStick returns.
func NewDeltaStick(surface *Surface, renderer Renderer, cfg DeltaConfig) (*DeltaStick, error) {
	if renderer == nil {
		return nil, ErrNoRenderer
	}
	if cfg.BaseRadius == 0 {
		cfg.BaseRadius = DefaultBaseRadius
	}
	if cfg.StickRadius == 0 {
		cfg.StickRadius = DefaultStickRadius
	}
	b := surface.Bounds()
	d := &DeltaStick{
		cfg:      cfg,
		surface:  surface,
		renderer: renderer,
		center:   Vec2{b.Width / 2, b.Height / 2},
	}
	d.pos = d.center
	d.handles = []CallbackHandle{
		surface.OnDown(d.handleStart),
		surface.OnMove(d.handleMove),
		surface.OnUp(d.handleEnd),
	}
	d.renderer.Redraw(d.center, d.pos)
	return d, nil
}

// SetEntityStore sets the optional ECS bridge.
func (d *DeltaStick) SetEntityStore(store EntityStore) {
	d.store = store
}

// Config returns the configuration in effect, with defaults applied.
func (d *DeltaStick) Config() DeltaConfig {
	return d.cfg
}

// Center returns the surface-local center of the base.
func (d *DeltaStick) Center() Vec2 {
	return d.center
}

// Position returns the surface-local knob position.
func (d *DeltaStick) Position() Vec2 {
	return d.pos
}

// Offset returns the knob offset from the center.
func (d *DeltaStick) Offset() Vec2 {
	return d.pos.Sub(d.center)
}

// Dragging reports whether a gesture is in progress.
func (d *DeltaStick) Dragging() bool {
	return d.dragging
}

// Destroy unsubscribes every callback the stick registered. It is safe to
// call more than once.
func (d *DeltaStick) Destroy() {
	if d.destroyed {
		return
	}
	d.destroyed = true
	for _, h := range d.handles {
		h.Remove()
	}
	d.handles = nil
}

func (d *DeltaStick) handleStart(evt InputEvent) {
	if evt.Source == SourceTouch {
		for _, c := range evt.Contacts {
			if d.tracking {
				break
			}
			// Fingers that went down elsewhere are never routed here again.
			if !d.surface.captures(c.ID) {
				continue
			}
			if Dist(d.surface.Local(c.Pos()), d.pos) < d.cfg.StickRadius {
				d.touchID = c.ID
				d.tracking = true
				d.dragging = true
				logger.Debug("delta stick claimed touch", "stick", d.cfg.Name, "touch", c.ID)
				return
			}
		}
		return
	}

	c, ok := evt.Primary()
	if !ok {
		return
	}
	if Dist(d.surface.Local(c.Pos()), d.pos) < d.cfg.StickRadius {
		d.dragging = true
		logger.Debug("delta stick drag start", "stick", d.cfg.Name)
		return
	}
	logger.Debug("delta stick grab missed", "stick", d.cfg.Name)
}

func (d *DeltaStick) handleMove(evt InputEvent) {
	if !d.dragging {
		return
	}

	var c Contact
	var ok bool
	switch {
	case !d.tracking && evt.Source != SourceTouch:
		c, ok = evt.Primary()
	case d.tracking:
		// Other fingers moving do not drive the stick.
		c, ok = evt.changed(d.touchID)
	}
	if !ok {
		return
	}

	d.pos = d.center.Add(d.clamp(d.surface.Local(c.Pos()).Sub(d.center)))
	d.renderer.Redraw(d.center, d.pos)

	off := d.Offset()
	delta := Delta{X: off.X / d.cfg.BaseRadius, Y: off.Y / d.cfg.BaseRadius}
	if d.cfg.OnMove != nil {
		d.cfg.OnMove(delta)
	}
	if d.store != nil {
		d.store.EmitEvent(StickEvent{Kind: StickMoved, Name: d.cfg.Name, X: delta.X, Y: delta.Y})
	}
}

func (d *DeltaStick) handleEnd(evt InputEvent) {
	if !d.dragging {
		return
	}
	// Only the input that owns the gesture can end it. A tracked touch that
	// is gone from Contacts without being reported also ends it.
	if evt.Source == SourceTouch {
		if !d.tracking {
			return
		}
		_, lifted := evt.changed(d.touchID)
		_, down := evt.Find(d.touchID)
		if !lifted && down {
			return
		}
	} else if d.tracking {
		return
	}

	d.dragging = false
	d.tracking = false
	d.touchID = 0
	d.pos = d.center
	d.renderer.Redraw(d.center, d.pos)
	logger.Debug("delta stick drag end", "stick", d.cfg.Name)

	if d.cfg.OnEnd != nil {
		d.cfg.OnEnd()
	}
	if d.store != nil {
		d.store.EmitEvent(StickEvent{Kind: StickEnded, Name: d.cfg.Name})
	}
}

// clamp limits delta to the base radius and applies the axis lock. A locked
// axis carries the full clamped magnitude, signed by the delta on that axis.
func (d *DeltaStick) clamp(delta Vec2) Vec2 {
	dist := math.Min(delta.Len(), d.cfg.BaseRadius)
	switch d.cfg.LockAxis {
	case AxisX:
		if delta.X > 0 {
			return Vec2{dist, 0}
		}
		return Vec2{-dist, 0}
	case AxisY:
		if delta.Y > 0 {
			return Vec2{0, dist}
		}
		return Vec2{0, -dist}
	default:
		angle := math.Atan2(delta.Y, delta.X)
		return Vec2{math.Cos(angle) * dist, math.Sin(angle) * dist}
	}
}
