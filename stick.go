package thumbstick

import (
	"math"
	"time"
)

// Defaults for StickConfig.
const (
	DefaultRadius       = 50.0
	DefaultThrottleTime = 50 * time.Millisecond
	DefaultDeadZone     = 0.1
)

// Reading is the normalized output of a Stick. X and Y are in [-1, 1],
// Angle is atan2(Y, X) in radians and Distance is in [0, 1]. All four are
// rounded to two decimal places.
type Reading struct {
	X        float64
	Y        float64
	Angle    float64
	Distance float64
}

// StickConfig configures a Stick. Start from DefaultStickConfig; values are
// not validated, so a DeadZone of 1 or more suppresses all output.
type StickConfig struct {
	// Name identifies the stick in logs and ECS events.
	Name string
	// Radius is the travel of the stick in bus units. Zero uses DefaultRadius.
	Radius float64
	// LockX forces the Y output to zero; LockY forces the X output to zero.
	LockX bool
	LockY bool
	// ThrottleTime is the minimum interval between processed move events.
	ThrottleTime time.Duration
	// DeadZone is the normalized magnitude below which output is zeroed.
	DeadZone float64
	// OnMove receives every reading. Nil is a no-op.
	OnMove func(Reading)
}

// DefaultStickConfig returns a StickConfig with the default radius,
// throttle interval and dead zone.
func DefaultStickConfig() StickConfig {
	return StickConfig{
		Radius:       DefaultRadius,
		ThrottleTime: DefaultThrottleTime,
		DeadZone:     DefaultDeadZone,
	}
}

// Stick is the normalized input engine. Pressing on its surface starts a
// drag; moves anywhere on the bus update it while active; any release on the
// bus ends it and emits a neutral reading.
//
// Moves are throttled to one per ThrottleTime. The press itself is never
// throttled.
type Stick struct {
	cfg     StickConfig
	surface *Surface
	store   EntityStore
	now     func() time.Time

	active bool
	offset Vec2 // clamped offset from the surface center
	gate   throttleGate

	handles   []CallbackHandle
	destroyed bool
}

// NewStick creates a Stick on surface and subscribes it to bus. Down events
// are taken from the surface; move and up events from the bus, so a drag
// keeps tracking after the pointer leaves the surface.
func NewStick(bus *Bus, surface *Surface, cfg StickConfig) *Stick {
	if cfg.Radius == 0 {
		cfg.Radius = DefaultRadius
	}
	s := &Stick{
		cfg:     cfg,
		surface: surface,
		now:     time.Now,
		gate:    throttleGate{interval: cfg.ThrottleTime},
	}
	s.handles = []CallbackHandle{
		surface.OnDown(s.handleStart),
		bus.OnMove(s.handleMove),
		bus.OnUp(s.handleEnd),
	}
	return s
}

// SetNowFunc overrides the clock used for throttling.
func (s *Stick) SetNowFunc(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// SetEntityStore sets the optional ECS bridge.
func (s *Stick) SetEntityStore(store EntityStore) {
	s.store = store
}

// Config returns the configuration in effect, with defaults applied.
func (s *Stick) Config() StickConfig {
	return s.cfg
}

// Active reports whether a drag is in progress.
func (s *Stick) Active() bool {
	return s.active
}

// Offset returns the clamped stick offset from the surface center.
func (s *Stick) Offset() Vec2 {
	return s.offset
}

// Reading returns the reading for the current offset.
func (s *Stick) Reading() Reading {
	return normalize(s.offset, s.cfg.Radius, s.cfg.DeadZone)
}

// Destroy unsubscribes every callback the stick registered. It is safe to
// call more than once.
func (s *Stick) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	for _, h := range s.handles {
		h.Remove()
	}
	s.handles = nil
}

func (s *Stick) handleStart(evt InputEvent) {
	s.active = true
	s.gate.stamp(s.now())
	logger.Debug("stick drag start", "stick", s.cfg.Name)
	s.update(evt)
}

func (s *Stick) handleMove(evt InputEvent) {
	if !s.active {
		return
	}
	if !s.gate.allow(s.now()) {
		return
	}
	s.update(evt)
}

func (s *Stick) handleEnd(InputEvent) {
	if s.active {
		logger.Debug("stick drag end", "stick", s.cfg.Name)
	}
	s.active = false
	s.offset = Vec2{}
	s.emit()
}

// update recomputes the offset from the event's primary contact and emits.
func (s *Stick) update(evt InputEvent) {
	c, ok := evt.Primary()
	if !ok {
		return
	}
	s.offset = clampOffset(c.Pos().Sub(s.surface.Center()), s.cfg.Radius, s.cfg.LockX, s.cfg.LockY)
	s.emit()
}

func (s *Stick) emit() {
	r := s.Reading()
	if s.cfg.OnMove != nil {
		s.cfg.OnMove(r)
	}
	if s.store != nil {
		s.store.EmitEvent(StickEvent{
			Kind: StickMoved, Name: s.cfg.Name,
			X: r.X, Y: r.Y, Angle: r.Angle, Distance: r.Distance,
		})
	}
}

// clampOffset applies axis locks and clamps the magnitude of raw to radius.
// lockX zeroes Y and lockY zeroes X.
func clampOffset(raw Vec2, radius float64, lockX, lockY bool) Vec2 {
	x, y := raw.X, raw.Y
	if lockX {
		y = 0
	}
	if lockY {
		x = 0
	}
	dist := math.Min(math.Sqrt(x*x+y*y), radius)
	angle := math.Atan2(y, x)

	var out Vec2
	if !lockY {
		out.X = math.Cos(angle) * dist
	}
	if !lockX {
		out.Y = math.Sin(angle) * dist
	}
	return out
}

// normalize converts an offset to a rounded Reading, zeroing it inside the
// dead zone. Angle and Distance are derived from the post-dead-zone values.
func normalize(offset Vec2, radius, deadZone float64) Reading {
	nx := offset.X / radius
	ny := offset.Y / radius
	if math.Sqrt(nx*nx+ny*ny) < deadZone {
		nx, ny = 0, 0
	}
	dist := math.Min(math.Sqrt(nx*nx+ny*ny), 1)
	return Reading{
		X:        round2(nx),
		Y:        round2(ny),
		Angle:    round2(math.Atan2(ny, nx)),
		Distance: round2(dist),
	}
}
