package thumbstick

import "slices"

// --- Handler registry ---

type inputHandler struct {
	id uint32
	fn func(InputEvent)
}

type handlerRegistry struct {
	down   []inputHandler
	move   []inputHandler
	up     []inputHandler
	nextID uint32
}

func (r *handlerRegistry) add(event EventType, fn func(InputEvent)) CallbackHandle {
	r.nextID++
	id := r.nextID
	h := inputHandler{id: id, fn: fn}
	switch event {
	case EventDown:
		r.down = append(r.down, h)
	case EventMove:
		r.move = append(r.move, h)
	case EventUp:
		r.up = append(r.up, h)
	}
	return CallbackHandle{id: id, reg: r, event: event}
}

func (r *handlerRegistry) list(event EventType) []inputHandler {
	switch event {
	case EventDown:
		return r.down
	case EventMove:
		return r.move
	case EventUp:
		return r.up
	}
	return nil
}

// dispatch calls every handler registered for the event's type. Handlers
// are snapshotted first so a handler may remove itself (or others) safely.
func (r *handlerRegistry) dispatch(evt InputEvent) {
	hs := r.list(evt.Type)
	if len(hs) == 0 {
		return
	}
	for _, h := range slices.Clone(hs) {
		h.fn(evt)
	}
}

func (r *handlerRegistry) len() int {
	return len(r.down) + len(r.move) + len(r.up)
}

// CallbackHandle allows removing a registered bus or surface callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires. Removing a handle
// twice, or removing the zero handle, is a no-op.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventDown:
		h.reg.down = removeInputHandler(h.reg.down, h.id)
	case EventMove:
		h.reg.move = removeInputHandler(h.reg.move, h.id)
	case EventUp:
		h.reg.up = removeInputHandler(h.reg.up, h.id)
	}
}

func removeInputHandler(s []inputHandler, id uint32) []inputHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = inputHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// --- Bus ---

// Bus is the shared input target every surface and engine subscribes to. It
// plays the role a document plays for DOM listeners: events published on the
// bus are first delivered to the surface they target, then to every global
// handler registered directly on the bus.
//
// A Bus is not safe for concurrent use. Publish from the goroutine that owns
// the engines (typically the game's Update).
type Bus struct {
	handlers handlerRegistry
	surfaces []*Surface
	captured map[int]*Surface // touch contact ID -> surface it started on
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{captured: make(map[int]*Surface)}
}

// OnDown registers a global callback for down events.
func (b *Bus) OnDown(fn func(InputEvent)) CallbackHandle {
	return b.handlers.add(EventDown, fn)
}

// OnMove registers a global callback for move events, including moves
// outside every surface.
func (b *Bus) OnMove(fn func(InputEvent)) CallbackHandle {
	return b.handlers.add(EventMove, fn)
}

// OnUp registers a global callback for up events.
func (b *Bus) OnUp(fn func(InputEvent)) CallbackHandle {
	return b.handlers.add(EventUp, fn)
}

// Len returns the number of global callbacks currently registered.
func (b *Bus) Len() int {
	return b.handlers.len()
}

// NewSurface creates a surface with the given bounds and attaches it to the
// bus. Later surfaces sit on top of earlier ones for hit testing.
func (b *Bus) NewSurface(bounds Rect) *Surface {
	s := &Surface{bus: b, bounds: bounds}
	b.surfaces = append(b.surfaces, s)
	return s
}

// Publish delivers evt to its target surfaces, then to the global handlers.
func (b *Bus) Publish(evt InputEvent) {
	for _, s := range b.targets(evt) {
		s.handlers.dispatch(evt)
	}
	b.handlers.dispatch(evt)
}

// targets resolves the surfaces an event is delivered to. The mouse targets
// whatever surface is under the cursor. A touch contact targets the surface
// it went down on until it is released.
func (b *Bus) targets(evt InputEvent) []*Surface {
	if evt.Source != SourceTouch {
		c, ok := evt.Primary()
		if !ok {
			return nil
		}
		if s := b.surfaceAt(c.X, c.Y); s != nil {
			return []*Surface{s}
		}
		return nil
	}

	var out []*Surface
	for _, c := range evt.Changed {
		var s *Surface
		switch evt.Type {
		case EventDown:
			s = b.surfaceAt(c.X, c.Y)
			if s != nil {
				b.captured[c.ID] = s
			}
		case EventMove:
			s = b.captured[c.ID]
		case EventUp:
			s = b.captured[c.ID]
			delete(b.captured, c.ID)
		}
		if s != nil && !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

// surfaceAt returns the topmost surface containing (x, y), or nil.
func (b *Bus) surfaceAt(x, y float64) *Surface {
	for i := len(b.surfaces) - 1; i >= 0; i-- {
		if b.surfaces[i].bounds.Contains(x, y) {
			return b.surfaces[i]
		}
	}
	return nil
}

func (b *Bus) detach(s *Surface) {
	if i := slices.Index(b.surfaces, s); i >= 0 {
		b.surfaces = slices.Delete(b.surfaces, i, i+1)
	}
	for id, cs := range b.captured {
		if cs == s {
			delete(b.captured, id)
		}
	}
}

// --- Surface ---

// Surface is a rectangular region of the bus that receives scoped events,
// the equivalent of the element a stick is mounted on.
type Surface struct {
	bus      *Bus
	bounds   Rect
	handlers handlerRegistry
	removed  bool
}

// Bus returns the bus the surface belongs to.
func (s *Surface) Bus() *Bus {
	return s.bus
}

// Bounds returns the surface rectangle in bus coordinates.
func (s *Surface) Bounds() Rect {
	return s.bounds
}

// SetBounds moves or resizes the surface.
func (s *Surface) SetBounds(r Rect) {
	s.bounds = r
}

// Center returns the center of the surface in bus coordinates.
func (s *Surface) Center() Vec2 {
	return s.bounds.Center()
}

// Local converts a bus position to surface-local coordinates.
func (s *Surface) Local(p Vec2) Vec2 {
	return Vec2{p.X - s.bounds.X, p.Y - s.bounds.Y}
}

// OnDown registers a callback for down events that target this surface.
func (s *Surface) OnDown(fn func(InputEvent)) CallbackHandle {
	return s.handlers.add(EventDown, fn)
}

// OnMove registers a callback for move events that target this surface.
func (s *Surface) OnMove(fn func(InputEvent)) CallbackHandle {
	return s.handlers.add(EventMove, fn)
}

// OnUp registers a callback for up events that target this surface.
func (s *Surface) OnUp(fn func(InputEvent)) CallbackHandle {
	return s.handlers.add(EventUp, fn)
}

// Len returns the number of callbacks currently registered on the surface.
func (s *Surface) Len() int {
	return s.handlers.len()
}

// Remove detaches the surface from its bus. It stops receiving events;
// registered callbacks are kept but never fire again.
func (s *Surface) Remove() {
	if s.removed {
		return
	}
	s.removed = true
	s.bus.detach(s)
}

// captures reports whether touch contact id is currently captured by s.
func (s *Surface) captures(id int) bool {
	return !s.removed && s.bus.captured[id] == s
}
