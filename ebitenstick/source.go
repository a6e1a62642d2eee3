package ebitenstick

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/thumbstick"
)

// touchSample is one touch position read from ebiten in a frame.
type touchSample struct {
	id   int
	x, y float64
}

// Source polls ebiten mouse and touch state once per frame and publishes the
// changes on a Bus as thumbstick.InputEvents. Call Update from the game's
// Update, before anything that reads stick output.
type Source struct {
	bus *thumbstick.Bus
	now func() time.Time

	// ScreenToWorld converts screen coordinates to bus coordinates. Nil
	// means the bus uses screen coordinates.
	ScreenToWorld func(sx, sy float64) (float64, float64)

	// Mouse state (left button only).
	mouseDown bool
	mouseX    float64
	mouseY    float64

	// Touch state: contacts down at the end of the previous frame, in the
	// order they were first seen.
	touches  []thumbstick.Contact
	touchIDs []ebiten.TouchID
	samples  []touchSample

	injectQueue []injectedPointer
}

// NewSource creates a Source publishing on bus.
func NewSource(bus *thumbstick.Bus) *Source {
	return &Source{bus: bus, now: time.Now}
}

// SetNowFunc overrides the clock used to timestamp events.
func (s *Source) SetNowFunc(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// Update reads this frame's input and publishes it. A queued injected
// pointer event replaces the real mouse for the frame.
func (s *Source) Update() {
	if !s.replayInjected() {
		mx, my := ebiten.CursorPosition()
		s.processMouse(float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
	}

	s.touchIDs = ebiten.AppendTouchIDs(s.touchIDs[:0])
	s.samples = s.samples[:0]
	for _, id := range s.touchIDs {
		tx, ty := ebiten.TouchPosition(id)
		s.samples = append(s.samples, touchSample{id: int(id), x: float64(tx), y: float64(ty)})
	}
	s.processTouches(s.samples)
}

func (s *Source) toWorld(sx, sy float64) (float64, float64) {
	if s.ScreenToWorld != nil {
		return s.ScreenToWorld(sx, sy)
	}
	return sx, sy
}

// processMouse runs the mouse state machine for one frame. Moves are
// published whether or not the button is held, like DOM mouse moves.
func (s *Source) processMouse(sx, sy float64, pressed bool) {
	x, y := s.toWorld(sx, sy)
	now := s.now()

	switch {
	case pressed && !s.mouseDown:
		s.mouseDown = true
		s.bus.Publish(thumbstick.MouseEvent(thumbstick.EventDown, x, y, now))
	case !pressed && s.mouseDown:
		s.mouseDown = false
		s.bus.Publish(thumbstick.MouseEvent(thumbstick.EventUp, x, y, now))
	case x != s.mouseX || y != s.mouseY:
		s.bus.Publish(thumbstick.MouseEvent(thumbstick.EventMove, x, y, now))
	}
	s.mouseX = x
	s.mouseY = y
}

// processTouches diffs this frame's touches against the previous frame and
// publishes, in order, one up event for lifted fingers, one move event for
// fingers that moved and one down event for new fingers.
func (s *Source) processTouches(samples []touchSample) {
	now := s.now()

	current := make([]thumbstick.Contact, 0, len(samples))
	var pressed, moved []thumbstick.Contact
	for _, t := range samples {
		x, y := s.toWorld(t.x, t.y)
		c := thumbstick.Contact{ID: t.id, Source: thumbstick.SourceTouch, X: x, Y: y}
		prev, ok := findContact(s.touches, t.id)
		switch {
		case !ok:
			pressed = append(pressed, c)
			continue
		case prev.X != x || prev.Y != y:
			moved = append(moved, c)
		}
		current = append(current, c)
	}

	var released []thumbstick.Contact
	for _, p := range s.touches {
		if _, ok := findContact(current, p.ID); !ok {
			released = append(released, p)
		}
	}

	if len(released) > 0 {
		s.publishTouch(thumbstick.EventUp, current, released, now)
	}
	if len(moved) > 0 {
		s.publishTouch(thumbstick.EventMove, current, moved, now)
	}
	current = append(current, pressed...)
	if len(pressed) > 0 {
		s.publishTouch(thumbstick.EventDown, current, pressed, now)
	}
	s.touches = current
}

func (s *Source) publishTouch(typ thumbstick.EventType, contacts, changed []thumbstick.Contact, now time.Time) {
	s.bus.Publish(thumbstick.InputEvent{
		Type:     typ,
		Source:   thumbstick.SourceTouch,
		Contacts: contacts,
		Changed:  changed,
		Time:     now,
	})
}

func findContact(cs []thumbstick.Contact, id int) (thumbstick.Contact, bool) {
	for _, c := range cs {
		if c.ID == id {
			return c, true
		}
	}
	return thumbstick.Contact{}, false
}
