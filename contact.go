package thumbstick

import "time"

// MouseContactID is the contact ID used for the mouse cursor.
const MouseContactID = 0

// Contact is a single point of input: the mouse cursor or one finger.
// X and Y are in bus (screen) coordinates.
type Contact struct {
	ID     int
	Source Source
	X, Y   float64
}

// Pos returns the contact position as a Vec2.
func (c Contact) Pos() Vec2 {
	return Vec2{c.X, c.Y}
}

// InputEvent is a single pointer or touch event published on a Bus.
//
// Contacts lists every contact of the event's source that is still down after
// the event (for the mouse, the cursor while a button is held or hovering).
// Changed lists the contacts that caused the event; for EventUp these are the
// released contacts at their last known position.
type InputEvent struct {
	Type     EventType
	Source   Source
	Contacts []Contact
	Changed  []Contact
	Time     time.Time
}

// Primary returns the first contact of the event, preferring Contacts over
// Changed. ok is false when the event carries no contacts at all.
func (e InputEvent) Primary() (c Contact, ok bool) {
	if len(e.Contacts) > 0 {
		return e.Contacts[0], true
	}
	if len(e.Changed) > 0 {
		return e.Changed[0], true
	}
	return Contact{}, false
}

// Find returns the contact with the given ID from Contacts.
func (e InputEvent) Find(id int) (c Contact, ok bool) {
	for _, c := range e.Contacts {
		if c.ID == id {
			return c, true
		}
	}
	return Contact{}, false
}

// changed returns the contact with the given ID from Changed.
func (e InputEvent) changed(id int) (c Contact, ok bool) {
	for _, c := range e.Changed {
		if c.ID == id {
			return c, true
		}
	}
	return Contact{}, false
}

// MouseEvent builds a single-contact mouse event at (x, y). For EventUp the
// cursor is reported in Changed only, matching a released button.
func MouseEvent(typ EventType, x, y float64, at time.Time) InputEvent {
	c := Contact{ID: MouseContactID, Source: SourceMouse, X: x, Y: y}
	evt := InputEvent{Type: typ, Source: SourceMouse, Changed: []Contact{c}, Time: at}
	if typ != EventUp {
		evt.Contacts = []Contact{c}
	}
	return evt
}
