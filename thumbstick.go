package thumbstick

import "math"

// Vec2 is a 2D vector used for positions and offsets throughout the API.
type Vec2 struct {
	X, Y float64
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Dist returns the distance between a and b.
func Dist(a, b Vec2) float64 {
	return a.Sub(b).Len()
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// Axis selects the axis a DeltaStick is locked to.
type Axis uint8

const (
	AxisNone Axis = iota // free movement inside the base circle
	AxisX                // horizontal movement only
	AxisY                // vertical movement only
)

// String returns "x", "y" or "" for AxisNone.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return ""
	}
}

// EventType identifies a kind of input event.
type EventType uint8

const (
	EventDown EventType = iota // a contact was pressed (mouse down, touch start)
	EventMove                  // a contact moved (mouse move, touch move)
	EventUp                    // a contact was released (mouse up, touch end)
)

// String returns a short lowercase name for the event type.
func (t EventType) String() string {
	switch t {
	case EventDown:
		return "down"
	case EventMove:
		return "move"
	case EventUp:
		return "up"
	default:
		return "unknown"
	}
}

// Source identifies the kind of device that produced a contact.
type Source uint8

const (
	SourceMouse Source = iota // mouse cursor (or any single pointer)
	SourceTouch               // touch screen finger
)

// round2 rounds v to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
