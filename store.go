package thumbstick

// EntityStore is the interface for optional ECS integration.
// When set on an engine, every emitted update is forwarded as a StickEvent.
type EntityStore interface {
	EmitEvent(event StickEvent)
}

// StickEventKind distinguishes the updates carried by a StickEvent.
type StickEventKind uint8

const (
	StickMoved StickEventKind = iota // a reading or delta was emitted
	StickEnded                       // a DeltaStick gesture ended
)

// StickEvent carries engine output for the ECS bridge.
type StickEvent struct {
	Kind StickEventKind
	// Name is the engine's configured name, empty if unset.
	Name string
	X    float64
	Y    float64
	// Angle and Distance are only set for Stick readings.
	Angle    float64
	Distance float64
}
