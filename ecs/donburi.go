package ecs

import (
	"github.com/phanxgames/thumbstick"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// StickEventType is the Donburi event type for thumbstick stick events.
// Subscribe to this in your ECS systems to receive stick moves and ends.
var StickEventType = events.NewEventType[thumbstick.StickEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Stick events are published to StickEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) thumbstick.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event thumbstick.StickEvent) {
	StickEventType.Publish(s.world, event)
}
