// Package ecs provides ECS adapters for thumbstick's stick events.
//
// The primary adapter is [NewDonburiStore], which bridges stick output
// (moves and gesture ends) into a [Donburi] world as typed events.
// Subscribe to [StickEventType] in your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	stick.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
