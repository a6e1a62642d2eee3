// Package thumbstick implements virtual analog sticks for pointer and touch
// surfaces.
//
// A stick tracks a knob dragged around a fixed center, confines it to a
// circle (or a single axis) and reports the result as a vector. Two engines
// are provided:
//
//   - [Stick] emits a normalized [Reading] with X, Y in [-1, 1], an angle and
//     a distance in [0, 1]. It applies a dead zone, rounds to two decimals
//     and throttles moves.
//   - [DeltaStick] emits a raw [Delta] (knob offset divided by the base
//     radius). It only starts when the press lands on the knob, tracks one
//     touch contact by ID and drives a [Renderer].
//
// Neither engine draws anything. Rendering for Ebitengine lives in the
// ebitenstick subpackage.
//
// # Input
//
// Engines subscribe to a [Bus]. Any input source publishes [InputEvent]s on
// it; a [Surface] is the rectangle a stick is mounted on:
//
//	bus := thumbstick.NewBus()
//	pad := bus.NewSurface(thumbstick.Rect{X: 20, Y: 340, Width: 100, Height: 100})
//
//	cfg := thumbstick.DefaultStickConfig()
//	cfg.OnMove = func(r thumbstick.Reading) { player.Steer(r.X, r.Y) }
//	stick := thumbstick.NewStick(bus, pad, cfg)
//	defer stick.Destroy()
//
//	bus.Publish(thumbstick.MouseEvent(thumbstick.EventDown, 70, 390, time.Now()))
//
// Events go to the surface under the pointer first and then to global bus
// handlers. A [Stick] listens for presses on its surface but for moves and
// releases on the whole bus, so a drag continues outside the surface.
// Destroy removes every callback an engine registered.
//
// Bus, Surface and the engines are not safe for concurrent use; drive them
// from a single goroutine such as the game's Update.
package thumbstick
