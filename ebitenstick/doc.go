// Package ebitenstick connects thumbstick to Ebitengine.
//
// A [Source] polls mouse and touch state each tick and publishes it on a
// [thumbstick.Bus]. [Skin] renders a [thumbstick.DeltaStick] from images and
// [KnobView] renders a [thumbstick.Stick] with an eased knob. [Run] wires a
// Source into an ebiten game loop:
//
//	bus := thumbstick.NewBus()
//	surface := bus.NewSurface(thumbstick.Rect{X: 40, Y: 340, Width: 100, Height: 100})
//	view := ebitenstick.NewKnobView(surface.Center(), thumbstick.DefaultRadius)
//	cfg := thumbstick.DefaultStickConfig()
//	cfg.OnMove = view.SetReading
//	thumbstick.NewStick(bus, surface, cfg)
//
//	err := ebitenstick.Run(bus, ebitenstick.RunConfig{
//		Update: func(dt float32) error { view.Update(dt); return nil },
//		Draw:   view.Draw,
//	})
//
// Source can also replay synthetic pointer input with InjectPress,
// InjectMove, InjectRelease and InjectDrag, one event per tick.
package ebitenstick
