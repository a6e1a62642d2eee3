package ebitenstick

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/thumbstick"
)

const (
	// DefaultKnobInset is subtracted from the base radius to get the knob's
	// maximum travel, keeping the knob inside the base.
	DefaultKnobInset = 20.0
	// DefaultKnobRadius is the drawn knob radius.
	DefaultKnobRadius = 20.0
	// DefaultKnobDuration is how long the knob takes to reach a new reading,
	// in seconds.
	DefaultKnobDuration float32 = 0.1
)

var (
	// DefaultBaseColor fills the base circle: black at 20% alpha.
	DefaultBaseColor = color.RGBA{0, 0, 0, 51}
	// DefaultKnobColor fills the knob.
	DefaultKnobColor = color.RGBA{230, 230, 230, 230}
)

// KnobView draws a Stick: a translucent base circle with a knob that eases
// toward the latest reading. Readings are scaled by Travel, so a reading of
// distance 1 places the knob Travel pixels from the center.
//
// There is no global animation manager; call Update(dt) each frame.
type KnobView struct {
	// Center is the base center in screen coordinates.
	Center thumbstick.Vec2
	// Radius is the drawn base radius.
	Radius float64
	// KnobRadius is the drawn knob radius.
	KnobRadius float64
	// Travel is the knob's maximum distance from the center.
	Travel float64
	// Duration of the ease toward a new reading. Zero snaps.
	Duration float32
	// Ease is the easing function. Nil uses ease.OutQuad.
	Ease ease.TweenFunc

	BaseColor color.Color
	KnobColor color.Color

	offset thumbstick.Vec2
	tweens [2]*gween.Tween
	done   bool
}

// NewKnobView creates a KnobView for a stick of the given radius centered at
// center.
func NewKnobView(center thumbstick.Vec2, radius float64) *KnobView {
	return &KnobView{
		Center:     center,
		Radius:     radius,
		KnobRadius: DefaultKnobRadius,
		Travel:     max(radius-DefaultKnobInset, 0),
		Duration:   DefaultKnobDuration,
		Ease:       ease.OutQuad,
		BaseColor:  DefaultBaseColor,
		KnobColor:  DefaultKnobColor,
		done:       true,
	}
}

// SetReading starts easing the knob from its current offset toward r.
func (v *KnobView) SetReading(r thumbstick.Reading) {
	to := thumbstick.Vec2{X: r.X * v.Travel, Y: r.Y * v.Travel}
	if v.Duration <= 0 {
		v.offset = to
		v.done = true
		return
	}
	fn := v.Ease
	if fn == nil {
		fn = ease.OutQuad
	}
	v.tweens[0] = gween.New(float32(v.offset.X), float32(to.X), v.Duration, fn)
	v.tweens[1] = gween.New(float32(v.offset.Y), float32(to.Y), v.Duration, fn)
	v.done = false
}

// Update advances the ease by dt seconds.
func (v *KnobView) Update(dt float32) {
	if v.done {
		return
	}
	x, doneX := v.tweens[0].Update(dt)
	y, doneY := v.tweens[1].Update(dt)
	v.offset = thumbstick.Vec2{X: float64(x), Y: float64(y)}
	v.done = doneX && doneY
}

// Offset returns the knob's current offset from the center.
func (v *KnobView) Offset() thumbstick.Vec2 {
	return v.offset
}

// Done reports whether the knob has reached its latest reading.
func (v *KnobView) Done() bool {
	return v.done
}

// Draw renders the base and knob onto screen.
func (v *KnobView) Draw(screen *ebiten.Image) {
	vector.DrawFilledCircle(screen, float32(v.Center.X), float32(v.Center.Y), float32(v.Radius), v.BaseColor, true)
	knob := v.Center.Add(v.offset)
	vector.DrawFilledCircle(screen, float32(knob.X), float32(knob.Y), float32(v.KnobRadius), v.KnobColor, true)
}
