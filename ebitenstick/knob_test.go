package ebitenstick

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"

	"github.com/phanxgames/thumbstick"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-3
}

func TestNewKnobView_Defaults(t *testing.T) {
	v := NewKnobView(thumbstick.Vec2{X: 50, Y: 60}, 50)
	if v.Travel != 30 {
		t.Errorf("Travel = %v, want 30", v.Travel)
	}
	if v.Duration != DefaultKnobDuration {
		t.Errorf("Duration = %v, want %v", v.Duration, DefaultKnobDuration)
	}
	if !v.Done() || v.Offset() != (thumbstick.Vec2{}) {
		t.Error("new view should be at rest at the center")
	}
}

func TestNewKnobView_SmallRadius(t *testing.T) {
	v := NewKnobView(thumbstick.Vec2{}, 10)
	if v.Travel != 0 {
		t.Errorf("Travel = %v, want 0", v.Travel)
	}
}

func TestKnobView_SnapWithoutDuration(t *testing.T) {
	v := NewKnobView(thumbstick.Vec2{}, 50)
	v.Duration = 0
	v.SetReading(thumbstick.Reading{X: 1, Y: -0.5})

	if off := v.Offset(); off != (thumbstick.Vec2{X: 30, Y: -15}) {
		t.Errorf("Offset = %v, want (30, -15)", off)
	}
	if !v.Done() {
		t.Error("snap should finish immediately")
	}
}

func TestKnobView_Eases(t *testing.T) {
	v := NewKnobView(thumbstick.Vec2{}, 50)
	v.Ease = ease.Linear
	v.SetReading(thumbstick.Reading{X: 1})

	v.Update(0.05)
	if off := v.Offset(); !near(off.X, 15) || off.Y != 0 {
		t.Errorf("halfway offset = %v, want (15, 0)", off)
	}
	if v.Done() {
		t.Error("should not be done halfway")
	}

	v.Update(0.2)
	if off := v.Offset(); !near(off.X, 30) {
		t.Errorf("final offset = %v, want (30, 0)", off)
	}
	if !v.Done() {
		t.Error("should be done")
	}

	v.Update(1)
	if off := v.Offset(); !near(off.X, 30) {
		t.Errorf("offset moved after done: %v", off)
	}
}

func TestKnobView_RetargetStartsFromCurrent(t *testing.T) {
	v := NewKnobView(thumbstick.Vec2{}, 50)
	v.Ease = ease.Linear
	v.SetReading(thumbstick.Reading{X: 1})
	v.Update(0.05)

	v.SetReading(thumbstick.Reading{})
	v.Update(0.05)
	if off := v.Offset(); !near(off.X, 7.5) {
		t.Errorf("offset = %v, want (7.5, 0)", off)
	}
}
