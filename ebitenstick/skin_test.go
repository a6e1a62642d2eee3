package ebitenstick

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/phanxgames/thumbstick"
)

var _ thumbstick.Renderer = (*Skin)(nil)

func TestSkin_RecordsRedraw(t *testing.T) {
	bus := thumbstick.NewBus()
	surface := bus.NewSurface(thumbstick.Rect{Width: 120, Height: 120})
	skin := NewSkin(nil, nil)

	d, err := thumbstick.NewDeltaStick(surface, skin, thumbstick.DefaultDeltaConfig())
	if err != nil {
		t.Fatal(err)
	}
	defer d.Destroy()

	if k := skin.Knob(); k != (thumbstick.Vec2{X: 60, Y: 60}) {
		t.Errorf("initial knob = %v, want (60, 60)", k)
	}
	skin.Redraw(thumbstick.Vec2{X: 60, Y: 60}, thumbstick.Vec2{X: 90, Y: 60})
	if k := skin.Knob(); k.X != 90 {
		t.Errorf("knob = %v, want X=90", k)
	}
}

func TestSkin_ScreenPos(t *testing.T) {
	s := NewSkin(nil, nil)
	s.Origin = thumbstick.Vec2{X: 100, Y: 200}

	x, y := s.screenPos(20, 20, thumbstick.Vec2{X: 60, Y: 60})
	if x != 150 || y != 250 {
		t.Errorf("screenPos = (%v, %v), want (150, 250)", x, y)
	}
}

func TestSkin_DrawSkipsUnloaded(t *testing.T) {
	s := NewSkin(nil, nil)
	if s.Loaded() {
		t.Error("Loaded should be false without images")
	}
	// No images: Draw must not touch the screen.
	s.Draw(nil)
}

func TestLoadSkin_MissingFiles(t *testing.T) {
	s := LoadSkin("testdata/missing-base.png", "testdata/missing-knob.png")
	s.Wait()

	err := s.Err()
	if err == nil {
		t.Fatal("expected load error")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want fs.ErrNotExist", err)
	}
	if s.Loaded() {
		t.Error("Loaded should be false after failed loads")
	}
}

func TestLoadSkin_EmptyPaths(t *testing.T) {
	s := LoadSkin("", "")
	s.Wait()
	if s.Err() != nil {
		t.Errorf("Err = %v, want nil", s.Err())
	}
}

func TestSkin_SnapsBackByDefault(t *testing.T) {
	s := NewSkin(nil, nil)
	c := thumbstick.Vec2{X: 60, Y: 60}
	s.Redraw(c, c)
	s.Redraw(c, thumbstick.Vec2{X: 90, Y: 60})
	s.Redraw(c, c)

	if s.Shown() != c {
		t.Errorf("Shown = %v, want center", s.Shown())
	}
}

func TestSkin_SpringsBack(t *testing.T) {
	s := NewSkin(nil, nil)
	s.ReturnDuration = 0.2
	c := thumbstick.Vec2{X: 60, Y: 60}

	s.Redraw(c, c)
	if s.Shown() != c {
		t.Fatalf("first redraw should place the knob, got %v", s.Shown())
	}
	s.Redraw(c, thumbstick.Vec2{X: 90, Y: 60})
	if s.Shown().X != 90 {
		t.Fatalf("drag should move the knob immediately, got %v", s.Shown())
	}

	s.Redraw(c, c)
	if s.Knob() != c {
		t.Errorf("Knob = %v, want center", s.Knob())
	}
	if s.Shown().X != 90 {
		t.Errorf("spring should start from the last drawn position, got %v", s.Shown())
	}

	s.Update(0.1)
	if x := s.Shown().X; x == 90 || x == 60 {
		t.Errorf("mid-spring X = %v, want in flight", x)
	}
	s.Update(0.2)
	if s.Shown() != c {
		t.Errorf("after spring Shown = %v, want center", s.Shown())
	}
}
