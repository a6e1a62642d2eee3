package ebitenstick

import (
	"errors"
	"fmt"
	"image/color"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/thumbstick"
)

// Skin is a thumbstick.Renderer for a DeltaStick that draws a base image
// centered on the stick and a knob image at the knob position. Redraw only
// records positions; Draw does the drawing on the ebiten draw pass.
//
// Images may arrive asynchronously (see LoadSkin). Until an image is loaded
// Draw skips it, so a stick can be used before its art is ready.
//
// With a ReturnDuration the drawn knob springs back to the center on release
// instead of snapping; call Update(dt) each frame to advance it.
type Skin struct {
	// Origin is the screen position of the stick surface's top-left corner.
	Origin thumbstick.Vec2
	// ReturnDuration is the spring-back time in seconds. Zero snaps.
	ReturnDuration float32

	base atomic.Pointer[ebiten.Image]
	knob atomic.Pointer[ebiten.Image]

	center  thumbstick.Vec2
	knobPos thumbstick.Vec2
	shown   thumbstick.Vec2 // drawn knob position
	drawn   bool
	spring  [2]*gween.Tween

	mu  sync.Mutex
	err error
	wg  sync.WaitGroup
}

// NewSkin creates a Skin from already loaded images. Either may be nil.
func NewSkin(base, knob *ebiten.Image) *Skin {
	s := &Skin{}
	if base != nil {
		s.base.Store(base)
	}
	if knob != nil {
		s.knob.Store(knob)
	}
	return s
}

// LoadSkin creates a Skin and loads both images from disk in the
// background. Loading failures are reported by Err.
func LoadSkin(basePath, knobPath string) *Skin {
	s := &Skin{}
	s.load(&s.base, basePath)
	s.load(&s.knob, knobPath)
	return s
}

func (s *Skin) load(dst *atomic.Pointer[ebiten.Image], path string) {
	if path == "" {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		img, _, err := ebitenutil.NewImageFromFile(path)
		if err != nil {
			s.mu.Lock()
			s.err = errors.Join(s.err, fmt.Errorf("ebitenstick: load %s: %w", path, err))
			s.mu.Unlock()
			return
		}
		dst.Store(img)
	}()
}

// CircleSkin creates a Skin with procedurally drawn circles sized for the
// given radii.
func CircleSkin(baseRadius, knobRadius float64, baseColor, knobColor color.Color) *Skin {
	return NewSkin(circleImage(baseRadius, baseColor), circleImage(knobRadius, knobColor))
}

func circleImage(r float64, clr color.Color) *ebiten.Image {
	size := int(r*2) + 2
	img := ebiten.NewImage(size, size)
	c := float32(size) / 2
	vector.DrawFilledCircle(img, c, c, float32(r), clr, true)
	return img
}

// Wait blocks until background loads started by LoadSkin have finished.
func (s *Skin) Wait() {
	s.wg.Wait()
}

// Loaded reports whether both images are available.
func (s *Skin) Loaded() bool {
	return s.base.Load() != nil && s.knob.Load() != nil
}

// Err returns the combined error of any failed image loads.
func (s *Skin) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Redraw implements thumbstick.Renderer.
func (s *Skin) Redraw(center, knob thumbstick.Vec2) {
	s.center = center
	s.knobPos = knob
	if s.drawn && knob == center && s.shown != center && s.ReturnDuration > 0 {
		s.spring[0] = gween.New(float32(s.shown.X), float32(center.X), s.ReturnDuration, ease.OutBack)
		s.spring[1] = gween.New(float32(s.shown.Y), float32(center.Y), s.ReturnDuration, ease.OutBack)
		return
	}
	s.drawn = true
	s.spring = [2]*gween.Tween{}
	s.shown = knob
}

// Update advances the spring-back by dt seconds.
func (s *Skin) Update(dt float32) {
	if s.spring[0] == nil {
		return
	}
	x, doneX := s.spring[0].Update(dt)
	y, doneY := s.spring[1].Update(dt)
	s.shown = thumbstick.Vec2{X: float64(x), Y: float64(y)}
	if doneX && doneY {
		s.spring = [2]*gween.Tween{}
		s.shown = s.center
	}
}

// Shown returns the drawn knob position, which lags Knob while springing
// back.
func (s *Skin) Shown() thumbstick.Vec2 {
	return s.shown
}

// Knob returns the last knob position passed to Redraw, in surface-local
// coordinates.
func (s *Skin) Knob() thumbstick.Vec2 {
	return s.knobPos
}

// Draw renders the loaded images onto screen.
func (s *Skin) Draw(screen *ebiten.Image) {
	if img := s.base.Load(); img != nil {
		screen.DrawImage(img, s.drawOptions(img, s.center))
	}
	if img := s.knob.Load(); img != nil {
		screen.DrawImage(img, s.drawOptions(img, s.shown))
	}
}

// drawOptions centers img on the surface-local point p.
func (s *Skin) drawOptions(img *ebiten.Image, p thumbstick.Vec2) *ebiten.DrawImageOptions {
	x, y := s.screenPos(img.Bounds().Dx(), img.Bounds().Dy(), p)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	return op
}

func (s *Skin) screenPos(w, h int, p thumbstick.Vec2) (float64, float64) {
	return s.Origin.X + p.X - float64(w)/2, s.Origin.Y + p.Y - float64(h)/2
}
