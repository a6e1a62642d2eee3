package ebitenstick

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/thumbstick"
)

// RunConfig configures Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// ShowFPS draws an FPS/TPS overlay in the top-left corner.
	ShowFPS bool
	// Update is called once per tick after input has been published.
	Update func(dt float32) error
	// Draw is called once per frame.
	Draw func(screen *ebiten.Image)
}

// ErrNoBus is returned by Run when bus is nil.
var ErrNoBus = errors.New("ebitenstick: nil bus")

// game adapts a Source and RunConfig to ebiten.Game.
type game struct {
	src *Source
	cfg RunConfig

	fps        *ebiten.Image
	fpsElapsed float64
}

// Run opens a window and drives bus from ebiten input until the window is
// closed or Update returns an error.
func Run(bus *thumbstick.Bus, cfg RunConfig) error {
	if bus == nil {
		return ErrNoBus
	}
	g := newGame(NewSource(bus), cfg)
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	return ebiten.RunGame(g)
}

func newGame(src *Source, cfg RunConfig) *game {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	if cfg.Title == "" {
		cfg.Title = "thumbstick"
	}
	return &game{src: src, cfg: cfg}
}

func (g *game) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))
	g.src.Update()
	g.fpsElapsed += float64(dt)
	if g.cfg.Update != nil {
		return g.cfg.Update(dt)
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.cfg.Draw != nil {
		g.cfg.Draw(screen)
	}
	if g.cfg.ShowFPS {
		g.drawFPS(screen)
	}
}

// drawFPS refreshes the overlay about twice a second.
func (g *game) drawFPS(screen *ebiten.Image) {
	if g.fps == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		g.fps = ebiten.NewImage(100, 32)
		g.fpsElapsed = 0.5
	}
	if g.fpsElapsed >= 0.5 {
		g.fpsElapsed = 0
		g.fps.Clear()
		g.fps.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(g.fps, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	screen.DrawImage(g.fps, nil)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}
