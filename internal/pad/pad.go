// Package pad builds an on-screen controller from a config layout: one Bus,
// one Surface per stick and an ebiten view for each.
package pad

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/thumbstick"
	"github.com/phanxgames/thumbstick/ebitenstick"
	"github.com/phanxgames/thumbstick/internal/config"
)

var (
	baseColor = color.RGBA{60, 60, 70, 160}
	knobColor = color.RGBA{220, 220, 230, 230}
)

// Pad owns the sticks of a layout and their views.
type Pad struct {
	Bus *thumbstick.Bus

	sticks []*thumbstick.Stick
	deltas []*thumbstick.DeltaStick
	views  []*ebitenstick.KnobView
	skins  []*ebitenstick.Skin

	// Readings holds the latest output per stick name.
	Readings map[string]thumbstick.Reading
	Deltas   map[string]thumbstick.Delta
}

// Build creates every stick in cfg. Delta sticks with both images set load
// them in the background and fall back to drawn circles otherwise.
func Build(cfg *config.Config, lg *slog.Logger) (*Pad, error) {
	p := &Pad{
		Bus:      thumbstick.NewBus(),
		Readings: make(map[string]thumbstick.Reading),
		Deltas:   make(map[string]thumbstick.Delta),
	}
	for _, spec := range cfg.Sticks {
		surface := p.Bus.NewSurface(spec.Bounds())
		switch spec.Kind {
		case config.KindNormalized:
			p.addStick(spec, surface, lg)
		case config.KindDelta:
			if err := p.addDelta(spec, surface, lg); err != nil {
				p.Close()
				return nil, fmt.Errorf("stick %q: %w", spec.Name, err)
			}
		default:
			p.Close()
			return nil, fmt.Errorf("stick %q: %w: %q", spec.Name, config.ErrUnknownKind, spec.Kind)
		}
	}
	return p, nil
}

func (p *Pad) addStick(spec config.StickSpec, surface *thumbstick.Surface, lg *slog.Logger) {
	sc := spec.StickConfig()
	view := ebitenstick.NewKnobView(surface.Center(), sc.Radius)
	name := spec.Name
	sc.OnMove = func(r thumbstick.Reading) {
		p.Readings[name] = r
		view.SetReading(r)
		lg.Debug("reading", "stick", name, "x", r.X, "y", r.Y, "distance", r.Distance)
	}
	p.sticks = append(p.sticks, thumbstick.NewStick(p.Bus, surface, sc))
	p.views = append(p.views, view)
}

func (p *Pad) addDelta(spec config.StickSpec, surface *thumbstick.Surface, lg *slog.Logger) error {
	dc := spec.DeltaConfig()
	var skin *ebitenstick.Skin
	if spec.BaseImage != "" && spec.StickImage != "" {
		skin = ebitenstick.LoadSkin(spec.BaseImage, spec.StickImage)
	} else {
		skin = ebitenstick.CircleSkin(dc.BaseRadius, dc.StickRadius, baseColor, knobColor)
	}
	b := surface.Bounds()
	skin.Origin = thumbstick.Vec2{X: b.X, Y: b.Y}
	skin.ReturnDuration = 0.15

	name := spec.Name
	dc.OnMove = func(d thumbstick.Delta) {
		p.Deltas[name] = d
		lg.Debug("delta", "stick", name, "x", d.X, "y", d.Y)
	}
	dc.OnEnd = func() {
		p.Deltas[name] = thumbstick.Delta{}
		lg.Debug("delta end", "stick", name)
	}
	d, err := thumbstick.NewDeltaStick(surface, skin, dc)
	if err != nil {
		return err
	}
	p.deltas = append(p.deltas, d)
	p.skins = append(p.skins, skin)
	return nil
}

// Update advances the knob eases and spring-backs.
func (p *Pad) Update(dt float32) error {
	for _, v := range p.views {
		v.Update(dt)
	}
	for _, s := range p.skins {
		s.Update(dt)
	}
	return nil
}

// Err returns the first image load error of any skin.
func (p *Pad) Err() error {
	for _, s := range p.skins {
		if err := s.Err(); err != nil {
			return err
		}
	}
	return nil
}

// Draw renders every stick.
func (p *Pad) Draw(screen *ebiten.Image) {
	for _, v := range p.views {
		v.Draw(screen)
	}
	for _, s := range p.skins {
		s.Draw(screen)
	}
}

// Close destroys every stick.
func (p *Pad) Close() {
	for _, s := range p.sticks {
		s.Destroy()
	}
	for _, d := range p.deltas {
		d.Destroy()
	}
}
