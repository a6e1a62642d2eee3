package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/phanxgames/thumbstick/ebitenstick"
	"github.com/phanxgames/thumbstick/internal/pad"
)

func newPlayCmd(a *app) *cobra.Command {
	var showFPS bool
	cmd := &cobra.Command{
		Use:   "play",
		Short: "open a window with every stick in the layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pad.Build(a.cfg, a.log)
			if err != nil {
				return err
			}
			defer p.Close()

			reported := false
			w := a.cfg.Window
			a.log.Info("opening window", "title", w.Title, "sticks", len(a.cfg.Sticks))
			return ebitenstick.Run(p.Bus, ebitenstick.RunConfig{
				Title:   w.Title,
				Width:   w.Width,
				Height:  w.Height,
				ShowFPS: w.ShowFPS || showFPS,
				Update: func(dt float32) error {
					if err := p.Err(); err != nil && !reported {
						reported = true
						a.log.Warn("stick images unavailable", "err", err)
					}
					return p.Update(dt)
				},
				Draw: func(screen *ebiten.Image) {
					p.Draw(screen)
				},
			})
		},
	}
	cmd.Flags().BoolVar(&showFPS, "fps", false, "show the FPS overlay")
	return cmd
}
