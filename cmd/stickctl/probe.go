package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/phanxgames/thumbstick"
	"github.com/phanxgames/thumbstick/internal/config"
)

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Width(7)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
)

// probeResult is the output of one stick for one pointer offset. Exactly one
// of Reading and Delta is set.
type probeResult struct {
	Spec    config.StickSpec
	DX, DY  float64
	Reading *thumbstick.Reading
	Delta   *thumbstick.Delta
}

func newProbeCmd(a *app) *cobra.Command {
	var name string
	var dx, dy float64
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "show a stick's output for a pointer offset from its center",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := a.stick(name)
			if err != nil {
				return err
			}
			res, err := probe(spec, dx, dy)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderProbe(res))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "stick", "", "stick name (default: first in layout)")
	cmd.Flags().Float64Var(&dx, "dx", 0, "pointer offset from the center, x")
	cmd.Flags().Float64Var(&dy, "dy", 0, "pointer offset from the center, y")
	return cmd
}

// probe drives a fresh stick on its own bus: pressed at its center, then
// dragged to the offset.
func probe(spec config.StickSpec, dx, dy float64) (probeResult, error) {
	bus := thumbstick.NewBus()
	surface := bus.NewSurface(spec.Bounds())
	center := surface.Center()
	target := center.Add(thumbstick.Vec2{X: dx, Y: dy})
	res := probeResult{Spec: spec, DX: dx, DY: dy}

	switch spec.Kind {
	case config.KindNormalized:
		sc := spec.StickConfig()
		s := thumbstick.NewStick(bus, surface, sc)
		defer s.Destroy()
		now := time.Unix(0, 0)
		s.SetNowFunc(func() time.Time { return now })
		bus.Publish(thumbstick.MouseEvent(thumbstick.EventDown, center.X, center.Y, now))
		// Step past the throttle window so the move is processed.
		now = now.Add(sc.ThrottleTime)
		bus.Publish(thumbstick.MouseEvent(thumbstick.EventMove, target.X, target.Y, now))
		r := s.Reading()
		res.Reading = &r
	case config.KindDelta:
		dc := spec.DeltaConfig()
		var last thumbstick.Delta
		dc.OnMove = func(d thumbstick.Delta) { last = d }
		d, err := thumbstick.NewDeltaStick(surface, thumbstick.RendererFunc(func(_, _ thumbstick.Vec2) {}), dc)
		if err != nil {
			return res, err
		}
		defer d.Destroy()
		bus.Publish(thumbstick.MouseEvent(thumbstick.EventDown, center.X, center.Y, time.Now()))
		bus.Publish(thumbstick.MouseEvent(thumbstick.EventMove, target.X, target.Y, time.Now()))
		res.Delta = &last
	default:
		return res, fmt.Errorf("%w: %q", config.ErrUnknownKind, spec.Kind)
	}
	return res, nil
}

func renderProbe(res probeResult) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%s)", res.Spec.Name, res.Spec.Kind)))
	b.WriteString("\n")
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("input", fmt.Sprintf("dx=%g dy=%g", res.DX, res.DY))
	switch {
	case res.Reading != nil:
		row("x", fmt.Sprintf("%.2f", res.Reading.X))
		row("y", fmt.Sprintf("%.2f", res.Reading.Y))
		row("angle", fmt.Sprintf("%.2f", res.Reading.Angle))
		row("dist", fmt.Sprintf("%.2f", res.Reading.Distance))
	case res.Delta != nil:
		row("x", fmt.Sprintf("%.3f", res.Delta.X))
		row("y", fmt.Sprintf("%.3f", res.Delta.Y))
	}
	return boxStyle.Render(strings.TrimSuffix(b.String(), "\n"))
}
