package main

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/phanxgames/thumbstick"
	"github.com/phanxgames/thumbstick/internal/config"
)

func newSweepCmd(a *app) *cobra.Command {
	var name string
	var angleDeg float64
	var steps int
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "plot output magnitude against pointer distance from the center",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := a.stick(name)
			if err != nil {
				return err
			}
			data, reach, err := sweep(spec, angleDeg*math.Pi/180, steps)
			if err != nil {
				return err
			}
			caption := fmt.Sprintf("%s: output magnitude, pointer 0..%g px at %g°", spec.Name, reach, angleDeg)
			graph := asciigraph.Plot(data,
				asciigraph.Height(12),
				asciigraph.Width(min(len(data), 80)),
				asciigraph.Caption(caption),
			)
			fmt.Fprintln(cmd.OutOrStdout(), graph)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "stick", "", "stick name (default: first in layout)")
	cmd.Flags().Float64Var(&angleDeg, "angle", 0, "sweep direction in degrees (0 = right, 90 = down)")
	cmd.Flags().IntVar(&steps, "steps", 60, "number of samples")
	return cmd
}

// sweep probes the stick at steps evenly spaced distances from the center
// out to 1.5x its radius and returns the output magnitude of each sample
// together with the maximum distance probed.
func sweep(spec config.StickSpec, angle float64, steps int) ([]float64, float64, error) {
	if steps < 2 {
		return nil, 0, fmt.Errorf("steps must be at least 2, got %d", steps)
	}
	radius := spec.StickConfig().Radius
	if spec.Kind == config.KindDelta {
		radius = spec.DeltaConfig().BaseRadius
	}
	reach := radius * 1.5

	out := make([]float64, steps)
	for i := range out {
		d := reach * float64(i) / float64(steps-1)
		res, err := probe(spec, math.Cos(angle)*d, math.Sin(angle)*d)
		if err != nil {
			return nil, 0, err
		}
		out[i] = magnitude(res)
	}
	return out, reach, nil
}

func magnitude(res probeResult) float64 {
	switch {
	case res.Reading != nil:
		return res.Reading.Distance
	case res.Delta != nil:
		return thumbstick.Vec2{X: res.Delta.X, Y: res.Delta.Y}.Len()
	}
	return 0
}
