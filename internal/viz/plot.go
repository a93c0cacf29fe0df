// Package viz renders trajectories and reconstructed fields for the
// terminal: asciigraph line plots for profiles and series, a shade-ramp
// space-time heatmap, and a live view of ongoing runs.
package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
)

// Profile renders one spatial slice u(x) as a line plot.
func Profile(values []float64, width, height int, caption string) string {
	if len(values) == 0 {
		return Subtle.Render("(empty profile)")
	}
	return asciigraph.Plot(values,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	)
}

// EnergySeries renders total spectral energy against step index.
func EnergySeries(series []float64, width, height int) string {
	if len(series) == 0 {
		return Subtle.Render("(no data)")
	}
	return asciigraph.Plot(series,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption("total spectral energy"),
	)
}

// ModeBars prints per-mode energies as labeled bars, largest scale first.
func ModeBars(energies []float64, width int) string {
	max := 0.0
	for _, e := range energies {
		if e > max {
			max = e
		}
	}
	if max == 0 {
		max = 1
	}

	out := ""
	for m, e := range energies {
		n := int(e / max * float64(width))
		bar := ""
		for i := 0; i < n; i++ {
			bar += "█"
		}
		out += fmt.Sprintf("%s %s %s\n",
			AxisLabel.Render(fmt.Sprintf("m=%2d", m)),
			bar,
			ValueStyle.Render(fmt.Sprintf("%.3g", e)))
	}
	return out
}
