// Package analysis derives summary quantities from trajectories: modal
// energy, energy time series and spatial power spectra of reconstructed
// fields. Nothing here feeds back into the integration.
package analysis

import (
	"math/cmplx"

	"github.com/san-kum/kflame/internal/spectral"
)

// ModeEnergy returns |c_m|^2 per stored mode, doubled for m >= 1 to account
// for the implied conjugate modes.
func ModeEnergy(c spectral.ModeVector) []float64 {
	e := make([]float64, len(c))
	for m, v := range c {
		a := cmplx.Abs(v)
		e[m] = a * a
		if m > 0 {
			e[m] *= 2
		}
	}
	return e
}

// TotalEnergy is the sum of ModeEnergy over all retained modes.
func TotalEnergy(c spectral.ModeVector) float64 {
	sum := 0.0
	for _, e := range ModeEnergy(c) {
		sum += e
	}
	return sum
}

// EnergySeries maps a trajectory to its total energy at each step.
func EnergySeries(modes []spectral.ModeVector) []float64 {
	series := make([]float64, len(modes))
	for i, c := range modes {
		series[i] = TotalEnergy(c)
	}
	return series
}
