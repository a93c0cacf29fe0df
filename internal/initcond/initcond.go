// Package initcond builds initial mode-coefficient vectors. The random
// source is always passed in explicitly so runs are reproducible from a
// seed; there is no package-level generator.
package initcond

import (
	"math/rand"

	"github.com/san-kum/kflame/internal/spectral"
)

// Random draws n+1 complex Gaussian coefficients scaled by amp and forces
// the zero mode to 0, keeping the reconstructed field mean-free.
func Random(n int, amp float64, rng *rand.Rand) spectral.ModeVector {
	c := spectral.NewModeVector(n)
	for m := 1; m <= n; m++ {
		c[m] = complex(amp*rng.NormFloat64(), amp*rng.NormFloat64())
	}
	return c
}

// SingleMode excites one mode with a real amplitude, useful as a clean
// deterministic starting point.
func SingleMode(n, m int, amp float64) spectral.ModeVector {
	c := spectral.NewModeVector(n)
	if m >= 1 && m <= n {
		c[m] = complex(amp, 0)
	}
	return c
}
