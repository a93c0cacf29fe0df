// Package field maps frequency-domain coefficient vectors back to
// real-valued spatial functions and sampled space-time grids.
package field

import (
	"math"
	"math/cmplx"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/kflame/internal/spectral"
)

// Field is a reconstructed spatial function u(x). It is stateless and can be
// evaluated at arbitrary points in any order.
type Field func(x float64) float64

// Reconstruct builds u(x) = Re[c_0 + sum_{j=1..N} (c_j e^{ijx/k} + conj)].
// The bracketed sum is real up to floating-point residue when the Hermitian
// storage convention holds; the residue is discarded here, never corrected
// in the coefficients themselves.
func Reconstruct(c spectral.ModeVector, k float64) Field {
	modes := c.Clone()
	return func(x float64) float64 {
		return real(complexSum(modes, k, x))
	}
}

func complexSum(c spectral.ModeVector, k, x float64) complex128 {
	sum := c[0]
	for j := 1; j < len(c); j++ {
		theta := float64(j) * x / k
		e := complex(math.Cos(theta), math.Sin(theta))
		sum += c[j]*e + cmplx.Conj(c[j])*cmplx.Conj(e)
	}
	return sum
}

// Points returns nx sample coordinates spanning one domain period [0, 2*pi*k).
func Points(k float64, nx int) []float64 {
	xs := make([]float64, nx)
	if nx == 1 {
		return xs
	}
	period := 2 * math.Pi * k
	floats.Span(xs, 0, period-period/float64(nx))
	return xs
}

// SampleGrid evaluates every time slice on nx points of one period. Slices
// are independent pure work, so they are rendered concurrently.
func SampleGrid(modes []spectral.ModeVector, k float64, nx int) [][]float64 {
	xs := Points(k, nx)
	grid := make([][]float64, len(modes))

	var wg sync.WaitGroup
	for i, c := range modes {
		wg.Add(1)
		go func(i int, c spectral.ModeVector) {
			defer wg.Done()
			u := Reconstruct(c, k)
			row := make([]float64, nx)
			for j, x := range xs {
				row[j] = u(x)
			}
			grid[i] = row
		}(i, c)
	}
	wg.Wait()

	return grid
}
