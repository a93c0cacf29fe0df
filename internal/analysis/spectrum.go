package analysis

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// SpatialSpectrum computes the power spectrum of a sampled real field. This
// is diagnostic only: the integration core never goes through an FFT, so
// the Galerkin truncation semantics are untouched.
func SpatialSpectrum(samples []float64) []float64 {
	if len(samples) == 0 {
		return nil
	}
	fft := fourier.NewFFT(len(samples))
	coeffs := fft.Coefficients(nil, samples)

	ps := make([]float64, len(coeffs))
	scale := 1 / float64(len(samples))
	for i, c := range coeffs {
		a := cmplx.Abs(c) * scale
		ps[i] = a * a
	}
	return ps
}
