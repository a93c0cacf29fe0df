package spectral

// NewSpectrum computes the linear-operator eigenvalues for modes 0..n on a
// domain of length 2*pi*k:
//
//	lambda_m = -m^2/k^2 + eps*m^4/k^4
//
// The second-derivative term destabilizes long waves; eps scales the
// fourth-derivative term that damps short ones (eps=0 leaves the pure
// anti-diffusion regime, eps=1 the stabilized Kuramoto-Sivashinsky regime).
// The step propagator multiplies by exp(-h*lambda), so positive entries decay.
func NewSpectrum(n int, k, eps float64) Spectrum {
	lambda := make(Spectrum, n+1)
	k2 := k * k
	k4 := k2 * k2
	for m := 0; m <= n; m++ {
		m2 := float64(m) * float64(m)
		lambda[m] = -m2/k2 + eps*m2*m2/k4
	}
	return lambda
}
