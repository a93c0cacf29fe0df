package spectral

import (
	"math"
	"math/cmplx"
)

// ModeVector holds the non-negative frequency coefficients c_0..c_N of a
// truncated Fourier series. Index m is mode m; negative modes are implied by
// Hermitian symmetry and read through At.
type ModeVector []complex128

// NewModeVector returns a zero vector for truncation order n (n+1 modes).
func NewModeVector(n int) ModeVector {
	return make(ModeVector, n+1)
}

// Order returns the truncation order N.
func (c ModeVector) Order() int {
	return len(c) - 1
}

// At reads coefficient j for any j in [-N, N], deriving negative modes as
// conjugates of the stored positive ones.
func (c ModeVector) At(j int) complex128 {
	if j < 0 {
		return cmplx.Conj(c[-j])
	}
	return c[j]
}

func (c ModeVector) Clone() ModeVector {
	out := make(ModeVector, len(c))
	copy(out, c)
	return out
}

func (c ModeVector) IsValid() bool {
	for _, v := range c {
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			return false
		}
	}
	return true
}

// Norm returns the l2 norm over the stored (non-negative) modes.
func (c ModeVector) Norm() float64 {
	sum := 0.0
	for _, v := range c {
		re, im := real(v), imag(v)
		sum += re*re + im*im
	}
	return math.Sqrt(sum)
}

// Sub returns c - other over the shorter common length.
func (c ModeVector) Sub(other ModeVector) ModeVector {
	out := make(ModeVector, len(c))
	for i := range c {
		if i < len(other) {
			out[i] = c[i] - other[i]
		} else {
			out[i] = c[i]
		}
	}
	return out
}

// Spectrum is the diagonal linear operator: one real eigenvalue per retained
// mode. Built once per run and never mutated.
type Spectrum []float64

// Forcing evaluates the nonlinear term of the governing equation in
// frequency space, already signed and scaled by the caller's conventions.
// Eval must not retain or mutate c.
type Forcing interface {
	Eval(c ModeVector) ModeVector
}
