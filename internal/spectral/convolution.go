package spectral

import "fmt"

// Form selects which quadratic nonlinearity the convolution represents.
type Form string

const (
	// Derivative is the transform of u*u_x (self-advection).
	Derivative Form = "derivative"
	// Integral is the transform of (v_x)^2/2 under u = v_t.
	Integral Form = "integral"
)

// ParseForm maps a config string to a Form.
func ParseForm(s string) (Form, error) {
	switch Form(s) {
	case Derivative:
		return Derivative, nil
	case Integral:
		return Integral, nil
	}
	return "", fmt.Errorf("%w: unknown form %q", ErrInvalidConfig, s)
}

// ConvolveAt evaluates the Galerkin convolution for a single target mode m.
// The sum runs over source index j in [-N, N] restricted to |m-j| <= N; terms
// outside the retained band are dropped, not approximated.
func ConvolveAt(c ModeVector, m int, k float64, form Form) complex128 {
	n := c.Order()
	// |m-j| <= n and j >= -n together give j in [m-n, n] for m >= 0.
	lo := m - n
	var sum complex128
	switch form {
	case Integral:
		for j := lo; j <= n; j++ {
			w := float64(j) * float64(m-j)
			sum += complex(w, 0) * c.At(j) * c.At(m-j)
		}
		return sum / complex(k*k, 0)
	default:
		for j := lo; j <= n; j++ {
			// i*j * c_j * c_{m-j}
			sum += complex(0, float64(j)) * c.At(j) * c.At(m-j)
		}
		return sum / complex(k, 0)
	}
}

// Convolve evaluates the convolution for every retained target mode 0..N.
// Direct summation, O(N) per mode and O(N^2) total.
func Convolve(c ModeVector, k float64, form Form) ModeVector {
	out := make(ModeVector, len(c))
	for m := range out {
		out[m] = ConvolveAt(c, m, k, form)
	}
	return out
}
