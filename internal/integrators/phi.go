package integrators

import "math"

// Exponential-integrator coefficient functions. Each has a removable
// singularity at z=0 handled by an exact branch. Away from zero the closed
// forms are built on math.Expm1 so the leading e^z - 1 is never formed by
// subtraction, which keeps the values accurate near zero.

// Phi is (e^z - 1)/z, with Phi(0) = 1.
func Phi(z float64) float64 {
	if z == 0 {
		return 1
	}
	return math.Expm1(z) / z
}

// Phi0 is (e^z - z - 1)/z^2, with Phi0(0) = 1/2.
func Phi0(z float64) float64 {
	if z == 0 {
		return 0.5
	}
	return (math.Expm1(z) - z) / (z * z)
}

// Phi1 is (z*e^z - e^z + 1)/z^2, with Phi1(0) = 1/2. It is evaluated
// through the identity phi1 = phi - phi0, which is exact in real arithmetic
// and cancellation-free in floating point.
func Phi1(z float64) float64 {
	if z == 0 {
		return 0.5
	}
	return Phi(z) - Phi0(z)
}
