// Package spectral provides the frequency-domain primitives for the
// Fourier-Galerkin discretization of the 1D Kuramoto-Sivashinsky equation.
//
// The package defines the fundamental types and operations:
//
//   - [ModeVector]: the non-negative Fourier coefficients c_0..c_N
//   - [Spectrum]: the diagonalized linear operator, one eigenvalue per mode
//   - [Convolve]: the Galerkin-truncated quadratic nonlinearity
//
// Negative-frequency coefficients are never stored; [ModeVector.At] derives
// them as complex conjugates of the stored entries, which is what keeps the
// reconstructed spatial field real-valued.
//
// # Truncation
//
// The convolution drops every term whose source index falls outside the
// retained band [-N, N]. This is a strict Galerkin projection: the error it
// introduces is deterministic truncation error, not aliasing error, and the
// direct O(N^2) summation is deliberate. An FFT-based circular convolution
// would compute a different operator.
package spectral
