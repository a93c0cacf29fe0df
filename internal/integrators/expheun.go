package integrators

import (
	"math"

	"github.com/san-kum/kflame/internal/spectral"
)

// ExpHeun advances a mode-coefficient vector with a second-order exponential
// time-differencing predictor-corrector (ETDRK2 family). The stiff diagonal
// linear operator is integrated exactly through exp(-h*lambda); the nonlinear
// forcing enters explicitly through the phi-weighted terms.
//
// All step coefficients depend only on (lambda, h), both fixed for a run, so
// they are computed once in NewExpHeun.
type ExpHeun struct {
	exp  []float64 // e^{-h*lambda_m}
	p    []float64 // h*phi(h*lambda_m)
	q0   []float64 // h*phi0(h*lambda_m)
	q1   []float64 // h*phi1(h*lambda_m)
	pred spectral.ModeVector
}

func NewExpHeun(lambda spectral.Spectrum, h float64) *ExpHeun {
	n := len(lambda)
	s := &ExpHeun{
		exp:  make([]float64, n),
		p:    make([]float64, n),
		q0:   make([]float64, n),
		q1:   make([]float64, n),
		pred: make(spectral.ModeVector, n),
	}
	for m, lam := range lambda {
		z := h * lam
		s.exp[m] = math.Exp(-z)
		s.p[m] = h * Phi(z)
		s.q0[m] = h * Phi0(z)
		s.q1[m] = h * Phi1(z)
	}
	return s
}

// Modes returns the number of retained modes (N+1) the stepper was built for.
func (s *ExpHeun) Modes() int {
	return len(s.exp)
}

// Step computes the next state from c without mutating it. A nil forcing is
// treated as identically zero, reducing the step to exact exponential
// propagation.
func (s *ExpHeun) Step(c spectral.ModeVector, g spectral.Forcing) spectral.ModeVector {
	next := make(spectral.ModeVector, len(c))

	if g == nil {
		for m := range c {
			next[m] = complex(s.exp[m], 0) * c[m]
		}
		return next
	}

	g1 := g.Eval(c)
	for m := range c {
		s.pred[m] = complex(s.exp[m], 0) * (c[m] + complex(s.p[m], 0)*g1[m])
	}

	g2 := g.Eval(s.pred)
	for m := range c {
		next[m] = complex(s.exp[m], 0) *
			(c[m] + complex(s.q0[m], 0)*g1[m] + complex(s.q1[m], 0)*g2[m])
	}
	return next
}
