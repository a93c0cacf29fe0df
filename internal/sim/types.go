package sim

import (
	"fmt"

	"github.com/san-kum/kflame/internal/spectral"
)

// Config fixes the discretization and physics for one integration run. It is
// immutable for the duration of the run.
type Config struct {
	N     int     // truncation order: modes 0..N are retained
	K     float64 // domain scale, physical length is 2*pi*K
	H     float64 // time step
	Steps int     // trajectory length, including the initial row
	Eps   float64 // fourth-derivative scaling in the linear spectrum
	A     float64 // nonlinearity coefficient; 0 disables the forcing

	Form spectral.Form

	// ValidateModes aborts the run on NaN/Inf coefficients. Off by default:
	// the unguarded loop lets divergence propagate into the trajectory.
	ValidateModes bool
}

func (cfg Config) Validate() error {
	if cfg.N < 0 {
		return fmt.Errorf("%w: truncation order %d is negative", spectral.ErrInvalidConfig, cfg.N)
	}
	if cfg.K == 0 {
		return fmt.Errorf("%w: domain scale must be nonzero", spectral.ErrInvalidConfig)
	}
	if cfg.H <= 0 {
		return fmt.Errorf("%w: time step %g must be positive", spectral.ErrInvalidConfig, cfg.H)
	}
	if cfg.Steps < 1 {
		return fmt.Errorf("%w: step count %d must be at least 1", spectral.ErrInvalidConfig, cfg.Steps)
	}
	if cfg.Form != "" {
		if _, err := spectral.ParseForm(string(cfg.Form)); err != nil {
			return err
		}
	}
	return nil
}

// Result is the fully materialized trajectory. Row 0 is the initial
// condition; the runner keeps no reference after returning it.
type Result struct {
	Modes      []spectral.ModeVector
	Times      []float64
	StepsTaken int
}

// GalerkinForcing is the signed, scaled quadratic nonlinearity of the
// governing equation: -a*convolve(c) in derivative form, +a*convolve(c) in
// integral form.
type GalerkinForcing struct {
	K    float64
	A    float64
	Form spectral.Form
}

func (f *GalerkinForcing) Eval(c spectral.ModeVector) spectral.ModeVector {
	g := spectral.Convolve(c, f.K, f.Form)
	scale := f.A
	if f.Form != spectral.Integral {
		scale = -f.A
	}
	for m := range g {
		g[m] *= complex(scale, 0)
	}
	return g
}
