package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/kflame/internal/integrators"
	"github.com/san-kum/kflame/internal/spectral"
)

// Simulator owns the precomputed linear spectrum, the stepper and the
// nonlinear forcing for one configuration. It is not safe for concurrent
// use; Ensemble builds one per goroutine.
type Simulator struct {
	cfg     Config
	lambda  spectral.Spectrum
	stepper *integrators.ExpHeun
	forcing spectral.Forcing
}

func New(cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Simulator{
		cfg:    cfg,
		lambda: spectral.NewSpectrum(cfg.N, cfg.K, cfg.Eps),
	}
	s.stepper = integrators.NewExpHeun(s.lambda, cfg.H)
	if cfg.A != 0 {
		form := cfg.Form
		if form == "" {
			form = spectral.Derivative
		}
		s.forcing = &GalerkinForcing{K: cfg.K, A: cfg.A, Form: form}
	}
	return s, nil
}

// Spectrum exposes the precomputed eigenvalues, mostly for inspection and
// tests.
func (s *Simulator) Spectrum() spectral.Spectrum {
	return s.lambda
}

// Run integrates Steps-1 steps from c0 and returns the full trajectory with
// c0 copied into row 0. Each row is an independent vector.
//
// Cancellation returns the rows produced so far together with ctx.Err().
func (s *Simulator) Run(ctx context.Context, c0 spectral.ModeVector) (*Result, error) {
	if len(c0) != s.cfg.N+1 {
		return nil, fmt.Errorf("%w: got %d coefficients, want %d",
			spectral.ErrDimensionMismatch, len(c0), s.cfg.N+1)
	}

	result := &Result{
		Modes: make([]spectral.ModeVector, 0, s.cfg.Steps),
		Times: make([]float64, 0, s.cfg.Steps),
	}

	c := c0.Clone()
	result.Modes = append(result.Modes, c.Clone())
	result.Times = append(result.Times, 0)

	for i := 1; i < s.cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		c = s.stepper.Step(c, s.forcing)
		t := float64(i) * s.cfg.H

		if s.cfg.ValidateModes && !c.IsValid() {
			return result, &spectral.RunError{Step: i, Time: t, Wrapped: spectral.ErrUnstable}
		}

		result.Modes = append(result.Modes, c.Clone())
		result.Times = append(result.Times, t)
		result.StepsTaken++
	}

	return result, nil
}

// RunWithCallback integrates without materializing a trajectory, handing
// each state (including the initial one) to callback. Returning false stops
// the run early. The vector passed to callback is a private copy.
func (s *Simulator) RunWithCallback(ctx context.Context, c0 spectral.ModeVector, callback func(step int, t float64, c spectral.ModeVector) bool) error {
	if len(c0) != s.cfg.N+1 {
		return fmt.Errorf("%w: got %d coefficients, want %d",
			spectral.ErrDimensionMismatch, len(c0), s.cfg.N+1)
	}

	c := c0.Clone()
	if !callback(0, 0, c.Clone()) {
		return nil
	}

	for i := 1; i < s.cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		c = s.stepper.Step(c, s.forcing)
		t := float64(i) * s.cfg.H

		if s.cfg.ValidateModes && !c.IsValid() {
			return &spectral.RunError{Step: i, Time: t, Wrapped: spectral.ErrUnstable}
		}
		if !callback(i, t, c.Clone()) {
			return nil
		}
	}
	return nil
}
