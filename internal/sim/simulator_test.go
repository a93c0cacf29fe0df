package sim

import (
	"context"
	"math"
	"math/cmplx"
	"testing"

	"github.com/san-kum/kflame/internal/spectral"
)

func TestRunKeepsInitialRow(t *testing.T) {
	// K=1 with eps=1 gives lambda = [0, 0]; with no forcing the trajectory
	// is frozen.
	cfg := Config{N: 1, K: 1, H: 0.01, Steps: 2, Eps: 1}
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	c0 := spectral.ModeVector{1 + 0i, 0 + 0i}
	result, err := s.Run(context.Background(), c0)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(result.Modes) != 2 || len(result.Times) != 2 {
		t.Fatalf("rows: got %d/%d, want 2/2", len(result.Modes), len(result.Times))
	}
	// Zero eigenvalues and no forcing: nothing changes, exactly.
	for m := range c0 {
		if result.Modes[0][m] != c0[m] || result.Modes[1][m] != c0[m] {
			t.Errorf("mode %d: rows %v, %v, want %v", m, result.Modes[0][m], result.Modes[1][m], c0[m])
		}
	}
}

func TestRunCompoundedDecay(t *testing.T) {
	// Two decay steps on mode 1, mode 0 untouched. K=1 with eps=2 gives
	// lambda = [0, 1], and the exp(-h*lambda) propagator damps mode 1 by
	// e^{-0.1} per step.
	cfg := Config{N: 1, K: 1, H: 0.1, Steps: 3, Eps: 2}
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if s.Spectrum()[1] != 1 {
		t.Fatalf("lambda[1] = %g, want 1", s.Spectrum()[1])
	}

	c0 := spectral.ModeVector{2 + 0i, 1 + 0i}
	result, err := s.Run(context.Background(), c0)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	row := result.Modes[2]
	if cmplx.Abs(row[0]-2) > 1e-9 {
		t.Errorf("mode 0 changed: %v", row[0])
	}
	want := complex(math.Exp(-0.2), 0)
	if cmplx.Abs(row[1]-want) > 1e-9 {
		t.Errorf("mode 1: got %v, want %v", row[1], want)
	}
}

func TestRunPureLinearArbitrarySpectrum(t *testing.T) {
	// a=0 reduces every step to exact exponential propagation for any
	// spectrum the configuration can produce.
	cfg := Config{N: 6, K: 3, H: 0.05, Steps: 40, Eps: 1}
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	lambda := s.Spectrum()

	c0 := spectral.NewModeVector(cfg.N)
	for m := 1; m <= cfg.N; m++ {
		c0[m] = complex(1/float64(m), 0.2*float64(m))
	}

	result, err := s.Run(context.Background(), c0)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	for i, row := range result.Modes {
		for m := range row {
			want := c0[m] * complex(math.Exp(-float64(i)*cfg.H*lambda[m]), 0)
			if cmplx.Abs(row[m]-want) > 1e-9*(1+cmplx.Abs(want)) {
				t.Fatalf("row %d mode %d: got %v, want %v", i, m, row[m], want)
			}
		}
	}
}

func TestRunMeanModeInvariant(t *testing.T) {
	// Derivative-form nonlinearity cannot feed the mean mode: with c_0(0)=0
	// it stays exactly zero for the whole run.
	cfg := Config{N: 10, K: 5, H: 0.1, Steps: 50, Eps: 1, A: 1, Form: spectral.Derivative}
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	c0 := spectral.NewModeVector(cfg.N)
	for m := 1; m <= cfg.N; m++ {
		c0[m] = complex(0.1/float64(m), 0.05)
	}

	result, err := s.Run(context.Background(), c0)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	for i, row := range result.Modes {
		// Every m=0 convolution term is i*j*|c_j|^2, so the mean-mode forcing
		// carries nothing but roundoff from the symmetric sum. The bound
		// covers platforms that contract the complex products with FMA.
		if cmplx.Abs(row[0]) > 1e-15 {
			t.Fatalf("row %d: mean mode drifted to %v", i, row[0])
		}
	}
}

func TestRunTrajectoryRowsIndependent(t *testing.T) {
	cfg := Config{N: 4, K: 2, H: 0.05, Steps: 5, Eps: 1, A: 1}
	s, _ := New(cfg)

	c0 := spectral.NewModeVector(cfg.N)
	c0[1] = 0.5

	result, err := s.Run(context.Background(), c0)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	orig := result.Modes[2].Clone()
	result.Modes[3][1] = 99
	for m := range orig {
		if result.Modes[2][m] != orig[m] {
			t.Fatal("trajectory rows alias each other")
		}
	}

	// The supplied initial condition is copied, not retained.
	c0[1] = 99
	if result.Modes[0][1] == 99 {
		t.Fatal("initial row aliases the caller's vector")
	}
}

func TestRunDimensionMismatch(t *testing.T) {
	cfg := Config{N: 3, K: 1, H: 0.1, Steps: 2}
	s, _ := New(cfg)

	_, err := s.Run(context.Background(), spectral.NewModeVector(5))
	if err == nil {
		t.Fatal("expected dimension error")
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"negative order", Config{N: -1, K: 1, H: 0.1, Steps: 2}},
		{"zero domain scale", Config{N: 2, K: 0, H: 0.1, Steps: 2}},
		{"zero step", Config{N: 2, K: 1, H: 0, Steps: 2}},
		{"negative step", Config{N: 2, K: 1, H: -0.1, Steps: 2}},
		{"no steps", Config{N: 2, K: 1, H: 0.1, Steps: 0}},
		{"bad form", Config{N: 2, K: 1, H: 0.1, Steps: 2, Form: "pseudo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRunCancellation(t *testing.T) {
	cfg := Config{N: 8, K: 5, H: 0.01, Steps: 100000, Eps: 1, A: 1}
	s, _ := New(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c0 := spectral.NewModeVector(cfg.N)
	c0[1] = 0.1
	result, err := s.Run(ctx, c0)
	if err == nil {
		t.Fatal("expected context error")
	}
	if len(result.Modes) == 0 {
		t.Error("partial trajectory should still contain the initial row")
	}
}

func TestRunValidateModesStopsOnBlowup(t *testing.T) {
	// eps=0 with only the anti-diffusive term grows without bound; with a
	// huge step the overflow is quick. Guard on: the run truncates with
	// ErrUnstable wrapped in a step context.
	cfg := Config{N: 4, K: 0.1, H: 50, Steps: 10000, Eps: 0, A: 0, ValidateModes: true}
	s, _ := New(cfg)

	c0 := spectral.NewModeVector(cfg.N)
	c0[4] = 1

	result, err := s.Run(context.Background(), c0)
	if err == nil {
		t.Fatal("expected instability error")
	}
	if result == nil || len(result.Modes) >= cfg.Steps {
		t.Error("expected truncated trajectory")
	}
}

func TestRunWithCallbackMatchesRun(t *testing.T) {
	cfg := Config{N: 6, K: 4, H: 0.05, Steps: 30, Eps: 1, A: 1}
	s, _ := New(cfg)

	c0 := spectral.NewModeVector(cfg.N)
	for m := 1; m <= cfg.N; m++ {
		c0[m] = complex(0.05*float64(m), -0.02)
	}

	want, err := s.Run(context.Background(), c0)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	steps := 0
	err = s.RunWithCallback(context.Background(), c0, func(step int, tm float64, c spectral.ModeVector) bool {
		for m := range c {
			if c[m] != want.Modes[step][m] {
				t.Fatalf("step %d mode %d: streaming %v, materialized %v", step, m, c[m], want.Modes[step][m])
			}
		}
		steps++
		return true
	})
	if err != nil {
		t.Fatalf("callback run: %v", err)
	}
	if steps != cfg.Steps {
		t.Errorf("callback invocations: got %d, want %d", steps, cfg.Steps)
	}
}

func TestRunWithCallbackEarlyStop(t *testing.T) {
	cfg := Config{N: 2, K: 1, H: 0.1, Steps: 100, Eps: 1}
	s, _ := New(cfg)

	calls := 0
	err := s.RunWithCallback(context.Background(), spectral.NewModeVector(2), func(step int, tm float64, c spectral.ModeVector) bool {
		calls++
		return calls < 5
	})
	if err != nil {
		t.Fatalf("callback run: %v", err)
	}
	if calls != 5 {
		t.Errorf("calls: got %d, want 5", calls)
	}
}
