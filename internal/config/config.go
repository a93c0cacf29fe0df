package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/kflame/internal/sim"
	"github.com/san-kum/kflame/internal/spectral"
)

const (
	DefaultN      = 32
	DefaultK      = 11.0
	DefaultDt     = 0.05
	DefaultSteps  = 1200
	DefaultEps    = 1.0
	DefaultA      = 1.0
	DefaultAmp    = 0.1
	DefaultPoints = 128
)

type Config struct {
	N     int     `yaml:"n"`
	K     float64 `yaml:"k"`
	Dt    float64 `yaml:"dt"`
	Steps int     `yaml:"steps"`
	Eps   float64 `yaml:"eps"`
	A     float64 `yaml:"a"`
	Form  string  `yaml:"form"`
	Seed  int64   `yaml:"seed"`
	Amp   float64 `yaml:"amp"`

	// SpatialPoints controls reconstruction resolution only; it has no
	// effect on the integration itself.
	SpatialPoints int `yaml:"spatial_points"`
}

func Default() *Config {
	return &Config{
		N:             DefaultN,
		K:             DefaultK,
		Dt:            DefaultDt,
		Steps:         DefaultSteps,
		Eps:           DefaultEps,
		A:             DefaultA,
		Form:          string(spectral.Derivative),
		Amp:           DefaultAmp,
		SpatialPoints: DefaultPoints,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SimConfig converts to the runner's configuration, validating on the way.
func (c *Config) SimConfig() (sim.Config, error) {
	form := spectral.Derivative
	if c.Form != "" {
		parsed, err := spectral.ParseForm(c.Form)
		if err != nil {
			return sim.Config{}, err
		}
		form = parsed
	}
	sc := sim.Config{
		N:     c.N,
		K:     c.K,
		H:     c.Dt,
		Steps: c.Steps,
		Eps:   c.Eps,
		A:     c.A,
		Form:  form,
	}
	if err := sc.Validate(); err != nil {
		return sim.Config{}, err
	}
	return sc, nil
}
