package config

// Presets are named regimes of the governing equation. "chaotic" is the
// stabilized Kuramoto-Sivashinsky regime (eps=1) on a domain long enough for
// spatiotemporal chaos; "antidiffusion" switches the fourth-derivative term
// off to expose the unstable backward-heat regime.
var Presets = map[string]*Config{
	"chaotic": {
		N: 32, K: 11, Dt: 0.05, Steps: 2400, Eps: 1, A: 1,
		Form: "derivative", Amp: 0.1, SpatialPoints: 128,
	},
	"chaotic-short": {
		N: 32, K: 11, Dt: 0.05, Steps: 400, Eps: 1, A: 1,
		Form: "derivative", Amp: 0.1, SpatialPoints: 128,
	},
	"chaotic-fine": {
		N: 64, K: 16, Dt: 0.025, Steps: 4800, Eps: 1, A: 1,
		Form: "derivative", Amp: 0.05, SpatialPoints: 256,
	},
	"integral": {
		N: 32, K: 11, Dt: 0.05, Steps: 2400, Eps: 1, A: 1,
		Form: "integral", Amp: 0.1, SpatialPoints: 128,
	},
	"antidiffusion": {
		N: 16, K: 5, Dt: 0.001, Steps: 500, Eps: 0, A: 1,
		Form: "derivative", Amp: 0.01, SpatialPoints: 128,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	clone := *cfg
	return &clone
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
