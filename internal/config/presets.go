package config

import "sort"

// Presets are named parameter sets. "reference" matches the published
// rigid-scallop run; the others trade resolution for speed or probe the
// stroke geometry.
var Presets = map[string]*Config{
	"reference": {
		ThetaA: 1.0, Theta0: 1.0, Segments: 100, Length: 1.0,
		Dt: 0.002, Duration: 1.0, Tau: 1.0, Delta: 0.01, Nfine: 6,
	},
	"coarse": {
		ThetaA: 1.0, Theta0: 1.0, Segments: 40, Length: 1.0,
		Dt: 0.005, Duration: 1.0, Tau: 1.0, Delta: 0.01, Nfine: 4,
	},
	"fine": {
		ThetaA: 1.0, Theta0: 1.0, Segments: 200, Length: 1.0,
		Dt: 0.001, Duration: 1.0, Tau: 1.0, Delta: 0.01, Nfine: 8,
	},
	"gentle": {
		ThetaA: 0.3, Theta0: 1.0, Segments: 100, Length: 1.0,
		Dt: 0.002, Duration: 2.0, Tau: 1.0, Delta: 0.01, Nfine: 6,
	},
	"upright": {
		ThetaA: 1.0, Theta0: 1.5707963267948966, Segments: 100, Length: 1.0,
		Dt: 0.002, Duration: 1.0, Tau: 1.0, Delta: 0.01, Nfine: 6,
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
