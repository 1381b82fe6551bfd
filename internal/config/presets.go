package config

import "sort"

var Presets = map[string]*Config{
	"liquid": DefaultConfig(),
	"solid": {
		Particles: 36, PerRow: 6, Spacing: 1.12, Mass: 1, Temperature: 0.1, KB: 1,
		Dt: 0.01, Steps: 20000, BatchSize: 100, AverageFrom: 50, RecordEvery: 1, Workers: 1,
	},
	"gas": {
		Particles: 24, PerRow: 6, Spacing: 2.0, Mass: 1, Temperature: 3, KB: 1,
		Dt: 0.01, Steps: 30000, BatchSize: 100, AverageFrom: 100, RecordEvery: 1, Workers: 1,
	},
	"fine": {
		Particles: 24, PerRow: 6, Spacing: 1.12, Mass: 1, Temperature: 1, KB: 1,
		Dt: 0.005, Steps: 144000, BatchSize: 400, AverageFrom: 100, RecordEvery: 10, Workers: 1,
		DriftTolerance: 0.05,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
