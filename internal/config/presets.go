package config

import "sort"

// Presets cover the capture profiles the estimators were validated on.
var Presets = map[string]*Config{
	// 3-second accelerometer windows from wrist-worn capture.
	"gait": DefaultConfig(),

	// Longer heart-rate variability windows at a lower rate; boxes reach
	// further because the windows do.
	"hrv": {
		Estimator: EstimatorConfig{
			EmbeddingDim:  5,
			Delay:         4,
			MinSeparation: 10,
			MaxOffset:     10,
			FitLen:        10,
			MinBox:        4,
			MaxBox:        128,
			BoxGrowth:     1.5,
		},
		Signal:   SignalConfig{Name: "walk", Length: 500, Rate: 4, Seed: DefaultSeed},
		Validate: ValidateConfig{Trials: DefaultTrials, SeedStart: DefaultSeed, Bits: DefaultBits, LambdaBound: DefaultBound, AlphaBound: DefaultBound},
	},

	// Chaotic map stimulus, useful for sanity-checking a positive exponent.
	"chaos": {
		Estimator: EstimatorConfig{
			EmbeddingDim:  5,
			Delay:         1,
			MinSeparation: 10,
			MaxOffset:     10,
			FitLen:        5,
			MinBox:        4,
			MaxBox:        64,
			BoxGrowth:     1.5,
		},
		Signal:   SignalConfig{Name: "logistic", Length: 400, Rate: 50, Seed: DefaultSeed},
		Validate: ValidateConfig{Trials: DefaultTrials, SeedStart: DefaultSeed, Bits: DefaultBits, LambdaBound: DefaultBound, AlphaBound: DefaultBound},
	},

	// Fast validation sweep for CI and local iteration.
	"bench": {
		Estimator: EstimatorConfig{
			EmbeddingDim:  5,
			Delay:         4,
			MinSeparation: 10,
			MaxOffset:     10,
			FitLen:        10,
			MinBox:        4,
			MaxBox:        32,
			BoxGrowth:     1.5,
		},
		Signal:   SignalConfig{Name: "noisy-sine", Length: 150, Rate: 50, Seed: DefaultSeed},
		Validate: ValidateConfig{Trials: 50, SeedStart: DefaultSeed, Bits: DefaultBits, LambdaBound: DefaultBound, AlphaBound: DefaultBound},
	},
}

// GetPreset returns a copy of the named preset, so callers may overlay their
// own values without mutating the shared table.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *cfg
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
