package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/nld/internal/nld"
	"github.com/san-kum/nld/internal/qerror"
)

const (
	DefaultRate   = 50.0
	DefaultLength = 150 // 3-second window at 50 Hz
	DefaultTrials = 1000
	DefaultBits   = 15
	DefaultBound  = 0.01
	DefaultSignal = "noisy-sine"
	DefaultSeed   = 1
)

type Config struct {
	Estimator EstimatorConfig `yaml:"estimator"`
	Signal    SignalConfig    `yaml:"signal"`
	Validate  ValidateConfig  `yaml:"validate"`
}

type EstimatorConfig struct {
	EmbeddingDim  int     `yaml:"embedding_dim"`
	Delay         int     `yaml:"delay"`
	MinSeparation int     `yaml:"min_separation"`
	MaxOffset     int     `yaml:"max_offset"`
	FitLen        int     `yaml:"fit_len"`
	MinBox        int     `yaml:"min_box"`
	MaxBox        int     `yaml:"max_box"`
	BoxGrowth     float64 `yaml:"box_growth"`
}

type SignalConfig struct {
	Name   string  `yaml:"name"`
	Length int     `yaml:"length"`
	Rate   float64 `yaml:"rate"`
	Seed   int64   `yaml:"seed"`
}

type ValidateConfig struct {
	Trials      int     `yaml:"trials"`
	Workers     int     `yaml:"workers"`
	SeedStart   int64   `yaml:"seed_start"`
	Bits        int     `yaml:"bits"`
	LambdaBound float64 `yaml:"lambda_bound"`
	AlphaBound  float64 `yaml:"alpha_bound"`
}

func DefaultConfig() *Config {
	p := nld.DefaultParams()
	return &Config{
		Estimator: EstimatorConfig{
			EmbeddingDim:  p.Dim,
			Delay:         p.Delay,
			MinSeparation: p.MinSeparation,
			MaxOffset:     p.MaxOffset,
			FitLen:        p.FitLen,
			MinBox:        p.MinBox,
			MaxBox:        p.MaxBox,
			BoxGrowth:     p.BoxGrowth,
		},
		Signal: SignalConfig{
			Name:   DefaultSignal,
			Length: DefaultLength,
			Rate:   DefaultRate,
			Seed:   DefaultSeed,
		},
		Validate: ValidateConfig{
			Trials:      DefaultTrials,
			SeedStart:   DefaultSeed,
			Bits:        DefaultBits,
			LambdaBound: DefaultBound,
			AlphaBound:  DefaultBound,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
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

// Params maps the estimator section onto engine parameters.
func (c *Config) Params() nld.Params {
	return nld.Params{
		Dim:           c.Estimator.EmbeddingDim,
		Delay:         c.Estimator.Delay,
		MinSeparation: c.Estimator.MinSeparation,
		MaxOffset:     c.Estimator.MaxOffset,
		FitLen:        c.Estimator.FitLen,
		MinBox:        c.Estimator.MinBox,
		MaxBox:        c.Estimator.MaxBox,
		BoxGrowth:     c.Estimator.BoxGrowth,
	}
}

// Campaign maps the signal and validate sections onto a Monte-Carlo
// campaign configuration.
func (c *Config) Campaign() qerror.Config {
	return qerror.Config{
		Trials:      c.Validate.Trials,
		Workers:     c.Validate.Workers,
		SeedStart:   c.Validate.SeedStart,
		Signal:      c.Signal.Name,
		Length:      c.Signal.Length,
		Rate:        c.Signal.Rate,
		Bits:        c.Validate.Bits,
		LambdaBound: c.Validate.LambdaBound,
		AlphaBound:  c.Validate.AlphaBound,
		Params:      c.Params(),
	}
}
