// Package qerror validates fixed-point error bounds for the descriptor
// estimators by Monte-Carlo simulation.
//
// Each trial generates a fresh stimulus, estimates both descriptors on the
// full-precision window and on its quantized round trip, and records the
// absolute difference. The estimators are treated as black boxes; this
// package never reaches into them. Bound violations surface as a rate in
// the report, never as an error.
package qerror

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sync"

	"github.com/san-kum/nld/internal/nld"
	"github.com/san-kum/nld/internal/quant"
	"github.com/san-kum/nld/internal/series"
)

// Config describes one validation campaign.
type Config struct {
	Trials    int
	Workers   int   // <= 0 means GOMAXPROCS
	SeedStart int64 // trial i uses seed SeedStart+i

	Signal string // stimulus generator name, see package series
	Length int
	Rate   float64

	Bits        int     // fixed-point fractional bits
	LambdaBound float64 // theoretical bound on |lambda error|
	AlphaBound  float64 // theoretical bound on |alpha error|

	Params nld.Params
}

// DefaultConfig mirrors the original validation study: 1000 trials of a
// 150-sample noisy sine at 50 Hz through Q15, against 0.01 bounds.
func DefaultConfig() Config {
	return Config{
		Trials:      1000,
		SeedStart:   1,
		Signal:      "noisy-sine",
		Length:      150,
		Rate:        50,
		Bits:        15,
		LambdaBound: 0.01,
		AlphaBound:  0.01,
		Params:      nld.DefaultParams(),
	}
}

func (c Config) validate() error {
	if c.Trials < 1 {
		return fmt.Errorf("trials must be >= 1, got %d", c.Trials)
	}
	if c.Length < 1 {
		return fmt.Errorf("signal length must be >= 1, got %d", c.Length)
	}
	if c.Rate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %f", c.Rate)
	}
	if c.LambdaBound <= 0 || c.AlphaBound <= 0 {
		return fmt.Errorf("error bounds must be positive")
	}
	return c.Params.Validate()
}

// Sample is one trial's outcome for one descriptor.
type Sample struct {
	Exact     float64
	Quantized float64
	AbsErr    float64
}

type trialResult struct {
	Lambda Sample
	Alpha  Sample
}

// Runner executes validation campaigns. Trials are mutually independent and
// own all their state, so fan-out needs no locking; results land in an
// index-addressed slice and aggregates are identical for any worker count.
type Runner struct {
	cfg   Config
	est   *nld.Estimator
	codec quant.Codec
	gen   series.Generator
}

func New(cfg Config) (*Runner, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("qerror: %w", err)
	}
	est, err := nld.NewEstimator(cfg.Params)
	if err != nil {
		return nil, err
	}
	codec, err := quant.New(cfg.Bits)
	if err != nil {
		return nil, err
	}
	gen, err := series.Get(cfg.Signal)
	if err != nil {
		return nil, fmt.Errorf("qerror: %w", err)
	}
	return &Runner{cfg: cfg, est: est, codec: codec, gen: gen}, nil
}

// Run executes all trials and reduces them into a Report.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	workers := r.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]trialResult, r.cfg.Trials)
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	for i := 0; i < r.cfg.Trials; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()
			results[idx] = r.trial(idx)
		}(i)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.reduce(results), nil
}

// trial runs one seeded stimulus through both pipelines.
func (r *Runner) trial(idx int) trialResult {
	rng := rand.New(rand.NewSource(r.cfg.SeedStart + int64(idx)))

	exact := r.gen(r.cfg.Length, r.cfg.Rate, rng)
	rounded := series.New(r.codec.RoundTripScaled(exact.Samples), exact.Rate)

	fe := r.est.Estimate(exact)
	fq := r.est.Estimate(rounded)

	return trialResult{
		Lambda: newSample(fe.Lyapunov, fq.Lyapunov),
		Alpha:  newSample(fe.Alpha, fq.Alpha),
	}
}

func newSample(exact, quantized float64) Sample {
	err := exact - quantized
	if err < 0 {
		err = -err
	}
	return Sample{Exact: exact, Quantized: quantized, AbsErr: err}
}
