package qerror

import (
	"github.com/san-kum/nld/internal/stat"
)

// Summary aggregates one descriptor's absolute errors across a campaign.
type Summary struct {
	Mean          float64 `json:"mean_error"`
	Std           float64 `json:"std_error"`
	Median        float64 `json:"median_error"`
	P95           float64 `json:"p95"`
	P99           float64 `json:"p99"`
	Max           float64 `json:"max_error"`
	Bound         float64 `json:"bound"`
	ViolationRate float64 `json:"bound_violation_rate"`
}

// Report is the final output of a validation campaign.
type Report struct {
	Trials int     `json:"trials"`
	Signal string  `json:"signal"`
	Length int     `json:"length"`
	Rate   float64 `json:"rate"`
	Bits   int     `json:"bits"`
	Lambda Summary `json:"lyapunov"`
	Alpha  Summary `json:"alpha"`
}

func (r *Runner) reduce(results []trialResult) *Report {
	lambdaErrs := make([]float64, len(results))
	alphaErrs := make([]float64, len(results))
	for i, tr := range results {
		lambdaErrs[i] = tr.Lambda.AbsErr
		alphaErrs[i] = tr.Alpha.AbsErr
	}

	return &Report{
		Trials: len(results),
		Signal: r.cfg.Signal,
		Length: r.cfg.Length,
		Rate:   r.cfg.Rate,
		Bits:   r.cfg.Bits,
		Lambda: summarize(lambdaErrs, r.cfg.LambdaBound),
		Alpha:  summarize(alphaErrs, r.cfg.AlphaBound),
	}
}

func summarize(errs []float64, bound float64) Summary {
	violations := 0
	for _, e := range errs {
		if e > bound {
			violations++
		}
	}

	return Summary{
		Mean:          stat.Mean(errs),
		Std:           stat.Std(errs),
		Median:        stat.Percentile(errs, 50),
		P95:           stat.Percentile(errs, 95),
		P99:           stat.Percentile(errs, 99),
		Max:           stat.Max(errs),
		Bound:         bound,
		ViolationRate: float64(violations) / float64(len(errs)),
	}
}
