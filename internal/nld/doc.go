// Package nld estimates nonlinear-dynamics descriptors of short
// physiological windows.
//
// Two descriptors are produced per window:
//
//   - [Lyapunov]: largest Lyapunov exponent via the Rosenstein method
//     (delay embedding, exact nearest-neighbor search with temporal
//     exclusion, divergence-curve regression)
//   - [Alpha]: Detrended Fluctuation Analysis scaling exponent
//     (integrated profile, box-wise linear detrending, log-log regression)
//
// # Usage
//
//	est, _ := nld.NewEstimator(nld.DefaultParams())
//	f := est.Estimate(window)
//	if f.Lyapunov > 0 {
//	    // window shows chaotic sensitivity
//	}
//
// # Degenerate windows
//
// Windows too short for the embedding, or producing fewer than two
// regression points, yield the fallback values 0.0 (lambda) and 1.0
// (alpha) rather than an error; see [Estimator.Estimate].
//
// # Complexity
//
// The neighbor search is exhaustive and O(N^2 * dim); it dominates the
// cost of everything else in this package.
package nld
