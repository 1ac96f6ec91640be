package nld

import (
	"math"

	"github.com/san-kum/nld/internal/stat"
)

// Pair links a reference row to its nearest temporally excluded neighbor.
// Invariant: |Ref - Neighbor| >= the separation passed to Neighbors.
type Pair struct {
	Ref      int
	Neighbor int
}

// Neighbors finds, for each reference row i, the nearest row j with
// |i-j| >= minSep and distance > 0, ties broken by the smallest index.
// References with no eligible candidate are skipped.
//
// The scan is exhaustive, O(N^2 * dim). That quadratic cost dominates the
// whole estimator and is deliberate: the quantization error bounds were
// validated against the exact search, so swapping in an approximate
// neighbor structure produces a different estimator, not a faster one.
func Neighbors(em *Embedding, minSep int) []Pair {
	n := em.Rows()
	pairs := make([]Pair, 0, n)

	for i := 0; i < n-minSep; i++ {
		best := -1
		bestDist := math.Inf(1)
		for j := 0; j < n; j++ {
			if abs(i-j) < minSep {
				continue
			}
			d := em.Dist(i, j)
			if d > 0 && d < bestDist {
				bestDist = d
				best = j
			}
		}
		if best >= 0 {
			pairs = append(pairs, Pair{Ref: i, Neighbor: best})
		}
	}
	return pairs
}

// Curve is the averaged log-divergence per tracked offset, already compacted
// to the offsets that collected at least one value. It is consumed once, by
// Slope.
type Curve []float64

// Divergence tracks each pair for up to maxOffset steps, recording
// log(distance) where the distance is nonzero, and averages per offset
// across all pairs that reached it.
func Divergence(em *Embedding, pairs []Pair, maxOffset int) Curve {
	n := em.Rows()
	sums := make([]float64, maxOffset)
	counts := make([]int, maxOffset)

	for _, p := range pairs {
		horizon := maxOffset
		if rem := n - p.Ref - 1; rem < horizon {
			horizon = rem
		}
		if rem := n - p.Neighbor - 1; rem < horizon {
			horizon = rem
		}
		for k := 0; k < horizon; k++ {
			d := em.Dist(p.Ref+k, p.Neighbor+k)
			if d > 0 {
				sums[k] += math.Log(d)
				counts[k]++
			}
		}
	}

	curve := make(Curve, 0, maxOffset)
	for k := 0; k < maxOffset; k++ {
		if counts[k] > 0 {
			curve = append(curve, sums[k]/float64(counts[k]))
		}
	}
	return curve
}

// Slope fits the first fitLen points of the curve against their indices and
// returns the least-squares slope, in log-distance per sample.
func (c Curve) Slope(fitLen int) (float64, error) {
	if fitLen > len(c) {
		fitLen = len(c)
	}
	return stat.SlopeAtIndices(c[:fitLen])
}

// Lyapunov estimates the largest Lyapunov exponent of x in 1/second using
// the Rosenstein method: delay embedding, exhaustive nearest-neighbor
// search with temporal exclusion, divergence tracking, and a linear fit
// over the initial (exponential-divergence) segment of the curve.
//
// A window too short for the embedding returns ErrInsufficientData; a curve
// with fewer than two points returns the documented 0.0 fallback with no
// error.
func Lyapunov(x []float64, rate float64, p Params) (float64, error) {
	em, err := Embed(x, p.Dim, p.Delay)
	if err != nil {
		return 0, err
	}

	pairs := Neighbors(em, p.MinSeparation)
	curve := Divergence(em, pairs, p.MaxOffset)

	slope, err := curve.Slope(p.FitLen)
	if err != nil {
		// Not enough divergence points to fit; flat fallback.
		return 0, nil
	}
	return slope * rate, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
