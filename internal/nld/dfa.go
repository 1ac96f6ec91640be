package nld

import (
	"math"

	"github.com/san-kum/nld/internal/stat"
)

// Profile integrates the mean-removed signal: y[k] = sum(x[0..k] - mean(x)).
func Profile(x []float64) []float64 {
	mean := stat.Mean(x)
	y := make([]float64, len(x))
	sum := 0.0
	for i, v := range x {
		sum += v - mean
		y[i] = sum
	}
	return y
}

// BoxSizes generates the geometric sequence of box sizes in
// [minBox, min(maxBox, length/4)], growing by the given factor. Integer
// truncation can repeat a size at small growth factors; duplicates are
// dropped.
func BoxSizes(length, minBox, maxBox int, growth float64) []int {
	limit := maxBox
	if length/4 < limit {
		limit = length / 4
	}

	sizes := make([]int, 0, 8)
	for n := minBox; n <= limit; {
		sizes = append(sizes, n)
		next := int(float64(n) * growth)
		if next <= n {
			next = n + 1
		}
		n = next
	}
	return sizes
}

// Fluctuation is one row of the fluctuation table: mean detrended RMS
// residual F at box size N.
type Fluctuation struct {
	N int
	F float64
}

// Fluctuations computes F(n) for each box size over the integrated profile
// y: partition into floor(len/n) non-overlapping boxes, remove each box's
// least-squares linear trend, take the RMS residual per box, and average.
// Sizes yielding zero boxes are discarded.
func Fluctuations(y []float64, sizes []int) []Fluctuation {
	table := make([]Fluctuation, 0, len(sizes))

	for _, n := range sizes {
		boxes := len(y) / n
		if boxes == 0 {
			continue
		}

		xs := make([]float64, n)
		for i := range xs {
			xs[i] = float64(i)
		}

		sum := 0.0
		for b := 0; b < boxes; b++ {
			seg := y[b*n : (b+1)*n]
			slope, intercept, err := stat.LinearFit(xs, seg)
			if err != nil {
				continue
			}
			rss := 0.0
			for i, v := range seg {
				r := v - (slope*xs[i] + intercept)
				rss += r * r
			}
			sum += math.Sqrt(rss / float64(n))
		}
		table = append(table, Fluctuation{N: n, F: sum / float64(boxes)})
	}
	return table
}

// Alpha estimates the DFA scaling exponent: the slope of log F(n) against
// log n over all surviving box sizes. Fewer than two valid sizes (or a
// fluctuation of exactly zero, which has no log) returns the documented
// "no clear scaling" fallback of 1.0 with no error.
func Alpha(x []float64, p Params) (float64, error) {
	if len(x) == 0 {
		return 1.0, nil
	}

	y := Profile(x)
	table := Fluctuations(y, BoxSizes(len(x), p.MinBox, p.MaxBox, p.BoxGrowth))

	logN := make([]float64, 0, len(table))
	logF := make([]float64, 0, len(table))
	for _, row := range table {
		if row.F <= 0 {
			continue
		}
		logN = append(logN, math.Log(float64(row.N)))
		logF = append(logF, math.Log(row.F))
	}

	slope, _, err := stat.LinearFit(logN, logF)
	if err != nil {
		return 1.0, nil
	}
	return slope, nil
}
