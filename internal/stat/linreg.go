package stat

import "errors"

// ErrDegenerateFit indicates a regression input that cannot determine a line:
// fewer than two points, or zero variance on the x axis.
var ErrDegenerateFit = errors.New("stat: degenerate regression input")

// LinearFit computes an ordinary least-squares line y = slope*x + intercept.
func LinearFit(x, y []float64) (slope, intercept float64, err error) {
	if len(x) != len(y) || len(x) < 2 {
		return 0, 0, ErrDegenerateFit
	}

	n := float64(len(x))
	var sumX, sumY, sumXY, sumX2 float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumX2 += x[i] * x[i]
	}

	denom := n*sumX2 - sumX*sumX
	if denom == 0 {
		return 0, 0, ErrDegenerateFit
	}

	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept, nil
}

// SlopeAtIndices fits y against its own indices 0..len(y)-1.
func SlopeAtIndices(y []float64) (float64, error) {
	x := make([]float64, len(y))
	for i := range x {
		x[i] = float64(i)
	}
	slope, _, err := LinearFit(x, y)
	return slope, err
}
