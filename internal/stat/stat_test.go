package stat

import (
	"errors"
	"math"
	"testing"
)

func TestLinearFit_ExactLine(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	y := []float64{1, 3, 5, 7, 9} // y = 2x + 1

	slope, intercept, err := LinearFit(x, y)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	if math.Abs(slope-2) > 1e-12 {
		t.Errorf("slope = %v, want 2", slope)
	}
	if math.Abs(intercept-1) > 1e-12 {
		t.Errorf("intercept = %v, want 1", intercept)
	}
}

func TestLinearFit_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		x, y []float64
	}{
		{"empty", nil, nil},
		{"single point", []float64{1}, []float64{2}},
		{"mismatched lengths", []float64{1, 2}, []float64{1}},
		{"zero x variance", []float64{3, 3, 3}, []float64{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := LinearFit(tt.x, tt.y)
			if !errors.Is(err, ErrDegenerateFit) {
				t.Errorf("expected ErrDegenerateFit, got %v", err)
			}
		})
	}
}

func TestSlopeAtIndices(t *testing.T) {
	slope, err := SlopeAtIndices([]float64{10, 8, 6, 4})
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	if math.Abs(slope+2) > 1e-12 {
		t.Errorf("slope = %v, want -2", slope)
	}
}

func TestMeanStd(t *testing.T) {
	x := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	if m := Mean(x); math.Abs(m-5) > 1e-12 {
		t.Errorf("Mean = %v, want 5", m)
	}
	if s := Std(x); math.Abs(s-2) > 1e-12 {
		t.Errorf("Std = %v, want 2", s)
	}

	if Mean(nil) != 0 || Std(nil) != 0 {
		t.Error("empty input should yield 0")
	}
}

func TestRMS(t *testing.T) {
	if got := RMS([]float64{3, 4, 3, 4}); math.Abs(got-math.Sqrt(12.5)) > 1e-12 {
		t.Errorf("RMS = %v", got)
	}
}

func TestPercentile(t *testing.T) {
	x := []float64{5, 1, 3, 2, 4}

	tests := []struct {
		p        float64
		expected float64
	}{
		{0, 1},
		{50, 3},
		{100, 5},
		{25, 2},
		{95, 4.8},
	}

	for _, tt := range tests {
		if got := Percentile(x, tt.p); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("Percentile(%v) = %v, want %v", tt.p, got, tt.expected)
		}
	}

	// Input must not be reordered.
	if x[0] != 5 || x[4] != 4 {
		t.Error("Percentile mutated its input")
	}
}

func TestMax(t *testing.T) {
	if got := Max([]float64{-3, -1, -2}); got != -1 {
		t.Errorf("Max = %v, want -1", got)
	}
}
