package nld

import (
	"math"
	"math/rand"
	"testing"
)

func TestProfile(t *testing.T) {
	y := Profile([]float64{1, 2, 3, 2})
	// mean = 2, increments -1, 0, 1, 0
	want := []float64{-1, -1, 0, 0}
	for i := range want {
		if math.Abs(y[i]-want[i]) > 1e-12 {
			t.Errorf("profile[%d] = %v, want %v", i, y[i], want[i])
		}
	}
}

func TestBoxSizes(t *testing.T) {
	sizes := BoxSizes(500, 4, 64, 1.5)
	want := []int{4, 6, 9, 13, 19, 28, 42, 63}
	if len(sizes) != len(want) {
		t.Fatalf("sizes = %v, want %v", sizes, want)
	}
	for i := range want {
		if sizes[i] != want[i] {
			t.Fatalf("sizes = %v, want %v", sizes, want)
		}
	}
}

func TestBoxSizes_CappedByLength(t *testing.T) {
	// The largest usable box is length/4.
	sizes := BoxSizes(40, 4, 64, 1.5)
	for _, n := range sizes {
		if n > 10 {
			t.Errorf("box size %d exceeds length/4", n)
		}
	}
}

func TestBoxSizes_NoDuplicates(t *testing.T) {
	// Growth 1.1 truncates 4 -> 4; duplicates must be dropped.
	sizes := BoxSizes(400, 4, 64, 1.1)
	seen := make(map[int]bool)
	for _, n := range sizes {
		if seen[n] {
			t.Fatalf("duplicate box size %d in %v", n, sizes)
		}
		seen[n] = true
	}
}

func TestFluctuations_LinearTrendRemoved(t *testing.T) {
	// A perfectly linear profile detrends to zero in every box.
	y := make([]float64, 100)
	for i := range y {
		y[i] = 3*float64(i) + 2
	}
	table := Fluctuations(y, []int{5, 10, 25})
	for _, row := range table {
		if row.F > 1e-9 {
			t.Errorf("F(%d) = %v, want ~0 for a linear profile", row.N, row.F)
		}
	}
}

func TestAlpha_WhiteNoise(t *testing.T) {
	// Uncorrelated increments scale with alpha ~0.5. Averaged across 20
	// realizations to keep the tolerance honest.
	p := DefaultParams()
	sum := 0.0
	const trials = 20

	for trial := 0; trial < trials; trial++ {
		rng := rand.New(rand.NewSource(int64(trial + 1)))
		x := make([]float64, 500)
		for i := range x {
			x[i] = rng.NormFloat64()
		}
		alpha, err := Alpha(x, p)
		if err != nil {
			t.Fatalf("trial %d failed: %v", trial, err)
		}
		sum += alpha
	}

	mean := sum / trials
	if math.Abs(mean-0.5) > 0.15 {
		t.Errorf("mean alpha = %v for white noise, want ~0.5", mean)
	}
}

func TestAlpha_RandomWalk(t *testing.T) {
	p := DefaultParams()
	sum := 0.0
	const trials = 20

	for trial := 0; trial < trials; trial++ {
		rng := rand.New(rand.NewSource(int64(trial + 100)))
		x := make([]float64, 500)
		acc := 0.0
		for i := range x {
			acc += rng.NormFloat64()
			x[i] = acc
		}
		alpha, err := Alpha(x, p)
		if err != nil {
			t.Fatalf("trial %d failed: %v", trial, err)
		}
		sum += alpha
	}

	mean := sum / trials
	if math.Abs(mean-1.5) > 0.25 {
		t.Errorf("mean alpha = %v for a random walk, want ~1.5", mean)
	}
}

func TestAlpha_DegenerateFallback(t *testing.T) {
	p := DefaultParams()

	// Too short for two box sizes.
	alpha, err := Alpha(make([]float64, 10), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if alpha != 1.0 {
		t.Errorf("alpha = %v, want 1.0 fallback", alpha)
	}

	// Empty input.
	alpha, err = Alpha(nil, p)
	if err != nil || alpha != 1.0 {
		t.Errorf("alpha = %v, err = %v, want 1.0 fallback", alpha, err)
	}

	// Constant input has zero fluctuation at every size; no log exists.
	alpha, err = Alpha(make([]float64, 500), p)
	if err != nil || alpha != 1.0 {
		t.Errorf("alpha = %v, err = %v, want 1.0 fallback", alpha, err)
	}
}

func TestAlpha_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	x := make([]float64, 300)
	for i := range x {
		x[i] = rng.NormFloat64()
	}

	a, _ := Alpha(x, DefaultParams())
	b, _ := Alpha(x, DefaultParams())
	if a != b {
		t.Errorf("repeated estimates differ: %v != %v", a, b)
	}
}
