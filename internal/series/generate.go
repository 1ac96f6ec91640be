package series

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Generator produces one deterministic realization of a named test signal.
// The same (length, rate, seed) always yields the same samples, so ensemble
// runs can be replayed trial by trial.
type Generator func(length int, rate float64, rng *rand.Rand) TimeSeries

var generators = map[string]Generator{
	"sine":       Sine,
	"noisy-sine": NoisySine,
	"white":      White,
	"walk":       Walk,
	"logistic":   Logistic,
}

// Get looks up a generator by name.
func Get(name string) (Generator, error) {
	gen, ok := generators[name]
	if !ok {
		return nil, fmt.Errorf("unknown signal: %s (available: %v)", name, Names())
	}
	return gen, nil
}

func Names() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Generate is a convenience wrapper seeding a fresh source.
func Generate(name string, length int, rate float64, seed int64) (TimeSeries, error) {
	gen, err := Get(name)
	if err != nil {
		return TimeSeries{}, err
	}
	return gen(length, rate, rand.New(rand.NewSource(seed))), nil
}

// Sine is a pure 0.5 Hz tone at amplitude 0.5. Nearby trajectories on the
// orbit neither diverge nor converge, so its largest Lyapunov exponent is ~0.
func Sine(length int, rate float64, _ *rand.Rand) TimeSeries {
	x := make([]float64, length)
	for i := range x {
		t := float64(i) / rate
		x[i] = 0.5 * math.Sin(2*math.Pi*0.5*t)
	}
	return TimeSeries{Samples: x, Rate: rate}
}

// NoisySine is the canonical benchmark stimulus: the sine above plus
// Gaussian noise at sigma 0.1.
func NoisySine(length int, rate float64, rng *rand.Rand) TimeSeries {
	x := make([]float64, length)
	for i := range x {
		t := float64(i) / rate
		x[i] = 0.5*math.Sin(2*math.Pi*0.5*t) + 0.1*rng.NormFloat64()
	}
	return TimeSeries{Samples: x, Rate: rate}
}

// White is unit Gaussian noise; its DFA exponent is ~0.5.
func White(length int, rate float64, rng *rand.Rand) TimeSeries {
	x := make([]float64, length)
	for i := range x {
		x[i] = rng.NormFloat64()
	}
	return TimeSeries{Samples: x, Rate: rate}
}

// Walk is a standardized random walk (cumulative sum of white noise,
// shifted to zero mean and unit variance); its DFA exponent is ~1.5.
func Walk(length int, rate float64, rng *rand.Rand) TimeSeries {
	x := make([]float64, length)
	sum := 0.0
	for i := range x {
		sum += rng.NormFloat64()
		x[i] = sum
	}

	mean := 0.0
	for _, v := range x {
		mean += v
	}
	mean /= float64(length)

	variance := 0.0
	for _, v := range x {
		d := v - mean
		variance += d * d
	}
	variance /= float64(length)

	std := math.Sqrt(variance)
	if std == 0 {
		std = 1
	}
	for i := range x {
		x[i] = (x[i] - mean) / std
	}
	return TimeSeries{Samples: x, Rate: rate}
}

// Logistic iterates the logistic map x' = r·x·(1−x) at r = 3.9, centered to
// [-0.5, 0.5]. The map is chaotic at this parameter, so the divergence
// tracker should report a clearly positive exponent. The seed perturbs the
// initial condition; a short transient is discarded.
func Logistic(length int, rate float64, rng *rand.Rand) TimeSeries {
	const r = 3.9
	v := 0.2 + 0.6*rng.Float64()

	for i := 0; i < 100; i++ {
		v = r * v * (1 - v)
	}

	x := make([]float64, length)
	for i := range x {
		v = r * v * (1 - v)
		x[i] = v - 0.5
	}
	return TimeSeries{Samples: x, Rate: rate}
}
