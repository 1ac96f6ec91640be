// Package quant models fixed-point representation of sensor samples.
//
// The codec mirrors the arithmetic of embedded Qm.n formats: values are
// clipped to [-1, 1-eps], rounded to the nearest representable level, and
// reconstructed as floats. The round trip is lossy once and then stable:
// re-quantizing an already quantized value is the identity.
package quant

import (
	"fmt"
	"math"
)

// Codec converts between floats in [-1, 1) and signed fixed-point values
// with Bits fractional bits. Bits=15 is the Q15 format used on Cortex-M
// class DSP hardware.
type Codec struct {
	Bits int
}

// Q15 is the default codec.
var Q15 = Codec{Bits: 15}

func New(bits int) (Codec, error) {
	if bits < 2 || bits > 31 {
		return Codec{}, fmt.Errorf("quant: unsupported bit width %d", bits)
	}
	return Codec{Bits: bits}, nil
}

// Scale returns the number of levels per unit, 2^Bits.
func (c Codec) Scale() float64 { return float64(int64(1) << c.Bits) }

// Epsilon returns the quantization step, 2^-Bits.
func (c Codec) Epsilon() float64 { return 1.0 / c.Scale() }

// Quantize converts a float to its fixed-point integer value, saturating
// outside the representable range [-1, 1-eps].
func (c Codec) Quantize(x float64) int32 {
	scale := c.Scale()
	limit := 1.0 - c.Epsilon()
	if x > limit {
		x = limit
	}
	if x < -1 {
		x = -1
	}
	return int32(math.Round(x * scale))
}

// Dequantize reconstructs the float approximation of a fixed-point value.
func (c Codec) Dequantize(q int32) float64 {
	return float64(q) / c.Scale()
}

// RoundTrip maps every sample through quantize/dequantize, returning a new
// slice. Input samples must already be in [-1, 1); out-of-range values
// saturate.
func (c Codec) RoundTrip(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = c.Dequantize(c.Quantize(v))
	}
	return out
}

// RoundTripScaled normalizes arbitrary-range input by its peak magnitude,
// round-trips in fixed point, and restores the original scale. This is how
// unnormalized windows (random walks, raw accelerometry) are fed to a
// fixed-point pipeline.
func (c Codec) RoundTripScaled(x []float64) []float64 {
	peak := 0.0
	for _, v := range x {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if peak == 0 {
		return make([]float64, len(x))
	}

	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = c.Dequantize(c.Quantize(v/peak)) * peak
	}
	return out
}
