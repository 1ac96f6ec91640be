package series

import (
	"math"
	"time"
)

// TimeSeries is one window of uniformly sampled data. Windows are produced
// upstream (sensor segmentation, CSV ingestion) and are never mutated by the
// estimators.
type TimeSeries struct {
	Samples []float64
	Rate    float64 // Hz
}

func New(samples []float64, rate float64) TimeSeries {
	return TimeSeries{Samples: samples, Rate: rate}
}

func (s TimeSeries) Len() int { return len(s.Samples) }

func (s TimeSeries) Clone() TimeSeries {
	c := make([]float64, len(s.Samples))
	copy(c, s.Samples)
	return TimeSeries{Samples: c, Rate: s.Rate}
}

func (s TimeSeries) Duration() time.Duration {
	if s.Rate <= 0 {
		return 0
	}
	return time.Duration(float64(len(s.Samples)) / s.Rate * float64(time.Second))
}

func (s TimeSeries) IsValid() bool {
	if s.Rate <= 0 {
		return false
	}
	for _, v := range s.Samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Window returns the sub-series [start, start+length). The backing array is
// shared with the parent; callers that mutate must Clone first.
func (s TimeSeries) Window(start, length int) TimeSeries {
	if start < 0 || length <= 0 || start+length > len(s.Samples) {
		return TimeSeries{Rate: s.Rate}
	}
	return TimeSeries{Samples: s.Samples[start : start+length], Rate: s.Rate}
}
