package nld

import (
	"fmt"
	"math"
)

// Embedding is a delay-embedding matrix: row i holds the samples
// {x[i], x[i+delay], ..., x[i+(dim-1)*delay]}. Rows are stored in one
// contiguous row-major backing slice so distance scans stay cache friendly.
// An Embedding is read-only after construction.
type Embedding struct {
	data  []float64
	rows  int
	dim   int
	delay int
}

// Embed reconstructs a pseudo phase space from a scalar series. The row
// count is N = len(x) - (dim-1)*delay; N <= 0 yields ErrInsufficientData.
func Embed(x []float64, dim, delay int) (*Embedding, error) {
	if dim < 2 {
		return nil, fmt.Errorf("nld: embedding dimension must be >= 2, got %d", dim)
	}
	if delay < 1 {
		return nil, fmt.Errorf("nld: delay must be >= 1, got %d", delay)
	}

	rows := len(x) - (dim-1)*delay
	if rows <= 0 {
		return nil, fmt.Errorf("%w: need %d samples for dim=%d delay=%d, have %d",
			ErrInsufficientData, (dim-1)*delay+1, dim, delay, len(x))
	}

	em := &Embedding{
		data:  make([]float64, rows*dim),
		rows:  rows,
		dim:   dim,
		delay: delay,
	}
	for i := 0; i < rows; i++ {
		row := em.data[i*dim : (i+1)*dim]
		for j := 0; j < dim; j++ {
			row[j] = x[i+j*delay]
		}
	}
	return em, nil
}

func (e *Embedding) Rows() int  { return e.rows }
func (e *Embedding) Dim() int   { return e.dim }
func (e *Embedding) Delay() int { return e.delay }

// Row returns a view of row i. Callers must not modify it.
func (e *Embedding) Row(i int) []float64 {
	return e.data[i*e.dim : (i+1)*e.dim]
}

// Dist returns the Euclidean distance between rows i and j.
func (e *Embedding) Dist(i, j int) float64 {
	a := e.data[i*e.dim : (i+1)*e.dim]
	b := e.data[j*e.dim : (j+1)*e.dim]
	sum := 0.0
	for k := range a {
		d := a[k] - b[k]
		sum += d * d
	}
	return math.Sqrt(sum)
}
