package nld

import (
	"errors"
	"math"
	"testing"
)

func TestEmbed_Shape(t *testing.T) {
	x := make([]float64, 150)
	for i := range x {
		x[i] = float64(i)
	}

	em, err := Embed(x, 5, 4)
	if err != nil {
		t.Fatalf("embed failed: %v", err)
	}

	if em.Rows() != 150-(5-1)*4 {
		t.Errorf("rows = %d, want %d", em.Rows(), 150-16)
	}
	if em.Dim() != 5 {
		t.Errorf("dim = %d, want 5", em.Dim())
	}

	// Row i must hold x[i], x[i+4], ..., x[i+16].
	row := em.Row(10)
	for j := 0; j < 5; j++ {
		if row[j] != float64(10+j*4) {
			t.Errorf("row[10][%d] = %v, want %v", j, row[j], 10+j*4)
		}
	}
}

func TestEmbed_BoundaryOneRow(t *testing.T) {
	// Exactly (m-1)*tau + 1 samples embeds to a single row.
	x := make([]float64, 17)
	em, err := Embed(x, 5, 4)
	if err != nil {
		t.Fatalf("embed failed: %v", err)
	}
	if em.Rows() != 1 {
		t.Errorf("rows = %d, want 1", em.Rows())
	}
}

func TestEmbed_TooShort(t *testing.T) {
	x := make([]float64, 16)
	_, err := Embed(x, 5, 4)
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}

func TestEmbed_InvalidParams(t *testing.T) {
	x := make([]float64, 100)
	if _, err := Embed(x, 1, 4); err == nil {
		t.Error("expected error for dim < 2")
	}
	if _, err := Embed(x, 5, 0); err == nil {
		t.Error("expected error for delay < 1")
	}
}

func TestEmbedding_Dist(t *testing.T) {
	// x = 0,1,2,... gives rows that differ by a constant in every
	// coordinate, so dist(i,j) = |i-j| * sqrt(dim).
	x := make([]float64, 50)
	for i := range x {
		x[i] = float64(i)
	}
	em, err := Embed(x, 4, 2)
	if err != nil {
		t.Fatalf("embed failed: %v", err)
	}

	got := em.Dist(3, 7)
	want := 4 * math.Sqrt(4)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("Dist(3,7) = %v, want %v", got, want)
	}
	if em.Dist(5, 5) != 0 {
		t.Error("self distance should be 0")
	}
}
