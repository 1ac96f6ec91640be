package sweep

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/nld/internal/nld"
)

func TestSearch_FindsMinimum(t *testing.T) {
	grid, err := New([]string{"fit_len"}, [][]float64{{4, 6, 8, 10}})
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}

	// Parabola with its minimum at 8.
	best, score, err := grid.Search(context.Background(), func(_ context.Context, p map[string]float64) (float64, error) {
		d := p["fit_len"] - 8
		return d * d, nil
	})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if best["fit_len"] != 8 {
		t.Errorf("best fit_len = %v, want 8", best["fit_len"])
	}
	if score != 0 {
		t.Errorf("score = %v, want 0", score)
	}
}

func TestSearch_MultiParameter(t *testing.T) {
	grid, err := New([]string{"delay", "fit_len"}, [][]float64{{1, 2, 4}, {4, 8}})
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}

	calls := 0
	best, _, err := grid.Search(context.Background(), func(_ context.Context, p map[string]float64) (float64, error) {
		calls++
		return math.Abs(p["delay"]-2) + math.Abs(p["fit_len"]-8), nil
	})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if calls != 6 {
		t.Errorf("evaluated %d points, want 6", calls)
	}
	if best["delay"] != 2 || best["fit_len"] != 8 {
		t.Errorf("best = %v", best)
	}
}

func TestSearch_SkipsFailedPoints(t *testing.T) {
	grid, _ := New([]string{"delay"}, [][]float64{{1, 2, 3}})

	best, _, err := grid.Search(context.Background(), func(_ context.Context, p map[string]float64) (float64, error) {
		if p["delay"] == 1 {
			return 0, errors.New("boom")
		}
		return p["delay"], nil
	})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if best["delay"] != 2 {
		t.Errorf("best delay = %v, want 2", best["delay"])
	}
}

func TestSearch_AllPointsFail(t *testing.T) {
	grid, _ := New([]string{"delay"}, [][]float64{{1, 2}})

	_, _, err := grid.Search(context.Background(), func(_ context.Context, _ map[string]float64) (float64, error) {
		return 0, errors.New("boom")
	})
	if err == nil {
		t.Error("expected error when no point evaluates")
	}
}

func TestSearch_Canceled(t *testing.T) {
	grid, _ := New([]string{"delay"}, [][]float64{{1, 2}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := grid.Search(ctx, func(_ context.Context, _ map[string]float64) (float64, error) {
		return 1, nil
	}); err == nil {
		t.Error("expected context error")
	}
}

func TestNew_Invalid(t *testing.T) {
	if _, err := New([]string{"a"}, nil); err == nil {
		t.Error("expected error for mismatched ranges")
	}
	if _, err := New(nil, nil); err == nil {
		t.Error("expected error for empty grid")
	}
}

func TestApply(t *testing.T) {
	base := nld.DefaultParams()

	p, err := Apply(base, map[string]float64{"fit_len": 6, "delay": 2, "box_growth": 2.0})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if p.FitLen != 6 || p.Delay != 2 || p.BoxGrowth != 2.0 {
		t.Errorf("apply produced %+v", p)
	}
	// Untouched fields keep their base values.
	if p.Dim != base.Dim || p.MinBox != base.MinBox {
		t.Error("apply mutated unrelated fields")
	}

	if _, err := Apply(base, map[string]float64{"bogus": 1}); err == nil {
		t.Error("expected error for unknown parameter")
	}
}
