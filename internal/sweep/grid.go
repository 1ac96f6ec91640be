// Package sweep tunes estimator parameters by exhaustive grid search.
//
// Its main customer is the divergence-curve fit window: the validated
// default is 10 points, but there is no principled closed form for it, so
// re-tuning against the quantization error objective is the supported way
// to change it.
package sweep

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/nld/internal/nld"
)

// Objective scores one parameter assignment; lower is better.
type Objective func(ctx context.Context, params map[string]float64) (float64, error)

type Grid struct {
	names  []string
	ranges [][]float64
}

func New(names []string, ranges [][]float64) (*Grid, error) {
	if len(names) != len(ranges) || len(names) == 0 {
		return nil, fmt.Errorf("sweep: need one range per parameter")
	}
	return &Grid{names: names, ranges: ranges}, nil
}

// Search evaluates every grid point and returns the best assignment and its
// score. Evaluation errors skip the point; context cancellation aborts.
func (g *Grid) Search(ctx context.Context, objective Objective) (map[string]float64, float64, error) {
	best := math.Inf(1)
	var bestParams map[string]float64

	err := g.searchRecursive(ctx, 0, make(map[string]float64), objective, &best, &bestParams)
	if err != nil {
		return nil, 0, err
	}
	if bestParams == nil {
		return nil, 0, fmt.Errorf("sweep: no grid point evaluated successfully")
	}
	return bestParams, best, nil
}

func (g *Grid) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	objective Objective,
	best *float64,
	bestParams *map[string]float64,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.names) {
		val, err := objective(ctx, current)
		if err != nil {
			return nil
		}
		if val < *best {
			*best = val
			picked := make(map[string]float64, len(current))
			for k, v := range current {
				picked[k] = v
			}
			*bestParams = picked
		}
		return nil
	}

	name := g.names[depth]
	for _, val := range g.ranges[depth] {
		current[name] = val
		if err := g.searchRecursive(ctx, depth+1, current, objective, best, bestParams); err != nil {
			return err
		}
	}
	delete(current, name)
	return nil
}

// Apply overlays named values onto estimator parameters. Unknown names are
// rejected so a sweep cannot silently tune nothing.
func Apply(base nld.Params, vals map[string]float64) (nld.Params, error) {
	p := base
	for name, v := range vals {
		switch name {
		case "embedding_dim":
			p.Dim = int(v)
		case "delay":
			p.Delay = int(v)
		case "min_separation":
			p.MinSeparation = int(v)
		case "max_offset":
			p.MaxOffset = int(v)
		case "fit_len":
			p.FitLen = int(v)
		case "min_box":
			p.MinBox = int(v)
		case "max_box":
			p.MaxBox = int(v)
		case "box_growth":
			p.BoxGrowth = v
		default:
			return nld.Params{}, fmt.Errorf("sweep: unknown parameter %q", name)
		}
	}
	return p, nil
}
