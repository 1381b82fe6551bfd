package optim

import (
	"context"
	"errors"
	"math"

	"github.com/san-kum/mdsim/internal/dynamo"
	"github.com/san-kum/mdsim/internal/sim"
)

// Point is one evaluated grid cell. Err is set when the cell could not be
// simulated, for example because its lattice overlaps.
type Point struct {
	Params  map[string]float64
	Summary *sim.Summary
	Value   float64
	Err     error
}

// Builder creates a thermalized simulation for one set of grid values.
type Builder func(params map[string]float64) (*sim.Simulation, error)

// Objective scores a finished run; lower is better.
type Objective func(*sim.Summary) float64

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search runs every combination of the ranges for batches*batchSize steps
// and returns the lowest-scoring parameters with all evaluated points in
// grid order. Cells that fail are kept in points and skipped for the best.
func (g *GridSearch) Search(
	ctx context.Context,
	build Builder,
	batches, batchSize int,
	objective Objective,
) (map[string]float64, float64, []Point, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, nil, dynamo.InvalidParam("grid ranges", len(g.ranges))
	}

	best := math.Inf(1)
	var bestParams map[string]float64
	var points []Point

	err := g.searchRecursive(ctx, 0, make(map[string]float64), func(params map[string]float64) error {
		p := Point{Params: params}
		p.Summary, p.Err = evaluate(ctx, build, params, batches, batchSize)
		if errors.Is(p.Err, dynamo.ErrContextCanceled) {
			return p.Err
		}
		if p.Err == nil {
			p.Value = objective(p.Summary)
			if p.Value < best {
				best = p.Value
				bestParams = params
			}
		}
		points = append(points, p)
		return nil
	})

	return bestParams, best, points, err
}

func evaluate(ctx context.Context, build Builder, params map[string]float64, batches, batchSize int) (*sim.Summary, error) {
	s, err := build(params)
	if err != nil {
		return nil, err
	}
	return s.Run(ctx, batches, batchSize, nil)
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	visit func(map[string]float64) error,
) error {
	if depth == len(g.paramNames) {
		return visit(current)
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, visit); err != nil {
			return err
		}
	}
	return nil
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

// MaxHeatCapacity scores a run by its negated heat capacity, so Search
// finds the peak. Runs without samples score +Inf.
func MaxHeatCapacity(s *sim.Summary) float64 {
	if s.CvSamples == 0 {
		return math.Inf(1)
	}
	return -s.Cv
}

// MinEnergyDrift scores a run by its largest total-energy deviation.
func MinEnergyDrift(s *sim.Summary) float64 {
	return s.EnergyDrift
}
