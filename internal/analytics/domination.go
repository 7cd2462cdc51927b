package analytics

import (
	"fmt"
	"sync"

	"fleet-optimizer/internal/fleet"
	"fleet-optimizer/internal/model"
	"fleet-optimizer/internal/solver"
)

// DominationResult reports whether any fleet strictly dominates the baseline:
// average safety strictly above the baseline's at total cost no higher than
// the baseline's. Points holds the full threshold ladder for reporting; Best
// is the highest-safety dominating fleet found, valid only when Dominates.
type DominationResult struct {
	Baseline  fleet.Metrics
	Dominates bool
	Best      Point
	Points    []Point
}

// DominationSearch probes safety thresholds rising from just above the
// baseline's average in the given step, each time asking the optimizer for a
// min-cost fleet under that threshold with the baseline's cost as a ceiling.
// The ladder stops at the maximum safety score of 5. A feasible rung is a
// dominating fleet; the highest feasible rung is reported as Best.
func DominationSearch(tbl *model.Table, sc model.Scenario, baseline model.Fleet, step float64, opts Options) (*DominationResult, error) {
	if step <= 0 {
		return nil, fmt.Errorf("%w: domination step must be positive, got %g", model.ErrMalformedInput, step)
	}
	base, err := fleet.Compute(tbl, baseline.IDs)
	if err != nil {
		return nil, err
	}
	if base.Size == 0 {
		return nil, fmt.Errorf("%w: domination baseline fleet is empty", model.ErrMalformedInput)
	}

	thresholds := Thresholds(base.AvgSafety+step, 5.0, step)
	res := &DominationResult{Baseline: base, Points: make([]Point, len(thresholds))}
	if len(thresholds) == 0 {
		return res, nil
	}

	var firstErr error
	var mu sync.Mutex
	runParallel(len(thresholds), opts.Workers, func(i int) {
		t := thresholds[i]
		sol, err := solver.Solve(solver.Problem{
			Table:    tbl,
			Scenario: sc.WithSafetyFloor(t),
			MaxCost:  base.TotalCost,
		})
		if err != nil {
			mu.Lock()
			if firstErr == nil {
				firstErr = err
			}
			mu.Unlock()
			return
		}
		res.Points[i] = pointFrom(fmt.Sprintf("dominate_safety_%.2f", t), t, sol)
	})
	if firstErr != nil {
		return nil, firstErr
	}

	for _, p := range res.Points {
		if p.Feasible {
			res.Dominates = true
			res.Best = p // thresholds ascend, so the last feasible rung wins
		}
	}
	return res, nil
}
