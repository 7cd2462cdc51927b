// Package analytics orchestrates repeated exact-optimizer invocations under
// varied parameters: fleet-size sweeps, Pareto frontiers, domination searches
// against a baseline fleet, and feasibility checks of externally asserted
// claims. Every result is derived purely from independent solver calls over
// the shared immutable vessel table; the runner keeps no cross-call state
// beyond collecting rows into a report.
package analytics

import (
	"fmt"
	"sync"

	"fleet-optimizer/internal/model"
	"fleet-optimizer/internal/solver"
)

// Options tunes the runner. Workers bounds the fan-out of independent solver
// calls within one sweep; 0 or 1 runs sequentially. Parallelism is safe
// because each invocation only reads the table and writes to its own result
// slot.
type Options struct {
	Workers int
}

// runParallel executes fn(i) for i in [0, n) across at most workers
// goroutines. Results must be written to per-index slots by fn.
func runParallel(n, workers int, fn func(i int)) {
	if workers <= 1 || n <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	if workers > n {
		workers = n
	}
	idx := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range idx {
				fn(i)
			}
		}()
	}
	for i := 0; i < n; i++ {
		idx <- i
	}
	close(idx)
	wg.Wait()
}

// Point is one row of an analytics report table: the swept parameter plus the
// optimizer outcome at that parameter.
type Point struct {
	Label     string
	Param     float64
	Feasible  bool
	Cost      float64
	AvgSafety float64
	FleetSize int
	TotalDWT  float64
	Fleet     model.Fleet
}

func pointFrom(label string, param float64, sol *solver.Solution) Point {
	p := Point{Label: label, Param: param}
	if sol.Status == solver.StatusInfeasible {
		return p
	}
	p.Feasible = true
	p.Cost = sol.Metrics.TotalCost
	p.AvgSafety = sol.Metrics.AvgSafety
	p.FleetSize = sol.Metrics.Size
	p.TotalDWT = sol.Metrics.TotalDWT
	p.Fleet = sol.Fleet
	return p
}

// FleetSizeSweep solves min-cost with the fleet size fixed at each N in
// [minN, maxN], recording the optimum or infeasibility per size.
func FleetSizeSweep(tbl *model.Table, sc model.Scenario, minN, maxN int, opts Options) ([]Point, error) {
	if minN <= 0 || maxN < minN {
		return nil, fmt.Errorf("%w: invalid fleet-size range [%d, %d]", model.ErrMalformedInput, minN, maxN)
	}
	out := make([]Point, maxN-minN+1)
	var firstErr error
	var mu sync.Mutex
	runParallel(len(out), opts.Workers, func(i int) {
		n := minN + i
		sol, err := solver.Solve(solver.Problem{Table: tbl, Scenario: sc, FleetSizeEq: n})
		if err != nil {
			mu.Lock()
			if firstErr == nil {
				firstErr = err
			}
			mu.Unlock()
			return
		}
		out[i] = pointFrom(fmt.Sprintf("fleet_size_%d", n), float64(n), sol)
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// ParetoFrontier solves "minimize cost subject to avg safety >= threshold"
// for each threshold, optionally with a fixed fleet size. The resulting
// minimal costs are non-decreasing in the threshold; once a threshold is
// infeasible all higher ones are too.
func ParetoFrontier(tbl *model.Table, sc model.Scenario, thresholds []float64, fixedSize int, opts Options) ([]Point, error) {
	if len(thresholds) == 0 {
		return nil, fmt.Errorf("%w: no safety thresholds given", model.ErrMalformedInput)
	}
	out := make([]Point, len(thresholds))
	var firstErr error
	var mu sync.Mutex
	runParallel(len(out), opts.Workers, func(i int) {
		t := thresholds[i]
		sol, err := solver.Solve(solver.Problem{
			Table:       tbl,
			Scenario:    sc.WithSafetyFloor(t),
			FleetSizeEq: fixedSize,
		})
		if err != nil {
			mu.Lock()
			if firstErr == nil {
				firstErr = err
			}
			mu.Unlock()
			return
		}
		out[i] = pointFrom(fmt.Sprintf("pareto_safety_%.2f", t), t, sol)
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// Thresholds builds an inclusive [from, to] sweep in the given step, a
// convenience for CLI/API callers.
func Thresholds(from, to, step float64) []float64 {
	if step <= 0 || to < from {
		return nil
	}
	var out []float64
	// Index-based stepping avoids accumulating float error across the sweep.
	for i := 0; ; i++ {
		t := from + float64(i)*step
		if t > to+1e-9 {
			break
		}
		out = append(out, t)
	}
	return out
}
