// Package solver is the exact optimizer: the fleet-selection binary program
// solved to provable optimality by deterministic branch and bound.
//
// Formulation, over binary x_v per vessel:
//
//	minimize   sum cost_v * x_v
//	subject to sum dwt_v * x_v               >= cargo requirement
//	           sum (safety_v - floor) * x_v  >= 0        (linearized mean)
//	           sum_{fuel(v)=f} x_v           >= 1        per required fuel f
//	           sum x_v  = N   or  <= N                   (optional)
//	           sum cost_v * x_v <= C                     (optional ceiling)
//
// Infeasibility is a normal, reportable outcome; only malformed input is an
// error.
package solver

import (
	"fmt"
	"time"

	"fleet-optimizer/internal/fleet"
	"fleet-optimizer/internal/model"
)

// Status is the solver verdict.
type Status string

const (
	// StatusOptimal carries a certificate: the search tree was exhausted, so
	// no feasible fleet has a strictly better objective.
	StatusOptimal Status = "optimal"
	// StatusFeasible is returned by feasibility-only queries, which stop at
	// the first integral solution instead of proving optimality.
	StatusFeasible Status = "feasible"
	// StatusInfeasible means the constraint system admits no integral
	// solution.
	StatusInfeasible Status = "infeasible"
)

// Problem is one solver invocation. Zero values mean "constraint absent":
// FleetSizeEq/FleetSizeMax of 0 leave the size free, MaxCost of 0 disables
// the ceiling.
type Problem struct {
	Table    *model.Table
	Scenario model.Scenario

	FleetSizeEq  int
	FleetSizeMax int
	MaxCost      float64

	// FeasibilityOnly runs a pure feasibility query: no objective, the search
	// returns the first fleet satisfying every constraint.
	FeasibilityOnly bool
}

// Solution is the solver output. IDs are sorted ascending; Nodes counts the
// search-tree nodes explored, which doubles as a determinism fingerprint.
type Solution struct {
	Status    Status
	Fleet     model.Fleet
	Objective float64
	Metrics   fleet.Metrics
	Nodes     int64
	SolveTime time.Duration
}

// Solve runs the branch-and-bound search. Identical problems always yield
// identical solutions: vessels are ordered by ascending cost-per-DWT with ids
// breaking ties, branching explores "include" before "exclude", and
// incumbents are replaced only on strict improvement.
func Solve(p Problem) (*Solution, error) {
	start := time.Now()
	if p.Table == nil || p.Table.Len() == 0 {
		return nil, fmt.Errorf("%w: solver needs a non-empty vessel table", model.ErrMalformedInput)
	}
	if err := p.Scenario.Validate(); err != nil {
		return nil, err
	}
	if p.FleetSizeEq < 0 || p.FleetSizeMax < 0 || p.MaxCost < 0 {
		return nil, fmt.Errorf("%w: negative size or cost constraint", model.ErrMalformedInput)
	}

	e := newEngine(p)
	e.search()

	sol := &Solution{
		Nodes:     e.nodes,
		SolveTime: time.Since(start),
	}
	if !e.found {
		sol.Status = StatusInfeasible
		return sol, nil
	}

	sol.Fleet = model.NewFleet(e.bestIDs())
	m, err := fleet.Compute(p.Table, sol.Fleet.IDs)
	if err != nil {
		return nil, err
	}
	sol.Metrics = m
	sol.Objective = m.TotalCost
	if p.FeasibilityOnly {
		sol.Status = StatusFeasible
	} else {
		sol.Status = StatusOptimal
	}
	return sol, nil
}
