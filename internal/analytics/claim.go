package analytics

import (
	"fmt"

	"fleet-optimizer/internal/model"
	"fleet-optimizer/internal/solver"
)

// Claim is an externally asserted fleet specification: exactly Size vessels,
// average safety at least Safety, total cost at most MaxCost, on top of the
// scenario's standing cargo and coverage requirements.
type Claim struct {
	Size    int
	Safety  float64
	MaxCost float64
}

// ClaimResult is the verdict plus evidence. When the claim fails, MinCost is
// the cheapest cost actually achievable under the size and safety terms alone
// (the cost ceiling dropped), so the report can state the gap; when no fleet
// meets even those terms, SizeFeasible is false and MinCost is meaningless.
// AnySizeMinCost is the cheapest cost with the size term also dropped.
type ClaimResult struct {
	Claim   Claim
	Holds   bool
	Witness model.Fleet // a fleet satisfying the claim, valid only when Holds

	SizeFeasible   bool
	MinCost        float64
	MinCostFleet   model.Fleet
	AnySizeMinCost float64
}

// CheckClaim tests a claim with a feasibility-only query, then gathers gap
// evidence with two unconstrained-cost optimizations. Checking the same claim
// twice yields the same verdict and the same evidence.
func CheckClaim(tbl *model.Table, sc model.Scenario, c Claim) (*ClaimResult, error) {
	if c.Size <= 0 || c.MaxCost <= 0 {
		return nil, fmt.Errorf("%w: claim needs positive size and cost ceiling", model.ErrMalformedInput)
	}
	scoped := sc.WithSafetyFloor(c.Safety)

	res := &ClaimResult{Claim: c}

	sol, err := solver.Solve(solver.Problem{
		Table:           tbl,
		Scenario:        scoped,
		FleetSizeEq:     c.Size,
		MaxCost:         c.MaxCost,
		FeasibilityOnly: true,
	})
	if err != nil {
		return nil, err
	}
	if sol.Status != solver.StatusInfeasible {
		res.Holds = true
		res.Witness = sol.Fleet
	}

	// Evidence pass: what does size+safety actually cost without the ceiling?
	ev, err := solver.Solve(solver.Problem{
		Table:       tbl,
		Scenario:    scoped,
		FleetSizeEq: c.Size,
	})
	if err != nil {
		return nil, err
	}
	if ev.Status == solver.StatusOptimal {
		res.SizeFeasible = true
		res.MinCost = ev.Objective
		res.MinCostFleet = ev.Fleet
	}

	free, err := solver.Solve(solver.Problem{Table: tbl, Scenario: scoped})
	if err != nil {
		return nil, err
	}
	if free.Status == solver.StatusOptimal {
		res.AnySizeMinCost = free.Objective
	}
	return res, nil
}
