package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-optimizer/internal/fleet"
	"fleet-optimizer/internal/model"
	"fleet-optimizer/internal/solver"
)

func analyticsTable(t *testing.T) *model.Table {
	t.Helper()
	tbl, err := model.NewTable([]model.Vessel{
		{ID: 1, DWT: 150, FuelType: model.FuelLNG, SafetyScore: 3, AdjustedCost: 300},
		{ID: 2, DWT: 100, FuelType: model.FuelLNG, SafetyScore: 4, AdjustedCost: 150},
		{ID: 3, DWT: 80, FuelType: model.FuelLNG, SafetyScore: 2, AdjustedCost: 100},
		{ID: 4, DWT: 120, FuelType: model.FuelAmmonia, SafetyScore: 5, AdjustedCost: 250},
		{ID: 5, DWT: 90, FuelType: model.FuelAmmonia, SafetyScore: 3, AdjustedCost: 120},
		{ID: 6, DWT: 70, FuelType: model.FuelHydrogen, SafetyScore: 4, AdjustedCost: 200},
		{ID: 7, DWT: 60, FuelType: model.FuelHydrogen, SafetyScore: 2, AdjustedCost: 90},
		{ID: 8, DWT: 200, FuelType: model.FuelDistillate, SafetyScore: 3, AdjustedCost: 220},
		{ID: 9, DWT: 130, FuelType: model.FuelDistillate, SafetyScore: 5, AdjustedCost: 140},
	})
	require.NoError(t, err)
	return tbl
}

func analyticsScenario() model.Scenario {
	return model.Scenario{
		Name:                "test",
		SafetyFloor:         3.0,
		CargoRequirementDWT: 300,
		RequiredFuelTypes:   []model.FuelType{model.FuelLNG, model.FuelAmmonia, model.FuelHydrogen},
	}
}

func TestThresholds(t *testing.T) {
	got := Thresholds(3.0, 4.0, 0.25)
	assert.Equal(t, []float64{3.0, 3.25, 3.5, 3.75, 4.0}, got)

	assert.Nil(t, Thresholds(3.0, 2.0, 0.25))
	assert.Nil(t, Thresholds(3.0, 4.0, 0))

	// The upper bound is inclusive even when the step lands exactly on it.
	got = Thresholds(3.0, 3.0, 0.1)
	assert.Equal(t, []float64{3.0}, got)
}

func TestFleetSizeSweep(t *testing.T) {
	tbl := analyticsTable(t)
	sc := analyticsScenario()

	points, err := FleetSizeSweep(tbl, sc, 3, 6, Options{Workers: 2})
	require.NoError(t, err)
	require.Len(t, points, 4)

	for i, p := range points {
		assert.Equal(t, float64(3+i), p.Param)
		if p.Feasible {
			assert.Equal(t, 3+i, p.FleetSize)
			// Every returned fleet must independently verify as optimal.
			sol, err := solver.Solve(solver.Problem{Table: tbl, Scenario: sc, FleetSizeEq: 3 + i})
			require.NoError(t, err)
			assert.InDelta(t, sol.Objective, p.Cost, 1e-6)
		}
	}

	_, err = FleetSizeSweep(tbl, sc, 0, 5, Options{})
	assert.Error(t, err)
}

func TestParetoFrontierMonotone(t *testing.T) {
	tbl := analyticsTable(t)
	sc := analyticsScenario()

	thresholds := Thresholds(2.0, 5.0, 0.5)
	points, err := ParetoFrontier(tbl, sc, thresholds, 0, Options{Workers: 2})
	require.NoError(t, err)
	require.Len(t, points, len(thresholds))

	// Minimal cost is non-decreasing in the safety threshold, and once a
	// threshold is infeasible every higher one is too.
	prevCost := 0.0
	infeasibleSeen := false
	for _, p := range points {
		if !p.Feasible {
			infeasibleSeen = true
			continue
		}
		assert.False(t, infeasibleSeen, "feasible point after infeasible threshold %.2f", p.Param)
		assert.GreaterOrEqual(t, p.Cost, prevCost-1e-6)
		assert.GreaterOrEqual(t, p.AvgSafety, p.Param-1e-9)
		prevCost = p.Cost
	}
}

func TestParetoFrontierEmptyThresholds(t *testing.T) {
	tbl := analyticsTable(t)
	_, err := ParetoFrontier(tbl, analyticsScenario(), nil, 0, Options{})
	assert.Error(t, err)
}

func TestDominationSearch(t *testing.T) {
	tbl := analyticsTable(t)
	sc := analyticsScenario()

	// Deliberately wasteful baseline: expensive vessels with modest safety.
	baseline := model.NewFleet([]int64{1, 4, 6, 8})

	dom, err := DominationSearch(tbl, sc, baseline, 0.25, Options{Workers: 2})
	require.NoError(t, err)
	require.NotNil(t, dom)
	assert.Equal(t, 4, dom.Baseline.Size)

	if dom.Dominates {
		assert.True(t, dom.Best.Feasible)
		assert.LessOrEqual(t, dom.Best.Cost, dom.Baseline.TotalCost+1e-6)
		assert.Greater(t, dom.Best.AvgSafety, dom.Baseline.AvgSafety)
	}
	// Rungs above 5.0 must not exist; all points are above the baseline mean.
	for _, p := range dom.Points {
		assert.Greater(t, p.Param, dom.Baseline.AvgSafety)
		assert.LessOrEqual(t, p.Param, 5.0+1e-9)
	}
}

func TestDominationSearchBadInput(t *testing.T) {
	tbl := analyticsTable(t)
	sc := analyticsScenario()

	_, err := DominationSearch(tbl, sc, model.NewFleet([]int64{1}), 0, Options{})
	assert.Error(t, err)

	_, err = DominationSearch(tbl, sc, model.NewFleet(nil), 0.1, Options{})
	assert.Error(t, err)
}

func TestCheckClaim(t *testing.T) {
	tbl := analyticsTable(t)
	sc := analyticsScenario()

	// Establish the true minimum for a 4-vessel fleet at safety >= 3.5.
	ref, err := solver.Solve(solver.Problem{
		Table:       tbl,
		Scenario:    sc.WithSafetyFloor(3.5),
		FleetSizeEq: 4,
	})
	require.NoError(t, err)
	require.Equal(t, solver.StatusOptimal, ref.Status)

	// A ceiling at the optimum holds; a ceiling just under it cannot.
	holds, err := CheckClaim(tbl, sc, Claim{Size: 4, Safety: 3.5, MaxCost: ref.Objective})
	require.NoError(t, err)
	assert.True(t, holds.Holds)
	require.NotEmpty(t, holds.Witness.IDs)

	// The witness must itself satisfy every claim term.
	wm, err := fleet.Compute(tbl, holds.Witness.IDs)
	require.NoError(t, err)
	assert.Equal(t, 4, wm.Size)
	assert.GreaterOrEqual(t, wm.AvgSafety, 3.5-1e-9)
	assert.LessOrEqual(t, wm.TotalCost, ref.Objective+1e-6)

	fails, err := CheckClaim(tbl, sc, Claim{Size: 4, Safety: 3.5, MaxCost: ref.Objective - 1})
	require.NoError(t, err)
	assert.False(t, fails.Holds)
	assert.True(t, fails.SizeFeasible)
	assert.InDelta(t, ref.Objective, fails.MinCost, 1e-6)
	assert.LessOrEqual(t, fails.AnySizeMinCost, fails.MinCost+1e-6)
}

func TestCheckClaimIdempotent(t *testing.T) {
	tbl := analyticsTable(t)
	sc := analyticsScenario()
	claim := Claim{Size: 4, Safety: 3.0, MaxCost: 1000}

	first, err := CheckClaim(tbl, sc, claim)
	require.NoError(t, err)
	second, err := CheckClaim(tbl, sc, claim)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCheckClaimBadInput(t *testing.T) {
	tbl := analyticsTable(t)
	_, err := CheckClaim(tbl, analyticsScenario(), Claim{Size: 0, MaxCost: 100})
	assert.Error(t, err)
}
