// Package selector implements the deterministic two-phase greedy heuristic.
// It is transparent by construction: every inclusion is logged with its phase,
// rank and rationale, so a reviewer can replay the fleet decision by decision.
package selector

import (
	"fmt"
	"sort"

	"fleet-optimizer/internal/fleet"
	"fleet-optimizer/internal/model"
)

// Result bundles the selected fleet with its audit log and realized metrics.
type Result struct {
	Fleet   model.Fleet
	Log     []model.Selection
	Metrics fleet.Metrics
}

// SelectGreedy runs the two-phase heuristic:
//
//  1. Seeding: for each required fuel type, take the single vessel with the
//     lowest cost-per-DWT (ties broken by ascending vessel id). This covers
//     fuel diversity before anything else.
//  2. Filling: add the remaining vessels in ascending cost-per-DWT order
//     (same tie-break) until the running total DWT meets the cargo
//     requirement.
//
// The safety floor is not actively enforced while filling; it is checked once
// after the loop. If the finished fleet misses the floor, SelectGreedy returns
// the fleet together with model.ErrConstraintUnsatisfied so the caller can
// inspect it or fall back to the exact optimizer. This post-hoc check is a
// documented limitation of the heuristic, not a defect.
//
// The same table and scenario always produce the same fleet and the same log.
func SelectGreedy(tbl *model.Table, sc model.Scenario) (*Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	selected := map[int64]bool{}
	var ids []int64
	var log []model.Selection
	rank := 0

	// Phase 1: seed one representative per required fuel type.
	types := append([]model.FuelType(nil), sc.RequiredFuelTypes...)
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	for _, ft := range types {
		pool := tbl.ByFuelType(ft)
		if len(pool) == 0 {
			return nil, fmt.Errorf("%w: no vessels available for fuel type %q", model.ErrInfeasibleScenario, ft)
		}
		v := pool[0] // cheapest cost-per-DWT, id tie-break baked into ByFuelType
		selected[v.ID] = true
		ids = append(ids, v.ID)
		rank++
		log = append(log, model.Selection{
			VesselID: v.ID,
			Phase:    model.PhaseSeed,
			Rank:     rank,
			Reason: fmt.Sprintf("fuel-type representative for %s: cost/dwt=$%.4f, safety=%.0f, dwt=%.0f",
				ft, v.CostPerDWT(), v.SafetyScore, v.DWT),
		})
	}

	totalDWT := 0.0
	for _, id := range ids {
		v, _ := tbl.Get(id)
		totalDWT += v.DWT
	}

	// Phase 2: fill by ascending cost-per-DWT until the cargo requirement is
	// met. Any vessel is eligible; feasibility is a property of the running
	// fleet, not of individual vessels.
	remaining := remainingByValue(tbl, selected)
	for _, v := range remaining {
		if totalDWT >= sc.CargoRequirementDWT {
			break
		}
		selected[v.ID] = true
		ids = append(ids, v.ID)
		totalDWT += v.DWT
		rank++
		log = append(log, model.Selection{
			VesselID: v.ID,
			Phase:    model.PhaseFill,
			Rank:     rank,
			Reason: fmt.Sprintf("cost/dwt=$%.4f, running dwt=%.0f/%.0f",
				v.CostPerDWT(), totalDWT, sc.CargoRequirementDWT),
		})
	}

	if totalDWT < sc.CargoRequirementDWT {
		return nil, fmt.Errorf("%w: pool exhausted at dwt %.0f of required %.0f",
			model.ErrInfeasibleScenario, totalDWT, sc.CargoRequirementDWT)
	}

	res := &Result{Fleet: model.NewFleet(ids), Log: log}
	m, err := fleet.Compute(tbl, res.Fleet.IDs)
	if err != nil {
		return nil, err
	}
	res.Metrics = m

	if chk := m.Check(sc); !chk.SafetyMet {
		return res, fmt.Errorf("%w: fleet avg safety %.2f below floor %.2f",
			model.ErrConstraintUnsatisfied, m.AvgSafety, sc.SafetyFloor)
	}
	return res, nil
}

// remainingByValue lists unselected vessels in ascending cost-per-DWT order,
// ties broken by vessel id. The id tie-break is a deliberate design decision:
// the ordering is otherwise unspecified for equal-value vessels and a stable
// total order is what makes reruns bit-identical.
func remainingByValue(tbl *model.Table, selected map[int64]bool) []model.Vessel {
	var out []model.Vessel
	for _, v := range tbl.Vessels() {
		if !selected[v.ID] {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ci, cj := out[i].CostPerDWT(), out[j].CostPerDWT()
		if ci == cj {
			return out[i].ID < out[j].ID
		}
		return ci < cj
	})
	return out
}
