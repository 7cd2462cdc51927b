// Package fleet is the feasibility model: pure metric and predicate functions
// over a candidate vessel subset. Both selection algorithms and the analytics
// layer evaluate candidates through it, so the three hard constraints are
// defined in exactly one place.
package fleet

import (
	"fmt"
	"sort"

	"fleet-optimizer/internal/model"
)

// safetyEps absorbs float drift when comparing the mean safety score against
// the floor, matching the tolerance the upstream validator uses.
const safetyEps = 1e-9

// Metrics are the realized aggregates of a candidate set.
type Metrics struct {
	Size       int
	TotalDWT   float64
	AvgSafety  float64 // unweighted arithmetic mean, not DWT-weighted
	TotalCost  float64
	TotalCO2Eq float64
	TotalFuel  float64
	Coverage   map[model.FuelType]int // distinct fuel types present, with counts
}

// Compute aggregates the metrics of a candidate set against the active table.
// Unknown ids are malformed input: every id in a fleet must reference an
// existing vessel.
func Compute(tbl *model.Table, ids []int64) (Metrics, error) {
	m := Metrics{Coverage: map[model.FuelType]int{}}
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue // set semantics: duplicates contribute once
		}
		seen[id] = true
		v, ok := tbl.Get(id)
		if !ok {
			return Metrics{}, fmt.Errorf("%w: fleet references unknown vessel %d", model.ErrMalformedInput, id)
		}
		m.Size++
		m.TotalDWT += v.DWT
		m.AvgSafety += v.SafetyScore
		m.TotalCost += v.AdjustedCost
		m.TotalCO2Eq += v.CO2Eq
		m.TotalFuel += v.FuelTotal
		m.Coverage[v.FuelType]++
	}
	if m.Size > 0 {
		m.AvgSafety /= float64(m.Size)
	}
	return m, nil
}

// FuelTypes returns the covered fuel types in a fixed (sorted) order.
func (m Metrics) FuelTypes() []model.FuelType {
	out := make([]model.FuelType, 0, len(m.Coverage))
	for ft := range m.Coverage {
		out = append(out, ft)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Check is the per-constraint verdict of a candidate set under a scenario.
type Check struct {
	DWTMet       bool
	SafetyMet    bool
	CoverageMet  bool
	MissingFuels []model.FuelType
}

// Check evaluates the three hard constraints.
func (m Metrics) Check(sc model.Scenario) Check {
	c := Check{
		DWTMet:    m.TotalDWT >= sc.CargoRequirementDWT,
		SafetyMet: m.AvgSafety >= sc.SafetyFloor-safetyEps,
	}
	for _, ft := range sc.RequiredFuelTypes {
		if m.Coverage[ft] == 0 {
			c.MissingFuels = append(c.MissingFuels, ft)
		}
	}
	sort.Slice(c.MissingFuels, func(i, j int) bool { return c.MissingFuels[i] < c.MissingFuels[j] })
	c.CoverageMet = len(c.MissingFuels) == 0
	return c
}

// Feasible reports whether all three hard constraints hold.
func (c Check) Feasible() bool {
	return c.DWTMet && c.SafetyMet && c.CoverageMet
}

// Feasible is shorthand for Check(sc).Feasible().
func (m Metrics) Feasible(sc model.Scenario) bool {
	return m.Check(sc).Feasible()
}
