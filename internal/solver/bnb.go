package solver

import (
	"math"
	"sort"

	"fleet-optimizer/internal/model"
)

// costEps separates "strictly better" incumbents; safetyEps tolerates float
// drift in the linearized mean-safety constraint.
const (
	costEps   = 1e-6
	safetyEps = 1e-9
)

// engine holds all search data for one Solve call. A dedicated struct keeps
// the hot-path state explicit and the search free of shared mutable globals,
// so independent solves are safe to run in parallel.
type engine struct {
	vs       []model.Vessel // ordered by ascending cost-per-DWT, then id
	required []model.FuelType

	cargoReq float64
	floor    float64
	sizeEq   int
	sizeMax  int
	maxCost  float64
	feasOnly bool

	// Suffix precomputes over vs[i:]: total remaining DWT, total remaining
	// positive safety slack, per-fuel remaining counts and minimal costs.
	sufDWT      []float64
	sufPosSlack []float64
	sufFuelCnt  map[model.FuelType][]int
	sufFuelMin  map[model.FuelType][]float64

	// Current path state.
	chosen   []bool
	curCost  float64
	curDWT   float64
	curSlack float64 // sum of (safety - floor) over chosen vessels
	curCount int
	covered  map[model.FuelType]int

	// Incumbent.
	best     []bool
	bestCost float64
	found    bool
	stop     bool

	nodes int64
}

func newEngine(p Problem) *engine {
	vs := p.Table.Vessels()
	sort.Slice(vs, func(i, j int) bool {
		ci, cj := vs[i].CostPerDWT(), vs[j].CostPerDWT()
		if ci == cj {
			return vs[i].ID < vs[j].ID
		}
		return ci < cj
	})

	required := append([]model.FuelType(nil), p.Scenario.RequiredFuelTypes...)
	sort.Slice(required, func(i, j int) bool { return required[i] < required[j] })

	n := len(vs)
	e := &engine{
		vs:          vs,
		required:    required,
		cargoReq:    p.Scenario.CargoRequirementDWT,
		floor:       p.Scenario.SafetyFloor,
		sizeEq:      p.FleetSizeEq,
		sizeMax:     p.FleetSizeMax,
		maxCost:     p.MaxCost,
		feasOnly:    p.FeasibilityOnly,
		sufDWT:      make([]float64, n+1),
		sufPosSlack: make([]float64, n+1),
		sufFuelCnt:  map[model.FuelType][]int{},
		sufFuelMin:  map[model.FuelType][]float64{},
		chosen:      make([]bool, n),
		covered:     map[model.FuelType]int{},
		best:        make([]bool, n),
		bestCost:    math.Inf(1),
	}

	for _, ft := range required {
		e.sufFuelCnt[ft] = make([]int, n+1)
		mins := make([]float64, n+1)
		mins[n] = math.Inf(1)
		e.sufFuelMin[ft] = mins
	}
	for i := n - 1; i >= 0; i-- {
		v := vs[i]
		e.sufDWT[i] = e.sufDWT[i+1] + v.DWT
		slack := v.SafetyScore - e.floor
		if slack > 0 {
			e.sufPosSlack[i] = e.sufPosSlack[i+1] + slack
		} else {
			e.sufPosSlack[i] = e.sufPosSlack[i+1]
		}
		for _, ft := range required {
			cnt := e.sufFuelCnt[ft]
			mins := e.sufFuelMin[ft]
			cnt[i] = cnt[i+1]
			mins[i] = mins[i+1]
			if v.FuelType == ft {
				cnt[i]++
				if v.AdjustedCost < mins[i] {
					mins[i] = v.AdjustedCost
				}
			}
		}
	}
	return e
}

func (e *engine) search() {
	e.dfs(0)
}

func (e *engine) bestIDs() []int64 {
	var ids []int64
	for i, on := range e.best {
		if on {
			ids = append(ids, e.vs[i].ID)
		}
	}
	return ids
}

// currentFeasible checks the current selection as a complete fleet
// (all undecided vessels treated as excluded).
func (e *engine) currentFeasible() bool {
	if e.curDWT < e.cargoReq {
		return false
	}
	if e.curSlack < -safetyEps {
		return false
	}
	if e.sizeEq > 0 && e.curCount != e.sizeEq {
		return false
	}
	for _, ft := range e.required {
		if e.covered[ft] == 0 {
			return false
		}
	}
	return true
}

// tryCommit records the current selection as a candidate solution.
func (e *engine) tryCommit() {
	if !e.currentFeasible() {
		return
	}
	if e.feasOnly {
		copy(e.best, e.chosen)
		e.bestCost = e.curCost
		e.found = true
		e.stop = true
		return
	}
	if e.curCost < e.bestCost-costEps {
		copy(e.best, e.chosen)
		e.bestCost = e.curCost
		e.found = true
	}
}

// completionLB is an admissible lower bound on the extra cost of any feasible
// completion using vessels vs[i:]. Two relaxations, take the larger:
//
//   - the fractional fill of the remaining DWT deficit in cost-per-DWT order
//     (the LP optimum of the capacity constraint alone), and
//   - one vessel per still-uncovered fuel type at that type's cheapest
//     remaining cost (distinct types are necessarily distinct vessels).
//
// Both ignore the other constraints, so neither can exceed the true optimum.
func (e *engine) completionLB(i int) float64 {
	dwtLB := 0.0
	need := e.cargoReq - e.curDWT
	for j := i; j < len(e.vs) && need > 0; j++ {
		v := e.vs[j]
		if v.DWT >= need {
			dwtLB += v.AdjustedCost * (need / v.DWT)
			need = 0
		} else {
			dwtLB += v.AdjustedCost
			need -= v.DWT
		}
	}

	fuelLB := 0.0
	for _, ft := range e.required {
		if e.covered[ft] == 0 {
			fuelLB += e.sufFuelMin[ft][i]
		}
	}

	return math.Max(dwtLB, fuelLB)
}

// prune reports whether the subtree rooted at index i can be discarded,
// either because no feasible completion exists or because the cost bound
// cannot beat the incumbent.
func (e *engine) prune(i int) bool {
	n := len(e.vs)

	if e.curDWT+e.sufDWT[i] < e.cargoReq {
		return true
	}
	if e.curSlack+e.sufPosSlack[i] < -safetyEps {
		return true
	}
	for _, ft := range e.required {
		if e.covered[ft] == 0 && e.sufFuelCnt[ft][i] == 0 {
			return true
		}
	}
	if e.sizeEq > 0 {
		if e.curCount > e.sizeEq {
			return true
		}
		if e.curCount+(n-i) < e.sizeEq {
			return true
		}
	}

	if !e.feasOnly && e.found {
		if e.curCost+e.completionLB(i) >= e.bestCost-costEps {
			return true
		}
	}
	return false
}

func (e *engine) include(i int) {
	v := e.vs[i]
	e.chosen[i] = true
	e.curCost += v.AdjustedCost
	e.curDWT += v.DWT
	e.curSlack += v.SafetyScore - e.floor
	e.curCount++
	e.covered[v.FuelType]++
}

func (e *engine) exclude(i int) {
	v := e.vs[i]
	e.chosen[i] = false
	e.curCost -= v.AdjustedCost
	e.curDWT -= v.DWT
	e.curSlack -= v.SafetyScore - e.floor
	e.curCount--
	e.covered[v.FuelType]--
}

// dfs decides vessel i. Branch order is include-first: with the cost-per-DWT
// ordering this finds cheap covering fleets early, which tightens the
// incumbent and strengthens pruning, and it is fully deterministic.
func (e *engine) dfs(i int) {
	e.nodes++

	e.tryCommit()
	if e.stop {
		return
	}
	if i == len(e.vs) {
		return
	}
	if e.prune(i) {
		return
	}

	v := e.vs[i]
	withinSize := e.sizeEq == 0 || e.curCount < e.sizeEq
	if e.sizeMax > 0 && e.curCount >= e.sizeMax {
		withinSize = false
	}
	withinCost := e.maxCost == 0 || e.curCost+v.AdjustedCost <= e.maxCost+costEps

	if withinSize && withinCost {
		e.include(i)
		e.dfs(i + 1)
		e.exclude(i)
		if e.stop {
			return
		}
	}
	e.dfs(i + 1)
}
