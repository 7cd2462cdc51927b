package handlers

import (
	"errors"
	"net/http"

	"fleet-optimizer/internal/api/models"
	"fleet-optimizer/internal/metrics"
	"fleet-optimizer/internal/model"
	"fleet-optimizer/internal/runstore"
	"fleet-optimizer/internal/selector"
	"fleet-optimizer/internal/solver"

	"github.com/gin-gonic/gin"
)

// OptimizeHandler handles exact-optimizer requests
type OptimizeHandler struct {
	store *runstore.Store
}

func NewOptimizeHandler(store *runstore.Store) *OptimizeHandler {
	return &OptimizeHandler{store: store}
}

// RunOptimize handles POST /api/v1/optimize
func (h *OptimizeHandler) RunOptimize(c *gin.Context) {
	var req models.OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	tbl, err := buildTable(req.DataSource)
	if err != nil {
		writeError(c, err)
		return
	}
	sc, err := buildScenario(req.Scenario)
	if err != nil {
		writeError(c, err)
		return
	}

	sol, err := solver.Solve(solver.Problem{
		Table:           tbl,
		Scenario:        sc,
		FleetSizeEq:     req.FleetSize,
		FleetSizeMax:    req.MaxFleetSize,
		MaxCost:         req.MaxCost,
		FeasibilityOnly: req.FeasibilityOnly,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	observeSolve(sol)

	resp := convertSolution(sol)
	resp.ID = h.store.Put(runstore.KindOptimize, resp).ID
	c.JSON(http.StatusOK, resp)
}

// CompareSelectors handles POST /api/v1/optimize/compare. The greedy fleet and
// the exact optimum are computed on the same table so the gap is attributable
// to the heuristic alone.
func (h *OptimizeHandler) CompareSelectors(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	tbl, err := buildTable(req.DataSource)
	if err != nil {
		writeError(c, err)
		return
	}
	sc, err := buildScenario(req.Scenario)
	if err != nil {
		writeError(c, err)
		return
	}

	greedyRes, greedyErr := selector.SelectGreedy(tbl, sc)
	if greedyErr != nil && (!errors.Is(greedyErr, model.ErrConstraintUnsatisfied) || greedyRes == nil) {
		writeError(c, greedyErr)
		return
	}
	greedyStatus := "completed"
	if greedyErr != nil {
		greedyStatus = "constraint_unsatisfied"
	}

	sol, err := solver.Solve(solver.Problem{Table: tbl, Scenario: sc})
	if err != nil {
		writeError(c, err)
		return
	}
	observeSolve(sol)

	resp := models.CompareResponse{
		Greedy: models.SelectResponse{
			Status:      greedyStatus,
			Summary:     buildSummary(greedyRes.Metrics, greedyRes.Fleet.IDs),
			Constraints: buildConstraints(greedyRes.Metrics.Check(sc)),
		},
		Exact: convertSolution(sol),
	}
	if sol.Status == solver.StatusOptimal {
		resp.CostGap = greedyRes.Metrics.TotalCost - sol.Objective
		if sol.Objective > 0 {
			resp.CostGapPct = resp.CostGap / sol.Objective * 100
		}
	}
	resp.ID = h.store.Put(runstore.KindCompare, resp).ID
	c.JSON(http.StatusOK, resp)
}

func convertSolution(sol *solver.Solution) models.OptimizeResponse {
	resp := models.OptimizeResponse{
		Status:      string(sol.Status),
		Nodes:       sol.Nodes,
		SolveTimeMs: float64(sol.SolveTime.Microseconds()) / 1000,
	}
	if sol.Status != solver.StatusInfeasible {
		resp.Summary = buildSummary(sol.Metrics, sol.Fleet.IDs)
		resp.Objective = sol.Objective
	}
	return resp
}

func observeSolve(sol *solver.Solution) {
	metrics.SolveDuration.WithLabelValues("exact", string(sol.Status)).Observe(sol.SolveTime.Seconds())
	metrics.SolveNodes.Add(float64(sol.Nodes))
}
