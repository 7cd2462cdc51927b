package handlers

import (
	"errors"
	"net/http"

	"fleet-optimizer/internal/analytics"
	"fleet-optimizer/internal/api/models"
	"fleet-optimizer/internal/model"
	"fleet-optimizer/internal/runstore"
	"fleet-optimizer/internal/selector"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler handles sweep, Pareto, domination and claim requests
type AnalyticsHandler struct {
	store *runstore.Store
}

func NewAnalyticsHandler(store *runstore.Store) *AnalyticsHandler {
	return &AnalyticsHandler{store: store}
}

// RunSweep handles POST /api/v1/analytics/sweep
func (h *AnalyticsHandler) RunSweep(c *gin.Context) {
	var req models.SweepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	tbl, sc, ok := h.prepare(c, req.DataSource, req.Scenario)
	if !ok {
		return
	}

	points, err := analytics.FleetSizeSweep(tbl, sc, req.MinFleetSize, req.MaxFleetSize, analytics.Options{Workers: req.Workers})
	if err != nil {
		writeError(c, err)
		return
	}

	resp := models.SweepResponse{Points: convertPoints(points)}
	resp.ID = h.store.Put(runstore.KindSweep, resp).ID
	c.JSON(http.StatusOK, resp)
}

// RunPareto handles POST /api/v1/analytics/pareto
func (h *AnalyticsHandler) RunPareto(c *gin.Context) {
	var req models.ParetoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	tbl, sc, ok := h.prepare(c, req.DataSource, req.Scenario)
	if !ok {
		return
	}

	thresholds := req.Thresholds
	if len(thresholds) == 0 {
		thresholds = analytics.Thresholds(req.From, req.To, req.Step)
	}
	points, err := analytics.ParetoFrontier(tbl, sc, thresholds, req.FleetSize, analytics.Options{Workers: req.Workers})
	if err != nil {
		writeError(c, err)
		return
	}

	resp := models.SweepResponse{Points: convertPoints(points)}
	resp.ID = h.store.Put(runstore.KindPareto, resp).ID
	c.JSON(http.StatusOK, resp)
}

// RunDominate handles POST /api/v1/analytics/dominate
func (h *AnalyticsHandler) RunDominate(c *gin.Context) {
	var req models.DominateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	tbl, sc, ok := h.prepare(c, req.DataSource, req.Scenario)
	if !ok {
		return
	}

	baseline := model.NewFleet(req.BaselineIDs)
	if baseline.Size() == 0 {
		// Default baseline: the greedy fleet. A constraint miss still yields
		// a usable baseline; its cost ceiling is what the search probes under.
		res, err := selector.SelectGreedy(tbl, sc)
		if err != nil && (!errors.Is(err, model.ErrConstraintUnsatisfied) || res == nil) {
			writeError(c, err)
			return
		}
		baseline = res.Fleet
	}

	step := req.Step
	if step == 0 {
		step = 0.1
	}
	dom, err := analytics.DominationSearch(tbl, sc, baseline, step, analytics.Options{Workers: req.Workers})
	if err != nil {
		writeError(c, err)
		return
	}

	resp := models.DominateResponse{
		Baseline:  buildSummary(dom.Baseline, baseline.IDs),
		Dominates: dom.Dominates,
		Points:    convertPoints(dom.Points),
	}
	if dom.Dominates {
		best := convertPoint(dom.Best)
		resp.Best = &best
	}
	resp.ID = h.store.Put(runstore.KindDominate, resp).ID
	c.JSON(http.StatusOK, resp)
}

// RunClaim handles POST /api/v1/analytics/claim
func (h *AnalyticsHandler) RunClaim(c *gin.Context) {
	var req models.ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	tbl, sc, ok := h.prepare(c, req.DataSource, req.Scenario)
	if !ok {
		return
	}

	res, err := analytics.CheckClaim(tbl, sc, analytics.Claim{
		Size:    req.FleetSize,
		Safety:  req.MinAvgSafety,
		MaxCost: req.MaxCost,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	resp := models.ClaimResponse{
		Holds:          res.Holds,
		WitnessIDs:     res.Witness.IDs,
		SizeFeasible:   res.SizeFeasible,
		MinCost:        res.MinCost,
		MinCostIDs:     res.MinCostFleet.IDs,
		AnySizeMinCost: res.AnySizeMinCost,
	}
	resp.ID = h.store.Put(runstore.KindClaim, resp).ID
	c.JSON(http.StatusOK, resp)
}

func (h *AnalyticsHandler) prepare(c *gin.Context, ds models.DataSourceConfig, sc models.ScenarioConfig) (*model.Table, model.Scenario, bool) {
	tbl, err := buildTable(ds)
	if err != nil {
		writeError(c, err)
		return nil, model.Scenario{}, false
	}
	scenario, err := buildScenario(sc)
	if err != nil {
		writeError(c, err)
		return nil, model.Scenario{}, false
	}
	return tbl, scenario, true
}

func convertPoint(p analytics.Point) models.PointRow {
	return models.PointRow{
		Label:     p.Label,
		Param:     p.Param,
		Feasible:  p.Feasible,
		TotalCost: p.Cost,
		AvgSafety: p.AvgSafety,
		FleetSize: p.FleetSize,
		TotalDWT:  p.TotalDWT,
		VesselIDs: p.Fleet.IDs,
	}
}

func convertPoints(points []analytics.Point) []models.PointRow {
	out := make([]models.PointRow, len(points))
	for i, p := range points {
		out[i] = convertPoint(p)
	}
	return out
}
