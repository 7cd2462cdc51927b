package handlers

import (
	"errors"
	"net/http"
	"time"

	"fleet-optimizer/internal/api/models"
	"fleet-optimizer/internal/metrics"
	"fleet-optimizer/internal/model"
	"fleet-optimizer/internal/runstore"
	"fleet-optimizer/internal/selector"

	"github.com/gin-gonic/gin"
)

// SelectHandler handles greedy-selection requests
type SelectHandler struct {
	store *runstore.Store
}

func NewSelectHandler(store *runstore.Store) *SelectHandler {
	return &SelectHandler{store: store}
}

// RunSelect handles POST /api/v1/select
func (h *SelectHandler) RunSelect(c *gin.Context) {
	var req models.SelectRequest
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

	start := time.Now()
	res, err := selector.SelectGreedy(tbl, sc)
	status := "completed"
	if err != nil {
		// A constraint miss still carries the fleet; anything else is fatal.
		if !errors.Is(err, model.ErrConstraintUnsatisfied) || res == nil {
			metrics.SolveDuration.WithLabelValues("greedy", "error").Observe(time.Since(start).Seconds())
			writeError(c, err)
			return
		}
		status = "constraint_unsatisfied"
	}
	metrics.SolveDuration.WithLabelValues("greedy", status).Observe(time.Since(start).Seconds())

	resp := models.SelectResponse{
		Status:      status,
		Summary:     buildSummary(res.Metrics, res.Fleet.IDs),
		Constraints: buildConstraints(res.Metrics.Check(sc)),
	}
	if req.IncludeLog {
		resp.Log = convertLog(res.Log)
	}
	resp.ID = h.store.Put(runstore.KindSelect, resp).ID
	c.JSON(http.StatusOK, resp)
}

func convertLog(log []model.Selection) []models.SelectionEntry {
	out := make([]models.SelectionEntry, len(log))
	for i, s := range log {
		out[i] = models.SelectionEntry{
			Rank:     s.Rank,
			Phase:    string(s.Phase),
			VesselID: s.VesselID,
			Reason:   s.Reason,
		}
	}
	return out
}
