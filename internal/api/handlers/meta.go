package handlers

import (
	"net/http"

	"fleet-optimizer/internal/api/models"
	"fleet-optimizer/internal/model"
	"fleet-optimizer/internal/runstore"

	"github.com/gin-gonic/gin"
)

// MetaHandler serves reference data and archived runs
type MetaHandler struct {
	store *runstore.Store
}

func NewMetaHandler(store *runstore.Store) *MetaHandler {
	return &MetaHandler{store: store}
}

// ListFuelTypes handles GET /api/v1/fuel-types
func (h *MetaHandler) ListFuelTypes(c *gin.Context) {
	aliases := map[model.FuelType][]string{
		model.FuelDistillate: {"DISTILLATE FUEL"},
	}
	out := make([]models.FuelTypeInfo, 0, 8)
	for _, ft := range model.RequiredFuelTypes() {
		out = append(out, models.FuelTypeInfo{
			Name:    string(ft),
			Aliases: aliases[ft],
		})
	}
	c.JSON(http.StatusOK, gin.H{"fuel_types": out})
}

// GetRun handles GET /api/v1/runs/:id
func (h *MetaHandler) GetRun(c *gin.Context) {
	id := c.Param("id")
	run, ok := h.store.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "RUN_NOT_FOUND",
				Message: "no run with that id; runs expire after their TTL",
			},
		})
		return
	}
	c.JSON(http.StatusOK, run)
}
