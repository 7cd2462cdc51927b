package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"fleet-optimizer/internal/api/models"
	"fleet-optimizer/internal/config"
	"fleet-optimizer/internal/data"
	"fleet-optimizer/internal/fleet"
	"fleet-optimizer/internal/model"

	"github.com/gin-gonic/gin"
)

// datasetDir resolves where named datasets live. Mirrors the scenario file
// lookup: env override first, then examples/ under the working directory.
func datasetDir() string {
	if dir := os.Getenv("DATASET_DIR"); dir != "" {
		return dir
	}
	wd, err := os.Getwd()
	if err != nil {
		return "./examples/datasets"
	}
	return filepath.Join(wd, "examples", "datasets")
}

// buildTable materializes the vessel table from a request: inline vessels
// win, otherwise the named dataset is loaded from the datasets directory.
func buildTable(ds models.DataSourceConfig) (*model.Table, error) {
	if len(ds.Vessels) > 0 {
		records := make([]data.VesselRecord, len(ds.Vessels))
		for i, v := range ds.Vessels {
			records[i] = data.VesselRecord{
				VesselID:     v.VesselID,
				DWT:          v.DWT,
				MainFuelType: v.MainFuelType,
				SafetyScore:  v.SafetyScore,
				AdjustedCost: v.AdjustedCost,
				CO2Eq:        v.CO2Eq,
				FuelTotal:    v.FuelTotal,
			}
		}
		return data.ToTable(records)
	}
	if ds.Dataset == "" {
		return nil, fmt.Errorf("%w: data_source needs either a dataset name or inline vessels", model.ErrMalformedInput)
	}
	// Dataset names must not escape the datasets directory.
	name := filepath.Base(ds.Dataset)
	path := filepath.Join(datasetDir(), name)
	if strings.HasSuffix(strings.ToLower(name), ".json") {
		return data.LoadVesselJSON(path)
	}
	return data.LoadVesselCSV(path)
}

// buildScenario applies request overrides onto the default scenario.
func buildScenario(sc models.ScenarioConfig) (model.Scenario, error) {
	return config.ScenarioConfig{
		Name:                sc.Name,
		SafetyFloor:         sc.SafetyFloor,
		CargoRequirementDWT: sc.CargoRequirementDWT,
		RequiredFuelTypes:   sc.RequiredFuelTypes,
		CarbonPriceUSD:      sc.CarbonPriceUSD,
	}.ToModel()
}

// writeError translates the error taxonomy into the HTTP surface.
func writeError(c *gin.Context, err error) {
	code := "INTERNAL_ERROR"
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrMalformedInput):
		code = "MALFORMED_INPUT"
		status = http.StatusBadRequest
	case errors.Is(err, model.ErrInfeasibleScenario):
		code = "INFEASIBLE_SCENARIO"
		status = http.StatusUnprocessableEntity
	case errors.Is(err, model.ErrConstraintUnsatisfied):
		code = "CONSTRAINT_UNSATISFIED"
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
		},
	})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
		},
	})
}

func buildSummary(m fleet.Metrics, ids []int64) models.FleetSummary {
	coverage := make(map[string]int, len(m.Coverage))
	for ft, n := range m.Coverage {
		coverage[string(ft)] = n
	}
	return models.FleetSummary{
		FleetSize:    m.Size,
		TotalDWT:     m.TotalDWT,
		AvgSafety:    m.AvgSafety,
		TotalCost:    m.TotalCost,
		TotalCO2Eq:   m.TotalCO2Eq,
		TotalFuel:    m.TotalFuel,
		FuelCoverage: coverage,
		VesselIDs:    ids,
	}
}

func buildConstraints(chk fleet.Check) models.ConstraintReport {
	rep := models.ConstraintReport{
		DWTMet:      chk.DWTMet,
		SafetyMet:   chk.SafetyMet,
		CoverageMet: chk.CoverageMet,
	}
	for _, ft := range chk.MissingFuels {
		rep.MissingFuelTypes = append(rep.MissingFuelTypes, string(ft))
	}
	return rep
}
