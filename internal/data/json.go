// Package data loads vessel tables from disk and writes run reports. The
// loaders normalize raw fuel-type labels into canonical form, so the rest of
// the system only ever sees canonical vessels.
package data

import (
	"encoding/json"
	"fmt"
	"os"

	"fleet-optimizer/internal/model"
)

// VesselRecord is the wire shape of one vessel row, before normalization.
type VesselRecord struct {
	VesselID     int64   `json:"vessel_id"`
	DWT          float64 `json:"dwt"`
	MainFuelType string  `json:"main_fuel_type"`
	SafetyScore  float64 `json:"safety_score"`
	AdjustedCost float64 `json:"adjusted_cost"`
	CO2Eq        float64 `json:"co2_eq"`
	FuelTotal    float64 `json:"fuel_total"`
}

// VesselDataset is the on-disk JSON shape.
type VesselDataset struct {
	Vessels []VesselRecord `json:"vessels"`
}

func LoadVesselJSON(path string) (*model.Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ds VesselDataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrMalformedInput, err)
	}
	return ToTable(ds.Vessels)
}

// ToTable normalizes records and builds the immutable vessel table. A record
// with a fuel label outside the recognized set fails the whole load; silently
// dropping rows would skew every downstream metric.
func ToTable(records []VesselRecord) (*model.Table, error) {
	vs := make([]model.Vessel, 0, len(records))
	for _, r := range records {
		ft, ok := model.NormalizeFuelType(r.MainFuelType)
		if !ok {
			return nil, fmt.Errorf("%w: vessel %d has unrecognized fuel type %q",
				model.ErrMalformedInput, r.VesselID, r.MainFuelType)
		}
		vs = append(vs, model.Vessel{
			ID:           r.VesselID,
			DWT:          r.DWT,
			SafetyScore:  r.SafetyScore,
			AdjustedCost: r.AdjustedCost,
			CO2Eq:        r.CO2Eq,
			FuelTotal:    r.FuelTotal,
			FuelType:     ft,
		})
	}
	return model.NewTable(vs)
}
