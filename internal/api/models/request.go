package models

// VesselInput is one vessel row supplied inline in a request body.
type VesselInput struct {
	VesselID     int64   `json:"vessel_id" binding:"required"`
	DWT          float64 `json:"dwt" binding:"required"`
	MainFuelType string  `json:"main_fuel_type" binding:"required"`
	SafetyScore  float64 `json:"safety_score"`
	AdjustedCost float64 `json:"adjusted_cost"`
	CO2Eq        float64 `json:"co2_eq,omitempty"`
	FuelTotal    float64 `json:"fuel_total,omitempty"`
}

// DataSourceConfig defines where the vessel table comes from. Exactly one of
// Dataset (a file in the datasets directory, CSV or JSON by extension) or
// Vessels (inline rows) must be provided; inline wins if both are set.
type DataSourceConfig struct {
	Dataset string        `json:"dataset,omitempty"`
	Vessels []VesselInput `json:"vessels,omitempty"`
}

// ScenarioConfig overrides the default scenario. Zero fields keep defaults.
type ScenarioConfig struct {
	Name                string   `json:"name,omitempty"`
	SafetyFloor         float64  `json:"safety_floor,omitempty"`
	CargoRequirementDWT float64  `json:"cargo_requirement_dwt,omitempty"`
	RequiredFuelTypes   []string `json:"required_fuel_types,omitempty"`
	CarbonPriceUSD      float64  `json:"carbon_price_usd,omitempty"`
}

// SelectRequest runs the greedy heuristic.
type SelectRequest struct {
	DataSource DataSourceConfig `json:"data_source" binding:"required"`
	Scenario   ScenarioConfig   `json:"scenario,omitempty"`
	// IncludeLog adds the per-pick selection log to the response.
	IncludeLog bool `json:"include_log,omitempty"`
}

// OptimizeRequest runs the exact optimizer.
type OptimizeRequest struct {
	DataSource DataSourceConfig `json:"data_source" binding:"required"`
	Scenario   ScenarioConfig   `json:"scenario,omitempty"`

	FleetSize       int     `json:"fleet_size,omitempty"`     // exact size, 0 = free
	MaxFleetSize    int     `json:"max_fleet_size,omitempty"` // upper bound, 0 = free
	MaxCost         float64 `json:"max_cost,omitempty"`       // cost ceiling, 0 = none
	FeasibilityOnly bool    `json:"feasibility_only,omitempty"`
}

// CompareRequest runs the heuristic and the exact optimizer on the same table
// and reports the optimality gap.
type CompareRequest struct {
	DataSource DataSourceConfig `json:"data_source" binding:"required"`
	Scenario   ScenarioConfig   `json:"scenario,omitempty"`
}

// SweepRequest solves across a range of exact fleet sizes.
type SweepRequest struct {
	DataSource DataSourceConfig `json:"data_source" binding:"required"`
	Scenario   ScenarioConfig   `json:"scenario,omitempty"`

	MinFleetSize int `json:"min_fleet_size" binding:"required"`
	MaxFleetSize int `json:"max_fleet_size" binding:"required"`
	Workers      int `json:"workers,omitempty"`
}

// ParetoRequest traces the cost/safety frontier. Thresholds may be given
// explicitly or as a From/To/Step range; explicit wins.
type ParetoRequest struct {
	DataSource DataSourceConfig `json:"data_source" binding:"required"`
	Scenario   ScenarioConfig   `json:"scenario,omitempty"`

	Thresholds []float64 `json:"thresholds,omitempty"`
	From       float64   `json:"from,omitempty"`
	To         float64   `json:"to,omitempty"`
	Step       float64   `json:"step,omitempty"`
	FleetSize  int       `json:"fleet_size,omitempty"` // 0 = free
	Workers    int       `json:"workers,omitempty"`
}

// DominateRequest searches for fleets dominating a baseline. If BaselineIDs
// is empty the greedy selection is used as the baseline.
type DominateRequest struct {
	DataSource DataSourceConfig `json:"data_source" binding:"required"`
	Scenario   ScenarioConfig   `json:"scenario,omitempty"`

	BaselineIDs []int64 `json:"baseline_ids,omitempty"`
	Step        float64 `json:"step,omitempty"` // default 0.1
	Workers     int     `json:"workers,omitempty"`
}

// ClaimRequest checks an asserted (size, safety, cost) fleet specification.
type ClaimRequest struct {
	DataSource DataSourceConfig `json:"data_source" binding:"required"`
	Scenario   ScenarioConfig   `json:"scenario,omitempty"`

	FleetSize    int     `json:"fleet_size" binding:"required"`
	MinAvgSafety float64 `json:"min_avg_safety"`
	MaxCost      float64 `json:"max_cost" binding:"required"`
}
