package models

// FleetSummary contains the realized aggregates of a selected fleet.
type FleetSummary struct {
	FleetSize    int            `json:"fleet_size"`
	TotalDWT     float64        `json:"total_dwt"`
	AvgSafety    float64        `json:"avg_safety"`
	TotalCost    float64        `json:"total_cost"`
	TotalCO2Eq   float64        `json:"total_co2_eq"`
	TotalFuel    float64        `json:"total_fuel"`
	FuelCoverage map[string]int `json:"fuel_coverage"`
	VesselIDs    []int64        `json:"vessel_ids"`
}

// ConstraintReport is the per-constraint verdict of a fleet.
type ConstraintReport struct {
	DWTMet           bool     `json:"dwt_met"`
	SafetyMet        bool     `json:"safety_met"`
	CoverageMet      bool     `json:"coverage_met"`
	MissingFuelTypes []string `json:"missing_fuel_types,omitempty"`
}

// SelectionEntry is one row of the greedy selection log.
type SelectionEntry struct {
	Rank     int    `json:"rank"`
	Phase    string `json:"phase"`
	VesselID int64  `json:"vessel_id"`
	Reason   string `json:"reason"`
}

// SelectResponse represents the result of a greedy selection run. Status is
// "completed" or "constraint_unsatisfied"; in the latter case the fleet is
// still returned for inspection.
type SelectResponse struct {
	ID          string           `json:"id,omitempty"`
	Status      string           `json:"status"`
	Summary     FleetSummary     `json:"summary"`
	Constraints ConstraintReport `json:"constraints"`
	Log         []SelectionEntry `json:"log,omitempty"`
}

// OptimizeResponse represents the result of an exact optimization run.
type OptimizeResponse struct {
	ID          string       `json:"id,omitempty"`
	Status      string       `json:"status"` // "optimal", "feasible", "infeasible"
	Summary     FleetSummary `json:"summary,omitempty"`
	Objective   float64      `json:"objective,omitempty"`
	Nodes       int64        `json:"nodes"`
	SolveTimeMs float64      `json:"solve_time_ms"`
}

// CompareResponse pairs a greedy run with the exact optimum on the same table.
type CompareResponse struct {
	ID         string           `json:"id,omitempty"`
	Greedy     SelectResponse   `json:"greedy"`
	Exact      OptimizeResponse `json:"exact"`
	CostGap    float64          `json:"cost_gap"`     // greedy cost minus optimal cost
	CostGapPct float64          `json:"cost_gap_pct"` // gap relative to the optimum
}

// PointRow is one row of an analytics sweep.
type PointRow struct {
	Label     string  `json:"label"`
	Param     float64 `json:"param"`
	Feasible  bool    `json:"feasible"`
	TotalCost float64 `json:"total_cost,omitempty"`
	AvgSafety float64 `json:"avg_safety,omitempty"`
	FleetSize int     `json:"fleet_size,omitempty"`
	TotalDWT  float64 `json:"total_dwt,omitempty"`
	VesselIDs []int64 `json:"vessel_ids,omitempty"`
}

// SweepResponse represents a fleet-size sweep or Pareto frontier.
type SweepResponse struct {
	ID     string     `json:"id,omitempty"`
	Points []PointRow `json:"points"`
}

// DominateResponse represents a domination search against a baseline.
type DominateResponse struct {
	ID        string       `json:"id,omitempty"`
	Baseline  FleetSummary `json:"baseline"`
	Dominates bool         `json:"dominates"`
	Best      *PointRow    `json:"best,omitempty"`
	Points    []PointRow   `json:"points"`
}

// ClaimResponse represents the verdict on an asserted fleet specification.
type ClaimResponse struct {
	ID    string `json:"id,omitempty"`
	Holds bool   `json:"holds"`

	WitnessIDs []int64 `json:"witness_ids,omitempty"`

	SizeFeasible   bool    `json:"size_feasible"`
	MinCost        float64 `json:"min_cost,omitempty"`
	MinCostIDs     []int64 `json:"min_cost_ids,omitempty"`
	AnySizeMinCost float64 `json:"any_size_min_cost,omitempty"`
}

// FuelTypeInfo describes one canonical fuel category.
type FuelTypeInfo struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
