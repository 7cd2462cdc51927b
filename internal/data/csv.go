package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"fleet-optimizer/internal/analytics"
	"fleet-optimizer/internal/model"
)

// LoadVesselCSV reads a vessel table from CSV. Columns are matched by header
// name, not position, so upstream exports can reorder or append columns
// freely. Required: vessel_id, dwt, main_fuel_type, safety_score,
// adjusted_cost. Optional: co2_eq, fuel_total.
func LoadVesselCSV(path string) (*model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading csv header: %v", model.ErrMalformedInput, err)
	}
	col := map[string]int{}
	for i, h := range header {
		col[strings.TrimSpace(strings.ToLower(h))] = i
	}
	for _, need := range []string{"vessel_id", "dwt", "main_fuel_type", "safety_score", "adjusted_cost"} {
		if _, ok := col[need]; !ok {
			return nil, fmt.Errorf("%w: csv missing column %q", model.ErrMalformedInput, need)
		}
	}

	var records []VesselRecord
	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: csv line %d: %v", model.ErrMalformedInput, line, err)
		}
		rec, err := parseRow(row, col, line)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return ToTable(records)
}

func parseRow(row []string, col map[string]int, line int) (VesselRecord, error) {
	get := func(name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	num := func(name string) (float64, error) {
		s := get(name)
		if s == "" {
			return 0, nil
		}
		x, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: csv line %d: column %q: %v", model.ErrMalformedInput, line, name, err)
		}
		return x, nil
	}

	id, err := strconv.ParseInt(get("vessel_id"), 10, 64)
	if err != nil {
		return VesselRecord{}, fmt.Errorf("%w: csv line %d: column \"vessel_id\": %v", model.ErrMalformedInput, line, err)
	}
	rec := VesselRecord{VesselID: id, MainFuelType: get("main_fuel_type")}
	if rec.DWT, err = num("dwt"); err != nil {
		return VesselRecord{}, err
	}
	if rec.SafetyScore, err = num("safety_score"); err != nil {
		return VesselRecord{}, err
	}
	if rec.AdjustedCost, err = num("adjusted_cost"); err != nil {
		return VesselRecord{}, err
	}
	if rec.CO2Eq, err = num("co2_eq"); err != nil {
		return VesselRecord{}, err
	}
	if rec.FuelTotal, err = num("fuel_total"); err != nil {
		return VesselRecord{}, err
	}
	return rec, nil
}

// WriteSelectionLogCSV writes the greedy selector's audit log, one row per
// pick in selection order.
func WriteSelectionLogCSV(path string, tbl *model.Table, log []model.Selection) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"rank",
		"phase",
		"vessel_id",
		"main_fuel_type",
		"dwt",
		"safety_score",
		"adjusted_cost",
		"cost_per_dwt",
		"reason",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, s := range log {
		v, ok := tbl.Get(s.VesselID)
		if !ok {
			return fmt.Errorf("%w: selection log references unknown vessel %d", model.ErrMalformedInput, s.VesselID)
		}
		row := []string{
			strconv.Itoa(s.Rank),
			string(s.Phase),
			strconv.FormatInt(s.VesselID, 10),
			string(v.FuelType),
			fmtFloat(v.DWT),
			fmtFloat(v.SafetyScore),
			fmtFloat(v.AdjustedCost),
			fmtFloat(v.CostPerDWT()),
			s.Reason,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

// WriteFleetCSV writes the member vessels of a fleet, sorted by id.
func WriteFleetCSV(path string, tbl *model.Table, fl model.Fleet) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"vessel_id",
		"main_fuel_type",
		"dwt",
		"safety_score",
		"adjusted_cost",
		"cost_per_dwt",
		"co2_eq",
		"fuel_total",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, id := range fl.IDs {
		v, ok := tbl.Get(id)
		if !ok {
			return fmt.Errorf("%w: fleet references unknown vessel %d", model.ErrMalformedInput, id)
		}
		row := []string{
			strconv.FormatInt(v.ID, 10),
			string(v.FuelType),
			fmtFloat(v.DWT),
			fmtFloat(v.SafetyScore),
			fmtFloat(v.AdjustedCost),
			fmtFloat(v.CostPerDWT()),
			fmtFloat(v.CO2Eq),
			fmtFloat(v.FuelTotal),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

// WritePointsCSV writes an analytics sweep (fleet-size, Pareto, domination),
// one row per parameter value.
func WritePointsCSV(path string, points []analytics.Point) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"label",
		"param",
		"feasible",
		"total_cost",
		"avg_safety",
		"fleet_size",
		"total_dwt",
		"vessel_ids",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, p := range points {
		row := []string{
			p.Label,
			fmtFloat(p.Param),
			strconv.FormatBool(p.Feasible),
			fmtFloat(p.Cost),
			fmtFloat(p.AvgSafety),
			strconv.Itoa(p.FleetSize),
			fmtFloat(p.TotalDWT),
			fmtIDs(p.Fleet.IDs),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}

// fmtIDs packs vessel ids into one cell; fleets are small enough that a
// semicolon list keeps the report a single flat file.
func fmtIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ";")
}
