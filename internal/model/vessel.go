package model

import (
	"fmt"
	"sort"
	"strings"
)

// FuelType is a main-engine fuel category. Keep these values stable; they are
// the canonical spellings used by the upstream reference tables and appear
// verbatim in CSV output.
type FuelType string

const (
	FuelDistillate FuelType = "Distillate fuel"
	FuelLPGPropane FuelType = "LPG (Propane)"
	FuelLPGButane  FuelType = "LPG (Butane)"
	FuelLNG        FuelType = "LNG"
	FuelMethanol   FuelType = "Methanol"
	FuelEthanol    FuelType = "Ethanol"
	FuelAmmonia    FuelType = "Ammonia"
	FuelHydrogen   FuelType = "Hydrogen"
)

// RequiredFuelTypes returns the eight canonical fuel categories in a fixed
// order. Callers must not mutate the returned slice's meaning by relying on
// index positions; only membership matters.
func RequiredFuelTypes() []FuelType {
	return []FuelType{
		FuelAmmonia,
		FuelDistillate,
		FuelEthanol,
		FuelHydrogen,
		FuelLNG,
		FuelLPGButane,
		FuelLPGPropane,
		FuelMethanol,
	}
}

// fuelNameMap normalizes spellings seen in upstream datasets. The AIS export
// uses "DISTILLATE FUEL" while the reference tables use "Distillate fuel".
var fuelNameMap = map[string]FuelType{
	"DISTILLATE FUEL": FuelDistillate,
	"Distillate fuel": FuelDistillate,
	"LPG (Propane)":   FuelLPGPropane,
	"LPG (Butane)":    FuelLPGButane,
	"LNG":             FuelLNG,
	"Methanol":        FuelMethanol,
	"Ethanol":         FuelEthanol,
	"Ammonia":         FuelAmmonia,
	"Hydrogen":        FuelHydrogen,
}

// NormalizeFuelType maps an upstream fuel-type spelling to its canonical
// FuelType. The second return is false for unknown names.
func NormalizeFuelType(s string) (FuelType, bool) {
	ft, ok := fuelNameMap[strings.TrimSpace(s)]
	return ft, ok
}

// Vessel is one row of the per-scenario feature table produced by the
// upstream metrics provider. Vessels are read-only to the selection core;
// AdjustedCost already reflects the scenario's carbon price.
type Vessel struct {
	ID           int64
	DWT          float64 // deadweight tonnage, tonnes
	FuelType     FuelType
	SafetyScore  float64 // typically 1..5
	AdjustedCost float64 // USD/month, fuel + carbon + ownership + risk
	CO2Eq        float64 // informational, tonnes CO2-eq
	FuelTotal    float64 // informational, tonnes fuel
}

// CostPerDWT is the ranking key for the greedy filling phase and the solver's
// branching order.
func (v Vessel) CostPerDWT() float64 {
	return v.AdjustedCost / v.DWT
}

// Table is an immutable vessel table for one scenario run.
type Table struct {
	vessels []Vessel
	byID    map[int64]int
}

// NewTable validates the provider's rows and builds the lookup index.
// Validation fails fast with ErrMalformedInput before any search begins.
func NewTable(vessels []Vessel) (*Table, error) {
	if len(vessels) == 0 {
		return nil, fmt.Errorf("%w: empty vessel table", ErrMalformedInput)
	}
	t := &Table{
		vessels: make([]Vessel, len(vessels)),
		byID:    make(map[int64]int, len(vessels)),
	}
	copy(t.vessels, vessels)
	for i, v := range t.vessels {
		if v.DWT <= 0 {
			return nil, fmt.Errorf("%w: vessel %d has non-positive dwt %.2f", ErrMalformedInput, v.ID, v.DWT)
		}
		if v.AdjustedCost < 0 {
			return nil, fmt.Errorf("%w: vessel %d has negative adjusted cost %.2f", ErrMalformedInput, v.ID, v.AdjustedCost)
		}
		if _, ok := fuelNameMap[string(v.FuelType)]; !ok {
			return nil, fmt.Errorf("%w: vessel %d has unknown fuel type %q", ErrMalformedInput, v.ID, v.FuelType)
		}
		if _, dup := t.byID[v.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate vessel id %d", ErrMalformedInput, v.ID)
		}
		t.byID[v.ID] = i
	}
	return t, nil
}

// Len returns the number of vessels in the table.
func (t *Table) Len() int { return len(t.vessels) }

// Get looks a vessel up by id.
func (t *Table) Get(id int64) (Vessel, bool) {
	i, ok := t.byID[id]
	if !ok {
		return Vessel{}, false
	}
	return t.vessels[i], true
}

// Vessels returns a copy of the table rows, sorted by ascending id.
func (t *Table) Vessels() []Vessel {
	out := make([]Vessel, len(t.vessels))
	copy(out, t.vessels)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ByFuelType returns the vessels of one fuel type, sorted by ascending
// cost-per-DWT with ties broken by vessel id so that callers iterating the
// result are deterministic.
func (t *Table) ByFuelType(ft FuelType) []Vessel {
	var out []Vessel
	for _, v := range t.vessels {
		if v.FuelType == ft {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ci, cj := out[i].CostPerDWT(), out[j].CostPerDWT()
		if ci == cj {
			return out[i].ID < out[j].ID
		}
		return ci < cj
	})
	return out
}
