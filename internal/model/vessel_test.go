package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validVessels() []Vessel {
	return []Vessel{
		{ID: 1, DWT: 100, FuelType: FuelLNG, SafetyScore: 3, AdjustedCost: 200},
		{ID: 2, DWT: 50, FuelType: FuelAmmonia, SafetyScore: 4, AdjustedCost: 150},
		{ID: 3, DWT: 80, FuelType: FuelLNG, SafetyScore: 2, AdjustedCost: 80},
	}
}

func TestNewTable(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func([]Vessel) []Vessel
		wantErr bool
	}{
		{
			name:   "valid table",
			mutate: func(vs []Vessel) []Vessel { return vs },
		},
		{
			name:    "empty table",
			mutate:  func(vs []Vessel) []Vessel { return nil },
			wantErr: true,
		},
		{
			name: "zero dwt",
			mutate: func(vs []Vessel) []Vessel {
				vs[0].DWT = 0
				return vs
			},
			wantErr: true,
		},
		{
			name: "negative cost",
			mutate: func(vs []Vessel) []Vessel {
				vs[1].AdjustedCost = -1
				return vs
			},
			wantErr: true,
		},
		{
			name: "unknown fuel type",
			mutate: func(vs []Vessel) []Vessel {
				vs[2].FuelType = "Coal"
				return vs
			},
			wantErr: true,
		},
		{
			name: "duplicate id",
			mutate: func(vs []Vessel) []Vessel {
				vs[2].ID = vs[0].ID
				return vs
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := NewTable(tt.mutate(validVessels()))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrMalformedInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 3, tbl.Len())
		})
	}
}

func TestTableIsCopy(t *testing.T) {
	vs := validVessels()
	tbl, err := NewTable(vs)
	require.NoError(t, err)

	vs[0].AdjustedCost = 999999
	got, ok := tbl.Get(1)
	require.True(t, ok)
	assert.Equal(t, 200.0, got.AdjustedCost)
}

func TestNormalizeFuelType(t *testing.T) {
	ft, ok := NormalizeFuelType("DISTILLATE FUEL")
	require.True(t, ok)
	assert.Equal(t, FuelDistillate, ft)

	ft, ok = NormalizeFuelType("  LNG ")
	require.True(t, ok)
	assert.Equal(t, FuelLNG, ft)

	_, ok = NormalizeFuelType("Coal")
	assert.False(t, ok)
}

func TestByFuelTypeOrdering(t *testing.T) {
	tbl, err := NewTable([]Vessel{
		{ID: 5, DWT: 100, FuelType: FuelLNG, AdjustedCost: 200}, // cpd 2.0
		{ID: 2, DWT: 100, FuelType: FuelLNG, AdjustedCost: 100}, // cpd 1.0
		{ID: 1, DWT: 50, FuelType: FuelLNG, AdjustedCost: 100},  // cpd 2.0, ties with 5
		{ID: 9, DWT: 10, FuelType: FuelAmmonia, AdjustedCost: 5},
	})
	require.NoError(t, err)

	got := tbl.ByFuelType(FuelLNG)
	require.Len(t, got, 3)
	assert.Equal(t, int64(2), got[0].ID)
	// Equal cost-per-DWT resolves by ascending id.
	assert.Equal(t, int64(1), got[1].ID)
	assert.Equal(t, int64(5), got[2].ID)
}

func TestNewFleet(t *testing.T) {
	f := NewFleet([]int64{7, 3, 7, 1})
	assert.Equal(t, []int64{1, 3, 7}, f.IDs)
	assert.Equal(t, 3, f.Size())
	assert.True(t, f.Contains(3))
	assert.False(t, f.Contains(4))
}

func TestScenarioValidate(t *testing.T) {
	sc := DefaultScenario()
	require.NoError(t, sc.Validate())
	assert.InDelta(t, 4576666.67, sc.CargoRequirementDWT, 0.01)

	sc.RequiredFuelTypes = nil
	assert.Error(t, sc.Validate())

	sc = DefaultScenario()
	sc.RequiredFuelTypes = append(sc.RequiredFuelTypes, FuelLNG)
	assert.Error(t, sc.Validate(), "duplicate required fuel type")

	sc = DefaultScenario()
	sc.CargoRequirementDWT = 0
	assert.Error(t, sc.Validate())
}
