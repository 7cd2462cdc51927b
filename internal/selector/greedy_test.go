package selector

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-optimizer/internal/model"
)

// seedTable has a cheap but unsafe filler vessel so the post-hoc safety check
// is exercised: greedy grabs it for capacity and only notices the floor miss
// at the end.
func seedTable(t *testing.T) *model.Table {
	t.Helper()
	tbl, err := model.NewTable([]model.Vessel{
		{ID: 1, DWT: 100, FuelType: model.FuelLNG, SafetyScore: 3, AdjustedCost: 100},     // cpd 1.0
		{ID: 2, DWT: 100, FuelType: model.FuelLNG, SafetyScore: 5, AdjustedCost: 200},     // cpd 2.0
		{ID: 3, DWT: 50, FuelType: model.FuelAmmonia, SafetyScore: 4, AdjustedCost: 100},  // cpd 2.0
		{ID: 4, DWT: 100, FuelType: model.FuelAmmonia, SafetyScore: 2, AdjustedCost: 400}, // cpd 4.0
		{ID: 5, DWT: 200, FuelType: model.FuelDistillate, SafetyScore: 1, AdjustedCost: 100}, // cpd 0.5
	})
	require.NoError(t, err)
	return tbl
}

func seedScenario(floor float64) model.Scenario {
	return model.Scenario{
		Name:                "test",
		SafetyFloor:         floor,
		CargoRequirementDWT: 350,
		RequiredFuelTypes:   []model.FuelType{model.FuelLNG, model.FuelAmmonia},
	}
}

func TestSelectGreedyPhases(t *testing.T) {
	tbl := seedTable(t)

	res, err := SelectGreedy(tbl, seedScenario(2.0))
	require.NoError(t, err)

	// Seeds: cheapest cost-per-DWT per required type, in sorted type order
	// (Ammonia before LNG). Fill: vessel 5 is the cheapest per DWT.
	assert.Equal(t, []int64{1, 3, 5}, res.Fleet.IDs)

	require.Len(t, res.Log, 3)
	assert.Equal(t, model.PhaseSeed, res.Log[0].Phase)
	assert.Equal(t, int64(3), res.Log[0].VesselID) // Ammonia seed first
	assert.Equal(t, model.PhaseSeed, res.Log[1].Phase)
	assert.Equal(t, int64(1), res.Log[1].VesselID)
	assert.Equal(t, model.PhaseFill, res.Log[2].Phase)
	assert.Equal(t, int64(5), res.Log[2].VesselID)
	for i, s := range res.Log {
		assert.Equal(t, i+1, s.Rank)
		assert.NotEmpty(t, s.Reason)
	}

	assert.Equal(t, 350.0, res.Metrics.TotalDWT)
	assert.Equal(t, 300.0, res.Metrics.TotalCost)
}

func TestSelectGreedyStopsAtRequirement(t *testing.T) {
	tbl := seedTable(t)
	sc := seedScenario(2.0)
	sc.CargoRequirementDWT = 150 // seeds alone suffice

	res, err := SelectGreedy(tbl, sc)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, res.Fleet.IDs)
}

func TestSelectGreedyConstraintUnsatisfied(t *testing.T) {
	tbl := seedTable(t)

	// Fleet {1,3,5} averages (3+4+1)/3 = 2.67, below a 3.0 floor. The fleet
	// is still returned alongside the error.
	res, err := SelectGreedy(tbl, seedScenario(3.0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrConstraintUnsatisfied))
	require.NotNil(t, res)
	assert.Equal(t, []int64{1, 3, 5}, res.Fleet.IDs)
	assert.InDelta(t, 8.0/3.0, res.Metrics.AvgSafety, 1e-9)
}

func TestSelectGreedyMissingFuelType(t *testing.T) {
	tbl := seedTable(t)
	sc := seedScenario(2.0)
	sc.RequiredFuelTypes = append(sc.RequiredFuelTypes, model.FuelHydrogen)

	res, err := SelectGreedy(tbl, sc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInfeasibleScenario))
	assert.Nil(t, res)
}

func TestSelectGreedyPoolExhausted(t *testing.T) {
	tbl := seedTable(t)
	sc := seedScenario(2.0)
	sc.CargoRequirementDWT = 1e9

	res, err := SelectGreedy(tbl, sc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInfeasibleScenario))
	assert.Nil(t, res)
}

func TestSelectGreedyDeterministic(t *testing.T) {
	tbl := seedTable(t)
	sc := seedScenario(2.0)

	first, err := SelectGreedy(tbl, sc)
	require.NoError(t, err)
	second, err := SelectGreedy(tbl, sc)
	require.NoError(t, err)

	assert.Equal(t, first.Fleet.IDs, second.Fleet.IDs)
	assert.Equal(t, first.Log, second.Log)
	assert.Equal(t, first.Metrics, second.Metrics)
}

func TestSelectGreedyTieBreaksByID(t *testing.T) {
	// Two identical LNG vessels; the lower id must win the seed slot.
	tbl, err := model.NewTable([]model.Vessel{
		{ID: 9, DWT: 100, FuelType: model.FuelLNG, SafetyScore: 3, AdjustedCost: 100},
		{ID: 4, DWT: 100, FuelType: model.FuelLNG, SafetyScore: 3, AdjustedCost: 100},
	})
	require.NoError(t, err)

	sc := model.Scenario{
		SafetyFloor:         3.0,
		CargoRequirementDWT: 100,
		RequiredFuelTypes:   []model.FuelType{model.FuelLNG},
	}
	res, err := SelectGreedy(tbl, sc)
	require.NoError(t, err)
	assert.Equal(t, []int64{4}, res.Fleet.IDs)
}
