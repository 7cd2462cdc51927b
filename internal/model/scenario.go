package model

import "fmt"

// Monthly cargo requirement derived from the 2024 annual bunker sales volume
// of 54.92 million tonnes (all fuel types), divided over twelve months.
const (
	AnnualBunkerSalesTonnes      = 54.92e6
	DefaultCargoRequirementDWT   = AnnualBunkerSalesTonnes / 12
	DefaultSafetyFloor           = 3.0
	DefaultCarbonPriceUSDPerTonn = 80.0
)

// Scenario is an immutable configuration bundle for one selection/analytics
// run. It is created by the caller and passed whole into every call; the core
// never mutates one. CarbonPriceUSD only labels the upstream table the
// scenario was priced with; adjusted costs are not recomputed here.
type Scenario struct {
	Name                string
	SafetyFloor         float64
	CargoRequirementDWT float64
	RequiredFuelTypes   []FuelType
	CarbonPriceUSD      float64
}

// DefaultScenario returns the base policy: safety floor 3.0, the monthly
// cargo requirement, all eight fuel types required.
func DefaultScenario() Scenario {
	return Scenario{
		Name:                "base",
		SafetyFloor:         DefaultSafetyFloor,
		CargoRequirementDWT: DefaultCargoRequirementDWT,
		RequiredFuelTypes:   RequiredFuelTypes(),
		CarbonPriceUSD:      DefaultCarbonPriceUSDPerTonn,
	}
}

// WithSafetyFloor returns a copy with the safety floor replaced. Scenarios
// are value types, so re-runs under altered policy never touch the original.
func (s Scenario) WithSafetyFloor(floor float64) Scenario {
	s.SafetyFloor = floor
	return s
}

func (s Scenario) Validate() error {
	if s.CargoRequirementDWT <= 0 {
		return fmt.Errorf("%w: cargo requirement must be > 0", ErrMalformedInput)
	}
	if len(s.RequiredFuelTypes) == 0 {
		return fmt.Errorf("%w: at least one required fuel type", ErrMalformedInput)
	}
	seen := map[FuelType]bool{}
	for _, ft := range s.RequiredFuelTypes {
		if _, ok := fuelNameMap[string(ft)]; !ok {
			return fmt.Errorf("%w: unknown required fuel type %q", ErrMalformedInput, ft)
		}
		if seen[ft] {
			return fmt.Errorf("%w: duplicate required fuel type %q", ErrMalformedInput, ft)
		}
		seen[ft] = true
	}
	return nil
}
