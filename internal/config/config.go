package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fleet-optimizer/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load scenario parameters from a separate YAML (e.g. examples/scenarios/*.yaml).
	// If both ScenarioFile and Scenario are provided, Scenario overrides ScenarioFile.
	ScenarioFile string         `yaml:"scenario_file"`
	Scenario     ScenarioConfig `yaml:"scenario"`

	// Dataset is the vessel table to load, CSV or JSON by extension.
	Dataset   string `yaml:"dataset"`
	OutputDir string `yaml:"output_dir"`
}

type ScenarioConfig struct {
	Name                string   `yaml:"name"`
	SafetyFloor         float64  `yaml:"safety_floor"`
	CargoRequirementDWT float64  `yaml:"cargo_requirement_dwt"`
	RequiredFuelTypes   []string `yaml:"required_fuel_types"`
	CarbonPriceUSD      float64  `yaml:"carbon_price_usd"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	// If scenario_file is set, load it and merge in any explicit overrides from c.Scenario.
	if c.ScenarioFile != "" {
		scenarioPath := c.ScenarioFile
		if !filepath.IsAbs(scenarioPath) {
			// Prefer interpreting relative paths as relative to the config file directory,
			// but fall back to the provided path (relative to cwd) if that doesn't exist.
			cand := filepath.Join(filepath.Dir(path), scenarioPath)
			if _, err := os.Stat(cand); err == nil {
				scenarioPath = cand
			}
		}
		loaded, err := loadScenarioFile(scenarioPath)
		if err != nil {
			return nil, err
		}
		c.Scenario = MergeScenario(loaded, c.Scenario)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Dataset == "" {
		return errors.New("dataset is required")
	}
	// Validate scenario params by constructing a model.Scenario.
	if _, err := c.Scenario.ToModel(); err != nil {
		return fmt.Errorf("scenario config invalid: %w", err)
	}
	return nil
}

// ToModel builds the runtime scenario, applying documented defaults for any
// field the YAML leaves at zero.
func (s ScenarioConfig) ToModel() (model.Scenario, error) {
	sc := model.DefaultScenario()
	if s.Name != "" {
		sc.Name = s.Name
	}
	if s.SafetyFloor != 0 {
		sc.SafetyFloor = s.SafetyFloor
	}
	if s.CargoRequirementDWT != 0 {
		sc.CargoRequirementDWT = s.CargoRequirementDWT
	}
	if s.CarbonPriceUSD != 0 {
		sc.CarbonPriceUSD = s.CarbonPriceUSD
	}
	if len(s.RequiredFuelTypes) > 0 {
		types := make([]model.FuelType, 0, len(s.RequiredFuelTypes))
		for _, raw := range s.RequiredFuelTypes {
			ft, ok := model.NormalizeFuelType(raw)
			if !ok {
				return model.Scenario{}, fmt.Errorf("%w: unknown fuel type %q", model.ErrMalformedInput, raw)
			}
			types = append(types, ft)
		}
		sc.RequiredFuelTypes = types
	}
	if err := sc.Validate(); err != nil {
		return model.Scenario{}, err
	}
	return sc, nil
}

type scenarioFileWrapper struct {
	Scenario ScenarioConfig `yaml:"scenario"`
}

func loadScenarioFile(path string) (ScenarioConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ScenarioConfig{}, err
	}
	var w scenarioFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return ScenarioConfig{}, err
	}
	return w.Scenario, nil
}

// MergeScenario overlays non-zero fields from override onto base.
// This is used when loading a scenario file and then applying overrides from the request.
func MergeScenario(base, override ScenarioConfig) ScenarioConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.SafetyFloor != 0 {
		out.SafetyFloor = override.SafetyFloor
	}
	if override.CargoRequirementDWT != 0 {
		out.CargoRequirementDWT = override.CargoRequirementDWT
	}
	if override.CarbonPriceUSD != 0 {
		out.CarbonPriceUSD = override.CarbonPriceUSD
	}
	if len(override.RequiredFuelTypes) > 0 {
		out.RequiredFuelTypes = override.RequiredFuelTypes
	}
	return out
}
