// Package config provides configuration loading and management for graphcut.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Synthesis parameters
	Synthesis struct {
		// PossibilityK is the Boltzmann sampler's k constant in
		// exp(-ssd/(k*variance)); higher values flatten the distribution
		// toward uniform random placement.
		PossibilityK float64 `yaml:"possibilityK"`

		// InitTileFractionLow and InitTileFractionHigh bound the uniform
		// tiling-step fraction of the texture's own size (texture.W/H times
		// this fraction), matching the U[1/3, 2/3] step used by Init.
		InitTileFractionLow  float64 `yaml:"initTileFractionLow"`
		InitTileFractionHigh float64 `yaml:"initTileFractionHigh"`

		// EntireMatchingTimes is the number of random candidates sampled by
		// random-mode entire-matching.
		EntireMatchingTimes int `yaml:"entireMatchingTimes"`

		// SubPatchMatchingTimes is the number of random alignments sampled
		// by sub-patch matching.
		SubPatchMatchingTimes int `yaml:"subPatchMatchingTimes"`

		// RefinementPasses is how many entire-matching + sub-patch-matching
		// rounds to run after the initial tiling.
		RefinementPasses int `yaml:"refinementPasses"`
	} `yaml:"synthesis"`

	// Processing parameters
	Processing struct {
		// NumCores specifies how many CPU cores are available for the run;
		// purely informational, since the synthesis pipeline is sequential.
		NumCores int `yaml:"numCores"`
	} `yaml:"processing"`

	// RNG parameters
	RNG struct {
		// Deterministic selects NewDeterministic(Seed) over NewEntropy().
		Deterministic bool `yaml:"deterministic"`

		// Seed is the engine seed used when Deterministic is true.
		Seed int64 `yaml:"seed"`
	} `yaml:"rng"`

	// Output parameters
	Output struct {
		// Verbose is loaded and saved with the config but not read by the
		// CLI or the placer; their progress lines are always printed.
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`

	// Test parameters
	Test struct {
		// Seeds is a list of RNG seeds to run for reproducibility testing.
		Seeds []int64 `yaml:"seeds"`

		// FixtureDir is the directory holding reference textures for tests.
		FixtureDir string `yaml:"fixtureDir"`
	} `yaml:"test"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default synthesis parameters
	cfg.Synthesis.PossibilityK = 0.3
	cfg.Synthesis.InitTileFractionLow = 1.0 / 3.0
	cfg.Synthesis.InitTileFractionHigh = 2.0 / 3.0
	cfg.Synthesis.EntireMatchingTimes = 40
	cfg.Synthesis.SubPatchMatchingTimes = 40
	cfg.Synthesis.RefinementPasses = 20

	// Set default processing parameters
	cfg.Processing.NumCores = runtime.NumCPU() // informational only

	// Set default RNG parameters
	cfg.RNG.Deterministic = false
	cfg.RNG.Seed = 0

	// Set default output parameters
	cfg.Output.Verbose = true

	// Set default test parameters
	cfg.Test.Seeds = []int64{1, 2, 3, 4, 5}
	cfg.Test.FixtureDir = "testdata"

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
